// Package priceupdate реализует HTTP-обработчик изменения тарифа подписки.
package priceupdate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/auto-catalog/internal/http/response"
	"github.com/magabrotheeeer/auto-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/auto-catalog/internal/models"
)

// Handler управляет HTTP-запросами на изменение тарифа.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики тарифов.
type Service interface {
	UpdatePrice(ctx context.Context, periodMonths int, priceKopecks int64) (*models.PriceTier, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Задать цену тарифа
// @Description Создаёт или обновляет цену тарифа за указанный период.
// @Tags Subscriptions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param periodMonths path int true "Период в месяцах"
// @Param request body models.UpdatePriceRequest true "Цена в копейках"
// @Success 200 {object} response.Response "Обновлённый тариф"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /subscriptions/prices/{periodMonths} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.priceupdate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	periodMonths, err := strconv.Atoi(chi.URLParam(r, "periodMonths"))
	if err != nil || periodMonths <= 0 {
		log.Error("failed to decode period from url", slog.String("raw", chi.URLParam(r, "periodMonths")))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid period"))
		return
	}

	var req models.UpdatePriceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	tier, err := h.service.UpdatePrice(r.Context(), periodMonths, req.PriceKopecks)
	if err != nil {
		log.Error("failed to update price", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not update price"))
		return
	}

	log.Info("price updated", slog.Int("period_months", periodMonths),
		slog.Int64("price_kopecks", tier.PriceKopecks))
	render.JSON(w, r, response.OKWithData(tier))
}
