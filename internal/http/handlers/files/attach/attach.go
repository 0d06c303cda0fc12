// Package attach реализует HTTP-обработчик загрузки ссылки в слот года.
//
// Слот перезаписывается, а не дополняется; вместе с записью слота
// в той же транзакции журналируется обращение администратора.
package attach

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/auto-catalog/internal/http/middlewarectx"
	"github.com/magabrotheeeer/auto-catalog/internal/http/response"
	"github.com/magabrotheeeer/auto-catalog/internal/lib/drive"
	"github.com/magabrotheeeer/auto-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/auto-catalog/internal/models"
	"github.com/magabrotheeeer/auto-catalog/internal/storage/repository"
)

// Handler управляет HTTP-запросами на заполнение слота.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики заполнения слота.
type Service interface {
	AttachSlot(ctx context.Context, yearID int, slot models.Slot, driveURL string, userID int64) (*models.File, error)
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
// @Summary Заполнить слот файла
// @Description Сохраняет ссылку Google Drive в указанный слот года, заменяя прежнее содержимое.
// @Tags Files
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.AttachSlotRequest true "Год, слот и ссылка"
// @Success 200 {object} response.Response "Обновлённая запись файла"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или ссылка"
// @Failure 404 {object} response.ErrorResponse "Год не найден"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /files/slots [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.files.attach"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.AttachSlotRequest
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

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		log.Error("user not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	file, err := h.service.AttachSlot(r.Context(), req.YearID, models.Slot(req.Slot),
		req.GoogleDriveURL, user.UserID)
	if err != nil {
		switch {
		case errors.Is(err, drive.ErrInvalidLink):
			log.Warn("invalid google drive link", slog.String("url", req.GoogleDriveURL))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid google drive link"))
		case errors.Is(err, repository.ErrNotFound):
			log.Warn("year not found", slog.Int("year_id", req.YearID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("year not found"))
		default:
			log.Error("failed to attach slot", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not attach slot"))
		}
		return
	}

	log.Info("slot attached", slog.Int("year_id", req.YearID), slog.String("slot", req.Slot))
	render.JSON(w, r, response.OKWithData(file))
}
