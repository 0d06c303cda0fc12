// Package help реализует HTTP-обработчик текста помощи.
package help

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/auto-catalog/internal/http/response"
	"github.com/magabrotheeeer/auto-catalog/internal/lib/sl"
)

// Handler управляет HTTP-запросами на текст помощи.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики текста помощи.
type Service interface {
	HelpText(ctx context.Context) (string, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Текст помощи
// @Description Возвращает текст помощи из настроек либо значение по умолчанию.
// @Tags Info
// @Produce json
// @Success 200 {object} response.Response "Текст помощи"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /info/help [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.info.help"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	text, err := h.service.HelpText(r.Context())
	if err != nil {
		log.Error("failed to read help text", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read help text"))
		return
	}

	render.JSON(w, r, response.OKWithData(map[string]string{"text": text}))
}
