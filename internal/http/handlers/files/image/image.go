// Package image реализует потоковую выдачу изображений Google Drive.
//
// В отличие от остальных обработчиков ответ здесь не JSON-конверт,
// а сырой поток байтов с типом содержимого источника.
package image

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/auto-catalog/internal/http/response"
	"github.com/magabrotheeeer/auto-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/auto-catalog/internal/services/proxy"
)

// Handler управляет HTTP-запросами на изображения.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс прокси изображений.
type Service interface {
	Fetch(ctx context.Context, fileID string) (*proxy.Result, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Изображение Google Drive
// @Description Стримит изображение по File ID, перебирая формы ссылки Drive.
// @Tags Files
// @Produce octet-stream
// @Param fileID path string true "Google Drive File ID"
// @Success 200 {file} binary "Содержимое изображения"
// @Failure 400 {object} response.ErrorResponse "Пустой идентификатор"
// @Failure 502 {object} response.ErrorResponse "Содержимое недоступно"
// @Router /files/image/{fileID} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.files.image"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	fileID := chi.URLParam(r, "fileID")
	if fileID == "" {
		log.Error("empty file id in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid file id"))
		return
	}

	result, err := h.service.Fetch(r.Context(), fileID)
	if err != nil {
		if errors.Is(err, proxy.ErrContentUnavailable) {
			log.Warn("image unavailable", slog.String("file_id", fileID))
			w.WriteHeader(http.StatusBadGateway)
			render.JSON(w, r, response.Error("image unavailable"))
			return
		}
		log.Error("failed to fetch image", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not fetch image"))
		return
	}
	defer func() {
		_ = result.Body.Close()
	}()

	if result.ContentType != "" {
		w.Header().Set("Content-Type", result.ContentType)
	}
	w.Header().Set("Cache-Control", "public, max-age=86400")

	if _, err := io.Copy(w, result.Body); err != nil {
		// Заголовки уже отправлены, остаётся только залогировать
		log.Warn("image stream interrupted", sl.Err(err))
	}
}
