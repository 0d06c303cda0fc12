// Package proxy содержит потоковый прокси изображений Google Drive.
// Drive вместо бинарного содержимого может вернуть HTML-страницу с
// предупреждением, поэтому прокси перебирает несколько форм ссылки.
package proxy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/magabrotheeeer/auto-catalog/internal/lib/drive"
	"github.com/magabrotheeeer/auto-catalog/internal/lib/sl"
)

// ErrContentUnavailable возвращается, когда ни одна форма ссылки
// не отдала бинарное содержимое.
var ErrContentUnavailable = errors.New("content unavailable")

// DefaultAttemptTimeout ограничивает время одной попытки скачивания.
const DefaultAttemptTimeout = 10 * time.Second

// Result содержит поток содержимого и его тип. Тело обязан закрыть вызывающий.
type Result struct {
	Body        io.ReadCloser
	ContentType string
}

// Service скачивает изображения Google Drive, перебирая формы ссылки.
type Service struct {
	client  *http.Client
	timeout time.Duration
	log     *slog.Logger
}

// New создает новый экземпляр Service. Нулевой timeout заменяется
// значением по умолчанию.
func New(timeout time.Duration, log *slog.Logger) *Service {
	if timeout <= 0 {
		timeout = DefaultAttemptTimeout
	}
	return &Service{
		client: &http.Client{
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return errors.New("too many redirects")
				}
				return nil
			},
		},
		timeout: timeout,
		log:     log,
	}
}

// Fetch возвращает содержимое изображения по File ID. Формы ссылки
// перебираются по очереди: thumbnail, export=download, export=view.
// HTML в ответе означает страницу-предупреждение — пробуем следующую форму.
func (s *Service) Fetch(ctx context.Context, fileID string) (*Result, error) {
	const op = "proxy.Fetch"

	attempts := []string{
		drive.ThumbnailURL(fileID),
		drive.DownloadURL(fileID),
		drive.ViewURL(fileID),
	}

	for _, url := range attempts {
		result, err := s.fetchOne(ctx, url)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%s: %w", op, ctx.Err())
			}
			s.log.Debug("image fetch attempt failed",
				slog.String("url", url), sl.Err(err))
			continue
		}
		return result, nil
	}

	return nil, fmt.Errorf("%s: %w", op, ErrContentUnavailable)
}

func (s *Service) fetchOne(ctx context.Context, url string) (*Result, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, s.timeout)

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, url, nil)
	if err != nil {
		cancel()
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		cancel()
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		cancel()
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if strings.Contains(strings.ToLower(contentType), "text/html") {
		// Страница-предупреждение Drive вместо файла
		_ = resp.Body.Close()
		cancel()
		return nil, errors.New("html interstitial instead of content")
	}

	return &Result{
		Body:        &cancelReadCloser{ReadCloser: resp.Body, cancel: cancel},
		ContentType: contentType,
	}, nil
}

// cancelReadCloser освобождает контекст попытки вместе с телом ответа.
type cancelReadCloser struct {
	io.ReadCloser
	cancel context.CancelFunc
}

func (c *cancelReadCloser) Close() error {
	err := c.ReadCloser.Close()
	c.cancel()
	return err
}
