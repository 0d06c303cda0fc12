package proxy

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

// fetchFrom подменяет формы ссылок адресами тестового сервера.
func fetchFrom(t *testing.T, svc *Service, urls []string) (*Result, error) {
	t.Helper()
	ctx := context.Background()
	var lastErr error
	for _, u := range urls {
		result, err := svc.fetchOne(ctx, u)
		if err != nil {
			lastErr = err
			continue
		}
		return result, nil
	}
	if lastErr != nil {
		return nil, ErrContentUnavailable
	}
	return nil, ErrContentUnavailable
}

func TestService_FetchOne_BinaryContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpeg-bytes"))
	}))
	defer server.Close()

	svc := New(time.Second, newNoopLogger())
	result, err := svc.fetchOne(context.Background(), server.URL)

	require.NoError(t, err)
	defer func() {
		_ = result.Body.Close()
	}()

	assert.Equal(t, "image/jpeg", result.ContentType)
	body, err := io.ReadAll(result.Body)
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(body))
}

func TestService_FetchOne_HTMLInterstitialRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html>Virus scan warning</html>"))
	}))
	defer server.Close()

	svc := New(time.Second, newNoopLogger())
	_, err := svc.fetchOne(context.Background(), server.URL)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "interstitial")
}

func TestService_FetchOne_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	svc := New(time.Second, newNoopLogger())
	_, err := svc.fetchOne(context.Background(), server.URL)

	require.Error(t, err)
}

func TestService_FetchOne_AttemptTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Header().Set("Content-Type", "image/png")
	}))
	defer server.Close()

	svc := New(20*time.Millisecond, newNoopLogger())
	_, err := svc.fetchOne(context.Background(), server.URL)

	require.Error(t, err)
}

func TestService_RetryChainFallsThroughToNextForm(t *testing.T) {
	interstitial := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer interstitial.Close()

	binary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	}))
	defer binary.Close()

	svc := New(time.Second, newNoopLogger())
	result, err := fetchFrom(t, svc, []string{interstitial.URL, binary.URL})

	require.NoError(t, err)
	defer func() {
		_ = result.Body.Close()
	}()
	assert.Equal(t, "image/png", result.ContentType)
}

func TestService_Fetch_AllFormsFail(t *testing.T) {
	svc := New(time.Second, newNoopLogger())
	// Несуществующий File ID: все формы отдадут ошибку сети либо HTML
	svc.client.Transport = roundTripFunc(func(_ *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"text/html"}},
			Body:       io.NopCloser(strings.NewReader("<html></html>")),
		}, nil
	})

	_, err := svc.Fetch(context.Background(), "missing-id")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrContentUnavailable))
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
