package sweeper

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/auto-catalog/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) DeleteExpiredSubscriptions(ctx context.Context, now time.Time) ([]*models.Subscription, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Subscription), args.Error(1)
}

type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(exchange, routingKey string, message any) error {
	return m.Called(exchange, routingKey, message).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestService_SweepOnce(t *testing.T) {
	subEnd := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		expired      []*models.Subscription
		repoErr      error
		wantPublish  int
		publishCheck func(t *testing.T, pub *PublisherMock)
	}{
		{
			name: "publishes one notification per removed row",
			expired: []*models.Subscription{
				{ID: 1, UserID: 100, SubEnd: subEnd},
				{ID: 2, UserID: 200, SubEnd: subEnd},
			},
			wantPublish: 2,
			publishCheck: func(t *testing.T, pub *PublisherMock) {
				pub.AssertCalled(t, "Publish", "notifications", "expired",
					mock.MatchedBy(func(msg any) bool {
						n, ok := msg.(models.ExpiredNotification)
						return ok && n.UserID == 100 && n.MessageID != "" && n.SubEnd.Equal(subEnd)
					}))
			},
		},
		{
			name:        "nothing expired means nothing published",
			expired:     []*models.Subscription{},
			wantPublish: 0,
		},
		{
			name:        "storage failure is swallowed without publishing",
			repoErr:     errors.New("connection refused"),
			wantPublish: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			repo.On("DeleteExpiredSubscriptions", mock.Anything, mock.Anything).
				Return(tt.expired, tt.repoErr)

			pub := new(PublisherMock)
			pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

			svc := New(repo, pub, time.Hour, newNoopLogger())
			svc.SweepOnce(context.Background())

			pub.AssertNumberOfCalls(t, "Publish", tt.wantPublish)
			if tt.publishCheck != nil {
				tt.publishCheck(t, pub)
			}
		})
	}
}

func TestService_SweepOnce_PublishErrorDoesNotStopOthers(t *testing.T) {
	repo := new(RepoMock)
	repo.On("DeleteExpiredSubscriptions", mock.Anything, mock.Anything).
		Return([]*models.Subscription{
			{ID: 1, UserID: 100},
			{ID: 2, UserID: 200},
		}, nil)

	pub := new(PublisherMock)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("channel closed"))

	svc := New(repo, pub, time.Hour, newNoopLogger())
	svc.SweepOnce(context.Background())

	pub.AssertNumberOfCalls(t, "Publish", 2)
}

func TestService_Run_StopsOnContextCancel(t *testing.T) {
	repo := new(RepoMock)
	repo.On("DeleteExpiredSubscriptions", mock.Anything, mock.Anything).
		Return([]*models.Subscription{}, nil)

	svc := New(repo, new(PublisherMock), 10*time.Millisecond, newNoopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		svc.Run(ctx)
		close(done)
	}()

	time.Sleep(35 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper did not stop after context cancel")
	}

	assert.GreaterOrEqual(t, len(repo.Calls), 2)
}
