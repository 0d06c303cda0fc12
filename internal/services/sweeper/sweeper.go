// Package sweeper содержит фоновую очистку истёкших подписок
// с публикацией уведомлений в RabbitMQ.
package sweeper

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/auto-catalog/internal/lib/sl"
	"github.com/magabrotheeeer/auto-catalog/internal/models"
	"github.com/magabrotheeeer/auto-catalog/internal/rabbitmq"
)

// SubscriptionRepository определяет методы для удаления истёкших подписок.
type SubscriptionRepository interface {
	// DeleteExpiredSubscriptions удаляет истёкшие строки и возвращает их.
	DeleteExpiredSubscriptions(ctx context.Context, now time.Time) ([]*models.Subscription, error)
}

// Publisher публикует сообщения в брокер.
type Publisher interface {
	Publish(exchange, routingKey string, message any) error
}

// ChannelPublisher публикует сообщения через канал RabbitMQ.
type ChannelPublisher struct {
	Ch *amqp.Channel
}

func (p *ChannelPublisher) Publish(exchange, routingKey string, message any) error {
	return rabbitmq.PublishMessage(p.Ch, exchange, routingKey, message)
}

// Service периодически удаляет истёкшие подписки и уведомляет бота.
type Service struct {
	repo     SubscriptionRepository
	pub      Publisher
	interval time.Duration
	log      *slog.Logger
}

// New создает новый экземпляр Service.
func New(repo SubscriptionRepository, pub Publisher, interval time.Duration, log *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		pub:      pub,
		interval: interval,
		log:      log,
	}
}

// Run запускает цикл очистки. Первый проход выполняется сразу,
// дальше по тикеру до отмены контекста.
func (s *Service) Run(ctx context.Context) {
	s.SweepOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.SweepOnce(ctx)
		case <-ctx.Done():
			s.log.Info("subscription sweeper stopped")
			return
		}
	}
}

// SweepOnce выполняет один проход: удаляет истёкшие подписки и
// публикует уведомление по каждой удалённой строке.
func (s *Service) SweepOnce(ctx context.Context) {
	s.log.Info("starting expired subscriptions sweep")
	expired, err := s.repo.DeleteExpiredSubscriptions(ctx, time.Now())
	if err != nil {
		s.log.Error("failed to sweep expired subscriptions", sl.Err(err))
		return
	}
	if len(expired) == 0 {
		s.log.Info("no expired subscriptions found")
		return
	}
	s.log.Info("removed expired subscriptions", slog.Int("count", len(expired)))

	for _, sub := range expired {
		notification := models.ExpiredNotification{
			MessageID: uuid.NewString(),
			UserID:    sub.UserID,
			SubEnd:    sub.SubEnd,
		}
		if err := s.pub.Publish(rabbitmq.NotificationExchange, "expired", notification); err != nil {
			s.log.Error("failed to publish expiry notification",
				sl.Err(err), sl.UserID(sub.UserID))
		}
	}
}
