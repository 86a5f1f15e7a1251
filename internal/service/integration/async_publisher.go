package integration

import (
	"context"
	"fmt"
	"time"

	"github.com/RubachokBoss/hostel-report-service/internal/models"
	"github.com/RubachokBoss/hostel-report-service/internal/worker"
	"github.com/rs/zerolog"
)

type EventPublisher interface {
	PublishReceiptIssued(ctx context.Context, event *models.ReceiptIssuedEvent) error
}

// AsyncPublisher отправляет события через пул; при полной очереди событие теряется, ответ не ждет
type AsyncPublisher struct {
	pool    *worker.WorkerPool
	next    EventPublisher
	timeout time.Duration
	logger  zerolog.Logger
}

func NewAsyncPublisher(pool *worker.WorkerPool, next EventPublisher, timeout time.Duration, logger zerolog.Logger) *AsyncPublisher {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &AsyncPublisher{
		pool:    pool,
		next:    next,
		timeout: timeout,
		logger:  logger,
	}
}

func (p *AsyncPublisher) PublishReceiptIssued(_ context.Context, event *models.ReceiptIssuedEvent) error {
	err := p.pool.TrySubmit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()

		if err := p.next.PublishReceiptIssued(ctx, event); err != nil {
			p.logger.Error().
				Err(err).
				Str("event_id", event.EventID).
				Str("receipt_number", event.ReceiptNumber).
				Msg("Failed to deliver receipt issued event")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule event: %w", err)
	}
	return nil
}
