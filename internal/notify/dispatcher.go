package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/developer-prabhu-charan/SS-Fresh-Supermarket/internal/domain"
)

type job struct {
	id    string
	order *domain.ExpandedOrder
}

// Dispatcher sends order notifications from a single background worker so the
// request path never waits on a channel. Failed sends are logged and dropped.
type Dispatcher struct {
	notifiers []Notifier
	timeout   time.Duration
	logger    *zap.Logger

	queue     chan job
	done      chan struct{}
	closeOnce sync.Once
	mu        sync.RWMutex
	closed    bool
}

// NewDispatcher starts the worker. Close must be called to drain the queue.
func NewDispatcher(notifiers []Notifier, queueSize int, timeout time.Duration, logger *zap.Logger) *Dispatcher {
	if queueSize < 1 {
		queueSize = 1
	}
	d := &Dispatcher{
		notifiers: notifiers,
		timeout:   timeout,
		logger:    logger,
		queue:     make(chan job, queueSize),
		done:      make(chan struct{}),
	}
	go d.run()
	return d
}

// Enqueue schedules a notification for order. It never blocks: when the queue is
// full or the dispatcher is closed the notification is dropped and false returned.
func (d *Dispatcher) Enqueue(order *domain.ExpandedOrder) bool {
	if len(d.notifiers) == 0 {
		return false
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		d.logger.Warn("Notification dropped, dispatcher closed", zap.String("order_id", order.ID.Hex()))
		return false
	}

	j := job{id: uuid.NewString(), order: order}
	select {
	case d.queue <- j:
		return true
	default:
		d.logger.Warn("Notification dropped, queue full",
			zap.String("order_id", order.ID.Hex()),
			zap.Int("queue_size", cap(d.queue)),
		)
		return false
	}
}

// Close stops accepting notifications and waits until queued ones are sent or
// ctx is done.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.closeOnce.Do(func() {
		d.mu.Lock()
		d.closed = true
		close(d.queue)
		d.mu.Unlock()
	})

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (d *Dispatcher) run() {
	defer close(d.done)
	for j := range d.queue {
		d.deliver(j)
	}
}

func (d *Dispatcher) deliver(j job) {
	text := FormatOrderSummary(j.order)
	for _, n := range d.notifiers {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		err := n.Send(ctx, text)
		cancel()

		if err != nil {
			d.logger.Warn("Order notification failed",
				zap.String("channel", n.Name()),
				zap.String("job_id", j.id),
				zap.String("order_id", j.order.ID.Hex()),
				zap.Error(err),
			)
			continue
		}
		d.logger.Info("Order notification sent",
			zap.String("channel", n.Name()),
			zap.String("job_id", j.id),
			zap.String("order_id", j.order.ID.Hex()),
		)
	}
}
