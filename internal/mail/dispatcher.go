package mail

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/qzplatform/account-service/internal/logger"
	"github.com/qzplatform/account-service/internal/model"
)

var _ model.MailDispatcher = (*Dispatcher)(nil)

// Dispatcher delivers messages asynchronously through a bounded queue.
// Account mutations never wait on delivery: Enqueue hands the message to a
// background worker and returns. A failed delivery is retried a few times
// with backoff and then logged and dropped.
type Dispatcher struct {
	mailer     model.Mailer
	logger     *logger.Logger
	maxRetries uint64

	ch        chan model.MailMessage
	done      chan struct{}
	wg        sync.WaitGroup
	dropped   atomic.Uint64
	closed    atomic.Bool
	closeOnce sync.Once
}

// NewDispatcher creates a Dispatcher and starts its delivery worker.
func NewDispatcher(mailer model.Mailer, logger *logger.Logger, bufferSize int, maxRetries uint64) *Dispatcher {
	if bufferSize <= 0 {
		bufferSize = 1
	}

	d := &Dispatcher{
		mailer:     mailer,
		logger:     logger,
		maxRetries: maxRetries,
		ch:         make(chan model.MailMessage, bufferSize),
		done:       make(chan struct{}),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

func (d *Dispatcher) run() {
	defer d.wg.Done()

	for {
		select {
		case msg := <-d.ch:
			d.deliver(msg)
		case <-d.done:
			// Drain whatever is already queued, then exit.
			for {
				select {
				case msg := <-d.ch:
					d.deliver(msg)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) deliver(msg model.MailMessage) {
	backoff := retry.WithMaxRetries(d.maxRetries, retry.NewExponential(500*time.Millisecond))

	err := retry.Do(context.Background(), backoff, func(ctx context.Context) error {
		return retry.RetryableError(d.mailer.Send(ctx, msg))
	})
	if err != nil {
		d.logger.Error("Mail dispatcher: delivery failed",
			"to", msg.To,
			"subject", msg.Subject,
			"error", err.Error())
		return
	}

	d.logger.Debug("Mail dispatcher: message delivered",
		"to", msg.To,
		"subject", msg.Subject)
}

// Enqueue queues a message for delivery. If the queue is full the message is
// dropped and counted; the caller is never blocked past ctx.
func (d *Dispatcher) Enqueue(ctx context.Context, msg model.MailMessage) {
	if d.closed.Load() {
		d.dropped.Add(1)
		return
	}

	select {
	case d.ch <- msg:
	case <-ctx.Done():
		d.dropped.Add(1)
	case <-d.done:
		d.dropped.Add(1)
	}
}

// Dropped returns the number of messages abandoned without delivery.
func (d *Dispatcher) Dropped() uint64 {
	return d.dropped.Load()
}

// Close stops accepting new messages and waits for queued ones to drain.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.closed.Store(true)
		close(d.done)
	})
	d.wg.Wait()
}
