package notification

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rxtech-lab/argo-trend/internal/logger"
	"github.com/rxtech-lab/argo-trend/internal/types"
	"go.uber.org/zap"
)

// SendTimeout bounds a single notifier call.
const SendTimeout = 10 * time.Second

// Dispatcher queues alerts for asynchronous delivery. Alerts are delivered
// only in modes that notify; in other modes Push is a no-op.
type Dispatcher struct {
	mode      types.Mode
	notifiers []Notifier
	log       *logger.Logger
	now       func() time.Time

	queue  chan Alert
	mu     sync.RWMutex
	closed bool
	done   chan struct{}

	sent    atomic.Int64
	dropped atomic.Int64
	failed  atomic.Int64
}

// NewDispatcher starts the delivery worker. bufferSize below 1 is treated as 1.
func NewDispatcher(mode types.Mode, bufferSize int, log *logger.Logger, notifiers ...Notifier) *Dispatcher {
	if bufferSize < 1 {
		bufferSize = 1
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	d := &Dispatcher{
		mode:      mode,
		notifiers: notifiers,
		log:       log.Named("notification"),
		now:       time.Now,
		queue:     make(chan Alert, bufferSize),
		done:      make(chan struct{}),
	}

	go d.run()

	return d
}

// Push queues an alert. It never blocks: when the queue is full the alert is
// dropped and counted.
func (d *Dispatcher) Push(title, message string) {
	if !d.mode.Notifies() {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.dropped.Add(1)

		return
	}

	select {
	case d.queue <- Alert{Title: title, Message: message, Time: d.now()}:
	default:
		d.dropped.Add(1)
		d.log.Warn("notification queue full, dropping alert", zap.String("title", title))
	}
}

// Close stops accepting alerts, delivers the queued ones and waits for the
// worker to exit or ctx to be done.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	select {
	case <-d.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Sent is the number of successful notifier calls.
func (d *Dispatcher) Sent() int64 { return d.sent.Load() }

// Dropped is the number of alerts that never reached the queue.
func (d *Dispatcher) Dropped() int64 { return d.dropped.Load() }

// Failed is the number of notifier calls that returned an error.
func (d *Dispatcher) Failed() int64 { return d.failed.Load() }

func (d *Dispatcher) run() {
	defer close(d.done)

	for alert := range d.queue {
		for _, notifier := range d.notifiers {
			d.deliver(notifier, alert)
		}
	}
}

func (d *Dispatcher) deliver(notifier Notifier, alert Alert) {
	ctx, cancel := context.WithTimeout(context.Background(), SendTimeout)
	defer cancel()

	if err := notifier.Send(ctx, alert); err != nil {
		d.failed.Add(1)
		d.log.Warn("failed to deliver notification",
			zap.String("notifier", notifier.Name()),
			zap.String("title", alert.Title),
			zap.Error(err),
		)

		return
	}

	d.sent.Add(1)
}
