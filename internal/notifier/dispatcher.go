package notifier

import (
	"context"
	"sync"
	"time"

	"github.com/turfmanager/service-booking/internal/domain/booking"
	"go.uber.org/zap"
)

// Dispatcher queues booking notifications for delivery off the request path.
type Dispatcher interface {
	Dispatch(b *booking.Booking, endpoint string)
}

// AsyncDispatcher delivers notifications on a single background goroutine
// with a bounded queue. When the queue is full the notification is dropped:
// forwarding is best-effort and must never block booking acceptance.
type AsyncDispatcher struct {
	notifier Notifier
	logger   *zap.Logger
	queue    chan dispatchJob
	wg       sync.WaitGroup
	once     sync.Once
}

type dispatchJob struct {
	booking  *booking.Booking
	endpoint string
}

// NewAsyncDispatcher creates and starts an AsyncDispatcher.
func NewAsyncDispatcher(n Notifier, logger *zap.Logger) *AsyncDispatcher {
	d := &AsyncDispatcher{
		notifier: n,
		logger:   logger,
		queue:    make(chan dispatchJob, 64),
	}
	d.wg.Add(1)
	go d.run()
	return d
}

// Dispatch enqueues a booking for forwarding. Never blocks.
func (d *AsyncDispatcher) Dispatch(b *booking.Booking, endpoint string) {
	select {
	case d.queue <- dispatchJob{booking: b, endpoint: endpoint}:
	default:
		d.logger.Warn("notification queue full, dropping booking forward",
			zap.String("booking_id", b.ID().String()),
		)
	}
}

// Close stops accepting new work and waits for queued deliveries to finish.
func (d *AsyncDispatcher) Close() {
	d.once.Do(func() { close(d.queue) })
	d.wg.Wait()
}

func (d *AsyncDispatcher) run() {
	defer d.wg.Done()
	for job := range d.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		d.notifier.Notify(ctx, job.booking, job.endpoint)
		cancel()
	}
}
