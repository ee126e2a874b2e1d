package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/freelancebill/invoicing-system/internal/api/metrics"
	"github.com/freelancebill/invoicing-system/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 64
)

// Dispatcher routes outbound emails to a fixed set of workers using
// consistent hashing on the invoice id, so notifications about one invoice
// are delivered in the order they were enqueued.
type Dispatcher struct {
	workers []chan ports.EmailMessage
	mailer  ports.Mailer
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, mailer ports.Mailer, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.EmailMessage, numWorkers),
		mailer:  mailer,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.EmailMessage, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a message to the worker responsible for its invoice.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(msg ports.EmailMessage) {
	idx := d.shardIndex(msg.InvoiceID)
	d.workers[idx] <- msg
	metrics.NotificationQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps an invoice id deterministically to a worker index.
func (d *Dispatcher) shardIndex(invoiceID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(invoiceID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.EmailMessage) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			metrics.NotificationQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))

			start := time.Now()
			err := d.mailer.Send(ctx, msg)
			metrics.EmailSendDuration.Observe(time.Since(start).Seconds())
			if err != nil {
				metrics.EmailsErrorsTotal.WithLabelValues("send_failed").Inc()
				d.log.Error().Err(err).
					Str("invoice_id", msg.InvoiceID).
					Str("to", msg.To).
					Int("worker_id", id).
					Msg("email delivery failed")
				continue
			}
			metrics.EmailsSentTotal.Inc()
			d.log.Info().
				Str("invoice_id", msg.InvoiceID).
				Str("to", msg.To).
				Msg("email delivered")
		}
	}
}
