package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Priya00300/url-shortener-devops/internal/metrics"
)

var (
	// ErrEmptyBatch rejects a batch dispatch with no events.
	ErrEmptyBatch = errors.New("click event batch is empty")

	// ErrBatchTooLarge rejects a batch dispatch above the configured maximum.
	ErrBatchTooLarge = errors.New("click event batch too large")
)

// Ingestor is the analytics collaborator surface the dispatcher delivers to.
type Ingestor interface {
	Ingest(ctx context.Context, event *ClickEvent) error
	IngestBatch(ctx context.Context, events []*ClickEvent) error
	Healthy(ctx context.Context) bool
}

// Config tunes the dispatcher. Zero values fall back to defaults.
type Config struct {
	QueueSize       int
	MaxAttempts     int
	BaseDelay       time.Duration
	MaxBatchSize    int
	DeliveryTimeout time.Duration
}

func (c Config) withDefaults() Config {
	if c.QueueSize <= 0 {
		c.QueueSize = 1024
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = 3
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = 500 * time.Millisecond
	}
	if c.MaxBatchSize <= 0 {
		c.MaxBatchSize = 1000
	}
	if c.DeliveryTimeout <= 0 {
		c.DeliveryTimeout = 5 * time.Second
	}
	return c
}

// Dispatcher queues click events and delivers them to the analytics
// service from a detached worker, retrying transient failures with
// backoff and dropping events once the attempt budget runs out. Analytics
// is best effort: Dispatch never blocks and delivery failures never reach
// the redirect path.
type Dispatcher struct {
	ingestor Ingestor
	cfg      Config
	logger   *zap.Logger

	queue  chan deliveryJob
	cancel context.CancelFunc
	done   chan struct{}
}

// deliveryJob is one queue entry: a single event or a whole batch.
type deliveryJob struct {
	event *ClickEvent
	batch []*ClickEvent
}

func (j deliveryJob) size() int {
	if j.event != nil {
		return 1
	}
	return len(j.batch)
}

func (j deliveryJob) send(ctx context.Context, ingestor Ingestor) error {
	if j.event != nil {
		return ingestor.Ingest(ctx, j.event)
	}
	return ingestor.IngestBatch(ctx, j.batch)
}

// NewDispatcher creates a dispatcher delivering to ingestor.
func NewDispatcher(ingestor Ingestor, logger *zap.Logger, cfg Config) *Dispatcher {
	cfg = cfg.withDefaults()

	return &Dispatcher{
		ingestor: ingestor,
		cfg:      cfg,
		logger:   logger,
		queue:    make(chan deliveryJob, cfg.QueueSize),
		done:     make(chan struct{}),
	}
}

// Start launches the delivery worker.
func (d *Dispatcher) Start(ctx context.Context) error {
	ctx, d.cancel = context.WithCancel(ctx)
	go d.deliverLoop(ctx)
	return nil
}

// Shutdown stops the worker and discards whatever is still queued. Queued
// events are counted and logged; losing them is accepted behavior.
func (d *Dispatcher) Shutdown() error {
	if d.cancel == nil {
		return nil
	}

	d.cancel()
	<-d.done
	return nil
}

// Dispatch enqueues one click event and returns immediately. When the
// queue is full the event is dropped and counted, never blocking the
// caller.
func (d *Dispatcher) Dispatch(event *ClickEvent) {
	if event == nil {
		return
	}

	select {
	case d.queue <- deliveryJob{event: event}:
		metrics.DispatchQueueDepth.Inc()
	default:
		metrics.ClickEventsDropped.WithLabelValues("queue_full").Inc()
		d.logger.Warn("dispatch queue full, dropping click event", zap.String("code", event.Code))
	}
}

// DispatchBatch enqueues a bounded batch for delivery in a single
// collaborator call. Size violations are the only reported failures;
// delivery itself stays fire and forget.
func (d *Dispatcher) DispatchBatch(events []*ClickEvent) error {
	if len(events) == 0 {
		return ErrEmptyBatch
	}
	if len(events) > d.cfg.MaxBatchSize {
		return fmt.Errorf("%w: %d events, maximum %d", ErrBatchTooLarge, len(events), d.cfg.MaxBatchSize)
	}

	select {
	case d.queue <- deliveryJob{batch: events}:
		metrics.DispatchQueueDepth.Inc()
	default:
		metrics.ClickEventsDropped.WithLabelValues("queue_full").Add(float64(len(events)))
		d.logger.Warn("dispatch queue full, dropping click event batch", zap.Int("events", len(events)))
	}

	return nil
}

// Healthy probes the analytics collaborator. Diagnostic only; dispatch
// proceeds regardless of the result.
func (d *Dispatcher) Healthy(ctx context.Context) bool {
	return d.ingestor.Healthy(ctx)
}

func (d *Dispatcher) deliverLoop(ctx context.Context) {
	defer close(d.done)

	for {
		// Checked before the select so a cancellation during delivery
		// discards the backlog instead of racing it.
		if ctx.Err() != nil {
			d.discardQueued()
			return
		}

		select {
		case <-ctx.Done():
			d.discardQueued()
			return
		case job := <-d.queue:
			metrics.DispatchQueueDepth.Dec()
			d.deliver(ctx, job)
		}
	}
}

// deliver runs the bounded retry loop for one job. Each attempt gets a
// fresh timeout context detached from the worker's, so shutdown never
// cancels an attempt already in flight.
func (d *Dispatcher) deliver(ctx context.Context, job deliveryJob) {
	for attempt := 1; attempt <= d.cfg.MaxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(context.Background(), d.cfg.DeliveryTimeout)
		err := job.send(attemptCtx, d.ingestor)
		cancel()

		if err == nil {
			metrics.ClickEventsDelivered.Add(float64(job.size()))
			return
		}

		if !IsRetryable(err) {
			metrics.ClickEventsDropped.WithLabelValues("malformed").Add(float64(job.size()))
			d.logger.Warn("analytics rejected click events, dropping",
				zap.Int("events", job.size()),
				zap.Error(err),
			)
			return
		}

		metrics.ClickEventRetries.Inc()
		d.logger.Debug("click event delivery failed",
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		if attempt == d.cfg.MaxAttempts {
			break
		}

		select {
		case <-time.After(d.cfg.BaseDelay * time.Duration(attempt)):
		case <-ctx.Done():
			metrics.ClickEventsDropped.WithLabelValues("shutdown").Add(float64(job.size()))
			d.logger.Info("shutdown during delivery backoff, dropping click events",
				zap.Int("events", job.size()),
			)
			return
		}
	}

	metrics.ClickEventsDropped.WithLabelValues("exhausted").Add(float64(job.size()))
	d.logger.Warn("click event delivery exhausted retries, dropping",
		zap.Int("events", job.size()),
		zap.Int("attempts", d.cfg.MaxAttempts),
	)
}

func (d *Dispatcher) discardQueued() {
	dropped := 0
	for {
		select {
		case job := <-d.queue:
			metrics.DispatchQueueDepth.Dec()
			dropped += job.size()
		default:
			if dropped > 0 {
				metrics.ClickEventsDropped.WithLabelValues("shutdown").Add(float64(dropped))
				d.logger.Info("dropped undelivered click events at shutdown", zap.Int("events", dropped))
			}
			return
		}
	}
}
