package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/taskhub/records-api/internal/api/metrics"
	"github.com/taskhub/records-api/internal/core/domain"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Sink consumes dequeued activity entries.
type Sink interface {
	Process(ctx context.Context, e domain.ActivityEntry) error
}

// Dispatcher routes activity entries to a fixed set of workers using
// consistent hashing on the record id, guaranteeing per-record ordering of
// the audit trail.
type Dispatcher struct {
	workers []chan domain.ActivityEntry
	sink    Sink
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sink Sink, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.ActivityEntry, numWorkers),
		sink:    sink,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ActivityEntry, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Record enqueues an entry to the worker responsible for its record id,
// satisfying ports.ActivityRecorder. Non-blocking up to channelBuffer
// capacity.
func (d *Dispatcher) Record(e domain.ActivityEntry) {
	i := d.shardIndex(e.RecordID)
	d.workers[i] <- e
	metrics.ActivityQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(len(d.workers[i])))
}

// shardIndex maps a record id deterministically to a worker index.
func (d *Dispatcher) shardIndex(recordID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(recordID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ActivityEntry) {
	workerID := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-ch:
			if !ok {
				return
			}
			metrics.ActivityQueueDepth.WithLabelValues(workerID).Set(float64(len(ch)))
			if err := d.sink.Process(ctx, e); err != nil {
				metrics.ActivityErrorsTotal.Inc()
				d.log.Error().Err(err).
					Str("resource", e.Resource).
					Str("record_id", e.RecordID).
					Int("worker_id", id).
					Msg("activity processing failed")
				continue
			}
			metrics.MutationsTotal.WithLabelValues(e.Resource, e.Action).Inc()
		}
	}
}
