package jobs

import (
	"context"
	"log"
	"log/slog"
	"sync"
	"time"

	"locationservice/internal/models"
)

// EventWriter persists batches of search events.
type EventWriter interface {
	InsertSearchEvents(ctx context.Context, events []models.SearchEvent) (int64, error)
}

// StatisticsRecorder queues search events and writes them to the database in
// batches from a single background worker. Events are dropped when the queue
// is full so request handling never blocks on statistics.
type StatisticsRecorder struct {
	writer    EventWriter
	interval  time.Duration
	batchSize int
	queue     chan models.SearchEvent

	mu      sync.Mutex
	dropped int64
	stopped bool
	done    chan struct{}
}

// NewStatisticsRecorder creates a recorder with a queue of queueSize events
// flushed every interval.
func NewStatisticsRecorder(writer EventWriter, queueSize int, interval time.Duration) *StatisticsRecorder {
	if queueSize <= 0 {
		queueSize = 1024
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &StatisticsRecorder{
		writer:    writer,
		interval:  interval,
		batchSize: 500,
		queue:     make(chan models.SearchEvent, queueSize),
		done:      make(chan struct{}),
	}
}

// Record enqueues an event. Returns false if the event was dropped.
func (s *StatisticsRecorder) Record(e models.SearchEvent) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return false
	}

	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	select {
	case s.queue <- e:
		return true
	default:
		s.dropped++
		return false
	}
}

// Dropped returns the number of events dropped because the queue was full.
func (s *StatisticsRecorder) Dropped() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// Start runs the flush loop until ctx is cancelled, then writes whatever is
// still queued.
func (s *StatisticsRecorder) Start(ctx context.Context) {
	log.Printf("Statistics recorder started (interval: %v, queue: %d)", s.interval, cap(s.queue))
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	batch := make([]models.SearchEvent, 0, s.batchSize)
	for {
		select {
		case <-ctx.Done():
			s.mu.Lock()
			s.stopped = true
			s.mu.Unlock()
			batch = s.drain(batch)
			s.flush(batch)
			log.Println("Statistics recorder stopped")
			return
		case e := <-s.queue:
			batch = append(batch, e)
			if len(batch) >= s.batchSize {
				s.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			s.flush(batch)
			batch = batch[:0]
		}
	}
}

// Wait blocks until Start has returned.
func (s *StatisticsRecorder) Wait() {
	<-s.done
}

func (s *StatisticsRecorder) drain(batch []models.SearchEvent) []models.SearchEvent {
	for {
		select {
		case e := <-s.queue:
			batch = append(batch, e)
		default:
			return batch
		}
	}
}

func (s *StatisticsRecorder) flush(batch []models.SearchEvent) {
	if len(batch) == 0 {
		return
	}

	// The request context is gone by now; give the write its own deadline.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := s.writer.InsertSearchEvents(ctx, batch); err != nil {
		slog.Error("failed to write search events", "count", len(batch), "error", err)
	}
}
