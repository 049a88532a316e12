package scheduler

import (
	"context"
	"sync"
	"time"

	"token_sale/internal/app/port"
)

type subscription struct {
	name string
	fn   func(ctx context.Context)
}

// Scheduler runs subscribed refresh callbacks on a fixed interval.
// Callbacks run sequentially per tick; a slow callback delays the others
// rather than overlapping with itself.
type Scheduler struct {
	interval time.Duration
	logger   port.Logger

	mu     sync.Mutex
	subs   map[uint64]subscription
	nextID uint64

	started  bool
	stopOnce sync.Once
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// New creates a scheduler with the given tick interval.
func New(interval time.Duration, logger port.Logger) *Scheduler {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Scheduler{
		interval: interval,
		logger:   logger,
		subs:     make(map[uint64]subscription),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Subscribe registers a callback and returns its unsubscribe function.
func (s *Scheduler) Subscribe(name string, fn func(ctx context.Context)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = subscription{name: name, fn: fn}
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// Start launches the tick loop. Subsequent calls are no-ops.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	go func() {
		defer close(s.doneCh)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		s.logger.Info("Refresh scheduler started", "interval", s.interval.String())
		for {
			select {
			case <-ctx.Done():
				return
			case <-s.stopCh:
				return
			case <-ticker.C:
				s.tick(ctx)
			}
		}
	}()
}

// Stop halts the tick loop and waits for the current tick to finish.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if started {
		<-s.doneCh
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	s.mu.Lock()
	snapshot := make([]subscription, 0, len(s.subs))
	for _, sub := range s.subs {
		snapshot = append(snapshot, sub)
	}
	s.mu.Unlock()

	for _, sub := range snapshot {
		sub.fn(ctx)
	}
}

var _ port.RefreshScheduler = (*Scheduler)(nil)
