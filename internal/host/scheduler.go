package host

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Scheduler decides when the next tick runs. The simulator never schedules
// itself; the host picks the cadence.
type Scheduler interface {
	// Wait blocks until the next tick is due. It returns the context error on
	// cancellation and ErrSchedulerDone when the scheduler is exhausted.
	Wait(ctx context.Context) error
	// Stop releases resources. Wait returns ErrSchedulerDone afterwards.
	Stop()
}

// TickerScheduler ticks on the wall clock. Missed ticks are dropped, not
// queued, so a slow frame never causes a burst.
type TickerScheduler struct {
	ticker *time.Ticker
	done   chan struct{}
	once   sync.Once
}

func NewTickerScheduler(interval time.Duration) (*TickerScheduler, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%v: %w", interval, ErrInvalidInterval)
	}
	return &TickerScheduler{
		ticker: time.NewTicker(interval),
		done:   make(chan struct{}),
	}, nil
}

func (s *TickerScheduler) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-s.done:
		return ErrSchedulerDone
	case <-s.ticker.C:
		return nil
	}
}

func (s *TickerScheduler) Stop() {
	s.once.Do(func() {
		s.ticker.Stop()
		close(s.done)
	})
}

// CountScheduler grants a fixed number of ticks back to back. Headless
// replays and tests run on it.
type CountScheduler struct {
	mu        sync.Mutex
	remaining uint64
}

func NewCountScheduler(ticks uint64) *CountScheduler {
	return &CountScheduler{remaining: ticks}
}

func (s *CountScheduler) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.remaining == 0 {
		return ErrSchedulerDone
	}
	s.remaining--
	return nil
}

func (s *CountScheduler) Stop() {
	s.mu.Lock()
	s.remaining = 0
	s.mu.Unlock()
}
