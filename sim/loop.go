package sim

import (
	"context"
	"errors"
	"sync"
	"time"
)

var ErrLoopRunning = errors.New("sim: loop already running")

// Loop ticks a Simulation at a fixed interval on its own goroutine and calls
// OnTick after every step, before the next tick is scheduled. The interval
// follows the simulation's config, so a Load that changes the update rate
// takes effect from the next tick.
type Loop struct {
	OnTick func(StepStats)

	sim *Simulation

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewLoop(s *Simulation, onTick func(StepStats)) *Loop {
	return &Loop{OnTick: onTick, sim: s}
}

// Interval is the simulation's current DeltaTime as a timer period.
func (l *Loop) Interval() time.Duration {
	return l.sim.Config().Interval()
}

// Start begins ticking until ctx is cancelled or Stop is called.
func (l *Loop) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.done != nil {
		select {
		case <-l.done:
		default:
			return ErrLoopRunning
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.done = make(chan struct{})
	go l.run(ctx, l.done)
	return nil
}

// Stop cancels the pending tick and waits for the loop goroutine to exit.
// No OnTick call happens after Stop returns.
func (l *Loop) Stop() {
	l.mu.Lock()
	cancel, done := l.cancel, l.done
	l.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Wait blocks until the loop exits.
func (l *Loop) Wait() {
	l.mu.Lock()
	done := l.done
	l.mu.Unlock()
	if done != nil {
		<-done
	}
}

func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.done == nil {
		return false
	}
	select {
	case <-l.done:
		return false
	default:
		return true
	}
}

func (l *Loop) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	interval := l.Interval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			stats := l.sim.Step()
			if l.OnTick != nil {
				l.OnTick(stats)
			}
			if next := l.Interval(); next != interval {
				interval = next
				ticker.Reset(interval)
			}
		}
	}
}
