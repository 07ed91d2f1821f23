package screen

import (
	"context"
	"sync"
	"time"

	"github.com/grindlemire/go-motion/internal/debug"
)

const (
	defaultFPS            = 60
	defaultEventQueueSize = 256
)

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithFPS sets the frame rate. Values below 1 are ignored.
func WithFPS(fps int) LoopOption {
	return func(l *Loop) {
		if fps > 0 {
			l.frameDuration = time.Second / time.Duration(fps)
		}
	}
}

// WithEventQueueSize sets the capacity of the event queue.
func WithEventQueueSize(n int) LoopOption {
	return func(l *Loop) {
		if n > 0 {
			l.eventQueueSize = n
		}
	}
}

// Loop is a frame loop over a Stage. Events from watchers and QueueUpdate
// run on the loop goroutine; the paint callback runs whenever the stage is
// dirty at the end of a frame.
type Loop struct {
	stage          *Stage
	paint          func()
	frameDuration  time.Duration
	eventQueueSize int

	eventQueue chan func()
	stopCh     chan struct{}
	stopOnce   sync.Once
}

// NewLoop creates a loop painting stage with paint.
func NewLoop(stage *Stage, paint func(), opts ...LoopOption) *Loop {
	l := &Loop{
		stage:          stage,
		paint:          paint,
		frameDuration:  time.Second / defaultFPS,
		eventQueueSize: defaultEventQueueSize,
		stopCh:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.eventQueue = make(chan func(), l.eventQueueSize)
	return l
}

// FrameDuration returns the frame budget.
func (l *Loop) FrameDuration() time.Duration {
	return l.frameDuration
}

// Run starts watchers and runs frames until ctx is done or Stop is called.
func (l *Loop) Run(ctx context.Context, watchers ...Watcher) error {
	for _, w := range watchers {
		w.Start(l.eventQueue, l.stopCh)
	}
	go func() {
		select {
		case <-ctx.Done():
			l.Stop()
		case <-l.stopCh:
		}
	}()

	l.paintIfDirty()
	for {
		frameStart := time.Now()

		// Process events for up to half the frame budget.
		eventDeadline := frameStart.Add(l.frameDuration / 2)
	events:
		for time.Now().Before(eventDeadline) {
			select {
			case handler := <-l.eventQueue:
				handler()
			case <-l.stopCh:
				return ctx.Err()
			default:
				break events
			}
		}

		l.paintIfDirty()

		if elapsed := time.Since(frameStart); elapsed < l.frameDuration {
			select {
			case <-time.After(l.frameDuration - elapsed):
			case <-l.stopCh:
				return ctx.Err()
			}
		}
	}
}

func (l *Loop) paintIfDirty() {
	if l.stage.CheckAndClearDirty() && l.paint != nil {
		l.paint()
	}
}

// Stop signals Run to return and stops all watchers. Idempotent.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		debug.Log("Loop.Stop")
		close(l.stopCh)
	})
}

// QueueUpdate enqueues fn to run on the loop. Safe from any goroutine.
// Updates queued after Stop, or while the queue is full, are dropped.
func (l *Loop) QueueUpdate(fn func()) {
	enqueue(l.eventQueue, l.stopCh, fn, deliverDrop)
}
