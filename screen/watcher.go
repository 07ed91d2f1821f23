package screen

import (
	"time"

	"github.com/grindlemire/go-motion/internal/debug"
)

// Watcher is an event source started by Loop.Run. Its handlers run on the
// loop goroutine, never on the watcher's own.
type Watcher interface {
	// Start begins the watcher goroutine. It must return promptly and stop
	// the goroutine once stopCh closes.
	Start(eventQueue chan<- func(), stopCh <-chan struct{})
}

// delivery says what a watcher does when the event queue is full.
type delivery int

const (
	deliverWait delivery = iota // block until the loop catches up or stops
	deliverDrop                 // drop the event
)

// enqueue hands fn to the loop. It reports false once stopCh is closed, at
// which point the watcher goroutine must return.
func enqueue(eventQueue chan<- func(), stopCh <-chan struct{}, fn func(), mode delivery) bool {
	if mode == deliverDrop {
		select {
		case eventQueue <- fn:
		case <-stopCh:
			return false
		default:
			debug.Log("watcher: queue full, dropping event")
		}
		return true
	}
	select {
	case eventQueue <- fn:
		return true
	case <-stopCh:
		return false
	}
}

// ChannelWatcher forwards values from a channel to a handler on the loop.
// Values are never dropped: a full queue holds the channel back.
type ChannelWatcher[T any] struct {
	ch      <-chan T
	handler func(T)
}

// Watch creates a watcher that calls handler on the loop for every value
// received on ch. It stops when ch closes or the loop stops.
//
// Example:
//
//	edits := make(chan []string)
//	w := screen.Watch(edits, func(keys []string) {
//	    list.Set(rowsFor(keys))
//	})
func Watch[T any](ch <-chan T, handler func(T)) *ChannelWatcher[T] {
	return &ChannelWatcher[T]{ch: ch, handler: handler}
}

// Start implements Watcher.
func (w *ChannelWatcher[T]) Start(eventQueue chan<- func(), stopCh <-chan struct{}) {
	go func() {
		for {
			var val T
			var ok bool
			select {
			case <-stopCh:
				return
			case val, ok = <-w.ch:
			}
			if !ok {
				debug.Log("ChannelWatcher: channel closed")
				return
			}
			if !enqueue(eventQueue, stopCh, func() { w.handler(val) }, deliverWait) {
				return
			}
		}
	}()
}

// frameWatcher fires once per frame interval.
type frameWatcher struct {
	interval time.Duration
	handler  func()
}

// OnFrame creates a watcher that calls handler on the loop every interval.
// A frame that is still queued when the next one is due is dropped.
func OnFrame(interval time.Duration, handler func()) Watcher {
	return &frameWatcher{interval: interval, handler: handler}
}

// Start implements Watcher.
func (w *frameWatcher) Start(eventQueue chan<- func(), stopCh <-chan struct{}) {
	go func() {
		debug.Log("frameWatcher started (%v)", w.interval)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				if !enqueue(eventQueue, stopCh, w.handler, deliverDrop) {
					return
				}
			}
		}
	}()
}
