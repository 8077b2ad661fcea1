package signal

import (
	"sync"
)

// Latch is a one-shot signal.
//
// Once notified it stays notified: every watcher channel, including those
// registered afterwards, is closed. The zero value is a latch that has not been
// notified.
type Latch struct {
	m        sync.Mutex
	notified bool
	done     chan struct{}
	watchers map[chan<- struct{}]struct{}
}

var _ Signal = (*Latch)(nil)

// Watch registers a watcher channel to be closed when the latch is notified.
// If it has already been notified, the watcher is closed immediately.
func (l *Latch) Watch(watcher chan<- struct{}) CancelFunc {
	l.m.Lock()
	defer l.m.Unlock()

	if l.notified {
		close(watcher)
		return func() {}
	}

	if l.watchers == nil {
		l.watchers = map[chan<- struct{}]struct{}{}
	}

	l.watchers[watcher] = struct{}{}

	return func() {
		l.m.Lock()
		defer l.m.Unlock()
		delete(l.watchers, watcher)
	}
}

// Done returns a channel that is closed when the latch is notified.
//
// Every call returns the same channel.
func (l *Latch) Done() <-chan struct{} {
	l.m.Lock()
	defer l.m.Unlock()

	if l.done == nil {
		l.done = make(chan struct{})
		if l.notified {
			close(l.done)
		}
	}

	return l.done
}

// Notify closes every watcher channel. Calls after the first have no effect.
func (l *Latch) Notify() {
	l.m.Lock()
	defer l.m.Unlock()

	if l.notified {
		return
	}

	l.notified = true

	if l.done != nil {
		close(l.done)
	}

	for ch := range l.watchers {
		close(ch)
	}

	l.watchers = nil
}

// IsNotified returns true if the latch has been notified.
func (l *Latch) IsNotified() bool {
	l.m.Lock()
	defer l.m.Unlock()
	return l.notified
}
