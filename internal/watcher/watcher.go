// Package watcher provides a coarse "this directory's contents changed"
// signal on top of the platform notification facility: FSEvents on macOS,
// fsnotify (inotify, ReadDirectoryChangesW) elsewhere. It does not say which
// entry changed or how; callers re-scan the directory to find out.
package watcher

import (
	"context"
	"time"
)

// WaitResult is the outcome of a WaitChange call.
type WaitResult int

const (
	// TimedOut means the timeout elapsed with no change signal.
	TimedOut WaitResult = iota
	// Changed means the directory's contents changed since the last wait.
	Changed
)

// Subscription is a live registration for change notifications on a single
// directory. Created by Subscribe, released by Close. Notifications arriving
// between waits are coalesced into a single Changed result.
type Subscription struct {
	kick chan struct{}
	errc chan error
	done chan struct{}
	stop func() error
}

func newSubscription(stop func() error) *Subscription {
	return &Subscription{
		kick: make(chan struct{}, 1),
		errc: make(chan error, 1),
		done: make(chan struct{}),
		stop: stop,
	}
}

// notify records a change signal without blocking. Signals collapse: one
// pending kick is enough, the subsequent scan picks up everything.
func (s *Subscription) notify() {
	select {
	case s.kick <- struct{}{}:
	default:
	}
}

// fail records a backend error to be returned from the next WaitChange.
func (s *Subscription) fail(err error) {
	select {
	case s.errc <- err:
	default:
	}
}

// WaitChange blocks until the directory changes, the timeout elapses, the
// context is cancelled, or the backend fails. Cancellation surfaces as
// ctx.Err(); a backend error is fatal and the subscription should be closed.
func (s *Subscription) WaitChange(ctx context.Context, timeout time.Duration) (WaitResult, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return TimedOut, ctx.Err()
	case err := <-s.errc:
		return TimedOut, err
	case <-s.kick:
		return Changed, nil
	case <-timer.C:
		return TimedOut, nil
	}
}

// Close releases the OS registration. Safe to call once.
func (s *Subscription) Close() error {
	close(s.done)
	return s.stop()
}
