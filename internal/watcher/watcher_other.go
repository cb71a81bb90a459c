//go:build !darwin

package watcher

import (
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/lumipallolabs/incoming/internal/logging"
)

// Subscribe registers an fsnotify watch on dir. Any operation inside the
// directory — create, remove, rename, write — counts as a change; the caller's
// re-scan decides what is actually new, so spurious kicks are harmless.
func Subscribe(dir string) (*Subscription, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	sub := newSubscription(w.Close)

	go func() {
		for {
			select {
			case <-sub.done:
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				logging.Watcher.Printf("fsnotify: %s", event)
				sub.notify()
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				sub.fail(err)
			}
		}
	}()

	return sub, nil
}
