//go:build darwin

package watcher

import (
	"fmt"

	"github.com/fsnotify/fsevents"

	"github.com/lumipallolabs/incoming/internal/logging"
)

// Subscribe registers an FSEvents stream on dir. The stream is scoped to the
// directory itself; events for anything beneath it collapse into one kick.
func Subscribe(dir string) (*Subscription, error) {
	dev, err := fsevents.DeviceForPath(dir)
	if err != nil {
		return nil, fmt.Errorf("fsevents device for %s: %w", dir, err)
	}

	stream := &fsevents.EventStream{
		Paths:  []string{dir},
		Device: dev,
		Flags:  fsevents.WatchRoot,
	}

	sub := newSubscription(func() error {
		stream.Stop()
		return nil
	})

	stream.Start()
	go func() {
		for {
			select {
			case <-sub.done:
				return
			case events, ok := <-stream.Events:
				if !ok {
					return
				}
				if len(events) > 0 {
					logging.Watcher.Printf("fsevents: %d event(s)", len(events))
					sub.notify()
				}
			}
		}
	}()

	return sub, nil
}
