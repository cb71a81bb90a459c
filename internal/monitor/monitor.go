// Package monitor ties the change-notification subscription and the directory
// scanner into the long-running watch loop: seed, wait, settle, scan, emit.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"github.com/lumipallolabs/incoming/internal/logging"
	"github.com/lumipallolabs/incoming/internal/scanner"
	"github.com/lumipallolabs/incoming/internal/seenset"
	"github.com/lumipallolabs/incoming/internal/watcher"
)

const (
	// DefaultSettle is the pause between a change notification and the scan,
	// giving the triggering write or rename time to finish on disk. A
	// heuristic, not a guarantee: a slow enough writer can still be caught
	// mid-write.
	DefaultSettle = 50 * time.Millisecond

	// DefaultPoll bounds each wait so shutdown is observed at least this often.
	DefaultPoll = time.Second
)

// Config controls a Monitor. Zero values take the defaults.
type Config struct {
	Dir            string
	Out            io.Writer
	NullTerminated bool          // terminate records with NUL instead of newline
	Capacity       int           // seen-set bound, DefaultCapacity if <= 0
	Settle         time.Duration // post-notification delay before scanning
	Poll           time.Duration // wait timeout between shutdown checks
}

// Monitor watches a single directory and writes the path of each newly
// appearing regular file to Out, one record per file. Single-threaded: the
// loop owns the subscription, the scanner and the seen set outright.
type Monitor struct {
	cfg  Config
	sep  byte
	sub  *watcher.Subscription
	scan *scanner.Scanner
}

// New validates the directory, registers the change subscription and runs the
// seeding scan so pre-existing files are never reported. Any failure here is
// fatal: the caller reports it and exits without watching.
func New(cfg Config) (*Monitor, error) {
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Settle <= 0 {
		cfg.Settle = DefaultSettle
	}
	if cfg.Poll <= 0 {
		cfg.Poll = DefaultPoll
	}

	info, err := os.Stat(cfg.Dir)
	if err != nil {
		return nil, fmt.Errorf("cannot open %q: %w", cfg.Dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%q is not a directory", cfg.Dir)
	}

	sub, err := watcher.Subscribe(cfg.Dir)
	if err != nil {
		return nil, err
	}

	scan := scanner.New(seenset.New(cfg.Capacity))
	seeded, err := scan.Seed(cfg.Dir)
	if err != nil {
		sub.Close()
		return nil, fmt.Errorf("initial scan of %q: %w", cfg.Dir, err)
	}
	logging.Debug.Printf("watching %s, seeded %d existing file(s)", cfg.Dir, seeded)

	sep := byte('\n')
	if cfg.NullTerminated {
		sep = 0
	}

	return &Monitor{cfg: cfg, sep: sep, sub: sub, scan: scan}, nil
}

// Run blocks in the wait/scan cycle until ctx is cancelled (graceful, returns
// nil once any in-flight scan has finished) or the notification backend fails
// (returns the error). The subscription is released on the way out.
func (m *Monitor) Run(ctx context.Context) error {
	defer m.sub.Close()

	for {
		result, err := m.sub.WaitChange(ctx, m.cfg.Poll)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return fmt.Errorf("wait for change: %w", err)
		}
		if result == watcher.TimedOut {
			continue
		}

		// Let the triggering write/rename land before scanning. Shutdown
		// during the settle skips the scan; nothing was reported yet.
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(m.cfg.Settle):
		}

		paths, err := m.scan.Scan(m.cfg.Dir)
		if err != nil {
			// The directory itself may have briefly gone away; the next
			// notification retries.
			logging.Debug.Printf("scan: %v", err)
			continue
		}

		for _, path := range paths {
			if err := m.emit(path); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
		}
	}
}

// emit writes one record: the path followed by the configured separator. Out
// is unbuffered in production, so each record reaches the consumer as written.
func (m *Monitor) emit(path string) error {
	if _, err := m.cfg.Out.Write(append([]byte(path), m.sep)); err != nil {
		return err
	}
	if logging.Enabled {
		if mt, err := mimetype.DetectFile(path); err == nil {
			logging.Debug.Printf("reported %s (%s)", path, mt)
		} else {
			logging.Debug.Printf("reported %s", path)
		}
	}
	return nil
}
