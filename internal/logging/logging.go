package logging

import (
	"io"
	"log"
	"os"
)

var (
	Debug   *log.Logger
	Watcher *log.Logger
	Enabled bool
)

func init() {
	// Only enable logging if INCOMING_DEBUG environment variable is set
	if os.Getenv("INCOMING_DEBUG") == "" {
		// Create no-op loggers that discard output
		Debug = log.New(io.Discard, "", 0)
		Watcher = log.New(io.Discard, "", 0)
		Enabled = false
		return
	}

	Enabled = true

	// Debug output goes to stderr so it never mixes with the path stream
	// on stdout, which downstream consumers parse record by record.
	Debug = log.New(os.Stderr, "[DEBUG] ", log.Lmicroseconds)
	Watcher = log.New(os.Stderr, "[WATCHER] ", log.Lmicroseconds)
}
