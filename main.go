package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/pprof"
	"syscall"
	"time"

	"github.com/lumipallolabs/incoming/internal/monitor"
	"github.com/lumipallolabs/incoming/internal/seenset"
)

func main() {
	// Enable CPU profiling if CPUPROFILE env var is set
	if cpuProfile := os.Getenv("CPUPROFILE"); cpuProfile != "" {
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", cpuProfile)
	}

	fs := flag.NewFlagSet("incoming", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: incoming [-0] <directory>\n")
		fs.PrintDefaults()
	}

	nullTerm := fs.Bool("0", false, "null-terminated output (like fswatch -0)")
	capacity := fs.Int("capacity", seenset.DefaultCapacity, "max file identities remembered before the oldest is forgotten")
	settle := fs.Duration("settle", monitor.DefaultSettle, "delay between a change notification and the scan")
	poll := fs.Duration("poll", monitor.DefaultPoll, "how often shutdown is checked while waiting")

	if err := fs.Parse(os.Args[1:]); err != nil {
		os.Exit(1)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, fs.Arg(0), *nullTerm, *capacity, *settle, *poll); err != nil {
		fmt.Fprintf(os.Stderr, "incoming: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, dir string, nullTerm bool, capacity int, settle, poll time.Duration) error {
	m, err := monitor.New(monitor.Config{
		Dir:            dir,
		Out:            os.Stdout,
		NullTerminated: nullTerm,
		Capacity:       capacity,
		Settle:         settle,
		Poll:           poll,
	})
	if err != nil {
		return err
	}
	return m.Run(ctx)
}
