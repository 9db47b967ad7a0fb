// Package timer provides a stopwatch for timing long-running pieces of code,
// both in host programs and through the REPL's :time command.
package timer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// DefaultCutoff is the elapsed time below which a verbose stopwatch warns
// that the measurement is too small to be meaningful.
const DefaultCutoff = time.Millisecond

var (
	// ErrRunning is returned by Start when the stopwatch is already running.
	ErrRunning = errors.New("stopwatch already running")
	// ErrNotRunning is returned by Stop when the stopwatch is not running.
	ErrNotRunning = errors.New("stopwatch not running")
)

// Config holds configuration for creating a Stopwatch.
type Config struct {
	// Clock is the time source. If nil, time.Now is used.
	Clock func() time.Time

	// Output is where verbose reports are written. If nil, os.Stdout is used.
	Output io.Writer

	// Verbose enables a report after each completed run.
	Verbose bool

	// Cutoff is the elapsed time below which a verbose run warns that the
	// measurement is too small. Zero means DefaultCutoff; a negative value
	// disables the warning.
	Cutoff time.Duration
}

// Stopwatch records wall-clock duration between a Start and Stop event,
// accumulating totals across multiple runs.
//
// Invariants: a stopped stopwatch is never running, and Total always equals
// the sum of the elapsed times of completed runs.
type Stopwatch struct {
	clock   func() time.Time
	out     io.Writer
	verbose bool
	cutoff  time.Duration

	running   bool
	startedAt time.Time
	elapsed   time.Duration
	total     time.Duration
	count     int
}

// New creates a Stopwatch from the given configuration.
func New(cfg Config) *Stopwatch {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	cutoff := cfg.Cutoff
	if cutoff == 0 {
		cutoff = DefaultCutoff
	}
	return &Stopwatch{
		clock:   clock,
		out:     out,
		verbose: cfg.Verbose,
		cutoff:  cutoff,
	}
}

// Start begins a new run. Starting an already-running stopwatch is an error.
func (sw *Stopwatch) Start() error {
	if sw.running {
		return ErrRunning
	}
	sw.running = true
	sw.startedAt = sw.clock()
	return nil
}

// Stop ends the current run and returns its elapsed time. The run is added
// to the cumulative total and count. Stopping a stopwatch that is not
// running is an error.
func (sw *Stopwatch) Stop() (time.Duration, error) {
	if !sw.running {
		return 0, ErrNotRunning
	}
	sw.elapsed = sw.clock().Sub(sw.startedAt)
	sw.running = false
	sw.total += sw.elapsed
	sw.count++
	if sw.verbose {
		sw.report()
	}
	return sw.elapsed, nil
}

// Do measures fn as a single run and returns its elapsed time.
func (sw *Stopwatch) Do(fn func()) (time.Duration, error) {
	if err := sw.Start(); err != nil {
		return 0, err
	}
	fn()
	return sw.Stop()
}

// DoContext measures fn as a single run, passing ctx through. A run is
// not started when ctx is already done.
func (sw *Stopwatch) DoContext(ctx context.Context, fn func(context.Context)) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := sw.Start(); err != nil {
		return 0, err
	}
	fn(ctx)
	return sw.Stop()
}

// Running reports whether a run is in progress.
func (sw *Stopwatch) Running() bool {
	return sw.running
}

// Elapsed returns the duration of the most recently completed run.
// It is zero before the first Stop.
func (sw *Stopwatch) Elapsed() time.Duration {
	return sw.elapsed
}

// Total returns the sum of the elapsed times of all completed runs.
func (sw *Stopwatch) Total() time.Duration {
	return sw.total
}

// Count returns the number of completed runs.
func (sw *Stopwatch) Count() int {
	return sw.count
}

// Reset clears all accumulated state. An in-progress run is discarded.
func (sw *Stopwatch) Reset() {
	sw.running = false
	sw.elapsed = 0
	sw.total = 0
	sw.count = 0
}

func (sw *Stopwatch) report() {
	if sw.cutoff >= 0 && sw.elapsed < sw.cutoff {
		fmt.Fprintln(sw.out, "elapsed time is very small; the measurement is likely dominated by timer overhead")
	}
	fmt.Fprintf(sw.out, "time taken: %v\n", sw.elapsed)
}

// Time measures a single invocation of fn with the default clock.
func Time(fn func()) time.Duration {
	start := time.Now()
	fn()
	return time.Since(start)
}
