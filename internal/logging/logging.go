// Package logging provides kernelc's structured logging sink, built on
// logr the way the rest of this corpus's service-shaped repos do rather
// than the standard library's log package, so diagnostics carry structured
// key/value pairs (file, pass, span) instead of formatted strings.
package logging

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

// New returns a logr.Logger writing to stderr at the given verbosity
// (0 = info, higher = more verbose debug levels), the stdr adapter being the
// simplest logr backend with no extra third-party formatter dependency.
func New(verbosity int) logr.Logger {
	stdr.SetVerbosity(verbosity)
	std := log.New(os.Stderr, "", log.LstdFlags)
	l := stdr.New(std)
	return l.WithName("kernelc")
}

// PassLogger scopes a logger to a single compiler pass, so every message it
// emits carries a consistent "pass" key (e.g. "collect", "helpers",
// "lower", "classify", "bind", "emit").
func PassLogger(base logr.Logger, pass string) logr.Logger {
	return base.WithValues("pass", pass)
}

// Timed logs fn's duration under the given message once fn returns,
// regardless of whether it returned an error.
func Timed(l logr.Logger, msg string, fn func() error) error {
	start := time.Now()
	err := fn()
	elapsed := time.Since(start)
	if err != nil {
		l.Error(err, msg, "elapsed", elapsed)
		return err
	}
	l.V(1).Info(msg, "elapsed", elapsed)
	return nil
}

// FatalCompile reports a fatal compile-time diagnostic and exits, matching
// the spec's "no runtime error path exists in the core" contract: every
// core error is a compile-time abort.
func FatalCompile(l logr.Logger, err error) {
	l.Error(err, "kernel module failed to compile")
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
