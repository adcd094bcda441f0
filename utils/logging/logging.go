// Package logging holds the process-wide logger of the fp packages.
package logging

import (
	"sync"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"

	"github.com/sseq/fp/config"
)

var (
	mu     sync.RWMutex
	logger *logr.Logger
)

// New returns a logger named fp that writes through the standard log
// package. Messages of verbosity up to v are printed: 1 for the dispatch
// decisions, 2 for every row reduction. v is clamped to [0, 2].
func New(v int) logr.Logger {
	stdr.SetVerbosity(min(max(v, 0), 2))
	return stdr.New(nil).WithName("fp")
}

// Logger returns the process logger. Unless replaced with [SetLogger], it is
// a stdr logger with the verbosity of [config.Global].
func Logger() logr.Logger {
	mu.RLock()
	if logger != nil {
		defer mu.RUnlock()
		return *logger
	}
	mu.RUnlock()

	mu.Lock()
	defer mu.Unlock()
	if logger == nil {
		l := New(config.Global().LogVerbosity)
		logger = &l
	}
	return *logger
}

// SetLogger replaces the process logger.
func SetLogger(l logr.Logger) {
	mu.Lock()
	defer mu.Unlock()
	logger = &l
}

// Named returns the process logger with the given name appended.
func Named(name string) logr.Logger {
	return Logger().WithName(name)
}
