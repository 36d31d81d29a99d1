// Package utiltest holds loggers for tests.
package utiltest

import (
	"context"
	"sync"
)

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Info(ctx context.Context, msg string, kv ...any) {}

func (NopLogger) Error(ctx context.Context, msg string, err error, kv ...any) {}

// Recorder keeps logged messages for assertions.
type Recorder struct {
	mu     sync.Mutex
	infos  []string
	errors []string
}

func (rec *Recorder) Info(ctx context.Context, msg string, kv ...any) {

	rec.mu.Lock()
	defer rec.mu.Unlock()

	rec.infos = append(rec.infos, msg)
}

func (rec *Recorder) Error(ctx context.Context, msg string, err error, kv ...any) {

	rec.mu.Lock()
	defer rec.mu.Unlock()

	rec.errors = append(rec.errors, msg+": "+err.Error())
}

// Infos returns info messages logged so far.
func (rec *Recorder) Infos() []string {

	rec.mu.Lock()
	defer rec.mu.Unlock()

	return append([]string{}, rec.infos...)
}

// Errors returns error messages with their errors.
func (rec *Recorder) Errors() []string {

	rec.mu.Lock()
	defer rec.mu.Unlock()

	return append([]string{}, rec.errors...)
}
