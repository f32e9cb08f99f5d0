// Package recovery decides how a reporting pass reacts to a failing
// extractor.
package recovery

import (
	"context"
	"fmt"
	"sync"

	"github.com/wudi/pdffeatures/observability"
)

type Strategy interface {
	OnError(ctx context.Context, err error, location Location) Action
}

// Location identifies the extractor that failed.
type Location struct {
	Category string
	Index    int
}

func (l Location) String() string { return fmt.Sprintf("%s#%d", l.Category, l.Index) }

type Action int

const (
	// ActionFail aborts the pass.
	ActionFail Action = iota
	// ActionSkip drops the extractor silently.
	ActionSkip
	// ActionWarn records the failure and continues.
	ActionWarn
)

// StrictStrategy fails the pass on the first error.
type StrictStrategy struct{}

func NewStrictStrategy() *StrictStrategy { return &StrictStrategy{} }

func (*StrictStrategy) OnError(context.Context, error, Location) Action { return ActionFail }

// LenientStrategy logs and keeps every error, then lets the pass continue.
type LenientStrategy struct {
	logger observability.Logger

	mu     sync.Mutex
	errors []error
}

func NewLenientStrategy(logger observability.Logger) *LenientStrategy {
	if logger == nil {
		logger = observability.NopLogger{}
	}
	return &LenientStrategy{logger: logger}
}

func (s *LenientStrategy) OnError(_ context.Context, err error, location Location) Action {
	s.logger.Warn("extractor failed", observability.String("location", location.String()), observability.Error("error", err))
	s.mu.Lock()
	s.errors = append(s.errors, fmt.Errorf("[%s]: %w", location, err))
	s.mu.Unlock()
	return ActionWarn
}

// Errors returns the errors seen so far.
func (s *LenientStrategy) Errors() []error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]error(nil), s.errors...)
}
