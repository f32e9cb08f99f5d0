// Package reporter runs a set of extractors over one document and gathers
// their trees into a single collection.
package reporter

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/wudi/pdffeatures/config"
	"github.com/wudi/pdffeatures/extractor"
	"github.com/wudi/pdffeatures/features"
	"github.com/wudi/pdffeatures/filters"
	"github.com/wudi/pdffeatures/observability"
	"github.com/wudi/pdffeatures/recovery"
)

// FailureNode names the detached root that carries extractor panics in the
// error registry. It is never registered as a tree.
const FailureNode = "extractionFailure"

// ErrPanic wraps the value recovered from a panicking extractor.
var ErrPanic = errors.New("reporter: extractor panicked")

type Reporter struct {
	workers  int
	enabled  map[features.Category]bool
	logger   observability.Logger
	tracer   observability.Tracer
	recovery recovery.Strategy
	pipeline *filters.Pipeline
}

type Option func(*Reporter)

// WithWorkers runs up to n extractors at once. n <= 1 runs them in order.
func WithWorkers(n int) Option { return func(r *Reporter) { r.workers = n } }

// WithCategories restricts the pass to the given categories.
func WithCategories(cats ...features.Category) Option {
	return func(r *Reporter) {
		r.enabled = make(map[features.Category]bool, len(cats))
		for _, c := range cats {
			r.enabled[c] = true
		}
	}
}

func WithLogger(l observability.Logger) Option { return func(r *Reporter) { r.logger = l } }

func WithTracer(t observability.Tracer) Option { return func(r *Reporter) { r.tracer = t } }

// WithRecovery sets the reaction to a panicking extractor. Without one the
// failure is recorded and the pass continues.
func WithRecovery(s recovery.Strategy) Option { return func(r *Reporter) { r.recovery = s } }

// WithPipeline sets the decoding pipeline handed out by Pipeline.
func WithPipeline(p *filters.Pipeline) Option { return func(r *Reporter) { r.pipeline = p } }

func New(opts ...Option) *Reporter {
	r := &Reporter{workers: 1, logger: observability.NopLogger{}, tracer: observability.NopTracer()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// FromConfig builds a reporter for cfg, which must already be valid. A nil
// logger is replaced by a charm logger on stderr at cfg.LogLevel. The
// configured pipeline is available from Pipeline for binding to the
// extractors the caller builds.
func FromConfig(cfg config.Config, logger observability.Logger) (*Reporter, error) {
	cats, err := cfg.Categories()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		level, err := observability.ParseLevel(cfg.LogLevel)
		if err != nil {
			return nil, fmt.Errorf("%w: log_level: %v", config.ErrInvalid, err)
		}
		logger = observability.NewCharmLogger(os.Stderr, level)
	}
	pipeline, err := cfg.Pipeline()
	if err != nil {
		return nil, err
	}
	opts := []Option{
		WithWorkers(cfg.Workers),
		WithCategories(cats...),
		WithLogger(logger),
		WithPipeline(pipeline),
	}
	if cfg.Strict {
		opts = append(opts, WithRecovery(recovery.NewStrictStrategy()))
	}
	return New(opts...), nil
}

// Pipeline returns the configured decoding pipeline, or nil when extractors
// should fall back to the standard one.
func (r *Reporter) Pipeline() *filters.Pipeline { return r.pipeline }

// Report is the outcome of one pass.
type Report struct {
	Collection *features.Collection
	// FontData holds the auxiliary payload of each font extractor that
	// produced one, in extractor order.
	FontData []*extractor.FontData
}

// Run extracts every enabled extractor into a fresh collection. A panicking
// extractor is recorded against a FailureNode root and the pass goes on,
// unless the recovery strategy asks to fail; context cancellation also stops
// the pass early.
func (r *Reporter) Run(ctx context.Context, extractors []extractor.Extractor) (*Report, error) {
	ctx, span := r.tracer.StartSpan(ctx, "reporter.Run")
	defer span.Finish()

	coll := features.NewCollection(features.WithLogger(r.logger))
	data := make([]*extractor.FontData, len(extractors))

	run := func(ctx context.Context, i int, e extractor.Extractor) error {
		if !r.allowed(e.Category()) {
			return nil
		}
		d, err := r.extractOne(ctx, coll, e)
		if err != nil {
			return r.handleFailure(ctx, coll, err, recovery.Location{Category: e.Category().String(), Index: i})
		}
		data[i] = d
		return nil
	}

	if r.workers <= 1 {
		for i, e := range extractors {
			if err := ctx.Err(); err != nil {
				span.SetError(err)
				return nil, err
			}
			if err := run(ctx, i, e); err != nil {
				span.SetError(err)
				return nil, err
			}
		}
	} else {
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(r.workers)
		for i, e := range extractors {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				return run(gctx, i, e)
			})
		}
		if err := g.Wait(); err != nil {
			span.SetError(err)
			return nil, err
		}
	}

	rep := &Report{Collection: coll}
	for _, d := range data {
		if d != nil {
			rep.FontData = append(rep.FontData, d)
		}
	}
	span.SetTag("trees", coll.Len())
	span.SetTag("errors", coll.Errors().Len())
	r.logger.Debug("feature pass finished",
		observability.Int("trees", coll.Len()),
		observability.Int("errors", coll.Errors().Len()))
	return rep, nil
}

func (r *Reporter) allowed(c features.Category) bool {
	if r.enabled == nil {
		return true
	}
	return r.enabled[c]
}

func (r *Reporter) extractOne(ctx context.Context, coll *features.Collection, e extractor.Extractor) (data *extractor.FontData, err error) {
	_, span := r.tracer.StartSpan(ctx, "extract."+e.Category().String())
	defer span.Finish()
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrPanic, p)
			span.SetError(err)
			data = nil
		}
	}()

	root := e.Extract(coll)
	span.SetTag("present", root != nil)
	if de, ok := e.(extractor.DataExtractor); ok && root != nil {
		data = de.Data()
	}
	return data, nil
}

func (r *Reporter) handleFailure(ctx context.Context, coll *features.Collection, err error, loc recovery.Location) error {
	action := recovery.ActionWarn
	if r.recovery != nil {
		action = r.recovery.OnError(ctx, err, loc)
	} else {
		r.logger.Error("extractor panicked", observability.String("location", loc.String()), observability.Error("error", err))
	}
	switch action {
	case recovery.ActionFail:
		return fmt.Errorf("%s: %w", loc, err)
	case recovery.ActionWarn:
		coll.RecordError(features.NewRoot(FailureNode), err.Error())
	}
	return nil
}
