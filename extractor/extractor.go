// Package extractor turns resolved PDF objects into feature trees.
//
// Each extractor is a plain value bound to one object together with the ids
// of the objects it relates to. Extract builds the tree, registers it in the
// collection under the extractor's category and returns it. A nil tree
// means the bound object is absent; nothing is registered in that case.
// Structural problems never abort extraction: they are recorded against the
// most specific node in the collection's error registry.
package extractor

import (
	"context"
	"sync"

	"github.com/wudi/pdffeatures/features"
	"github.com/wudi/pdffeatures/filters"
	"github.com/wudi/pdffeatures/ir/raw"
	"github.com/wudi/pdffeatures/observability"
)

type Extractor interface {
	Category() features.Category
	Extract(c *features.Collection) *features.Node
}

// DataExtractor is implemented by extractors that also expose an auxiliary
// binary payload.
type DataExtractor interface {
	Extractor
	Data() *FontData
}

var (
	defaultPipelineOnce sync.Once
	defaultPipeline     *filters.Pipeline
)

func pipelineOrDefault(p *filters.Pipeline) *filters.Pipeline {
	if p != nil {
		return p
	}
	defaultPipelineOnce.Do(func() {
		defaultPipeline = filters.NewStandardPipeline(filters.DefaultLimits)
	})
	return defaultPipeline
}

// decodeStream returns the decoded bytes of s. Failures are logged at debug
// level and returned to the caller, which decides where to record them.
func decodeStream(log observability.Logger, p *filters.Pipeline, s raw.Stream, what string) ([]byte, error) {
	data, err := pipelineOrDefault(p).DecodeStream(context.Background(), s)
	if err != nil {
		log.Debug("stream decode failed", observability.String("object", what), observability.Error("error", err))
		return nil, err
	}
	return data, nil
}

func logger(c *features.Collection) observability.Logger {
	if c == nil || c.Logger() == nil {
		return observability.NopLogger{}
	}
	return c.Logger()
}

func addInt(parent *features.Node, name string, v int) *features.Node {
	return features.AddValue(parent, name, features.FormatInt(int64(v)))
}

func addReal(parent *features.Node, name string, v float64) *features.Node {
	return features.AddValue(parent, name, features.FormatReal(v))
}

func addBool(parent *features.Node, name string, v bool) *features.Node {
	return features.AddValue(parent, name, features.FormatBool(v))
}

func newRoot(name, id string) *features.Node {
	root := features.NewRoot(name)
	if id != "" {
		root.SetAttribute(features.IDAttr, id)
	}
	return root
}
