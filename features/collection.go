package features

import (
	"sync"

	"github.com/wudi/pdffeatures/observability"
)

// Collection is the append-only registry of completed trees for one
// document pass. It is safe for concurrent use; the trees themselves are not
// synchronized and must be complete before they are added.
type Collection struct {
	mu     sync.Mutex
	trees  map[Category][]*Node
	errs   *Errors
	logger observability.Logger
}

type Option func(*Collection)

// WithLogger routes collection and error-registry logging to l.
func WithLogger(l observability.Logger) Option {
	return func(c *Collection) {
		if l != nil {
			c.logger = l
		}
	}
}

func NewCollection(opts ...Option) *Collection {
	c := &Collection{
		trees:  make(map[Category][]*Node),
		logger: observability.NopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.errs = NewErrors(c.logger)
	return c
}

// Add appends root to the trees of category.
func (c *Collection) Add(category Category, root *Node) {
	if root == nil {
		return
	}
	c.mu.Lock()
	c.trees[category] = append(c.trees[category], root)
	c.mu.Unlock()
}

// Trees returns the roots registered under category in append order.
func (c *Collection) Trees(category Category) []*Node {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]*Node, len(c.trees[category]))
	copy(out, c.trees[category])
	return out
}

// Categories lists the categories holding at least one tree, in declaration
// order.
func (c *Collection) Categories() []Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []Category
	for _, cat := range AllCategories() {
		if len(c.trees[cat]) > 0 {
			out = append(out, cat)
		}
	}
	return out
}

// Len returns the total number of registered trees.
func (c *Collection) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.trees {
		n += len(t)
	}
	return n
}

func (c *Collection) Errors() *Errors { return c.errs }

// RecordError is shorthand for c.Errors().Record.
func (c *Collection) RecordError(node *Node, message string) { c.errs.Record(node, message) }

func (c *Collection) Logger() observability.Logger { return c.logger }
