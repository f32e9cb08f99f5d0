package features

import (
	"sync"

	"github.com/wudi/pdffeatures/observability"
)

// ErrorEntry associates a diagnostic message with the node it concerns.
type ErrorEntry struct {
	Node    *Node
	Message string
}

// Errors is the side channel for recoverable problems found while building
// trees. It is safe for concurrent use.
type Errors struct {
	mu      sync.Mutex
	entries []ErrorEntry
	logger  observability.Logger
}

// NewErrors returns an empty registry that logs every record at debug level.
func NewErrors(logger observability.Logger) *Errors {
	if logger == nil {
		logger = observability.NopLogger{}
	}
	return &Errors{logger: logger}
}

// Record appends message for node. The node itself is not modified.
func (e *Errors) Record(node *Node, message string) {
	e.mu.Lock()
	e.entries = append(e.entries, ErrorEntry{Node: node, Message: message})
	e.mu.Unlock()

	name := ""
	if node != nil {
		name = node.Name()
	}
	e.logger.Debug("feature error recorded",
		observability.String("node", name),
		observability.String("message", message))
}

// Entries returns all records in recording order.
func (e *Errors) Entries() []ErrorEntry {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]ErrorEntry, len(e.entries))
	copy(out, e.entries)
	return out
}

// For returns the messages recorded against node.
func (e *Errors) For(node *Node) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	var out []string
	for _, entry := range e.entries {
		if entry.Node == node {
			out = append(out, entry.Message)
		}
	}
	return out
}

func (e *Errors) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.entries)
}
