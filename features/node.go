package features

// Attribute is a single key/value pair on a Node.
type Attribute struct {
	Key   string
	Value string
}

// Node is one element of a feature tree. A child belongs to exactly one
// parent; nodes are only mutated by the extractor that builds them.
type Node struct {
	name     string
	attrs    []Attribute
	value    string
	hasValue bool
	children []*Node
}

// NewRoot creates a detached node. It panics on an empty name.
func NewRoot(name string) *Node {
	if name == "" {
		panic("features: node name must not be empty")
	}
	return &Node{name: name}
}

// AddChild creates a node, appends it to n and returns it.
func (n *Node) AddChild(name string) *Node {
	child := NewRoot(name)
	n.children = append(n.children, child)
	return child
}

// SetAttribute sets key to value, keeping the position of an existing key.
func (n *Node) SetAttribute(key, value string) {
	for i := range n.attrs {
		if n.attrs[i].Key == key {
			n.attrs[i].Value = value
			return
		}
	}
	n.attrs = append(n.attrs, Attribute{Key: key, Value: value})
}

func (n *Node) SetValue(value string) {
	n.value = value
	n.hasValue = true
}

func (n *Node) Name() string { return n.name }

// Value returns the scalar value and whether one was set.
func (n *Node) Value() (string, bool) { return n.value, n.hasValue }

// Attributes returns a copy of the attributes in insertion order.
func (n *Node) Attributes() []Attribute {
	out := make([]Attribute, len(n.attrs))
	copy(out, n.attrs)
	return out
}

func (n *Node) Attribute(key string) (string, bool) {
	for _, a := range n.attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Children returns the children in append order.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Child returns the first child called name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

func (n *Node) ChildrenNamed(name string) []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

// Walk visits n and its descendants depth-first in document order. Returning
// false from fn skips the children of that node.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.children {
		c.walk(fn, depth+1)
	}
}
