package features

// IDAttr is the attribute carrying a cross-reference to another tree.
const IDAttr = "id"

// AddNotEmpty adds a child with value unless value is empty.
func AddNotEmpty(parent *Node, name, value string) *Node {
	if value == "" {
		return nil
	}
	return AddValue(parent, name, value)
}

// AddValue adds a child with value.
func AddValue(parent *Node, name, value string) *Node {
	child := parent.AddChild(name)
	child.SetValue(value)
	return child
}

// LinkID adds a child pointing at id. Nothing is added for an empty id.
func LinkID(parent *Node, name, id string) *Node {
	if id == "" {
		return nil
	}
	child := parent.AddChild(name)
	child.SetAttribute(IDAttr, id)
	return child
}

// LinkIDSet adds one item child per distinct id, inside a wrapper node when
// wrapper is non-empty. An empty set adds nothing, not even the wrapper.
func LinkIDSet(parent *Node, ids []string, item, wrapper string) *Node {
	ids = distinct(ids)
	if len(ids) == 0 {
		return nil
	}
	target := parent
	if wrapper != "" {
		target = parent.AddChild(wrapper)
	}
	for _, id := range ids {
		LinkID(target, item, id)
	}
	return target
}

func distinct(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// AddBox adds a rectangle node with llx, lly, urx and ury attributes.
func AddBox(parent *Node, name string, llx, lly, urx, ury float64) *Node {
	box := parent.AddChild(name)
	box.SetAttribute("llx", FormatReal(llx))
	box.SetAttribute("lly", FormatReal(lly))
	box.SetAttribute("urx", FormatReal(urx))
	box.SetAttribute("ury", FormatReal(ury))
	return box
}
