package extractor

import (
	"bytes"
	"compress/zlib"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/wudi/pdffeatures/features"
	"github.com/wudi/pdffeatures/ir/raw"
)

// tree is a comparable snapshot of a feature node.
type tree struct {
	Name     string
	Attrs    []features.Attribute
	Value    *string
	Children []tree
}

func snapshot(n *features.Node) tree {
	t := tree{Name: n.Name(), Attrs: n.Attributes()}
	if v, ok := n.Value(); ok {
		t.Value = &v
	}
	for _, c := range n.Children() {
		t.Children = append(t.Children, snapshot(c))
	}
	return t
}

func val(s string) *string { return &s }

func leaf(name, value string, attrs ...features.Attribute) tree {
	return tree{Name: name, Attrs: attrs, Value: val(value)}
}

func attr(k, v string) features.Attribute { return features.Attribute{Key: k, Value: v} }

func assertTree(t *testing.T, want tree, got *features.Node) {
	t.Helper()
	if got == nil {
		t.Fatalf("expected tree %q, got nil", want.Name)
	}
	if diff := cmp.Diff(want, snapshot(got), cmp.Comparer(func(a, b []features.Attribute) bool {
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if a[i] != b[i] {
				return false
			}
		}
		return true
	})); diff != "" {
		t.Fatalf("tree mismatch (-want +got):\n%s", diff)
	}
}

func flateStream(t *testing.T, data []byte) *raw.StreamObj {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return raw.NewStream(raw.Dict().Set("Filter", raw.NameLiteral("FlateDecode")), buf.Bytes())
}

func brokenStream() *raw.StreamObj {
	return raw.NewStream(raw.Dict().Set("Filter", raw.NameLiteral("NoSuchDecode")), []byte("xx"))
}

func intp(v int) *int          { return &v }
func realp(v float64) *float64 { return &v }
