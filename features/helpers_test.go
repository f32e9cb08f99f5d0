package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddNotEmpty(t *testing.T) {
	root := NewRoot("font")
	assert.Nil(t, AddNotEmpty(root, "baseFont", ""))
	assert.Empty(t, root.Children())

	n := AddNotEmpty(root, "baseFont", "Helvetica")
	require.NotNil(t, n)
	v, _ := n.Value()
	assert.Equal(t, "Helvetica", v)
}

func TestLinkID(t *testing.T) {
	root := NewRoot("colorSpace")
	assert.Nil(t, LinkID(root, "alternate", ""))
	alt := LinkID(root, "alternate", "cs2")
	require.NotNil(t, alt)
	id, _ := alt.Attribute(IDAttr)
	assert.Equal(t, "cs2", id)
}

func TestLinkIDSetOmitsEmptyWrapper(t *testing.T) {
	root := NewRoot("resources")
	assert.Nil(t, LinkIDSet(root, nil, "font", "fonts"))
	assert.Nil(t, LinkIDSet(root, []string{}, "font", "fonts"))
	assert.Nil(t, LinkIDSet(root, []string{""}, "font", "fonts"))
	assert.Empty(t, root.Children())
}

func TestLinkIDSetWrapper(t *testing.T) {
	root := NewRoot("resources")
	w := LinkIDSet(root, []string{"F2", "F1", "F2"}, "font", "fonts")
	require.NotNil(t, w)
	assert.Equal(t, "fonts", w.Name())
	kids := w.Children()
	require.Len(t, kids, 2)
	id0, _ := kids[0].Attribute(IDAttr)
	id1, _ := kids[1].Attribute(IDAttr)
	assert.Equal(t, []string{"F2", "F1"}, []string{id0, id1})
}

func TestLinkIDSetWithoutWrapper(t *testing.T) {
	root := NewRoot("descendantFonts")
	LinkIDSet(root, []string{"D1", "D2"}, "descendantFont", "")
	assert.Len(t, root.ChildrenNamed("descendantFont"), 2)
}

func TestAddBox(t *testing.T) {
	root := NewRoot("font")
	box := AddBox(root, "fontBBox", -10, -200, 1000, 900.5)
	assert.Equal(t, []Attribute{
		{"llx", "-10.0"}, {"lly", "-200.0"}, {"urx", "1000.0"}, {"ury", "900.5"},
	}, box.Attributes())
}
