package reporter

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/wudi/pdffeatures/config"
	"github.com/wudi/pdffeatures/extractor"
	"github.com/wudi/pdffeatures/features"
	"github.com/wudi/pdffeatures/filters"
	"github.com/wudi/pdffeatures/ir/raw"
	"github.com/wudi/pdffeatures/ir/semantic"
	"github.com/wudi/pdffeatures/recovery"
)

type panicking struct{}

func (panicking) Category() features.Category { return features.CategoryPattern }
func (panicking) Extract(*features.Collection) *features.Node {
	panic("boom")
}

func saves(n int) []extractor.Extractor {
	out := make([]extractor.Extractor, n)
	for i := range out {
		out[i] = &extractor.GraphicsStateSave{Save: &semantic.GraphicsStateSave{NestingLevel: i + 1}}
	}
	return out
}

func TestRunSequentialKeepsOrder(t *testing.T) {
	rep, err := New().Run(context.Background(), saves(5))
	require.NoError(t, err)
	trees := rep.Collection.Trees(features.CategoryGraphicsStateSave)
	require.Len(t, trees, 5)
	for i, tr := range trees {
		level, _ := tr.Attribute("nestingLevel")
		assert.Equal(t, fmt.Sprint(i+1), level)
	}
}

func TestRunParallel(t *testing.T) {
	rep, err := New(WithWorkers(4)).Run(context.Background(), saves(50))
	require.NoError(t, err)
	trees := rep.Collection.Trees(features.CategoryGraphicsStateSave)
	require.Len(t, trees, 50)
	seen := make(map[string]bool)
	for _, tr := range trees {
		level, _ := tr.Attribute("nestingLevel")
		seen[level] = true
	}
	assert.Len(t, seen, 50)
}

func TestRunIsolatesPanics(t *testing.T) {
	for _, workers := range []int{1, 3} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			exts := append([]extractor.Extractor{panicking{}}, saves(2)...)
			rep, err := New(WithWorkers(workers)).Run(context.Background(), exts)
			require.NoError(t, err)
			assert.Len(t, rep.Collection.Trees(features.CategoryGraphicsStateSave), 2)
			assert.Empty(t, rep.Collection.Trees(features.CategoryPattern))

			entries := rep.Collection.Errors().Entries()
			require.Len(t, entries, 1)
			assert.Equal(t, FailureNode, entries[0].Node.Name())
			assert.True(t, strings.HasPrefix(entries[0].Message, "reporter: extractor panicked: boom"))
		})
	}
}

func TestRunCategoryFilter(t *testing.T) {
	exts := append(saves(2),
		&extractor.CrossReferenceTable{Info: &semantic.XRefInfo{}},
		&extractor.ColorSpace{Space: &semantic.OtherColorSpace{Name: "DeviceRGB"}},
	)
	rep, err := New(WithCategories(features.CategoryColorSpace)).Run(context.Background(), exts)
	require.NoError(t, err)
	assert.Equal(t, []features.Category{features.CategoryColorSpace}, rep.Collection.Categories())
}

func TestRunCollectsFontData(t *testing.T) {
	embedded := &extractor.Font{Font: &semantic.SimpleFont{
		Subtype: "TrueType",
		Descriptor: &semantic.FontDescriptor{
			FontFile2: &semantic.FontProgram{Stream: raw.NewStream(nil, goregular.TTF)},
		},
	}}
	plain := &extractor.Font{Font: &semantic.SimpleFont{Subtype: "Type1", BaseFont: "Helvetica"}}
	absent := &extractor.Font{}

	rep, err := New().Run(context.Background(), []extractor.Extractor{plain, embedded, absent})
	require.NoError(t, err)
	assert.Len(t, rep.Collection.Trees(features.CategoryFont), 2)
	require.Len(t, rep.FontData, 1)
	assert.NotNil(t, rep.FontData[0].Program)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for _, workers := range []int{1, 2} {
		_, err := New(WithWorkers(workers)).Run(ctx, saves(3))
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestFromConfig(t *testing.T) {
	cfg, err := config.Parse([]byte("workers = 2\n[features]\nenabled = [\"crossReferenceTable\"]\n"))
	require.NoError(t, err)
	r, err := FromConfig(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, r.workers)

	exts := append(saves(1), &extractor.CrossReferenceTable{Info: &semantic.XRefInfo{EOLMarkersComply: true}})
	rep, err := r.Run(context.Background(), exts)
	require.NoError(t, err)
	assert.Equal(t, []features.Category{features.CategoryCrossReferenceTable}, rep.Collection.Categories())
}

func TestFromConfigAppliesFilterSettings(t *testing.T) {
	cfg, err := config.Parse([]byte("log_level = \"error\"\n[filters]\nmax_decoded_size = 4\ncache_entries = 2\n"))
	require.NoError(t, err)
	r, err := FromConfig(cfg, nil)
	require.NoError(t, err)
	require.NotNil(t, r.Pipeline())
	assert.True(t, r.Pipeline().Cached())

	out, err := r.Pipeline().Decode(context.Background(), []byte("4142>"), []string{"ASCIIHexDecode"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("AB"), out)
	_, err = r.Pipeline().Decode(context.Background(), []byte("414243444546>"), []string{"ASCIIHexDecode"}, nil)
	assert.ErrorIs(t, err, filters.ErrSizeLimit)
}

type skipAll struct{ calls int }

func (s *skipAll) OnError(context.Context, error, recovery.Location) recovery.Action {
	s.calls++
	return recovery.ActionSkip
}

func TestRunRecoveryStrategies(t *testing.T) {
	exts := append(saves(1), panicking{}, &extractor.GraphicsStateSave{Save: &semantic.GraphicsStateSave{NestingLevel: 9}})

	t.Run("strict", func(t *testing.T) {
		_, err := New(WithRecovery(recovery.NewStrictStrategy())).Run(context.Background(), exts)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrPanic)
		assert.Contains(t, err.Error(), "pattern#1")
	})
	t.Run("strict parallel", func(t *testing.T) {
		_, err := New(WithWorkers(2), WithRecovery(recovery.NewStrictStrategy())).Run(context.Background(), exts)
		assert.ErrorIs(t, err, ErrPanic)
	})
	t.Run("skip", func(t *testing.T) {
		s := &skipAll{}
		rep, err := New(WithRecovery(s)).Run(context.Background(), exts)
		require.NoError(t, err)
		assert.Equal(t, 1, s.calls)
		assert.Equal(t, 0, rep.Collection.Errors().Len())
		assert.Len(t, rep.Collection.Trees(features.CategoryGraphicsStateSave), 2)
	})
	t.Run("lenient", func(t *testing.T) {
		s := recovery.NewLenientStrategy(nil)
		rep, err := New(WithRecovery(s)).Run(context.Background(), exts)
		require.NoError(t, err)
		assert.Len(t, s.Errors(), 1)
		assert.Equal(t, 1, rep.Collection.Errors().Len())
	})
}

func TestFromConfigStrict(t *testing.T) {
	cfg := config.Default()
	cfg.Strict = true
	r, err := FromConfig(cfg, nil)
	require.NoError(t, err)
	_, err = r.Run(context.Background(), []extractor.Extractor{panicking{}})
	assert.ErrorIs(t, err, ErrPanic)
}
