package contentstream

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wudi/pdffeatures/ir/raw"
)

func levels(t *testing.T, stream string) []int {
	t.Helper()
	saves, err := Track(context.Background(), []byte(stream))
	require.NoError(t, err)
	out := make([]int, len(saves))
	for i, s := range saves {
		out[i] = s.NestingLevel
	}
	return out
}

func TestProcessorDispatchesOperators(t *testing.T) {
	p := NewProcessor()
	var calls int
	var last []raw.Object
	p.RegisterHandler("Tj", HandlerFunc(func(_ string, operands []raw.Object) error {
		calls++
		last = append([]raw.Object(nil), operands...)
		return nil
	}))

	require.NoError(t, p.Process(context.Background(), []byte("(Hello) Tj")))
	require.Equal(t, 1, calls)
	require.Len(t, last, 1)
	assert.Equal(t, "string", last[0].Type())
}

func TestProcessorParsesCompositeOperands(t *testing.T) {
	p := NewProcessor()
	var got []raw.Object
	p.RegisterHandler("BDC", HandlerFunc(func(_ string, operands []raw.Object) error {
		got = append([]raw.Object(nil), operands...)
		return nil
	}))
	require.NoError(t, p.Process(context.Background(), []byte("/Span << /MCID 3 /Alt <4869> >> BDC")))
	require.Len(t, got, 2)
	d, ok := got[1].(*raw.DictObj)
	require.True(t, ok)
	mcid, ok := d.Get("MCID")
	require.True(t, ok)
	assert.Equal(t, int64(3), mcid.(raw.NumberObj).Int())
	alt, _ := d.Get("Alt")
	assert.Equal(t, []byte("Hi"), alt.(raw.StringObj).Bytes)
}

func TestTrackNestingLevels(t *testing.T) {
	assert.Equal(t, []int{1, 2, 2, 1}, levels(t, "q q Q q Q Q q Q"))
}

func TestTrackSkipsStringsAndComments(t *testing.T) {
	stream := "q (q Q \\) q) Tj % q q q\n<71> Tj [(q)] TJ Q"
	assert.Equal(t, []int{1}, levels(t, stream))
}

func TestTrackSkipsInlineImage(t *testing.T) {
	stream := "q BI /W 2 /H 1 /BPC 8 /CS /G ID q\x00Qq EI Q q Q"
	assert.Equal(t, []int{1, 1}, levels(t, stream))
}

func TestTrackUnbalancedRestore(t *testing.T) {
	saves, err := Track(context.Background(), []byte("Q q Q Q"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnbalancedRestore))
	require.Len(t, saves, 1)
	assert.Equal(t, 1, saves[0].NestingLevel)
}

func TestTrackerUnclosed(t *testing.T) {
	tr := NewTracker()
	p := NewProcessor()
	tr.Register(p)
	require.NoError(t, p.Process(context.Background(), []byte("q 1 0 0 1 0 0 cm q")))
	assert.Equal(t, 2, tr.Unclosed())
	assert.NoError(t, tr.Err())
}

func TestProcessRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Track(ctx, []byte("q Q"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProcessUnterminatedString(t *testing.T) {
	saves, err := Track(context.Background(), []byte("q (never closed"))
	require.Error(t, err)
	assert.Len(t, saves, 1)
}
