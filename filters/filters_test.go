package filters

import (
	"bytes"
	"compress/zlib"
	"context"
	"errors"
	"io"
	"runtime"
	"strings"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/filter"

	"github.com/wudi/pdffeatures/ir/raw"
)

func zlibBytes(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	return buf.Bytes()
}

func TestFlateDecode(t *testing.T) {
	dec := NewPDFCPUDecoder("FlateDecode")
	out, err := dec.Decode(context.Background(), zlibBytes(t, []byte("hello world")), nil)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if string(out) != "hello world" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestDecodeStreamFlate(t *testing.T) {
	dict := raw.Dict().Set("Filter", raw.NameLiteral("FlateDecode"))
	s := raw.NewStream(dict, zlibBytes(t, []byte{0x00, 0xFF, 0x10}))

	p := NewStandardPipeline(DefaultLimits)
	out, err := p.DecodeStream(context.Background(), s)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if !bytes.Equal(out, []byte{0x00, 0xFF, 0x10}) {
		t.Fatalf("unexpected output: %v", out)
	}
}

func TestDecodeStreamWithoutFilter(t *testing.T) {
	s := raw.NewStream(raw.Dict(), []byte("plain"))
	out, err := NewStandardPipeline(Limits{}).DecodeStream(context.Background(), s)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if string(out) != "plain" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestDecodeStreamFilterArray(t *testing.T) {
	dict := raw.Dict().Set("Filter", raw.NewArray(raw.NameLiteral("Fl")))
	s := raw.NewStream(dict, zlibBytes(t, []byte("abbrev")))
	out, err := NewStandardPipeline(DefaultLimits).DecodeStream(context.Background(), s)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if string(out) != "abbrev" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestUnknownFilter(t *testing.T) {
	dict := raw.Dict().Set("Filter", raw.NameLiteral("BogusDecode"))
	_, err := NewStandardPipeline(DefaultLimits).DecodeStream(context.Background(), raw.NewStream(dict, []byte("x")))
	if !errors.Is(err, ErrUnknownFilter) {
		t.Fatalf("expected ErrUnknownFilter, got %v", err)
	}
}

func TestCorruptFlate(t *testing.T) {
	dict := raw.Dict().Set("Filter", raw.NameLiteral("FlateDecode"))
	_, err := NewStandardPipeline(DefaultLimits).DecodeStream(context.Background(), raw.NewStream(dict, []byte("not zlib")))
	if err == nil {
		t.Fatalf("expected decode error")
	}
	if !strings.HasPrefix(err.Error(), "FlateDecode: ") {
		t.Fatalf("error should name the filter: %v", err)
	}
}

func TestSizeLimit(t *testing.T) {
	dict := raw.Dict().Set("Filter", raw.NameLiteral("FlateDecode"))
	s := raw.NewStream(dict, zlibBytes(t, bytes.Repeat([]byte{'a'}, 1024)))
	_, err := NewStandardPipeline(Limits{MaxDecompressedSize: 16}).DecodeStream(context.Background(), s)
	if !errors.Is(err, ErrSizeLimit) {
		t.Fatalf("expected ErrSizeLimit, got %v", err)
	}
}

type upperDecoder struct{}

func (upperDecoder) Name() string { return "UpperDecode" }
func (upperDecoder) Decode(_ context.Context, in []byte, _ raw.Dictionary) ([]byte, error) {
	return bytes.ToUpper(in), nil
}

func TestRegisteredDecoder(t *testing.T) {
	p := NewPipeline([]Decoder{upperDecoder{}}, Limits{})
	out, err := p.Decode(context.Background(), []byte("abc"), []string{"UpperDecode"}, nil)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if string(out) != "ABC" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestIntParams(t *testing.T) {
	d := raw.Dict().
		Set("Predictor", raw.NumberInt(12)).
		Set("BlackIs1", raw.Bool(true)).
		Set("Ignored", raw.NameLiteral("x"))
	got := intParams(d)
	if got["Predictor"] != 12 || got["BlackIs1"] != 1 {
		t.Fatalf("unexpected params: %v", got)
	}
	if _, ok := got["Ignored"]; ok {
		t.Fatalf("names should not be converted")
	}
}

type countingDecoder struct{ calls *int }

func (countingDecoder) Name() string { return "CountDecode" }
func (d countingDecoder) Decode(_ context.Context, in []byte, _ raw.Dictionary) ([]byte, error) {
	*d.calls++
	return append([]byte(nil), in...), nil
}

func TestCacheSkipsRepeatDecode(t *testing.T) {
	calls := 0
	p := NewPipeline([]Decoder{countingDecoder{calls: &calls}}, DefaultLimits)
	if err := p.EnableCache(4); err != nil {
		t.Fatalf("enable cache: %v", err)
	}
	dict := raw.Dict().Set("Filter", raw.NameLiteral("CountDecode"))
	for i := 0; i < 3; i++ {
		out, err := p.DecodeStream(context.Background(), raw.NewStream(dict, []byte("same")))
		if err != nil || string(out) != "same" {
			t.Fatalf("decode %d: %q %v", i, out, err)
		}
	}
	if calls != 1 {
		t.Fatalf("decoder called %d times, want 1", calls)
	}
	if _, err := p.DecodeStream(context.Background(), raw.NewStream(dict, []byte("other"))); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if calls != 2 {
		t.Fatalf("distinct data should miss the cache, calls=%d", calls)
	}
}

func TestCacheRejectsNonPositiveSize(t *testing.T) {
	if err := NewStandardPipeline(DefaultLimits).EnableCache(0); err == nil {
		t.Fatalf("expected error for zero-sized cache")
	}
}

func TestSizeLimitBoundsMemory(t *testing.T) {
	// 32 MiB of zeros compresses to a few tens of KiB.
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	chunk := make([]byte, 1<<20)
	for i := 0; i < 32; i++ {
		if _, err := w.Write(chunk); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	dict := raw.Dict().Set("Filter", raw.NameLiteral("FlateDecode"))
	s := raw.NewStream(dict, buf.Bytes())
	p := NewStandardPipeline(Limits{MaxDecompressedSize: 1024})

	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	_, err := p.DecodeStream(context.Background(), s)
	runtime.ReadMemStats(&after)

	if !errors.Is(err, ErrSizeLimit) {
		t.Fatalf("expected ErrSizeLimit, got %v", err)
	}
	if allocated := after.TotalAlloc - before.TotalAlloc; allocated > 4<<20 {
		t.Fatalf("decoding allocated %d bytes for a 1 KiB limit", allocated)
	}
}

func TestLimitedDecodeShortStreams(t *testing.T) {
	payload := []byte("short payload, well under the limit")
	for _, name := range []string{filter.LZW, filter.RunLength} {
		t.Run(name, func(t *testing.T) {
			f, err := filter.NewFilter(name, nil)
			if err != nil {
				t.Fatalf("filter: %v", err)
			}
			r, err := f.Encode(bytes.NewReader(payload))
			if err != nil {
				t.Fatalf("encode: %v", err)
			}
			encoded, err := io.ReadAll(r)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			dict := raw.Dict().Set("Filter", raw.NameLiteral(name))
			out, err := NewStandardPipeline(DefaultLimits).DecodeStream(context.Background(), raw.NewStream(dict, encoded))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !bytes.Equal(out, payload) {
				t.Fatalf("unexpected output: %q", out)
			}
		})
	}
}

func TestCachedResultIsCallerOwned(t *testing.T) {
	p := NewStandardPipeline(DefaultLimits)
	if err := p.EnableCache(2); err != nil {
		t.Fatalf("enable cache: %v", err)
	}
	dict := raw.Dict().Set("Filter", raw.NameLiteral("FlateDecode"))
	s := raw.NewStream(dict, zlibBytes(t, []byte("abc")))
	first, err := p.DecodeStream(context.Background(), s)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	first[0] = 'X'
	second, err := p.DecodeStream(context.Background(), s)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	second[1] = 'Y'
	third, err := p.DecodeStream(context.Background(), s)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if string(third) != "abc" {
		t.Fatalf("cache entry was mutated through a returned slice: %q", third)
	}
}
