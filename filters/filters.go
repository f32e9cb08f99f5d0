// Package filters decodes PDF stream data. The standard codecs are provided
// by pdfcpu; callers may register their own decoders on a Pipeline.
package filters

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pdfcpu/pdfcpu/pkg/filter"

	"github.com/wudi/pdffeatures/ir/raw"
)

var (
	ErrUnknownFilter = errors.New("unknown filter")
	ErrSizeLimit     = errors.New("decompressed size exceeds limit")
)

type Decoder interface {
	Name() string
	Decode(ctx context.Context, input []byte, params raw.Dictionary) ([]byte, error)
}

// LimitedDecoder is implemented by decoders that stop once a bound is
// crossed, so that a small encoded stream never expands past limit bytes in
// memory. DecodeLimited returns ErrSizeLimit when the output exceeds limit.
type LimitedDecoder interface {
	Decoder
	DecodeLimited(ctx context.Context, input []byte, params raw.Dictionary, limit int64) ([]byte, error)
}

type Limits struct {
	MaxDecompressedSize int64
	MaxDecodeTime       time.Duration
}

// DefaultLimits bounds a single stream to 64 MiB of decoded output.
var DefaultLimits = Limits{MaxDecompressedSize: 64 << 20}

type Pipeline struct {
	decoders map[string]Decoder
	limits   Limits
	cache    *lru.Cache[cacheKey, []byte]
}

// cacheKey identifies a stream by its filter chain and encoded bytes.
type cacheKey struct {
	filters string
	sum     [sha256.Size]byte
}

// EnableCache keeps the decoded output of the last size distinct streams.
// Font programs and metadata are decoded both for the feature tree and for
// the font data payload; the cache makes the second pass free.
func (p *Pipeline) EnableCache(size int) error {
	c, err := lru.New[cacheKey, []byte](size)
	if err != nil {
		return fmt.Errorf("stream cache: %w", err)
	}
	p.cache = c
	return nil
}

func (p *Pipeline) Cached() bool { return p.cache != nil }

// NewPipeline constructs a pipeline with provided decoders and limits.
func NewPipeline(decoders []Decoder, limits Limits) *Pipeline {
	p := &Pipeline{decoders: make(map[string]Decoder, len(decoders)), limits: limits}
	for _, d := range decoders {
		p.Register(d)
	}
	return p
}

// NewStandardPipeline returns a pipeline covering the general-purpose PDF
// filters. Image-only codecs (DCT, JPX, JBIG2, CCITT) are left out since
// feature reporting only needs byte payloads such as lookup tables and
// metadata.
func NewStandardPipeline(limits Limits) *Pipeline {
	return NewPipeline([]Decoder{
		NewPDFCPUDecoder(filter.Flate),
		NewPDFCPUDecoder(filter.LZW),
		NewPDFCPUDecoder(filter.ASCII85),
		NewPDFCPUDecoder(filter.ASCIIHex),
		NewPDFCPUDecoder(filter.RunLength),
	}, limits)
}

func (p *Pipeline) Register(d Decoder) { p.decoders[d.Name()] = d }

func (p *Pipeline) findDecoder(name string) Decoder {
	if full, ok := abbreviations[name]; ok {
		name = full
	}
	return p.decoders[name]
}

// abbreviations maps inline-image filter names to their full form.
var abbreviations = map[string]string{
	"AHx": "ASCIIHexDecode",
	"A85": "ASCII85Decode",
	"LZW": "LZWDecode",
	"Fl":  "FlateDecode",
	"RL":  "RunLengthDecode",
}

func (p *Pipeline) Decode(ctx context.Context, input []byte, filterNames []string, params []raw.Dictionary) ([]byte, error) {
	if p.limits.MaxDecodeTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.limits.MaxDecodeTime)
		defer cancel()
	}
	data := input
	for i, name := range filterNames {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dec := p.findDecoder(name)
		if dec == nil {
			return nil, fmt.Errorf("%w: %s", ErrUnknownFilter, name)
		}
		var param raw.Dictionary
		if i < len(params) {
			param = params[i]
		}
		var out []byte
		var err error
		if ld, ok := dec.(LimitedDecoder); ok && p.limits.MaxDecompressedSize > 0 {
			out, err = ld.DecodeLimited(ctx, data, param, p.limits.MaxDecompressedSize)
		} else {
			out, err = dec.Decode(ctx, data, param)
		}
		if errors.Is(err, ErrSizeLimit) {
			return nil, ErrSizeLimit
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if p.limits.MaxDecompressedSize > 0 && int64(len(out)) > p.limits.MaxDecompressedSize {
			return nil, ErrSizeLimit
		}
		data = out
	}
	return data, nil
}

// DecodeStream applies the filters named in the stream dictionary.
func (p *Pipeline) DecodeStream(ctx context.Context, s raw.Stream) ([]byte, error) {
	if s == nil {
		return nil, errors.New("stream is nil")
	}
	names, params, err := streamFilters(s.Dictionary())
	if err != nil {
		return nil, err
	}
	if p.cache == nil || len(names) == 0 {
		return p.Decode(ctx, s.RawData(), names, params)
	}
	// Parameters are part of the key so predictor variants never collide.
	key := cacheKey{filters: strings.Join(names, " ") + "|" + paramsKey(params), sum: sha256.Sum256(s.RawData())}
	// Callers own the returned slice; the cache keeps its own copy.
	if out, ok := p.cache.Get(key); ok {
		return bytes.Clone(out), nil
	}
	out, err := p.Decode(ctx, s.RawData(), names, params)
	if err != nil {
		return nil, err
	}
	p.cache.Add(key, bytes.Clone(out))
	return out, nil
}

func paramsKey(params []raw.Dictionary) string {
	var b strings.Builder
	for _, d := range params {
		if d != nil {
			ints := intParams(d)
			for _, k := range d.Keys() {
				if v, ok := ints[k]; ok {
					fmt.Fprintf(&b, "%s=%d;", k, v)
				}
			}
		}
		b.WriteByte('/')
	}
	return b.String()
}

func streamFilters(d raw.Dictionary) ([]string, []raw.Dictionary, error) {
	fv, ok := d.Get("Filter")
	if !ok {
		return nil, nil, nil
	}
	var names []string
	switch v := fv.(type) {
	case raw.Name:
		names = []string{v.Value()}
	case raw.Array:
		for i := 0; i < v.Len(); i++ {
			item, _ := v.Get(i)
			n, ok := raw.NameValue(item)
			if !ok {
				return nil, nil, fmt.Errorf("filter entry %d is not a name", i)
			}
			names = append(names, n)
		}
	default:
		return nil, nil, fmt.Errorf("filter has unexpected type %s", fv.Type())
	}

	var params []raw.Dictionary
	if pv, ok := d.Get("DecodeParms"); ok {
		switch v := pv.(type) {
		case raw.Dictionary:
			params = []raw.Dictionary{v}
		case raw.Array:
			for i := 0; i < v.Len(); i++ {
				item, _ := v.Get(i)
				pd, _ := item.(raw.Dictionary)
				params = append(params, pd)
			}
		}
	}
	return names, params, nil
}

type pdfcpuDecoder struct{ name string }

// NewPDFCPUDecoder adapts the pdfcpu codec registered under name.
func NewPDFCPUDecoder(name string) Decoder { return pdfcpuDecoder{name: name} }

func (d pdfcpuDecoder) Name() string { return d.name }

func (d pdfcpuDecoder) Decode(ctx context.Context, in []byte, params raw.Dictionary) ([]byte, error) {
	f, err := filter.NewFilter(d.name, intParams(params))
	if err != nil {
		return nil, err
	}
	r, err := f.Decode(bytes.NewReader(in))
	if err != nil {
		return nil, err
	}
	return io.ReadAll(r)
}

// expanding lists the codecs whose output can be orders of magnitude larger
// than their input. ASCII85 and ASCIIHex output is bounded by the input size.
var expanding = map[string]bool{
	filter.Flate:     true,
	filter.LZW:       true,
	filter.RunLength: true,
}

// DecodeLimited asks pdfcpu for at most limit+1 bytes, so a compression bomb
// is cut off while decoding instead of after it.
func (d pdfcpuDecoder) DecodeLimited(ctx context.Context, in []byte, params raw.Dictionary, limit int64) ([]byte, error) {
	if !expanding[d.name] {
		out, err := d.Decode(ctx, in, params)
		if err != nil {
			return nil, err
		}
		if int64(len(out)) > limit {
			return nil, ErrSizeLimit
		}
		return out, nil
	}
	f, err := filter.NewFilter(d.name, intParams(params))
	if err != nil {
		return nil, err
	}
	r, err := f.DecodeLength(bytes.NewReader(in), limit+1)
	switch {
	case err == nil:
	case errors.Is(err, io.EOF) && r != nil:
		// Output ended before the bound.
	case errors.Is(err, io.EOF):
		// LZW drops its buffer when the output ends before the bound. The
		// output is known to fit now, so decode it in full.
		if r, err = f.Decode(bytes.NewReader(in)); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}
	out, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(out)) > limit {
		return nil, ErrSizeLimit
	}
	return out, nil
}

// intParams flattens decode parameters into the integer map pdfcpu expects.
func intParams(d raw.Dictionary) map[string]int {
	if d == nil {
		return nil
	}
	out := make(map[string]int, d.Len())
	for _, k := range d.Keys() {
		v, _ := d.Get(k)
		switch x := v.(type) {
		case raw.Number:
			out[k] = int(x.Int())
		case raw.Boolean:
			if x.Value() {
				out[k] = 1
			} else {
				out[k] = 0
			}
		}
	}
	return out
}
