// Package contentstream walks content stream operators and tracks the
// graphics state save/restore stack.
package contentstream

import (
	"context"
	"errors"
	"fmt"

	"github.com/wudi/pdffeatures/ir/raw"
	"github.com/wudi/pdffeatures/ir/semantic"
)

// ErrUnbalancedRestore is reported for a Q operator with nothing saved.
var ErrUnbalancedRestore = errors.New("restore without matching save")

type Processor interface {
	Process(ctx context.Context, stream []byte) error
	RegisterHandler(op string, h OperatorHandler)
}

type OperatorHandler interface {
	Handle(op string, operands []raw.Object) error
}

// HandlerFunc adapts a function to OperatorHandler.
type HandlerFunc func(op string, operands []raw.Object) error

func (f HandlerFunc) Handle(op string, operands []raw.Object) error { return f(op, operands) }

type simpleProcessor struct{ handlers map[string]OperatorHandler }

func NewProcessor() Processor                                           { return &simpleProcessor{handlers: make(map[string]OperatorHandler)} }
func (p *simpleProcessor) RegisterHandler(op string, h OperatorHandler) { p.handlers[op] = h }
func (p *simpleProcessor) Process(ctx context.Context, stream []byte) error {
	lx := &lexer{data: stream}
	var operands []raw.Object
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		tok, ok, err := lx.next()
		if err != nil {
			return fmt.Errorf("offset %d: %w", lx.pos, err)
		}
		if !ok {
			return nil
		}
		if tok.kind == tokenOperand {
			operands = append(operands, tok.obj)
			continue
		}
		if tok.kind != tokenOperator {
			continue
		}
		if h, ok := p.handlers[tok.op]; ok {
			if err := h.Handle(tok.op, operands); err != nil {
				return fmt.Errorf("%s: %w", tok.op, err)
			}
		}
		operands = operands[:0]
		if tok.op == "ID" {
			if err := lx.skipInlineImage(); err != nil {
				return fmt.Errorf("inline image: %w", err)
			}
		}
	}
}

// Tracker records the nesting level of every q operator it sees.
type Tracker struct {
	depth      int
	saves      []semantic.GraphicsStateSave
	unbalanced int
}

func NewTracker() *Tracker { return &Tracker{} }

// Register installs the q and Q handlers on p.
func (t *Tracker) Register(p Processor) {
	p.RegisterHandler("q", HandlerFunc(t.save))
	p.RegisterHandler("Q", HandlerFunc(t.restore))
}

func (t *Tracker) save(_ string, operands []raw.Object) error {
	t.depth++
	t.saves = append(t.saves, semantic.GraphicsStateSave{
		NestingLevel: t.depth,
		Operands:     append([]raw.Object(nil), operands...),
	})
	return nil
}

func (t *Tracker) restore(string, []raw.Object) error {
	if t.depth == 0 {
		t.unbalanced++
		return nil
	}
	t.depth--
	return nil
}

// Saves returns one entry per q operator in stream order.
func (t *Tracker) Saves() []semantic.GraphicsStateSave {
	return append([]semantic.GraphicsStateSave(nil), t.saves...)
}

// Unclosed returns the number of saves never restored.
func (t *Tracker) Unclosed() int { return t.depth }

// Err reports restores that had no matching save.
func (t *Tracker) Err() error {
	if t.unbalanced == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d operators", ErrUnbalancedRestore, t.unbalanced)
}

// Track runs a fresh tracker over one content stream. The saves seen before
// a syntax error are still returned.
func Track(ctx context.Context, stream []byte) ([]semantic.GraphicsStateSave, error) {
	t := NewTracker()
	p := NewProcessor()
	t.Register(p)
	if err := p.Process(ctx, stream); err != nil {
		return t.Saves(), err
	}
	return t.Saves(), t.Err()
}
