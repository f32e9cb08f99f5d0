// Package security resolves PDF security handlers and decodes the /P
// permission bit set of an encryption dictionary.
package security

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNoHandler is returned when no handler is registered for a filter.
var ErrNoHandler = errors.New("no security handler")

type Permissions struct{ Print, Modify, Copy, ModifyAnnotations, FillForms, ExtractAccessible, Assemble, PrintHighQuality bool }

// Handler describes a security handler known to the reporting core.
type Handler interface {
	Filter() string
	Permissions(p int32) Permissions
}

type standardHandler struct{}

func (standardHandler) Filter() string                  { return "Standard" }
func (standardHandler) Permissions(p int32) Permissions { return DecodePermissions(p) }

// publicKeyHandler covers Adobe.PubSec; the /P entry of the encryption
// dictionary carries the same bit layout as the Standard handler.
type publicKeyHandler struct{}

func (publicKeyHandler) Filter() string                  { return "Adobe.PubSec" }
func (publicKeyHandler) Permissions(p int32) Permissions { return DecodePermissions(p) }

// StandardHandler returns the password-based handler.
func StandardHandler() Handler { return standardHandler{} }

// PublicKeyHandler returns the certificate-based handler.
func PublicKeyHandler() Handler { return publicKeyHandler{} }

// Registry maps /Filter names to handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry returns a registry with the Standard and Adobe.PubSec handlers.
func NewRegistry() *Registry {
	r := &Registry{handlers: make(map[string]Handler)}
	r.Register(StandardHandler())
	r.Register(PublicKeyHandler())
	return r
}

func (r *Registry) Register(h Handler) {
	r.mu.Lock()
	r.handlers[h.Filter()] = h
	r.mu.Unlock()
}

// Lookup returns the handler for filter.
func (r *Registry) Lookup(filter string) (Handler, error) {
	r.mu.RLock()
	h, ok := r.handlers[filter]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w for filter %q", ErrNoHandler, filter)
	}
	return h, nil
}

// DecodePermissions reads the user access bits of a /P value.
func DecodePermissions(p int32) Permissions {
	return Permissions{
		Print:             p&0x4 != 0,
		Modify:            p&0x8 != 0,
		Copy:              p&0x10 != 0,
		ModifyAnnotations: p&0x20 != 0,
		FillForms:         p&0x100 != 0,
		ExtractAccessible: p&0x200 != 0,
		Assemble:          p&0x400 != 0,
		PrintHighQuality:  p&0x800 != 0,
	}
}

// PermissionsValue builds the Standard security permissions flags for a document.
func PermissionsValue(p Permissions) int32 {
	val := int32(-4) // bits 1-2 must be 0
	if !p.Print {
		val &^= 1 << 2
	}
	if !p.Modify {
		val &^= 1 << 3
	}
	if !p.Copy {
		val &^= 1 << 4
	}
	if !p.ModifyAnnotations {
		val &^= 1 << 5
	}
	if !p.FillForms {
		val &^= 1 << 8
	}
	if !p.ExtractAccessible {
		val &^= 1 << 9
	}
	if !p.Assemble {
		val &^= 1 << 10
	}
	if !p.PrintHighQuality {
		val &^= 1 << 11
	}
	return val
}
