package extractor

import (
	"errors"
	"fmt"
	"sync"

	"github.com/wudi/pdffeatures/features"
	"github.com/wudi/pdffeatures/filters"
	"github.com/wudi/pdffeatures/ir/raw"
	"github.com/wudi/pdffeatures/ir/semantic"
	"github.com/wudi/pdffeatures/observability"
	"github.com/wudi/pdffeatures/security"
)

var (
	defaultHandlersOnce sync.Once
	defaultHandlers     *security.Registry
)

// DocumentSecurity reports the document's encryption dictionary.
type DocumentSecurity struct {
	Encryption *semantic.Encryption
	// Handlers resolves /Filter; the Standard and Adobe.PubSec handlers are
	// used when nil.
	Handlers *security.Registry
	Filters  *filters.Pipeline
}

func (e *DocumentSecurity) Category() features.Category { return features.CategoryDocumentSecurity }

func (e *DocumentSecurity) Extract(c *features.Collection) *features.Node {
	enc := e.Encryption
	if enc == nil {
		return nil
	}
	root := features.NewRoot("documentSecurity")
	features.AddNotEmpty(root, "filter", enc.Filter)
	features.AddNotEmpty(root, "subFilter", enc.SubFilter)
	addInt(root, "version", enc.Version)
	addInt(root, "length", enc.Length)
	e.key(c, root, "ownerKey", enc.OwnerKey)
	e.key(c, root, "userKey", enc.UserKey)
	addBool(root, "encryptMetadata", enc.EncryptMetadata)

	handler, err := e.handlers().Lookup(enc.Filter)
	if err != nil {
		logger(c).Debug("no matching security handler", observability.String("filter", enc.Filter), observability.Error("error", err))
		features.AddValue(root, "securityHandler", "No security handler")
	} else {
		p := handler.Permissions(enc.Permissions)
		addBool(root, "printAllowed", p.Print)
		addBool(root, "printDegradedAllowed", p.PrintHighQuality)
		addBool(root, "changesAllowed", p.Modify)
		addBool(root, "modifyAnnotationsAllowed", p.ModifyAnnotations)
		addBool(root, "fillingSigningAllowed", p.FillForms)
		addBool(root, "documentAssemblyAllowed", p.Assemble)
		addBool(root, "extractContentAllowed", p.Copy)
		addBool(root, "extractAccessibilityAllowed", p.ExtractAccessible)
	}

	c.Add(features.CategoryDocumentSecurity, root)
	return root
}

func (e *DocumentSecurity) handlers() *security.Registry {
	if e.Handlers != nil {
		return e.Handlers
	}
	defaultHandlersOnce.Do(func() { defaultHandlers = security.NewRegistry() })
	return defaultHandlers
}

// key emits the hex form of an /O or /U entry. A key that cannot be read
// leaves an empty child carrying the error.
func (e *DocumentSecurity) key(c *features.Collection, root *features.Node, name string, obj raw.Object) {
	data, err := e.keyBytes(c, obj)
	if err != nil {
		logger(c).Debug("cannot read encryption key", observability.String("key", name), observability.Error("error", err))
		c.RecordError(root.AddChild(name), err.Error())
		return
	}
	features.AddNotEmpty(root, name, features.EncodeHex(data))
}

func (e *DocumentSecurity) keyBytes(c *features.Collection, obj raw.Object) ([]byte, error) {
	switch v := obj.(type) {
	case nil:
		return nil, nil
	case raw.String:
		return v.Value(), nil
	case raw.Stream:
		return decodeStream(logger(c), e.Filters, v, "encryption key")
	}
	if obj.Type() == "null" {
		return nil, nil
	}
	return nil, fmt.Errorf("%w: %s", errKeyType, obj.Type())
}

var errKeyType = errors.New("encryption key is not a string")
