package semantic

import "github.com/wudi/pdffeatures/ir/raw"

// Encryption is the document's /Encrypt dictionary. OwnerKey and UserKey are
// kept raw since they may arrive as strings or, in damaged files, streams.
type Encryption struct {
	Filter          string
	SubFilter       string
	Version         int
	Length          int
	OwnerKey        raw.Object
	UserKey         raw.Object
	EncryptMetadata bool
	Permissions     int32
}
