package form

import (
	"net/url"
	"strings"
)

// Encode joins items as percent-encoded key=value pairs in their given order.
// url.Values is not used because it sorts keys.
func Encode(items []Item) string {
	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(it.Name))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(it.Value))
	}
	return b.String()
}

// Encoder is a parameter object bound to its schema, as consumed by the dispatcher.
type Encoder interface {
	Type() string
	HasFiles() bool
	Marshal() ([]Item, error)
	BuildParts(maxFileSize int64) (Parts, error)
}

// Bind pairs p with its schema. p may be nil.
func Bind[P any](s *Schema[P], p *P) Encoder {
	return bound[P]{schema: s, params: p}
}

type bound[P any] struct {
	schema *Schema[P]
	params *P
}

func (b bound[P]) Type() string   { return b.schema.Type }
func (b bound[P]) HasFiles() bool { return b.schema.HasFiles() }

func (b bound[P]) Marshal() ([]Item, error) { return Marshal(b.schema, b.params) }

func (b bound[P]) BuildParts(maxFileSize int64) (Parts, error) {
	return BuildParts(b.schema, b.params, maxFileSize)
}
