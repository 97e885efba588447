package form

// Strategy selects how a field value is rendered on the wire.
type Strategy int

const (
	Raw Strategy = iota
	Bool
	Enum
	StringList
	IntList
	LongList
	Custom
	File
)

func (s Strategy) String() string {
	switch s {
	case Raw:
		return "raw"
	case Bool:
		return "bool"
	case Enum:
		return "enum"
	case StringList:
		return "string_list"
	case IntList:
		return "int_list"
	case LongList:
		return "long_list"
	case Custom:
		return "custom"
	case File:
		return "file"
	default:
		return "unknown"
	}
}

// EnumValue is implemented by enum types used with the Enum strategy.
// Wire returns the declared wire string, or "" when the member has none.
type EnumValue interface {
	Symbol() string
	Wire() string
}

// Field describes one field of a parameter type P.
type Field[P any] struct {
	Wire      string
	Name      string
	Required  bool
	Strategy  Strategy
	Converter Converter

	// get returns the field value and whether it is present.
	get func(*P) (any, bool)
}

// Require returns a copy of f marked as required.
func (f Field[P]) Require() Field[P] {
	f.Required = true
	return f
}

// Schema is the static wire description of a parameter type. Build it once at
// package level; it is never modified afterwards.
type Schema[P any] struct {
	Type   string
	Fields []Field[P]
	files  bool
}

// NewSchema declares the fields of P in wire order.
func NewSchema[P any](typeName string, fields ...Field[P]) *Schema[P] {
	s := &Schema[P]{Type: typeName, Fields: fields}
	for _, f := range fields {
		if f.Strategy == File {
			s.files = true
		}
	}
	return s
}

// HasFiles reports whether the schema declares at least one file field.
func (s *Schema[P]) HasFiles() bool { return s.files }

// String declares a text field; "" is absent.
func String[P any](wire, name string, get func(*P) string) Field[P] {
	return Field[P]{Wire: wire, Name: name, Strategy: Raw, get: func(p *P) (any, bool) {
		v := get(p)
		return v, v != ""
	}}
}

// Int64 declares an optional integer field; nil is absent.
func Int64[P any](wire, name string, get func(*P) *int64) Field[P] {
	return Field[P]{Wire: wire, Name: name, Strategy: Raw, get: func(p *P) (any, bool) {
		v := get(p)
		if v == nil {
			return nil, false
		}
		return *v, true
	}}
}

// Flag declares an optional boolean field; nil is absent.
func Flag[P any](wire, name string, get func(*P) *bool) Field[P] {
	return Field[P]{Wire: wire, Name: name, Strategy: Bool, get: func(p *P) (any, bool) {
		v := get(p)
		if v == nil {
			return nil, false
		}
		return *v, true
	}}
}

// Choice declares an enum field; the zero value of E is absent.
func Choice[P any, E interface {
	comparable
	EnumValue
}](wire, name string, get func(*P) E) Field[P] {
	return Field[P]{Wire: wire, Name: name, Strategy: Enum, get: func(p *P) (any, bool) {
		var zero E
		v := get(p)
		return v, v != zero
	}}
}

// Strings declares a comma-joined string list; an empty list is absent.
func Strings[P any](wire, name string, get func(*P) []string) Field[P] {
	return Field[P]{Wire: wire, Name: name, Strategy: StringList, get: func(p *P) (any, bool) {
		v := get(p)
		return v, len(v) > 0
	}}
}

// Ints declares a comma-joined int list; an empty list is absent.
func Ints[P any](wire, name string, get func(*P) []int) Field[P] {
	return Field[P]{Wire: wire, Name: name, Strategy: IntList, get: func(p *P) (any, bool) {
		v := get(p)
		return v, len(v) > 0
	}}
}

// Int64s declares a comma-joined int64 list; an empty list is absent.
func Int64s[P any](wire, name string, get func(*P) []int64) Field[P] {
	return Field[P]{Wire: wire, Name: name, Strategy: LongList, get: func(p *P) (any, bool) {
		v := get(p)
		return v, len(v) > 0
	}}
}

// Converted declares a field rendered by conv; the zero value of V is absent.
func Converted[P any, V comparable](wire, name string, conv Converter, get func(*P) V) Field[P] {
	return Field[P]{Wire: wire, Name: name, Strategy: Custom, Converter: conv, get: func(p *P) (any, bool) {
		var zero V
		v := get(p)
		return v, v != zero
	}}
}

// Upload declares a file field; nil is absent.
func Upload[P any](wire, name string, get func(*P) *FileContent) Field[P] {
	return Field[P]{Wire: wire, Name: name, Strategy: File, get: func(p *P) (any, bool) {
		v := get(p)
		if v == nil {
			return nil, false
		}
		return v, true
	}}
}

// value reads the field from p. A nil p has every field absent.
func (f Field[P]) value(p *P) (any, bool) {
	if p == nil || f.get == nil {
		return nil, false
	}
	return f.get(p)
}
