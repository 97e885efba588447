package form

import (
	"fmt"
	"strconv"
	"strings"

	moderr "github.com/lizzyg/chatwork/errors"
)

// Item is one wire field of a form body or query string.
type Item struct {
	Name  string
	Value string
}

// Marshal renders p as ordered form items following the schema declaration order.
// It fails with *moderr.ValidationError when a required field is absent.
func Marshal[P any](s *Schema[P], p *P) ([]Item, error) {
	items := make([]Item, 0, len(s.Fields))
	for _, f := range s.Fields {
		v, ok := f.value(p)
		if !ok {
			if f.Required {
				return nil, missing(s, f)
			}
			continue
		}
		if f.Strategy == File {
			return nil, fmt.Errorf("form: %s.%s: %w", s.Type, f.Name, moderr.ErrFileField)
		}
		text, err := encodeValue(f.Strategy, f.Converter, v)
		if err != nil {
			return nil, fmt.Errorf("form: %s.%s: %w", s.Type, f.Name, err)
		}
		items = append(items, Item{Name: f.Wire, Value: text})
	}
	return items, nil
}

func missing[P any](s *Schema[P], f Field[P]) error {
	return &moderr.ValidationError{Type: s.Type, Field: f.Name, Wire: f.Wire}
}

// encodeValue is the single place where a strategy turns a value into text.
func encodeValue(strategy Strategy, conv Converter, v any) (string, error) {
	switch strategy {
	case Bool:
		b, ok := v.(bool)
		if !ok {
			return "", typeMismatch(strategy, v)
		}
		if b {
			return "1", nil
		}
		return "0", nil
	case Enum:
		e, ok := v.(EnumValue)
		if !ok {
			return "", typeMismatch(strategy, v)
		}
		if w := e.Wire(); w != "" {
			return w, nil
		}
		return e.Symbol(), nil
	case StringList:
		list, ok := v.([]string)
		if !ok {
			return "", typeMismatch(strategy, v)
		}
		return strings.Join(list, ","), nil
	case IntList:
		list, ok := v.([]int)
		if !ok {
			return "", typeMismatch(strategy, v)
		}
		parts := make([]string, len(list))
		for i, n := range list {
			parts[i] = strconv.Itoa(n)
		}
		return strings.Join(parts, ","), nil
	case LongList:
		list, ok := v.([]int64)
		if !ok {
			return "", typeMismatch(strategy, v)
		}
		parts := make([]string, len(list))
		for i, n := range list {
			parts[i] = strconv.FormatInt(n, 10)
		}
		return strings.Join(parts, ","), nil
	case Custom:
		if conv == nil {
			return "", fmt.Errorf("custom field has no converter")
		}
		return conv.Encode(v)
	case Raw:
		return fmt.Sprint(v), nil
	default:
		return "", fmt.Errorf("strategy %s has no text form", strategy)
	}
}

func typeMismatch(strategy Strategy, v any) error {
	return fmt.Errorf("strategy %s cannot encode %T", strategy, v)
}
