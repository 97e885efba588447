package form

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Converter renders a field value to its wire string and parses it back.
type Converter interface {
	Encode(v any) (string, error)
	Decode(s string) (any, error)
}

// UnixSeconds converts between time.Time and Unix seconds.
var UnixSeconds Converter = unixSeconds{}

type unixSeconds struct{}

func (unixSeconds) Encode(v any) (string, error) {
	switch t := v.(type) {
	case time.Time:
		return strconv.FormatInt(t.Unix(), 10), nil
	case *time.Time:
		if t == nil {
			return "", fmt.Errorf("unix seconds: nil time")
		}
		return strconv.FormatInt(t.Unix(), 10), nil
	default:
		return "", fmt.Errorf("unix seconds: unsupported value %T", v)
	}
}

func (unixSeconds) Decode(s string) (any, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("unix seconds: %w", err)
	}
	return time.Unix(n, 0).UTC(), nil
}
