package valueobject

import (
	"fmt"
	"strings"
)

// Prefix is the SI decimal prefix chosen for one base axis of a Unit.
type Prefix int8

// Supported prefixes
const (
	PrefixNone Prefix = iota
	PrefixDeci
	PrefixCenti
	PrefixMilli
)

// Degree returns the power of ten the prefix stands for (deci = -1, centi = -2, milli = -3).
func (p Prefix) Degree() int {
	switch p {
	case PrefixDeci:
		return -1
	case PrefixCenti:
		return -2
	case PrefixMilli:
		return -3
	default:
		return 0
	}
}

// Symbol returns the letter prepended to a unit symbol.
func (p Prefix) Symbol() string {
	switch p {
	case PrefixDeci:
		return "d"
	case PrefixCenti:
		return "c"
	case PrefixMilli:
		return "m"
	default:
		return ""
	}
}

// IsValid returns true for the four modeled prefixes
func (p Prefix) IsValid() bool {
	return p >= PrefixNone && p <= PrefixMilli
}

// String returns the prefix name
func (p Prefix) String() string {
	switch p {
	case PrefixNone:
		return "none"
	case PrefixDeci:
		return "deci"
	case PrefixCenti:
		return "centi"
	case PrefixMilli:
		return "milli"
	default:
		return fmt.Sprintf("Prefix(%d)", int8(p))
	}
}

// ParsePrefix parses a prefix name ("deci") or symbol ("d"); "" and "none" mean no prefix.
func ParsePrefix(s string) (Prefix, error) {
	switch strings.TrimSpace(s) {
	case "", "none":
		return PrefixNone, nil
	case "d", "deci":
		return PrefixDeci, nil
	case "c", "centi":
		return PrefixCenti, nil
	case "m", "milli":
		return PrefixMilli, nil
	default:
		return PrefixNone, fmt.Errorf("unknown SI prefix %q", s)
	}
}
