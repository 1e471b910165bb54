// Package naming maps declared member names onto wire field names.
//
// A Convention is applied to every member of a type unless the type fixes its
// own convention, and an explicit per-member name always wins:
//
//	explicit member name > type-level convention > caller convention
package naming

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ErrUnknownConvention is returned for Convention values outside the enum.
var ErrUnknownConvention = errors.New("unknown naming convention")

// Convention is a rule deriving a wire name from a declared member name.
type Convention int

const (
	Identity     Convention = iota // name unchanged
	AllLowerCase                   // every character lower-cased
	AllUpperCase                   // every character upper-cased
	CamelCase                      // first character lower-cased
	PascalCase                     // first character upper-cased
)

var conventionNames = [...]string{
	Identity:     "identity",
	AllLowerCase: "lower",
	AllUpperCase: "upper",
	CamelCase:    "camel",
	PascalCase:   "pascal",
}

// Conventions returns all known conventions in declaration order.
func Conventions() []Convention {
	return []Convention{Identity, AllLowerCase, AllUpperCase, CamelCase, PascalCase}
}

// Validate returns ErrUnknownConvention when c is not a known convention.
func (c Convention) Validate() error {
	if c < Identity || c > PascalCase {
		return fmt.Errorf("%w: %d", ErrUnknownConvention, int(c))
	}

	return nil
}

// String returns the short name of c, e.g. "camel".
func (c Convention) String() string {
	if c.Validate() != nil {
		return fmt.Sprintf("Convention(%d)", int(c))
	}

	return conventionNames[c]
}

// Apply derives the wire name for raw under c.
func (c Convention) Apply(raw string) (string, error) {
	switch c {
	case Identity:
		return raw, nil
	case AllLowerCase:
		return strings.ToLower(raw), nil
	case AllUpperCase:
		return strings.ToUpper(raw), nil
	case CamelCase:
		return mapFirst(raw, unicode.ToLower), nil
	case PascalCase:
		return mapFirst(raw, unicode.ToUpper), nil
	default:
		return "", c.Validate()
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Convention) MarshalText() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Convention) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}

	*c = parsed
	return nil
}

// Parse accepts short names ("camel") as well as the long ones ("CamelCase",
// "all-lower-case"), case-insensitively.
func Parse(s string) (Convention, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)

	switch key {
	case "identity", "none", "":
		return Identity, nil
	case "lower", "lowercase", "alllowercase":
		return AllLowerCase, nil
	case "upper", "uppercase", "alluppercase":
		return AllUpperCase, nil
	case "camel", "camelcase":
		return CamelCase, nil
	case "pascal", "pascalcase":
		return PascalCase, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownConvention, s)
	}
}

// Effective returns the convention that applies to the members of a type:
// the type-level override when present, otherwise the requested one.
func Effective(requested Convention, override *Convention) Convention {
	if override != nil {
		return *override
	}

	return requested
}

// FieldName computes the wire name of a member. A non-empty explicit name
// is used as is; otherwise c is applied to raw.
func FieldName(raw, explicit string, c Convention) (string, error) {
	if explicit != "" {
		return explicit, nil
	}

	name, err := c.Apply(raw)
	if err != nil {
		return "", err
	}

	if name == "" {
		return "", errors.New("member has an empty name")
	}

	return name, nil
}

// mapFirst applies fn to the first rune of s only, no word splitting.
func mapFirst(s string, fn func(rune) rune) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(fn(r)) + s[size:]
}
