package sysfs

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ValueKind identifies the codec family of an attribute.
type ValueKind int

const (
	ValueText ValueKind = iota
	ValueUnsigned
	ValueSigned
	ValuePercent
	ValueBool
	ValueEnum
	ValueSelected
	ValueList
)

func (k ValueKind) String() string {
	switch k {
	case ValueText:
		return "text"
	case ValueUnsigned:
		return "unsigned integer"
	case ValueSigned:
		return "signed integer"
	case ValuePercent:
		return "percentage"
	case ValueBool:
		return "boolean"
	case ValueEnum:
		return "enum"
	case ValueSelected:
		return "selection"
	case ValueList:
		return "list"
	default:
		return fmt.Sprintf("value(%d)", int(k))
	}
}

// Numeric reports whether values of this kind can be exported as a number.
func (k ValueKind) Numeric() bool {
	switch k {
	case ValueUnsigned, ValueSigned, ValuePercent, ValueBool:
		return true
	}
	return false
}

// Codec converts between the trimmed text of an attribute and a typed value.
// Codecs are pure: no I/O, no state.
type Codec[T any] interface {
	Decode(text string) (T, error)
	Encode(v T) (string, error)
	Kind() ValueKind
}

type textCodec struct{}

// Text returns the identity codec.
func Text() Codec[string] { return textCodec{} }

func (textCodec) Decode(text string) (string, error) { return text, nil }
func (textCodec) Encode(v string) (string, error)    { return v, nil }
func (textCodec) Kind() ValueKind                    { return ValueText }

type unsignedCodec struct{}

// Unsigned returns a strict base-10 codec for unsigned integers.
func Unsigned() Codec[uint64] { return unsignedCodec{} }

func (unsignedCodec) Decode(text string) (uint64, error) {
	v, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0, &DecodeError{Type: ValueUnsigned.String(), Text: text, Err: err}
	}
	return v, nil
}

func (unsignedCodec) Encode(v uint64) (string, error) { return strconv.FormatUint(v, 10), nil }
func (unsignedCodec) Kind() ValueKind                 { return ValueUnsigned }

type signedCodec struct{}

// Signed returns a strict base-10 codec for signed integers.
func Signed() Codec[int64] { return signedCodec{} }

func (signedCodec) Decode(text string) (int64, error) {
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return 0, &DecodeError{Type: ValueSigned.String(), Text: text, Err: err}
	}
	return v, nil
}

func (signedCodec) Encode(v int64) (string, error) { return strconv.FormatInt(v, 10), nil }
func (signedCodec) Kind() ValueKind                { return ValueSigned }

type percentCodec struct{}

// Percent returns the codec for attributes stored as whole percent (0-100)
// and handled as a ratio (0.0-1.0). Out of range ratios are written as is
// and left for the kernel to reject or clamp.
func Percent() Codec[float64] { return percentCodec{} }

func (percentCodec) Decode(text string) (float64, error) {
	v, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0, &DecodeError{Type: ValuePercent.String(), Text: text, Err: err}
	}
	return float64(v) / 100.0, nil
}

func (percentCodec) Encode(v float64) (string, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "", fmt.Errorf("%w: %v", ErrInvalidValue, v)
	}
	return strconv.FormatInt(int64(math.Round(v*100)), 10), nil
}

func (percentCodec) Kind() ValueKind { return ValuePercent }

type boolCodec struct{}

// Bool returns the codec for "0"/"1" flags.
func Bool() Codec[bool] { return boolCodec{} }

func (boolCodec) Decode(text string) (bool, error) {
	switch text {
	case "1":
		return true, nil
	case "0":
		return false, nil
	}
	return false, &DecodeError{Type: ValueBool.String(), Text: text}
}

func (boolCodec) Encode(v bool) (string, error) {
	if v {
		return "1", nil
	}
	return "0", nil
}

func (boolCodec) Kind() ValueKind { return ValueBool }

type enumCodec[T comparable] struct {
	variants map[string]T
	labels   map[T]string
}

// Enum returns a codec mapping exact, case-sensitive labels to variants.
// It panics if two labels map to the same variant, since encoding would be
// ambiguous.
func Enum[T comparable](mapping map[string]T) Codec[T] {
	c := enumCodec[T]{
		variants: make(map[string]T, len(mapping)),
		labels:   make(map[T]string, len(mapping)),
	}
	for label, v := range mapping {
		if prev, dup := c.labels[v]; dup {
			panic(fmt.Sprintf("sysfs: enum variant %v has two labels %q and %q", v, prev, label))
		}
		c.variants[label] = v
		c.labels[v] = label
	}
	return c
}

// EnumOf builds an Enum whose labels are the string form of the variants.
func EnumOf[T ~string](variants ...T) Codec[T] {
	mapping := make(map[string]T, len(variants))
	for _, v := range variants {
		mapping[string(v)] = v
	}
	return Enum(mapping)
}

func (c enumCodec[T]) Decode(text string) (T, error) {
	if v, ok := c.variants[text]; ok {
		return v, nil
	}
	var zero T
	return zero, &DecodeError{Type: ValueEnum.String(), Text: text,
		Err: fmt.Errorf("expected one of %s", strings.Join(c.Labels(), ", "))}
}

func (c enumCodec[T]) Encode(v T) (string, error) {
	if label, ok := c.labels[v]; ok {
		return label, nil
	}
	return "", fmt.Errorf("%w: %v is not one of %s", ErrInvalidValue, v, strings.Join(c.Labels(), ", "))
}

func (c enumCodec[T]) Kind() ValueKind { return ValueEnum }

type labeler interface{ Labels() []string }

// inputParser is implemented by codecs whose written form differs from the
// form they read.
type inputParser[T any] interface {
	ParseInput(text string) (T, error)
}

// Labels returns the accepted labels in sorted order.
func (c enumCodec[T]) Labels() []string {
	labels := make([]string, 0, len(c.variants))
	for l := range c.variants {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

var errNoSelection = errors.New("no bracketed selection")

// ParseSelected extracts the bracketed choice out of a space separated list
// of choices, e.g. "auto [inhibit-charge] force-discharge".
func ParseSelected(text string) (string, bool) {
	for _, choice := range strings.Split(text, " ") {
		if len(choice) > 2 && strings.HasPrefix(choice, "[") && strings.HasSuffix(choice, "]") {
			return choice[1 : len(choice)-1], true
		}
	}
	return "", false
}

type selectedCodec[T any] struct {
	inner Codec[T]
}

// Selected decodes the bracketed current choice with inner. Writes take the
// bare label, so Encode delegates to inner unchanged.
func Selected[T any](inner Codec[T]) Codec[T] { return selectedCodec[T]{inner: inner} }

func (c selectedCodec[T]) Decode(text string) (T, error) {
	choice, ok := ParseSelected(text)
	if !ok {
		var zero T
		return zero, &DecodeError{Type: ValueSelected.String(), Text: text, Err: errNoSelection}
	}
	return c.inner.Decode(choice)
}

func (c selectedCodec[T]) Encode(v T) (string, error) { return c.inner.Encode(v) }
func (c selectedCodec[T]) Kind() ValueKind            { return ValueSelected }

// ParseInput parses a bare label, the form Encode produces.
func (c selectedCodec[T]) ParseInput(text string) (T, error) { return c.inner.Decode(text) }

func (c selectedCodec[T]) Labels() []string {
	if l, ok := c.inner.(labeler); ok {
		return l.Labels()
	}
	return nil
}

type listCodec[T any] struct {
	elem       Codec[T]
	allowEmpty bool
}

// List returns a codec for space separated lists that must hold at least
// one element.
func List[T any](elem Codec[T]) Codec[[]T] { return listCodec[T]{elem: elem} }

// OptionalList is List for attributes where an empty value means an empty list.
func OptionalList[T any](elem Codec[T]) Codec[[]T] {
	return listCodec[T]{elem: elem, allowEmpty: true}
}

func (c listCodec[T]) Decode(text string) ([]T, error) {
	// cpufreq and friends print "%s " per element
	text = strings.TrimSuffix(text, " ")
	if text == "" {
		if c.allowEmpty {
			return []T{}, nil
		}
		return nil, &DecodeError{Type: ValueList.String(), Text: text, Err: errors.New("empty list")}
	}
	tokens := strings.Split(text, " ")
	out := make([]T, 0, len(tokens))
	for _, tok := range tokens {
		v, err := c.elem.Decode(tok)
		if err != nil {
			return nil, &DecodeError{Type: ValueList.String(), Text: text, Err: err}
		}
		out = append(out, v)
	}
	return out, nil
}

func (c listCodec[T]) Encode(v []T) (string, error) {
	tokens := make([]string, 0, len(v))
	for _, e := range v {
		tok, err := c.elem.Encode(e)
		if err != nil {
			return "", err
		}
		tokens = append(tokens, tok)
	}
	return strings.Join(tokens, " "), nil
}

func (c listCodec[T]) Kind() ValueKind { return ValueList }

// Float converts a value decoded by a numeric codec to float64. Booleans
// are 0 or 1.
func Float(v any) (float64, bool) {
	switch n := v.(type) {
	case uint64:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}
