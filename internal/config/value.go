package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies how a configuration value is stored as text.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindBool
	KindText
	KindPoint
	KindSize
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindText:
		return "text"
	case KindPoint:
		return "point"
	case KindSize:
		return "size"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Point is an (x,y) coordinate pair, stored as "x,y".
type Point struct {
	X, Y int
}

// Size is a (width,height) pair, stored as "w,h".
type Size struct {
	Width, Height int
}

// Value is a tagged configuration value. The zero Value is an Int 0.
type Value struct {
	kind Kind
	i    int
	f    float64
	b    bool
	s    string
	p    Point
	z    Size
}

func IntValue(v int) Value { return Value{kind: KindInt, i: v} }
func FloatValue(v float64) Value { return Value{kind: KindFloat, f: v} }
func BoolValue(v bool) Value { return Value{kind: KindBool, b: v} }
func TextValue(v string) Value { return Value{kind: KindText, s: v} }
func PointValue(x, y int) Value { return Value{kind: KindPoint, p: Point{X: x, Y: y}} }
func SizeValue(w, h int) Value { return Value{kind: KindSize, z: Size{Width: w, Height: h}} }
func (v Value) Kind() Kind { return v.kind }
func (v Value) Int() int { return v.i }
func (v Value) Float() float64 { return v.f }
func (v Value) Bool() bool { return v.b }
func (v Value) Text() string { return v.s }
func (v Value) Point() Point { return v.p }
func (v Value) Size() Size { return v.z }

// Equal reports whether v and o have the same kind and payload.
func (v Value) Equal(o Value) bool { return v == o }

// String renders the value in its stored form.
func (v Value) String() string {
	return format(v)
}

// format serializes v into the raw text written to the store.
func format(v Value) string {
	switch v.kind {
	case KindInt:
		return strconv.Itoa(v.i)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'f', 6, 64)
	case KindBool:
		if v.b {
			return "true"
		}
		return "false"
	case KindText:
		return v.s
	case KindPoint:
		return fmt.Sprintf("%d,%d", v.p.X, v.p.Y)
	case KindSize:
		return fmt.Sprintf("%d,%d", v.z.Width, v.z.Height)
	}
	return ""
}

// parse coerces raw into a value of def's kind. ok is false when the raw
// text cannot stand in for the value and the caller should fall back to def.
//
// Bool never reports !ok: any text other than "true" is false. Point and
// Size fall back only on wrong arity; a component that does not parse is 0.
func parse(raw string, def Value) (Value, bool) {
	switch def.kind {
	case KindInt:
		i, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return def, false
		}
		return IntValue(i), true
	case KindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return def, false
		}
		return FloatValue(f), true
	case KindBool:
		return BoolValue(raw == "true"), true
	case KindText:
		return TextValue(raw), true
	case KindPoint:
		a, b, ok := parsePair(raw)
		if !ok {
			return def, false
		}
		return PointValue(a, b), true
	case KindSize:
		a, b, ok := parsePair(raw)
		if !ok {
			return def, false
		}
		return SizeValue(a, b), true
	}
	return def, false
}

func parsePair(raw string) (int, int, bool) {
	parts := strings.Split(raw, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	return atoiOrZero(parts[0]), atoiOrZero(parts[1]), true
}

func atoiOrZero(s string) int {
	i, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return i
}

// ParseValue parses user input for a key of the given kind. Unlike reads
// from the store it is strict: malformed input is an error.
func ParseValue(kind Kind, s string) (Value, error) {
	switch kind {
	case KindInt:
		i, err := strconv.Atoi(s)
		if err != nil {
			return Value{}, fmt.Errorf("invalid integer %q: %w", s, err)
		}
		return IntValue(i), nil
	case KindFloat:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Value{}, fmt.Errorf("invalid float %q: %w", s, err)
		}
		return FloatValue(f), nil
	case KindBool:
		switch s {
		case "true":
			return BoolValue(true), nil
		case "false":
			return BoolValue(false), nil
		}
		return Value{}, fmt.Errorf("invalid bool %q: want true or false", s)
	case KindText:
		return TextValue(s), nil
	case KindPoint, KindSize:
		parts := strings.Split(s, ",")
		if len(parts) != 2 {
			return Value{}, fmt.Errorf("invalid %s %q: want two comma-separated integers", kind, s)
		}
		a, err := strconv.Atoi(strings.TrimSpace(parts[0]))
		if err != nil {
			return Value{}, fmt.Errorf("invalid %s %q: %w", kind, s, err)
		}
		b, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil {
			return Value{}, fmt.Errorf("invalid %s %q: %w", kind, s, err)
		}
		if kind == KindPoint {
			return PointValue(a, b), nil
		}
		return SizeValue(a, b), nil
	}
	return Value{}, fmt.Errorf("unsupported kind %s", kind)
}
