// Package value provides the tagged value type stored by Hoard.
package value

import (
	"bytes"
	"math"
	"sort"
)

// Kind identifies the variant held by a Value.
// Kind values match the field numbers used on the wire.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindInt
	KindFloat
	KindText
	KindBytes
	KindList
	KindMap
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindNull:    "null",
	KindBool:    "bool",
	KindInt:     "int",
	KindFloat:   "float",
	KindText:    "text",
	KindBytes:   "bytes",
	KindList:    "list",
	KindMap:     "map",
}

// String returns the lower-case kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// Value is an immutable tagged variant. The zero Value is invalid.
type Value struct {
	kind Kind
	num  int64 // int payload, bool as 0/1
	flt  float64
	str  string
	raw  []byte
	list []Value
	m    map[string]Value
}

// Null returns the null value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean value.
func Bool(b bool) Value {
	v := Value{kind: KindBool}
	if b {
		v.num = 1
	}
	return v
}

// Int returns an integer value.
func Int(n int64) Value { return Value{kind: KindInt, num: n} }

// Float returns a floating point value.
func Float(f float64) Value { return Value{kind: KindFloat, flt: f} }

// Text returns a text value.
func Text(s string) Value { return Value{kind: KindText, str: s} }

// Bytes returns a byte blob value. The slice is copied.
func Bytes(b []byte) Value {
	return Value{kind: KindBytes, raw: bytes.Clone(nonNil(b))}
}

// List returns a list value holding elems in order.
func List(elems ...Value) Value {
	l := make([]Value, len(elems))
	copy(l, elems)
	return Value{kind: KindList, list: l}
}

// Map returns a map value. The map is copied.
func Map(m map[string]Value) Value {
	c := make(map[string]Value, len(m))
	for k, v := range m {
		c[k] = v
	}
	return Value{kind: KindMap, m: c}
}

func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}

// Kind returns the variant kind.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload.
func (v Value) AsBool() (bool, bool) { return v.num != 0, v.kind == KindBool }

// AsInt returns the integer payload.
func (v Value) AsInt() (int64, bool) { return v.num, v.kind == KindInt }

// AsFloat returns the float payload.
func (v Value) AsFloat() (float64, bool) { return v.flt, v.kind == KindFloat }

// AsText returns the text payload.
func (v Value) AsText() (string, bool) { return v.str, v.kind == KindText }

// AsBytes returns a copy of the byte payload.
func (v Value) AsBytes() ([]byte, bool) {
	if v.kind != KindBytes {
		return nil, false
	}
	return bytes.Clone(v.raw), true
}

// Len returns the number of elements of a list or map, or the payload
// length of text and bytes. Other kinds report 0.
func (v Value) Len() int {
	switch v.kind {
	case KindText:
		return len(v.str)
	case KindBytes:
		return len(v.raw)
	case KindList:
		return len(v.list)
	case KindMap:
		return len(v.m)
	}
	return 0
}

// Index returns the i-th list element.
func (v Value) Index(i int) Value {
	if v.kind != KindList || i < 0 || i >= len(v.list) {
		return Value{}
	}
	return v.list[i]
}

// Elems returns a copy of the list elements.
func (v Value) Elems() []Value {
	if v.kind != KindList {
		return nil
	}
	out := make([]Value, len(v.list))
	copy(out, v.list)
	return out
}

// Lookup returns the map entry stored under key.
func (v Value) Lookup(key string) (Value, bool) {
	if v.kind != KindMap {
		return Value{}, false
	}
	e, ok := v.m[key]
	return e, ok
}

// Keys returns the map keys in ascending order.
func (v Value) Keys() []string {
	if v.kind != KindMap {
		return nil
	}
	keys := make([]string, 0, len(v.m))
	for k := range v.m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Equal reports whether v and o hold the same kind and payload, recursively.
// Floats compare by bit pattern so NaN equals itself.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInvalid, KindNull:
		return true
	case KindBool, KindInt:
		return v.num == o.num
	case KindFloat:
		return math.Float64bits(v.flt) == math.Float64bits(o.flt)
	case KindText:
		return v.str == o.str
	case KindBytes:
		return bytes.Equal(v.raw, o.raw)
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.m) != len(o.m) {
			return false
		}
		for k, e := range v.m {
			oe, ok := o.m[k]
			if !ok || !e.Equal(oe) {
				return false
			}
		}
		return true
	}
	return false
}

// IsSupported reports whether v may be stored. Only the top-level kind is
// checked; nested list and map elements are not inspected.
func IsSupported(v Value) bool {
	switch v.kind {
	case KindNull, KindInt, KindFloat, KindText, KindBytes, KindList, KindMap:
		return true
	}
	return false
}
