// Package value provides the tagged value type stored by Hoard.
package value

import (
	"encoding/json"
	"fmt"
	"math"
)

// FromAny converts a plain Go value, such as the output of encoding/json or
// yaml.v3, into a Value.
func FromAny(x any) (Value, error) {
	return fromAny(x, 0)
}

func fromAny(x any, depth int) (Value, error) {
	if depth > MaxDepth {
		return Value{}, ErrTooDeep
	}
	switch t := x.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int8:
		return Int(int64(t)), nil
	case int16:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case uint:
		return fromUint(uint64(t))
	case uint8:
		return Int(int64(t)), nil
	case uint16:
		return Int(int64(t)), nil
	case uint32:
		return Int(int64(t)), nil
	case uint64:
		return fromUint(t)
	case float32:
		return Float(float64(t)), nil
	case float64:
		return Float(t), nil
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return Int(n), nil
		}
		f, err := t.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("value: number %q: %w", t.String(), err)
		}
		return Float(f), nil
	case string:
		return Text(t), nil
	case []byte:
		return Bytes(t), nil
	case []any:
		elems := make([]Value, len(t))
		for i, e := range t {
			v, err := fromAny(e, depth+1)
			if err != nil {
				return Value{}, err
			}
			elems[i] = v
		}
		return Value{kind: KindList, list: elems}, nil
	case map[string]any:
		m := make(map[string]Value, len(t))
		for k, e := range t {
			v, err := fromAny(e, depth+1)
			if err != nil {
				return Value{}, err
			}
			m[k] = v
		}
		return Value{kind: KindMap, m: m}, nil
	}
	return Value{}, fmt.Errorf("value: unsupported Go type %T", x)
}

func fromUint(u uint64) (Value, error) {
	if u > math.MaxInt64 {
		return Value{}, fmt.Errorf("value: integer %d overflows int64", u)
	}
	return Int(int64(u)), nil
}

// Interface returns v as a plain Go value: nil, bool, int64, float64, string,
// []byte, []any or map[string]any.
func (v Value) Interface() any {
	switch v.kind {
	case KindBool:
		return v.num != 0
	case KindInt:
		return v.num
	case KindFloat:
		return v.flt
	case KindText:
		return v.str
	case KindBytes:
		return v.raw
	case KindList:
		out := make([]any, len(v.list))
		for i, e := range v.list {
			out[i] = e.Interface()
		}
		return out
	case KindMap:
		out := make(map[string]any, len(v.m))
		for k, e := range v.m {
			out[k] = e.Interface()
		}
		return out
	}
	return nil
}

// String renders v for diagnostics.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindText:
		return fmt.Sprintf("%q", v.str)
	case KindBytes:
		return fmt.Sprintf("bytes(%d)", len(v.raw))
	case KindInvalid:
		return "<invalid>"
	}
	return fmt.Sprint(v.Interface())
}
