// Package value provides the tagged value type stored by Hoard.
package value

import (
	"encoding/base64"
	"math"
	"sort"
	"unicode/utf8"

	"google.golang.org/protobuf/encoding/protowire"
)

const (
	// MaxEncodedSize is the default upper bound of a value's wire form (1 MiB).
	MaxEncodedSize = 1 << 20

	// MaxDepth bounds list and map nesting.
	MaxDepth = 256
)

// Field numbers inside list and map-entry messages.
const (
	fieldElem     protowire.Number = 1
	fieldEntryKey protowire.Number = 1
	fieldEntryVal protowire.Number = 2
)

var armor = base64.RawURLEncoding.Strict()

// Encode returns the wire form of v, limited to MaxEncodedSize bytes.
func Encode(v Value) ([]byte, error) {
	return EncodeLimit(v, MaxEncodedSize)
}

// EncodeLimit returns the wire form of v, failing with an EncodingError when
// it would exceed limit bytes. A limit <= 0 disables the check.
func EncodeLimit(v Value, limit int) ([]byte, error) {
	bin, err := appendValue(nil, v, 0)
	if err != nil {
		return nil, &EncodingError{Limit: limit, Err: err}
	}
	size := armor.EncodedLen(len(bin))
	if limit > 0 && size > limit {
		return nil, &EncodingError{Size: size, Limit: limit, Err: ErrTooLarge}
	}
	out := make([]byte, size)
	armor.Encode(out, bin)
	return out, nil
}

// EncodeString is Encode returning a string.
func EncodeString(v Value) (string, error) {
	b, err := Encode(v)
	return string(b), err
}

func appendValue(b []byte, v Value, depth int) ([]byte, error) {
	if depth > MaxDepth {
		return nil, ErrTooDeep
	}
	num := protowire.Number(v.kind)
	switch v.kind {
	case KindNull:
		b = protowire.AppendTag(b, num, protowire.VarintType)
		b = protowire.AppendVarint(b, 0)
	case KindBool:
		b = protowire.AppendTag(b, num, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeBool(v.num != 0))
	case KindInt:
		b = protowire.AppendTag(b, num, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeZigZag(v.num))
	case KindFloat:
		b = protowire.AppendTag(b, num, protowire.Fixed64Type)
		b = protowire.AppendFixed64(b, math.Float64bits(v.flt))
	case KindText:
		if !utf8.ValidString(v.str) {
			return nil, ErrInvalidText
		}
		b = protowire.AppendTag(b, num, protowire.BytesType)
		b = protowire.AppendString(b, v.str)
	case KindBytes:
		b = protowire.AppendTag(b, num, protowire.BytesType)
		b = protowire.AppendBytes(b, v.raw)
	case KindList:
		var body []byte
		for _, e := range v.list {
			enc, err := appendValue(nil, e, depth+1)
			if err != nil {
				return nil, err
			}
			body = protowire.AppendTag(body, fieldElem, protowire.BytesType)
			body = protowire.AppendBytes(body, enc)
		}
		b = protowire.AppendTag(b, num, protowire.BytesType)
		b = protowire.AppendBytes(b, body)
	case KindMap:
		keys := make([]string, 0, len(v.m))
		for k := range v.m {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		var body []byte
		for _, k := range keys {
			if !utf8.ValidString(k) {
				return nil, ErrInvalidText
			}
			enc, err := appendValue(nil, v.m[k], depth+1)
			if err != nil {
				return nil, err
			}
			var entry []byte
			entry = protowire.AppendTag(entry, fieldEntryKey, protowire.BytesType)
			entry = protowire.AppendString(entry, k)
			entry = protowire.AppendTag(entry, fieldEntryVal, protowire.BytesType)
			entry = protowire.AppendBytes(entry, enc)

			body = protowire.AppendTag(body, fieldElem, protowire.BytesType)
			body = protowire.AppendBytes(body, entry)
		}
		b = protowire.AppendTag(b, num, protowire.BytesType)
		b = protowire.AppendBytes(b, body)
	default:
		return nil, ErrInvalidKind
	}
	return b, nil
}

// Decode parses a wire form produced by Encode.
func Decode(enc []byte) (Value, error) {
	if len(enc) == 0 {
		return Value{}, malformed("empty input")
	}
	bin := make([]byte, armor.DecodedLen(len(enc)))
	n, err := armor.Decode(bin, enc)
	if err != nil {
		return Value{}, &DecodingError{Reason: "bad armour", Err: err}
	}
	return decodeValue(bin[:n], 0)
}

// DecodeString is Decode taking a string.
func DecodeString(enc string) (Value, error) {
	return Decode([]byte(enc))
}

// decodeValue parses exactly one value message filling all of b.
func decodeValue(b []byte, depth int) (Value, error) {
	if depth > MaxDepth {
		return Value{}, malformed("nesting too deep")
	}
	num, typ, n := protowire.ConsumeTag(b)
	if n < 0 {
		return Value{}, &DecodingError{Reason: "bad tag", Err: protowire.ParseError(n)}
	}
	b = b[n:]

	kind := KindInvalid
	if num <= protowire.Number(KindMap) {
		kind = Kind(num)
	}

	var v Value
	switch kind {
	case KindNull, KindBool, KindInt:
		if typ != protowire.VarintType {
			return Value{}, malformed("wire type mismatch for " + kind.String())
		}
		x, m := protowire.ConsumeVarint(b)
		if m < 0 {
			return Value{}, &DecodingError{Reason: "bad varint", Err: protowire.ParseError(m)}
		}
		n = m
		switch kind {
		case KindNull:
			if x != 0 {
				return Value{}, malformed("null carries payload")
			}
			v = Null()
		case KindBool:
			if x > 1 {
				return Value{}, malformed("bool out of range")
			}
			v = Bool(protowire.DecodeBool(x))
		default:
			v = Int(protowire.DecodeZigZag(x))
		}
	case KindFloat:
		if typ != protowire.Fixed64Type {
			return Value{}, malformed("wire type mismatch for float")
		}
		x, m := protowire.ConsumeFixed64(b)
		if m < 0 {
			return Value{}, &DecodingError{Reason: "bad fixed64", Err: protowire.ParseError(m)}
		}
		n = m
		v = Float(math.Float64frombits(x))
	case KindText, KindBytes, KindList, KindMap:
		if typ != protowire.BytesType {
			return Value{}, malformed("wire type mismatch for " + kind.String())
		}
		body, m := protowire.ConsumeBytes(b)
		if m < 0 {
			return Value{}, &DecodingError{Reason: "bad length", Err: protowire.ParseError(m)}
		}
		n = m
		var err error
		switch kind {
		case KindText:
			if !utf8.Valid(body) {
				return Value{}, malformed("text is not valid UTF-8")
			}
			v = Text(string(body))
		case KindBytes:
			v = Bytes(body)
		case KindList:
			v, err = decodeList(body, depth)
		default:
			v, err = decodeMap(body, depth)
		}
		if err != nil {
			return Value{}, err
		}
	default:
		return Value{}, malformed("unknown kind")
	}

	if len(b[n:]) != 0 {
		return Value{}, malformed("trailing data")
	}
	return v, nil
}

// consumeField reads one length-delimited field and checks its number.
func consumeField(b []byte, want protowire.Number) ([]byte, int, error) {
	num, typ, n := protowire.ConsumeTag(b)
	if n < 0 {
		return nil, 0, &DecodingError{Reason: "bad tag", Err: protowire.ParseError(n)}
	}
	if num != want || typ != protowire.BytesType {
		return nil, 0, malformed("unexpected field")
	}
	body, m := protowire.ConsumeBytes(b[n:])
	if m < 0 {
		return nil, 0, &DecodingError{Reason: "bad length", Err: protowire.ParseError(m)}
	}
	return body, n + m, nil
}

func decodeList(b []byte, depth int) (Value, error) {
	elems := make([]Value, 0)
	for len(b) > 0 {
		body, n, err := consumeField(b, fieldElem)
		if err != nil {
			return Value{}, err
		}
		e, err := decodeValue(body, depth+1)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, e)
		b = b[n:]
	}
	return Value{kind: KindList, list: elems}, nil
}

func decodeMap(b []byte, depth int) (Value, error) {
	m := make(map[string]Value)
	for len(b) > 0 {
		entry, n, err := consumeField(b, fieldElem)
		if err != nil {
			return Value{}, err
		}
		b = b[n:]

		key, kn, err := consumeField(entry, fieldEntryKey)
		if err != nil {
			return Value{}, err
		}
		if !utf8.Valid(key) {
			return Value{}, malformed("map key is not valid UTF-8")
		}
		body, vn, err := consumeField(entry[kn:], fieldEntryVal)
		if err != nil {
			return Value{}, err
		}
		if len(entry[kn+vn:]) != 0 {
			return Value{}, malformed("trailing data in map entry")
		}
		if _, dup := m[string(key)]; dup {
			return Value{}, malformed("duplicate map key")
		}
		e, err := decodeValue(body, depth+1)
		if err != nil {
			return Value{}, err
		}
		m[string(key)] = e
	}
	return Value{kind: KindMap, m: m}, nil
}
