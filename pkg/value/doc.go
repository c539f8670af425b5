// Package value provides the tagged value type stored by Hoard and its
// wire codec.
//
// A Value is one of a closed set of kinds:
//
//   - Null
//   - Bool (decodable, but not accepted as a top-level stored value)
//   - Int (64-bit signed)
//   - Float (64-bit IEEE-754)
//   - Text (UTF-8)
//   - Bytes
//   - List of Value
//   - Map of text to Value
//
// Wire Format:
//
// Values are serialized as a protobuf-style message (one field per value,
// the field number doubling as the kind tag) and armoured with unpadded
// URL-safe base64. The armoured form never contains whitespace, so a value
// always travels as a single protocol token.
//
//	enc, err := value.Encode(value.List(value.Int(1), value.Text("a")))
//	v, err := value.Decode(enc)
//
// Encoding is deterministic: map entries are written in ascending key order.
package value
