package rational

import (
	"encoding/json"

	"github.com/vmihailenco/msgpack/v5"
)

// MarshalText implements encoding.TextMarshaler using the "num/den" form.
func (x Rat) MarshalText() ([]byte, error) {
	return []byte(x.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (x *Rat) UnmarshalText(text []byte) error {
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*x = v
	return nil
}

// MarshalJSON encodes x as a JSON string.
func (x Rat) MarshalJSON() ([]byte, error) {
	return json.Marshal(x.String())
}

// UnmarshalJSON decodes a JSON string produced by MarshalJSON.
func (x *Rat) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return x.UnmarshalText([]byte(s))
}

var (
	_ msgpack.CustomEncoder = Rat{}
	_ msgpack.CustomDecoder = (*Rat)(nil)
)

// EncodeMsgpack stores x as its "num/den" string.
func (x Rat) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeString(x.String())
}

// DecodeMsgpack reads a value written by EncodeMsgpack.
func (x *Rat) DecodeMsgpack(dec *msgpack.Decoder) error {
	s, err := dec.DecodeString()
	if err != nil {
		return err
	}
	return x.UnmarshalText([]byte(s))
}
