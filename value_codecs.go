package tsdf

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
)

// uint64Codec implements Codec[uint64] for plain numeric values, as distinct
// from Addr (which reserves zero as a pointer null sentinel). Zero is a
// perfectly ordinary uint64 value here.
type uint64Codec struct{}

func (uint64Codec) SizeOnDisk(format FileFormat) int {
	if format == Text {
		return leafTextSize
	}
	return 8
}

func (uint64Codec) Encode(format FileFormat, v uint64) []byte {
	if format == Text {
		return encodeLeafText(v)
	}
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, v)
	return buf
}

func (uint64Codec) Decode(format FileFormat, buf []byte) (uint64, error) {
	if format == Text {
		return decodeLeafText("decode uint64", buf)
	}
	if len(buf) != 8 {
		return 0, wrapCorrupt("decode uint64", fmt.Errorf("expected 8 bytes, got %d", len(buf)))
	}
	return binary.LittleEndian.Uint64(buf), nil
}

func (uint64Codec) Null() uint64 { return 0 }

// Uint64Codec is a Codec[uint64] for dictionaries whose values are plain
// 64-bit numbers rather than file addresses.
var Uint64Codec Codec[uint64] = uint64Codec{}

// FixedBytesCodec is a Codec[[]byte] for values of a known, constant width —
// e.g. a UUID or a fixed-length string payload. Binary format stores the raw
// bytes; Text format stores them as a padded JSON string, trimmed back to
// exactly Width bytes on decode.
type FixedBytesCodec struct {
	Width int
}

func (c FixedBytesCodec) SizeOnDisk(format FileFormat) int {
	if format == Text {
		// `{"v":"..."}` plus each raw byte escaped in the worst case: a
		// control byte (e.g. the zero bytes Null/Init/Remove write) renders
		// as `\u00XX`, six JSON characters for one input byte. Sizing for
		// anything less (e.g. assuming quote/backslash's two-character
		// escape is the worst case) desynchronizes every downstream offset
		// the moment a slot holding a zeroed or control-byte value is
		// written.
		return len(`{"v":""}`) + 6*c.Width
	}
	return c.Width
}

func (c FixedBytesCodec) Encode(format FileFormat, v []byte) []byte {
	padded := make([]byte, c.Width)
	copy(padded, v)

	if format == Text {
		type fixedJSON struct {
			V string `json:"v"`
		}
		buf, err := json.Marshal(fixedJSON{V: string(padded)})
		if err != nil {
			panic(fmt.Sprintf("tsdf: unreachable: encoding fixed-width value: %v", err))
		}
		size := c.SizeOnDisk(Text)
		if len(buf) > size {
			panic(fmt.Sprintf("tsdf: unreachable: fixed-width JSON encoding (%d bytes) exceeds SizeOnDisk (%d bytes)", len(buf), size))
		}
		out := make([]byte, size)
		copy(out, buf)
		for i := len(buf); i < len(out); i++ {
			out[i] = ' '
		}
		return out
	}
	return padded
}

func (c FixedBytesCodec) Decode(format FileFormat, buf []byte) ([]byte, error) {
	if format == Text {
		type fixedJSON struct {
			V string `json:"v"`
		}
		trimmed := bytes.TrimRight(buf, " ")
		var v fixedJSON
		if err := json.Unmarshal(trimmed, &v); err != nil {
			return nil, wrapCorrupt("decode fixed-width value", err)
		}
		out := []byte(v.V)
		if len(out) > c.Width {
			out = out[:c.Width]
		}
		return out, nil
	}
	if len(buf) != c.Width {
		return nil, wrapCorrupt("decode fixed-width value", fmt.Errorf("expected %d bytes, got %d", c.Width, len(buf)))
	}
	out := make([]byte, c.Width)
	copy(out, buf)
	return out, nil
}

func (c FixedBytesCodec) Null() []byte { return make([]byte, c.Width) }
