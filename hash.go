package tsdf

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// TsdfHash is the 64-bit hash of a key. Zero is reserved to mean "no hash
// written" and is used as the sentinel value of an uncommitted slot; it
// never appears as the hash of a committed entry.
type TsdfHash uint64

// NullHash is the reserved sentinel hash value.
func NullHash() TsdfHash { return 0 }

// HashBytes deterministically hashes the canonical byte representation of a
// key. xxhash.Sum64 almost never produces zero, but since zero is reserved
// as the null sentinel, the rare collision is remapped to a fixed non-zero
// value so a real key can never be mistaken for an empty slot.
func HashBytes(canonical []byte) TsdfHash {
	h := xxhash.Sum64(canonical)
	if h == 0 {
		// Keep this deterministic: two calls with the same zero-hashing
		// input must still agree, or TsdfHash equality would break.
		h = xxhash.Sum64String("tsdf:null-hash-collision")
		if h == 0 {
			h = 1
		}
	}
	return TsdfHash(h)
}

// hashCodec implements Codec[TsdfHash].
type hashCodec struct{}

func (hashCodec) SizeOnDisk(format FileFormat) int {
	if format == Text {
		return leafTextSize
	}
	return 8
}

func (hashCodec) Encode(format FileFormat, v TsdfHash) []byte {
	if format == Text {
		return encodeLeafText(uint64(v))
	}
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(v))
	return buf
}

func (hashCodec) Decode(format FileFormat, buf []byte) (TsdfHash, error) {
	if format == Text {
		v, err := decodeLeafText("decode hash", buf)
		return TsdfHash(v), err
	}
	if len(buf) != 8 {
		return 0, wrapCorrupt("decode hash", fmt.Errorf("expected 8 bytes, got %d", len(buf)))
	}
	return TsdfHash(binary.LittleEndian.Uint64(buf)), nil
}

func (hashCodec) Null() TsdfHash { return NullHash() }

// TsdfHashCodec is the Codec[TsdfHash] used internally by Shard to read and
// write each slot's stored hash.
var TsdfHashCodec Codec[TsdfHash] = hashCodec{}

// KeyCodec produces the canonical byte representation of a key, the input
// TsdfHash is computed from. It is a stateless strategy object rather than
// a method on TKey so that plain types (string, uint64, []byte) can be used
// directly as dictionary keys.
type KeyCodec[TKey any] interface {
	CanonicalBytes(key TKey) []byte
}

// StringKeyCodec hashes a string key by its UTF-8 bytes.
type StringKeyCodec struct{}

func (StringKeyCodec) CanonicalBytes(key string) []byte { return []byte(key) }

// BytesKeyCodec hashes a []byte key directly.
type BytesKeyCodec struct{}

func (BytesKeyCodec) CanonicalBytes(key []byte) []byte { return key }

// Uint64KeyCodec hashes a uint64 key by its big-endian encoding.
type Uint64KeyCodec struct{}

func (Uint64KeyCodec) CanonicalBytes(key uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, key)
	return buf
}
