package tsdf

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
)

// Addr is a byte offset into a TSDF file. Zero is reserved to mean
// "null/unassigned"; any object a caller actually places in the file must
// sit at an offset of at least 1 (in practice, past the container header).
type Addr uint64

// NullAddr is the reserved "unassigned" address.
func NullAddr() Addr { return 0 }

// IsNull reports whether a is the reserved null address.
func (a Addr) IsNull() bool { return a == 0 }

// LinkPtr is a nullable pointer sharing Addr's representation: the zero
// value of the address space denotes Null rather than a separate
// discriminator byte, which keeps LinkPtr's size on disk identical to
// Addr's and slot-offset arithmetic a pure affine function of capacity.
type LinkPtr Addr

// NullLink is the Null variant of LinkPtr.
func NullLink() LinkPtr { return LinkPtr(0) }

// LinkTo wraps a non-null address as a LinkPtr. Passing NullAddr() produces
// a LinkPtr indistinguishable from NullLink(), by design: zero always means
// Null.
func LinkTo(a Addr) LinkPtr { return LinkPtr(a) }

// IsNull reports whether p is Null.
func (p LinkPtr) IsNull() bool { return Addr(p) == 0 }

// Addr returns the pointed-to address and true, or (0, false) if p is Null.
func (p LinkPtr) Addr() (Addr, bool) {
	if p.IsNull() {
		return 0, false
	}
	return Addr(p), true
}

// leafTextSize is the padded width every uint64-shaped leaf type (Addr,
// LinkPtr, TsdfHash) uses in Text format: big enough to hold the JSON
// rendering of math.MaxUint64, `{"v":18446744073709551615}`.
const leafTextSize = len(`{"v":18446744073709551615}`)

type leafJSON struct {
	V uint64 `json:"v"`
}

func encodeLeafText(v uint64) []byte {
	buf, err := json.Marshal(leafJSON{V: v})
	if err != nil {
		// leafJSON only ever holds a uint64; this cannot fail.
		panic(fmt.Sprintf("tsdf: unreachable: encoding leaf value: %v", err))
	}
	if len(buf) > leafTextSize {
		panic("tsdf: unreachable: leaf JSON encoding exceeds leafTextSize")
	}
	padded := make([]byte, leafTextSize)
	copy(padded, buf)
	for i := len(buf); i < leafTextSize; i++ {
		padded[i] = ' '
	}
	return padded
}

func decodeLeafText(op string, buf []byte) (uint64, error) {
	trimmed := bytes.TrimRight(buf, " ")
	var v leafJSON
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return 0, wrapCorrupt(op, err)
	}
	return v.V, nil
}

// addrCodec implements Codec[Addr].
type addrCodec struct{}

func (addrCodec) SizeOnDisk(format FileFormat) int {
	if format == Text {
		return leafTextSize
	}
	return 8
}

func (addrCodec) Encode(format FileFormat, v Addr) []byte {
	if format == Text {
		return encodeLeafText(uint64(v))
	}
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, uint64(v))
	return buf
}

func (addrCodec) Decode(format FileFormat, buf []byte) (Addr, error) {
	if format == Text {
		v, err := decodeLeafText("decode addr", buf)
		return Addr(v), err
	}
	if len(buf) != 8 {
		return 0, wrapCorrupt("decode addr", fmt.Errorf("expected 8 bytes, got %d", len(buf)))
	}
	return Addr(binary.LittleEndian.Uint64(buf)), nil
}

func (addrCodec) Null() Addr { return NullAddr() }

// AddrCodec is the Codec[Addr] used internally for pointer fields, and is
// exported so callers may also use Addr as a DistDict value type, e.g. when
// one container object needs to point at another (add("key", Addr(1234))).
var AddrCodec Codec[Addr] = addrCodec{}

// linkPtrCodec implements Codec[LinkPtr]; it shares Addr's wire
// representation exactly.
type linkPtrCodec struct{}

func (linkPtrCodec) SizeOnDisk(format FileFormat) int { return addrCodec{}.SizeOnDisk(format) }

func (linkPtrCodec) Encode(format FileFormat, v LinkPtr) []byte {
	return addrCodec{}.Encode(format, Addr(v))
}

func (linkPtrCodec) Decode(format FileFormat, buf []byte) (LinkPtr, error) {
	a, err := addrCodec{}.Decode(format, buf)
	return LinkPtr(a), err
}

func (linkPtrCodec) Null() LinkPtr { return NullLink() }

// linkPtrCodecValue is the shared Codec[LinkPtr] instance used internally
// by Shard for its next pointer.
var linkPtrCodecValue Codec[LinkPtr] = linkPtrCodec{}
