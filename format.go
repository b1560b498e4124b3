package tsdf

// FileFormat selects the on-disk encoding used by every read and write
// against a TSDF file. It is fixed when a file is created and must match on
// every subsequent open.
type FileFormat uint8

const (
	// Binary is the compact, fixed-width, little-endian encoding intended
	// for production use.
	Binary FileFormat = iota
	// Text is a padded-JSON encoding intended only for inspecting a file
	// by eye. Every value is right-padded with ASCII spaces out to a
	// fixed maximum width so that slot offsets stay purely arithmetic.
	Text
)

func (f FileFormat) String() string {
	switch f {
	case Binary:
		return "binary"
	case Text:
		return "text"
	default:
		return "unknown"
	}
}

// Codec is the serialization capability a type must provide to be storable
// on disk at a fixed size: a size per format, an encoder, a decoder, and a
// null value used to mark an empty slot. Leaf types (Addr, LinkPtr,
// TsdfHash) and any value type a DistDict is instantiated with all
// implement Codec[T] as a stateless strategy object rather than a method
// set on T, so that built-in types like Addr can be stored as a TVal
// without re-declaring methods on them.
type Codec[T any] interface {
	// SizeOnDisk is the exact number of bytes Encode produces (and Decode
	// expects) for the given format.
	SizeOnDisk(format FileFormat) int
	// Encode renders v as exactly SizeOnDisk(format) bytes.
	Encode(format FileFormat, v T) []byte
	// Decode parses exactly SizeOnDisk(format) bytes back into a T, or
	// returns a *Error with KindCorruptEncoding if buf cannot represent
	// a legal value.
	Decode(format FileFormat, buf []byte) (T, error)
	// Null is the value written into a slot that holds no committed
	// entry.
	Null() T
}

// WriteAt writes exactly codec.SizeOnDisk(format) bytes encoding v at addr.
// It is a positional write: no implicit seek state is kept.
func WriteAt[T any](file File, codec Codec[T], format FileFormat, addr Addr, v T) error {
	buf := codec.Encode(format, v)
	if _, err := file.WriteAt(buf, int64(addr)); err != nil {
		return wrapIO("write", err)
	}
	return nil
}

// ReadAt reads exactly codec.SizeOnDisk(format) bytes at addr and decodes
// them into a T.
func ReadAt[T any](file File, codec Codec[T], format FileFormat, addr Addr) (T, error) {
	size := codec.SizeOnDisk(format)
	buf := make([]byte, size)
	if _, err := file.ReadAt(buf, int64(addr)); err != nil {
		var zero T
		return zero, wrapIO("read", err)
	}
	return codec.Decode(format, buf)
}

// RemoveAt is equivalent to WriteAt(file, codec, format, addr, codec.Null()).
func RemoveAt[T any](file File, codec Codec[T], format FileFormat, addr Addr) error {
	return WriteAt(file, codec, format, addr, codec.Null())
}

// writeByte and readByte implement the single-byte commit-flag primitive
// every slot and every shard's next-pointer rely on.
func writeByte(file File, addr Addr, b byte) error {
	if _, err := file.WriteAt([]byte{b}, int64(addr)); err != nil {
		return wrapIO("write flag", err)
	}
	return nil
}

func readByte(file File, addr Addr) (byte, error) {
	var buf [1]byte
	if _, err := file.ReadAt(buf[:], int64(addr)); err != nil {
		return 0, wrapIO("read flag", err)
	}
	return buf[0], nil
}
