package tsdf

import "fmt"

// Shard is a fixed-capacity, open-addressed slot array living at a known
// offset inside a DistDict's chain. It knows nothing about any other
// shard's contents — every slot address is computed arithmetically from
// its link number, its value codec's size on disk, and the file format, so
// answering "does this shard hold this key" never requires reading more
// than a handful of bytes.
//
// Serialized structure:
//
//	[ is_next_written : 1 byte ]
//	[ next            : sizeof(LinkPtr) ]
//	[ hash_0 : sizeof(TsdfHash) ][ val_0 : sizeof(TVal) ][ is_hash_written_0 : 1 byte ]
//	...
//	[ hash_{C-1} ][ val_{C-1} ][ is_hash_written_{C-1} ]
type Shard[TVal any] struct {
	loc        Addr
	linkNumber int
	file       File
	format     FileFormat
	valCodec   Codec[TVal]
}

// NewShard constructs a handle over a shard at loc with the given link
// number. It does not read or write anything; call Init to bring a
// freshly-appended shard into a legal empty state.
func NewShard[TVal any](file File, format FileFormat, loc Addr, linkNumber int, valCodec Codec[TVal]) *Shard[TVal] {
	return &Shard[TVal]{
		loc:        loc,
		linkNumber: linkNumber,
		file:       file,
		format:     format,
		valCodec:   valCodec,
	}
}

// ShardCapacity is the pure function capacity(k) = 8 * 2^k: shard capacity
// grows exponentially with link number so that an unbounded insert
// sequence terminates its chain walk in O(log N) hops.
func ShardCapacity(linkNumber int) uint64 {
	return 8 * (uint64(1) << uint(linkNumber))
}

// LinkNumber is this shard's position in the chain.
func (s *Shard[TVal]) LinkNumber() int { return s.linkNumber }

// Loc is this shard's start-of-shard byte offset.
func (s *Shard[TVal]) Loc() Addr { return s.loc }

// Capacity is ShardCapacity(s.LinkNumber()).
func (s *Shard[TVal]) Capacity() uint64 { return ShardCapacity(s.linkNumber) }

func (s *Shard[TVal]) slotStride() int {
	return TsdfHashCodec.SizeOnDisk(s.format) + s.valCodec.SizeOnDisk(s.format) + 1
}

// SizeOnDisk is this shard instance's total footprint: a composite,
// instance-level size (unlike a leaf type's type-level size), since it
// depends on both link number and file format.
func (s *Shard[TVal]) SizeOnDisk() int64 {
	ptrSize := int64(linkPtrCodecValue.SizeOnDisk(s.format))
	return 1 + ptrSize + int64(s.Capacity())*int64(s.slotStride())
}

func (s *Shard[TVal]) isNextWrittenAddr() Addr { return s.loc }

func (s *Shard[TVal]) nextAddr() Addr { return s.loc + 1 }

func (s *Shard[TVal]) hashAddr(i uint64) Addr {
	ptrSize := Addr(linkPtrCodecValue.SizeOnDisk(s.format))
	return s.loc + 1 + ptrSize + Addr(i)*Addr(s.slotStride())
}

func (s *Shard[TVal]) valAddr(i uint64) Addr {
	return s.hashAddr(i) + Addr(TsdfHashCodec.SizeOnDisk(s.format))
}

func (s *Shard[TVal]) isHashWrittenAddr(i uint64) Addr {
	return s.valAddr(i) + Addr(s.valCodec.SizeOnDisk(s.format))
}

// Init brings a freshly-appended shard into a legal empty state: every slot
// gets a null hash, a null value and a cleared commit flag, and the shard's
// own next-pointer flag is cleared. Call this exactly once, right after a
// shard is appended at end-of-file.
func (s *Shard[TVal]) Init() error {
	capacity := s.Capacity()
	for i := uint64(0); i < capacity; i++ {
		if err := WriteAt(s.file, s.valCodec, s.format, s.valAddr(i), s.valCodec.Null()); err != nil {
			return err
		}
		if err := WriteAt(s.file, TsdfHashCodec, s.format, s.hashAddr(i), NullHash()); err != nil {
			return err
		}
		if err := writeByte(s.file, s.isHashWrittenAddr(i), 0); err != nil {
			return err
		}
	}
	return writeByte(s.file, s.isNextWrittenAddr(), 0)
}

// IsHashWritten reports whether slot i currently holds a committed entry.
func (s *Shard[TVal]) IsHashWritten(i uint64) (bool, error) {
	b, err := readByte(s.file, s.isHashWrittenAddr(i))
	if err != nil {
		return false, err
	}
	return b == 1, nil
}

// IsNextWritten reports whether this shard's next pointer has been
// published.
func (s *Shard[TVal]) IsNextWritten() (bool, error) {
	b, err := readByte(s.file, s.isNextWrittenAddr())
	if err != nil {
		return false, err
	}
	return b == 1, nil
}

// GetHash returns the stored hash at slot i, or NullHash() if the slot is
// uncommitted. A slot marked committed that nonetheless decodes to the null
// sentinel can never be legitimate — HashBytes never produces it — so that
// case is reported as KindCorruptEncoding rather than returned as data.
func (s *Shard[TVal]) GetHash(i uint64) (TsdfHash, error) {
	written, err := s.IsHashWritten(i)
	if err != nil {
		return NullHash(), err
	}
	if !written {
		return NullHash(), nil
	}
	h, err := ReadAt(s.file, TsdfHashCodec, s.format, s.hashAddr(i))
	if err != nil {
		return NullHash(), err
	}
	if h == NullHash() {
		return NullHash(), wrapCorrupt("get hash", fmt.Errorf("slot %d is committed but decodes to the null hash sentinel", i))
	}
	return h, nil
}

// GetVal returns the stored value at slot i, or the value codec's Null() if
// the slot is uncommitted.
func (s *Shard[TVal]) GetVal(i uint64) (TVal, error) {
	written, err := s.IsHashWritten(i)
	if err != nil {
		var zero TVal
		return zero, err
	}
	if !written {
		return s.valCodec.Null(), nil
	}
	return ReadAt(s.file, s.valCodec, s.format, s.valAddr(i))
}

// GetNext returns this shard's next pointer, or NullLink() if it has not
// been published.
func (s *Shard[TVal]) GetNext() (LinkPtr, error) {
	written, err := s.IsNextWritten()
	if err != nil {
		return NullLink(), err
	}
	if !written {
		return NullLink(), nil
	}
	return ReadAt(s.file, linkPtrCodecValue, s.format, s.nextAddr())
}

// Contains reports whether hash h occupies its index slot (h mod capacity)
// in this shard specifically — it does not follow the chain.
func (s *Shard[TVal]) Contains(h TsdfHash) (bool, error) {
	i := uint64(h) % s.Capacity()
	stored, err := s.GetHash(i)
	if err != nil {
		return false, err
	}
	return stored == h, nil
}

// Add writes the (h, v) pair to its index slot in this shard. The write
// order is a correctness invariant, not an optimization: value, then hash,
// then — last — the commit flag, so a concurrent reader that observes the
// flag set always sees a fully-written hash and value behind it.
func (s *Shard[TVal]) Add(h TsdfHash, v TVal) error {
	i := uint64(h) % s.Capacity()
	if err := WriteAt(s.file, s.valCodec, s.format, s.valAddr(i), v); err != nil {
		return err
	}
	if err := WriteAt(s.file, TsdfHashCodec, s.format, s.hashAddr(i), h); err != nil {
		return err
	}
	return writeByte(s.file, s.isHashWrittenAddr(i), 1)
}

// Remove clears the (h, v) pair at its index slot. The commit flag is
// cleared first, then the hash and value are scrubbed, so a concurrent
// reader either still sees the slot committed with its old, intact
// contents, or sees it as uncommitted — never a half-scrubbed entry.
func (s *Shard[TVal]) Remove(h TsdfHash) error {
	i := uint64(h) % s.Capacity()
	if err := writeByte(s.file, s.isHashWrittenAddr(i), 0); err != nil {
		return err
	}
	if err := RemoveAt(s.file, TsdfHashCodec, s.format, s.hashAddr(i)); err != nil {
		return err
	}
	return RemoveAt(s.file, s.valCodec, s.format, s.valAddr(i))
}

// SetNext publishes this shard's next pointer: the address payload is
// written first, then the commit flag, so a reader that observes the flag
// always sees a fully-written address behind it.
func (s *Shard[TVal]) SetNext(ptr LinkPtr) error {
	if err := WriteAt(s.file, linkPtrCodecValue, s.format, s.nextAddr(), ptr); err != nil {
		return err
	}
	return writeByte(s.file, s.isNextWrittenAddr(), 1)
}
