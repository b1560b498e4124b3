package tsdf

// AccessMode distinguishes a read-only handle from a read-write one. The
// single-writer/many-reader discipline is otherwise enforced entirely by
// the file's atomicity contract; this mode is a belt-and-suspenders check
// modeled on Rust's IoMode split (Read vs Write) — it fails fast in Go
// rather than relying on the caller to simply never call Add/Remove on a
// reader's handle.
type AccessMode int

const (
	// ReadWrite permits Add and Remove in addition to Get/Contains.
	ReadWrite AccessMode = iota
	// ReadOnly permits only Get/Contains; Add and Remove return
	// ErrReadOnly without touching the file.
	ReadOnly
)

// DistDict is a persistent, in-file, sharded hash table: it owns the
// address of its first shard and drives Add/Get/Contains/Remove by walking
// (and, on Add, extending) the shard chain.
// A DistDict value is stateless across calls except for the in-memory
// initialized flag — everything else is recomputed or read from the file
// on every call.
type DistDict[TKey any, TVal any] struct {
	loc            Addr
	firstShardAddr Addr
	initialized    bool
	mode           AccessMode

	file     File
	format   FileFormat
	keyCodec KeyCodec[TKey]
	valCodec Codec[TVal]
}

// headerSizeOnDisk is the DistDict header's on-disk footprint: exactly the
// size of one Addr.
func headerSizeOnDisk(format FileFormat) Addr {
	return Addr(AddrCodec.SizeOnDisk(format))
}

// OpenAt constructs a handle over a DistDict that may already exist on
// disk at loc. initialized should be true iff the caller already knows the
// dictionary's header and first shard have been written (e.g. because a
// parent Dir recorded that fact). With initialized false, Get and Contains
// report absent and Remove is a no-op without reading the file, and the
// first Add runs initialization: it rewrites the header and re-initializes
// the first shard, clearing every entry that shard held. Initialization is
// not idempotent over an existing dictionary.
func OpenAt[TKey any, TVal any](
	file File,
	format FileFormat,
	loc Addr,
	initialized bool,
	mode AccessMode,
	keyCodec KeyCodec[TKey],
	valCodec Codec[TVal],
) *DistDict[TKey, TVal] {
	return &DistDict[TKey, TVal]{
		loc:            loc,
		firstShardAddr: loc + headerSizeOnDisk(format),
		initialized:    initialized,
		mode:           mode,
		file:           file,
		format:         format,
		keyCodec:       keyCodec,
		valCodec:       valCodec,
	}
}

// CreateAt constructs a handle for a DistDict that has never existed at loc
// before. It does not write anything by itself: initialization is lazily
// triggered by the first Add, so a DistDict that is created but never
// written to leaves the file untouched.
func CreateAt[TKey any, TVal any](
	file File,
	format FileFormat,
	loc Addr,
	mode AccessMode,
	keyCodec KeyCodec[TKey],
	valCodec Codec[TVal],
) *DistDict[TKey, TVal] {
	return OpenAt[TKey, TVal](file, format, loc, false, mode, keyCodec, valCodec)
}

// Loc is this dictionary's own byte offset.
func (d *DistDict[TKey, TVal]) Loc() Addr { return d.loc }

// FirstShardAddr is loc + size_of(header): always computable without
// touching the file.
func (d *DistDict[TKey, TVal]) FirstShardAddr() Addr { return d.firstShardAddr }

// Initialized reports whether this handle believes its header and first
// shard have been written.
func (d *DistDict[TKey, TVal]) Initialized() bool { return d.initialized }

func (d *DistDict[TKey, TVal]) firstShard() *Shard[TVal] {
	return NewShard(d.file, d.format, d.firstShardAddr, 0, d.valCodec)
}

func (d *DistDict[TKey, TVal]) ensureInitialized() error {
	if d.initialized {
		return nil
	}
	if err := WriteAt(d.file, AddrCodec, d.format, d.loc, d.firstShardAddr); err != nil {
		return err
	}
	if err := d.firstShard().Init(); err != nil {
		return err
	}
	d.initialized = true
	return nil
}

func (d *DistDict[TKey, TVal]) hashKey(key TKey) TsdfHash {
	return HashBytes(d.keyCodec.CanonicalBytes(key))
}

// appendShard allocates a new shard at the current end of the file, with
// the given link number, and brings it into a legal empty state.
func (d *DistDict[TKey, TVal]) appendShard(linkNumber int) (*Shard[TVal], error) {
	size, err := d.file.Size()
	if err != nil {
		return nil, wrapIO("append shard", err)
	}
	shard := NewShard(d.file, d.format, Addr(size), linkNumber, d.valCodec)
	if err := shard.Init(); err != nil {
		return nil, err
	}
	return shard, nil
}

// Add inserts or overwrites the (key, value) pair. The working shard
// starts at the chain head; if the target slot is free or already holds
// this key, the value is written there; otherwise the walk follows (or
// creates) the next shard in the chain.
func (d *DistDict[TKey, TVal]) Add(key TKey, value TVal) error {
	if d.mode == ReadOnly {
		return ErrReadOnly
	}
	if err := d.ensureInitialized(); err != nil {
		return err
	}

	h := d.hashKey(key)
	shard := d.firstShard()

	for {
		i := uint64(h) % shard.Capacity()

		written, err := shard.IsHashWritten(i)
		if err != nil {
			return err
		}
		if !written {
			return shard.Add(h, value)
		}

		stored, err := shard.GetHash(i)
		if err != nil {
			return err
		}
		if stored == h {
			return shard.Add(h, value)
		}

		next, err := shard.GetNext()
		if err != nil {
			return err
		}
		if next.IsNull() {
			newShard, err := d.appendShard(shard.LinkNumber() + 1)
			if err != nil {
				return err
			}
			if err := shard.SetNext(LinkTo(newShard.Loc())); err != nil {
				return err
			}
			shard = newShard
			continue
		}

		addr, _ := next.Addr()
		shard = NewShard(d.file, d.format, addr, shard.LinkNumber()+1, d.valCodec)
	}
}

// Get returns the value stored for key, if any. An uninitialized
// dictionary always reports absent without touching the file.
func (d *DistDict[TKey, TVal]) Get(key TKey) (TVal, bool, error) {
	var zero TVal
	if !d.initialized {
		return zero, false, nil
	}

	h := d.hashKey(key)
	shard := d.firstShard()

	for {
		i := uint64(h) % shard.Capacity()

		written, err := shard.IsHashWritten(i)
		if err != nil {
			return zero, false, err
		}
		if written {
			stored, err := shard.GetHash(i)
			if err != nil {
				return zero, false, err
			}
			if stored == h {
				val, err := shard.GetVal(i)
				return val, err == nil, err
			}
		}

		// Either the slot is uncommitted, or it is committed to a
		// different key that collided with ours on an earlier shard: in
		// both cases our key, if present at all, can only live further
		// down the chain.
		next, err := shard.GetNext()
		if err != nil {
			return zero, false, err
		}
		if next.IsNull() {
			return zero, false, nil
		}
		addr, _ := next.Addr()
		shard = NewShard(d.file, d.format, addr, shard.LinkNumber()+1, d.valCodec)
	}
}

// Contains reports whether key is present.
func (d *DistDict[TKey, TVal]) Contains(key TKey) (bool, error) {
	_, ok, err := d.Get(key)
	return ok, err
}

// Remove deletes key if present; it is a no-op (and returns no error) if
// key is absent or the dictionary has never been written to.
func (d *DistDict[TKey, TVal]) Remove(key TKey) error {
	if d.mode == ReadOnly {
		return ErrReadOnly
	}
	if !d.initialized {
		return nil
	}

	h := d.hashKey(key)
	shard := d.firstShard()

	for {
		contains, err := shard.Contains(h)
		if err != nil {
			return err
		}
		if contains {
			return shard.Remove(h)
		}

		next, err := shard.GetNext()
		if err != nil {
			return err
		}
		if next.IsNull() {
			return nil
		}
		addr, _ := next.Addr()
		shard = NewShard(d.file, d.format, addr, shard.LinkNumber()+1, d.valCodec)
	}
}
