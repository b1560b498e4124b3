/*
Package tsdf implements the core of a TSDF (Tagged, Self-Describing File)
container: a persistent, sharded, open-addressed hash table that lives
entirely as a byte range inside one file, with no sidecar index and no
in-memory copy of the data.

The central type is DistDict, a dictionary keyed by any hashable key whose
entries are chained through a singly-linked list of Shards. Each shard is a
fixed-capacity slot array; when a shard fills up along a given probe index,
DistDict appends a new, larger shard at the end of the file and links to it.
Every slot carries a one-byte commit flag, written last on insert and first
on removal, so that a concurrent reader observing the flag either sees no
entry or a fully-written one — the single mechanism this package relies on
for single-writer/many-reader safety.

Basic usage:

	f, _ := os.OpenFile("data.tsdf", os.O_RDWR|os.O_CREATE, 0644)
	defer f.Close()

	file := tsdf.NewOSFile(f)
	dict := tsdf.CreateAt[string, tsdf.Addr](file, tsdf.Binary, tsdf.Addr(64), tsdf.ReadWrite,
		tsdf.StringKeyCodec{}, tsdf.AddrCodec)

	_ = dict.Add("key", tsdf.Addr(1234))

	val, ok, _ := dict.Get("key")
	if ok {
		fmt.Println("value:", val)
	}

Features:

  - Fixed-size-on-disk values only: any TVal with a Codec[TVal] can be
    stored, so slot offsets are always computable without reading the shard.
  - Two on-disk encodings: Binary (compact, little-endian, production) and
    Text (padded JSON, for inspecting a file by eye).
  - Open addressing with no probing: a shard holds at most one hash per
    index; a colliding key is routed to the next shard in the chain instead.
  - Positional I/O only: every read and write names its own file offset, so
    there is no shared seek cursor and no coarse lock around the file.

Implementation details:

A DistDict's on-disk footprint is exactly one Addr: the address of its
first shard, placed immediately after the dictionary header. A shard of
link number k has capacity 8*2^k, so an unbounded insert sequence grows the
chain in O(log N) hops rather than needing to rehash or shrink — shards,
once created, are permanent and never reclaimed.
*/
package tsdf
