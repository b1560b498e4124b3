package tsdf

import (
	"io"
	"os"
)

// File is the capability the core borrows from its caller: positional reads
// and writes at explicit offsets, plus the current size of the file so that
// DistDict can append a new shard at end-of-file. There is no shared seek
// cursor and no Close — ownership of the underlying handle stays with
// whoever opened it.
type File interface {
	io.ReaderAt
	io.WriterAt
	// Size returns the current length of the file in bytes.
	Size() (int64, error)
}

// osFile adapts *os.File to File.
type osFile struct {
	f *os.File
}

// NewOSFile wraps an already-open *os.File for use by DistDict/Shard. The
// caller retains ownership — closing f is the caller's responsibility.
func NewOSFile(f *os.File) File {
	return &osFile{f: f}
}

func (o *osFile) ReadAt(p []byte, off int64) (int, error) {
	return o.f.ReadAt(p, off)
}

func (o *osFile) WriteAt(p []byte, off int64) (int, error) {
	return o.f.WriteAt(p, off)
}

func (o *osFile) Size() (int64, error) {
	fi, err := o.f.Stat()
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}
