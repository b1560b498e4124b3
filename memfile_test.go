package tsdf

// memFile is an in-memory File used by the unit tests in this package so
// that offset arithmetic and commit-flag ordering can be asserted directly
// against a byte buffer, without round-tripping through the filesystem.
type memFile struct {
	buf []byte
}

func newMemFile() *memFile {
	return &memFile{}
}

func (m *memFile) ensure(size int64) {
	if int64(len(m.buf)) < size {
		grown := make([]byte, size)
		copy(grown, m.buf)
		m.buf = grown
	}
}

func (m *memFile) ReadAt(p []byte, off int64) (int, error) {
	m.ensure(off + int64(len(p)))
	n := copy(p, m.buf[off:])
	return n, nil
}

func (m *memFile) WriteAt(p []byte, off int64) (int, error) {
	m.ensure(off + int64(len(p)))
	n := copy(m.buf[off:], p)
	return n, nil
}

func (m *memFile) Size() (int64, error) {
	return int64(len(m.buf)), nil
}
