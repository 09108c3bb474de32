package block

import (
	"fmt"
	"os"
	"sync/atomic"

	mmap "github.com/edsrzf/mmap-go"
)

// Mapping is a read-only memory mapping of a complete file.
//
// A mapping is shared by all Mapped blocks cut from it. It carries one
// reference for the opener and one for every block with live views.
type Mapping struct {
	path   string
	region mmap.MMap
	refs   atomic.Int32
	closed atomic.Bool
	err    error
}

// Path returns the name of the mapped file.
func (m *Mapping) Path() string {
	return m.path
}

// Len returns the size of the mapping in bytes.
func (m *Mapping) Len() int {
	return len(m.region)
}

// Refs returns the current reference count.
func (m *Mapping) Refs() int {
	return int(m.refs.Load())
}

// IsClosed reports whether the mapping has been unmapped.
func (m *Mapping) IsClosed() bool {
	return m.closed.Load()
}

// Err returns the error of the unmap call, if any.
func (m *Mapping) Err() error {
	return m.err
}

// Retain adds a reference to the mapping.
func (m *Mapping) Retain() {
	if m == nil {
		return
	}
	assert(!m.IsClosed(), "retain on unmapped file mapping")
	m.refs.Add(1)
}

// Release drops a reference and unmaps the file when none are left.
func (m *Mapping) Release() {
	if m == nil {
		return
	}
	n := m.refs.Add(-1)
	assert(n >= 0, "file mapping released more often than retained")
	if n > 0 {
		return
	}
	if m.closed.CompareAndSwap(false, true) {
		if err := m.region.Unmap(); err != nil {
			m.err = err
			tracer().Errorf("unmap %s: %v", m.path, err)
			return
		}
		tracer().Debugf("unmapped %s (%d bytes)", m.path, len(m.region))
	}
}

// MapFile maps a file read-only and cuts it into Mapped blocks of chunkSize
// bytes (the last block may be shorter). Block boundaries are at multiples of
// chunkSize, i.e., block k starts at file offset k*chunkSize.
//
// The returned mapping holds one reference owned by the caller, who has to
// call Release after the blocks have been wired into a rope. Empty files
// yield a nil mapping and no blocks.
func MapFile(path string, chunkSize int) (*Mapping, []*Block, error) {
	if chunkSize <= 0 {
		return nil, nil, fmt.Errorf("%w: chunk size %d", ErrInvalidSize, chunkSize)
	}
	fi, err := os.Stat(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrMapping, err)
	} else if !fi.Mode().IsRegular() {
		return nil, nil, fmt.Errorf("%w: %s is not a regular file", ErrMapping, path)
	}
	if fi.Size() == 0 {
		tracer().Debugf("file %s is empty, nothing to map", path)
		return nil, nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrMapping, err)
	}
	defer f.Close() // the mapping stays valid after closing the file
	region, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		tracer().Errorf("cannot map %s: %v", path, err)
		return nil, nil, fmt.Errorf("%w: %w", ErrMapping, err)
	}
	m := &Mapping{path: path, region: region}
	m.refs.Store(1)
	size := len(region)
	blocks := make([]*Block, 0, (size+chunkSize-1)/chunkSize)
	for start := 0; start < size; start += chunkSize {
		end := min(start+chunkSize, size)
		blocks = append(blocks, &Block{
			kind:    Mapped,
			data:    region[start:end:end],
			mapping: m,
			offset:  int64(start),
		})
	}
	tracer().Debugf("mapped %s: %d bytes in %d blocks", path, size, len(blocks))
	return m, blocks, nil
}
