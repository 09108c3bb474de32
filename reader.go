package rope

import "io"

// Reader returns a reader for the bytes of the rope.
func (r *Rope) Reader() io.Reader {
	return &ropeReader{cursor: r.Cursor()}
}

type ropeReader struct {
	cursor *Cursor
	rest   []byte
}

func (rr *ropeReader) Read(p []byte) (n int, err error) {
	for n < len(p) {
		if len(rr.rest) == 0 {
			chunk, ok := rr.cursor.Next(0)
			if !ok {
				break
			}
			rr.rest = chunk
		}
		k := copy(p[n:], rr.rest)
		rr.rest = rr.rest[k:]
		n += k
	}
	if n == 0 && len(p) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

// ReadAt implements io.ReaderAt. Syntax highlighters and similar clients use it
// to fetch byte ranges of the rope.
func (r *Rope) ReadAt(p []byte, off int64) (n int, err error) {
	if err := r.check(); err != nil {
		return 0, err
	}
	if off < 0 {
		return 0, ErrIllegalArguments
	}
	if uint64(off) >= r.root.length {
		if len(p) == 0 && uint64(off) == r.root.length {
			return 0, nil
		}
		return 0, io.EOF
	}
	c, err := r.CursorAt(uint64(off))
	if err != nil {
		return 0, err
	}
	for n < len(p) {
		chunk, ok := c.Next(len(p) - n)
		if !ok {
			return n, io.EOF
		}
		n += copy(p[n:], chunk)
	}
	return n, nil
}
