package lz5

import (
	"bytes"
	"errors"
	"fmt"
	"io"
)

// streamReader hands the instruction decoder one stream byte at a time.
// off is the number of stream bytes taken so far, which after the
// terminator is the length of the stream.
type streamReader struct {
	src io.ByteReader
	off int64
}

func newSliceStream(src []byte) *streamReader {
	return &streamReader{src: bytes.NewReader(src)}
}

// newStream wraps r. Readers without ReadByte are read through unbuffered,
// so nothing past the terminator is pulled out of r.
func newStream(r io.Reader) *streamReader {
	if br, ok := r.(io.ByteReader); ok {
		return &streamReader{src: br}
	}

	return &streamReader{src: &unbuffered{r: r}}
}

// next returns the next byte. Running out of input before the terminator
// is ErrTruncated; other read failures are wrapped.
func (s *streamReader) next() (byte, error) {
	b, err := s.src.ReadByte()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, ErrTruncated
		}

		return 0, fmt.Errorf("read compressed stream at byte %d: %w", s.off, err)
	}
	s.off++

	return b, nil
}

// unbuffered reads a plain io.Reader one byte per Read call.
type unbuffered struct {
	r   io.Reader
	one [1]byte
}

func (u *unbuffered) ReadByte() (byte, error) {
	if _, err := io.ReadFull(u.r, u.one[:]); err != nil {
		return 0, err
	}

	return u.one[0], nil
}
