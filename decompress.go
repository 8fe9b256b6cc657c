package lz5

import (
	"fmt"
	"io"
)

// Decompress decodes the LZ5 stream at the beginning of src.
// Decoding stops at the terminator; bytes after it are ignored.
// Options nil means DefaultOptions (no output limit).
func Decompress(src []byte, opts *Options) ([]byte, error) {
	out, _, err := DecompressBlock(src, opts)
	if err != nil {
		return nil, err
	}

	return out, nil
}

// DecompressBlock decodes one LZ5 stream from the beginning of src.
// It returns decompressed bytes and the number of consumed bytes (terminator included),
// which is where the next blob of a packed container would begin.
func DecompressBlock(src []byte, opts *Options) ([]byte, int, error) {
	stream := newSliceStream(src)
	out, err := decodeStream(stream, opts)

	return out, int(stream.off), err
}

// DecompressFromReader decodes one LZ5 stream from r and returns consumed bytes.
// Reading stops exactly after the terminator. If r is not an io.ByteReader it is
// read one byte at a time, so r is never advanced past the end of the stream.
func DecompressFromReader(r io.Reader, opts *Options) ([]byte, int64, error) {
	if r == nil {
		return nil, 0, ErrNilReader
	}

	stream := newStream(r)
	out, err := decodeStream(stream, opts)

	return out, stream.off, err
}

// decodeStream applies instructions from r until the terminator.
// On failure it returns nil output.
func decodeStream(r *streamReader, opts *Options) ([]byte, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	var out []byte
	for {
		in, done, err := readInstruction(r)
		if err != nil {
			return nil, err
		}
		if done {
			break
		}

		if opts.MaxOutputLen > 0 && len(out)+in.Length > opts.MaxOutputLen {
			return nil, fmt.Errorf("%w: %d bytes", ErrOutputTooLarge, opts.MaxOutputLen)
		}

		out, err = in.apply(out)
		if err != nil {
			return nil, err
		}
	}

	// A stream holding only the terminator decodes to an empty, non-nil slice.
	if out == nil {
		out = []byte{}
	}

	return out, nil
}
