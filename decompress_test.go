package lz5

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestDecompressBlockConsumed(t *testing.T) {
	first := Compress([]byte("first blob first blob"), nil)
	second := Compress(bytes.Repeat([]byte{3}, 100), nil)
	packed := append(append([]byte{}, first...), second...)

	out, consumed, err := DecompressBlock(packed, nil)
	if err != nil {
		t.Fatal(err)
	}
	if consumed != len(first) {
		t.Fatalf("consumed %d, want %d", consumed, len(first))
	}
	if string(out) != "first blob first blob" {
		t.Fatalf("got %q", out)
	}

	out, consumed, err = DecompressBlock(packed[consumed:], nil)
	if err != nil {
		t.Fatal(err)
	}
	if consumed != len(second) || !bytes.Equal(out, bytes.Repeat([]byte{3}, 100)) {
		t.Fatalf("second blob: consumed=%d len=%d", consumed, len(out))
	}
}

func TestDecompressFromReaderStopsAtTerminator(t *testing.T) {
	input := mixedInput()
	enc := Compress(input, nil)
	tail := []byte("TAIL")
	rom := append(append([]byte("HEADER"), enc...), tail...)

	// io.SectionReader has no ReadByte, so this goes through the one-byte adapter.
	section := io.NewSectionReader(bytes.NewReader(rom), 6, int64(len(rom)-6))
	out, consumed, err := DecompressFromReader(section, nil)
	if err != nil {
		t.Fatal(err)
	}
	if consumed != int64(len(enc)) {
		t.Fatalf("consumed %d, want %d", consumed, len(enc))
	}
	if !bytes.Equal(out, input) {
		t.Fatalf("output mismatch: got %d bytes, want %d", len(out), len(input))
	}

	rest, err := io.ReadAll(section)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(rest, tail) {
		t.Fatalf("reader left at %q, want %q", rest, tail)
	}
}

func TestDecompressFromByteReader(t *testing.T) {
	enc := Compress([]byte{1, 2, 3, 4, 1, 2, 3, 4}, nil)
	out, consumed, err := DecompressFromReader(bytes.NewReader(enc), nil)
	if err != nil {
		t.Fatal(err)
	}
	if consumed != int64(len(enc)) || !bytes.Equal(out, []byte{1, 2, 3, 4, 1, 2, 3, 4}) {
		t.Fatalf("consumed=%d out=% x", consumed, out)
	}
}

func TestDecompressFromReaderErrors(t *testing.T) {
	if _, _, err := DecompressFromReader(nil, nil); !errors.Is(err, ErrNilReader) {
		t.Fatalf("want ErrNilReader, got %v", err)
	}

	_, consumed, err := DecompressFromReader(bytes.NewReader([]byte{0x03, 1, 2}), nil)
	if !errors.Is(err, ErrTruncated) {
		t.Fatalf("want ErrTruncated, got %v", err)
	}
	if consumed != 3 {
		t.Fatalf("consumed %d, want 3", consumed)
	}

	readErr := errors.New("device unplugged")
	_, consumed, err = DecompressFromReader(io.MultiReader(bytes.NewReader([]byte{0x03, 1}), &failingReader{err: readErr}), nil)
	if !errors.Is(err, readErr) {
		t.Fatalf("want wrapped read error, got %v", err)
	}
	if consumed != 2 || !strings.Contains(err.Error(), "at byte 2") {
		t.Fatalf("consumed=%d err=%v, want failure reported at byte 2", consumed, err)
	}
}

type failingReader struct {
	err error
}

func (r *failingReader) Read([]byte) (int, error) {
	return 0, r.err
}
