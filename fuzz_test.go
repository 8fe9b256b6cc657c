package lz5

import (
	"bytes"
	"testing"
)

func FuzzRoundTrip(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{1, 2, 3, 4, 1, 2, 3, 4})
	f.Add([]byte{1, 2, 3, 4, 0xFE, 0xFD, 0xFC, 0xFB, 1, 2, 3, 4})
	f.Add(bytes.Repeat([]byte{0xFF}, 40))
	f.Add(mixedInput())

	f.Fuzz(func(t *testing.T, data []byte) {
		for _, opts := range []*CompressOptions{nil, {SearchLimit: 16, MinGain: 2, Inverted: true}} {
			enc := Compress(data, opts)
			dec, err := Decompress(enc, nil)
			if err != nil {
				t.Fatalf("decompress: %v", err)
			}
			if !bytes.Equal(data, dec) {
				t.Fatalf("round trip mismatch: in=%x dec=%x", data, dec)
			}
		}
	})
}

func FuzzDecompress(f *testing.F) {
	f.Add([]byte{0xFF})
	f.Add([]byte{0x02, 1, 2, 3, 0xFB, 0xFE, 0x03, 0xFF})
	f.Add([]byte{0x02, 1, 2, 3, 0xA5, 0x00, 0x00, 0xFF})
	f.Add([]byte{0xC0, 0x01, 0xFF})
	f.Add([]byte{0xE4})

	f.Fuzz(func(t *testing.T, src []byte) {
		out, consumed, err := DecompressBlock(src, &Options{MaxOutputLen: 1 << 20})
		if err != nil {
			if out != nil {
				t.Fatalf("failed decode returned output")
			}
			return
		}
		if consumed < 1 || consumed > len(src) || src[consumed-1] != Terminator {
			t.Fatalf("consumed %d of %d bytes without ending on terminator", consumed, len(src))
		}

		// Anything that decodes must survive a round trip through the encoder.
		dec, err := Decompress(Compress(out, nil), nil)
		if err != nil || !bytes.Equal(dec, out) {
			t.Fatalf("re-encode round trip failed: %v", err)
		}
	})
}
