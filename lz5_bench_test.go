package lz5

import (
	"bytes"
	"fmt"
	"testing"
)

// tileBank builds 8x8 4bpp tiles the way SNES graphics banks look:
// blank tiles, solid planes, gradients and mirrored copies of earlier tiles.
func tileBank(tiles int) []byte {
	out := make([]byte, 0, tiles*32)
	seed := uint32(0x5EED)
	for t := 0; t < tiles; t++ {
		seed = seed*1103515245 + 12345
		switch t % 6 {
		case 0:
			out = append(out, make([]byte, 32)...)
		case 1:
			out = append(out, bytes.Repeat([]byte{0xFF, 0x00}, 16)...)
		case 2:
			for i := 0; i < 32; i++ {
				out = append(out, byte(seed>>16)+byte(i))
			}
		case 3:
			for i := 0; i < 32; i++ {
				seed = seed*1103515245 + 12345
				out = append(out, byte(seed>>16))
			}
		case 4:
			prev := out[len(out)-32:]
			for _, b := range prev {
				out = append(out, ^b)
			}
		default:
			back := int(seed>>8) % (len(out) / 32)
			out = append(out, out[back*32:back*32+32]...)
		}
	}

	return out
}

// levelMap is a tilemap of 16-bit entries with long runs and repeated rows.
func levelMap(rows int) []byte {
	const width = 64
	out := make([]byte, 0, rows*width*2)
	for r := 0; r < rows; r++ {
		if r > 0 && r%4 != 0 {
			out = append(out, out[len(out)-width*2:]...)
			continue
		}
		for c := 0; c < width; c++ {
			tile := uint16(0x0100 + (c/8+r)%16)
			out = append(out, byte(tile), byte(tile>>8))
		}
	}

	return out
}

var benchInputs = map[string][]byte{
	"tiles": tileBank(2048),
	"map":   levelMap(256),
	"noisy": noisySeq(64 << 10),
}

func BenchmarkCompress(b *testing.B) {
	for name, data := range benchInputs {
		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = Compress(data, nil)
			}
		})
	}
}

func BenchmarkCompressSearchLimit(b *testing.B) {
	data := benchInputs["tiles"]
	for _, limit := range []int{0, MaxRelativeDistance, 4096, MaxAbsoluteOffset + 1} {
		opts := &CompressOptions{SearchLimit: limit, MinGain: 1, Inverted: true}
		b.Run(fmt.Sprintf("limit=%d", limit), func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = Compress(data, opts)
			}
		})
	}
}

func BenchmarkDecompress(b *testing.B) {
	for name, data := range benchInputs {
		enc := Compress(data, nil)
		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(data)))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, err := Decompress(enc, nil); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
