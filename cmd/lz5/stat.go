package main

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/zeebo/blake3"

	"github.com/woozymasta/lz5"
)

// codecResult is one row of the stat table.
type codecResult struct {
	name string
	size int // 0 when the codec reports the input as incompressible.
}

// runStat compresses the input with LZ5, verifies the round trip by BLAKE3
// digest, and prints the LZ5 size next to LZ4 block and zstd for reference.
func runStat(logger *slog.Logger, w io.Writer, inPath string) error {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	encoded := lz5.Compress(data, nil)
	decoded, err := lz5.Decompress(encoded, nil)
	if err != nil {
		return fmt.Errorf("lz5 round trip: %w", err)
	}

	inputDigest := blake3.Sum256(data)
	decodedDigest := blake3.Sum256(decoded)
	if inputDigest != decodedDigest {
		return fmt.Errorf("lz5 round trip: digest mismatch %s != %s",
			hex.EncodeToString(inputDigest[:]), hex.EncodeToString(decodedDigest[:]))
	}
	logger.Debug("round trip verified", "input", inPath, "blake3", hex.EncodeToString(inputDigest[:]))

	results := []codecResult{{name: "lz5", size: len(encoded)}}

	lz4Bytes, err := lz4BlockSize(data)
	if err != nil {
		return err
	}
	results = append(results, codecResult{name: "lz4", size: lz4Bytes})

	zstdBytes, err := zstdSize(data)
	if err != nil {
		return err
	}
	results = append(results, codecResult{name: "zstd", size: zstdBytes})

	fmt.Fprintf(w, "input   %d bytes  blake3 %s\n", len(data), hex.EncodeToString(inputDigest[:]))
	for _, result := range results {
		if result.size == 0 {
			fmt.Fprintf(w, "%-6s  incompressible\n", result.name)
			continue
		}
		fmt.Fprintf(w, "%-6s  %d bytes  ratio %.3f\n", result.name, result.size, ratio(len(data), result.size))
	}

	return nil
}

// lz4BlockSize returns the LZ4 block-compressed size of data, or 0 if LZ4
// cannot make it smaller.
func lz4BlockSize(data []byte) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}

	destination := make([]byte, lz4.CompressBlockBound(len(data)))
	written, err := lz4.CompressBlock(data, destination, nil)
	if err != nil {
		return 0, fmt.Errorf("lz4 compress: %w", err)
	}

	return written, nil
}

// zstdSize returns the zstd-compressed size of data at the default level.
func zstdSize(data []byte) (int, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return 0, fmt.Errorf("zstd encoder: %w", err)
	}
	defer encoder.Close()

	compressed := encoder.EncodeAll(data, nil)

	// Sanity-check the frame so a ratio is never reported for broken output.
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return 0, fmt.Errorf("zstd decoder: %w", err)
	}
	defer decoder.Close()

	restored, err := decoder.DecodeAll(compressed, nil)
	if err != nil {
		return 0, fmt.Errorf("zstd decompress: %w", err)
	}
	if !bytes.Equal(restored, data) {
		return 0, errors.New("zstd round trip mismatch")
	}

	return len(compressed), nil
}

func ratio(original, compressed int) float64 {
	if compressed == 0 {
		return 0
	}

	return float64(original) / float64(compressed)
}
