package lz5

// Options configures Decompress, DecompressBlock and DecompressFromReader.
type Options struct {
	// MaxOutputLen caps the decoded size; 0 means no limit.
	// Decoding fails with ErrOutputTooLarge before an instruction would cross it.
	MaxOutputLen int
}

// DefaultOptions returns options for default behavior: no output limit.
func DefaultOptions() *Options {
	return &Options{}
}

// CompressOptions configures Compress.
type CompressOptions struct {
	// SearchLimit is the max backward distance searched for repeats.
	// 0 = fills and literals only; values above 65536 have no further effect.
	SearchLimit int
	// MinGain is how many bytes an instruction must save over copying the same
	// bytes directly before it is used. Values below 1 are treated as 1.
	MinGain int
	// Inverted enables the XOR 0xFF repeat kinds.
	Inverted bool
}

// DefaultCompressOptions returns options for default compression (full 64 KiB search, inverted repeats on).
func DefaultCompressOptions() *CompressOptions {
	return &CompressOptions{
		SearchLimit: MaxAbsoluteOffset + 1,
		MinGain:     1,
		Inverted:    true,
	}
}
