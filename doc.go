/*
Package lz5 implements the LZ5 command-tagged compression format used by Super Metroid and related SNES titles.

Format: a sequence of instructions terminated by a single 0xFF byte; no header, no length prefix, no checksum.
Header byte: kind<<5 | (length-1) for kinds 0..6 and lengths 1..32.
Extended header: 0xE0 | kind<<2 | (length-1)>>8, then the low 8 bits of length-1, for lengths up to 1024 and for kind 7.
Kinds: 0 copy literal bytes, 1 byte fill, 2 word fill, 3 increasing fill,
4 repeat from absolute 16-bit LE position, 5 same with each byte XOR 0xFF,
6 repeat from 8-bit backward distance, 7 same with each byte XOR 0xFF (extended only, length <= 0x300).
Repeats copy one byte at a time, so a distance shorter than the length produces a periodic run.

Use Compress(src, opts) with nil for default options; it never fails.
Use Decompress(src, opts) to decode the stream at the start of src.
Use DecompressBlock(src, opts) to also get the number of consumed bytes.
Use DecompressFromReader(r, opts) to decode one stream from r without reading past its terminator.
Use Parse(src) to list the instructions of a stream.

# Examples

Round-trip compress and decompress:

	enc := lz5.Compress(data, nil)
	dec, err := lz5.Decompress(enc, nil)
	if err != nil {
		return err
	}
	// dec equals data

Decompress a blob stored at a known offset inside a ROM image:

	section := io.NewSectionReader(rom, 0x1A8000, rom.Size()-0x1A8000)
	out, consumed, err := lz5.DecompressFromReader(section, nil)
	if err != nil {
		return err
	}
	_ = consumed

Decompress untrusted data with a size cap:

	out, err := lz5.Decompress(src, &lz5.Options{MaxOutputLen: 0x10000})
	if errors.Is(err, lz5.ErrOutputTooLarge) {
		// reject
	}

Compress for faster decoding, trading size for fewer, longer instructions:

	enc := lz5.Compress(data, &lz5.CompressOptions{SearchLimit: 0x10000, MinGain: 3})
*/
package lz5
