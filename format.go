package lz5

// LZ5 format constants.
const (
	Terminator = 0xFF // Ends a compressed stream; never a valid instruction header.

	MaxShortLength = 32   // Longest instruction expressible with a one-byte header.
	MaxLength      = 1024 // Longest instruction expressible with the two-byte extended header.

	// Kind 7 exists only in extended form, and its header with the top length
	// bits set would collide with Terminator, so its length stops at 0x300.
	MaxInvertedRelativeLength = 0x300

	MaxRelativeDistance = 255    // Largest backward distance of a relative repeat.
	MaxAbsoluteOffset   = 0xFFFF // Largest source position of an absolute repeat.

	extendedMarker = 0xE0 // Top three header bits set: kind and length follow in extended layout.
)
