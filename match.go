package lz5

// maxChainDepth bounds how many earlier positions with the same 3-byte prefix
// are compared when searching absolute repeats.
const maxChainDepth = 4096

// matchFinder searches the already encoded prefix of src for repeats.
// Relative distances are scanned exhaustively; absolute positions are reached
// through hash chains keyed by the 3 bytes starting at each position.
type matchFinder struct {
	src      []byte
	limit    int  // Max backward distance searched; 0 disables repeats.
	inverted bool // Also look for XOR 0xFF repeats.

	head map[uint32]int32 // Most recent indexed position per prefix.
	prev []int32          // Previous position with the same prefix, -1 at chain end.
	next int              // Positions below next are indexed.
}

func newMatchFinder(src []byte, limit int, inverted bool) *matchFinder {
	f := &matchFinder{
		src:      src,
		limit:    limit,
		inverted: inverted,
	}
	if limit > 0 {
		f.head = make(map[uint32]int32)
		f.prev = make([]int32, min(len(src), MaxAbsoluteOffset+1))
	}

	return f
}

// prefixKey packs the 3 bytes at src[i] into a chain key.
func prefixKey(src []byte, i int) uint32 {
	return uint32(src[i])<<16 | uint32(src[i+1])<<8 | uint32(src[i+2])
}

// index adds every addressable position below i to the hash chains.
func (f *matchFinder) index(i int) {
	for ; f.next < i && f.next <= MaxAbsoluteOffset; f.next++ {
		if f.next+3 > len(f.src) {
			f.prev[f.next] = -1
			continue
		}

		key := prefixKey(f.src, f.next)
		if p, ok := f.head[key]; ok {
			f.prev[f.next] = p
		} else {
			f.prev[f.next] = -1
		}
		f.head[key] = int32(f.next) // #nosec G115 -- bounded by MaxAbsoluteOffset
	}
}

// matchLen counts how many bytes from src[i] equal src[j] XOR mask, up to limit.
// j < i, so the compared source may run into the bytes being matched, exactly as
// the decoder's overlapping copy reads them.
func (f *matchFinder) matchLen(i, j int, mask byte, limit int) int {
	n := 0
	for i+n < len(f.src) && n < limit && f.src[j+n]^mask == f.src[i+n] {
		n++
	}

	return n
}

// relative returns the longest plain and inverted repeats within MaxRelativeDistance of i.
// Ties keep the nearest distance. A zero Length means no match.
func (f *matchFinder) relative(i int) (plain, inverted Instruction) {
	maxDist := min(i, MaxRelativeDistance, f.limit)
	for dist := 1; dist <= maxDist; dist++ {
		j := i - dist
		if n := f.matchLen(i, j, 0, MaxLength); n > plain.Length {
			plain = Instruction{Kind: KindRelative, Length: n, Offset: dist}
		}
		if f.inverted {
			if n := f.matchLen(i, j, 0xFF, MaxInvertedRelativeLength); n > inverted.Length {
				inverted = Instruction{Kind: KindInvertedRelative, Length: n, Offset: dist}
			}
		}
		if plain.Length == MaxLength && (!f.inverted || inverted.Length == MaxInvertedRelativeLength) {
			break
		}
	}

	return plain, inverted
}

// absolute returns the longest plain and inverted repeats from positions
// 0..MaxAbsoluteOffset that lie within the search limit of i.
func (f *matchFinder) absolute(i int) (plain, inverted Instruction) {
	if f.limit == 0 || i+3 > len(f.src) {
		return plain, inverted
	}

	f.index(i)
	lo := max(0, i-f.limit)
	key := prefixKey(f.src, i)

	if pos, n := f.longest(i, key, 0, lo); n > 0 {
		plain = Instruction{Kind: KindAbsolute, Length: n, Offset: pos}
	}
	if f.inverted {
		if pos, n := f.longest(i, key^0xFFFFFF, 0xFF, lo); n > 0 {
			inverted = Instruction{Kind: KindInvertedAbsolute, Length: n, Offset: pos}
		}
	}

	return plain, inverted
}

// longest walks the chain for key from the most recent position down to lo.
func (f *matchFinder) longest(i int, key uint32, mask byte, lo int) (pos, n int) {
	p, ok := f.head[key]
	if !ok {
		return 0, 0
	}

	for depth := 0; p >= 0 && int(p) >= lo && depth < maxChainDepth; depth++ {
		if l := f.matchLen(i, int(p), mask, MaxLength); l > n {
			pos, n = int(p), l
			if n == MaxLength {
				break
			}
		}
		p = f.prev[p]
	}

	return pos, n
}
