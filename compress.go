package lz5

// Compress compresses src into an LZ5 stream ending with Terminator. Options nil means DefaultCompressOptions().
// Every input, including an empty one, has an encoding, so Compress cannot fail.
func Compress(src []byte, opts *CompressOptions) []byte {
	if opts == nil {
		opts = DefaultCompressOptions()
	}

	minGain := opts.MinGain
	if minGain < 1 {
		minGain = 1
	}

	limit := opts.SearchLimit
	if limit < 0 {
		limit = 0
	}
	if limit > MaxAbsoluteOffset+1 {
		limit = MaxAbsoluteOffset + 1
	}

	// Pre-allocate: worst case is all literals in MaxLength chunks with two-byte headers, plus terminator.
	out := make([]byte, 0, len(src)+2*(len(src)/MaxLength+1)+1)
	finder := newMatchFinder(src, limit, opts.Inverted)

	// Bytes src[litStart:i] are waiting to be emitted as direct copies.
	litStart := 0
	flush := func(end int) {
		for litStart < end {
			n := min(end-litStart, MaxLength)
			out = Instruction{Kind: KindCopy, Length: n, Data: src[litStart : litStart+n]}.appendTo(out)
			litStart += n
		}
	}

	i := 0
	for i < len(src) {
		best, ok := bestInstruction(src, i, finder)
		if ok && best.Length >= best.Size()+minGain {
			flush(i)
			out = best.appendTo(out)
			i += best.Length
			litStart = i

			continue
		}

		i++
		if i-litStart == MaxLength {
			flush(i)
		}
	}

	flush(len(src))

	return append(out, Terminator)
}

// bestInstruction picks the candidate starting at src[i] with the most output per encoded byte.
// Candidates are listed in order of preference, which settles remaining ties.
func bestInstruction(src []byte, i int, finder *matchFinder) (Instruction, bool) {
	var candidates [7]Instruction
	candidates[1] = byteFill(src, i)
	candidates[2] = increasingFill(src, i)
	candidates[3] = wordFill(src, i)

	// A fill at full length is already as long as any repeat could be;
	// skipping the search keeps long runs from degrading into quadratic scans.
	if candidates[1].Length < MaxLength && candidates[2].Length < MaxLength && candidates[3].Length < MaxLength {
		candidates[0], candidates[5] = finder.relative(i)
		candidates[4], candidates[6] = finder.absolute(i)
	}

	var best Instruction
	found := false
	for _, c := range candidates {
		if c.Length == 0 {
			continue
		}
		if !found || better(c, best) {
			best = c
			found = true
		}
	}

	return best, found
}

// better reports whether a yields strictly more output per encoded byte than b,
// or the same ratio with fewer payload bytes.
func better(a, b Instruction) bool {
	lhs, rhs := a.Length*b.Size(), b.Length*a.Size()
	if lhs != rhs {
		return lhs > rhs
	}

	return a.payloadSize() < b.payloadSize()
}

// byteFill measures the run of src[i] repeated.
func byteFill(src []byte, i int) Instruction {
	n := 1
	for i+n < len(src) && n < MaxLength && src[i+n] == src[i] {
		n++
	}

	return Instruction{Kind: KindByteFill, Length: n, Value: [2]byte{src[i]}}
}

// increasingFill measures the run src[i], src[i]+1, ... modulo 256.
func increasingFill(src []byte, i int) Instruction {
	n := 1
	for i+n < len(src) && n < MaxLength && src[i+n] == src[i]+byte(n) {
		n++
	}

	return Instruction{Kind: KindIncreasingFill, Length: n, Value: [2]byte{src[i]}}
}

// wordFill measures the run alternating src[i] and src[i+1]; the run may end on half a pair.
func wordFill(src []byte, i int) Instruction {
	if i+1 >= len(src) {
		return Instruction{}
	}

	n := 2
	for i+n < len(src) && n < MaxLength && src[i+n] == src[i+(n&1)] {
		n++
	}

	return Instruction{Kind: KindWordFill, Length: n, Value: [2]byte{src[i], src[i+1]}}
}
