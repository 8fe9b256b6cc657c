package lz5

import "fmt"

// Kind selects what an instruction appends to the output.
type Kind uint8

// Instruction kinds, as stored in the header byte.
const (
	KindCopy             Kind = iota // Literal bytes follow the header.
	KindByteFill                     // One byte repeated Length times.
	KindWordFill                     // Two bytes alternated for Length bytes.
	KindIncreasingFill               // Start byte counting up modulo 256.
	KindAbsolute                     // Repeat from a 16-bit output position.
	KindInvertedAbsolute             // As KindAbsolute, each byte XOR 0xFF.
	KindRelative                     // Repeat from Offset bytes behind the cursor.
	KindInvertedRelative             // As KindRelative, each byte XOR 0xFF. Extended form only.
)

// String returns the human-readable name of a kind.
func (k Kind) String() string {
	switch k {
	case KindCopy:
		return "copy"
	case KindByteFill:
		return "byte_fill"
	case KindWordFill:
		return "word_fill"
	case KindIncreasingFill:
		return "increasing_fill"
	case KindAbsolute:
		return "absolute"
	case KindInvertedAbsolute:
		return "inverted_absolute"
	case KindRelative:
		return "relative"
	case KindInvertedRelative:
		return "inverted_relative"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// Instruction is one decoded command of an LZ5 stream.
type Instruction struct {
	Kind   Kind
	Length int     // Output bytes produced, 1..MaxLength.
	Value  [2]byte // Fill byte (Value[0]), fill pair, or increasing start byte.
	Offset int     // Source position (absolute kinds) or backward distance (relative kinds).
	Data   []byte  // Literal bytes (KindCopy only).
}

// extended reports whether the instruction needs the two-byte header.
func (in Instruction) extended() bool {
	return in.Length > MaxShortLength || in.Kind == KindInvertedRelative
}

// payloadSize returns the number of bytes following the header.
func (in Instruction) payloadSize() int {
	switch in.Kind {
	case KindCopy:
		return in.Length
	case KindWordFill, KindAbsolute, KindInvertedAbsolute:
		return 2
	default:
		return 1
	}
}

// Size returns the encoded size of the instruction in bytes (header plus payload).
func (in Instruction) Size() int {
	if in.extended() {
		return 2 + in.payloadSize()
	}

	return 1 + in.payloadSize()
}

// String formats the instruction for disassembly listings.
func (in Instruction) String() string {
	switch in.Kind {
	case KindCopy:
		return fmt.Sprintf("%s len=%d", in.Kind, in.Length)
	case KindByteFill, KindIncreasingFill:
		return fmt.Sprintf("%s len=%d value=0x%02x", in.Kind, in.Length, in.Value[0])
	case KindWordFill:
		return fmt.Sprintf("%s len=%d value=0x%02x%02x", in.Kind, in.Length, in.Value[0], in.Value[1])
	case KindAbsolute, KindInvertedAbsolute:
		return fmt.Sprintf("%s len=%d pos=0x%04x", in.Kind, in.Length, in.Offset)
	default:
		return fmt.Sprintf("%s len=%d dist=%d", in.Kind, in.Length, in.Offset)
	}
}

// appendTo appends the encoded instruction to dst.
// The instruction must be valid: the encoder only builds instructions within the length and offset limits.
func (in Instruction) appendTo(dst []byte) []byte {
	n := in.Length - 1
	if in.extended() {
		dst = append(dst, extendedMarker|byte(in.Kind)<<2|byte(n>>8), byte(n))
	} else {
		dst = append(dst, byte(in.Kind)<<5|byte(n))
	}

	switch in.Kind {
	case KindCopy:
		dst = append(dst, in.Data...)
	case KindByteFill, KindIncreasingFill:
		dst = append(dst, in.Value[0])
	case KindWordFill:
		dst = append(dst, in.Value[0], in.Value[1])
	case KindAbsolute, KindInvertedAbsolute:
		dst = append(dst, byte(in.Offset), byte(in.Offset>>8))
	case KindRelative, KindInvertedRelative:
		dst = append(dst, byte(in.Offset))
	}

	return dst
}

// apply appends the bytes produced by the instruction to out.
// Repeats copy one byte at a time so a source range overlapping the bytes
// being written yields a periodic run.
func (in Instruction) apply(out []byte) ([]byte, error) {
	switch in.Kind {
	case KindCopy:
		return append(out, in.Data...), nil

	case KindByteFill:
		for k := 0; k < in.Length; k++ {
			out = append(out, in.Value[0])
		}

		return out, nil

	case KindWordFill:
		for k := 0; k < in.Length; k++ {
			out = append(out, in.Value[k&1])
		}

		return out, nil

	case KindIncreasingFill:
		for k := 0; k < in.Length; k++ {
			out = append(out, in.Value[0]+byte(k))
		}

		return out, nil
	}

	var start int
	switch in.Kind {
	case KindAbsolute, KindInvertedAbsolute:
		start = in.Offset
	default:
		start = len(out) - in.Offset
	}
	if start < 0 || start >= len(out) {
		return nil, fmt.Errorf("%w: %s at output position %d", ErrInvalidOffset, in, len(out))
	}

	var mask byte
	if in.Kind == KindInvertedAbsolute || in.Kind == KindInvertedRelative {
		mask = 0xFF
	}

	for k := 0; k < in.Length; k++ {
		out = append(out, out[start+k]^mask)
	}

	return out, nil
}

// readInstruction reads the next instruction from r.
// It returns done=true, and no instruction, when it reads the terminator.
func readInstruction(r *streamReader) (in Instruction, done bool, err error) {
	header, err := r.next()
	if err != nil {
		return in, false, err
	}
	if header == Terminator {
		return in, true, nil
	}

	kind := Kind(header >> 5)
	n := int(header & 0x1F)
	if header&extendedMarker == extendedMarker {
		kind = Kind(n >> 2)
		lo, err := r.next()
		if err != nil {
			return in, false, err
		}
		n = (n&0x3)<<8 | int(lo)
	}

	in.Kind = kind
	in.Length = n + 1

	switch kind {
	case KindCopy:
		in.Data = make([]byte, in.Length)
		for k := range in.Data {
			if in.Data[k], err = r.next(); err != nil {
				return in, false, err
			}
		}

	case KindByteFill, KindIncreasingFill:
		in.Value[0], err = r.next()

	case KindWordFill:
		if in.Value[0], err = r.next(); err == nil {
			in.Value[1], err = r.next()
		}

	case KindAbsolute, KindInvertedAbsolute:
		var lo, hi byte
		if lo, err = r.next(); err == nil {
			hi, err = r.next()
		}
		in.Offset = int(lo) | int(hi)<<8

	case KindRelative, KindInvertedRelative:
		var dist byte
		dist, err = r.next()
		in.Offset = int(dist)
	}

	return in, false, err
}

// Parse disassembles the LZ5 stream at the beginning of src.
// It returns the instructions in stream order and the number of bytes
// consumed, terminator included. Offsets are not checked against the output;
// use Decompress for that.
func Parse(src []byte) ([]Instruction, int, error) {
	stream := newSliceStream(src)
	var list []Instruction
	for {
		in, done, err := readInstruction(stream)
		if err != nil {
			return nil, int(stream.off), err
		}
		if done {
			return list, int(stream.off), nil
		}
		list = append(list, in)
	}
}
