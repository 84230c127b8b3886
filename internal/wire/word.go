// Package wire packs topological states into their 16-bit big-endian wire
// form.
package wire

import (
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/jakobmina/smopsys-sv/topo"
)

// Word is one topological state packed into 16 bits.
//
// Layout, most significant bit first:
//
//	bits 15-13  index (0-6; 7 reserved, invalid)
//	bits 12-11  ternary weight, biased: 0 -> -1, 1 -> 0, 2 -> +1
//	bits 10-9   decay tag, redundant with the weight, consistency check
//	bits 8-0    reserved, zero on the wire
type Word uint16

// WordLen is the encoded size of one Word in bytes.
const WordLen = 2

// MalformedError reports a wire word that cannot represent a valid state.
// WordIndex is the position of the offending word within its packet.
type MalformedError struct {
	WordIndex int
	Word      Word
	Reason    string
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("wire: malformed word %d (0x%04X): %s", e.WordIndex, uint16(e.Word), e.Reason)
}

// Pack serializes a state into its wire word. Weight and decay tag are
// derivable from the index but packed explicitly for self-description; the
// reserved bits are zero.
func Pack(s topo.State) Word {
	d, _ := topo.DecayForWeight(s.Weight)
	var w Word
	w |= Word(s.Index&0x7) << 13
	w |= Word(uint8(s.Weight+1)&0x3) << 11
	w |= Word(uint8(d)&0x3) << 9
	return w
}

// Unpack reconstructs a state from its wire word, inverting Pack exactly for
// every valid state. It fails with *MalformedError on the reserved index 7 or
// when the decay tag disagrees with the weight. Reserved bits are ignored.
func Unpack(w Word) (topo.State, error) {
	index := int(w>>13) & 0x7
	if index == 7 {
		return topo.State{}, &MalformedError{Word: w, Reason: "reserved index 7"}
	}
	weight := topo.Weight(int8((w>>11)&0x3) - 1)
	if !weight.Valid() {
		return topo.State{}, &MalformedError{Word: w, Reason: "weight bits out of range"}
	}
	tag := topo.DecayType((w >> 9) & 0x3)
	d, err := topo.DecayForWeight(weight)
	if err != nil || tag != d {
		return topo.State{}, &MalformedError{Word: w, Reason: "decay tag inconsistent with weight"}
	}
	return topo.NewState(index, weight)
}

// AppendWords appends the big-endian encoding of words to b.
func AppendWords(b []byte, words []Word) []byte {
	for _, w := range words {
		b = binary.BigEndian.AppendUint16(b, uint16(w))
	}
	return b
}

// ParseWords decodes a big-endian word stream. The byte length must be a
// multiple of WordLen.
func ParseWords(b []byte) ([]Word, error) {
	if len(b)%WordLen != 0 {
		return nil, fmt.Errorf("wire: truncated word stream: %d bytes", len(b))
	}
	words := make([]Word, 0, len(b)/WordLen)
	for i := 0; i < len(b); i += WordLen {
		words = append(words, Word(binary.BigEndian.Uint16(b[i:])))
	}
	return words, nil
}

// Hex renders the word as four uppercase hex digits, the transmission form
// used by the hex encoder.
func (w Word) Hex() string { return fmt.Sprintf("%04X", uint16(w)) }

// ParseHex parses a four-digit hex word.
func ParseHex(s string) (Word, error) {
	if len(s) != 4 {
		return 0, fmt.Errorf("wire: hex word must be 4 digits, got %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("wire: bad hex word %q: %w", s, err)
	}
	return Word(v), nil
}
