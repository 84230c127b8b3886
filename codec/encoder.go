package codec

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jakobmina/smopsys-sv/internal/codecmetrics"
	"github.com/jakobmina/smopsys-sv/internal/wire"
)

// ErrEmptyMessage is returned by Encode for a zero-length message.
var ErrEmptyMessage = errors.New("codec: empty message")

const protocolName = "Ternary-BiMoType/1.0"

// Metadata summarizes a packet's payload.
type Metadata struct {
	TotalEnergyEV  float64
	CharacterCount int
	AveragePhase   float64
	DecayCounts    map[string]int
}

// Packet is an encoded message: one EncodedChar per input character in input
// order, plus summary metadata. Read-only once built.
type Packet struct {
	ID        string
	Protocol  string
	Timestamp time.Time
	Chars     []EncodedChar
	Metadata  Metadata
}

// Encode builds a packet from a non-empty message. The packet ID is unique
// per call; TotalEnergyEV is the exact sum of the per-character signature
// energies.
func Encode(message string) (*Packet, error) {
	if len(message) == 0 {
		return nil, ErrEmptyMessage
	}
	runes := []rune(message)
	chars := make([]EncodedChar, len(runes))
	md := Metadata{
		CharacterCount: len(runes),
		DecayCounts:    make(map[string]int, 3),
	}
	var phaseSum float64
	for i, r := range runes {
		ec := MapChar(r)
		chars[i] = ec
		md.TotalEnergyEV += ec.Signature.EnergyEV
		md.DecayCounts[ec.Signature.Decay.String()]++
		phaseSum += ec.Phase.Phi
	}
	md.AveragePhase = phaseSum / float64(len(runes))

	now := time.Now()
	codecmetrics.EncodedMessages.Inc()
	codecmetrics.EncodedChars.Add(float64(len(runes)))
	return &Packet{
		ID:        fmt.Sprintf("TERNARY-BIMO-%d-%s", now.Unix(), uuid.NewString()[:8]),
		Protocol:  protocolName,
		Timestamp: now,
		Chars:     chars,
		Metadata:  md,
	}, nil
}

// Words returns the big-endian wire words of the payload, one per character.
func (p *Packet) Words() []wire.Word {
	words := make([]wire.Word, len(p.Chars))
	for i := range p.Chars {
		words[i] = p.Chars[i].Word
	}
	return words
}

// WireBytes serializes the payload words big-endian.
func (p *Packet) WireBytes() []byte {
	return wire.AppendWords(make([]byte, 0, len(p.Chars)*wire.WordLen), p.Words())
}

// Message reassembles the source characters.
func (p *Packet) Message() string {
	runes := make([]rune, len(p.Chars))
	for i := range p.Chars {
		runes[i] = p.Chars[i].Char
	}
	return string(runes)
}
