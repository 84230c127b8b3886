package codec

import (
	"errors"
	"math"
	"testing"
)

func TestEncodeEmptyMessage(t *testing.T) {
	_, err := Encode("")
	if !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("want ErrEmptyMessage, got %v", err)
	}
}

func TestEncodeLengthAndOrder(t *testing.T) {
	msg := "Fidelity over 7 states"
	p, err := Encode(msg)
	if err != nil {
		t.Fatal(err)
	}
	runes := []rune(msg)
	if len(p.Chars) != len(runes) {
		t.Fatalf("chars %d want %d", len(p.Chars), len(runes))
	}
	for i, r := range runes {
		if p.Chars[i].Char != r {
			t.Fatalf("char %d: %q want %q", i, p.Chars[i].Char, r)
		}
	}
	if p.Message() != msg {
		t.Fatalf("message %q", p.Message())
	}
	if p.Metadata.CharacterCount != len(runes) {
		t.Fatalf("count %d", p.Metadata.CharacterCount)
	}
}

func TestEncodeTotalEnergy(t *testing.T) {
	// H(-1) E(-1) L(0) L(0) O(0): 2x Sr-90 + 3x Tc-99m.
	p, err := Encode("HELLO")
	if err != nil {
		t.Fatal(err)
	}
	want := 2*546000.0 + 3*140000.0
	if math.Abs(p.Metadata.TotalEnergyEV-want) > 1e-9 {
		t.Fatalf("energy %v want %v", p.Metadata.TotalEnergyEV, want)
	}
	if p.Metadata.DecayCounts["BETA"] != 2 || p.Metadata.DecayCounts["GAMMA"] != 3 {
		t.Fatalf("decay counts %v", p.Metadata.DecayCounts)
	}
}

func TestEncodePacketIDUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		p, err := Encode("x")
		if err != nil {
			t.Fatal(err)
		}
		if seen[p.ID] {
			t.Fatalf("duplicate packet id %s", p.ID)
		}
		seen[p.ID] = true
	}
}

func TestPacketWireBytes(t *testing.T) {
	p, err := Encode("HQ")
	if err != nil {
		t.Fatal(err)
	}
	b := p.WireBytes()
	if len(b) != 2*len(p.Chars) {
		t.Fatalf("wire length %d", len(b))
	}
	words := p.Words()
	for i, ec := range p.Chars {
		if words[i] != ec.Word {
			t.Fatalf("word %d mismatch", i)
		}
	}
}
