package codec

import (
	"errors"
	"time"

	"github.com/francoispqt/gojay"

	"github.com/jakobmina/smopsys-sv/internal/wire"
	"github.com/jakobmina/smopsys-sv/topo"
)

// Interchange JSON format for packets. Field names are part of the wire
// contract: packet_id, protocol, timestamp, characters, encoding_metadata
// with total_energy_ev and character_count.

// MarshalPacket renders a packet in the interchange format.
func MarshalPacket(p *Packet) ([]byte, error) {
	return gojay.MarshalJSONObject(p)
}

// UnmarshalPacket parses the interchange format and rebuilds every derived
// field from the wire words, validating each one. The word index of the
// first malformed entry is reported in the error.
func UnmarshalPacket(data []byte) (*Packet, error) {
	p := &Packet{}
	if err := gojay.UnmarshalJSONObject(data, p); err != nil {
		return nil, err
	}
	for i := range p.Chars {
		st, err := wire.Unpack(p.Chars[i].Word)
		if err != nil {
			var me *wire.MalformedError
			if errors.As(err, &me) {
				me.WordIndex = i
			}
			return nil, err
		}
		d, _ := topo.DecayForWeight(st.Weight)
		p.Chars[i].State = st
		p.Chars[i].Signature = topo.SignatureFor(d)
		p.Chars[i].Phase = topo.PhaseForIndex(st.Index)
	}
	return p, nil
}

func (p *Packet) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("packet_id", p.ID)
	enc.StringKey("protocol", p.Protocol)
	enc.Int64Key("timestamp", p.Timestamp.Unix())
	enc.ArrayKey("characters", charList(p.Chars))
	enc.ObjectKey("encoding_metadata", &p.Metadata)
}

func (p *Packet) IsNil() bool { return p == nil }

func (p *Packet) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "packet_id":
		return dec.String(&p.ID)
	case "protocol":
		return dec.String(&p.Protocol)
	case "timestamp":
		var ts int64
		if err := dec.Int64(&ts); err != nil {
			return err
		}
		p.Timestamp = time.Unix(ts, 0)
	case "characters":
		return dec.Array((*charList)(&p.Chars))
	case "encoding_metadata":
		return dec.Object(&p.Metadata)
	}
	return nil
}

func (p *Packet) NKeys() int { return 0 }

type charList []EncodedChar

func (l charList) MarshalJSONArray(enc *gojay.Encoder) {
	for i := range l {
		enc.Object(&l[i])
	}
}

func (l charList) IsNil() bool { return l == nil }

func (l *charList) UnmarshalJSONArray(dec *gojay.Decoder) error {
	var c EncodedChar
	if err := dec.Object(&c); err != nil {
		return err
	}
	*l = append(*l, c)
	return nil
}

// Per-character records carry the wire word in hex plus the self-describing
// decoded triple; only char and word are authoritative on unmarshal, the rest
// is rebuilt from the word.
func (c *EncodedChar) MarshalJSONObject(enc *gojay.Encoder) {
	enc.StringKey("char", string(c.Char))
	enc.StringKey("word", c.Word.Hex())
	enc.IntKey("index", c.State.Index)
	enc.IntKey("weight", int(c.State.Weight))
	enc.StringKey("decay", c.Signature.Decay.String())
	enc.Float64Key("phase", c.Phase.Phi)
	enc.StringKey("isotope", c.Signature.Isotope)
	enc.Float64Key("energy_ev", c.Signature.EnergyEV)
}

func (c *EncodedChar) IsNil() bool { return c == nil }

func (c *EncodedChar) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "char":
		var s string
		if err := dec.String(&s); err != nil {
			return err
		}
		for _, r := range s {
			c.Char = r
			break
		}
	case "word":
		var s string
		if err := dec.String(&s); err != nil {
			return err
		}
		w, err := wire.ParseHex(s)
		if err != nil {
			return err
		}
		c.Word = w
	}
	return nil
}

func (c *EncodedChar) NKeys() int { return 0 }

func (m *Metadata) MarshalJSONObject(enc *gojay.Encoder) {
	enc.Float64Key("total_energy_ev", m.TotalEnergyEV)
	enc.IntKey("character_count", m.CharacterCount)
	enc.Float64Key("average_phase", m.AveragePhase)
	enc.ObjectKey("decay_counts", decayCounts(m.DecayCounts))
}

func (m *Metadata) IsNil() bool { return m == nil }

func (m *Metadata) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	switch key {
	case "total_energy_ev":
		return dec.Float64(&m.TotalEnergyEV)
	case "character_count":
		return dec.Int(&m.CharacterCount)
	case "average_phase":
		return dec.Float64(&m.AveragePhase)
	case "decay_counts":
		dc := make(decayCounts)
		if err := dec.Object(dc); err != nil {
			return err
		}
		m.DecayCounts = dc
	}
	return nil
}

func (m *Metadata) NKeys() int { return 0 }

type decayCounts map[string]int

func (d decayCounts) MarshalJSONObject(enc *gojay.Encoder) {
	// Fixed family order keeps the output stable.
	for _, t := range []topo.DecayType{topo.Beta, topo.Gamma, topo.Alpha} {
		if n, ok := d[t.String()]; ok {
			enc.IntKey(t.String(), n)
		}
	}
}

func (d decayCounts) IsNil() bool { return d == nil }

func (d decayCounts) UnmarshalJSONObject(dec *gojay.Decoder, key string) error {
	var n int
	if err := dec.Int(&n); err != nil {
		return err
	}
	d[key] = n
	return nil
}

func (d decayCounts) NKeys() int { return 0 }
