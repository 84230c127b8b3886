// bimo_ctl encodes a message into a topological packet, decodes a packet
// under a chosen noise level, or runs the Simon nuclear search demo.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/rs/zerolog"

	"github.com/jakobmina/smopsys-sv/codec"
	"github.com/jakobmina/smopsys-sv/oracle"
)

func main() {
	var (
		message = flag.String("message", "", "message to encode")
		inPath  = flag.String("in", "", "packet JSON file to decode instead of encoding")
		outPath = flag.String("out", "", "write the packet JSON here (default stdout)")
		noise   = flag.Float64("noise", 0, "noise level in [0,1] for the decode pass")
		seed    = flag.Int64("seed", 0, "noise seed (0 = time-based)")
		decode  = flag.Bool("decode", false, "run the decode pass and report fidelity")
		isotope = flag.String("simon", "", "run the Simon nuclear search for this isotope and exit")
	)
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if *isotope != "" {
		res, err := oracle.NuclearSearch(*isotope)
		if err != nil {
			log.Fatal().Err(err).Msg("nuclear search")
		}
		log.Info().
			Str("isotope", res.Isotope.Name).
			Int("h7_index", res.Isotope.H7Index).
			Int("h7_partner", res.Isotope.H7Partner).
			Str("handedness", res.Isotope.Handedness).
			Msg("isotope found")
		log.Info().
			Int("queries", res.Queries).
			Uint8("secret", res.Secret).
			Bool("found", res.Found).
			Msg("simon recovery complete")
		return
	}

	var pkt *codec.Packet
	switch {
	case *inPath != "":
		data, err := os.ReadFile(*inPath)
		if err != nil {
			log.Fatal().Err(err).Msg("read packet")
		}
		pkt, err = codec.UnmarshalPacket(data)
		if err != nil {
			log.Fatal().Err(err).Msg("parse packet")
		}
		log.Info().Str("packet_id", pkt.ID).Int("chars", len(pkt.Chars)).Msg("packet loaded")
	case *message != "":
		var err error
		pkt, err = codec.Encode(*message)
		if err != nil {
			log.Fatal().Err(err).Msg("encode")
		}
		log.Info().
			Str("packet_id", pkt.ID).
			Int("chars", pkt.Metadata.CharacterCount).
			Float64("total_energy_ev", pkt.Metadata.TotalEnergyEV).
			Msg("message encoded")
		data, err := codec.MarshalPacket(pkt)
		if err != nil {
			log.Fatal().Err(err).Msg("marshal packet")
		}
		if *outPath != "" {
			if err := os.WriteFile(*outPath, data, 0o644); err != nil {
				log.Fatal().Err(err).Msg("write packet")
			}
		} else if !*decode {
			fmt.Println(string(data))
		}
	default:
		flag.Usage()
		os.Exit(2)
	}

	if !*decode && *inPath == "" {
		return
	}

	var rng *rand.Rand
	if *seed != 0 {
		rng = rand.New(rand.NewSource(*seed))
	}
	res, err := codec.NewDecoder(rng).Decode(pkt, *noise)
	if err != nil {
		log.Fatal().Err(err).Msg("decode")
	}
	log.Info().
		Str("decoded", res.Decoded).
		Float64("avg_fidelity", res.AverageFidelity).
		Str("quality", string(res.Quality)).
		Float64("noise", res.NoiseLevel).
		Msg("decode complete")
	if res.Decoded != res.Original {
		log.Warn().Str("original", res.Original).Msg("reconstruction degraded")
	}
}
