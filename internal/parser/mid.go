package parser

import (
	"math"

	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"git.lost.host/meutraa/strum/internal/game"
)

// Guitar Hero charts put the expert difficulty on these keys, green first.
const (
	expertGreen  = 96
	expertOrange = expertGreen + game.NumLanes - 1

	// what a file without a tempo event plays at
	defaultMIDITempo = 120
)

func (p *DefaultParser) parseMIDI(file string) (*game.Chart, error) {
	s, err := smf.ReadFile(file)
	if nil != err {
		return nil, err
	}
	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, errors.New("only metric time is supported")
	}

	tempo := 0.0
	ticksPerRow := float64(ticks.Resolution()) / p.RowsPerMeasure
	g := &grid{}
	for _, track := range s.Tracks {
		var tick uint64
		for _, ev := range track {
			tick += uint64(ev.Delta)

			var bpm float64
			if tempo == 0 && ev.Message.GetMetaTempo(&bpm) {
				tempo = bpm
				continue
			}

			var ch, key, vel uint8
			if !midi.Message(ev.Message).GetNoteStart(&ch, &key, &vel) {
				continue
			}
			if key < expertGreen || key > expertOrange {
				continue
			}
			g.add(int(math.Round(float64(tick)/ticksPerRow)), game.Lane(key-expertGreen))
		}
	}

	if len(g.rows) == 0 {
		return nil, game.ErrEmptySong
	}
	if tempo == 0 {
		tempo = defaultMIDITempo
	}
	return &game.Chart{
		Rows:           g.rows,
		Tempo:          tempo,
		RowsPerMeasure: p.RowsPerMeasure,
	}, nil
}
