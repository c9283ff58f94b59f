package parser

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"git.lost.host/meutraa/strum/internal/game"
)

// Used when a song does not say how fast it is.
const (
	DefaultTempo          = 137
	DefaultRowsPerMeasure = 2.5
)

// DefaultParser picks a format from the file extension.
type DefaultParser struct {
	// Layout decodes the records of .rows files.
	Layout game.BitLayout

	// Tempo and RowsPerMeasure are used when the file has no value of its
	// own. RowsPerMeasure is also the grid .sm and .mid notes are snapped to.
	Tempo          float64
	RowsPerMeasure float64

	// Difficulty selects a StepMania chart by name. The last pump-single
	// chart in the file is used when it is empty or not found.
	Difficulty string
}

func NewDefaultParser() *DefaultParser {
	return &DefaultParser{
		Layout:         game.SongLayout,
		Tempo:          DefaultTempo,
		RowsPerMeasure: DefaultRowsPerMeasure,
	}
}

func (p *DefaultParser) Parse(file string) (*game.Chart, error) {
	var (
		chart *game.Chart
		err   error
	)
	switch strings.ToLower(filepath.Ext(file)) {
	case ".rows", ".txt":
		chart, err = p.parseRows(file)
	case ".sm":
		chart, err = p.parseSM(file)
	case ".mid", ".midi":
		chart, err = p.parseMIDI(file)
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%s", file)
	}
	if nil != err {
		return nil, errors.Wrapf(err, "parse %s", file)
	}

	if chart.Title == "" {
		chart.Title = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	}
	if !(chart.Tempo > 0) {
		chart.Tempo = p.Tempo
	}
	if !(chart.RowsPerMeasure > 0) {
		chart.RowsPerMeasure = p.RowsPerMeasure
	}
	chart.Count()
	return chart, nil
}

// grid snaps notes at arbitrary times onto song rows.
type grid struct {
	rows []game.NoteRow
}

func (g *grid) add(row int, lane game.Lane) {
	if row < 0 {
		return
	}
	for len(g.rows) <= row {
		g.rows = append(g.rows, game.NoteRow{})
	}
	g.rows[row][lane] = true
}
