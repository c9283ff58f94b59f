package game

import (
	"math"

	"github.com/pkg/errors"
)

var (
	// ErrEmptySong is returned when a chart contains no rows at all.
	ErrEmptySong = errors.New("song has no note rows")

	// ErrBadGeometry is returned for non-positive tempo, row or height values.
	ErrBadGeometry = errors.New("song tempo, rows per measure and row height must be positive")
)

// Song is the read-only note sequence for one play session together with the
// constants that drive scrolling.
type Song struct {
	Title          string
	Tempo          float64 // beats per minute
	RowsPerMeasure float64
	RowHeight      float64 // sprite height plus vertical padding, in pixels

	rows []NoteRow
}

// NewSong binds a chart to the pixel height of one row. The rows are copied so
// that the song cannot be changed once a session holds it.
func NewSong(chart *Chart, rowHeight float64) (*Song, error) {
	if nil == chart || len(chart.Rows) == 0 {
		return nil, ErrEmptySong
	}
	if !(chart.Tempo > 0) || !(chart.RowsPerMeasure > 0) || !(rowHeight > 0) ||
		math.IsInf(chart.Tempo, 0) || math.IsInf(rowHeight, 0) {
		return nil, errors.Wrapf(ErrBadGeometry, "tempo %v, rows/measure %v, height %v",
			chart.Tempo, chart.RowsPerMeasure, rowHeight)
	}
	rows := make([]NoteRow, len(chart.Rows))
	copy(rows, chart.Rows)
	return &Song{
		Title:          chart.Title,
		Tempo:          chart.Tempo,
		RowsPerMeasure: chart.RowsPerMeasure,
		RowHeight:      rowHeight,
		rows:           rows,
	}, nil
}

func (s *Song) Len() int {
	return len(s.rows)
}

// Row returns the row at index i, false when i is out of range.
func (s *Song) Row(i int) (NoteRow, bool) {
	if i < 0 || i >= len(s.rows) {
		return NoteRow{}, false
	}
	return s.rows[i], true
}

// RowDurationMs is the time between two consecutive rows.
func (s *Song) RowDurationMs() float64 {
	return (60000 / s.Tempo) / s.RowsPerMeasure
}

// ScrollVelocity is the downward speed of the notes in pixels per millisecond.
func (s *Song) ScrollVelocity() float64 {
	return s.RowHeight / s.RowDurationMs()
}
