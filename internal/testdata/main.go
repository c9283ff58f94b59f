package testdata

import (
	"bufio"
	"strings"

	"git.lost.host/meutraa/strum/internal/game"
)

// data is a short song in the .rows format: one record per row, lanes at the
// five least significant positions.
const data = `00000001
00000010
00000100
00001000
00010000
00000011
00011111
00000001
`

// GetChart returns a fixed eight row chart at 120 bpm and two rows a beat.
func GetChart() (*game.Chart, error) {
	chart := &game.Chart{Title: "testdata", Tempo: 120, RowsPerMeasure: 2}
	scanner := bufio.NewScanner(strings.NewReader(data))
	for scanner.Scan() {
		state, err := game.SongLayout.DecodeString(scanner.Text())
		if nil != err {
			return nil, err
		}
		chart.Rows = append(chart.Rows, state.Lanes)
	}
	chart.Count()
	return chart, nil
}

// Chart wraps rows in a chart with the same timing as GetChart.
func Chart(rows ...game.NoteRow) *game.Chart {
	chart := &game.Chart{Title: "rows", Tempo: 120, RowsPerMeasure: 2, Rows: rows}
	chart.Count()
	return chart
}

// Song binds rows to a row height, panicking on error since it is only used
// by tests with well formed input.
func Song(rowHeight float64, rows ...game.NoteRow) *game.Song {
	song, err := game.NewSong(Chart(rows...), rowHeight)
	if nil != err {
		panic(err)
	}
	return song
}
