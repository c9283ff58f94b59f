package parser

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"git.lost.host/meutraa/strum/internal/game"
)

func write(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); nil != err {
		t.Fatal(err)
	}
	return path
}

func TestParseRows(t *testing.T) {
	path := write(t, "intro.rows", `#TITLE:Intro
#TEMPO:100
# a comment line
#ROWS:2;

00000001
00000000
00011111
00000110
`)
	chart, err := NewDefaultParser().Parse(path)
	if nil != err {
		t.Fatal(err)
	}
	if chart.Title != "Intro" || chart.Tempo != 100 || chart.RowsPerMeasure != 2 {
		t.Errorf("header %q %v %v", chart.Title, chart.Tempo, chart.RowsPerMeasure)
	}
	want := []game.NoteRow{
		game.Row(game.Green),
		game.Row(),
		game.Row(game.Green, game.Red, game.Yellow, game.Blue, game.Orange),
		game.Row(game.Red, game.Yellow),
	}
	if len(chart.Rows) != len(want) {
		t.Fatalf("%d rows, want %d", len(chart.Rows), len(want))
	}
	for i := range want {
		if chart.Rows[i] != want[i] {
			t.Errorf("row %d = %v, want %v", i, chart.Rows[i], want[i])
		}
	}
	if chart.NoteCount != 8 || chart.ChordCount != 2 {
		t.Errorf("counts %d notes %d chords", chart.NoteCount, chart.ChordCount)
	}
}

func TestParseRowsDefaults(t *testing.T) {
	chart, err := NewDefaultParser().Parse(write(t, "plain.txt", "00000001\n"))
	if nil != err {
		t.Fatal(err)
	}
	if chart.Title != "plain" || chart.Tempo != DefaultTempo || chart.RowsPerMeasure != DefaultRowsPerMeasure {
		t.Errorf("defaults %q %v %v", chart.Title, chart.Tempo, chart.RowsPerMeasure)
	}
}

func TestParseRowsErrors(t *testing.T) {
	p := NewDefaultParser()
	tests := map[string]error{
		"bad.rows":   game.ErrBadRecord,
		"empty.rows": game.ErrEmptySong,
		"song.wav":   ErrUnknownFormat,
	}
	contents := map[string]string{
		"bad.rows":   "00000001\n0000002\n",
		"empty.rows": "# nothing\n",
		"song.wav":   "",
	}
	for name, want := range tests {
		_, err := p.Parse(write(t, name, contents[name]))
		if !errors.Is(err, want) {
			t.Errorf("%s: error %v, want %v", name, err, want)
		}
	}
	if _, err := p.Parse(write(t, "tempo.rows", "#TEMPO:fast\n00000001\n")); nil == err {
		t.Error("expected an error for a bad tempo")
	}
}

const smChart = `#TITLE:Test Song;
#OFFSET:-0.100;
#BPMS:0.000=120.000;
//---------------pump-single - ----------------
#NOTES:
     pump-single:
     :
     Easy:
     2:
     0,0,0,0,0:
10000
00000
00000
00000
,
00001
00000
00000
00000
;
//---------------pump-single - ----------------
#NOTES:
     pump-single:
     :
     Hard:
     9:
     0,0,0,0,0:
11000
01000
M0000
00300
,
00100
00010
00001
00000
;
`

func TestParseSM(t *testing.T) {
	path := write(t, "song.sm", smChart)
	p := NewDefaultParser()
	p.RowsPerMeasure = 2 // two rows a beat, one per quarter note line

	chart, err := p.Parse(path)
	if nil != err {
		t.Fatal(err)
	}
	if chart.Title != "Test Song" || chart.Tempo != 120 {
		t.Errorf("meta %q %v", chart.Title, chart.Tempo)
	}
	// the last chart is the default, one line is a beat and a beat is two rows
	want := map[int]game.NoteRow{
		0:  game.Row(game.Green, game.Red),
		2:  game.Row(game.Red),
		4:  game.Row(),
		6:  game.Row(),
		8:  game.Row(game.Yellow),
		10: game.Row(game.Blue),
		12: game.Row(game.Orange),
	}
	if len(chart.Rows) != 13 {
		t.Fatalf("%d rows, want 13", len(chart.Rows))
	}
	for i, row := range want {
		if chart.Rows[i] != row {
			t.Errorf("row %d = %v, want %v", i, chart.Rows[i], row)
		}
	}

	p.Difficulty = "easy"
	chart, err = p.Parse(path)
	if nil != err {
		t.Fatal(err)
	}
	if chart.Rows[0] != game.Row(game.Green) || chart.Rows[8] != game.Row(game.Orange) {
		t.Errorf("easy chart rows %v", chart.Rows)
	}
}

func TestParseSMNoChart(t *testing.T) {
	path := write(t, "dance.sm", "#BPMS:0=120;\n#NOTES:\n dance-single:\n :\n Hard:\n 1:\n 0:\n1000\n;\n")
	if _, err := NewDefaultParser().Parse(path); !errors.Is(err, ErrNoChart) {
		t.Errorf("error %v, want ErrNoChart", err)
	}
}

func TestParseMIDI(t *testing.T) {
	const resolution = 480
	var tr smf.Track
	tr.Add(0, smf.MetaTempo(150))
	tr.Add(0, midi.NoteOn(0, expertGreen, 100))
	tr.Add(0, midi.NoteOn(0, expertGreen+1, 100))
	tr.Add(60, midi.NoteOff(0, expertGreen))
	tr.Add(0, midi.NoteOff(0, expertGreen+1))
	// an easy note that must be ignored
	tr.Add(0, midi.NoteOn(0, 60, 100))
	tr.Add(60, midi.NoteOff(0, 60))
	// half a beat after the start, one row at two rows a beat
	tr.Add(120, midi.NoteOn(0, expertOrange, 100))
	tr.Add(60, midi.NoteOff(0, expertOrange))
	tr.Close(0)

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(resolution)
	if err := s.Add(tr); nil != err {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "notes.mid")
	if err := s.WriteFile(path); nil != err {
		t.Fatal(err)
	}

	p := NewDefaultParser()
	p.RowsPerMeasure = 2
	chart, err := p.Parse(path)
	if nil != err {
		t.Fatal(err)
	}
	if chart.Tempo != 150 {
		t.Errorf("tempo %v, want 150", chart.Tempo)
	}
	want := []game.NoteRow{game.Row(game.Green, game.Red), game.Row(game.Orange)}
	if len(chart.Rows) != len(want) {
		t.Fatalf("rows %v, want %v", chart.Rows, want)
	}
	for i := range want {
		if chart.Rows[i] != want[i] {
			t.Errorf("row %d = %v, want %v", i, chart.Rows[i], want[i])
		}
	}
}
