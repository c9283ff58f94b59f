package parser

import (
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"git.lost.host/meutraa/strum/internal/game"
)

func (p *DefaultParser) getSecondsPerNote(rates []game.BPM, currentBeat float64, bpn float64) float64 {
	sel := rates[0].Value
	for _, bpm := range rates {
		if currentBeat >= bpm.StartingBeat {
			sel = bpm.Value
		} else {
			break
		}
	}
	return bpn * 60.0 / sel
}

// 0 – No note
// 1 – Normal note
// 2 – Hold head
// 3 – Hold/Roll tail
// 4 – Roll head
// M – Mine (or other negative note)
// K – Automatic keysound
// L – Lift note
// F – Fake note

// Only things that are strummed become notes. Tails and mines are dropped.
func (p *DefaultParser) mapToNote(ch byte) bool {
	return ch == '1' || ch == '2' || ch == '4'
}

func (p *DefaultParser) parseSM(file string) (*game.Chart, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, err
	}

	str := strings.ReplaceAll(string(data), "\r", "")
	sections := strings.Split(str, "#NOTES:")
	meta := sections[0]
	difficulties := []game.Difficulty{}
	for _, section := range sections[1:] {
		lines := strings.SplitN(section, "\n", 7)
		if len(lines) < 7 {
			continue
		}
		chartType := strings.TrimSpace(lines[1])
		chartType = strings.TrimSuffix(chartType, ":")
		nKeys, ok := game.NKeyMap[chartType]
		if !ok {
			continue
		}
		difficulties = append(difficulties, game.Difficulty{
			Name:    strings.TrimSuffix(strings.TrimSpace(lines[3]), ":"),
			Msd:     strings.TrimSuffix(strings.TrimSpace(lines[4]), ":"),
			Section: lines[6],
			NKeys:   nKeys,
		})
	}
	if len(difficulties) == 0 {
		return nil, ErrNoChart
	}

	title := ""
	bpms := []game.BPM{}
	for _, mdl := range strings.Split(meta, "\n#") {
		mdl = strings.TrimPrefix(strings.TrimSpace(mdl), "#")
		mdl, _, _ = strings.Cut(mdl, ";")
		if strings.HasPrefix(mdl, "TITLE:") {
			title = strings.TrimPrefix(mdl, "TITLE:")
		} else if strings.HasPrefix(mdl, "BPMS:") {
			mdl = strings.TrimPrefix(mdl, "BPMS:")
			mdl = strings.ReplaceAll(mdl, "\n", "")
			bbs := strings.Split(mdl, ",")
			for _, bpm := range bbs {
				as := strings.Split(bpm, "=")
				if len(as) != 2 {
					return nil, errors.Errorf("bad bpm %q", bpm)
				}
				sb, err := strconv.ParseFloat(strings.TrimSpace(as[0]), 64)
				if nil != err {
					return nil, err
				}
				value, err := strconv.ParseFloat(strings.TrimSpace(as[1]), 64)
				if nil != err {
					return nil, err
				}
				bpms = append(bpms, game.BPM{
					StartingBeat: sb,
					Value:        value,
				})
			}
		}
	}
	if len(bpms) == 0 || !(bpms[0].Value > 0) {
		return nil, errors.New("chart has no bpm")
	}

	difficulty := difficulties[len(difficulties)-1]
	for _, d := range difficulties {
		if strings.EqualFold(d.Name, p.Difficulty) {
			difficulty = d
			break
		}
	}

	// Rows are laid out at the first tempo, later tempo changes move notes
	// onto whichever row is nearest in time.
	tempo := bpms[0].Value
	rowsPerSecond := tempo / 60 * p.RowsPerMeasure

	g := &grid{}
	seconds := 0.0
	currentBeat := 0.0
	for _, block := range strings.Split(difficulty.Section, "\n,") {
		lines := []string{}
		for _, l := range strings.Split(block, "\n") {
			if i := strings.Index(l, "//"); i >= 0 {
				l = l[:i]
			}
			l = strings.TrimSuffix(strings.TrimSpace(l), ";")
			if len(l) == int(difficulty.NKeys) {
				lines = append(lines, l)
			}
		}
		if len(lines) == 0 {
			continue
		}

		// Beat count is 4 per block
		beatsPerNote := 4.0 / float64(len(lines))
		for _, line := range lines {
			row := int(math.Round(seconds * rowsPerSecond))
			for i := 0; i < len(line); i++ {
				if p.mapToNote(line[i]) {
					g.add(row, game.Lane(i))
				}
			}
			seconds += p.getSecondsPerNote(bpms, currentBeat, beatsPerNote)
			currentBeat += beatsPerNote
		}
	}

	if len(g.rows) == 0 {
		return nil, game.ErrEmptySong
	}
	return &game.Chart{
		Title:          strings.TrimSpace(title),
		Rows:           g.rows,
		Tempo:          tempo,
		RowsPerMeasure: p.RowsPerMeasure,
	}, nil
}
