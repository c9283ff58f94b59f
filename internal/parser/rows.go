package parser

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"git.lost.host/meutraa/strum/internal/game"
)

// parseRows reads one 8 digit binary record per line. Lines starting with #
// are comments, except for the #TITLE:, #TEMPO: and #ROWS: headers.
func (p *DefaultParser) parseRows(file string) (*game.Chart, error) {
	f, err := os.Open(file)
	if nil != err {
		return nil, err
	}
	defer f.Close()

	chart := &game.Chart{}
	scanner := bufio.NewScanner(f)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if err := header(chart, line); nil != err {
				return nil, errors.Wrapf(err, "line %d", n)
			}
			continue
		}
		state, err := p.Layout.DecodeString(line)
		if nil != err {
			return nil, errors.Wrapf(err, "line %d", n)
		}
		chart.Rows = append(chart.Rows, state.Lanes)
	}
	if err := scanner.Err(); nil != err {
		return nil, err
	}
	if len(chart.Rows) == 0 {
		return nil, game.ErrEmptySong
	}
	return chart, nil
}

func header(chart *game.Chart, line string) error {
	key, value, ok := strings.Cut(strings.TrimPrefix(line, "#"), ":")
	if !ok {
		return nil
	}
	value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), ";"))

	var err error
	switch strings.ToUpper(strings.TrimSpace(key)) {
	case "TITLE":
		chart.Title = value
	case "TEMPO":
		chart.Tempo, err = strconv.ParseFloat(value, 64)
	case "ROWS":
		chart.RowsPerMeasure, err = strconv.ParseFloat(value, 64)
	}
	return err
}
