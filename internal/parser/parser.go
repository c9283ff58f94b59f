package parser

import (
	"github.com/pkg/errors"

	"git.lost.host/meutraa/strum/internal/game"
)

var (
	ErrUnknownFormat = errors.New("unknown song format")
	ErrNoChart       = errors.New("no playable chart in file")
)

type Parser interface {
	Parse(file string) (*game.Chart, error)
}
