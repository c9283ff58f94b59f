package main

import (
	"context"
	"log/slog"
	"math"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"git.lost.host/meutraa/strum/internal/config"
	"git.lost.host/meutraa/strum/internal/display"
	"git.lost.host/meutraa/strum/internal/frame"
	"git.lost.host/meutraa/strum/internal/game"
	"git.lost.host/meutraa/strum/internal/input"
	"git.lost.host/meutraa/strum/internal/parser"
	"git.lost.host/meutraa/strum/internal/render"
	"git.lost.host/meutraa/strum/internal/score"
	"git.lost.host/meutraa/strum/internal/sprite"
	"git.lost.host/meutraa/strum/internal/stats"
	"git.lost.host/meutraa/strum/internal/theme"
)

// errFinished ends a session once the last row is retired.
var errFinished = errors.New("song finished")

type Program struct {
	Config *config.Config
	Logger *slog.Logger

	Parser   parser.Parser
	Renderer render.Renderer
	Scorer   score.Scorer
	Theme    theme.Theme

	Song      *game.Song
	Scroller  *game.Scroller
	Shared    *game.SharedController
	Publisher *frame.Publisher
	Consumer  display.Consumer
	Source    input.Source
	History   score.Store

	tally atomic.Pointer[score.Tally]
	stats *stats.Server
}

func (p *Program) Init() error {
	cfg := p.Config

	psr := parser.NewDefaultParser()
	psr.Difficulty = cfg.Difficulty
	p.Parser = psr
	chart, err := p.Parser.Parse(cfg.Song)
	if nil != err {
		return err
	}
	if cfg.Tempo > 0 {
		chart.Tempo = cfg.Tempo
	}
	if cfg.RowsPerMeasure > 0 {
		chart.RowsPerMeasure = cfg.RowsPerMeasure
	}

	var tmpl *sprite.Sprite
	if cfg.Sprite != "" {
		tmpl, err = sprite.Load(cfg.Sprite)
	} else {
		tmpl, err = sprite.Template(theme.TemplateDiameter)
	}
	if nil != err {
		return err
	}

	if err := p.build(chart, tmpl); nil != err {
		return err
	}
	p.Logger.Info("song loaded",
		"title", p.Song.Title,
		"rows", p.Song.Len(),
		"notes", chart.NoteCount,
		"chords", chart.ChordCount,
		"tempo", p.Song.Tempo,
		"row_ms", p.Song.RowDurationMs(),
		"px_per_ms", p.Song.ScrollVelocity(),
	)

	if cfg.Scores != "" {
		h, err := score.OpenHistory(cfg.Scores)
		if nil != err {
			return err
		}
		p.History = h
		p.logBest("previous best")
	}

	if err := p.openInput(); nil != err {
		return err
	}
	if err := p.openDisplay(); nil != err {
		return err
	}
	p.stats = stats.Launch(cfg.Statsview, p.Logger)
	return nil
}

// build creates the session state that does not touch any device.
func (p *Program) build(chart *game.Chart, tmpl *sprite.Sprite) error {
	cfg := p.Config
	song, err := game.NewSong(chart, float64(tmpl.Height+cfg.Padding))
	if nil != err {
		return err
	}
	p.Song = song
	p.Theme = theme.NewDefaultTheme(tmpl)
	p.Scroller = game.NewScroller(song, 0)

	judge := score.NewJudge(p.Scroller, score.Window{
		HitLine:   cfg.HitLine,
		Tolerance: cfg.Tolerance,
		ExpireAt:  cfg.ExpireAt(),
	})
	judge.LevelStrum = cfg.LevelStrum
	p.Scorer = judge

	p.Renderer = &render.DefaultRenderer{
		Theme:   p.Theme,
		Song:    song,
		HitLine: int(math.Round(cfg.HitLine)),
	}
	p.Shared = &game.SharedController{}
	p.Publisher = frame.NewPublisher(frame.Width, frame.Height)
	p.tally.Store(&score.Tally{})
	return nil
}

func (p *Program) openInput() error {
	cfg := p.Config
	layout := game.RegisterLayout
	layout.Inverted = cfg.Inverted

	kind := cfg.Input
	if kind == config.InputAuto {
		switch cfg.Display {
		case config.DisplayEmulator:
			return nil // the window reads its own keyboard
		case config.DisplayTerminal:
			kind = config.InputKeyboard
		default:
			kind = config.InputDevice
		}
	}

	var err error
	switch kind {
	case config.InputKeyboard:
		p.Source, err = input.OpenKeyboard(cfg.Keys())
	case config.InputEvdev:
		p.Source, err = input.OpenEvdev(cfg.Evdev)
	case config.InputDevice:
		p.Source, err = input.OpenDevice(cfg.InputDevice, layout)
	case config.InputSerial:
		p.Source, err = input.OpenSerial(cfg.SerialPort, cfg.Baud, layout)
	default:
		err = errors.Errorf("unknown input %q", kind)
	}
	if nil == err {
		p.Logger.Info("input", "source", kind)
	}
	return err
}

func (p *Program) openDisplay() error {
	cfg := p.Config
	switch cfg.Display {
	case config.DisplayEmulator:
		e, err := display.NewEmulator(p.Publisher, cfg.Keys())
		if nil != err {
			return err
		}
		e.Title = "strum - " + p.Song.Title
		e.Scale = cfg.Scale
		e.Logger = p.Logger
		if nil == p.Source {
			e.Shared = p.Shared
		}
		p.Consumer = e
	case config.DisplayTerminal:
		t := display.NewTerminal(p.Publisher)
		t.Status = func() string {
			return p.tally.Load().String()
		}
		p.Consumer = t
	case config.DisplayFbdev:
		fb, err := display.OpenFramebuffer(cfg.FbDevice, p.Publisher)
		if nil != err {
			return err
		}
		fb.Logger = p.Logger
		p.Consumer = fb
	case config.DisplayPump:
		pump, err := display.OpenPump(cfg.PumpDevice, cfg.PumpMode, p.Publisher, theme.DefaultPalette)
		if nil != err {
			return err
		}
		pump.Nearest = cfg.PaletteNearest
		pump.Logger = p.Logger
		p.Consumer = pump
	default:
		return errors.Errorf("unknown display %q", cfg.Display)
	}
	p.Logger.Info("display", "consumer", cfg.Display)
	return nil
}

// Run plays the song. The consumer runs on the calling goroutine, since a
// desktop window has to own the main thread. Whichever task stops first
// cancels the others.
func (p *Program) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return p.play(gctx)
	})
	if nil != p.Source {
		reader := &input.Reader{
			Source: p.Source,
			Shared: p.Shared,
			Period: p.Config.PollPeriod,
			Logger: p.Logger,
		}
		g.Go(func() error {
			return reader.Run(gctx)
		})
	}

	consumerErr := p.Consumer.Run(gctx)
	cancel()
	if err := g.Wait(); nil != err {
		return err
	}
	return consumerErr
}

// play is the game loop. It never sleeps: each pass advances by the wall
// clock time since the previous pass started.
func (p *Program) play(ctx context.Context) error {
	scratch := frame.New(frame.Width, frame.Height)
	p.Scroller.Start(time.Now())
	for {
		if nil != ctx.Err() {
			return nil
		}
		p.Scroller.Tick(time.Now())
		state := p.Shared.Snapshot()
		for _, j := range p.Scorer.Tick(state) {
			p.record(j)
		}
		if p.Scorer.Done() {
			return errFinished
		}

		p.Renderer.Compose(scratch, state, p.Scroller.Position())
		if err := p.Publisher.Publish(scratch); nil != err {
			return err
		}
		runtime.Gosched()
	}
}

func (p *Program) record(j game.Judgement) {
	t := *p.tally.Load()
	t.Record(j)
	p.tally.Store(&t)

	attrs := []any{"row", j.Row, "want", j.Want.String(), "got", j.Got.String(), "delta", math.Round(j.Delta*10) / 10}
	switch {
	case j.Outcome == game.Hit:
		p.Logger.Info("hit", attrs...)
	case j.Outcome == game.Miss:
		p.Logger.Info("miss", append(attrs, "reason", j.Reason.String())...)
	case j.Outcome == game.Expired && !j.Want.Empty():
		p.Logger.Info("expired", attrs...)
	case j.Outcome == game.Finished:
		p.Logger.Info("finished", "tally", t.String())
	default:
		p.Logger.Debug(j.String(), attrs...)
	}
}

func (p *Program) Tally() score.Tally {
	if t := p.tally.Load(); nil != t {
		return *t
	}
	return score.Tally{}
}

// Finish logs the result and, when the whole song was played, stores it.
func (p *Program) Finish(completed bool) {
	t := p.Tally()
	p.Logger.Info("session over", "completed", completed, "tally", t.String())
	if nil == p.History || !completed {
		return
	}
	records, err := p.History.Load(p.Song)
	if nil != err {
		p.Logger.Warn("unable to load score history", "err", err)
	}
	if best, ok := score.Best(records); !ok || t.Better(best.Tally) {
		p.Logger.Info("new best score", "hits", t.Hits, "accuracy", t.Accuracy())
	}
	if err := p.History.Save(p.Song, t, time.Now()); nil != err {
		p.Logger.Warn("unable to save score", "err", err)
	}
}

func (p *Program) logBest(msg string) {
	records, err := p.History.Load(p.Song)
	if nil != err {
		p.Logger.Warn("unable to load score history", "err", err)
		return
	}
	if best, ok := score.Best(records); ok {
		p.Logger.Info(msg, "plays", len(records), "tally", best.Tally.String(), "at", best.At.Format(time.DateTime))
	}
}

// Close releases every device. It is safe on a partly initialised Program.
func (p *Program) Close() {
	if nil != p.stats {
		p.stats.Stop()
	}
	if nil != p.Source {
		if err := p.Source.Close(); nil != err {
			p.Logger.Warn("unable to close input", "err", err)
		}
	}
	if nil != p.Consumer {
		if err := p.Consumer.Close(); nil != err {
			p.Logger.Warn("unable to close display", "err", err)
		}
	}
	if nil != p.History {
		if err := p.History.Close(); nil != err {
			p.Logger.Warn("unable to close score history", "err", err)
		}
	}
}
