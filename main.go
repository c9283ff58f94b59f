package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"git.lost.host/meutraa/strum/internal/config"
	"git.lost.host/meutraa/strum/internal/input"
)

// logger is replaced by initLogger once the command line is parsed.
var logger = slog.Default()

func initLogger(debug bool, w io.Writer) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	}))
	slog.SetDefault(logger)
}

func main() {
	os.Exit(run(config.MustParse()))
}

func run(cfg *config.Config) int {
	var out io.Writer = os.Stderr
	if cfg.Display == config.DisplayTerminal && cfg.LogFile != "" {
		// the terminal display owns the screen
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if nil != err {
			slog.Error("unable to open log file", "path", cfg.LogFile, "err", err)
			return 1
		}
		defer f.Close()
		out = f
	}
	initLogger(cfg.Debug, out)

	p := &Program{Config: cfg, Logger: logger}
	defer p.Close()
	if err := p.Init(); nil != err {
		logger.Error("error: " + err.Error())
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := p.Run(ctx)
	switch {
	case nil == err, errors.Is(err, errFinished), errors.Is(err, input.ErrQuit):
		p.Finish(errors.Is(err, errFinished))
		return 0
	default:
		logger.Error("error: " + err.Error())
		return 1
	}
}
