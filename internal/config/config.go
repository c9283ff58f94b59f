package config

import (
	"fmt"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"

	"git.lost.host/meutraa/strum/internal/frame"
)

const Version = "0.3.0"

// Displays and inputs that can be picked on the command line.
const (
	DisplayEmulator = "emulator"
	DisplayTerminal = "terminal"
	DisplayFbdev    = "fbdev"
	DisplayPump     = "pump"

	InputAuto     = "auto"
	InputKeyboard = "keyboard"
	InputEvdev    = "evdev"
	InputDevice   = "device"
	InputSerial   = "serial"
)

// Config is everything the command line sets. It is not changed after Parse.
type Config struct {
	Song       string
	Display    string
	Input      string
	Sprite     string
	Difficulty string

	Tempo          float64 // 0 uses the song's
	RowsPerMeasure float64 // 0 uses the song's
	Padding        int
	Tolerance      float64
	ExpireMargin   float64
	HitLine        float64
	LevelStrum     bool

	InputDevice string
	Evdev       string
	SerialPort  string
	Baud        int
	Inverted    bool
	LaneKeys    string
	PollPeriod  time.Duration

	FbDevice       string
	PumpDevice     string
	PumpMode       string
	PaletteNearest bool
	Scale          int

	Scores    string
	Statsview string
	Debug     bool
	LogFile   string
}

// New builds the command line application. Each call returns an independent
// parser so tests can run it more than once.
func New() (*kingpin.Application, *Config) {
	c := &Config{}
	app := kingpin.New("strum", "Five lane rhythm game for a 150x480 VGA peripheral.")
	app.Version(Version)
	app.HelpFlag.Short('h')

	app.Arg("song", "Song file (.rows, .txt, .sm, .mid)").Required().ExistingFileVar(&c.Song)

	app.Flag("display", "Where frames go").Default(DisplayEmulator).Short('D').
		EnumVar(&c.Display, DisplayEmulator, DisplayTerminal, DisplayFbdev, DisplayPump)
	app.Flag("input", "Where the guitar is read from").Default(InputAuto).Short('i').
		EnumVar(&c.Input, InputAuto, InputKeyboard, InputEvdev, InputDevice, InputSerial)
	app.Flag("sprite", "Gray note template PNG, a generated one is used when empty").ExistingFileVar(&c.Sprite)
	app.Flag("difficulty", "StepMania chart name").StringVar(&c.Difficulty)

	app.Flag("tempo", "Override the song tempo in beats per minute").Default("0").Short('t').Float64Var(&c.Tempo)
	app.Flag("rows-per-measure", "Override the song's rows per beat").Default("0").Short('r').Float64Var(&c.RowsPerMeasure)
	app.Flag("padding", "Vertical pixels between note rows").Default("4").IntVar(&c.Padding)
	app.Flag("tolerance", "Pixels either side of the hit line that still count").Default("12").Float64Var(&c.Tolerance)
	app.Flag("expire-margin", "Pixels below the screen before a row is retired").Default("13").Float64Var(&c.ExpireMargin)
	app.Flag("hit-line", "Y of the indicator row").Default("468").Float64Var(&c.HitLine)
	app.Flag("level-strum", "Evaluate on every tick the strum bar is held").BoolVar(&c.LevelStrum)

	app.Flag("input-device", "Guitar reader device").Default("/dev/note_reader").StringVar(&c.InputDevice)
	app.Flag("evdev", "Keyboard event device").Default("/dev/input/event0").StringVar(&c.Evdev)
	app.Flag("serial-port", "Serial guitar adapter").Default("/dev/ttyACM0").StringVar(&c.SerialPort)
	app.Flag("baud", "Serial baud rate").Default("115200").IntVar(&c.Baud)
	app.Flag("inverted", "Guitar register lanes are active low").Default("true").BoolVar(&c.Inverted)
	app.Flag("lane-keys", "Keyboard keys for green to orange").Default("12345").Short('k').StringVar(&c.LaneKeys)
	app.Flag("poll-period", "Input poll period").Default("16667us").DurationVar(&c.PollPeriod)

	app.Flag("fb-device", "Linux framebuffer").Default("/dev/fb0").StringVar(&c.FbDevice)
	app.Flag("pump-device", "VGA peripheral device").Default("/dev/vga_framebuffer").StringVar(&c.PumpDevice)
	app.Flag("pump-mode", "How packets reach the VGA peripheral").Default("ioctl").EnumVar(&c.PumpMode, "ioctl", "write")
	app.Flag("palette-nearest", "Clamp colours missing from the palette instead of failing").BoolVar(&c.PaletteNearest)
	app.Flag("scale", "Emulator window scale").Default("1").IntVar(&c.Scale)

	app.Flag("scores", "Score history database, empty disables it").Default("strum.db").StringVar(&c.Scores)
	app.Flag("statsview", "Address for the runtime statistics dashboard, empty disables it").StringVar(&c.Statsview)
	app.Flag("debug", "Debug logging").Short('d').BoolVar(&c.Debug)
	app.Flag("log-file", "Log file used while the terminal display is active").Default("strum.log").StringVar(&c.LogFile)

	return app, c
}

// Parse reads args, without the program name.
func Parse(args []string) (*Config, error) {
	app, c := New()
	if _, err := app.Parse(args); nil != err {
		return nil, err
	}
	if err := c.Validate(); nil != err {
		return nil, err
	}
	return c, nil
}

// MustParse parses os.Args and exits with status 2 on a usage error.
func MustParse() *Config {
	c, err := Parse(os.Args[1:])
	if nil != err {
		fmt.Fprintf(os.Stderr, "strum: error: %v, try --help\n", err)
		os.Exit(2)
	}
	return c
}

func (c *Config) Validate() error {
	switch {
	case c.Tempo < 0:
		return errors.Errorf("tempo %v is negative", c.Tempo)
	case c.RowsPerMeasure < 0:
		return errors.Errorf("rows per measure %v is negative", c.RowsPerMeasure)
	case c.Padding < 0:
		return errors.Errorf("padding %d is negative", c.Padding)
	case c.Tolerance < 0:
		return errors.Errorf("tolerance %v is negative", c.Tolerance)
	case c.ExpireMargin < 0:
		return errors.Errorf("expire margin %v is negative", c.ExpireMargin)
	case c.HitLine < 0 || c.HitLine >= frame.Height:
		return errors.Errorf("hit line %v is off the screen", c.HitLine)
	case len([]rune(c.LaneKeys)) != 5:
		return errors.Errorf("lane keys %q must name 5 keys", c.LaneKeys)
	case c.PollPeriod <= 0:
		return errors.Errorf("poll period %v must be positive", c.PollPeriod)
	case c.Scale < 1:
		return errors.Errorf("scale %d must be at least 1", c.Scale)
	case c.Baud <= 0:
		return errors.Errorf("baud %d must be positive", c.Baud)
	}
	return nil
}

// ExpireAt is the y at which an unhit row is retired.
func (c *Config) ExpireAt() float64 {
	return frame.Height + c.ExpireMargin
}

func (c *Config) Keys() []rune {
	return []rune(c.LaneKeys)
}
