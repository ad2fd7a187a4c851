// vdp_config.go - Command line configuration for Quark VDP

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Audio backend names accepted by -audio.
const (
	AUDIO_OTO     = "oto"
	AUDIO_CAPTURE = "capture"
	AUDIO_NONE    = "none"
)

var audioBackends = []string{AUDIO_OTO, AUDIO_CAPTURE, AUDIO_NONE}

type Config struct {
	Mode       int
	Scale      int
	Video      string
	Audio      string
	Capture    string
	Link       string
	HostCmd    string
	Listen     string
	Script     string
	Keyboard   string
	Font       string
	FontHeight int
	Trace      bool
	Fullscreen bool
	Version    bool
}

func defaultConfig() Config {
	return Config{
		Mode:       DEFAULT_MODE,
		Scale:      1,
		Video:      "ebiten",
		Audio:      AUDIO_OTO,
		Link:       LINK_STDIO,
		Listen:     "127.0.0.1:6502",
		Keyboard:   "us",
		FontHeight: NATIVE_FONT_HEIGHT,
	}
}

// parseConfig reads flags from args (without the program name). usage is
// where -h output goes.
func parseConfig(name string, args []string, usage io.Writer) (Config, error) {
	cfg := defaultConfig()

	flagSet := flag.NewFlagSet(name, flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.IntVar(&cfg.Mode, "mode", cfg.Mode, "Start-up video mode (0-3)")
	flagSet.IntVar(&cfg.Scale, "scale", cfg.Scale, fmt.Sprintf("Window scale factor (1-%d)", MAX_WINDOW_SCALE))
	flagSet.StringVar(&cfg.Video, "video", cfg.Video, "Video backend: ebiten, tcell or headless")
	flagSet.StringVar(&cfg.Audio, "audio", cfg.Audio, "Audio backend: oto, capture or none")
	flagSet.StringVar(&cfg.Capture, "capture", "", "WAV file written on exit with -audio capture")
	flagSet.StringVar(&cfg.Link, "link", cfg.Link, "Host link: "+strings.Join(linkTransports, ", "))
	flagSet.StringVar(&cfg.HostCmd, "host-cmd", "", "Host command run under a pty with -link exec")
	flagSet.StringVar(&cfg.Listen, "listen", cfg.Listen, "Listen address for -link tcp")
	flagSet.StringVar(&cfg.Script, "script", "", "Lua host program for -link script")
	flagSet.StringVar(&cfg.Keyboard, "keyboard", cfg.Keyboard, "Keyboard layout: us or de")
	flagSet.StringVar(&cfg.Font, "font", "", "Raw 1bpp font file replacing the native font")
	flagSet.IntVar(&cfg.FontHeight, "font-height", cfg.FontHeight, "Glyph height of -font in rows")
	flagSet.BoolVar(&cfg.Trace, "trace", false, "Log every command to stderr")
	flagSet.BoolVar(&cfg.Fullscreen, "fullscreen", false, "Start the window fullscreen")
	flagSet.BoolVar(&cfg.Version, "version", false, "Print version and compiled features")

	flagSet.Usage = func() {
		flagSet.SetOutput(usage)
		fmt.Fprintf(usage, "Usage: %s [-mode n] [-video ebiten|tcell|headless] [-link stdio|pty|exec|tcp|script] ...\n", name)
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		return cfg, err
	}
	if cfg.Version {
		return cfg, nil
	}
	if flagSet.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected argument %q", flagSet.Arg(0))
	}
	return cfg, cfg.validate()
}

func (c Config) validate() error {
	var errs []error
	if _, ok := LookupVideoMode(c.Mode); !ok {
		errs = append(errs, fmt.Errorf("-mode %d: must be 0-%d", c.Mode, len(VideoModes)-1))
	}
	if c.Scale < 1 || c.Scale > MAX_WINDOW_SCALE {
		errs = append(errs, fmt.Errorf("-scale %d: must be 1-%d", c.Scale, MAX_WINDOW_SCALE))
	}
	if _, ok := videoBackendNames[c.Video]; !ok {
		errs = append(errs, fmt.Errorf("-video %q: unknown backend", c.Video))
	}
	if !slices.Contains(audioBackends, c.Audio) {
		errs = append(errs, fmt.Errorf("-audio %q: unknown backend", c.Audio))
	}
	if c.Audio == AUDIO_CAPTURE && c.Capture == "" {
		errs = append(errs, errors.New("-audio capture needs -capture file.wav"))
	}
	switch c.Link {
	case LINK_STDIO, LINK_PTY:
	case LINK_EXEC:
		if c.HostCmd == "" {
			errs = append(errs, errors.New("-link exec needs -host-cmd"))
		}
	case LINK_TCP:
		if c.Listen == "" {
			errs = append(errs, errors.New("-link tcp needs -listen"))
		}
	case LINK_SCRIPT:
		if c.Script == "" {
			errs = append(errs, errors.New("-link script needs -script"))
		}
	default:
		errs = append(errs, fmt.Errorf("-link %q: unknown transport", c.Link))
	}
	if _, err := LayoutByName(c.Keyboard); err != nil {
		errs = append(errs, fmt.Errorf("-keyboard: %w", err))
	}
	if c.FontHeight <= 0 {
		errs = append(errs, fmt.Errorf("-font-height %d: must be positive", c.FontHeight))
	}
	if c.Link == LINK_STDIO && c.Video == "tcell" {
		errs = append(errs, errors.New("-video tcell cannot share the terminal with -link stdio"))
	}
	return errors.Join(errs...)
}
