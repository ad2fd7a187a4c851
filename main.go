// main.go - Main entry point for the Quark VDP

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
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
)

// boilerPlate goes to stderr because stdout may carry the host link.
func boilerPlate(w io.Writer) {
	fmt.Fprintln(w, "\n\033[38;2;255;20;147mQuark VDP\033[0m - display and sound coprocessor")
	fmt.Fprintln(w, "(c) 2024 - 2026 Zayn Otley")
	fmt.Fprintln(w, "https://github.com/IntuitionAmiga/IntuitionEngine")
	fmt.Fprintln(w, "License: GPLv3 or later")
}

func main() {
	boilerPlate(os.Stderr)

	cfg, err := parseConfig(os.Args[0], os.Args[1:], os.Stdout)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if cfg.Version {
		printFeatures(os.Stdout)
		return
	}

	diag := log.New(os.Stderr, "vdp: ", log.Ltime)
	var trace *log.Logger
	if cfg.Trace {
		trace = log.New(os.Stderr, "trace: ", log.Lmicroseconds)
	}

	layout, _ := LayoutByName(cfg.Keyboard)
	var nativeFont *FontTable
	if cfg.Font != "" {
		nativeFont, err = LoadFontFile(cfg.Font, cfg.FontHeight)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load font: %v\n", err)
			os.Exit(1)
		}
	}

	// Initialize sound first
	tones := NewToneChannels(SAMPLE_RATE)
	audio, capture, err := newAudioOutput(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize sound: %v\n", err)
		os.Exit(1)
	}
	audio.SetupPlayer(tones.Generator())

	output, err := NewVideoOutput(videoBackendNames[cfg.Video])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize video: %v\n", err)
		os.Exit(1)
	}
	dc := output.GetDisplayConfig()
	dc.Scale = 1 // the VDP scales its own frames
	dc.Fullscreen = cfg.Fullscreen
	if err := output.SetDisplayConfig(dc); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to configure video: %v\n", err)
		os.Exit(1)
	}

	link := NewHostLink(LINK_QUEUE_DEPTH)
	vdp, err := NewVDP(link, VDPOptions{
		Diag:       diag,
		Trace:      trace,
		Output:     output,
		Tones:      tones,
		Layout:     layout,
		NativeFont: nativeFont,
		Scale:      cfg.Scale,
		Mode:       cfg.Mode,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize VDP: %v\n", err)
		os.Exit(1)
	}
	if kc, ok := output.(KeyInputCapable); ok {
		kc.SetKeyHandler(func(ev KeyEvent) { vdp.PushKey(ev) })
	}
	runtimeStatus.setBackends(cfg.Link, cfg.Audio)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := output.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start video: %v\n", err)
		os.Exit(1)
	}
	if co, ok := output.(ClosableOutput); ok {
		go func() {
			select {
			case <-co.Done():
				cancel()
			case <-ctx.Done():
			}
		}()
	}
	audio.Start()

	stopLink, err := startLink(ctx, cancel, cfg, link, vdp, diag)
	if err != nil {
		output.Close()
		audio.Close()
		fmt.Fprintf(os.Stderr, "Failed to start host link: %v\n", err)
		os.Exit(1)
	}

	vdp.Start()
	if err := vdp.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		diag.Printf("run: %v", err)
	}

	link.Close()
	stopLink()
	audio.Close()
	output.Close()

	if capture != nil {
		if err := writeCapture(capture, cfg.Capture); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to write capture: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Wrote %d samples to %s\n", capture.Len(), cfg.Capture)
	}
}

func newAudioOutput(cfg Config) (AudioOutput, *AudioCapture, error) {
	switch cfg.Audio {
	case AUDIO_OTO:
		p, err := NewOtoPlayer(SAMPLE_RATE)
		if err != nil {
			return nil, nil, err
		}
		return p, nil, nil
	case AUDIO_CAPTURE:
		c := NewAudioCapture(SAMPLE_RATE)
		return c, c, nil
	}
	return NewClockedPlayer(SAMPLE_RATE, nil), nil, nil
}

func writeCapture(c *AudioCapture, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := c.WriteWAV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// startLink connects the host side of link and returns a function that
// waits for it to wind down. Transports that end on their own cancel ctx.
func startLink(ctx context.Context, cancel context.CancelFunc, cfg Config, link *HostLink, vdp *VDP, diag *log.Logger) (func(), error) {
	if cfg.Link == LINK_STDIO {
		host := NewTerminalHost(link, os.Stdout)
		if err := host.Start(); err != nil {
			return nil, err
		}
		return host.Stop, nil
	}

	done := make(chan struct{})
	run := func(serve func() error) {
		go func() {
			defer close(done)
			if err := serve(); err != nil {
				diag.Printf("%s link: %v", cfg.Link, err)
			}
		}()
	}

	switch cfg.Link {
	case LINK_PTY:
		run(func() error {
			return ServePTY(ctx, link, func(path string) {
				fmt.Fprintf(os.Stderr, "Host link on %s\n", path)
			})
		})
	case LINK_TCP:
		run(func() error {
			return ServeTCP(ctx, link, cfg.Listen, func(addr string) {
				fmt.Fprintf(os.Stderr, "Host link listening on %s\n", addr)
			})
		})
	case LINK_EXEC:
		run(func() error {
			defer cancel()
			return ServeExec(ctx, link, cfg.HostCmd)
		})
	case LINK_SCRIPT:
		host := NewScriptHost(link, vdp.VSyncCount)
		run(func() error {
			defer host.Close()
			return host.RunFile(ctx, cfg.Script)
		})
	default:
		return nil, fmt.Errorf("unknown link %q", cfg.Link)
	}
	return func() { <-done }, nil
}
