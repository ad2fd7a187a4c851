package main

import (
	"bytes"
	"errors"
	"flag"
	"io"
	"strings"
	"testing"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := parseConfig("quarkvdp", nil, io.Discard)
	if err != nil {
		t.Fatalf("defaults rejected: %v", err)
	}
	if cfg.Mode != DEFAULT_MODE || cfg.Scale != 1 || cfg.Video != "ebiten" || cfg.Audio != AUDIO_OTO || cfg.Link != LINK_STDIO {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.FontHeight != NATIVE_FONT_HEIGHT || cfg.Keyboard != "us" {
		t.Fatalf("unexpected font or keyboard defaults %+v", cfg)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	args := []string{"-mode", "3", "-scale", "2", "-video", "headless", "-link", "tcp", "-listen", ":7000", "-keyboard", "de", "-trace"}
	cfg, err := parseConfig("quarkvdp", args, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Mode != 3 || cfg.Scale != 2 || cfg.Video != "headless" || cfg.Link != LINK_TCP || cfg.Listen != ":7000" || cfg.Keyboard != "de" || !cfg.Trace {
		t.Fatalf("flags not applied: %+v", cfg)
	}
}

func TestParseConfig_HelpWritesUsage(t *testing.T) {
	var usage bytes.Buffer
	_, err := parseConfig("quarkvdp", []string{"-h"}, &usage)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(usage.String(), "Usage: quarkvdp") || !strings.Contains(usage.String(), "-link") {
		t.Fatalf("usage text incomplete:\n%s", usage.String())
	}
}

func TestParseConfig_VersionSkipsValidation(t *testing.T) {
	cfg, err := parseConfig("quarkvdp", []string{"-version", "-mode", "99"}, io.Discard)
	if err != nil || !cfg.Version {
		t.Fatalf("expected -version to short circuit, got %v", err)
	}
}

func TestParseConfig_Rejects(t *testing.T) {
	cases := []struct {
		args []string
		want string
	}{
		{[]string{"-mode", "9"}, "-mode 9"},
		{[]string{"-scale", "0"}, "-scale 0"},
		{[]string{"-video", "opengl"}, "unknown backend"},
		{[]string{"-audio", "alsa"}, "unknown backend"},
		{[]string{"-audio", "capture"}, "needs -capture"},
		{[]string{"-link", "exec"}, "needs -host-cmd"},
		{[]string{"-link", "tcp", "-listen", ""}, "needs -listen"},
		{[]string{"-link", "script"}, "needs -script"},
		{[]string{"-link", "serial"}, "unknown transport"},
		{[]string{"-keyboard", "fr"}, "unknown keyboard layout"},
		{[]string{"-font-height", "0"}, "must be positive"},
		{[]string{"-video", "tcell"}, "cannot share the terminal"},
		{[]string{"extra"}, "unexpected argument"},
		{[]string{"-nope"}, "not defined"},
	}
	for _, tc := range cases {
		_, err := parseConfig("quarkvdp", tc.args, io.Discard)
		if err == nil || !strings.Contains(err.Error(), tc.want) {
			t.Fatalf("%v: expected error containing %q, got %v", tc.args, tc.want, err)
		}
	}
}

func TestParseConfig_ReportsEveryProblem(t *testing.T) {
	_, err := parseConfig("quarkvdp", []string{"-mode", "9", "-scale", "0"}, io.Discard)
	if err == nil || !strings.Contains(err.Error(), "-mode 9") || !strings.Contains(err.Error(), "-scale 0") {
		t.Fatalf("expected both errors, got %v", err)
	}
}

func TestParseConfig_TcellWithPTY(t *testing.T) {
	if _, err := parseConfig("quarkvdp", []string{"-video", "tcell", "-link", "pty"}, io.Discard); err != nil {
		t.Fatalf("tcell over a pty link rejected: %v", err)
	}
}
