package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestConfigCommandAppliesFlags(t *testing.T) {
	out, err := execute(t, "config", "--log-level", "debug", "--log-file", "/tmp/lt.log")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	var doc struct {
		Log struct {
			File  string `yaml:"file"`
			Level string `yaml:"level"`
		} `yaml:"log"`
		Listener struct {
			EscapeHits int `yaml:"escape_hits"`
		} `yaml:"listener"`
	}
	if err := yaml.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not YAML: %v\n%s", err, out)
	}
	if doc.Log.Level != "debug" || doc.Log.File != "/tmp/lt.log" || doc.Listener.EscapeHits != 3 {
		t.Fatalf("unexpected config: %+v", doc)
	}
}

func TestConfigCommandReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	if err := os.WriteFile(path, []byte("listener:\n  escape_hits: 7\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	out, err := execute(t, "--config", path, "config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.Contains(out, "escape_hits: 7") {
		t.Fatalf("output = %s", out)
	}
}

func TestSpringCommandRegistered(t *testing.T) {
	root := newRootCmd()
	cmd, _, err := root.Find([]string{"spring"})
	if err != nil || cmd.Name() != "spring" {
		t.Fatalf("spring command missing: %v", err)
	}

	out, err := execute(t, "config")
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	if !strings.Contains(out, "spring:") || !strings.Contains(out, "block_color: gainsboro") {
		t.Fatalf("spring section missing from config:\n%s", out)
	}
}

func TestInvalidFlagOverrideRejected(t *testing.T) {
	if _, err := execute(t, "config", "--log-level", "loud"); err == nil {
		t.Fatal("expected error for bad log level")
	}
}

func TestColorsCommandFilters(t *testing.T) {
	out, err := execute(t, "colors", "--filter", "tomato")
	if err != nil {
		t.Fatalf("colors: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1 {
		t.Fatalf("want 1 line, got %d:\n%s", len(lines), out)
	}
	plain := ansi.Strip(lines[0])
	if !strings.Contains(plain, "tomato") || !strings.Contains(plain, "#ff6347") {
		t.Fatalf("line = %q", plain)
	}
}

func TestReportErrorStyled(t *testing.T) {
	var buf bytes.Buffer
	reportError(&buf, errors.New("boom"))
	if got := ansi.Strip(buf.String()); got != "liveterm: boom\n" {
		t.Fatalf("plain = %q", got)
	}
	if !strings.Contains(buf.String(), "\x1b[") {
		t.Fatal("error text should be styled")
	}
}

func TestOpenSurface(t *testing.T) {
	s, closeFn, err := openSurface("")
	if err != nil || s == nil {
		t.Fatalf("memory surface: %v", err)
	}
	closeFn()

	path := filepath.Join(t.TempDir(), "series.jsonl")
	s, closeFn, err = openSurface(path)
	if err != nil {
		t.Fatalf("json surface: %v", err)
	}
	closeFn()
	select {
	case <-s.Closed():
	default:
		t.Fatal("surface not closed")
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("output file not created: %v", err)
	}
}
