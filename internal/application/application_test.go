package application

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/eugenenazirov/replace-tokens/internal/config"
	"github.com/eugenenazirov/replace-tokens/internal/input"
)

type staticSource struct {
	cfg config.Config
	err error
}

func (s staticSource) Load() (config.Config, error) {
	return s.cfg, s.err
}

type staticFinder struct {
	paths []string
	err   error

	gotPatterns string
	gotFollow   bool
}

func (f *staticFinder) Find(patterns string, followSymlinks bool) ([]string, error) {
	f.gotPatterns = patterns
	f.gotFollow = followSymlinks
	return f.paths, f.err
}

func newObservedLogger() (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core), logs
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func baseConfig() config.Config {
	return config.Config{
		Target:              "*.txt",
		Encoding:            input.EncodingUTF8,
		FollowSymbolicLinks: true,
		TokenPrefix:         "#{",
		TokenSuffix:         "}#",
	}
}

func TestRunReplacesTokens(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "first.txt", "Hello #{ name }#, #{NAME}#!")
	second := writeFile(t, dir, "second.txt", "env=#{env}# region=#{region}#")

	cfg := baseConfig()
	cfg.FollowSymbolicLinks = false
	cfg.VariablesJSON = `{"name": "json", "env": "dev"}`
	cfg.VariablesSecretJSON = `{"env": "prod"}`
	cfg.Variables = []string{"- name: world", "- region: eu-west-1", "broken line", "- : empty"}

	finder := &staticFinder{paths: []string{first, second}}
	logger, logs := newObservedLogger()
	app := New(staticSource{cfg: cfg}, finder, logger)

	if got := app.Run(context.Background()); got != OutcomeReplaced {
		t.Fatalf("unexpected outcome: %s", got)
	}

	if finder.gotPatterns != "*.txt" || finder.gotFollow {
		t.Fatalf("finder called with %q, %v", finder.gotPatterns, finder.gotFollow)
	}
	if got, want := readFile(t, first), "Hello world, world!"; got != want {
		t.Fatalf("first file = %q, want %q", got, want)
	}
	if got, want := readFile(t, second), "env=prod region=eu-west-1"; got != want {
		t.Fatalf("second file = %q, want %q", got, want)
	}

	if n := logs.FilterMessage(msgInputParsed).Len(); n != 1 {
		t.Fatalf("expected one %q entry, got %d", msgInputParsed, n)
	}
	done := logs.FilterMessage(msgAllReplaced).All()
	if len(done) != 1 {
		t.Fatalf("expected one %q entry, got %d", msgAllReplaced, len(done))
	}
	if got := done[0].ContextMap()["replacements"]; got != int64(4) {
		t.Fatalf("unexpected replacement count: %v", got)
	}

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	if len(warnings) != 2 {
		t.Fatalf("expected 2 warnings, got %d", len(warnings))
	}
	if want := "Variable 'broken line' is not valid and will be skipped. Example: - VARIABLE2: YOUR_VALUE"; warnings[0].Message != want {
		t.Fatalf("unexpected warning: %q", warnings[0].Message)
	}
	if want := "Invalid token key in variable '- : empty'"; warnings[1].Message != want {
		t.Fatalf("unexpected warning: %q", warnings[1].Message)
	}

	if summary := app.Recorder().Summary(); summary.Files != 2 || summary.Replacements != 4 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRunNoVariables(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "file.txt", "#{name}#")

	logger, logs := newObservedLogger()
	app := New(staticSource{cfg: baseConfig()}, &staticFinder{paths: []string{path}}, logger)

	if got := app.Run(context.Background()); got != OutcomeNoWork {
		t.Fatalf("unexpected outcome: %s", got)
	}

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	if len(warnings) != 1 || warnings[0].Message != msgNoReplacement {
		t.Fatalf("expected a single no-data warning, got %v", warnings)
	}
	if got := readFile(t, path); got != "#{name}#" {
		t.Fatalf("file should be untouched, got %q", got)
	}
	if n := logs.FilterLevelExact(zapcore.ErrorLevel).Len(); n != 0 {
		t.Fatalf("expected no errors, got %d", n)
	}
}

func TestRunFailures(t *testing.T) {
	withJSON := func(raw string) config.Config {
		cfg := baseConfig()
		cfg.VariablesJSON = raw
		return cfg
	}

	tests := []struct {
		name    string
		source  staticSource
		finder  *staticFinder
		wantMsg string
	}{
		{
			name:    "config error",
			source:  staticSource{err: input.NewError(input.Target, "input required and not supplied")},
			finder:  &staticFinder{},
			wantMsg: "Input 'target': input required and not supplied",
		},
		{
			name:    "finder error",
			source:  staticSource{cfg: baseConfig()},
			finder:  &staticFinder{err: errors.New("syntax error in pattern")},
			wantMsg: "syntax error in pattern",
		},
		{
			name:    "no files",
			source:  staticSource{cfg: baseConfig()},
			finder:  &staticFinder{},
			wantMsg: "Input 'target': no files were found",
		},
		{
			name:    "invalid JSON",
			source:  staticSource{cfg: withJSON("{")},
			finder:  &staticFinder{paths: []string{"unused.txt"}},
			wantMsg: "Input 'variables-json': JSON is invalid",
		},
		{
			name:    "JSON not an object",
			source:  staticSource{cfg: withJSON("[1, 2]")},
			finder:  &staticFinder{paths: []string{"unused.txt"}},
			wantMsg: "Input 'variables-json': JSON is valid, but value is not an object",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := newObservedLogger()
			app := New(tt.source, tt.finder, logger)

			if got := app.Run(context.Background()); got != OutcomeFailed {
				t.Fatalf("unexpected outcome: %s", got)
			}

			errs := logs.FilterLevelExact(zapcore.ErrorLevel).All()
			if len(errs) != 1 {
				t.Fatalf("expected one error entry, got %d", len(errs))
			}
			if errs[0].Message != tt.wantMsg {
				t.Fatalf("unexpected error message: %q, want %q", errs[0].Message, tt.wantMsg)
			}
			if n := logs.FilterMessage(msgInputParsed).Len(); n != 0 {
				t.Fatalf("input should not be reported as parsed")
			}
		})
	}
}

func TestRunRewriteFailureKeepsOtherFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.txt", "#{name}#")
	missing := filepath.Join(dir, "missing.txt")

	cfg := baseConfig()
	cfg.Variables = []string{"- name: value"}

	logger, logs := newObservedLogger()
	app := New(staticSource{cfg: cfg}, &staticFinder{paths: []string{missing, good}}, logger)

	if got := app.Run(context.Background()); got != OutcomeFailed {
		t.Fatalf("unexpected outcome: %s", got)
	}
	if got := readFile(t, good); got != "value" {
		t.Fatalf("good file = %q, want %q", got, "value")
	}
	if n := logs.FilterLevelExact(zapcore.ErrorLevel).Len(); n != 1 {
		t.Fatalf("expected one error entry, got %d", n)
	}
	if n := logs.FilterMessage(msgAllReplaced).Len(); n != 0 {
		t.Fatalf("did not expect completion entry")
	}
}

func TestOutcomeString(t *testing.T) {
	cases := map[Outcome]string{
		OutcomeReplaced: "replaced",
		OutcomeNoWork:   "no-work",
		OutcomeFailed:   "failed",
		Outcome(42):     "unknown",
	}
	for outcome, want := range cases {
		if got := outcome.String(); got != want {
			t.Fatalf("Outcome(%d).String() = %q, want %q", int(outcome), got, want)
		}
	}
}
