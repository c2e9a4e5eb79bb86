package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name      string
		opts      Options
		wantDebug bool
	}{
		{name: "console default", opts: Options{}},
		{name: "console debug", opts: Options{Debug: true, Format: FormatConsole}, wantDebug: true},
		{name: "json", opts: Options{Format: FormatJSON}},
		{name: "json debug", opts: Options{Debug: true, Format: FormatJSON}, wantDebug: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if logger == nil {
				t.Fatalf("expected logger instance")
			}
			if got := logger.Core().Enabled(zapcore.DebugLevel); got != tt.wantDebug {
				t.Fatalf("debug enabled = %v, want %v", got, tt.wantDebug)
			}
			if !logger.Core().Enabled(zapcore.InfoLevel) {
				t.Fatalf("expected info level to be enabled")
			}
			_ = logger.Sync()
		})
	}
}

func TestNewUnsupportedFormat(t *testing.T) {
	if _, err := New(Options{Format: "xml"}); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}
