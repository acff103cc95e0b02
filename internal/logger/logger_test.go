package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in     string
		want   zapcore.Level
		wantOK bool
	}{
		{"debug", zapcore.DebugLevel, true},
		{"info", zapcore.InfoLevel, true},
		{"warn", zapcore.WarnLevel, true},
		{"error", zapcore.ErrorLevel, true},
		{"verbose", zapcore.InfoLevel, false},
		{"", zapcore.InfoLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseLevel(tt.in)
			if ok != tt.wantOK {
				t.Errorf("ParseLevel(%q) ok = %v, want %v", tt.in, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewAndWith(t *testing.T) {
	log := New("error", false)
	if log == nil {
		t.Fatal("New() returned nil")
	}

	child := log.With(String("component", "test"))
	if child == nil {
		t.Fatal("With() returned nil")
	}

	// Below the configured level, must not panic.
	child.Info("ignored", Int("n", 1), Bool("ok", true))
}
