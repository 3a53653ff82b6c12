package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   LogLevel
		want zapcore.Level
	}{
		{DebugLevel, zapcore.DebugLevel},
		{WarnLevel, zapcore.WarnLevel},
		{ErrorLevel, zapcore.ErrorLevel},
		{InfoLevel, zapcore.InfoLevel},
		{"verbose", zapcore.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInit_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "pcalc.log")
	if err := Init(false, WarnLevel, path); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { _ = Init(false, InfoLevel, "") })

	Get().Info("dropped")
	Get().Warn("kept")
	_ = Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "dropped") || !strings.Contains(string(data), "kept") {
		t.Fatalf("log contents = %q", data)
	}
}

func TestInit_EmptyPathIsNop(t *testing.T) {
	if err := Init(true, DebugLevel, ""); err != nil {
		t.Fatal(err)
	}
	Get().Error("nowhere")
	if Get().Core().Enabled(zapcore.ErrorLevel) {
		t.Fatal("nop logger reports enabled")
	}
}
