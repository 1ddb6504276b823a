package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		emit  func(*log.Logger)
		want  bool
	}{
		{"info at info", log.InfoLevel, func(l *log.Logger) { l.Info("slot placed") }, true},
		{"debug at info", log.InfoLevel, func(l *log.Logger) { l.Debug("slot placed") }, false},
		{"debug at debug", log.DebugLevel, func(l *log.Logger) { l.Debug("slot placed") }, true},
		{"warn at info", log.InfoLevel, func(l *log.Logger) { l.Warn("slot placed") }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))
			if got := strings.Contains(buf.String(), "slot placed"); got != tt.want {
				t.Errorf("logged = %v, want %v (output %q)", got, tt.want, buf.String())
			}
		})
	}
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, LogInfo)
	c.Logger.Debug("hidden")
	c.SetLogLevel(LogDebug)
	c.Logger.Debug("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Error("debug line logged at info level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("debug line missing after SetLogLevel(LogDebug)")
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.InfoLevel)).done("Computed 15 slots")

	out := buf.String()
	if !strings.Contains(out, "Computed 15 slots (") {
		t.Errorf("progress output missing message and duration: %q", out)
	}
	if !strings.Contains(out, "s)") {
		t.Errorf("progress output missing duration unit: %q", out)
	}
}

func TestLoggerContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("empty context should yield log.Default()")
	}

	var buf bytes.Buffer
	l := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), l)
	if loggerFromContext(ctx) != l {
		t.Error("loggerFromContext did not return the attached logger")
	}
}
