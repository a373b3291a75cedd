package graphics

import (
	"bytes"
	"image"
	"log/slog"
	"strings"
	"testing"

	"github.com/zurustar/kame/pkg/command"
	"github.com/zurustar/kame/pkg/logger"
)

func TestRecorder_LogsOperations(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := NewRecorder(WithRecorderLogger(log))

	r.Render(command.Primitive{Kind: command.PrimitiveCircle, Points: []image.Point{{3, 4}}, Radius: 7}, filled(blue))
	r.Clear()

	out := buf.String()
	for _, want := range []string{"[Headless] Render", "kind=circle", "radius=7", "fill=rgb(0,0,255)", "[Headless] Clear"} {
		if !strings.Contains(out, want) {
			t.Errorf("log should contain %q, got %q", want, out)
		}
	}
	if r.Total() != 2 {
		t.Errorf("expected 2 operations, got %d", r.Total())
	}
}

func TestRecorder_WithLogOperationsDisabled(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	r := NewRecorder(
		WithRecorderLogger(log),
		WithLogOperations(false),
	)
	r.Clear()

	if buf.Len() != 0 {
		t.Errorf("nothing should be logged, got %q", buf.String())
	}
	if r.Total() != 1 {
		t.Errorf("operations should still be counted, got %d", r.Total())
	}
}

func TestRecorder_DefaultLogger(t *testing.T) {
	r := NewRecorder(WithLogOperations(false))
	if r.log != logger.GetLogger() {
		t.Error("recorder should fall back to the package logger")
	}
}
