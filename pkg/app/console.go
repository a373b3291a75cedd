package app

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/zurustar/kame/pkg/interp"
)

var (
	styleFatal = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))

	styleWarn = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	styleLine = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99"))

	styleSource = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// ConsoleSink はスクリプトのエラーを色付きで端末に表示する
type ConsoleSink struct {
	w  io.Writer
	mu sync.Mutex
}

// NewConsoleSink は新しいConsoleSinkを作成する
func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{w: w}
}

// Report はエラーを1行で表示する
func (s *ConsoleSink) Report(err *interp.ScriptError) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, formatReport(err))
}

func formatReport(err *interp.ScriptError) string {
	label := styleWarn
	if err.IsFatal() {
		label = styleFatal
	}

	out := label.Render(fmt.Sprintf("[%s]", err.Kind))
	if err.Line > 0 {
		out += " " + styleLine.Render(fmt.Sprintf("line %d:", err.Line))
	}
	out += " " + err.Message
	if err.Text != "" {
		out += " " + styleSource.Render(fmt.Sprintf("%q", err.Text))
	}
	return out
}
