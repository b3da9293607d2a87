// Package output renders routines, stats and the timeline for the terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// ColorMode represents the color output mode.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

const defaultWidth = 100

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorActive  = lipgloss.Color("#10B981")
	colorMuted   = lipgloss.Color("#6B7280")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")

	styleHeader   = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	styleActive   = lipgloss.NewStyle().Foreground(colorActive)
	styleInactive = lipgloss.NewStyle().Foreground(colorMuted)
	styleNow      = lipgloss.NewStyle().Bold(true).Foreground(colorWarning)
	styleError    = lipgloss.NewStyle().Foreground(colorError)
)

// Printer writes human readable or JSON output to a single writer.
type Printer struct {
	w     io.Writer
	color bool
	tty   bool
	width int
}

// NewPrinter inspects w to decide on color and the available width.
func NewPrinter(w io.Writer, mode ColorMode) *Printer {
	p := &Printer{w: w, width: defaultWidth}
	if f, ok := w.(*os.File); ok {
		fd := f.Fd()
		p.tty = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		if p.tty {
			if cols, _, err := term.GetSize(int(fd)); err == nil && cols > 40 {
				p.width = cols
			}
		}
	}
	switch mode {
	case ColorAlways:
		p.color = true
	case ColorNever:
		p.color = false
	default:
		p.color = p.tty
	}
	return p
}

// WithWidth fixes the rendering width, mostly for tests.
func (p *Printer) WithWidth(cols int) *Printer {
	p.width = cols
	return p
}

// IsTerminal reports whether output goes to an interactive terminal.
func (p *Printer) IsTerminal() bool { return p.tty }

func (p *Printer) style(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

func (p *Printer) Println(a ...interface{}) {
	fmt.Fprintln(p.w, a...)
}

func (p *Printer) Printf(format string, a ...interface{}) {
	fmt.Fprintf(p.w, format, a...)
}

// Success prints a confirmation line.
func (p *Printer) Success(text string) {
	p.Println(p.style(styleActive, "✓ "+text))
}

// Error prints an error line.
func (p *Printer) Error(text string) {
	p.Println(p.style(styleError, "✗ "+text))
}

// ClearScreen moves the cursor home and clears; it is a no-op off-terminal.
func (p *Printer) ClearScreen() {
	if p.tty {
		fmt.Fprint(p.w, "\033[H\033[2J")
	}
}

// JSON outputs data as indented JSON.
func (p *Printer) JSON(v interface{}) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
