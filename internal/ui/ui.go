package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Printer writes the launcher's human-readable progress lines.
type Printer struct {
	out io.Writer

	plain   lipgloss.Style
	success lipgloss.Style
	info    lipgloss.Style
	warn    lipgloss.Style
	failure lipgloss.Style
	dim     lipgloss.Style
}

// NewPrinter returns a Printer for w. Colors are only used when w is a
// terminal.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		out:     w,
		plain:   r.NewStyle(),
		success: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#00AA00", Dark: "#00FF00"}),
		info:    r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#00AAFF"}),
		warn:    r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#B58900", Dark: "#FFCC00"}),
		failure: r.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}),
		dim:     r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"}),
	}
}

// Println writes an unstyled line.
func (p *Printer) Println(msg string) {
	fmt.Fprintln(p.out, p.plain.Render(msg))
}

// Printf writes an unstyled formatted line.
func (p *Printer) Printf(format string, args ...any) {
	p.Println(fmt.Sprintf(format, args...))
}

func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.out, p.success.Render("✅ "+msg))
}

func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.out, p.info.Render("ℹ️  "+msg))
}

func (p *Printer) Warn(msg string) {
	fmt.Fprintln(p.out, p.warn.Render("⚠️  "+msg))
}

func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.out, p.failure.Render("❌ "+msg))
}

// Detail writes an indented, dimmed line under the previous message.
func (p *Printer) Detail(msg string) {
	fmt.Fprintln(p.out, p.dim.Render("   "+msg))
}
