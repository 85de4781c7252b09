package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// PrettyLogger renders schema generation outcomes for a person at a terminal.
// Structured logs stay on the component loggers.
type PrettyLogger struct {
	writer io.Writer
	styles PrettyStyles
}

// PrettyStyles holds the lipgloss styles used for each kind of line.
type PrettyStyles struct {
	Pass  lipgloss.Style
	Fail  lipgloss.Style
	Label lipgloss.Style
	Path  lipgloss.Style
	Count lipgloss.Style
}

// DefaultPrettyStyles returns the default palette.
func DefaultPrettyStyles() PrettyStyles {
	return PrettyStyles{
		Pass:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Fail:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Label: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Path:  lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Italic(true),
		Count: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
	}
}

// NewPrettyLogger creates a pretty logger writing to stderr
func NewPrettyLogger() *PrettyLogger {
	return &PrettyLogger{
		writer: os.Stderr,
		styles: DefaultPrettyStyles(),
	}
}

// WithWriter sets a custom writer for pretty output
func (p *PrettyLogger) WithWriter(w io.Writer) *PrettyLogger {
	p.writer = w
	return p
}

// Source prints an input file, such as the catalog or a watched config,
// under a short label.
func (p *PrettyLogger) Source(label, path string) {
	fmt.Fprintf(p.writer, "%s: %s\n",
		p.styles.Label.Render(label),
		p.styles.Path.Render(path))
}

// Verdict prints the outcome of checking a batch of serializers. err is the
// first failure, nil when every schema generated and validated.
func (p *PrettyLogger) Verdict(serializers int, err error) {
	count := p.styles.Count.Render(fmt.Sprintf("%d", serializers))
	if err == nil {
		fmt.Fprintf(p.writer, "%s %s serializer(s) produce valid schemas\n",
			p.styles.Pass.Render("✓"), count)
		return
	}
	fmt.Fprintf(p.writer, "%s %s serializer(s) checked: %s\n",
		p.styles.Fail.Render("✗"), count, p.styles.Fail.Render(err.Error()))
}

// StepFailed reports a stage of regeneration (selection, reload, write)
// that did not complete.
func (p *PrettyLogger) StepFailed(step string, err error) {
	fmt.Fprintf(p.writer, "%s %s failed", p.styles.Fail.Render("✗"), p.styles.Fail.Render(step))
	if err != nil {
		fmt.Fprintf(p.writer, ": %s", err.Error())
	}
	fmt.Fprintln(p.writer)
}
