// Package report renders per-period strategy output for the terminal.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/argo-trend/internal/strategy"
	"github.com/rxtech-lab/argo-trend/internal/types"
)

const timeLayout = "2006-01-02 15:04"

// Renderer styles report columns by tag. Bullish is green, bearish red and neutral grey.
type Renderer struct {
	out    io.Writer
	styles map[types.Tag]lipgloss.Style
	signal map[types.SignalType]lipgloss.Style
	title  lipgloss.Style
}

// NewRenderer creates a renderer writing to out. Colors are dropped when out is not a terminal.
func NewRenderer(out io.Writer) *Renderer {
	r := lipgloss.NewRenderer(out)

	return &Renderer{
		out: out,
		styles: map[types.Tag]lipgloss.Style{
			types.TagBullish: r.NewStyle().Foreground(lipgloss.Color("2")),
			types.TagBearish: r.NewStyle().Foreground(lipgloss.Color("1")),
			types.TagNeutral: r.NewStyle().Foreground(lipgloss.Color("8")),
		},
		signal: map[types.SignalType]lipgloss.Style{
			types.SignalTypeBuy:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("2")),
			types.SignalTypeSell: r.NewStyle().Bold(true).Foreground(lipgloss.Color("1")),
		},
		title: r.NewStyle().Bold(true),
	}
}

// Column renders one report column.
func (r *Renderer) Column(column strategy.Column) string {
	style, ok := r.styles[column.Tag]
	if !ok {
		return column.Text
	}

	return style.Render(column.Text)
}

// Line renders one period: time, close, report columns, trend and signal when one was emitted.
func (r *Renderer) Line(result strategy.Result) string {
	parts := []string{
		result.Record.Time.UTC().Format(timeLayout),
		fmt.Sprintf("%12.4f", result.Record.Close),
	}

	for _, column := range result.Columns {
		parts = append(parts, r.Column(column))
	}

	parts = append(parts, fmt.Sprintf("%-10s", result.Trend.String()))

	if result.Decision.Signal.IsAction() {
		parts = append(parts, r.signal[result.Decision.Signal].Render(strings.ToUpper(result.Decision.Signal.String())))
	}

	return strings.TrimRight(strings.Join(parts, " "), " ")
}

// Print writes Line(result) and a newline.
func (r *Renderer) Print(result strategy.Result) error {
	_, err := fmt.Fprintln(r.out, r.Line(result))

	return err
}

// Header renders a bold title line.
func (r *Renderer) Header(text string) string {
	return r.title.Render(text)
}
