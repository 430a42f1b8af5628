package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	accentFg  = lipgloss.Color("#7C3AED")
	dimFg     = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	errFg     = lipgloss.Color("#EF4444")
	warnFg    = lipgloss.Color("#F59E0B")
	borderCol = lipgloss.Color("#243141")

	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(dimFg)
	errStyle   = lipgloss.NewStyle().Foreground(errFg)
	warnStyle  = lipgloss.NewStyle().Foreground(warnFg)
	cellStyle  = lipgloss.NewStyle().Width(12)
	numStyle   = lipgloss.NewStyle().Width(8).Align(lipgloss.Right)
)

// renderSummary lays out an evaluation result as a boxed table of layers.
func renderSummary(r EvalResult) string {
	var b strings.Builder

	if r.Design != "" {
		b.WriteString(titleStyle.Render("hitbox") + " " + dimStyle.Render(r.Design) + "\n")
	}
	for _, e := range r.Errors {
		b.WriteString(errStyle.Render(fmtEval("error", e)) + "\n")
	}
	for _, w := range r.Warnings {
		b.WriteString(warnStyle.Render(fmtEval("warning", w)) + "\n")
	}

	if len(r.Layers) > 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top,
			cellStyle.Render("layer"), numStyle.Render("mm"), numStyle.Render("shapes"))) + "\n")
		total := 0.0
		for _, l := range r.Layers {
			mm := ""
			if l.Structural {
				mm = fmt.Sprintf("%.0f", l.Thickness)
				total += l.Thickness
			}
			b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
				cellStyle.Render(l.Name), numStyle.Render(mm), numStyle.Render(fmt.Sprint(l.Shapes))) + "\n")
		}
		b.WriteString(dimStyle.Render(fmt.Sprintf("stack height %.0f mm", total)))
	}

	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func fmtEval(kind string, e EvalErrorData) string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: line %d: %s", kind, e.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", kind, e.Message)
}
