package style

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/retrokit/retrogen/pkg/report"
)

// StatusStyle returns the appropriate pterm style for an outcome status
func StatusStyle(status report.Status) *pterm.Style {
	switch status {
	case report.StatusCreated:
		return pterm.NewStyle(pterm.FgGreen)
	case report.StatusSkipped:
		return pterm.NewStyle(pterm.FgGray)
	case report.StatusWarned:
		return pterm.NewStyle(pterm.FgYellow)
	case report.StatusFailed:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgDefault)
	}
}

// StatusIndicator returns the single-character marker for an outcome status
func StatusIndicator(status report.Status) string {
	switch status {
	case report.StatusCreated:
		return SuccessIndicator
	case report.StatusSkipped:
		return SkippedIndicator
	case report.StatusWarned:
		return WarningIndicator
	case report.StatusFailed:
		return ErrorIndicator
	default:
		return " "
	}
}

// RenderOutcome renders a single outcome line
func RenderOutcome(o report.Outcome) string {
	label := StatusStyle(o.Status).Sprint(fmt.Sprintf("%-8s", string(o.Status)))

	line := fmt.Sprintf("  %s %s : %s", StatusIndicator(o.Status), label, o.Item)
	if o.Reason != "" {
		line += " " + MutedStyle.Render("("+o.Reason+")")
	}
	return line
}

// RenderReport renders every outcome of a run followed by a tally line
func RenderReport(r *report.Report) string {
	var b strings.Builder

	for _, o := range r.Outcomes {
		b.WriteString(RenderOutcome(o) + "\n")
	}
	b.WriteString("\n" + RenderSummary(r))
	return b.String()
}

// RenderSummary renders the one-line tally for a run
func RenderSummary(r *report.Report) string {
	parts := []string{
		fmt.Sprintf("%d created", r.Count(report.StatusCreated)),
		fmt.Sprintf("%d skipped", r.Count(report.StatusSkipped)),
	}
	if n := r.Count(report.StatusWarned); n > 0 {
		parts = append(parts, fmt.Sprintf("%d warnings", n))
	}
	if n := r.Count(report.StatusFailed); n > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", n))
	}

	summary := strings.Join(parts, ", ")
	if r.HasWarnings() {
		return WarningStyle.Render(summary)
	}
	return SuccessStyle.Render(summary)
}
