package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/esstools/essready/internal/validation"
)

const roundTo = time.Millisecond

type styles struct {
	title    lipgloss.Style
	category lipgloss.Style
	pass     lipgloss.Style
	fail     lipgloss.Style
	warning  lipgloss.Style
	info     lipgloss.Style
	label    lipgloss.Style
}

func newStyles(noColor bool) styles {
	if noColor {
		plain := lipgloss.NewStyle()
		return styles{plain, plain, plain, plain, plain, plain, plain}
	}
	return styles{
		title:    lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true),
		category: lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		pass:     lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		fail:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
		warning:  lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		info:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		label:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

func (s styles) statusStyle(status validation.Status) lipgloss.Style {
	switch status {
	case validation.StatusPass:
		return s.pass
	case validation.StatusFail:
		return s.fail
	case validation.StatusWarning:
		return s.warning
	default:
		return s.info
	}
}

// Render produces the terminal report: records grouped by category in first
// appearance order, then a summary footer.
func Render(outcome *validation.Outcome, noColor bool) string {
	st := newStyles(noColor)
	var b strings.Builder

	b.WriteString(st.title.Render("ESS Upgrade Readiness Report"))
	b.WriteString("\n")
	b.WriteString(st.label.Render(fmt.Sprintf("Run %s, %d instance(s), %s",
		outcome.RunID, outcome.Instances,
		outcome.CompletedAt.Sub(outcome.StartedAt).Round(roundTo))))
	b.WriteString("\n\n")

	for _, category := range categoryOrder(outcome.Records) {
		b.WriteString(st.category.Render(category))
		b.WriteString("\n")
		for _, rec := range outcome.Records {
			if rec.Category != category {
				continue
			}
			b.WriteString(fmt.Sprintf("  %s  %s: %s\n",
				st.statusStyle(rec.Status).Render(fmt.Sprintf("%-7s", rec.Status)),
				rec.Check, rec.Message))
		}
		b.WriteString("\n")
	}

	sum := outcome.Summary
	b.WriteString(st.title.Render("Summary"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %d check(s): %s passed, %s failed, %s warning(s), %d informational\n",
		sum.Total,
		st.pass.Render(fmt.Sprintf("%d", sum.Pass)),
		st.fail.Render(fmt.Sprintf("%d", sum.Fail)),
		st.warning.Render(fmt.Sprintf("%d", sum.Warning)),
		sum.Info))

	if sum.Fail > 0 {
		b.WriteString(st.fail.Render("  Not ready for upgrade: resolve the failed checks above."))
		b.WriteString("\n")
	} else if sum.Warning > 0 {
		b.WriteString(st.warning.Render("  Ready with warnings: review the warnings above."))
		b.WriteString("\n")
	} else {
		b.WriteString(st.pass.Render("  Ready for upgrade."))
		b.WriteString("\n")
	}

	return b.String()
}

// categoryOrder returns the distinct categories in record order, preserving
// the routine sequence.
func categoryOrder(records []validation.Record) []string {
	seen := map[string]bool{}
	var order []string
	for _, rec := range records {
		if !seen[rec.Category] {
			seen[rec.Category] = true
			order = append(order, rec.Category)
		}
	}
	return order
}
