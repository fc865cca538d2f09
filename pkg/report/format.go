package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// 🎨 Display configuration
const (
	ruleIndent = 2  // spaces to indent rule entries
	idWidth    = 30 // base width for rule ids
)

// 🖨️ Formatter renders a report for human eyes
type Formatter struct {
	colored bool
}

// 🏭 NewFormatter creates a formatter; colored controls ANSI output
func NewFormatter(colored bool) *Formatter {
	return &Formatter{colored: colored}
}

// 📝 FormatRuleCount formats one rule's result line
func (f *Formatter) FormatRuleCount(id string, count int) string {
	var symbol string
	var attr color.Attribute
	switch {
	case count > 0:
		symbol = "✓"
		attr = color.FgGreen
	default:
		symbol = "-"
		attr = color.FgYellow
	}

	noun := "changes"
	if count == 1 {
		noun = "change"
	}
	line := fmt.Sprintf("%s %-*s %d %s", symbol, idWidth, id, count, noun)
	if !f.colored {
		return strings.Repeat(" ", ruleIndent) + line
	}
	return strings.Repeat(" ", ruleIndent) + color.New(attr).Sprint(line)
}

// 📝 FormatAdvisory formats a manual follow-up note
func (f *Formatter) FormatAdvisory(msg string) string {
	line := fmt.Sprintf("⚠ manual follow-up: %s", msg)
	if !f.colored {
		return strings.Repeat(" ", ruleIndent) + line
	}
	return strings.Repeat(" ", ruleIndent) + color.New(color.FgYellow).Sprint(line)
}

// 📝 FormatSummary formats the closing summary line
func (f *Formatter) FormatSummary(r *Report) string {
	switch {
	case r.Skipped:
		return fmt.Sprintf("⏭ %s already transformed, nothing to do", r.Target)
	case r.DryRun:
		return fmt.Sprintf("🔍 dry run: %d changes would be applied to %s", r.TotalChanges(), r.Target)
	default:
		return fmt.Sprintf("✅ %d changes applied to %s (backup at %s)", r.TotalChanges(), r.Target, r.BackupPath)
	}
}

// 🖨️ Render writes the full report to w
func (f *Formatter) Render(w io.Writer, r *Report) error {
	for _, c := range r.Counts {
		if _, err := fmt.Fprintln(w, f.FormatRuleCount(c.ID, c.Count)); err != nil {
			return err
		}
	}
	for _, adv := range r.Advisories {
		if _, err := fmt.Fprintln(w, f.FormatAdvisory(adv)); err != nil {
			return err
		}
	}
	if r.DryRun && r.Diff != "" {
		if _, err := fmt.Fprintln(w, r.Diff); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, f.FormatSummary(r))
	return err
}
