package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/prabalesh/hwinfo/internal/models"
)

// Print writes the report to w as styled text, one block per section.
func Print(w io.Writer, report *models.Report) error {
	_, err := fmt.Fprintln(w, RenderReport(report))
	return err
}

func RenderReport(report *models.Report) string {
	blocks := make([]string, 0, len(report.Names()))
	for _, name := range report.Names() {
		blocks = append(blocks, RenderSection(name, report.Section(name)))
	}
	return strings.Join(blocks, "\n\n")
}

func RenderSection(name string, s *models.Section) string {
	lines := []string{HeaderStyle.Render(name)}
	if s == nil || s.Len() == 0 {
		lines = append(lines, NullStyle.Render("(none)"))
	} else {
		lines = append(lines, renderEntries(s, 0)...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderEntries(s *models.Section, depth int) []string {
	pad := strings.Repeat("  ", depth)

	var lines []string
	for _, e := range s.Entries() {
		switch v := e.Value.(type) {
		case *models.Section:
			lines = append(lines, pad+SubHeaderStyle.Render(e.Key))
			if v.Len() == 0 {
				lines = append(lines, pad+"  "+NullStyle.Render("(empty)"))
				continue
			}
			lines = append(lines, renderEntries(v, depth+1)...)
		default:
			if e.Key == models.ErrorKey {
				lines = append(lines, pad+ErrorStyle.Render(fmt.Sprintf("%s: %v", e.Key, v)))
				continue
			}
			lines = append(lines, pad+LabelStyle.Render(e.Key+":")+" "+formatValue(v))
		}
	}
	return lines
}

func formatValue(v any) string {
	if v == nil {
		return NullStyle.Render("n/a")
	}
	return ValueStyle.Render(fmt.Sprint(v))
}
