// Package report renders the end-of-run summary printed to stdout.
package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/abelbrown/newsagent/internal/agent"
	"github.com/abelbrown/newsagent/internal/classify"
)

var (
	colorPrimary = lipgloss.Color("62")  // Purple
	colorMuted   = lipgloss.Color("240") // Darker gray
	colorAlert   = lipgloss.Color("204") // Red
	colorSuccess = lipgloss.Color("78")  // Green
)

// Headline style for the "Wrote N items" line.
var Headline = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorSuccess)

// Warning style for failed feed lines.
var Warning = lipgloss.NewStyle().
	Foreground(colorAlert)

var headerStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(colorPrimary).
	Padding(0, 1)

var cellStyle = lipgloss.NewStyle().
	Padding(0, 1)

// Render formats a run result. Colors are dropped automatically when the
// output is not a terminal.
func Render(res *agent.Result) string {
	var b strings.Builder

	b.WriteString(Headline.Render(fmt.Sprintf("Wrote %d items to %s", len(res.Entries), res.OutputPath)))
	b.WriteString("\n")

	if len(res.Entries) > 0 {
		b.WriteString(breakdown(res))
		b.WriteString("\n")
	}

	failed := res.Failures()
	if len(failed) > 0 {
		b.WriteString(Warning.Render(fmt.Sprintf("%d of %d feeds failed", len(failed), len(res.Feeds))))
		b.WriteString("\n")
	}
	return b.String()
}

// breakdown tabulates entries by category and urgency.
func breakdown(res *agent.Result) string {
	counts := make(map[string]map[string]int)
	for _, e := range res.Entries {
		if counts[e.Category] == nil {
			counts[e.Category] = make(map[string]int)
		}
		counts[e.Category][e.Urgency]++
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorMuted)).
		Headers("Category", classify.UrgencyHigh, classify.UrgencyMedium, "Total").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, cat := range classify.Categories() {
		c, ok := counts[cat]
		if !ok {
			continue
		}
		high, medium := c[classify.UrgencyHigh], c[classify.UrgencyMedium]
		t.Row(cat, strconv.Itoa(high), strconv.Itoa(medium), strconv.Itoa(high+medium))
	}
	return t.Render()
}
