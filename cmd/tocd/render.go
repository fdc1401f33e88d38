package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sectiontoc/internal/service"
	"sectiontoc/internal/toc"
)

var (
	// headerStyle for the page list line
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("81"))

	// titleStyle for top-level entries
	titleStyle = lipgloss.NewStyle().
			Bold(true)

	// dimStyle for anchors and tree guides
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// emptyStyle for the no-entries notice
	emptyStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("220"))
)

// renderTree renders the entries as an indented list, one line per entry.
func renderTree(resp service.TocResponse) string {
	var b strings.Builder

	ids := make([]string, len(resp.PageIDs))
	for i, id := range resp.PageIDs {
		ids[i] = fmt.Sprint(id)
	}
	fmt.Fprintf(&b, "%s %s\n", headerStyle.Render("Pages:"), strings.Join(ids, ", "))

	if len(resp.Entries) == 0 {
		b.WriteString(emptyStyle.Render("(no entries)"))
		b.WriteString("\n")
		return b.String()
	}

	for _, e := range resp.Entries {
		b.WriteString(renderEntry(e))
		b.WriteString("\n")
	}
	return b.String()
}

func renderEntry(e toc.Entry) string {
	indent := e.Depth - toc.FirstLevel
	if indent < 0 {
		indent = 0
	}
	guide := dimStyle.Render(strings.Repeat("│ ", indent) + "• ")

	title := e.Title
	if title == "" {
		title = "(untitled)"
	}
	if !e.IsNested() {
		title = titleStyle.Render(title)
	}
	return guide + title + " " + dimStyle.Render(e.Anchor)
}
