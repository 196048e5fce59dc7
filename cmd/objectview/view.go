package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}

	header := headerStyle.Render(fmt.Sprintf("objectview — %s", m.path))

	treeWidth := m.width / 2
	detailWidth := m.width - treeWidth - 1
	paneHeight := m.treeHeight()
	if paneHeight < 1 {
		paneHeight = 1
	}

	treeStyle, detailStyle := paneStyle, paneStyle
	if m.focused == TreePane {
		treeStyle = activePaneStyle
	} else {
		detailStyle = activePaneStyle
	}

	tree := treeStyle.Width(treeWidth).Height(paneHeight).Render(m.renderTree(paneHeight))
	detail := detailStyle.Width(detailWidth).Height(paneHeight).Render(m.detail.View())

	body := lipgloss.JoinHorizontal(lipgloss.Top, tree, detail)
	status := statusStyle.Render("↑/↓ move · →/enter expand · ← collapse/parent · tab switch pane · ? help · q quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

func (m Model) renderTree(height int) string {
	var b strings.Builder
	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	end := start + height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	for i := start; i < end; i++ {
		row := m.rows[i]
		n := row.view.node
		marker := " "
		if len(row.view.children) > 0 {
			if row.view.expanded {
				marker = "-"
			} else {
				marker = "+"
			}
		}
		plain := fmt.Sprintf("%s%s %s: %s", strings.Repeat("  ", row.depth), marker, n.Info.Name, n.Info.Type)
		line := plain
		switch {
		case i == m.cursor:
			line = selectedRowStyle.Render(plain)
		case n.Info.IsDamaged:
			line = damagedRowStyle.Render(plain + " !")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// renderDetail formats one node's full detail as the detail pane's
// viewport content.
func renderDetail(v *nodeView) string {
	if v == nil {
		return "(no node selected)"
	}
	n := v.node

	var b strings.Builder
	fmt.Fprintf(&b, "Chain:    %s\n", n.IdentifierChain())
	fmt.Fprintf(&b, "Name:     %s\n", n.Info.Name)
	fmt.Fprintf(&b, "Type:     %s\n", n.Info.Type)
	fmt.Fprintf(&b, "Level:    %d\n", n.Info.Level)
	fmt.Fprintf(&b, "Children: %d\n", len(n.Children))
	fmt.Fprintf(&b, "Value:    %s\n", describeValue(n))
	if n.Info.IsDamaged {
		b.WriteString(damagedRowStyle.Render("DAMAGED\n"))
	}
	return b.String()
}

func (m Model) renderHelp() string {
	var b strings.Builder
	b.WriteString(helpTitleStyle.Render("objectview help"))
	b.WriteString("\n")
	rows := [][2]string{
		{"↑/k, ↓/j", "move selection (tree pane) or scroll (detail pane)"},
		{"→/l, enter", "expand node"},
		{"←/h", "collapse node, or jump to parent"},
		{"pgup/pgdown", "page the tree"},
		{"g / G", "jump to first / last row"},
		{"tab", "switch focused pane"},
		{"?", "toggle this help"},
		{"q, ctrl+c", "quit"},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "  %s  %s\n", helpKeyStyle.Render(r[0]), r[1])
	}
	b.WriteString("\npress any key to close")
	return b.String()
}
