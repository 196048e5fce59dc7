package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.detail.Width = m.width - m.width/2 - 4
		m.detail.Height = m.treeHeight()
		m.syncDetail()
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit

	case key.Matches(msg, k.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, k.Tab):
		if m.focused == TreePane {
			m.focused = DetailPane
		} else {
			m.focused = TreePane
		}
		return m, nil
	}

	if m.focused == DetailPane {
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd
	}
	return m.handleTreeKey(msg)
}

func (m Model) handleTreeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	switch {
	case key.Matches(msg, k.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.syncDetail()

	case key.Matches(msg, k.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
		m.syncDetail()

	case key.Matches(msg, k.PageUp):
		m.cursor -= m.treeHeight()
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.syncDetail()

	case key.Matches(msg, k.PageDown):
		m.cursor += m.treeHeight()
		if m.cursor > len(m.rows)-1 {
			m.cursor = len(m.rows) - 1
		}
		m.syncDetail()

	case key.Matches(msg, k.Home):
		m.cursor = 0
		m.syncDetail()

	case key.Matches(msg, k.End):
		m.cursor = len(m.rows) - 1
		m.syncDetail()

	case key.Matches(msg, k.Right) || key.Matches(msg, k.Enter):
		if v := m.selected(); v != nil && len(v.children) > 0 {
			v.expanded = true
			m.rebuildRows()
			m.syncDetail()
		}

	case key.Matches(msg, k.Left):
		if v := m.selected(); v != nil {
			if v.expanded && len(v.children) > 0 {
				v.expanded = false
				m.rebuildRows()
			} else {
				m.jumpToParent()
			}
			m.syncDetail()
		}
	}
	return m, nil
}

// jumpToParent moves the cursor to the row currently holding the selected
// node's parent.
func (m *Model) jumpToParent() {
	cur := m.selected()
	if cur == nil || cur.node.Parent == nil {
		return
	}
	for i, row := range m.rows {
		if row.view.node == cur.node.Parent {
			m.cursor = i
			return
		}
	}
}

func (m Model) treeHeight() int {
	h := m.height - 6 // header + status + borders
	if h < 1 {
		return 1
	}
	return h
}
