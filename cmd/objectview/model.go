package main

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// Pane identifies which half of the split view has focus.
type Pane int

const (
	TreePane Pane = iota
	DetailPane
)

// Model is objectview's whole application state (two-pane tree/detail
// browser): the wrapped IST, the cursor position in the flattened visible
// row list, and a viewport for scrolling long detail content. There is no
// async loading or reader lifecycle — the whole stream is parsed once in
// main before the program starts.
type Model struct {
	path string
	root *nodeView
	keys KeyMap

	cursor int
	rows   []visibleRow

	detail viewport.Model

	focused Pane
	width   int
	height  int

	showHelp bool
}

// NewModel builds the initial model from an already-parsed tree.
func NewModel(path string, root *nodeView) Model {
	m := Model{
		path:    path,
		root:    root,
		keys:    DefaultKeyMap(),
		focused: TreePane,
		detail:  viewport.New(0, 0),
	}
	m.rebuildRows()
	m.syncDetail()
	return m
}

func (m *Model) rebuildRows() {
	m.rows = flatten(m.root, 0, nil)
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) syncDetail() {
	m.detail.SetContent(renderDetail(m.selected()))
	m.detail.GotoTop()
}

func (m Model) selected() *nodeView {
	if len(m.rows) == 0 {
		return nil
	}
	return m.rows[m.cursor].view
}

func (m Model) Init() tea.Cmd { return nil }
