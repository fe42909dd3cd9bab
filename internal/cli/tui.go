package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/KhanhRomVN/GoFlow-sub001/pkg/graph"
)

// List styles
var (
	listTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// LayoutModel - Interactive layout browser
// =============================================================================

// LayoutModel is the bubbletea model for browsing a computed layout. The top
// level lists file containers; selecting one drills into its entities.
type LayoutModel struct {
	Layout graph.Layout

	// byFile indexes entities by container file, in layout order.
	byFile map[string][]graph.Entity

	Cursor   int
	Height   int
	Offset   int
	Selected string // non-empty when showing one container's entities
}

// NewLayoutModel creates a browser model for a positioned layout.
func NewLayoutModel(l graph.Layout) LayoutModel {
	byFile := make(map[string][]graph.Entity)
	for _, e := range l.Entities {
		byFile[e.File] = append(byFile[e.File], e)
	}
	return LayoutModel{
		Layout: l,
		byFile: byFile,
		Height: 15,
	}
}

func (m LayoutModel) Init() tea.Cmd {
	return nil
}

// rowCount returns the number of rows in the current view.
func (m LayoutModel) rowCount() int {
	if m.Selected != "" {
		return len(m.byFile[m.Selected])
	}
	return len(m.Layout.Containers)
}

func (m LayoutModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.Selected != "" {
				m.Selected = ""
				m.Cursor = 0
				m.Offset = 0
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < m.rowCount()-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if m.Selected == "" && m.Cursor < len(m.Layout.Containers) {
				m.Selected = m.Layout.Containers[m.Cursor].File
				m.Cursor = 0
				m.Offset = 0
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m LayoutModel) View() string {
	var b strings.Builder

	if m.Selected != "" {
		b.WriteString(listTitleStyle.Render(m.Selected))
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("↑/↓ navigate  esc back  q quit"))
		b.WriteString("\n\n")
		m.viewEntities(&b)
	} else {
		b.WriteString(listTitleStyle.Render(fmt.Sprintf("Layout · %s %s · %d files",
			m.Layout.Algorithm, m.Layout.Direction, len(m.Layout.Containers))))
		b.WriteString("\n")
		b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ open  q quit"))
		b.WriteString("\n\n")
		m.viewContainers(&b)
	}

	return b.String()
}

func (m LayoutModel) viewContainers(b *strings.Builder) {
	end := min(m.Offset+m.Height, len(m.Layout.Containers))
	for i := m.Offset; i < end; i++ {
		c := m.Layout.Containers[i]
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listTitleStyle
		}
		line := fmt.Sprintf("%s%-40s %3d entities  (%.0f, %.0f) %gx%g",
			cursor, c.File, c.EntityCount, c.X, c.Y, c.Width, c.Height)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
}

func (m LayoutModel) viewEntities(b *strings.Builder) {
	entities := m.byFile[m.Selected]
	end := min(m.Offset+m.Height, len(entities))
	for i := m.Offset; i < end; i++ {
		e := entities[i]
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listTitleStyle
		}
		line := fmt.Sprintf("%s%-36s %-9s (%.0f, %.0f) %gx%g",
			cursor, e.DisplayLabel(), e.Kind, e.X, e.Y, e.Width, e.Height)
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
}
