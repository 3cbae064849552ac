// Package tui is the interactive character picker: it lists the characters
// found in the open scene and lets the user choose which collection and mesh
// version each one uses.
package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/initcard/lettuce/internal/manifest"
)

// characterItem wraps a Character for the list display.
type characterItem struct {
	c *manifest.Character
}

func (i characterItem) Title() string { return i.c.DisplayName() }
func (i characterItem) Description() string {
	return fmt.Sprintf("collection %s · mesh %s", i.c.CurrentCollection().Version, i.c.CurrentMeshObject().Version)
}
func (i characterItem) FilterValue() string { return i.c.Name }

// Selection is the version choice made for one character.
type Selection struct {
	Character  string `json:"character"`
	Collection string `json:"collection"`
	MeshObject string `json:"mayaObject"`
}

// Model is the picker's bubbletea model.
type Model struct {
	list      list.Model
	chars     []*manifest.Character
	width     int
	listWidth int
	showSide  bool
	status    string
	quitting  bool
}

// New returns a picker over chars. Version changes are made on the
// characters themselves.
func New(chars []*manifest.Character) Model {
	items := make([]list.Item, len(chars))
	for i, c := range chars {
		items[i] = characterItem{c: c}
	}
	delegate := list.NewDefaultDelegate()
	delegate.SetHeight(2)
	delegate.SetSpacing(0)
	l := list.New(items, delegate, 0, 0)
	l.Title = "Characters in scene"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	return Model{list: l, chars: chars, status: "enter/→ next collection · ← previous · m next mesh · q quit"}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.showSide = msg.Width >= 90
		m.listWidth = msg.Width - 4
		if m.showSide {
			m.listWidth = max(int(float64(msg.Width-4)*0.45), 36)
		}
		m.list.SetSize(m.listWidth, max(msg.Height-6, 5))
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "enter", "right":
			m.cycleCollection(1)
			return m, nil
		case "left":
			m.cycleCollection(-1)
			return m, nil
		case "m":
			m.cycleMesh()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) selected() *manifest.Character {
	item, ok := m.list.SelectedItem().(characterItem)
	if !ok {
		return nil
	}
	return item.c
}

func (m *Model) cycleCollection(step int) {
	c := m.selected()
	if c == nil {
		return
	}
	versions := c.Versions()
	next := versions[cycle(slices.Index(versions, c.CurrentCollection().Version), step, len(versions))]
	if err := c.SetCurrentCollection(next); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("%s: collection %s", c.Name, next)
}

func (m *Model) cycleMesh() {
	c := m.selected()
	if c == nil {
		return
	}
	versions := c.MeshVersions()
	next := versions[cycle(slices.Index(versions, c.CurrentMeshObject().Version), 1, len(versions))]
	if err := c.SetCurrentMeshObject(next); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("%s: mesh %s", c.Name, next)
}

func cycle(i, step, n int) int {
	return ((i+step)%n + n) % n
}

// Selections returns the current version choice of every character.
func (m Model) Selections() []Selection {
	out := make([]Selection, len(m.chars))
	for i, c := range m.chars {
		out[i] = Selection{
			Character:  c.Name,
			Collection: c.CurrentCollection().Version,
			MeshObject: c.CurrentMeshObject().Version,
		}
	}
	return out
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#6BCB77")).
		MarginBottom(1)
	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#888888")).
		MarginTop(1)

	header := titleStyle.Render("LETTUCE")
	content := m.list.View()
	if detail := m.renderDetail(); detail != "" {
		if m.showSide {
			content = lipgloss.JoinHorizontal(lipgloss.Top, content, detail)
		} else {
			content = content + "\n\n" + detail
		}
	}
	return fmt.Sprintf("%s\n%s\n%s", header, content, statusStyle.Render(m.status))
}

func (m Model) renderDetail() string {
	c := m.selected()
	if c == nil {
		return ""
	}
	detailWidth := max(m.width-m.listWidth-6, 36)
	if !m.showSide {
		detailWidth = max(m.width-4, 36)
	}
	nameStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD479"))
	sectionTitle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#6BCB77"))
	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#555555")).
		Padding(1, 2).
		Width(detailWidth)

	col := c.CurrentCollection()
	mobj := c.CurrentMeshObject()
	sections := []string{
		nameStyle.Render(c.Name),
		fmt.Sprintf("%s %s\n  maya  %s\n  xgen  %s",
			sectionTitle.Render("Collection"), col.Version, orNone(col.MayaFile), orNone(col.XGenFile)),
		fmt.Sprintf("%s\n  %s", sectionTitle.Render("Hair plates"), orNone(strings.Join(col.HairPlates, "\n  "))),
		fmt.Sprintf("%s %s\n  file  %s\n  node  %s",
			sectionTitle.Render("Mesh"), mobj.Version, orNone(mobj.OrigMeshFile), orNone(mobj.MeshNodeName)),
	}
	return borderStyle.Render(strings.Join(sections, "\n\n"))
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

// Run shows the picker until the user quits and returns the final choices.
func Run(chars []*manifest.Character, opts ...tea.ProgramOption) ([]Selection, error) {
	final, err := tea.NewProgram(New(chars), opts...).Run()
	if err != nil {
		return nil, fmt.Errorf("running picker: %w", err)
	}
	return final.(Model).Selections(), nil
}
