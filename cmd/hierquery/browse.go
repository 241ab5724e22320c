package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/wippyai/hierquery/design"
	"github.com/wippyai/hierquery/errors"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// level is one scope whose children are listed.
type level struct {
	title    string
	entries  []design.ScopeEntry
	selected int
}

type browseModel struct {
	err       error
	reg       *design.Registry
	filename  string
	status    string
	levels    []*level
	vars      []design.VariableEntry
	def       design.Definition
	filter    textinput.Model
	id        design.SessionID
	filtering bool
	showVars  bool
	loaded    bool
}

type designLoadedMsg struct {
	err  error
	id   design.SessionID
	tops []design.ScopeEntry
}

func newBrowseModel(reg *design.Registry, filename string, showVars bool) *browseModel {
	ti := textinput.New()
	ti.Prompt = "filter: "
	ti.Placeholder = "name"
	ti.Width = 40
	return &browseModel{
		reg:      reg,
		filename: filename,
		filter:   ti,
		showVars: showVars,
	}
}

func (m *browseModel) Init() tea.Cmd {
	return m.loadDesign
}

func (m *browseModel) loadDesign() tea.Msg {
	id, err := m.reg.Load(context.Background(), m.filename)
	if err != nil {
		return designLoadedMsg{err: err}
	}
	tops, err := m.reg.TopModules(id)
	if err != nil {
		return designLoadedMsg{err: err}
	}
	return designLoadedMsg{id: id, tops: tops}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case designLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.id = msg.id
		m.loaded = true
		m.levels = []*level{{title: m.filename, entries: msg.tops}}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			return m.updateFilter(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m *browseModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case tea.KeyEsc:
		m.clearFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	if l := m.current(); l != nil {
		l.selected = 0
	}
	m.refresh()
	return m, cmd
}

func (m *browseModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.reg.Close()
		return m, tea.Quit
	}
	if !m.loaded {
		return m, nil
	}

	l := m.current()
	visible := m.visible()
	m.status = ""

	switch msg.String() {
	case "up", "k":
		if l.selected > 0 {
			l.selected--
		}
	case "down", "j":
		if l.selected < len(visible)-1 {
			l.selected++
		}
	case "enter", "right", "l":
		m.descend()
	case "backspace", "left", "h":
		m.ascend()
	case "v":
		m.showVars = !m.showVars
	case "/":
		m.filtering = true
		return m, m.filter.Focus()
	case "esc":
		m.clearFilter()
	}
	m.refresh()
	return m, nil
}

func (m *browseModel) current() *level {
	if len(m.levels) == 0 {
		return nil
	}
	return m.levels[len(m.levels)-1]
}

// visible returns the indexes of the current level's entries that match
// the filter.
func (m *browseModel) visible() []int {
	l := m.current()
	if l == nil {
		return nil
	}
	needle := strings.ToLower(m.filter.Value())
	var out []int
	for i, e := range l.entries {
		if needle == "" || strings.Contains(strings.ToLower(e.Name), needle) {
			out = append(out, i)
		}
	}
	return out
}

func (m *browseModel) selectedEntry() (design.ScopeEntry, bool) {
	l := m.current()
	visible := m.visible()
	if l == nil || l.selected >= len(visible) {
		return design.ScopeEntry{}, false
	}
	return l.entries[visible[l.selected]], true
}

func (m *browseModel) descend() {
	e, ok := m.selectedEntry()
	if !ok {
		return
	}
	kids, err := m.reg.SubScopes(e.Handle)
	if err != nil {
		m.err = err
		return
	}
	if len(kids) == 0 {
		m.status = e.Name + " has no sub-scopes"
		return
	}
	m.levels = append(m.levels, &level{title: e.Name, entries: kids})
	m.filter.SetValue("")
}

func (m *browseModel) ascend() {
	if len(m.levels) < 2 {
		return
	}
	top := m.current()
	m.levels = m.levels[:len(m.levels)-1]
	design.CloseAll(top.entries)
	m.filter.SetValue("")
}

func (m *browseModel) clearFilter() {
	m.filtering = false
	m.filter.Blur()
	m.filter.SetValue("")
}

// refresh reloads the details of the selected entry.
func (m *browseModel) refresh() {
	m.def = design.Definition{}
	m.vars = nil

	e, ok := m.selectedEntry()
	if !ok {
		return
	}
	def, err := m.reg.Definition(e.Handle)
	if err != nil {
		m.err = err
		return
	}
	m.def = def
	if m.showVars {
		vars, err := m.reg.Variables(e.Handle)
		if err != nil {
			m.err = err
			return
		}
		m.vars = vars
	}
}

func (m *browseModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}
	if !m.loaded {
		return "Loading design..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Design Browser"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n")

	titles := make([]string, 0, len(m.levels))
	for _, l := range m.levels[1:] {
		titles = append(titles, l.title)
	}
	if len(titles) > 0 {
		b.WriteString(helpStyle.Render(strings.Join(titles, " › ")))
	}
	b.WriteString("\n\n")

	if m.filtering || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
	}

	l := m.current()
	visible := m.visible()
	if len(visible) == 0 {
		b.WriteString(helpStyle.Render("  (no matching scopes)"))
		b.WriteString("\n")
	}
	for i, idx := range visible {
		e := l.entries[idx]
		line := categoryStyle.Render(fmt.Sprintf("%-14s", e.Category)) + " " + nameStyle.Render(e.Name)
		if i == l.selected {
			b.WriteString(selectedStyle.Render("> " + e.Category + " " + e.Name))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	if e, ok := m.selectedEntry(); ok {
		b.WriteString("\n")
		if loc := location(e.File, e.Line); loc != "" {
			b.WriteString(detailStyle.Render("at " + loc))
			b.WriteString("\n")
		}
		if m.def.DefName != "" {
			b.WriteString(detailStyle.Render("definition " + m.def.DefName + " " + location(m.def.File, m.def.Line)))
			b.WriteString("\n")
		}
		if m.showVars {
			if len(m.vars) == 0 {
				b.WriteString(helpStyle.Render("no variables"))
				b.WriteString("\n")
			}
			for _, v := range m.vars {
				b.WriteString("  " + categoryStyle.Render(fmt.Sprintf("%-10s", v.Category)) + " " + v.Name)
				if v.Width >= 0 {
					b.WriteString(fmt.Sprintf(" [%d]", v.Width))
				}
				b.WriteString("\n")
			}
		}
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if m.filtering {
		b.WriteString(helpStyle.Render("type to filter • enter keep • esc clear"))
	} else {
		b.WriteString(helpStyle.Render("↑/↓ select • enter open • backspace up • v variables • / filter • q quit"))
	}
	return b.String()
}

func (c *cli) browseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "browse [design]",
		Short: "Browse a design interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			paths, err := c.designPaths(args)
			if err != nil {
				return err
			}
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.Unsupported(errors.PhaseConfig, "browse needs a terminal; use tree instead")
			}

			reg := design.NewRegistry(design.WithLogger(c.log.Named("design")))
			defer reg.Close()

			p := tea.NewProgram(newBrowseModel(reg, paths[0], c.cfg.Browse.ShowVariables), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}
}
