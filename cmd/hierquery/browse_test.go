package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/hierquery/design"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loadedModel(t *testing.T, path string) (*browseModel, *design.Registry) {
	t.Helper()
	reg := design.NewRegistry()
	t.Cleanup(func() { reg.Close() })

	m := newBrowseModel(reg, path, true)
	assert.Equal(t, "Loading design...", m.View())
	m.Update(m.Init()())
	require.NoError(t, m.err)
	require.True(t, m.loaded)
	return m, reg
}

func press(m *browseModel, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(key(k))
	}
	return cmd
}

func TestBrowse_TopLevel(t *testing.T) {
	m, _ := loadedModel(t, counterDesign)

	view := m.View()
	assert.Contains(t, view, "Design Browser")
	assert.Contains(t, view, "Module top")
	assert.Contains(t, view, "definition work@top")
	assert.Contains(t, view, "top.clk")
}

func TestBrowse_Navigate(t *testing.T) {
	m, _ := loadedModel(t, counterDesign)

	press(m, "enter")
	require.Len(t, m.levels, 2)
	e, ok := m.selectedEntry()
	require.True(t, ok)
	assert.Equal(t, "top.u_counter", e.Name)
	assert.Equal(t, "work@counter", m.def.DefName)
	assert.Len(t, m.vars, 3)

	press(m, "j", "j")
	e, _ = m.selectedEntry()
	assert.Equal(t, "top.gen_lanes[1]", e.Name)

	press(m, "l")
	require.Len(t, m.levels, 3)
	assert.Contains(t, m.View(), "top › top.gen_lanes[1]")

	// leaf scopes stay put
	press(m, "enter")
	require.Len(t, m.levels, 3)
	assert.Contains(t, m.View(), "has no sub-scopes")

	press(m, "backspace", "h")
	require.Len(t, m.levels, 1)
	press(m, "h")
	require.Len(t, m.levels, 1)

	press(m, "k", "k")
	e, _ = m.selectedEntry()
	assert.Equal(t, "top", e.Name)
}

func TestBrowse_Filter(t *testing.T) {
	m, _ := loadedModel(t, counterDesign)
	press(m, "enter")

	press(m, "/")
	require.True(t, m.filtering)
	press(m, "b", "u", "s")
	assert.Len(t, m.visible(), 1)
	e, _ := m.selectedEntry()
	assert.Equal(t, "top.bus", e.Name)
	assert.Equal(t, "work@bus_if", m.def.DefName)

	press(m, "enter")
	assert.False(t, m.filtering)
	assert.Contains(t, m.View(), "filter: ")

	press(m, "esc")
	assert.Len(t, m.visible(), 6)

	press(m, "/", "z", "z", "z")
	assert.Empty(t, m.visible())
	assert.Contains(t, m.View(), "no matching scopes")
	press(m, "esc")
	assert.False(t, m.filtering)
	assert.Len(t, m.visible(), 6)
}

func TestBrowse_ToggleVariables(t *testing.T) {
	m, _ := loadedModel(t, counterDesign)
	require.Len(t, m.vars, 4)

	press(m, "v")
	assert.False(t, m.showVars)
	assert.Empty(t, m.vars)
	assert.NotContains(t, m.View(), "top.clk")
}

func TestBrowse_Quit(t *testing.T) {
	m, reg := loadedModel(t, counterDesign)
	press(m, "enter")

	cmd := press(m, "q")
	require.NotNil(t, cmd)
	assert.Empty(t, reg.Sessions())
}

func TestBrowse_LoadError(t *testing.T) {
	reg := design.NewRegistry()
	defer reg.Close()

	m := newBrowseModel(reg, "../../testbed/empty.yaml", false)
	m.Update(m.Init()())
	assert.Error(t, m.err)
	assert.Contains(t, m.View(), "Press q to quit")
	assert.Empty(t, reg.Sessions())
}
