package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/hierquery/design"
	"github.com/wippyai/hierquery/vpi"
)

// printer writes results as styled text or JSON. Styles render plain
// unless w is a color terminal.
type printer struct {
	w    io.Writer
	json bool

	category lipgloss.Style
	name     lipgloss.Style
	def      lipgloss.Style
	loc      lipgloss.Style
	branch   lipgloss.Style
}

func newPrinter(w io.Writer, asJSON bool) *printer {
	r := lipgloss.NewRenderer(w)
	return &printer{
		w:        w,
		json:     asJSON,
		category: r.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		name:     r.NewStyle().Bold(true),
		def:      r.NewStyle().Foreground(lipgloss.Color("#98FB98")),
		loc:      r.NewStyle().Foreground(lipgloss.Color("#666666")),
		branch:   r.NewStyle().Foreground(lipgloss.Color("#666666")),
	}
}

func (p *printer) encode(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func location(file string, line int) string {
	if file == "" {
		return ""
	}
	return file + ":" + strconv.Itoa(line)
}

func (p *printer) scopeLine(e design.ScopeEntry) string {
	s := p.category.Render(e.Category) + " " + p.name.Render(e.Name)
	if e.DefName != "" {
		s += " " + p.def.Render("("+e.DefName+")")
	}
	if loc := location(e.File, e.Line); loc != "" {
		s += " " + p.loc.Render(loc)
	}
	return s
}

func (p *printer) varLine(v design.VariableEntry) string {
	s := p.category.Render(v.Category) + " " + v.Name
	if v.Width != vpi.Undefined {
		s += fmt.Sprintf(" [%d]", v.Width)
	}
	if loc := location(v.File, v.Line); loc != "" {
		s += " " + p.loc.Render(loc)
	}
	return s
}

func (p *printer) scopes(entries []design.ScopeEntry) error {
	if p.json {
		return p.encode(entries)
	}
	for _, e := range entries {
		fmt.Fprintln(p.w, p.scopeLine(e))
	}
	return nil
}

func (p *printer) variables(vars []design.VariableEntry) error {
	if p.json {
		return p.encode(vars)
	}
	for _, v := range vars {
		fmt.Fprintln(p.w, p.varLine(v))
	}
	return nil
}

func (p *printer) definition(d design.Definition) error {
	if p.json {
		return p.encode(d)
	}
	if d.DefName == "" {
		fmt.Fprintln(p.w, "no definition")
		return nil
	}
	s := p.def.Render(d.DefName)
	if loc := location(d.File, d.Line); loc != "" {
		s += " " + p.loc.Render(loc)
	}
	fmt.Fprintln(p.w, s)
	return nil
}

// treeNode is the JSON shape of a tree.
type treeNode struct {
	design.ScopeEntry
	Variables []design.VariableEntry `json:"variables,omitempty"`
	Children  []*treeNode            `json:"children,omitempty"`
}

func (p *printer) tree(nodes []*treeNode) error {
	if p.json {
		return p.encode(nodes)
	}
	for _, n := range nodes {
		fmt.Fprintln(p.w, p.scopeLine(n.ScopeEntry))
		p.subtree(n, "")
	}
	return nil
}

func (p *printer) subtree(n *treeNode, indent string) {
	total := len(n.Variables) + len(n.Children)
	i := 0
	next := func() (string, string) {
		i++
		if i == total {
			return p.branch.Render("└── "), indent + "    "
		}
		return p.branch.Render("├── "), indent + p.branch.Render("│   ")
	}
	for _, v := range n.Variables {
		b, _ := next()
		fmt.Fprintln(p.w, indent+b+p.varLine(v))
	}
	for _, c := range n.Children {
		b, childIndent := next()
		fmt.Fprintln(p.w, indent+b+p.scopeLine(c.ScopeEntry))
		p.subtree(c, childIndent)
	}
}
