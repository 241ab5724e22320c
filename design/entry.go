package design

import "github.com/wippyai/hierquery/vpi"

// ScopeEntry describes one child scope. Handle owns the scope's reference
// and must be closed by the caller. Empty strings mark absent properties.
type ScopeEntry struct {
	DefName  string  `json:"defName,omitempty"`
	Name     string  `json:"name,omitempty"`
	File     string  `json:"file,omitempty"`
	Line     int     `json:"line"`
	Column   int     `json:"column"`
	Category string  `json:"category"`
	Handle   *Handle `json:"-"`
}

// VariableEntry describes one data-carrying declaration of a scope.
// Width is the size the object model reports, vpi.Undefined when it has
// none.
type VariableEntry struct {
	Category string `json:"category"`
	Name     string `json:"name"`
	File     string `json:"file,omitempty"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Width    int64  `json:"width"`
}

// Definition locates the definition a scope instantiates.
type Definition struct {
	DefName string `json:"defName,omitempty"`
	File    string `json:"file,omitempty"`
	Line    int    `json:"line"`
}

// CloseAll closes the handles of entries.
func CloseAll(entries []ScopeEntry) {
	for _, e := range entries {
		e.Handle.Close()
	}
}

func intProp(a vpi.Adapter, prop vpi.Property, ref vpi.Ref) int {
	return int(a.Int(prop, ref))
}

// displayName applies the full name, short name, "unnamed" fallback.
func displayName(a vpi.Adapter, ref vpi.Ref) string {
	if s, ok := a.Str(vpi.PropFullName, ref); ok {
		return s
	}
	if s, ok := a.Str(vpi.PropName, ref); ok {
		return s
	}
	return "unnamed"
}
