package design

import (
	"strconv"

	"github.com/wippyai/hierquery/vpi"
)

var categories = map[vpi.Kind]string{
	vpi.KindModule:         "Module",
	vpi.KindModuleArray:    "ModuleArray",
	vpi.KindInterface:      "Interface",
	vpi.KindProgram:        "Program",
	vpi.KindGenScope:       "Generate",
	vpi.KindGenScopeArray:  "Generate",
	vpi.KindTask:           "Task",
	vpi.KindFunction:       "Function",
	vpi.KindModport:        "Modport",
	vpi.KindClockingBlock:  "ClockingBlock",
	vpi.KindInterfaceArray: "InterfaceArray",
	vpi.KindProgramArray:   "ProgramArray",
}

// Classify returns the scope category label for kind. Kinds without a
// label map to their decimal number.
func Classify(kind vpi.Kind) string {
	if c, ok := categories[kind]; ok {
		return c
	}
	return strconv.FormatInt(int64(kind), 10)
}
