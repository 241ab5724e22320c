package vpi

import (
	"strconv"
)

// Kind identifies an object type or a one-to-many relation.
// Values follow IEEE 1800 vpi_user.h / sv_vpi_user.h where one exists.
type Kind int32

const (
	KindFunction       Kind = 20
	KindIntegerVar     Kind = 25
	KindIODecl         Kind = 28
	KindModule         Kind = 32
	KindNet            Kind = 36
	KindParameter      Kind = 41
	KindRealVar        Kind = 47
	KindReg            Kind = 48
	KindTask           Kind = 59
	KindVariables      Kind = 100
	KindModuleArray    Kind = 112
	KindArrayNet       Kind = 114
	KindTaskFunc       Kind = 127
	KindGenScopeArray  Kind = 133
	KindGenScope       Kind = 134
	KindInterface      Kind = 601
	KindProgram        Kind = 602
	KindInterfaceArray Kind = 603
	KindProgramArray   Kind = 604
	KindModport        Kind = 606
	KindShortRealVar   Kind = 613
	KindClockingBlock  Kind = 650
	KindClockingIODecl Kind = 651
	KindClockingEvent  Kind = 652

	// Store extensions
	KindDesign     Kind = 2000
	KindAllModules Kind = 2001
	KindTopModules Kind = 2002
)

var kindNames = map[Kind]string{
	KindFunction:       "function",
	KindIntegerVar:     "integerVar",
	KindIODecl:         "ioDecl",
	KindModule:         "module",
	KindNet:            "net",
	KindParameter:      "parameter",
	KindRealVar:        "realVar",
	KindReg:            "reg",
	KindTask:           "task",
	KindVariables:      "variables",
	KindModuleArray:    "moduleArray",
	KindArrayNet:       "arrayNet",
	KindTaskFunc:       "taskFunc",
	KindGenScopeArray:  "genScopeArray",
	KindGenScope:       "genScope",
	KindInterface:      "interface",
	KindProgram:        "program",
	KindInterfaceArray: "interfaceArray",
	KindProgramArray:   "programArray",
	KindModport:        "modport",
	KindShortRealVar:   "shortRealVar",
	KindClockingBlock:  "clockingBlock",
	KindClockingIODecl: "clockingIODecl",
	KindClockingEvent:  "clockingEvent",
	KindDesign:         "design",
	KindAllModules:     "allModules",
	KindTopModules:     "topModules",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, n := range kindNames {
		m[n] = k
	}
	return m
}()

// String returns the serialized name of k, or its number when unnamed.
func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return strconv.Itoa(int(k))
}

// ParseKind accepts a kind name as produced by String or a decimal number.
func ParseKind(s string) (Kind, bool) {
	if k, ok := kindsByName[s]; ok {
		return k, true
	}
	n, err := strconv.ParseInt(s, 10, 32)
	if err != nil || n <= 0 {
		return 0, false
	}
	return Kind(n), true
}

// IsInstance reports whether objects of kind k are bound to a definition
// during elaboration.
func (k Kind) IsInstance() bool {
	switch k {
	case KindModule, KindInterface, KindProgram:
		return true
	}
	return false
}
