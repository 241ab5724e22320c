package model

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wippyai/hierquery/errors"
	"github.com/wippyai/hierquery/vpi"
)

func TestElaborate_Counter(t *testing.T) {
	s := NewStore()
	defer s.Close()

	designs, err := s.Restore(counterDesign)
	require.NoError(t, err)
	require.NoError(t, s.Elaborate(designs))
	require.Equal(t, int64(1), s.Int(vpi.PropElaborated, designs[0]))

	tops := scanAll(t, s, vpi.KindTopModules, designs[0])
	require.Equal(t, []string{"top"}, names(s, vpi.PropName, tops))
	require.Equal(t, []string{"top"}, names(s, vpi.PropFullName, tops))
	require.Equal(t, []string{"work@top"}, names(s, vpi.PropDefName, tops))
	require.Equal(t, int64(1), s.Int(vpi.PropLineNo, tops[0]))

	mods := scanAll(t, s, vpi.KindModule, tops[0])
	require.Equal(t, []string{"top.u_counter"}, names(s, vpi.PropFullName, mods))
	// site location with the definition's location alongside
	require.Equal(t, []string{"rtl/top.sv"}, names(s, vpi.PropFile, mods))
	require.Equal(t, int64(10), s.Int(vpi.PropLineNo, mods[0]))
	require.Equal(t, []string{"rtl/counter.sv"}, names(s, vpi.PropDefFile, mods))
	require.Equal(t, int64(1), s.Int(vpi.PropDefLineNo, mods[0]))

	regs := scanAll(t, s, vpi.KindReg, mods[0])
	require.Equal(t, []string{"top.u_counter.count"}, names(s, vpi.PropFullName, regs))
	require.Equal(t, int64(8), s.Int(vpi.PropSize, regs[0]))

	ifaces := scanAll(t, s, vpi.KindInterface, tops[0])
	require.Equal(t, []string{"top.bus"}, names(s, vpi.PropFullName, ifaces))
	modports := scanAll(t, s, vpi.KindModport, ifaces[0])
	require.Equal(t, []string{"top.bus.mp"}, names(s, vpi.PropFullName, modports))

	arrays := scanAll(t, s, vpi.KindGenScopeArray, tops[0])
	require.Len(t, arrays, 1)
	scopes := scanAll(t, s, vpi.KindGenScope, arrays[0])
	require.Equal(t, []string{"top.gen_lanes[0]", "top.gen_lanes[1]"}, names(s, vpi.PropFullName, scopes))
	lanes := scanAll(t, s, vpi.KindModule, scopes[1])
	require.Equal(t, []string{"top.gen_lanes[1].u_lane"}, names(s, vpi.PropFullName, lanes))
	require.Equal(t, []string{"work@lane"}, names(s, vpi.PropDefName, lanes))

	for _, refs := range [][]vpi.Ref{lanes, scopes, arrays, modports, ifaces, regs, mods, tops, designs} {
		releaseAll(s, refs)
	}
	require.Equal(t, 0, s.Live())
}

func TestElaborate_InstancesAreCopies(t *testing.T) {
	s := NewStore()
	defer s.Close()

	designs, err := s.Restore(counterDesign)
	require.NoError(t, err)
	require.NoError(t, s.Elaborate(designs))

	d := s.design(designs[0])
	top := d.topModules[0]
	gen := top.childrenOf(vpi.KindGenScopeArray)[0]
	a := gen.children[0].children[0]
	b := gen.children[1].children[0]
	require.NotSame(t, a, b)
	require.NotSame(t, a.children[0], b.children[0])

	// definitions keep their own names
	lane := d.allModules[2]
	require.Equal(t, "work@lane.valid", lane.children[0].fullName)
	require.Equal(t, "top.gen_lanes[0].u_lane.valid", a.children[0].fullName)

	releaseAll(s, designs)
}

func TestElaborate_MultipleTops(t *testing.T) {
	s := NewStore()
	defer s.Close()

	designs, err := s.Restore("testdata/multi_top.yaml")
	require.NoError(t, err)
	require.NoError(t, s.Elaborate(designs))

	tops := scanAll(t, s, vpi.KindTopModules, designs[0])
	require.Equal(t, []string{"alpha", "beta"}, names(s, vpi.PropName, tops))

	// the first of two duplicate definitions is bound
	leaves := scanAll(t, s, vpi.KindModule, tops[0])
	require.Equal(t, []string{"leaf.sv"}, names(s, vpi.PropDefFile, leaves))
	nets := scanAll(t, s, vpi.KindNet, leaves[0])
	require.Equal(t, []string{"alpha.u_leaf.d"}, names(s, vpi.PropFullName, nets))

	for _, refs := range [][]vpi.Ref{nets, leaves, tops, designs} {
		releaseAll(s, refs)
	}
}

func TestElaborate_AlreadyElaborated(t *testing.T) {
	s := NewStore()
	defer s.Close()

	designs, err := s.Restore("../testbed/soc.yaml")
	require.NoError(t, err)

	before := s.design(designs[0]).topModules
	require.NoError(t, s.Elaborate(designs))
	require.Equal(t, before, s.design(designs[0]).topModules)

	releaseAll(s, designs)
}

func TestElaborate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		detail string
		at     []string
	}{
		{"unknown definition", "../testbed/unresolved.yaml", `definition "work@missing" not found`, []string{"top", "u_missing"}},
		{"recursive instantiation", "testdata/recursive.yaml", `recursive instantiation of "work@a"`, []string{"top", "u_a", "u_b", "u_a"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewStore()
			defer s.Close()

			designs, err := s.Restore(tt.path)
			require.NoError(t, err)

			err = s.Elaborate(designs)
			require.ErrorIs(t, err, errors.ErrElaboration)

			var e *errors.Error
			require.True(t, stderrors.As(err, &e))
			require.Equal(t, errors.PhaseElaborate, e.Phase)
			require.Equal(t, tt.detail, e.Detail)
			require.Equal(t, tt.at, e.Path)

			// a failed design is left untouched
			require.Equal(t, int64(0), s.Int(vpi.PropElaborated, designs[0]))
			require.Equal(t, vpi.Null, s.Iterate(vpi.KindTopModules, designs[0]))

			releaseAll(s, designs)
		})
	}
}

func TestElaborate_NoTop(t *testing.T) {
	s := NewStore()
	defer s.Close()

	// every module instantiates another, so none is a top
	designs, err := s.Restore("testdata/recursive.yaml")
	require.NoError(t, err)
	d := s.design(designs[0])
	d.allModules = d.allModules[1:]

	err = s.Elaborate(designs)
	require.ErrorIs(t, err, errors.ErrElaboration)
	require.Contains(t, err.Error(), "no top-level module")

	releaseAll(s, designs)
}

func TestElaborate_NotADesign(t *testing.T) {
	s := NewStore()
	defer s.Close()

	designs, err := s.Restore(counterDesign)
	require.NoError(t, err)
	defs := scanAll(t, s, vpi.KindAllModules, designs[0])

	require.ErrorIs(t, s.Elaborate(defs[:1]), errors.ErrElaboration)

	releaseAll(s, defs)
	releaseAll(s, designs)
}

func TestTrimLibrary(t *testing.T) {
	tests := map[string]string{
		"work@top": "top",
		"top":      "top",
		"":         "",
		"lib@a@b":  "a@b",
	}
	for in, want := range tests {
		if got := trimLibrary(in); got != want {
			t.Errorf("trimLibrary(%q) = %q, want %q", in, got, want)
		}
	}
}
