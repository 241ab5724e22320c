package design

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wippyai/hierquery/errors"
)

func TestModuleDefs(t *testing.T) {
	r, _ := newTestRegistry(t)
	id := load(t, r, counterDesign)

	defs, err := r.ModuleDefs(id)
	require.NoError(t, err)
	defer CloseAll(defs)

	require.Equal(t, []scopeRow{
		{"Module", "work@top"},
		{"Module", "work@counter"},
		{"Module", "work@lane"},
		{"Interface", "work@bus_if"},
	}, rows(defs))
	require.Equal(t, "rtl/counter.sv", defs[1].File)

	vars, err := r.Variables(defs[1].Handle)
	require.NoError(t, err)
	require.Len(t, vars, 3)
	require.Equal(t, "work@counter.clk", vars[0].Name)

	_, err = r.ModuleDefs(id + 1)
	require.ErrorIs(t, err, errors.ErrNotFound)
}

func TestInstances(t *testing.T) {
	r, st := newTestRegistry(t)
	id := load(t, r, counterDesign)

	lanes, err := r.Instances(id, "work@lane")
	require.NoError(t, err)
	require.Equal(t, []scopeRow{
		{"Module", "top.gen_lanes[0].u_lane"},
		{"Module", "top.gen_lanes[1].u_lane"},
	}, rows(lanes))
	CloseAll(lanes)

	tops, err := r.Instances(id, "work@top")
	require.NoError(t, err)
	require.Equal(t, []scopeRow{{"Module", "top"}}, rows(tops))
	CloseAll(tops)

	ifaces, err := r.Instances(id, "work@bus_if")
	require.NoError(t, err)
	require.Equal(t, []scopeRow{{"Interface", "top.bus"}}, rows(ifaces))
	CloseAll(ifaces)

	none, err := r.Instances(id, "work@nothing")
	require.NoError(t, err)
	require.Empty(t, none)

	_, err = r.Instances(id, "")
	require.ErrorIs(t, err, &errors.Error{Kind: errors.KindInvalidInput})

	require.Equal(t, 1, st.last().Live())
	require.Zero(t, st.last().InvalidReleases())
}

func TestLookup(t *testing.T) {
	r, st := newTestRegistry(t)
	id := load(t, r, counterDesign)

	tests := []struct {
		path     string
		category string
		defName  string
	}{
		{"top", "Module", "work@top"},
		{"top.u_counter", "Module", "work@counter"},
		{"top.gen_lanes[1]", "Generate", ""},
		{"top.gen_lanes[1].u_lane", "Module", "work@lane"},
		{"top.bus.mp", "Modport", ""},
	}
	for _, tt := range tests {
		e, err := r.Lookup(id, tt.path)
		require.NoError(t, err, tt.path)
		require.Equal(t, tt.path, e.Name)
		require.Equal(t, tt.category, e.Category)
		require.Equal(t, tt.defName, e.DefName)
		require.NoError(t, e.Handle.Close())
	}

	for _, path := range []string{"", "nope", "top.nope", "top.u_counter.count", "top.gen_lanes"} {
		_, err := r.Lookup(id, path)
		require.ErrorIs(t, err, errors.ErrNotFound, path)
	}

	require.Equal(t, 1, st.last().Live())
	require.Zero(t, st.last().InvalidReleases())
}
