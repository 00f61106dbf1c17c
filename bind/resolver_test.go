package bind

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//
// -----------------------------------------------------------------------------
// Provide / Len
// -----------------------------------------------------------------------------

// TestProvide_ChainsAndStores verifies Provide creates scenes on demand and returns the same table.
func TestProvide_ChainsAndStores(t *testing.T) {
	t.Parallel()

	tbl := ResourceTable[int]{}
	ret := tbl.Provide("a", "x", 1).Provide("a", "y", 2).Provide("b", "x", 3)

	assert.Equal(t, tbl, ret)
	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, map[string]int{"x": 1, "y": 2}, tbl["a"])
}

// TestProvide_NilBundle verifies Provide replaces a nil scene bundle instead of panicking.
func TestProvide_NilBundle(t *testing.T) {
	t.Parallel()

	tbl := ResourceTable[int]{"a": nil}
	tbl.Provide("a", "x", 1)
	assert.Equal(t, 1, tbl["a"]["x"])
}

//
// -----------------------------------------------------------------------------
// Resolve
// -----------------------------------------------------------------------------

func TestResolve(t *testing.T) {
	t.Parallel()

	tbl := ResourceTable[string]{}.Provide("Scene1", "Obj", "R")

	cases := []struct {
		name   string
		table  ResourceTable[string]
		req    Request
		want   string
		wantOK bool
	}{
		{name: "present", table: tbl, req: Request{"Scene1", "Obj"}, want: "R", wantOK: true},
		{name: "missing name", table: tbl, req: Request{"Scene1", "Other"}},
		{name: "missing scene", table: tbl, req: Request{"Scene2", "Obj"}},
		{name: "nil table", table: nil, req: Request{"Scene1", "Obj"}},
		{name: "nil bundle", table: ResourceTable[string]{"Scene1": nil}, req: Request{"Scene1", "Obj"}},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, ok := tc.table.Resolve(tc.req)
			assert.Equal(t, tc.wantOK, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

// TestResolve_ZeroStoredValue verifies a stored zero value is a hit, not a miss.
func TestResolve_ZeroStoredValue(t *testing.T) {
	t.Parallel()

	tbl := ResourceTable[*int]{}.Provide("s", "n", nil)
	got, ok := tbl.Resolve(Request{"s", "n"})
	require.True(t, ok)
	assert.Nil(t, got)
}

//
// -----------------------------------------------------------------------------
// ResolveCollection
// -----------------------------------------------------------------------------

func TestResolveCollection(t *testing.T) {
	t.Parallel()

	tbl := ResourceTable[string]{}.Provide("Scene1", "A", "X").Provide("Scene1", "B", "Y")

	got, ok := tbl.ResolveCollection("Scene1")
	require.True(t, ok)
	assert.Equal(t, map[string]string{"A": "X", "B": "Y"}, got)

	got, ok = tbl.ResolveCollection("Scene2")
	assert.False(t, ok)
	assert.Nil(t, got)

	got, ok = ResourceTable[string]{"Scene3": nil}.ResolveCollection("Scene3")
	assert.False(t, ok)
	assert.Nil(t, got)
}

// TestResolveCollection_Empty verifies an empty but non-nil bundle is a hit.
func TestResolveCollection_Empty(t *testing.T) {
	t.Parallel()

	tbl := ResourceTable[string]{"Scene1": {}}
	got, ok := tbl.ResolveCollection("Scene1")
	require.True(t, ok)
	assert.Empty(t, got)
}
