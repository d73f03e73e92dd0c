package lattice_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hydro-project/katara/internal/ir"
	"github.com/hydro-project/katara/internal/lattice"
)

func TestMaxIntHasNodeIDOnlyForNodeIDFlavour(t *testing.T) {
	require.False(t, lattice.NewMaxInt(ir.Int()).HasNodeID())
	require.True(t, lattice.NewMaxInt(ir.NodeIDInt()).HasNodeID())
}

func TestMapHasNodeIDFromKeyOrValue(t *testing.T) {
	byKey := lattice.NewMap(ir.NodeIDInt(), lattice.OrBool{})
	require.True(t, byKey.HasNodeID())

	byValue := lattice.NewMap(ir.OpaqueInt(), lattice.NewMaxInt(ir.NodeIDInt()))
	require.True(t, byValue.HasNodeID())

	neither := lattice.NewMap(ir.OpaqueInt(), lattice.OrBool{})
	require.False(t, neither.HasNodeID())
}

func TestLexicalProductIRTypeIsTuple(t *testing.T) {
	lp := lattice.NewLexicalProduct(lattice.NewMaxInt(ir.ClockInt()), lattice.OrBool{})
	require.True(t, lp.IRType().Equal(ir.TupleT(ir.ClockInt(), ir.Bool())))
}

func TestGenLatticeTypesDepth1IsOrBoolAndMaxInt(t *testing.T) {
	types := lattice.GenLatticeTypes(1)
	var sawOrBool, sawMaxIntOnNonComparable bool
	for _, l := range types {
		switch v := l.(type) {
		case lattice.OrBool:
			sawOrBool = true
		case lattice.MaxInt:
			require.True(t, v.IntType.IsComparableInt())
		}
	}
	require.True(t, sawOrBool)
	_ = sawMaxIntOnNonComparable
}

func TestGenStructuresDepth1YieldsOnlySingletons(t *testing.T) {
	structures := lattice.GenStructures(1)
	for _, s := range structures {
		require.Len(t, s, 1)
		switch s[0].(type) {
		case lattice.OrBool, lattice.MaxInt:
		default:
			t.Fatalf("unexpected lattice at depth 1: %T", s[0])
		}
	}
}

func TestGenStructuresDedupsByStructuralKey(t *testing.T) {
	structures := lattice.GenStructures(2)
	seen := map[string]bool{}
	for _, s := range structures {
		key := s.Key()
		require.False(t, seen[key], "duplicate structure %s", key)
		seen[key] = true
	}
	require.NotEmpty(t, structures)
}

func TestIncreasingDepthStructuresFiltersNonIdempotentToNodeID(t *testing.T) {
	done := make(chan struct{})
	defer close(done)
	ch := lattice.IncreasingDepthStructures(done, true)
	for i := 0; i < 25; i++ {
		cand := <-ch
		require.True(t, cand.Structure.HasNodeID(), "structure %s lacks a node id", cand.Structure)
	}
}
