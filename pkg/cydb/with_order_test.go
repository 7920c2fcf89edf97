package cydb_test

import (
	"testing"

	"github.com/cydbgo/cydb/pkg/cydb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func indexOfAlias(ordered []*cydb.WithStatement, alias string) int {
	for i, w := range ordered {
		if w.Alias == alias {
			return i
		}
	}
	return -1
}

func TestOrderCTEsRespectsDependencies(t *testing.T) {
	withs := []*cydb.WithStatement{
		cydb.CTE("c", cydb.Select("x").Build()),
		cydb.CTE("a", cydb.Select("x").Build()),
		cydb.CTE("b", cydb.Select("x").Build()),
	}
	deps := map[string]map[string]struct{}{
		"b": {"a": {}},
		"c": {"b": {}},
	}
	ordered, err := cydb.OrderCTEs(withs, deps)
	require.NoError(t, err)
	require.Len(t, ordered, 3)

	assert.Less(t, indexOfAlias(ordered, "a"), indexOfAlias(ordered, "b"))
	assert.Less(t, indexOfAlias(ordered, "b"), indexOfAlias(ordered, "c"))
}

func TestOrderCTEsDetectsCycle(t *testing.T) {
	withs := []*cydb.WithStatement{
		cydb.CTE("a", cydb.Select("x").Build()),
		cydb.CTE("b", cydb.Select("x").Build()),
	}
	deps := map[string]map[string]struct{}{
		"a": {"b": {}},
		"b": {"a": {}},
	}
	_, err := cydb.OrderCTEs(withs, deps)
	assert.Error(t, err)
}

func TestOrderCTEsIgnoresUnknownDependencyAliases(t *testing.T) {
	withs := []*cydb.WithStatement{
		cydb.CTE("a", cydb.Select("x").Build()),
	}
	deps := map[string]map[string]struct{}{
		"a": {"ghost": {}},
	}
	ordered, err := cydb.OrderCTEs(withs, deps)
	require.NoError(t, err)
	require.Len(t, ordered, 1)
	assert.Equal(t, "a", ordered[0].Alias)
}
