package cyutil_test

import (
	"testing"

	"github.com/cydbgo/cydb/pkg/cyutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphSortOrdersByDependency(t *testing.T) {
	names := []string{"a", "b", "c"}
	depGraph := map[string]map[string]struct{}{
		"b": {"a": struct{}{}},
		"c": {"b": struct{}{}},
	}
	sorted, err := cyutil.GraphSort(names, depGraph)
	require.NoError(t, err)

	pos := map[string]int{}
	for i, n := range sorted {
		pos[n] = i
	}
	assert.Less(t, pos["a"], pos["b"])
	assert.Less(t, pos["b"], pos["c"])
}

func TestGraphSortDetectsCycle(t *testing.T) {
	names := []string{"a", "b"}
	depGraph := map[string]map[string]struct{}{
		"a": {"b": struct{}{}},
		"b": {"a": struct{}{}},
	}
	_, err := cyutil.GraphSort(names, depGraph)
	assert.Error(t, err)
}

func TestGraphSortHandlesDisconnectedNodes(t *testing.T) {
	names := []string{"x", "y"}
	sorted, err := cyutil.GraphSort(names, map[string]map[string]struct{}{})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"x", "y"}, sorted)
}

func TestGetValueNestedLookup(t *testing.T) {
	m := map[string]interface{}{
		"a": map[string]interface{}{
			"b": "hello",
		},
	}
	v, err := cyutil.GetValue(m, []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, "hello", v)
}

func TestGetValueEmptyKeysReturnsWholeMap(t *testing.T) {
	m := map[string]interface{}{"a": 1}
	v, err := cyutil.GetValue(m, []string{})
	require.NoError(t, err)
	assert.Equal(t, m, v)
}

func TestGetValueIgnoreCase(t *testing.T) {
	m := map[string]interface{}{"Name": "bob"}
	v, err := cyutil.GetValue(m, []string{"name"}, true)
	require.NoError(t, err)
	assert.Equal(t, "bob", v)

	_, err = cyutil.GetValue(m, []string{"name"}, false)
	assert.Error(t, err)
}

func TestGetValueMissingKeyErrors(t *testing.T) {
	m := map[string]interface{}{"a": 1}
	_, err := cyutil.GetValue(m, []string{"missing"})
	assert.Error(t, err)
}

func TestGetValueNonMapIntermediateErrors(t *testing.T) {
	m := map[string]interface{}{"a": "not a map"}
	_, err := cyutil.GetValue(m, []string{"a", "b"})
	assert.Error(t, err)
}
