package cyutil

import (
	"errors"
	"fmt"
	"strings"
)

// GraphSort topologically sorts names given a dependency graph (name ->
// set of names it depends on). Used to order CTEs so that no WITH entry
// references one defined after it.
func GraphSort(names []string, depGraph map[string]map[string]struct{}) ([]string, error) {
	sortedTables := []string{}

	for _, table := range names {
		if _, exists := depGraph[table]; !exists {
			sortedTables = append(sortedTables, table)
		}
	}

	for len(depGraph) > 0 {

		addSort := []string{}
		for table, deps := range depGraph {
			for _, st := range sortedTables {
				delete(deps, st)
			}
			if len(deps) == 0 {
				addSort = append(addSort, table)
				break // Break and restart the outer loop with the updated sortedTables
			}
		}

		// Detect cycles - if no progress was made in this iteration
		if len(addSort) == 0 {
			return nil, errors.New("circular dependency detected")
		}
		sortedTables = append(sortedTables, addSort...)
		for _, table := range addSort {
			delete(depGraph, table)
		}
	}
	return sortedTables, nil
}

// GetValue looks up a dotted key path inside a nested map.
func GetValue(m map[string]interface{}, keys []string, ignoreCase ...bool) (interface{}, error) {
	if len(keys) == 0 {
		return m, nil
	}

	currentKey := keys[0]
	remainingKeys := keys[1:]
	useIgnoreCase := len(ignoreCase) > 0 && ignoreCase[0]

	var nextMap map[string]interface{}
	var foundValue interface{}
	var keyFound bool

	if useIgnoreCase {
		for k, v := range m {
			if strings.EqualFold(k, currentKey) {
				foundValue = v
				keyFound = true
				break
			}
		}
	} else {
		foundValue, keyFound = m[currentKey]
	}

	if !keyFound {
		return nil, fmt.Errorf("key '%s' not found", currentKey)
	}

	if len(remainingKeys) == 0 {
		return foundValue, nil
	}

	var ok bool
	nextMap, ok = foundValue.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("value for key '%s' is not a map", currentKey)
	}

	return GetValue(nextMap, remainingKeys, ignoreCase...)
}
