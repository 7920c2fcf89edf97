package cydb

import "github.com/cydbgo/cydb/pkg/cyutil"

// OrderCTEs reorders withs so that no entry appears before a CTE it
// depends on. deps maps a CTE alias to the set of other aliases its
// query references; aliases missing from deps are treated as having no
// dependencies. Returns an error if deps describes a cycle.
//
// Builders accept WITH entries in whatever order the caller chains
// them; a hand-written WITH clause with cross-references is a common
// source of "relation does not exist" errors when the wrong order is
// picked, so this is exposed for callers assembling CTEs programmatically
// rather than in dependency order.
func OrderCTEs(withs []*WithStatement, deps map[string]map[string]struct{}) ([]*WithStatement, error) {
	byAlias := make(map[string]*WithStatement, len(withs))
	names := make([]string, 0, len(withs))
	for _, w := range withs {
		byAlias[w.Alias] = w
		names = append(names, w.Alias)
	}

	graph := make(map[string]map[string]struct{}, len(deps))
	for name, refs := range deps {
		if _, ok := byAlias[name]; !ok {
			continue
		}
		cp := make(map[string]struct{}, len(refs))
		for ref := range refs {
			if _, ok := byAlias[ref]; ok {
				cp[ref] = struct{}{}
			}
		}
		graph[name] = cp
	}

	order, err := cyutil.GraphSort(names, graph)
	if err != nil {
		return nil, newBuilderError("OrderCTEs", "%v", err)
	}

	out := make([]*WithStatement, 0, len(order))
	for _, alias := range order {
		out = append(out, byAlias[alias])
	}
	return out, nil
}
