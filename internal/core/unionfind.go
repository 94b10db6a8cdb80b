// ABOUTME: Union-find over event IDs with path compression and union by rank
// ABOUTME: Used by pattern detection to merge similarity edges into clusters
package core

type unionFind struct {
	parent map[string]string
	rank   map[string]int
}

func newUnionFind(ids []string) *unionFind {
	uf := &unionFind{
		parent: make(map[string]string, len(ids)),
		rank:   make(map[string]int, len(ids)),
	}
	for _, id := range ids {
		uf.parent[id] = id
	}
	return uf
}

// find returns the root of the component containing id, compressing the
// path as it walks.
func (uf *unionFind) find(id string) string {
	parent, ok := uf.parent[id]
	if !ok {
		return id
	}
	if parent != id {
		root := uf.find(parent)
		uf.parent[id] = root
		return root
	}
	return id
}

// union merges the components containing a and b. Returns true when they
// were previously separate.
func (uf *unionFind) union(a, b string) bool {
	rootA := uf.find(a)
	rootB := uf.find(b)
	if rootA == rootB {
		return false
	}
	switch {
	case uf.rank[rootA] < uf.rank[rootB]:
		uf.parent[rootA] = rootB
	case uf.rank[rootA] > uf.rank[rootB]:
		uf.parent[rootB] = rootA
	default:
		uf.parent[rootB] = rootA
		uf.rank[rootA]++
	}
	return true
}

// components groups every known ID by its root.
func (uf *unionFind) components() map[string][]string {
	groups := make(map[string][]string)
	for id := range uf.parent {
		root := uf.find(id)
		groups[root] = append(groups[root], id)
	}
	return groups
}
