// Package unionfind provides a disjoint-set forest over dense integer ids.
package unionfind

// node is one arena slot. A root has parent == its own index.
type node struct {
	parent int
	rank   int
}

// DisjointSet tracks merge-only equivalence classes over 0..n-1.
// Indices are assumed valid; out-of-range ids panic like any slice access.
type DisjointSet struct {
	nodes []node
}

// New creates n singleton sets.
func New(n int) *DisjointSet {
	nodes := make([]node, n)
	for i := range nodes {
		nodes[i].parent = i
	}
	return &DisjointSet{nodes: nodes}
}

// Len returns the number of elements.
func (d *DisjointSet) Len() int {
	return len(d.nodes)
}

// Find returns the root of i's set and points every node on the path
// directly at that root.
func (d *DisjointSet) Find(i int) int {
	root := i
	for d.nodes[root].parent != root {
		root = d.nodes[root].parent
	}
	for d.nodes[i].parent != root {
		next := d.nodes[i].parent
		d.nodes[i].parent = root
		i = next
	}
	return root
}

// Union merges the sets holding i and j. The lower-rank root goes under the
// higher-rank one; on a tie j's root goes under i's root.
func (d *DisjointSet) Union(i, j int) {
	a, b := d.Find(i), d.Find(j)
	if a == b {
		return
	}

	switch {
	case d.nodes[a].rank > d.nodes[b].rank:
		d.nodes[b].parent = a
	case d.nodes[a].rank < d.nodes[b].rank:
		d.nodes[a].parent = b
	default:
		d.nodes[b].parent = a
		d.nodes[a].rank++
	}
}

// Connected reports whether every element shares element 0's root.
// Empty and single-element sets are trivially connected.
func (d *DisjointSet) Connected() bool {
	if len(d.nodes) < 2 {
		return true
	}
	root := d.Find(0)
	for i := 1; i < len(d.nodes); i++ {
		if d.Find(i) != root {
			return false
		}
	}
	return true
}

// ConnectedPair reports whether i and j are in the same set.
func (d *DisjointSet) ConnectedPair(i, j int) bool {
	return d.Find(i) == d.Find(j)
}

// Components returns the members of every set, ordered by their smallest
// member. Members within a set are ascending.
func (d *DisjointSet) Components() [][]int {
	index := make(map[int]int)
	var out [][]int
	for i := range d.nodes {
		root := d.Find(i)
		k, ok := index[root]
		if !ok {
			k = len(out)
			index[root] = k
			out = append(out, nil)
		}
		out[k] = append(out[k], i)
	}
	return out
}
