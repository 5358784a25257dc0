// Package proof builds and serializes resolution refutations: the sequence
// of pairwise resolutions ending in the empty clause that witnesses a CNF
// formula's unsatisfiability (spec §4.6).
package proof

// Node is one clause referenced by a refutation: either a base clause (an
// original clause, or the unit fact asserting a single forced literal),
// with both parents nil, or the resolvent of ParentA and ParentB on some
// variable, with Literals already containing the resolved result.
type Node struct {
	Literals []int // DIMACS-style signed ints, ascending, no trailing 0
	ParentA  *Node
	ParentB  *Node
}

func (n *Node) isBase() bool {
	return n.ParentA == nil && n.ParentB == nil
}
