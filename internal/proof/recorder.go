package proof

import (
	"sort"
	"strconv"
	"strings"
)

// Recorder accumulates the Nodes of a resolution refutation as it is built
// and deduplicates repeated clauses by content, so that a clause reached by
// more than one path through the implication graph is only assigned one id
// and only emitted once (spec §4.6: "Duplicate result clauses are emitted at
// most once").
type Recorder struct {
	byKey map[string]*Node
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{byKey: map[string]*Node{}}
}

// Base registers (or looks up) a leaf clause: an original clause, or the
// singleton unit fact asserting one forced literal.
func (r *Recorder) Base(literals []int) *Node {
	return r.intern(literals, nil, nil)
}

// Resolve registers (or looks up) the resolvent of a and b, whose literals
// the caller has already computed.
func (r *Recorder) Resolve(a, b *Node, result []int) *Node {
	return r.intern(result, a, b)
}

func (r *Recorder) intern(literals []int, a, b *Node) *Node {
	sorted := append([]int(nil), literals...)
	sort.Ints(sorted)
	k := key(sorted)
	if n, ok := r.byKey[k]; ok {
		return n
	}
	n := &Node{Literals: sorted, ParentA: a, ParentB: b}
	r.byKey[k] = n
	return n
}

func key(sortedLiterals []int) string {
	var sb strings.Builder
	for _, l := range sortedLiterals {
		sb.WriteString(strconv.Itoa(l))
		sb.WriteByte(' ')
	}
	return sb.String()
}

// Document linearizes the refutation reachable from root (the empty clause)
// into the format spec §6 describes: a post-order traversal of the
// ParentA/ParentB DAG assigns each clause an id the first time it is
// reached, and every non-base node contributes one resolution triple.
func (r *Recorder) Document(root *Node) *Document {
	doc := &Document{}
	ids := map[*Node]int{}

	var visit func(n *Node)
	visit = func(n *Node) {
		if _, ok := ids[n]; ok {
			return
		}
		if !n.isBase() {
			visit(n.ParentA)
			visit(n.ParentB)
		}
		id := len(doc.Clauses)
		ids[n] = id
		doc.Clauses = append(doc.Clauses, n.Literals)
		if !n.isBase() {
			doc.Resolutions = append(doc.Resolutions, Resolution{
				ParentA: ids[n.ParentA],
				ParentB: ids[n.ParentB],
				Result:  id,
			})
		}
	}
	visit(root)

	return doc
}
