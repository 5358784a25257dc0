package proof

// Resolution is one step of a refutation: clause Result was obtained by
// resolving clause ParentA with clause ParentB. Ids index into the owning
// Document's Clauses slice.
type Resolution struct {
	ParentA int
	ParentB int
	Result  int
}

// Document is a complete, linearized resolution refutation (spec §6): the
// clauses it references, each assigned an id equal to its index in Clauses,
// and the sequence of resolutions connecting them. The last Resolution's
// Result clause is always the empty clause.
type Document struct {
	Clauses     [][]int // DIMACS literal form, no trailing 0
	Resolutions []Resolution
}

// Empty reports whether id identifies the empty clause.
func (d *Document) Empty(id int) bool {
	return len(d.Clauses[id]) == 0
}
