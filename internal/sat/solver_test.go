package sat

import (
	"testing"

	"github.com/gosat/cdcl/internal/proof"
)

func lit(dimacs int) Literal {
	if dimacs < 0 {
		return NegativeLiteral(-dimacs - 1)
	}
	return PositiveLiteral(dimacs - 1)
}

func clause(dimacs ...int) []Literal {
	lits := make([]Literal, len(dimacs))
	for i, d := range dimacs {
		lits[i] = lit(d)
	}
	return lits
}

func mustAddClause(t *testing.T, s *Solver, dimacs ...int) {
	t.Helper()
	if err := s.AddClause(clause(dimacs...)); err != nil {
		t.Fatalf("AddClause(%v): %v", dimacs, err)
	}
}

// verifyModel checks every literal reported in clauses against model,
// independent of Solver.VerifyModel, against the original DIMACS-form input.
func verifyModel(t *testing.T, model []bool, clauses [][]int) {
	t.Helper()
	for _, c := range clauses {
		satisfied := false
		for _, d := range c {
			v := varOf(d)
			if (d > 0) == model[v] {
				satisfied = true
				break
			}
		}
		if !satisfied {
			t.Errorf("clause %v not satisfied by model %v", c, model)
		}
	}
}

func TestSolveUnitClauseIsSAT(t *testing.T) {
	s := NewDefaultSolver()
	s.AddVariable()
	mustAddClause(t, s, 1)

	if got := s.Solve(); got != StatusSAT {
		t.Fatalf("Solve() = %v, want %v", got, StatusSAT)
	}
	model := s.Model()
	if !model[0] {
		t.Errorf("model[0] = false, want true")
	}
}

func TestSolveContradictingUnitsIsUNSAT(t *testing.T) {
	s := NewDefaultSolver()
	s.AddVariable()
	mustAddClause(t, s, 1)
	mustAddClause(t, s, -1)

	if got := s.Solve(); got != StatusUNSAT {
		t.Fatalf("Solve() = %v, want %v", got, StatusUNSAT)
	}

	doc := s.Proof()
	if doc == nil {
		t.Fatal("Proof() = nil, want a refutation")
	}
	if len(doc.Resolutions) == 0 {
		t.Fatal("Proof() has no resolutions")
	}
	last := doc.Resolutions[len(doc.Resolutions)-1]
	if !doc.Empty(last.Result) {
		t.Errorf("final resolution's result clause is not empty: %v", doc.Clauses[last.Result])
	}
	verifyRefutation(t, doc)
}

func TestSolveTwoVariableContradictionIsUNSAT(t *testing.T) {
	s := NewDefaultSolver()
	s.AddVariable()
	s.AddVariable()
	mustAddClause(t, s, 1, 2)
	mustAddClause(t, s, -1)
	mustAddClause(t, s, -2)

	if got := s.Solve(); got != StatusUNSAT {
		t.Fatalf("Solve() = %v, want %v", got, StatusUNSAT)
	}
	verifyRefutation(t, s.Proof())
}

func TestSolveThreeVariableChainIsUNSAT(t *testing.T) {
	s := NewDefaultSolver()
	for i := 0; i < 3; i++ {
		s.AddVariable()
	}
	mustAddClause(t, s, 1, 2, 3)
	mustAddClause(t, s, -1, 2)
	mustAddClause(t, s, -2, 3)
	mustAddClause(t, s, -3)

	if got := s.Solve(); got != StatusUNSAT {
		t.Fatalf("Solve() = %v, want %v", got, StatusUNSAT)
	}
	verifyRefutation(t, s.Proof())
}

func TestSolveSatisfiableFormulaProducesVerifiedModel(t *testing.T) {
	s := NewDefaultSolver()
	for i := 0; i < 3; i++ {
		s.AddVariable()
	}
	clauses := [][]int{
		{1, 2, 3},
		{-1, 2},
		{-2, 3},
	}
	for _, c := range clauses {
		mustAddClause(t, s, c...)
	}

	if got := s.Solve(); got != StatusSAT {
		t.Fatalf("Solve() = %v, want %v", got, StatusSAT)
	}
	if !s.VerifyModel() {
		t.Fatal("VerifyModel() = false, want true")
	}
	verifyModel(t, s.Model(), clauses)
}

// verifyRefutation checks the soundness property of spec §8: every
// resolution step combines two clauses already present in the document into
// a valid resolvent, and the final result is the empty clause.
func verifyRefutation(t *testing.T, doc *proof.Document) {
	t.Helper()
	if doc == nil {
		t.Fatal("nil proof document")
	}
	for _, r := range doc.Resolutions {
		a := toSet(doc.Clauses[r.ParentA])
		b := toSet(doc.Clauses[r.ParentB])
		got := toSet(doc.Clauses[r.Result])

		pivot, ok := findPivot(a, b)
		if !ok {
			t.Fatalf("resolution %v: parents share no complementary literal", r)
		}
		want := map[int]bool{}
		for l := range a {
			if l != pivot && l != -pivot {
				want[l] = true
			}
		}
		for l := range b {
			if l != pivot && l != -pivot {
				want[l] = true
			}
		}
		for l := range got {
			if !want[l] {
				t.Errorf("resolution %v: result has unexpected literal %d", r, l)
			}
		}
		for l := range want {
			if !got[l] {
				t.Errorf("resolution %v: result missing expected literal %d", r, l)
			}
		}
	}
	last := doc.Resolutions[len(doc.Resolutions)-1]
	if !doc.Empty(last.Result) {
		t.Errorf("final clause is not empty: %v", doc.Clauses[last.Result])
	}
}

func toSet(lits []int) map[int]bool {
	m := make(map[int]bool, len(lits))
	for _, l := range lits {
		m[l] = true
	}
	return m
}

func findPivot(a, b map[int]bool) (int, bool) {
	for l := range a {
		if b[-l] {
			return l, true
		}
	}
	return 0, false
}
