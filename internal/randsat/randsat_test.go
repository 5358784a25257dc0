package randsat

import (
	"testing"

	"github.com/gosat/cdcl/internal/sat"
)

func TestGenerateIsDeterministic(t *testing.T) {
	opts := Options{NumVars: 20, Ratio: 4.27, K: 3, Seed: 1}

	s1 := sat.NewDefaultSolver()
	if err := Generate(s1, opts); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	s2 := sat.NewDefaultSolver()
	if err := Generate(s2, opts); err != nil {
		t.Fatalf("Generate: %v", err)
	}

	if s1.NumConstraints() != s2.NumConstraints() {
		t.Fatalf("same seed produced different clause counts: %d vs %d", s1.NumConstraints(), s2.NumConstraints())
	}

	var lits1, lits2 [][]sat.Literal
	s1.EachConstraint(func(l []sat.Literal) bool { lits1 = append(lits1, append([]sat.Literal(nil), l...)); return true })
	s2.EachConstraint(func(l []sat.Literal) bool { lits2 = append(lits2, append([]sat.Literal(nil), l...)); return true })

	for i := range lits1 {
		if len(lits1[i]) != len(lits2[i]) {
			t.Fatalf("clause %d length mismatch: %v vs %v", i, lits1[i], lits2[i])
		}
		for j := range lits1[i] {
			if lits1[i][j] != lits2[i][j] {
				t.Errorf("clause %d literal %d mismatch: %v vs %v", i, j, lits1[i][j], lits2[i][j])
			}
		}
	}
}

func TestGenerateRejectsKLargerThanN(t *testing.T) {
	s := sat.NewDefaultSolver()
	err := Generate(s, Options{NumVars: 2, Ratio: 1, K: 5, Seed: 1})
	if err == nil {
		t.Fatal("Generate: expected an error when k exceeds the variable count")
	}
}
