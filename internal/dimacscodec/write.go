package dimacscodec

import (
	"bufio"
	"fmt"
	"io"

	"github.com/gosat/cdcl/internal/sat"
)

// Clauses is the subset of *sat.Solver's API needed to serialize its
// original clauses back to DIMACS text.
type Clauses interface {
	NumVariables() int
	NumConstraints() int
	EachConstraint(fn func(literals []sat.Literal) bool)
}

// WriteCNF writes solver's original clauses to w in DIMACS CNF text form
// (spec §8's round-trip property: reading the file back with Load yields an
// equisatisfiable formula).
func WriteCNF(w io.Writer, solver Clauses) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "p cnf %d %d\n", solver.NumVariables(), solver.NumConstraints()); err != nil {
		return err
	}

	var writeErr error
	solver.EachConstraint(func(literals []sat.Literal) bool {
		for _, l := range literals {
			if _, writeErr = fmt.Fprintf(bw, "%d ", l.DimacsInt()); writeErr != nil {
				return false
			}
		}
		_, writeErr = bw.WriteString("0\n")
		return writeErr == nil
	})
	if writeErr != nil {
		return writeErr
	}

	return bw.Flush()
}

// WriteModel writes a satisfying assignment in the one-line signed-literal
// form LoadModel reads back.
func WriteModel(w io.Writer, model []bool) error {
	bw := bufio.NewWriter(w)
	for v, val := range model {
		lit := v + 1
		if !val {
			lit = -lit
		}
		if _, err := fmt.Fprintf(bw, "%d ", lit); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString("0\n"); err != nil {
		return err
	}
	return bw.Flush()
}
