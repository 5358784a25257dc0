// Package dimacscodec loads and writes DIMACS CNF files (spec §7), the
// standard exchange format for SAT instances and models.
package dimacscodec

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/rhartert/dimacs"

	"github.com/gosat/cdcl/internal/sat"
)

// Solver is the subset of *sat.Solver's API a DIMACS file is loaded into.
type Solver interface {
	AddVariable() int
	AddClause([]sat.Literal) error
}

func open(filename string) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if hasGzipExt(filename) {
		gz, err := gzip.NewReader(rc)
		if err != nil {
			file.Close()
			return nil, err
		}
		rc = gz
	}
	return rc, nil
}

func hasGzipExt(filename string) bool {
	n := len(filename)
	return n > 3 && filename[n-3:] == ".gz"
}

// LoadFile parses the DIMACS CNF file at filename and loads its formula into
// solver. Files ending in ".gz" are transparently gunzipped.
func LoadFile(filename string, solver Solver) error {
	r, err := open(filename)
	if err != nil {
		return fmt.Errorf("dimacscodec: opening %q: %w", filename, err)
	}
	defer r.Close()
	return Load(r, solver)
}

// Load parses a DIMACS CNF stream and loads its formula into solver.
func Load(r io.Reader, solver Solver) error {
	return dimacs.ReadBuilder(r, &builder{solver: solver})
}

// builder adapts a Solver to the dimacs.Builder interface expected by
// dimacs.ReadBuilder.
type builder struct {
	solver Solver
}

func (b *builder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("dimacscodec: unsupported problem type %q", problem)
	}
	for i := 0; i < nVars; i++ {
		b.solver.AddVariable()
	}
	return nil
}

func (b *builder) Clause(tmpClause []int) error {
	clause := make([]sat.Literal, len(tmpClause))
	for i, l := range tmpClause {
		if l < 0 {
			clause[i] = sat.NegativeLiteral(-l - 1)
		} else {
			clause[i] = sat.PositiveLiteral(l - 1)
		}
	}
	return b.solver.AddClause(clause)
}

func (b *builder) Comment(_ string) error {
	return nil
}

// LoadModel reads a model file (one line of signed literals, no problem
// line) such as the ones WriteModel produces.
func LoadModel(filename string) ([]bool, error) {
	r, err := open(filename)
	if err != nil {
		return nil, fmt.Errorf("dimacscodec: opening %q: %w", filename, err)
	}
	defer r.Close()

	b := &modelBuilder{}
	if err := dimacs.ReadBuilder(r, b); err != nil {
		return nil, err
	}
	return b.model, nil
}

type modelBuilder struct {
	model []bool
}

func (b *modelBuilder) Problem(problem string, nVars int, nClauses int) error {
	return fmt.Errorf("dimacscodec: model files should not have a problem line")
}

func (b *modelBuilder) Comment(_ string) error { return nil }

func (b *modelBuilder) Clause(tmpClause []int) error {
	model := make([]bool, len(tmpClause))
	for i, l := range tmpClause {
		model[i] = l > 0
	}
	b.model = model
	return nil
}
