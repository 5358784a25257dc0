// Package randsat generates random k-CNF instances for studying the
// satisfiability phase transition, in the style of
// original_source/Stage 2.2: a fixed variable count n and a clause/variable
// ratio r together determine the instance family Fk(n, rn); unlike the
// original script, which read pre-generated instance files off disk and
// labeled them by invoking an external solver, Generate produces instances
// directly and takes an explicit seed so a run is reproducible.
package randsat

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/gosat/cdcl/internal/sat"
)

const defaultK = 3

// Options configures a random k-CNF instance.
type Options struct {
	NumVars int     // n
	Ratio   float64 // r: clauses generated is round(r * n)
	K       int     // literals per clause; 0 defaults to 3
	Seed    uint64
}

// Solver is the subset of *sat.Solver's API Generate writes into.
type Solver interface {
	AddVariable() int
	AddClause([]sat.Literal) error
}

// Generate declares opts.NumVars variables and adds round(opts.Ratio *
// opts.NumVars) random clauses of opts.K literals each to s. Each clause
// picks K distinct variables uniformly at random and negates each
// independently with probability 1/2.
func Generate(s Solver, opts Options) error {
	k := opts.K
	if k <= 0 {
		k = defaultK
	}
	if k > opts.NumVars {
		return fmt.Errorf("randsat: k (%d) exceeds number of variables (%d)", k, opts.NumVars)
	}

	for i := 0; i < opts.NumVars; i++ {
		s.AddVariable()
	}

	numClauses := int(math.Round(opts.Ratio * float64(opts.NumVars)))
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))

	for c := 0; c < numClauses; c++ {
		vars := rng.Perm(opts.NumVars)[:k]
		lits := make([]sat.Literal, k)
		for i, v := range vars {
			if rng.IntN(2) == 0 {
				lits[i] = sat.NegativeLiteral(v)
			} else {
				lits[i] = sat.PositiveLiteral(v)
			}
		}
		if err := s.AddClause(lits); err != nil {
			return err
		}
	}
	return nil
}
