// Command gensat writes a random k-CNF DIMACS instance for studying the
// satisfiability phase transition (original_source/Stage 2.2).
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gosat/cdcl/internal/dimacscodec"
	"github.com/gosat/cdcl/internal/randsat"
	"github.com/gosat/cdcl/internal/sat"
)

var (
	flagNumVars = flag.Int("n", 50, "number of variables")
	flagRatio   = flag.Float64("ratio", 4.27, "clause/variable ratio")
	flagK       = flag.Int("k", 3, "literals per clause")
	flagSeed    = flag.Uint64("seed", 1, "random seed")
	flagOut     = flag.String("out", "instance.cnf", "output CNF file")
)

func run() error {
	flag.Parse()

	s := sat.NewDefaultSolver()
	opts := randsat.Options{
		NumVars: *flagNumVars,
		Ratio:   *flagRatio,
		K:       *flagK,
		Seed:    *flagSeed,
	}
	if err := randsat.Generate(s, opts); err != nil {
		return fmt.Errorf("could not generate instance: %s", err)
	}

	f, err := os.Create(*flagOut)
	if err != nil {
		return fmt.Errorf("could not create %q: %s", *flagOut, err)
	}
	defer f.Close()

	if err := dimacscodec.WriteCNF(f, s); err != nil {
		return fmt.Errorf("could not write %q: %s", *flagOut, err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
