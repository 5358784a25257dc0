// Command einstein writes a DIMACS CNF encoding of the classic five-house
// zebra puzzle.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/gosat/cdcl/internal/dimacscodec"
	"github.com/gosat/cdcl/internal/einstein"
	"github.com/gosat/cdcl/internal/sat"
)

var flagOut = flag.String("out", "einstein.cnf", "output CNF file")

func run() error {
	flag.Parse()

	s := sat.NewDefaultSolver()
	if err := einstein.Encode(s); err != nil {
		return fmt.Errorf("could not encode puzzle: %s", err)
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
