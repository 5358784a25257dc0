// Command cdcl solves a DIMACS CNF instance with a CDCL SAT solver.
//
// Exit codes: 10 on SAT, 20 on UNSAT, 1 on a parse or I/O error.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/gosat/cdcl/internal/dimacscodec"
	"github.com/gosat/cdcl/internal/proof"
	"github.com/gosat/cdcl/internal/sat"
)

var (
	flagProof      = flag.String("proof", "", "write a resolution proof to this file when UNSAT")
	flagCPUProfile = flag.Bool("cpuprof", false, "save pprof CPU profile to cpuprof")
	flagMemProfile = flag.Bool("memprof", false, "save pprof memory profile to memprof")
)

type config struct {
	instanceFile string
	proofFile    string
	cpuProfile   bool
	memProfile   bool
}

func parseConfig() (*config, error) {
	flag.Parse()
	if flag.NArg() == 0 || flag.Arg(0) == "" {
		return nil, fmt.Errorf("missing instance file")
	}
	return &config{
		instanceFile: flag.Arg(0),
		proofFile:    *flagProof,
		cpuProfile:   *flagCPUProfile,
		memProfile:   *flagMemProfile,
	}, nil
}

func run(cfg *config) (sat.Status, error) {
	s := sat.NewDefaultSolver()
	if err := dimacscodec.LoadFile(cfg.instanceFile, s); err != nil {
		return sat.StatusUnknown, fmt.Errorf("could not load instance: %s", err)
	}

	fmt.Printf("c variables:  %d\n", s.NumVariables())
	fmt.Printf("c clauses:    %d\n", s.NumConstraints())

	t := time.Now()
	status := s.Solve()
	elapsed := time.Since(t)

	fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
	fmt.Printf("c conflicts:  %d (%.2f /sec)\n", s.TotalConflicts, float64(s.TotalConflicts)/elapsed.Seconds())
	fmt.Printf("c restarts:   %d\n", s.TotalRestarts)

	switch status {
	case sat.StatusSAT:
		if !s.VerifyModel() {
			return status, fmt.Errorf("internal error: returned model does not satisfy every clause")
		}
		fmt.Println("SAT")
		printModel(s.Model())
	case sat.StatusUNSAT:
		fmt.Println("UNSAT")
		if cfg.proofFile != "" {
			if err := writeProof(cfg.proofFile, s.Proof()); err != nil {
				return status, err
			}
		}
	}

	return status, nil
}

// printModel emits spec §6's SAT output: one "v=true"/"v=false" line per
// variable, 1-indexed.
func printModel(model []bool) {
	for v, val := range model {
		fmt.Printf("%d=%t\n", v+1, val)
	}
}

func writeProof(filename string, doc *proof.Document) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("could not write proof: %s", err)
	}
	defer f.Close()
	return proof.Write(f, doc)
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.cpuProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	status, err := run(cfg)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.memProfile {
		f, err := os.Create("memprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}

	switch status {
	case sat.StatusSAT:
		os.Exit(10)
	case sat.StatusUNSAT:
		os.Exit(20)
	default:
		os.Exit(1)
	}
}
