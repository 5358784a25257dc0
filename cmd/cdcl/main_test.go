package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gosat/cdcl/internal/sat"
)

func writeInstance(t *testing.T, cnf string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "instance.cnf")
	if err := os.WriteFile(path, []byte(cnf), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRunSAT(t *testing.T) {
	path := writeInstance(t, "p cnf 1 1\n1 0\n")
	status, err := run(&config{instanceFile: path})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if status != sat.StatusSAT {
		t.Errorf("status = %v, want %v", status, sat.StatusSAT)
	}
}

func TestRunUNSAT(t *testing.T) {
	path := writeInstance(t, "p cnf 1 2\n1 0\n-1 0\n")
	proofPath := filepath.Join(t.TempDir(), "out.proof")

	status, err := run(&config{instanceFile: path, proofFile: proofPath})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if status != sat.StatusUNSAT {
		t.Errorf("status = %v, want %v", status, sat.StatusUNSAT)
	}
	if _, err := os.Stat(proofPath); err != nil {
		t.Errorf("proof file was not written: %v", err)
	}
}

func TestRunMissingFile(t *testing.T) {
	_, err := run(&config{instanceFile: filepath.Join(t.TempDir(), "does-not-exist.cnf")})
	if err == nil {
		t.Fatal("run: expected an error for a missing instance file")
	}
}
