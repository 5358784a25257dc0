package einstein

import (
	"testing"

	"github.com/gosat/cdcl/internal/sat"
)

func TestEncodeIsSatisfiable(t *testing.T) {
	s := sat.NewDefaultSolver()
	if err := Encode(s); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if got, want := s.NumVariables(), NumVariables; got != want {
		t.Fatalf("NumVariables() = %d, want %d", got, want)
	}

	status := s.Solve()
	if status != sat.StatusSAT {
		t.Fatalf("Solve() = %v, want %v", status, sat.StatusSAT)
	}
	if !s.VerifyModel() {
		t.Fatal("VerifyModel() = false, want true")
	}

	model := s.Model()
	// The German owns the fish: nationality(german) and pet(fish) must hold
	// in the same house (the puzzle's traditional question).
	german := attribute(nationality, "german")
	fish := attribute(pet, "fish")
	var germanHouse, fishHouse int
	for h := 1; h <= numHouses; h++ {
		if model[varID(h, german)] {
			germanHouse = h
		}
		if model[varID(h, fish)] {
			fishHouse = h
		}
	}
	if germanHouse != fishHouse {
		t.Errorf("german lives in house %d, fish owner lives in house %d, want them equal", germanHouse, fishHouse)
	}
}
