// Package einstein encodes the classic five-house "zebra puzzle" as a CNF
// formula: 5 houses, 5 categories of 5 attributes each, with the standard
// set of clues relating them, ported from original_source/einstein/einstein.py.
package einstein

import "github.com/gosat/cdcl/internal/sat"

const numHouses = 5

const (
	color = iota
	nationality
	drink
	cigarette
	pet
	numCategories
)

var categories = [][]string{
	color:       {"blue", "green", "red", "white", "yellow"},
	nationality: {"dane", "brit", "german", "swede", "norwegian"},
	drink:       {"beer", "coffee", "milk", "tea", "water"},
	cigarette:   {"blend", "bluemaster", "dunhill", "pallmall", "prince"},
	pet:         {"birds", "cats", "dogs", "fish", "horses"},
}

// NumVariables is the size of the puzzle's variable space: one boolean per
// (house, attribute) pair, 5 houses * 5 categories * 5 attributes.
const NumVariables = numHouses * numCategories * 5

// attr identifies one attribute of one category, e.g. (nationality, "brit").
type attr struct {
	category int
	index    int
}

func attribute(category int, name string) attr {
	for i, n := range categories[category] {
		if n == name {
			return attr{category: category, index: i}
		}
	}
	panic("einstein: unknown attribute " + name)
}

// varID returns the 0-based solver variable asserting that house (1-based)
// has attribute a.
func varID(house int, a attr) int {
	global := a.category*5 + a.index
	return (house - 1) + numHouses*global
}

// Solver is the subset of *sat.Solver's API the encoder writes into.
type Solver interface {
	AddVariable() int
	AddClause([]sat.Literal) error
}

// Encode declares the puzzle's 125 variables and adds its clauses to s:
// the exactly-one constraints for every (house, category) and
// (attribute, house) pairing, followed by the 15 clues of the original
// puzzle.
func Encode(s Solver) error {
	for i := 0; i < NumVariables; i++ {
		s.AddVariable()
	}

	for cat := 0; cat < numCategories; cat++ {
		for _, name := range categories[cat] {
			if err := exactlyOneHouse(s, attribute(cat, name)); err != nil {
				return err
			}
		}
		if err := exactlyOneAttribute(s, cat); err != nil {
			return err
		}
	}

	clues := []func(Solver) error{
		func(s Solver) error { return biImplication(s, attribute(nationality, "brit"), attribute(color, "red")) },
		func(s Solver) error { return biImplication(s, attribute(nationality, "swede"), attribute(pet, "dogs")) },
		func(s Solver) error { return biImplication(s, attribute(nationality, "dane"), attribute(drink, "tea")) },
		greenLeftOfWhite,
		func(s Solver) error { return biImplication(s, attribute(drink, "coffee"), attribute(color, "green")) },
		func(s Solver) error { return biImplication(s, attribute(cigarette, "pallmall"), attribute(pet, "birds")) },
		func(s Solver) error { return biImplication(s, attribute(color, "yellow"), attribute(cigarette, "dunhill")) },
		func(s Solver) error { return unit(s, 3, attribute(drink, "milk")) },
		func(s Solver) error { return unit(s, 1, attribute(nationality, "norwegian")) },
		func(s Solver) error { return neighbour(s, attribute(cigarette, "blend"), attribute(pet, "cats")) },
		func(s Solver) error { return neighbour(s, attribute(pet, "horses"), attribute(cigarette, "dunhill")) },
		func(s Solver) error {
			return biImplication(s, attribute(cigarette, "bluemaster"), attribute(drink, "beer"))
		},
		func(s Solver) error { return biImplication(s, attribute(nationality, "german"), attribute(cigarette, "prince")) },
		func(s Solver) error { return unit(s, 2, attribute(color, "blue")) },
		func(s Solver) error { return neighbour(s, attribute(cigarette, "blend"), attribute(drink, "water")) },
	}
	for _, clue := range clues {
		if err := clue(s); err != nil {
			return err
		}
	}
	return nil
}

// exactlyOneHouse asserts that exactly one house has attribute a: an
// at-least-one clause over all houses, plus a pairwise at-most-one clause
// for every pair of houses.
func exactlyOneHouse(s Solver, a attr) error {
	atLeastOne := make([]sat.Literal, numHouses)
	for h := 1; h <= numHouses; h++ {
		atLeastOne[h-1] = sat.PositiveLiteral(varID(h, a))
	}
	if err := s.AddClause(atLeastOne); err != nil {
		return err
	}
	for i := 1; i <= numHouses; i++ {
		for j := 1; j < i; j++ {
			lits := []sat.Literal{
				sat.NegativeLiteral(varID(i, a)),
				sat.NegativeLiteral(varID(j, a)),
			}
			if err := s.AddClause(lits); err != nil {
				return err
			}
		}
	}
	return nil
}

// exactlyOneAttribute asserts that every house has exactly one attribute of
// category cat: a pairwise at-most-one clause between each pair of that
// category's attributes, for every house (the at-least-one direction is
// implied by exactlyOneHouse already covering every attribute).
func exactlyOneAttribute(s Solver, cat int) error {
	names := categories[cat]
	for house := 1; house <= numHouses; house++ {
		for i := range names {
			for j := i + 1; j < len(names); j++ {
				lits := []sat.Literal{
					sat.NegativeLiteral(varID(house, attribute(cat, names[i]))),
					sat.NegativeLiteral(varID(house, attribute(cat, names[j]))),
				}
				if err := s.AddClause(lits); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

// biImplication asserts that a house has attribute a if and only if it has
// attribute b.
func biImplication(s Solver, a, b attr) error {
	for h := 1; h <= numHouses; h++ {
		la := sat.PositiveLiteral(varID(h, a))
		lb := sat.PositiveLiteral(varID(h, b))
		if err := s.AddClause([]sat.Literal{la.Opposite(), lb}); err != nil {
			return err
		}
		if err := s.AddClause([]sat.Literal{la, lb.Opposite()}); err != nil {
			return err
		}
	}
	return nil
}

// neighbour asserts that whichever house has attribute a, one of its
// (at most two) adjacent houses has attribute b.
func neighbour(s Solver, a, b attr) error {
	for h := 1; h <= numHouses; h++ {
		lits := []sat.Literal{sat.NegativeLiteral(varID(h, a))}
		if h > 1 {
			lits = append(lits, sat.PositiveLiteral(varID(h-1, b)))
		}
		if h < numHouses {
			lits = append(lits, sat.PositiveLiteral(varID(h+1, b)))
		}
		if err := s.AddClause(lits); err != nil {
			return err
		}
	}
	return nil
}

// unit forces house to have attribute a.
func unit(s Solver, house int, a attr) error {
	return s.AddClause([]sat.Literal{sat.PositiveLiteral(varID(house, a))})
}

// greenLeftOfWhite asserts that the green house is somewhere to the left of
// the white house (the original puzzle's one non-uniform clue: for each
// candidate green position, the white house must be at one of the positions
// to its right).
func greenLeftOfWhite(s Solver) error {
	green := attribute(color, "green")
	white := attribute(color, "white")
	for h := 1; h <= numHouses; h++ {
		lits := []sat.Literal{sat.NegativeLiteral(varID(h, green))}
		for right := h + 1; right <= numHouses; right++ {
			lits = append(lits, sat.PositiveLiteral(varID(right, white)))
		}
		if err := s.AddClause(lits); err != nil {
			return err
		}
	}
	return nil
}
