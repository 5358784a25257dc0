package sat

import "strings"

// Clause is a disjunction of literals stored with the two-watched-literal
// scheme: literals[0] and literals[1] are always the clause's current watched
// literals, and Propagate relies on that invariant to do O(1) amortized work
// per assignment.
//
// Per the no-deletion lifecycle of spec §3 ("clauses ... never destroyed"),
// a Clause is immutable once created except for the watched-literal swaps
// Propagate performs and the literals Simplify discards; it is never removed
// from the ClauseStore that owns it.
type Clause struct {
	id int

	// The clause's literals. Always at least two (unit and empty clauses
	// are resolved directly against the trail at creation time and never
	// become a *Clause; see NewClause).
	literals []Literal

	// Speeds up the search for a new watched literal by resuming from the
	// position the previous search stopped at.
	prevPos int

	learnt bool

	// Literal block distance: the number of distinct decision levels among
	// the clause's literals at the time it was learned. Used by the search
	// driver's glucose-style restart scheduling (see observeLearntQuality);
	// this module has no clause-deletion policy to feed it into.
	lbd int
}

// NewClause builds a clause from tmpLiterals. If the clause is learned, its
// literals are assumed already simplified (deduplicated, tautology- and
// false-literal free) by the caller's conflict analysis. If it is original,
// NewClause performs that simplification itself against the current
// assignment.
//
// It returns (nil, true) if the clause was satisfied outright (including
// unit and tautological clauses, which are resolved immediately), (nil,
// false) if the clause is empty (the formula is unsatisfiable at the root),
// and (c, true) otherwise.
func NewClause(s *Solver, tmpLiterals []Literal, learnt bool) (*Clause, bool) {
	size := len(tmpLiterals)

	if !learnt {
		seen := map[Literal]struct{}{}
		for i := size - 1; i >= 0; i-- {
			if _, ok := seen[tmpLiterals[i].Opposite()]; ok {
				return nil, true // tautology
			}
			if _, ok := seen[tmpLiterals[i]]; ok {
				size--
				tmpLiterals[i], tmpLiterals[size] = tmpLiterals[size], tmpLiterals[i]
				continue
			}
			seen[tmpLiterals[i]] = struct{}{}

			switch s.LitValue(tmpLiterals[i]) {
			case True:
				return nil, true
			case False:
				size--
				tmpLiterals[i], tmpLiterals[size] = tmpLiterals[size], tmpLiterals[i]
			}
		}
		tmpLiterals = tmpLiterals[:size]
	}

	switch size {
	case 0:
		return nil, false
	case 1:
		return nil, s.enqueue(tmpLiterals[0], nil)
	default:
		c := &Clause{
			prevPos:  2,
			learnt:   learnt,
			literals: append([]Literal(nil), tmpLiterals...),
		}
		if learnt {
			c.lbd = countDistinctLevels(s, c.literals)

			// Watch the literal asserted at the highest level alongside the
			// asserting literal (literals[0]) so that backtracking to the
			// backtrack level immediately re-triggers propagation.
			maxLevel, wl := -1, -1
			for i, lit := range c.literals {
				if lvl := s.level[lit.VarID()]; lvl > maxLevel {
					maxLevel, wl = lvl, i
				}
			}
			c.literals[wl], c.literals[1] = c.literals[1], c.literals[wl]
		}

		s.Watch(c, c.literals[0].Opposite(), c.literals[1])
		s.Watch(c, c.literals[1].Opposite(), c.literals[0])

		return c, true
	}
}

func countDistinctLevels(s *Solver, literals []Literal) int {
	seen := map[int]struct{}{}
	for _, l := range literals {
		seen[s.level[l.VarID()]] = struct{}{}
	}
	return len(seen)
}

// Learnt reports whether the clause was produced by conflict analysis.
func (c *Clause) Learnt() bool { return c.learnt }

// LBD returns the clause's literal block distance, computed when it was
// learned (always 0 for original clauses).
func (c *Clause) LBD() int { return c.lbd }

// Literals returns the clause's current literals. Callers must not retain
// or mutate the returned slice: Propagate may rewrite it in place.
func (c *Clause) Literals() []Literal { return c.literals }

// ID is the clause's stable handle, assigned by the ClauseStore that created
// it (spec §4.2).
func (c *Clause) ID() int { return c.id }

// Simplify removes literals falsified at the root level (decision level 0)
// in place. It returns true if the clause is satisfied at the root level, in
// which case its content is no longer meaningful (but the Clause itself is
// still retained by the ClauseStore, per the no-deletion lifecycle).
func (c *Clause) Simplify(s *Solver) bool {
	k := 0
	for _, lit := range c.literals {
		switch s.LitValue(lit) {
		case True:
			return true
		case False:
			// discard
		default:
			c.literals[k] = lit
			k++
		}
	}
	c.literals = c.literals[:k]
	return false
}

// Propagate is called when literal l (one of the clause's two watched
// literals, negated) has just become satisfied. It looks for a replacement
// watched literal; if none is found, the clause is unit or falsified under
// l's opposite and Propagate enqueues the forced literal (returning true) or
// signals a conflict (returning false, via the Solver's enqueue contract).
func (c *Clause) Propagate(s *Solver, l Literal) bool {
	opp := l.Opposite()
	if c.literals[0] == opp {
		c.literals[0] = c.literals[1]
		c.literals[1] = opp
	}

	if s.LitValue(c.literals[0]) == True {
		s.Watch(c, l, c.literals[0])
		return true
	}

	if c.prevPos >= len(c.literals) {
		c.prevPos = 2
	}
	for i, lit := range c.literals[c.prevPos:] {
		if s.LitValue(lit) != False {
			c.prevPos += i
			c.literals[1] = lit
			c.literals[c.prevPos] = l.Opposite()
			s.Watch(c, lit.Opposite(), c.literals[0])
			return true
		}
	}
	for i, lit := range c.literals[2:c.prevPos] {
		if s.LitValue(lit) != False {
			c.prevPos = i + 2
			c.literals[1] = lit
			c.literals[c.prevPos] = l.Opposite()
			s.Watch(c, lit.Opposite(), c.literals[0])
			return true
		}
	}

	s.Watch(c, l, c.literals[0])
	return s.enqueue(c.literals[0], c)
}

// ExplainConflict returns the negation of every literal in c, appended to
// dst[:0]. It is used by conflict analysis when c is itself falsified.
func (c *Clause) ExplainConflict(dst []Literal) []Literal {
	dst = dst[:0]
	for _, l := range c.literals {
		dst = append(dst, l.Opposite())
	}
	return dst
}

// ExplainAssign returns the negation of every literal but the first,
// appended to dst[:0]. It is used by conflict analysis when c is the
// antecedent of its first literal's assignment.
func (c *Clause) ExplainAssign(dst []Literal) []Literal {
	dst = dst[:0]
	for _, l := range c.literals[1:] {
		dst = append(dst, l.Opposite())
	}
	return dst
}

func (c *Clause) String() string {
	if len(c.literals) == 0 {
		return "Clause[]"
	}
	var sb strings.Builder
	sb.WriteString("Clause[")
	sb.WriteString(c.literals[0].String())
	for _, l := range c.literals[1:] {
		sb.WriteByte(' ')
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
