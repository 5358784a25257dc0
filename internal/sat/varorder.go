package sat

import "github.com/rhartert/yagh"

// VarOrder is the VSIDS-style decision heuristic of spec §4.5: each variable
// carries a floating-point activity score, and the next decision is always
// the unassigned variable with the highest score, ties broken by the heap's
// insertion order (deterministic — spec §9's resolution of the random
// tie-break open question).
type VarOrder struct {
	heap *yagh.IntMap[float64] // keyed by -score, so Pop yields the max score

	scores  []float64
	scoreInc   float64
	scoreDecay float64

	phases      []LBool
	phaseSaving bool
}

// NewVarOrder returns an empty VarOrder. scoreDecay is the divisor D applied
// to every score every K conflicts (spec §4.5; see Decay); phaseSaving
// controls whether a variable is re-assigned its last value on the next
// decision that selects it, as opposed to always true.
func NewVarOrder(scoreDecay float64, phaseSaving bool) *VarOrder {
	return &VarOrder{
		heap:        yagh.New[float64](0),
		scoreInc:    1,
		scoreDecay:  scoreDecay,
		phaseSaving: phaseSaving,
	}
}

// NewVar registers a new variable with the given initial activity (spec
// §4.5: "Initialize scores to the number of original clauses in which the
// literal appears").
func (vo *VarOrder) NewVar(initScore float64) {
	v := len(vo.phases)
	vo.scores = append(vo.scores, initScore)
	vo.phases = append(vo.phases, Unknown)
	vo.heap.GrowBy(1)
	vo.heap.Put(v, -initScore)
}

// Select pops and returns the decision literal with the highest activity
// among currently unassigned variables (spec §4.5).
func (vo *VarOrder) Select(s *Solver) Literal {
	for {
		next, ok := vo.heap.Pop()
		if !ok {
			panic("sat: Select called with no unassigned variable left")
		}
		if s.VarValue(next.Elem) != Unknown {
			continue
		}
		if vo.phaseSaving && vo.phases[next.Elem] == False {
			return NegativeLiteral(next.Elem)
		}
		return PositiveLiteral(next.Elem)
	}
}

// Update bumps v's activity by the current score increment (spec §4.5:
// "When a clause is learned, increment the score of every literal in it by
// 1"), rescaling every score if v's score has grown too large to keep
// float64 precision meaningful.
func (vo *VarOrder) Update(v int) {
	vo.scores[v] += vo.scoreInc
	if vo.heap.Contains(v) {
		vo.heap.Put(v, -vo.scores[v])
	}
	if vo.scores[v] > 1e100 {
		vo.rescale()
	}
}

// Decay implements the "every K conflicts, divide all scores by D" rule of
// spec §4.5 without an O(n) pass: dividing every existing score by D is, in
// relative terms, the same as leaving them untouched and multiplying the
// increment future bumps add by D, since the heap only ever compares scores
// to each other.
func (vo *VarOrder) Decay() {
	vo.scoreInc *= vo.scoreDecay
	if vo.scoreInc > 1e100 {
		vo.rescale()
	}
}

func (vo *VarOrder) rescale() {
	vo.scoreInc *= 1e-100
	for v, sc := range vo.scores {
		vo.scores[v] = sc * 1e-100
		if vo.heap.Contains(v) {
			vo.heap.Put(v, -vo.scores[v])
		}
	}
}

// Undo returns variable v to the set of decidable candidates, recording val
// as its saved phase if phase saving is enabled. Called by the solver when v
// is unassigned by backtracking.
func (vo *VarOrder) Undo(v int, val LBool) {
	if vo.phaseSaving {
		vo.phases[v] = val
	}
	vo.heap.Put(v, -vo.scores[v])
}
