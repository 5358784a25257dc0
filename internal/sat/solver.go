package sat

import (
	"fmt"
	"time"

	"github.com/gosat/cdcl/internal/proof"
)

// Status is the outcome of a call to Solve.
type Status int8

const (
	StatusUnknown Status = iota
	StatusSAT
	StatusUNSAT
)

func (st Status) String() string {
	switch st {
	case StatusSAT:
		return "SAT"
	case StatusUNSAT:
		return "UNSAT"
	default:
		return "UNKNOWN"
	}
}

// Options configures a Solver. See DefaultOptions for the values used when
// nothing more specific is required.
type Options struct {
	// VarDecay is the divisor applied to every variable's VSIDS score every
	// DecayEvery conflicts (spec §4.5).
	VarDecay float64
	// DecayEvery is the number of conflicts between two VSIDS decays
	// (spec §4.5's K, default 5).
	DecayEvery int
	// PhaseSaving re-assigns a variable the value it last held when it is
	// picked as a decision again, instead of always true.
	PhaseSaving bool
	// MaxConflicts stops the search and returns StatusUnknown once this many
	// conflicts have occurred. A negative value disables the limit.
	MaxConflicts int64
	// Timeout stops the search and returns StatusUnknown once this much wall
	// time has elapsed. A negative value disables the limit.
	Timeout time.Duration
}

// DefaultOptions mirrors the constants named in spec §4.5 (K=5, D=2) plus a
// conservative, disabled budget.
var DefaultOptions = Options{
	VarDecay:     2,
	DecayEvery:   5,
	PhaseSaving:  true,
	MaxConflicts: -1,
	Timeout:      -1,
}

// watcher is a clause attached to one literal's watch list: it is
// (re-)examined whenever that literal becomes true.
type watcher struct {
	clause *Clause
	// guard is one of the clause's own literals; if it already evaluates to
	// true there is no need to load the clause at all.
	guard Literal
}

// Solver is a single CDCL instance (spec §2). It owns all of its mutable
// state; nothing here is shared between Solver values.
type Solver struct {
	cs ClauseStore

	watchers  [][]watcher
	propQueue *Queue[Literal]

	assigns []LBool

	trail    []Literal
	trailLim []int
	reason   []*Clause
	level    []int

	order              *VarOrder
	decayEvery         int
	conflictsSinceDecay int

	unsat bool
	model []bool
	proof *proof.Document

	// originalClauses holds the literals of every clause passed to AddClause,
	// exactly as submitted (spec §7's "original formula" for re-evaluation),
	// independent of whatever NewClause did with them: a unit or tautological
	// clause never becomes a *Clause in the ClauseStore, but it is still part
	// of the formula EachConstraint/VerifyModel must cover.
	originalClauses [][]Literal

	TotalConflicts  int64
	TotalRestarts   int64
	TotalIterations int64
	startTime       time.Time

	maxConflicts int64
	timeout      time.Duration

	shortLBD, longLBD ema

	seenVar *ResetSet

	tmpWatchers []watcher
	tmpLearnts  []Literal
	tmpReason   []Literal
}

// NewSolver returns an empty Solver (no variables, no clauses) configured
// with ops.
func NewSolver(ops Options) *Solver {
	return &Solver{
		order:        NewVarOrder(ops.VarDecay, ops.PhaseSaving),
		decayEvery:   ops.DecayEvery,
		propQueue:    NewQueue[Literal](128),
		maxConflicts: ops.MaxConflicts,
		timeout:      ops.Timeout,
		seenVar:      &ResetSet{},
		shortLBD:     newEMA(0.10),
		longLBD:      newEMA(0.999),
	}
}

// NewDefaultSolver returns a Solver configured with DefaultOptions.
func NewDefaultSolver() *Solver {
	return NewSolver(DefaultOptions)
}

// AddVariable declares a new variable and returns its id.
func (s *Solver) AddVariable() int {
	v := s.NumVariables()
	s.watchers = append(s.watchers, nil, nil)
	s.reason = append(s.reason, nil)
	s.level = append(s.level, -1)
	s.assigns = append(s.assigns, Unknown, Unknown)
	s.seenVar.Expand()
	s.order.NewVar(0)
	return v
}

// NumVariables returns the number of declared variables.
func (s *Solver) NumVariables() int { return len(s.level) }

// NumAssigns returns the number of variables currently assigned.
func (s *Solver) NumAssigns() int { return len(s.trail) }

// NumConstraints returns the number of original clauses.
func (s *Solver) NumConstraints() int { return len(s.originalClauses) }

// NumLearnts returns the number of learned clauses.
func (s *Solver) NumLearnts() int { return s.cs.NumLearnts() }

// EachConstraint calls fn with the literals of every original clause, in the
// order they were added, stopping early if fn returns false. This includes
// clauses that collapsed to a unit fact or a tautology at AddClause time and
// so never became a *Clause in the ClauseStore.
func (s *Solver) EachConstraint(fn func(literals []Literal) bool) {
	for _, literals := range s.originalClauses {
		if !fn(literals) {
			return
		}
	}
}

// VarValue returns the current value of variable v.
func (s *Solver) VarValue(v int) LBool { return s.assigns[PositiveLiteral(v)] }

// LitValue returns the current value of literal l.
func (s *Solver) LitValue(l Literal) LBool { return s.assigns[l] }

// Watch registers clause c to be re-examined when watch becomes true; guard
// is the clause's other watched literal, used to skip already-satisfied
// clauses cheaply.
func (s *Solver) Watch(c *Clause, watch Literal, guard Literal) {
	s.watchers[watch] = append(s.watchers[watch], watcher{clause: c, guard: guard})
}

// AddClause adds an original clause at the root decision level (spec §4.2).
// It also seeds that clause's literals' VSIDS activity (spec §4.5:
// "Initialize scores to the number of original clauses in which the literal
// appears").
func (s *Solver) AddClause(literals []Literal) error {
	if s.decisionLevel() != 0 {
		return fmt.Errorf("sat: AddClause called above the root decision level")
	}
	original := append([]Literal(nil), literals...)
	s.originalClauses = append(s.originalClauses, original)

	for _, l := range literals {
		s.order.Update(l.VarID())
	}
	c, ok := NewClause(s, literals, false)
	s.cs.AddOriginal(c)
	if !ok {
		// The clause collapsed to empty against the root assignment: every
		// one of its literals was already false at level 0, so the formula
		// is unsatisfiable before Solve ever runs (spec §8 scenario 2, e.g.
		// two contradicting unit clauses). Build the refutation now, from
		// the clause's original literals, since NewClause never allocated a
		// *Clause for Solve's own conflict handling to see.
		s.unsat = true
		s.buildRefutationFromLiterals(original)
	}
	return nil
}

func (s *Solver) decisionLevel() int { return len(s.trailLim) }

// Model returns the satisfying assignment found by Solve, or nil if Solve
// has not returned StatusSAT.
func (s *Solver) Model() []bool { return s.model }

// Proof returns the resolution refutation built when the formula was found
// unsatisfiable, either by Solve on a level-0 conflict or by AddClause when a
// clause collapsed to empty at the root; it is nil otherwise.
func (s *Solver) Proof() *proof.Document { return s.proof }

func (s *Solver) shouldStop() bool {
	if s.maxConflicts >= 0 && s.TotalConflicts >= s.maxConflicts {
		return true
	}
	if s.timeout >= 0 && time.Since(s.startTime) >= s.timeout {
		return true
	}
	return false
}

// Solve runs the search driver of spec §4.5 to completion, a budget limit,
// or an external stop condition, and returns the outcome.
func (s *Solver) Solve() Status {
	if s.unsat {
		return StatusUNSAT
	}

	s.startTime = time.Now()

	if conflict := s.Propagate(); conflict != nil {
		s.unsat = true
		s.buildRefutation(conflict)
		return StatusUNSAT
	}
	s.simplifyRoot()

	for {
		if s.shouldStop() {
			return StatusUnknown
		}
		s.TotalIterations++

		if conflict := s.Propagate(); conflict != nil {
			s.TotalConflicts++

			if s.decisionLevel() == 0 {
				s.unsat = true
				s.buildRefutation(conflict)
				return StatusUNSAT
			}

			learnt, backtrackLevel := s.analyze(conflict)
			s.cancelUntil(backtrackLevel)
			c := s.record(learnt)

			for _, l := range learnt {
				s.order.Update(l.VarID())
			}
			s.observeLearntQuality(c)
			s.maybeDecayVarActivity()

			continue
		}

		if s.allAssigned() {
			s.saveModel()
			s.cancelUntil(0)
			return StatusSAT
		}

		if s.shouldRestart() {
			s.TotalRestarts++
			s.cancelUntil(0)
			s.shortLBD = newEMA(s.shortLBD.decay)
			s.simplifyRoot()
			continue
		}

		l := s.order.Select(s)
		s.assume(l)
	}
}

func (s *Solver) allAssigned() bool { return len(s.trail) == s.NumVariables() }

// simplifyRoot trims literals falsified at decision level 0 from every
// clause (spec's no-deletion lifecycle keeps the Clause itself, only its
// content shrinks): cheap, idempotent bookkeeping that keeps watched-literal
// searches from re-examining facts the root assignment has already settled.
// Only safe to call at decisionLevel() == 0.
func (s *Solver) simplifyRoot() {
	s.cs.Iter(func(c *Clause) bool {
		c.Simplify(s)
		return true
	})
}

func (s *Solver) maybeDecayVarActivity() {
	s.conflictsSinceDecay++
	if s.conflictsSinceDecay < s.decayEvery {
		return
	}
	s.conflictsSinceDecay = 0
	s.order.Decay()
}

// observeLearntQuality feeds the learned clause's LBD into the glucose-style
// restart trackers. c is nil when the learned clause was a unit, asserted
// directly at level 0; that case is treated as the best possible LBD (1).
func (s *Solver) observeLearntQuality(c *Clause) {
	lbd := 1.0
	if c != nil {
		lbd = float64(c.LBD())
	}
	s.shortLBD.add(lbd)
	s.longLBD.add(lbd)
}

const (
	restartMinConflicts = 50
	restartLBDFactor    = 1.25
)

func (s *Solver) shouldRestart() bool {
	if s.TotalConflicts < restartMinConflicts {
		return false
	}
	return s.shortLBD.val() > s.longLBD.val()*restartLBDFactor
}

// Propagate computes the unit-propagation closure (spec §4.3): it drains the
// propagation queue, and returns the first falsified clause it encounters,
// or nil once a full pass yields no new implications.
func (s *Solver) Propagate() *Clause {
	for s.propQueue.Size() > 0 {
		l := s.propQueue.Pop()

		s.tmpWatchers = append(s.tmpWatchers[:0], s.watchers[l]...)
		s.watchers[l] = s.watchers[l][:0]

		for i, w := range s.tmpWatchers {
			if s.LitValue(w.guard) == True {
				s.watchers[l] = append(s.watchers[l], w)
				continue
			}
			if w.clause.Propagate(s, l) {
				continue
			}
			// Conflict: restore the remaining watchers and report it.
			s.watchers[l] = append(s.watchers[l], s.tmpWatchers[i+1:]...)
			s.propQueue.Clear()
			return s.tmpWatchers[i].clause
		}
	}
	return nil
}

func (s *Solver) enqueue(l Literal, from *Clause) bool {
	switch s.LitValue(l) {
	case False:
		return false
	case True:
		return true
	default:
		v := l.VarID()
		s.assigns[l] = True
		s.assigns[l.Opposite()] = False
		s.level[v] = s.decisionLevel()
		s.reason[v] = from
		s.trail = append(s.trail, l)
		s.propQueue.Push(l)
		return true
	}
}

// explain returns the reason literals for l: if l is the sentinel -1, c is
// the falsified conflict clause and every one of its literals' negations is
// returned; otherwise c is l's antecedent and every literal but the one that
// asserted l is returned, negated.
func (s *Solver) explain(c *Clause, l Literal) []Literal {
	if l == -1 {
		s.tmpReason = c.ExplainConflict(s.tmpReason)
	} else {
		s.tmpReason = c.ExplainAssign(s.tmpReason)
	}
	return s.tmpReason
}

// analyze implements 1-UIP conflict analysis (spec §4.4): it walks the trail
// backwards from the conflict, resolving away every literal assigned at the
// current decision level until exactly one remains, which becomes the
// asserting literal of the learned clause.
func (s *Solver) analyze(confl *Clause) ([]Literal, int) {
	nImplicationPoints := 0

	s.tmpLearnts = s.tmpLearnts[:0]
	s.tmpLearnts = append(s.tmpLearnts, -1) // reserved for the UIP literal

	nextTrailIdx := len(s.trail) - 1
	l := Literal(-1) // sentinel: explain the conflict clause itself
	s.seenVar.Clear()
	backtrackLevel := 0

	for {
		for _, q := range s.explain(confl, l) {
			v := q.VarID()
			if s.seenVar.Contains(v) {
				continue
			}
			s.seenVar.Add(v)

			if s.level[v] == s.decisionLevel() {
				nImplicationPoints++
				continue
			}

			s.tmpLearnts = append(s.tmpLearnts, q.Opposite())
			if lvl := s.level[v]; lvl > backtrackLevel {
				backtrackLevel = lvl
			}
		}

		for {
			l = s.trail[nextTrailIdx]
			nextTrailIdx--
			v := l.VarID()
			confl = s.reason[v]
			if s.seenVar.Contains(v) {
				break
			}
		}

		nImplicationPoints--
		if nImplicationPoints <= 0 {
			break
		}
	}

	s.tmpLearnts[0] = l.Opposite()

	learnt := make([]Literal, len(s.tmpLearnts))
	copy(learnt, s.tmpLearnts)
	return learnt, backtrackLevel
}

// record adds a learned clause to the store and immediately enqueues its
// asserting literal: after cancelUntil(backtrackLevel), learnt is unit by
// construction (spec §4.4).
func (s *Solver) record(learnt []Literal) *Clause {
	c, _ := NewClause(s, learnt, true)
	s.enqueue(learnt[0], c)
	return s.cs.AddLearned(c)
}

func (s *Solver) assume(l Literal) bool {
	s.trailLim = append(s.trailLim, len(s.trail))
	return s.enqueue(l, nil)
}

func (s *Solver) undoOne() {
	l := s.trail[len(s.trail)-1]
	v := l.VarID()

	val := s.assigns[PositiveLiteral(v)]
	s.order.Undo(v, val)

	s.assigns[l] = Unknown
	s.assigns[l.Opposite()] = Unknown
	s.reason[v] = nil
	s.level[v] = -1

	s.trail = s.trail[:len(s.trail)-1]
}

func (s *Solver) cancel() {
	n := len(s.trail) - s.trailLim[len(s.trailLim)-1]
	for ; n != 0; n-- {
		s.undoOne()
	}
	s.trailLim = s.trailLim[:len(s.trailLim)-1]
}

func (s *Solver) cancelUntil(level int) {
	for s.decisionLevel() > level {
		s.cancel()
	}
}

// buildRefutation constructs the resolution proof witnessing unsatisfiability
// from a conflict clause found while deciding at the root level (spec §4.6):
// every literal on the trail at level 0 was forced there by unit propagation,
// so the conflict's implication graph restricted to level 0 is itself a
// resolution refutation, and buildRefutation simply replays it through a
// proof.Recorder.
func (s *Solver) buildRefutation(conflict *Clause) {
	s.buildRefutationFromLiterals(conflict.Literals())
}

// buildRefutationFromLiterals is buildRefutation's implementation, taking the
// falsified clause's literals directly: used both for a conflict discovered
// by Propagate (a real *Clause) and for a clause that collapsed to empty
// directly in AddClause (no *Clause was ever allocated for it).
func (s *Solver) buildRefutationFromLiterals(conflictLiterals []Literal) {
	rec := proof.NewRecorder()
	cache := map[Literal]*proof.Node{}

	var nodeForLiteral func(l Literal) *proof.Node
	nodeForLiteral = func(l Literal) *proof.Node {
		if n, ok := cache[l]; ok {
			return n
		}
		v := l.VarID()
		c := s.reason[v]
		var n *proof.Node
		if c == nil {
			n = rec.Base([]int{l.DimacsInt()})
		} else {
			cur := rec.Base(toDimacs(c.Literals()))
			curLits := append([]int(nil), toDimacs(c.Literals())...)
			for _, q := range c.Literals()[1:] {
				qn := nodeForLiteral(q.Opposite())
				curLits = resolveOut(curLits, q.VarID())
				cur = rec.Resolve(cur, qn, curLits)
			}
			n = cur
		}
		cache[l] = n
		return n
	}

	cur := rec.Base(toDimacs(conflictLiterals))
	curLits := append([]int(nil), toDimacs(conflictLiterals)...)
	for _, q := range conflictLiterals {
		qn := nodeForLiteral(q.Opposite())
		curLits = resolveOut(curLits, q.VarID())
		cur = rec.Resolve(cur, qn, curLits)
	}

	s.proof = rec.Document(cur)
}

func toDimacs(literals []Literal) []int {
	out := make([]int, len(literals))
	for i, l := range literals {
		out[i] = l.DimacsInt()
	}
	return out
}

// resolveOut returns the literals of lits whose variable is not v: the
// result of resolving a clause containing literal v or !v against another
// clause's unit fact for that variable.
func resolveOut(lits []int, v int) []int {
	out := lits[:0]
	for _, d := range lits {
		if varOf(d) != v {
			out = append(out, d)
		}
	}
	return append([]int(nil), out...)
}

func varOf(dimacs int) int {
	if dimacs < 0 {
		return -dimacs - 1
	}
	return dimacs - 1
}

// VerifyModel reports whether every original clause evaluates to true under
// the most recently saved model (spec §7: "every SAT result must be
// verifiable by re-evaluating the formula under the returned assignment").
// It panics if Solve has not returned StatusSAT.
func (s *Solver) VerifyModel() bool {
	if s.model == nil {
		panic("sat: VerifyModel called with no model available")
	}
	ok := true
	s.EachConstraint(func(literals []Literal) bool {
		satisfied := false
		for _, l := range literals {
			v := l.VarID()
			if (s.model[v] && l.IsPositive()) || (!s.model[v] && !l.IsPositive()) {
				satisfied = true
				break
			}
		}
		if !satisfied {
			ok = false
			return false
		}
		return true
	})
	return ok
}

func (s *Solver) saveModel() {
	model := make([]bool, s.NumVariables())
	for v := range model {
		lb := s.VarValue(v)
		if lb == Unknown {
			panic("sat: saveModel called with an unassigned variable")
		}
		model[v] = lb == True
	}
	s.model = model
}
