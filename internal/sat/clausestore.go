package sat

// ClauseStore owns every clause in the problem, originals and learned alike,
// and hands out stable handles for them (spec §4.2). A *Clause pointer is
// used directly as its own handle: the store never moves or reallocates a
// clause after creation, so the pointer stays valid for the solver's
// lifetime, including across AddLearned calls that happen after the handle
// was taken (e.g. antecedent references held by the trail).
type ClauseStore struct {
	constraints []*Clause
	learnts     []*Clause
	nextID      int
}

// AddOriginal registers an original (non-learned) clause. c may be nil if
// NewClause resolved the input directly (unit, tautology, or empty clause)
// without allocating a Clause.
func (cs *ClauseStore) AddOriginal(c *Clause) {
	if c == nil {
		return
	}
	c.id = cs.nextID
	cs.nextID++
	cs.constraints = append(cs.constraints, c)
}

// AddLearned registers a clause produced by conflict analysis and returns
// its handle. c may be nil for the same reason as in AddOriginal (a learned
// unit clause is enqueued directly and never allocated).
func (cs *ClauseStore) AddLearned(c *Clause) *Clause {
	if c == nil {
		return nil
	}
	c.id = cs.nextID
	cs.nextID++
	cs.learnts = append(cs.learnts, c)
	return c
}

// Get returns the clause identified by handle. The handle is simply the
// *Clause itself, so Get returns it unchanged; it exists to make the spec
// §4.2 get(handle) contract explicit at call sites.
func (cs *ClauseStore) Get(handle *Clause) *Clause { return handle }

// Iter calls fn for every clause in the store, originals first, in the order
// they were added (spec §4.2: "order preserved, both originals then
// learned"). Iteration stops early if fn returns false.
func (cs *ClauseStore) Iter(fn func(*Clause) bool) {
	for _, c := range cs.constraints {
		if !fn(c) {
			return
		}
	}
	for _, c := range cs.learnts {
		if !fn(c) {
			return
		}
	}
}

// NumLearnts returns the number of learned clauses.
func (cs *ClauseStore) NumLearnts() int { return len(cs.learnts) }

// Learnts returns the learned clauses, in creation order. Callers must not
// retain the returned slice across further learning.
func (cs *ClauseStore) Learnts() []*Clause { return cs.learnts }
