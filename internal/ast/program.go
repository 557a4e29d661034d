package ast

// PredicateSet is a set of predicates.
type PredicateSet map[Predicate]bool

// Contains reports membership.
func (s PredicateSet) Contains(p Predicate) bool {
	return s[p]
}

// Equal reports whether two sets hold the same predicates.
func (s PredicateSet) Equal(other PredicateSet) bool {
	if len(s) != len(other) {
		return false
	}
	for p := range s {
		if !other[p] {
			return false
		}
	}
	return true
}

// Predicates returns every predicate appearing anywhere in the program,
// whether in a head or in a body.
func (p Program) Predicates() PredicateSet {
	predicates := make(PredicateSet)
	for _, rule := range p.Rules {
		predicates[rule.Head.Predicate] = true
		for _, literal := range rule.Body {
			predicates[literal.Atom.Predicate] = true
		}
	}
	return predicates
}

// IDB returns the intensional predicates: those that head at least one rule
// with a non-empty body.
func (p Program) IDB() PredicateSet {
	idb := make(PredicateSet)
	for _, rule := range p.Rules {
		if len(rule.Body) != 0 {
			idb[rule.Head.Predicate] = true
		}
	}
	return idb
}

// EDB returns the extensional predicates: every predicate not in the IDB.
func (p Program) EDB() PredicateSet {
	idb := p.IDB()
	edb := make(PredicateSet)
	for predicate := range p.Predicates() {
		if !idb[predicate] {
			edb[predicate] = true
		}
	}
	return edb
}

// PersistentEDB returns the EDB predicates whose contents hold at every
// timestep. An EDB predicate is persistent when every rule it heads is
// deductive; a single @0, @k, @next or @async rule disqualifies it.
func (p Program) PersistentEDB() PredicateSet {
	edb := p.EDB()
	persistent := make(PredicateSet)
	for predicate := range edb {
		persistent[predicate] = true
	}
	for _, rule := range p.Rules {
		if edb[rule.Head.Predicate] && !rule.IsDeductive() {
			delete(persistent, rule.Head.Predicate)
		}
	}
	return persistent
}

// IsPositive reports whether the program contains no negative literals.
func (p Program) IsPositive() bool {
	for _, rule := range p.Rules {
		for _, literal := range rule.Body {
			if literal.IsNegative() {
				return false
			}
		}
	}
	return true
}

// IsSemipositive reports whether every negative literal is on an EDB
// predicate.
func (p Program) IsSemipositive() bool {
	idb := p.IDB()
	for _, rule := range p.Rules {
		for _, literal := range rule.Body {
			if literal.IsNegative() && idb[literal.Atom.Predicate] {
				return false
			}
		}
	}
	return true
}
