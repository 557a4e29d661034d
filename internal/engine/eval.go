package engine

import (
	"iter"

	"github.com/ritamzico/dedalus/internal/ast"
)

// Bindings maps variables to domain values during the evaluation of one
// rule.
type Bindings map[ast.Variable]string

// substitute grounds an atom under the bindings: constants contribute their
// symbol, variables their bound value. Substituting an unbound variable is a
// bug in the caller and panics.
func substitute(atom ast.Atom, bindings Bindings) Tuple {
	values := make(Tuple, len(atom.Terms))
	for i, term := range atom.Terms {
		switch t := term.(type) {
		case ast.Constant:
			values[i] = t.Symbol
		case ast.Variable:
			value, bound := bindings[t]
			if !bound {
				panic(invariantViolation("substituting unbound variable %v in atom %v", t, atom))
			}
			values[i] = value
		}
	}
	return values
}

// unify matches a list of atoms against an equally long list of candidate
// tuples. Constants must equal the corresponding value; variables either
// extend the bindings or must agree with their existing binding. Returns the
// bindings and true on success, nil and false on mismatch. Length or arity
// mismatches are bugs in the caller and panic.
func unify(atoms []ast.Atom, tuples []Tuple) (Bindings, bool) {
	if len(atoms) != len(tuples) {
		panic(invariantViolation("unifying %d atoms against %d tuples", len(atoms), len(tuples)))
	}

	bindings := make(Bindings)
	for i, atom := range atoms {
		tuple := tuples[i]
		if len(atom.Terms) != len(tuple) {
			panic(invariantViolation("unifying atom %v of arity %d against tuple of length %d", atom, len(atom.Terms), len(tuple)))
		}
		for j, term := range atom.Terms {
			value := tuple[j]
			switch t := term.(type) {
			case ast.Constant:
				if t.Symbol != value {
					return nil, false
				}
			case ast.Variable:
				if bound, ok := bindings[t]; ok {
					if bound != value {
						return nil, false
					}
				} else {
					bindings[t] = value
				}
			}
		}
	}
	return bindings, true
}

// evalRule evaluates one rule against the database, yielding the derived
// head tuples lazily. The Cartesian product of the positive predicates'
// relations is unified against the positive atoms; on success every negative
// atom is grounded and checked absent from its relation before the head is
// emitted.
func evalRule(db Database, rule ast.Rule) iter.Seq[Tuple] {
	var positiveAtoms, negativeAtoms []ast.Atom
	for _, literal := range rule.Body {
		if literal.IsPositive() {
			positiveAtoms = append(positiveAtoms, literal.Atom)
		} else {
			negativeAtoms = append(negativeAtoms, literal.Atom)
		}
	}

	return func(yield func(Tuple) bool) {
		relations := make([][]Tuple, len(positiveAtoms))
		for i, atom := range positiveAtoms {
			relation, ok := db[atom.Predicate]
			if !ok {
				panic(invariantViolation("predicate %v is missing from the database", atom.Predicate))
			}
			relations[i] = relation.Tuples()
		}

		candidate := make([]Tuple, len(positiveAtoms))
		var emit func(i int) bool
		emit = func(i int) bool {
			if i < len(relations) {
				for _, tuple := range relations[i] {
					candidate[i] = tuple
					if !emit(i + 1) {
						return false
					}
				}
				return true
			}

			bindings, ok := unify(positiveAtoms, candidate)
			if !ok {
				return true
			}
			for _, atom := range negativeAtoms {
				if db[atom.Predicate].Contains(substitute(atom, bindings)) {
					return true
				}
			}
			return yield(substitute(rule.Head, bindings))
		}
		emit(0)
	}
}
