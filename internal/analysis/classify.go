package analysis

import (
	"github.com/ritamzico/dedalus/internal/ast"
)

// IsStratified reports whether the program's PDG is stratified.
func IsStratified(program ast.Program) bool {
	return IsStratifiedGraph(PDG(program))
}

// IsDeductiveStratified reports whether the program's deductive PDG is
// stratified.
func IsDeductiveStratified(program ast.Program) bool {
	return IsStratifiedGraph(DeductivePDG(program))
}

// HasGuardedAsynchrony reports whether every predicate heading an async rule
// also has a persistence rule of the form
//
//	p(X, Y, Z)@next :- p(X, Y, Z).
//
// whose body atom's terms equal the head's terms exactly. Without such a
// rule an asynchronous derivation would be dropped at the timestep after its
// delivery.
func HasGuardedAsynchrony(program ast.Program) bool {
	asyncPredicates := make(ast.PredicateSet)
	for _, rule := range program.Rules {
		if rule.IsAsync() {
			asyncPredicates[rule.Head.Predicate] = true
		}
	}

	guarded := make(ast.PredicateSet)
	for _, rule := range program.Rules {
		if !asyncPredicates[rule.Head.Predicate] || !rule.IsInductive() {
			continue
		}
		if len(rule.Body) != 1 || rule.Body[0].IsNegative() {
			continue
		}
		body := rule.Body[0].Atom
		if body.Predicate == rule.Head.Predicate && body.Equal(rule.Head) {
			guarded[rule.Head.Predicate] = true
		}
	}

	return asyncPredicates.Equal(guarded)
}

// IsDedalusS reports whether the program is in Dedalus^S: every EDB
// predicate is persistent, asynchrony is guarded, there are no constant time
// rules, and the PDG is stratified.
func IsDedalusS(program ast.Program) bool {
	for _, rule := range program.Rules {
		if rule.IsConstantTime() {
			return false
		}
	}
	return program.EDB().Equal(program.PersistentEDB()) &&
		HasGuardedAsynchrony(program) &&
		IsStratified(program)
}
