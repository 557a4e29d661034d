// Package analysis builds predicate dependency graphs of Dedalus programs
// and derives the structural properties the evaluator and classifier rely
// on: stratification, guarded asynchrony, and Dedalus^S membership.
package analysis

import (
	"github.com/ritamzico/dedalus/internal/ast"
)

// PDG returns the predicate dependency graph of the program. Vertices are
// the program's predicates. For every rule p :- ..., q, ... there is an edge
// q -> p. The edge is labeled negative if any contributing literal is
// negative and async if any contributing rule is async.
func PDG(program ast.Program) *Graph {
	g := NewGraph()
	for p := range program.Predicates() {
		g.AddNode(p)
	}

	for _, rule := range program.Rules {
		p := rule.Head.Predicate
		for _, literal := range rule.Body {
			q := literal.Atom.Predicate
			g.AddEdge(q, p, EdgeLabel{
				Negative: literal.IsNegative(),
				Async:    rule.IsAsync(),
			})
		}
	}
	return g
}

// DeductivePDG returns the dependency graph restricted to deductive rules.
// Vertices are the predicates heading some deductive rule; edges run only
// between those predicates. The async label is meaningless here and always
// false.
func DeductivePDG(program ast.Program) *Graph {
	deductivePredicates := make(ast.PredicateSet)
	for _, rule := range program.Rules {
		if rule.IsDeductive() {
			deductivePredicates[rule.Head.Predicate] = true
		}
	}

	g := NewGraph()
	for p := range deductivePredicates {
		g.AddNode(p)
	}

	for _, rule := range program.Rules {
		if !rule.IsDeductive() {
			continue
		}
		p := rule.Head.Predicate
		for _, literal := range rule.Body {
			q := literal.Atom.Predicate
			if !deductivePredicates[q] {
				continue
			}
			g.AddEdge(q, p, EdgeLabel{Negative: literal.IsNegative()})
		}
	}
	return g
}
