// Package desugar rewrites implicitly-located rules by inserting an explicit
// location variable.
package desugar

import (
	"github.com/ritamzico/dedalus/internal/ast"
)

func atomContainsLocation(atom ast.Atom) bool {
	for _, term := range atom.Terms {
		if term.IsLocation() {
			return true
		}
	}
	return false
}

func ruleContainsLocation(rule ast.Rule) bool {
	for _, atom := range rule.Atoms() {
		if atomContainsLocation(atom) {
			return true
		}
	}
	return false
}

func prependLocation(atom ast.Atom, location ast.Term) ast.Atom {
	terms := make([]ast.Term, 0, len(atom.Terms)+1)
	terms = append(terms, location)
	terms = append(terms, atom.Terms...)
	return ast.Atom{Predicate: atom.Predicate, Terms: terms}
}

// Desugar inserts implicit location specifiers. A rule with no location term
// anywhere gets a fresh "#_L" variable prepended to the head and to every
// body atom:
//
//	p(X, Y) :- q(X, Z), r(Z, Y).
//
// becomes
//
//	p(#_L, X, Y) :- q(#_L, X, Z), r(#_L, Z, Y).
//
// The "_L" name starts with an underscore, so it cannot collide with any
// identifier from the source program. Rules that already mention a location
// term are copied unchanged, which makes the pass idempotent. The input
// program is not mutated; the result shares no term slices with it.
func Desugar(program ast.Program) ast.Program {
	location := ast.Variable{Symbol: "_L", Location: true}

	rules := make([]ast.Rule, len(program.Rules))
	for i, rule := range program.Rules {
		if ruleContainsLocation(rule) {
			body := make([]ast.Literal, len(rule.Body))
			for j, literal := range rule.Body {
				body[j] = ast.Literal{
					Negative: literal.Negative,
					Atom:     ast.Atom{Predicate: literal.Atom.Predicate, Terms: append([]ast.Term(nil), literal.Atom.Terms...)},
				}
			}
			head := ast.Atom{Predicate: rule.Head.Predicate, Terms: append([]ast.Term(nil), rule.Head.Terms...)}
			rules[i] = ast.Rule{Head: head, Kind: rule.Kind, Body: body}
			continue
		}

		head := prependLocation(rule.Head, location)
		body := make([]ast.Literal, len(rule.Body))
		for j, literal := range rule.Body {
			body[j] = ast.Literal{
				Negative: literal.Negative,
				Atom:     prependLocation(literal.Atom, location),
			}
		}
		rules[i] = ast.Rule{Head: head, Kind: rule.Kind, Body: body}
	}

	return ast.Program{Rules: rules}
}
