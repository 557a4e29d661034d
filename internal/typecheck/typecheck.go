// Package typecheck enforces well-formedness of desugared Dedalus programs.
//
// Four checks run in order: fixed arities, range restriction, timestamp
// restriction, and location restriction. Each failure carries the offending
// rule in its message. A program that typechecks is safe to hand to the
// evaluator.
package typecheck

import (
	"github.com/ritamzico/dedalus/internal/ast"
)

// fixedArities: every use of a predicate must have the same arity. For
// example, "p(X, Y) :- p(X), p(Y)." is ill-formed because p has both arity 1
// and 2.
func fixedArities(program ast.Program) error {
	arities := make(map[ast.Predicate]int)
	for _, rule := range program.Rules {
		for _, atom := range rule.Atoms() {
			p := atom.Predicate
			arity := atom.Arity()
			if want, seen := arities[p]; seen && want != arity {
				return inconsistentArity(p, want, arity, rule)
			}
			arities[p] = arity
		}
	}
	return nil
}

// rangeRestricted: every head variable must appear in a positive body
// literal, and so must every variable of a negative body literal.
func rangeRestricted(program ast.Program) error {
	for _, rule := range program.Rules {
		positiveVars := make(map[string]bool)
		for _, literal := range rule.Body {
			if literal.IsPositive() {
				for _, v := range literal.Atom.Variables() {
					positiveVars[v.Symbol] = true
				}
			}
		}

		var unrestrictedHead []string
		seen := make(map[string]bool)
		for _, v := range rule.Head.Variables() {
			if !positiveVars[v.Symbol] && !seen[v.Symbol] {
				unrestrictedHead = append(unrestrictedHead, v.Symbol)
				seen[v.Symbol] = true
			}
		}
		if len(unrestrictedHead) != 0 {
			return notRangeRestrictedHead(unrestrictedHead, rule)
		}

		var unrestrictedBody []string
		seen = make(map[string]bool)
		for _, literal := range rule.Body {
			if literal.IsNegative() {
				for _, v := range literal.Atom.Variables() {
					if !positiveVars[v.Symbol] && !seen[v.Symbol] {
						unrestrictedBody = append(unrestrictedBody, v.Symbol)
						seen[v.Symbol] = true
					}
				}
			}
		}
		if len(unrestrictedBody) != 0 {
			return notRangeRestrictedBody(unrestrictedBody, rule)
		}
	}
	return nil
}

// timestampRestricted: constant time rules must have empty bodies.
func timestampRestricted(program ast.Program) error {
	for _, rule := range program.Rules {
		if rule.IsConstantTime() && len(rule.Body) != 0 {
			return constantTimeWithBody(rule)
		}
	}
	return nil
}

// locationRestricted: the first term of every atom is a location term and no
// other term is; all body atoms agree on their location term; and for
// deductive and inductive rules the head's location term equals the body's.
// Only async rules may derive at a different location.
func locationRestricted(program ast.Program) error {
	for _, rule := range program.Rules {
		for _, atom := range rule.Atoms() {
			if atom.Arity() == 0 {
				return locationViolation("atom %v of rule %q does not have a location specifier", atom, rule)
			}
			if !atom.Terms[0].IsLocation() {
				return locationViolation("the first term of atom %v of rule %q is not a location specifier", atom, rule)
			}
			for _, term := range atom.Terms[1:] {
				if term.IsLocation() {
					return locationViolation("the atom %v of rule %q contains a location term that does not appear at the head of the atom", atom, rule)
				}
			}
		}

		bodyLocations := make(map[ast.Term]bool)
		for _, literal := range rule.Body {
			bodyLocations[literal.Atom.Terms[0]] = true
		}
		if len(bodyLocations) > 1 {
			return locationViolation("the body of rule %q contains multiple locations", rule)
		}

		if rule.IsDeductive() || rule.IsInductive() {
			headLocation := rule.Head.Terms[0]
			for location := range bodyLocations {
				if location != headLocation {
					return locationViolation("the head and body of rule %q contain different locations; only async rules are allowed to do this", rule)
				}
			}
		}
	}
	return nil
}

// Typecheck validates a desugared program and returns it unchanged on
// success.
func Typecheck(program ast.Program) (ast.Program, error) {
	checks := []func(ast.Program) error{
		fixedArities,
		rangeRestricted,
		timestampRestricted,
		locationRestricted,
	}
	for _, check := range checks {
		if err := check(program); err != nil {
			return ast.Program{}, err
		}
	}
	return program, nil
}

// Typechecks reports whether the program typechecks.
func Typechecks(program ast.Program) bool {
	_, err := Typecheck(program)
	return err == nil
}
