package dsl

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/ritamzico/dedalus/internal/ast"
)

var validPredicate = regexp.MustCompile(`^[a-z][a-zA-Z0-9_]*$`)

func validatePredicate(name string) error {
	if !validPredicate.MatchString(name) {
		return SyntaxError{
			Kind:    "InvalidPredicate",
			Message: fmt.Sprintf("predicate %q is invalid: must start with a lowercase letter and contain only letters, digits, and underscores", name),
		}
	}
	return nil
}

func convertProgram(node *ProgramAST) (ast.Program, error) {
	rules := make([]ast.Rule, len(node.Rules))
	for i, r := range node.Rules {
		rule, err := convertRule(r)
		if err != nil {
			return ast.Program{}, err
		}
		rules[i] = rule
	}
	return ast.Program{Rules: rules}, nil
}

func convertRule(node *RuleAST) (ast.Rule, error) {
	head, err := convertAtom(node.Head)
	if err != nil {
		return ast.Rule{}, err
	}

	kind, err := convertRuleKind(node.Kind)
	if err != nil {
		return ast.Rule{}, err
	}

	body := make([]ast.Literal, len(node.Body))
	for i, l := range node.Body {
		atom, err := convertAtom(l.Atom)
		if err != nil {
			return ast.Rule{}, err
		}
		body[i] = ast.Literal{Negative: l.Negative, Atom: atom}
	}

	return ast.Rule{Head: head, Kind: kind, Body: body}, nil
}

func convertRuleKind(node *RuleKindAST) (ast.RuleKind, error) {
	switch {
	case node == nil:
		return ast.Deductive{}, nil
	case node.Next:
		return ast.Inductive{}, nil
	case node.Async:
		return ast.Async{}, nil
	case node.Time != nil:
		time, err := strconv.Atoi(*node.Time)
		if err != nil {
			return nil, SyntaxError{
				Kind:    "InvalidTimestamp",
				Message: fmt.Sprintf("rule annotation @%s is not next, async, or a natural number", *node.Time),
			}
		}
		return ast.ConstantTime{Time: time}, nil
	default:
		return nil, SyntaxError{Kind: "InvalidSyntax", Message: "empty rule annotation"}
	}
}

func convertAtom(node *AtomAST) (ast.Atom, error) {
	if err := validatePredicate(node.Predicate); err != nil {
		return ast.Atom{}, err
	}

	terms := make([]ast.Term, len(node.Terms))
	for i, t := range node.Terms {
		terms[i] = convertTerm(t)
	}
	return ast.Atom{Predicate: ast.Predicate(node.Predicate), Terms: terms}, nil
}

func convertTerm(node *TermAST) ast.Term {
	if node.Variable != nil {
		return ast.Variable{Symbol: *node.Variable, Location: node.Location}
	}
	return ast.Constant{Symbol: *node.Constant, Location: node.Location}
}
