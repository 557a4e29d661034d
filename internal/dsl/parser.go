// Package dsl parses the Dedalus surface syntax into the ast package's
// program representation.
//
// The grammar:
//
//	program     := rule+
//	rule        := atom rule_type? ":-" (literal ("," literal)*)? "."
//	rule_type   := "@" "next" | "@" "async" | "@" <nat>
//	literal     := "!"? atom
//	atom        := predicate "(" (term ("," term)*)? ")"
//	term        := "#"? (constant_id | variable_id)
//
// Line comments start with "//". Whitespace is insignificant between tokens.
package dsl

import (
	"fmt"
	"os"

	"github.com/ritamzico/dedalus/internal/ast"
)

// Parse parses Dedalus source text. A program with zero rules is ill-formed.
func Parse(source string) (ast.Program, error) {
	node, err := programParser.ParseString("", source)
	if err != nil {
		return ast.Program{}, SyntaxError{Kind: "ParseError", Message: err.Error()}
	}
	return convertProgram(node)
}

// ParseFile parses the Dedalus program in the named file.
func ParseFile(path string) (ast.Program, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return ast.Program{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(string(source))
}

// ParseAtom parses a single atom, e.g. "p(#a, X, b)". Used by tests;
// programs go through Parse.
func ParseAtom(source string) (ast.Atom, error) {
	node, err := atomParser.ParseString("", source)
	if err != nil {
		return ast.Atom{}, SyntaxError{Kind: "ParseError", Message: err.Error()}
	}
	return convertAtom(node)
}
