package dsl

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var dedalusLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Turnstile", Pattern: `:-`},
	{Name: "VariableID", Pattern: `[A-Z][a-zA-Z0-9_]*`},
	{Name: "ConstantID", Pattern: `[a-z0-9][a-zA-Z0-9_]*`},
	{Name: "Punct", Pattern: `[(),.!#@]`},
})

// ProgramAST is the top-level node: one or more rules.
type ProgramAST struct {
	Rules []*RuleAST `parser:"@@+"`
}

// RuleAST: <atom> [@next | @async | @<nat>] ":-" literals "."
type RuleAST struct {
	Head *AtomAST      `parser:"@@"`
	Kind *RuleKindAST  `parser:"@@?"`
	Body []*LiteralAST `parser:"\":-\" ( @@ ( \",\" @@ )* )? \".\""`
}

// RuleKindAST: "@" followed by next, async, or a natural number.
type RuleKindAST struct {
	Next  bool    `parser:"\"@\" ( @\"next\""`
	Async bool    `parser:"| @\"async\""`
	Time  *string `parser:"| @ConstantID )"`
}

// LiteralAST: an atom with an optional leading "!".
type LiteralAST struct {
	Negative bool     `parser:"@\"!\"?"`
	Atom     *AtomAST `parser:"@@"`
}

// AtomAST: <predicate> "(" terms ")"
type AtomAST struct {
	Predicate string     `parser:"@ConstantID"`
	Terms     []*TermAST `parser:"\"(\" ( @@ ( \",\" @@ )* )? \")\""`
}

// TermAST: an optionally "#"-prefixed constant or variable identifier.
type TermAST struct {
	Location bool    `parser:"@\"#\"?"`
	Constant *string `parser:"( @ConstantID"`
	Variable *string `parser:"| @VariableID )"`
}

var programParser = participle.MustBuild[ProgramAST](
	participle.Lexer(dedalusLexer),
	participle.Elide("Whitespace", "Comment"),
)

var atomParser = participle.MustBuild[AtomAST](
	participle.Lexer(dedalusLexer),
	participle.Elide("Whitespace", "Comment"),
)
