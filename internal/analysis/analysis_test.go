package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ritamzico/dedalus/internal/ast"
	"github.com/ritamzico/dedalus/internal/desugar"
	"github.com/ritamzico/dedalus/internal/dsl"
)

func mustParse(t *testing.T, source string) ast.Program {
	t.Helper()
	program, err := dsl.Parse(source)
	require.NoError(t, err)
	return desugar.Desugar(program)
}

func TestPDGEdgesAndLabels(t *testing.T) {
	program := mustParse(t, `
		p(X) :- q(X), !r(X).
		s(X)@async :- q(X).
		t(X)@next :- p(X).
	`)
	pdg := PDG(program)

	for _, p := range []ast.Predicate{"p", "q", "r", "s", "t"} {
		assert.True(t, pdg.ContainsNode(p), "missing node %v", p)
	}

	label, ok := pdg.Label("q", "p")
	require.True(t, ok)
	assert.Equal(t, EdgeLabel{}, label)

	label, ok = pdg.Label("r", "p")
	require.True(t, ok)
	assert.Equal(t, EdgeLabel{Negative: true}, label)

	label, ok = pdg.Label("q", "s")
	require.True(t, ok)
	assert.Equal(t, EdgeLabel{Async: true}, label)

	label, ok = pdg.Label("p", "t")
	require.True(t, ok)
	assert.Equal(t, EdgeLabel{}, label)

	assert.False(t, pdg.ContainsEdge("p", "q"))
}

func TestPDGLabelsAccumulateAcrossRules(t *testing.T) {
	program := mustParse(t, `
		p(X) :- q(X).
		p(X) :- r(X), !q(X).
		p(X)@async :- q(X).
	`)
	pdg := PDG(program)

	label, ok := pdg.Label("q", "p")
	require.True(t, ok)
	assert.Equal(t, EdgeLabel{Negative: true, Async: true}, label)
}

func TestDeductivePDGRestrictsToDeductiveRules(t *testing.T) {
	program := mustParse(t, `
		p(X) :- q(X).
		q(X)@next :- p(X).
		r(#a) :- .
	`)
	pdg := DeductivePDG(program)

	// p and r head deductive rules; q heads only an inductive rule.
	assert.True(t, pdg.ContainsNode("p"))
	assert.True(t, pdg.ContainsNode("r"))
	assert.False(t, pdg.ContainsNode("q"))

	// The only deductive rule with a body is p :- q, but q is not a
	// deductive predicate, so there are no edges at all.
	assert.Empty(t, pdg.Edges())
}

func TestStratifyOrdersSCCsTopologically(t *testing.T) {
	program := mustParse(t, `
		b(X) :- a(X).
		c(X) :- b(X).
		a(X) :- c(X).

		e(X) :- d(X).
		d(X) :- e(X).

		g(X) :- f(X).
		h(X) :- g(X).
		f(X) :- h(X).

		d(X) :- b(X).
		f(X) :- a(X).
		g(X) :- e(X).
	`)
	strata := Stratify(PDG(program))
	require.Len(t, strata, 3)

	assert.Equal(t, []ast.Predicate{"a", "b", "c"}, strata[0].Nodes())
	assert.Equal(t, []ast.Predicate{"d", "e"}, strata[1].Nodes())
	assert.Equal(t, []ast.Predicate{"f", "g", "h"}, strata[2].Nodes())

	assert.Equal(t, []Edge{
		{From: "a", To: "b"},
		{From: "b", To: "c"},
		{From: "c", To: "a"},
	}, strata[0].Edges())
	assert.Equal(t, []Edge{
		{From: "d", To: "e"},
		{From: "e", To: "d"},
	}, strata[1].Edges())
	assert.Equal(t, []Edge{
		{From: "f", To: "g"},
		{From: "g", To: "h"},
		{From: "h", To: "f"},
	}, strata[2].Edges())
}

func TestSCCsOfAcyclicGraphAreSingletons(t *testing.T) {
	program := mustParse(t, `
		p(X) :- q(X).
		q(X) :- r(X).
	`)
	components := PDG(program).SCCs()
	require.Len(t, components, 3)

	// Topological order: r before q before p.
	assert.Equal(t, []ast.Predicate{"r"}, components[0])
	assert.Equal(t, []ast.Predicate{"q"}, components[1])
	assert.Equal(t, []ast.Predicate{"p"}, components[2])
}

func TestIsStratified(t *testing.T) {
	cases := []struct {
		source string
		want   bool
	}{
		{"p(X) :- q(X), !r(X).", true},
		{"p(X) :- q(X), !p(X).", false},
		{"win(X) :- move(X, Y), !win(Y).", false},
		{"p(X) :- q(X).\nq(X) :- p(X).", true},
		{"p(X) :- q(X), !r(X).\nr(X) :- s(X).\ns(X) :- p(X).", false},
	}
	for _, c := range cases {
		program := mustParse(t, c.source)
		assert.Equal(t, c.want, IsStratified(program), "program %q", c.source)
	}
}

func TestIsDeductiveStratified(t *testing.T) {
	// The negative cycle runs through an inductive rule, so the full PDG is
	// unstratified but the deductive PDG is fine.
	program := mustParse(t, "p(X)@next :- q(X), !p(X).\np(X) :- r(X).")
	assert.False(t, IsStratified(program))
	assert.True(t, IsDeductiveStratified(program))
}

func TestHasGuardedAsynchrony(t *testing.T) {
	unguarded := mustParse(t, "p(X)@async :- p(X).")
	assert.False(t, HasGuardedAsynchrony(unguarded))

	guarded := mustParse(t, `
		p(X)@async :- p(X).
		p(X)@next :- p(X).
	`)
	assert.True(t, HasGuardedAsynchrony(guarded))
}

func TestGuardMustMatchTermsExactly(t *testing.T) {
	swapped := mustParse(t, `
		p(#L, X, Y)@async :- q(#L, X, Y).
		p(#L, Y, X)@next :- p(#L, X, Y).
	`)
	assert.False(t, HasGuardedAsynchrony(swapped))

	negated := mustParse(t, `
		p(X)@async :- q(X).
		p(X)@next :- !p(X).
	`)
	assert.False(t, HasGuardedAsynchrony(negated))

	extraLiteral := mustParse(t, `
		p(X)@async :- q(X).
		p(X)@next :- p(X), q(X).
	`)
	assert.False(t, HasGuardedAsynchrony(extraLiteral))
}

func TestNoAsyncRulesIsVacuouslyGuarded(t *testing.T) {
	program := mustParse(t, "p(X) :- q(X).")
	assert.True(t, HasGuardedAsynchrony(program))
}

func TestIsDedalusS(t *testing.T) {
	dedalusS := mustParse(t, `
		q(#a, b) :- .
		p(#X, Y)@async :- q(#X, Y).
		p(#X, Y)@next :- p(#X, Y).
	`)
	assert.True(t, IsDedalusS(dedalusS))

	constantTime := mustParse(t, `
		q(#a, b) :- .
		q(#a, c)@0 :- .
	`)
	assert.False(t, IsDedalusS(constantTime), "constant time rules are disallowed")

	unguarded := mustParse(t, `
		q(#a, b) :- .
		p(#X, Y)@async :- q(#X, Y).
	`)
	assert.False(t, IsDedalusS(unguarded), "async without a persistence rule")

	unstratified := mustParse(t, `
		q(#a, b) :- .
		s(#X) :- q(#X, Y), !s(#X).
	`)
	assert.False(t, IsDedalusS(unstratified), "negative self-dependency")
}
