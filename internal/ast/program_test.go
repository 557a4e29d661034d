package ast_test

import (
	"testing"

	"github.com/ritamzico/dedalus/internal/ast"
	"github.com/ritamzico/dedalus/internal/dsl"
)

func mustParse(t *testing.T, source string) ast.Program {
	t.Helper()
	program, err := dsl.Parse(source)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return program
}

func set(predicates ...ast.Predicate) ast.PredicateSet {
	s := make(ast.PredicateSet)
	for _, p := range predicates {
		s[p] = true
	}
	return s
}

func TestPredicatesIDBAndEDB(t *testing.T) {
	program := mustParse(t, `
		p(#a, b)@0 :- .
		p(#a, b) :- .
		q(#a, b) :- .
		q(X) :- p(X).
		r(X)@next :- p(X), q(X).
	`)

	if got := program.Predicates(); !got.Equal(set("p", "q", "r")) {
		t.Errorf("Predicates() = %v", got)
	}
	if got := program.IDB(); !got.Equal(set("q", "r")) {
		t.Errorf("IDB() = %v", got)
	}
	if got := program.EDB(); !got.Equal(set("p")) {
		t.Errorf("EDB() = %v", got)
	}
}

func TestEDBAndIDBPartitionPredicates(t *testing.T) {
	programs := []string{
		"p(#a) :- .",
		"p(X) :- q(X), r(X).\nq(#a) :- .",
		"p(#a, b)@0 :- .\np(#a, b) :- .\nq(X) :- p(X).\nr(X)@next :- p(X), q(X).",
	}
	for _, source := range programs {
		program := mustParse(t, source)
		idb := program.IDB()
		edb := program.EDB()

		union := make(ast.PredicateSet)
		for p := range idb {
			if edb[p] {
				t.Errorf("predicate %v in both IDB and EDB of %q", p, source)
			}
			union[p] = true
		}
		for p := range edb {
			union[p] = true
		}
		if !union.Equal(program.Predicates()) {
			t.Errorf("IDB union EDB != Predicates for %q", source)
		}
	}
}

func TestPersistentEDB(t *testing.T) {
	// p has a non-deductive rule, so it is not persistent; q is.
	program := mustParse(t, `
		p(#a, b)@0 :- .
		p(#a, b) :- .
		q(#a, b) :- .
	`)
	if got := program.PersistentEDB(); !got.Equal(set("q")) {
		t.Errorf("PersistentEDB() = %v", got)
	}

	// A single constant time rule disqualifies the only EDB predicate.
	program = mustParse(t, `
		p(#a) :- .
		p(#a)@0 :- .
	`)
	if got := program.PersistentEDB(); len(got) != 0 {
		t.Errorf("PersistentEDB() = %v, want empty", got)
	}
}

func TestIsPositive(t *testing.T) {
	positive := mustParse(t, "p(X) :- q(X), r(X).")
	if !positive.IsPositive() {
		t.Error("IsPositive() = false for a positive program")
	}

	negative := mustParse(t, "p(X) :- q(X), !r(X).")
	if negative.IsPositive() {
		t.Error("IsPositive() = true for a program with a negative literal")
	}
}

func TestIsSemipositive(t *testing.T) {
	// r is EDB, so negating it is fine.
	semipositive := mustParse(t, `
		p(X) :- q(X), !r(X).
		q(#a) :- .
	`)
	if !semipositive.IsSemipositive() {
		t.Error("IsSemipositive() = false for an EDB-only negation")
	}

	// p is IDB and negated.
	notSemipositive := mustParse(t, `
		p(X) :- q(X).
		s(X) :- q(X), !p(X).
	`)
	if notSemipositive.IsSemipositive() {
		t.Error("IsSemipositive() = true for an IDB negation")
	}
}
