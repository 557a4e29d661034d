package render

import (
	"strings"
	"testing"

	"github.com/ritamzico/dedalus/internal/desugar"
	"github.com/ritamzico/dedalus/internal/dsl"
	"github.com/ritamzico/dedalus/internal/engine"
	"github.com/ritamzico/dedalus/internal/typecheck"
)

func TestProcessRendering(t *testing.T) {
	program, err := dsl.Parse(`
		p(#a, b)@0 :- .
		p(#X, Y)@next :- p(#X, Y).
		q(#X, Y)@async :- p(#X, Y).
	`)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	program, err = typecheck.Typecheck(desugar.Desugar(program))
	if err != nil {
		t.Fatalf("Typecheck failed: %v", err)
	}

	process := engine.Spawn(program, engine.WithRandInt(func() int { return 2 }))
	process = engine.Step(process)
	rendered := Process(process)

	if !strings.Contains(rendered, "timestep = 1") {
		t.Errorf("missing timestep header:\n%s", rendered)
	}
	// Both relations of the database appear, in sorted order.
	pIndex := strings.Index(rendered, "p\n")
	qIndex := strings.Index(rendered, "q\n")
	if pIndex == -1 || qIndex == -1 || qIndex < pIndex {
		t.Errorf("predicates missing or out of order:\n%s", rendered)
	}
	// The saturated tuple and the buffered async delivery.
	if !strings.Contains(rendered, "a") || !strings.Contains(rendered, "b") {
		t.Errorf("missing tuple values:\n%s", rendered)
	}
	if !strings.Contains(rendered, "q (t = 2)") {
		t.Errorf("missing buffered relation header:\n%s", rendered)
	}
}
