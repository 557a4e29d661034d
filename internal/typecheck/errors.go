package typecheck

import (
	"fmt"
	"strings"

	"github.com/ritamzico/dedalus/internal/ast"
)

type TypeError struct {
	Kind    string
	Message string
}

func (e TypeError) Error() string {
	return fmt.Sprintf("type error (%v): %v", e.Kind, e.Message)
}

func inconsistentArity(p ast.Predicate, want, got int, rule ast.Rule) error {
	return TypeError{
		Kind: "InconsistentArity",
		Message: fmt.Sprintf("predicate %v has inconsistent arities: used with arity %d, but rule %q uses arity %d",
			p, want, rule, got),
	}
}

func notRangeRestrictedHead(vars []string, rule ast.Rule) error {
	return TypeError{
		Kind: "NotRangeRestricted",
		Message: fmt.Sprintf("the head variables {%s} in the rule %q do not appear in any positive literal in the body of the rule",
			strings.Join(vars, ", "), rule),
	}
}

func notRangeRestrictedBody(vars []string, rule ast.Rule) error {
	return TypeError{
		Kind: "NotRangeRestricted",
		Message: fmt.Sprintf("the negative-literal variables {%s} in the rule %q do not appear in any positive literal in the body of the rule",
			strings.Join(vars, ", "), rule),
	}
}

func constantTimeWithBody(rule ast.Rule) error {
	return TypeError{
		Kind:    "ConstantTimeWithBody",
		Message: fmt.Sprintf("the constant time rule %q has a non-empty body", rule),
	}
}

func locationViolation(format string, args ...any) error {
	return TypeError{
		Kind:    "LocationViolation",
		Message: fmt.Sprintf(format, args...),
	}
}
