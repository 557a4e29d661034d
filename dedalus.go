// Package dedalus is an interpreter for Dedalus, a Datalog dialect with
// explicit notions of time and distribution. Programs are parsed, desugared,
// typechecked, and then evaluated one timestep at a time.
package dedalus

import (
	"github.com/ritamzico/dedalus/internal/ast"
	"github.com/ritamzico/dedalus/internal/desugar"
	"github.com/ritamzico/dedalus/internal/dsl"
	"github.com/ritamzico/dedalus/internal/engine"
	"github.com/ritamzico/dedalus/internal/typecheck"
)

type (
	Program   = ast.Program
	Rule      = ast.Rule
	Predicate = ast.Predicate
	Process   = engine.Process
	Option    = engine.Option
	RandInt   = engine.RandInt
)

// Parse parses Dedalus source text into a program.
func Parse(source string) (Program, error) {
	return dsl.Parse(source)
}

// ParseFile parses the program in the named file.
func ParseFile(path string) (Program, error) {
	return dsl.ParseFile(path)
}

// Desugar inserts implicit location specifiers.
func Desugar(program Program) Program {
	return desugar.Desugar(program)
}

// Typecheck validates a desugared program, returning it unchanged on
// success.
func Typecheck(program Program) (Program, error) {
	return typecheck.Typecheck(program)
}

// Compile runs the full front-end pipeline: parse, desugar, typecheck.
func Compile(source string) (Program, error) {
	program, err := Parse(source)
	if err != nil {
		return Program{}, err
	}
	return Typecheck(Desugar(program))
}

// CompileFile compiles the program in the named file.
func CompileFile(path string) (Program, error) {
	program, err := ParseFile(path)
	if err != nil {
		return Program{}, err
	}
	return Typecheck(Desugar(program))
}

// Spawn creates an evaluator process for a compiled program.
func Spawn(program Program, opts ...Option) Process {
	return engine.Spawn(program, opts...)
}

// WithRandInt injects the delay source used by async rules.
func WithRandInt(randint RandInt) Option {
	return engine.WithRandInt(randint)
}

// UniformRandInt samples delays uniformly from [low, high]; requires
// 1 <= low <= high.
func UniformRandInt(low, high int) RandInt {
	return engine.UniformRandInt(low, high)
}

// Step evaluates one timestep, returning the successor process and leaving
// the argument unchanged.
func Step(process Process) Process {
	return engine.Step(process)
}

// Run applies Step n times.
func Run(process Process, timesteps int) Process {
	return engine.Run(process, timesteps)
}
