// Package repl implements the interactive shell: rules typed at the prompt
// are appended to the loaded program, and # commands load, show, and step
// it. State is an explicit value threaded through each command, so a failed
// command leaves the previous state intact.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ritamzico/dedalus/internal/ast"
	"github.com/ritamzico/dedalus/internal/desugar"
	"github.com/ritamzico/dedalus/internal/dsl"
	"github.com/ritamzico/dedalus/internal/engine"
	"github.com/ritamzico/dedalus/internal/render"
	"github.com/ritamzico/dedalus/internal/typecheck"
)

const helpText = "#load <filename> | #show | #step [n] | #help | <rule>"

// State is the REPL's state between commands: the loaded program, if any,
// and the running process, spawned lazily by the first #step.
type State struct {
	Program *ast.Program
	Process *engine.Process
}

// REPL reads commands from In and writes results to Out and errors to Err.
type REPL struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer

	// SpawnOpts configure the process created by the first #step.
	SpawnOpts []engine.Option

	state State
}

// Load compiles the named file and replaces the current program. The
// process, if any, is discarded.
func (r *REPL) Load(path string) error {
	program, err := dsl.ParseFile(path)
	if err != nil {
		return err
	}
	program, err = typecheck.Typecheck(desugar.Desugar(program))
	if err != nil {
		return err
	}
	r.state = State{Program: &program}
	return nil
}

// Show prints the current program.
func (r *REPL) Show() error {
	if r.state.Program == nil {
		return noProgramLoaded()
	}
	fmt.Fprintln(r.Out, r.state.Program)
	return nil
}

// StepN advances the process by n timesteps, spawning it from the loaded
// program first if needed, and prints the resulting state.
func (r *REPL) StepN(n int) error {
	if r.state.Program == nil {
		return noProgramLoaded()
	}

	process := r.state.Process
	if process == nil {
		spawned := engine.Spawn(*r.state.Program, r.SpawnOpts...)
		process = &spawned
	}
	stepped := engine.Run(*process, n)
	r.state.Process = &stepped
	fmt.Fprintln(r.Out, render.Process(stepped))
	return nil
}

// Append parses one rule, adds it to the program, and re-typechecks the
// whole program, rolling the rule back on failure. With no program loaded
// the rule becomes a new single-rule program.
func (r *REPL) Append(line string) error {
	parsed, err := dsl.Parse(line)
	if err != nil {
		return err
	}
	parsed = desugar.Desugar(parsed)
	if _, err := typecheck.Typecheck(parsed); err != nil {
		return err
	}

	if r.state.Program == nil {
		r.state = State{Program: &parsed}
		return nil
	}

	extended := ast.Program{
		Rules: append(append([]ast.Rule{}, r.state.Program.Rules...), parsed.Rules...),
	}
	if _, err := typecheck.Typecheck(extended); err != nil {
		return err
	}
	r.state.Program = &extended
	return nil
}

// Execute dispatches one input line.
func (r *REPL) Execute(line string) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if !strings.HasPrefix(line, "#") {
		return r.Append(line)
	}

	parts := strings.Fields(line)
	switch strings.ToLower(parts[0]) {
	case "#help":
		fmt.Fprintln(r.Out, helpText)
		return nil

	case "#load":
		if len(parts) != 2 {
			return usage("usage: #load <filename>")
		}
		return r.Load(parts[1])

	case "#show":
		return r.Show()

	case "#step":
		n := 1
		if len(parts) > 2 {
			return usage("usage: #step [n]")
		}
		if len(parts) == 2 {
			parsed, err := strconv.Atoi(parts[1])
			if err != nil || parsed < 1 {
				return usage("usage: #step [n] with n a positive integer")
			}
			n = parsed
		}
		return r.StepN(n)

	default:
		return usage(fmt.Sprintf("unknown command %s; %s", parts[0], helpText))
	}
}

// Run loops over input lines until EOF. Errors are printed and the loop
// continues with the prior state. If path is non-empty the file is loaded
// and shown first.
func (r *REPL) Run(path string) error {
	if path != "" {
		if err := r.Load(path); err != nil {
			return err
		}
		if err := r.Show(); err != nil {
			return err
		}
	}

	scanner := bufio.NewScanner(r.In)
	for {
		fmt.Fprint(r.Out, "> ")
		if !scanner.Scan() {
			break
		}
		if err := r.Execute(scanner.Text()); err != nil {
			fmt.Fprintln(r.Err, err)
		}
	}
	return scanner.Err()
}
