// Package engine evaluates typechecked Dedalus programs one timestep at a
// time: a stratified fixpoint over the deductive rules, plus a buffer of
// facts scheduled by inductive and asynchronous rules for future timesteps.
package engine

import (
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/ritamzico/dedalus/internal/analysis"
	"github.com/ritamzico/dedalus/internal/ast"
)

// RandInt supplies the delivery delay, in timesteps, for each asynchronous
// derivation. Implementations must return values >= 1; a zero delay would
// schedule a fact into the timestep already being evaluated.
type RandInt func() int

// UniformRandInt returns a RandInt sampling uniformly from [low, high].
// Panics unless 1 <= low <= high.
func UniformRandInt(low, high int) RandInt {
	if low < 1 || low > high {
		panic(invariantViolation("async delay bounds must satisfy 1 <= low <= high, got [%d, %d]", low, high))
	}
	return func() int {
		return low + rand.IntN(high-low+1)
	}
}

// Process is the evaluator state of a single Dedalus program: the current
// timestep, the saturated database, and the buffer of facts awaiting
// delivery. Step treats a Process as a snapshot; it returns a successor and
// leaves its argument observationally unchanged.
type Process struct {
	Program  ast.Program
	Timestep int
	Database Database
	Buffer   AsyncBuffer

	randint RandInt
	logger  *zap.Logger
}

// Option configures a spawned Process.
type Option func(*Process)

// WithRandInt replaces the default uniform-[1,10] delay source. Injecting a
// deterministic source makes Step reproducible.
func WithRandInt(randint RandInt) Option {
	return func(p *Process) {
		p.randint = randint
	}
}

// WithLogger attaches a logger for per-step debug output. The default
// discards everything.
func WithLogger(logger *zap.Logger) Option {
	return func(p *Process) {
		p.logger = logger
	}
}

// Spawn creates a Process for a typechecked program at timestep 0. The
// database is seeded with an empty relation for every predicate of the
// program, so buffer promotion and negative lookups never miss.
func Spawn(program ast.Program, opts ...Option) Process {
	database := make(Database)
	for p := range program.Predicates() {
		database[p] = Relation{}
	}

	process := Process{
		Program:  program,
		Timestep: 0,
		Database: database,
		Buffer:   make(AsyncBuffer),
		randint:  UniformRandInt(1, 10),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&process)
	}
	return process
}

// Step evaluates one timestep and returns the successor Process. In order:
// buffered facts for the current timestep replace the database, matching
// constant-time rules fire, the deductive rules run to a stratified
// fixpoint, inductive rules schedule into the next timestep, async rules
// schedule into randint()-delayed timesteps, and the timestep advances.
func Step(process Process) Process {
	next := Process{
		Program:  process.Program,
		Timestep: process.Timestep,
		Database: process.Database.Clone(),
		Buffer:   process.Buffer.Clone(),
		randint:  process.randint,
		logger:   process.logger,
	}
	db := next.Database
	logger := next.logger

	// Promotion: only facts that were scheduled for this timestep survive.
	for p := range db {
		db[p] = next.Buffer.At(next.Timestep, p)
	}
	logger.Debug("promoted buffered facts", zap.Int("timestep", next.Timestep))

	for _, rule := range next.Program.Rules {
		kind, ok := rule.Kind.(ast.ConstantTime)
		if !ok || kind.Time != next.Timestep {
			continue
		}
		relation := db[rule.Head.Predicate]
		for tuple := range evalRule(db, rule) {
			relation.Add(tuple)
		}
		db[rule.Head.Predicate] = relation
	}

	saturate(db, next.Program, logger)

	for _, rule := range next.Program.Rules {
		if !rule.IsInductive() {
			continue
		}
		for tuple := range evalRule(db, rule) {
			next.Buffer.add(next.Timestep+1, rule.Head.Predicate, tuple)
		}
	}

	for _, rule := range next.Program.Rules {
		if !rule.IsAsync() {
			continue
		}
		for tuple := range evalRule(db, rule) {
			delay := next.randint()
			if delay < 1 {
				panic(invariantViolation("randint returned %d; async delays must be >= 1", delay))
			}
			next.Buffer.add(next.Timestep+delay, rule.Head.Predicate, tuple)
			logger.Debug("scheduled async fact",
				zap.String("predicate", string(rule.Head.Predicate)),
				zap.Int("delivery", next.Timestep+delay))
		}
	}

	delete(next.Buffer, next.Timestep)
	next.Timestep++
	return next
}

// saturate runs the deductive rules to fixpoint, one stratum at a time in
// the topological order of the deductive PDG's condensation. A stratum must
// be fully saturated before a later one negates its predicates.
func saturate(db Database, program ast.Program, logger *zap.Logger) {
	strata := analysis.Stratify(analysis.DeductivePDG(program))

	for i, stratum := range strata {
		var rules []ast.Rule
		for _, rule := range program.Rules {
			if rule.IsDeductive() && stratum.ContainsNode(rule.Head.Predicate) {
				rules = append(rules, rule)
			}
		}

		passes := 0
		for changed := true; changed; {
			changed = false
			passes++
			for _, rule := range rules {
				var derived []Tuple
				for tuple := range evalRule(db, rule) {
					derived = append(derived, tuple)
				}
				relation := db[rule.Head.Predicate]
				for _, tuple := range derived {
					if relation.Add(tuple) {
						changed = true
					}
				}
				db[rule.Head.Predicate] = relation
			}
		}
		logger.Debug("saturated stratum",
			zap.Int("stratum", i),
			zap.Int("rules", len(rules)),
			zap.Int("passes", passes))
	}
}

// Run applies Step n times.
func Run(process Process, timesteps int) Process {
	for range timesteps {
		process = Step(process)
	}
	return process
}
