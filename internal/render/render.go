// Package render produces the human-readable view of a Process used by the
// run subcommand and the REPL: the current timestep, each predicate's
// relation as a table, and the future-facts buffer grouped by delivery
// timestep.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/ritamzico/dedalus/internal/ast"
	"github.com/ritamzico/dedalus/internal/engine"
)

func renderRelation(relation engine.Relation) string {
	t := table.New().Border(lipgloss.NormalBorder())
	for _, tuple := range relation.Tuples() {
		t.Row(tuple...)
	}
	return t.Render()
}

func sortedPredicates(db engine.Database) []ast.Predicate {
	predicates := make([]ast.Predicate, 0, len(db))
	for p := range db {
		predicates = append(predicates, p)
	}
	sort.Slice(predicates, func(i, j int) bool { return predicates[i] < predicates[j] })
	return predicates
}

// Process renders the full evaluator state.
func Process(process engine.Process) string {
	var sections []string

	sections = append(sections, fmt.Sprintf("timestep = %d", process.Timestep))

	var relations []string
	for _, p := range sortedPredicates(process.Database) {
		relations = append(relations, p.String())
		relations = append(relations, renderRelation(process.Database[p]))
	}
	sections = append(sections, strings.Join(relations, "\n"))

	var buffered []string
	for _, timestep := range process.Buffer.Timesteps() {
		db := process.Buffer[timestep]
		for _, p := range sortedPredicates(db) {
			buffered = append(buffered, fmt.Sprintf("%s (t = %d)", p, timestep))
			buffered = append(buffered, renderRelation(db[p]))
		}
	}
	sections = append(sections, strings.Join(buffered, "\n"))

	return strings.Join(sections, "\n\n\n")
}
