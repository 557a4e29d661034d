package analysis

import (
	"github.com/ritamzico/dedalus/internal/ast"
)

// SCCs returns the strongly connected components of the graph in topological
// order of the condensation: if any edge runs from component i to component
// j, then i < j. Tarjan's algorithm emits components in reverse topological
// order, so the result is the reversed emission order. Nodes are visited in
// sorted order, which makes the output deterministic.
func (g *Graph) SCCs() [][]ast.Predicate {
	index := make(map[ast.Predicate]int, len(g.nodes))
	lowlink := make(map[ast.Predicate]int, len(g.nodes))
	onStack := make(map[ast.Predicate]bool, len(g.nodes))
	var stack []ast.Predicate
	var components [][]ast.Predicate
	next := 0

	var strongconnect func(v ast.Predicate)
	strongconnect = func(v ast.Predicate) {
		index[v] = next
		lowlink[v] = next
		next++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g.successors(v) {
			if _, visited := index[w]; !visited {
				strongconnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] {
				if index[w] < lowlink[v] {
					lowlink[v] = index[w]
				}
			}
		}

		if lowlink[v] == index[v] {
			var component []ast.Predicate
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				component = append(component, w)
				if w == v {
					break
				}
			}
			components = append(components, component)
		}
	}

	for _, v := range g.Nodes() {
		if _, visited := index[v]; !visited {
			strongconnect(v)
		}
	}

	for i, j := 0, len(components)-1; i < j; i, j = i+1, j-1 {
		components[i], components[j] = components[j], components[i]
	}
	return components
}

// Stratify returns the strata of the graph: one induced subgraph per
// strongly connected component, in topological order of the condensation.
func Stratify(g *Graph) []*Graph {
	components := g.SCCs()
	strata := make([]*Graph, len(components))
	for i, component := range components {
		strata[i] = g.Subgraph(component)
	}
	return strata
}

// IsStratifiedGraph reports whether the graph is stratified: no cycle passes
// through a negative edge. Equivalently, no strongly connected component
// contains a negative edge between two of its members.
func IsStratifiedGraph(g *Graph) bool {
	for _, component := range g.SCCs() {
		member := make(map[ast.Predicate]bool, len(component))
		for _, p := range component {
			member[p] = true
		}
		for _, p := range component {
			for q, label := range g.succs[p] {
				if member[q] && label.Negative {
					return false
				}
			}
		}
	}
	return true
}
