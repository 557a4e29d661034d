package analysis

import (
	"sort"

	"github.com/ritamzico/dedalus/internal/ast"
)

// EdgeLabel carries the flags accumulated over every rule contributing an
// edge to the dependency graph.
type EdgeLabel struct {
	Negative bool
	Async    bool
}

// Edge is a labeled directed edge between two predicates.
type Edge struct {
	From  ast.Predicate
	To    ast.Predicate
	Label EdgeLabel
}

// Graph is a directed graph over predicates with labeled edges, backed by an
// adjacency list. Adding an edge twice merges the labels with logical or.
type Graph struct {
	nodes map[ast.Predicate]bool
	succs map[ast.Predicate]map[ast.Predicate]EdgeLabel
}

func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[ast.Predicate]bool),
		succs: make(map[ast.Predicate]map[ast.Predicate]EdgeLabel),
	}
}

func (g *Graph) AddNode(p ast.Predicate) {
	if !g.nodes[p] {
		g.nodes[p] = true
		g.succs[p] = make(map[ast.Predicate]EdgeLabel)
	}
}

// AddEdge inserts an edge, adding its endpoints if needed. Labels of repeated
// insertions accumulate: an edge is negative (or async) if any contributing
// insertion was.
func (g *Graph) AddEdge(from, to ast.Predicate, label EdgeLabel) {
	g.AddNode(from)
	g.AddNode(to)
	merged := g.succs[from][to]
	merged.Negative = merged.Negative || label.Negative
	merged.Async = merged.Async || label.Async
	g.succs[from][to] = merged
}

func (g *Graph) ContainsNode(p ast.Predicate) bool {
	return g.nodes[p]
}

func (g *Graph) ContainsEdge(from, to ast.Predicate) bool {
	_, ok := g.succs[from][to]
	return ok
}

// Label returns the label of the edge from -> to, and whether the edge
// exists.
func (g *Graph) Label(from, to ast.Predicate) (EdgeLabel, bool) {
	label, ok := g.succs[from][to]
	return label, ok
}

// Nodes returns the nodes in sorted order.
func (g *Graph) Nodes() []ast.Predicate {
	nodes := make([]ast.Predicate, 0, len(g.nodes))
	for p := range g.nodes {
		nodes = append(nodes, p)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i] < nodes[j] })
	return nodes
}

// Edges returns the edges sorted by source, then target.
func (g *Graph) Edges() []Edge {
	var edges []Edge
	for _, from := range g.Nodes() {
		for _, to := range g.successors(from) {
			edges = append(edges, Edge{From: from, To: to, Label: g.succs[from][to]})
		}
	}
	return edges
}

// NumNodes returns the number of nodes.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

func (g *Graph) successors(p ast.Predicate) []ast.Predicate {
	succs := make([]ast.Predicate, 0, len(g.succs[p]))
	for q := range g.succs[p] {
		succs = append(succs, q)
	}
	sort.Slice(succs, func(i, j int) bool { return succs[i] < succs[j] })
	return succs
}

// Subgraph returns the subgraph induced by the given nodes: those nodes and
// every edge whose endpoints both lie among them.
func (g *Graph) Subgraph(nodes []ast.Predicate) *Graph {
	sub := NewGraph()
	keep := make(map[ast.Predicate]bool, len(nodes))
	for _, p := range nodes {
		if g.nodes[p] {
			sub.AddNode(p)
			keep[p] = true
		}
	}
	for p := range keep {
		for q, label := range g.succs[p] {
			if keep[q] {
				sub.AddEdge(p, q, label)
			}
		}
	}
	return sub
}
