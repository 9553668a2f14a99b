package di

import (
	"fmt"
	"strings"

	"github.com/xraph/crucible/errors"
)

// Graph tracks the declared dependency edges between registrations.
type Graph struct {
	nodes map[Key]*node
	order []Key // preserve registration order
}

type node struct {
	key  Key
	deps []Dep
}

// NewGraph creates an empty dependency graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[Key]*node),
	}
}

// AddNode adds a registration with its declared dependencies.
// Nodes are processed in the order they are added (FIFO) when no
// dependency edge forces another order.
func (g *Graph) AddNode(key Key, deps []Dep) {
	g.nodes[key] = &node{key: key, deps: deps}
	g.order = append(g.order, key)
}

// Has reports whether the key has been added to the graph.
func (g *Graph) Has(key Key) bool {
	_, ok := g.nodes[key]
	return ok
}

// Keys returns all node keys in registration order.
func (g *Graph) Keys() []Key {
	return append([]Key(nil), g.order...)
}

// Deps returns the declared dependencies of a key.
func (g *Graph) Deps(key Key) []Dep {
	n := g.nodes[key]
	if n == nil {
		return nil
	}
	return append([]Dep(nil), n.deps...)
}

// TopologicalSort returns keys in dependency order. Only eager edges
// constrain the order; lazy dependencies are resolved on first access and
// never block construction. Nodes without dependencies keep their
// registration order (FIFO). Returns an error when a cycle is detected,
// reporting the full chain.
func (g *Graph) TopologicalSort() ([]Key, error) {
	visited := make(map[Key]bool)
	visiting := make(map[Key]bool)
	result := make([]Key, 0, len(g.nodes))

	var stack []Key
	var visit func(Key) error
	visit = func(key Key) error {
		if visited[key] {
			return nil
		}
		if visiting[key] {
			return errors.ErrCyclicDependency(keyNames(cycleChain(stack, key)))
		}

		n := g.nodes[key]
		if n == nil {
			// Not registered; the validator reports missing dependencies.
			return nil
		}

		visiting[key] = true
		stack = append(stack, key)

		for _, dep := range n.deps {
			if dep.Mode.IsLazy() {
				continue
			}
			if err := visit(dep.Key); err != nil {
				return err
			}
		}

		stack = stack[:len(stack)-1]
		visiting[key] = false
		visited[key] = true
		result = append(result, key)

		return nil
	}

	for _, key := range g.order {
		if err := visit(key); err != nil {
			return nil, err
		}
	}

	return result, nil
}

// Cycles returns every distinct cycle reachable through eager edges. Each
// cycle is reported once, as the chain of keys closing back on its first
// element.
func (g *Graph) Cycles() [][]Key {
	const (
		white = iota
		gray
		black
	)

	colors := make(map[Key]int)
	var cycles [][]Key
	var stack []Key

	var visit func(Key)
	visit = func(key Key) {
		colors[key] = gray
		stack = append(stack, key)

		for _, dep := range g.nodes[key].deps {
			if dep.Mode.IsLazy() {
				continue
			}
			next := dep.Key
			if g.nodes[next] == nil {
				continue
			}
			switch colors[next] {
			case white:
				visit(next)
			case gray:
				cycles = append(cycles, cycleChain(stack, next))
			}
		}

		stack = stack[:len(stack)-1]
		colors[key] = black
	}

	for _, key := range g.order {
		if colors[key] == white {
			visit(key)
		}
	}

	return cycles
}

// DOT renders the graph in Graphviz dot format. Lazy edges are dashed
// and optional edges dotted.
func (g *Graph) DOT() string {
	var b strings.Builder
	b.WriteString("digraph crucible {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box];\n")

	for _, key := range g.order {
		fmt.Fprintf(&b, "  %q;\n", key.String())
	}
	for _, key := range g.order {
		for _, dep := range g.nodes[key].deps {
			var attr string
			switch dep.Mode {
			case DepLazy:
				attr = " [style=dashed]"
			case DepOptional:
				attr = " [style=dotted]"
			case DepLazyOptional:
				attr = " [style=dashed, color=gray]"
			}
			fmt.Fprintf(&b, "  %q -> %q%s;\n", key.String(), dep.Key.String(), attr)
		}
	}

	b.WriteString("}\n")
	return b.String()
}

// cycleChain slices the walk stack from the first occurrence of start and
// closes the loop by appending start again.
func cycleChain(stack []Key, start Key) []Key {
	for i, k := range stack {
		if k == start {
			chain := append([]Key(nil), stack[i:]...)
			return append(chain, start)
		}
	}
	return []Key{start, start}
}
