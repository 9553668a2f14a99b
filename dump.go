package crucible

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	dumpCapability = color.New(color.FgCyan).SprintFunc()
	dumpLifetime   = color.New(color.FgHiBlack).SprintFunc()
	dumpMode       = color.New(color.FgYellow).SprintFunc()
	dumpMissing    = color.New(color.FgRed).SprintFunc()
)

// DumpGraph writes the declared dependency tree of every registration to
// w. Each root line names a capability and its lifetime; nested lines show
// declared dependencies with their resolution mode. Dependencies that are
// not registered are marked missing, and edges closing a cycle are marked
// instead of recursed into.
//
// Colors follow the fatih/color global settings, so output respects
// NO_COLOR and non-terminal writers.
func DumpGraph(c Container, w io.Writer) error {
	graph := c.Graph()

	for _, key := range c.Keys() {
		info, err := c.InspectKey(key)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s %s\n", dumpCapability(key.String()), dumpLifetime("("+info.Lifetime+")")); err != nil {
			return err
		}
		if err := dumpDeps(w, c, graph, key, "", map[Key]bool{key: true}); err != nil {
			return err
		}
	}

	return nil
}

func dumpDeps(w io.Writer, c Container, graph *Graph, key Key, prefix string, onPath map[Key]bool) error {
	deps := graph.Deps(key)

	for i, dep := range deps {
		connector := "├── "
		childPrefix := prefix + "│   "
		if i == len(deps)-1 {
			connector = "└── "
			childPrefix = prefix + "    "
		}

		label := dumpCapability(dep.Key.String())
		mode := ""
		if dep.Mode != DepEager {
			mode = " " + dumpMode("["+dep.Mode.String()+"]")
		}

		switch {
		case !c.HasKey(dep.Key):
			if _, err := fmt.Fprintf(w, "%s%s%s%s %s\n", prefix, connector, label, mode, dumpMissing("(missing)")); err != nil {
				return err
			}
		case onPath[dep.Key]:
			if _, err := fmt.Fprintf(w, "%s%s%s%s %s\n", prefix, connector, label, mode, dumpMode("(cycle)")); err != nil {
				return err
			}
		default:
			if _, err := fmt.Fprintf(w, "%s%s%s%s\n", prefix, connector, label, mode); err != nil {
				return err
			}
			onPath[dep.Key] = true
			if err := dumpDeps(w, c, graph, dep.Key, childPrefix, onPath); err != nil {
				return err
			}
			delete(onPath, dep.Key)
		}
	}

	return nil
}
