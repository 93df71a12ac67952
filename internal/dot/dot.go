// Package dot renders a minimized DAWG as Graphviz DOT, for the small
// inputs called out as a visualization aid (out of scope for the core
// pipeline, but carried over as a developer convenience the same way
// compressedtrie's own test helper carries one).
//
// The traversal is compressedtrie's asDot helper generalized from a
// tree to a DAG: compressedtrie's test helper already dedupes on node
// pointer identity (nodeIDs map[*Node]int, checked before assigning a
// fresh id), which is exactly what's needed once minimization lets two
// parents share a child - the only change here is that a node can now
// be discovered through more than one parent and must only be
// rendered, and have its own children traversed, once.
package dot

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/nrankin/dawgc/internal/trie"
)

// MaxNodes is the node-count ceiling above which Render refuses to
// produce a DOT file; large DAWGs (hundreds of thousands of words) are
// not usefully visualized and would produce an unwieldy graph. It is a
// var, not a const, so tests can shrink it to exercise the ceiling
// cheaply instead of constructing a 2000+ node DAG.
var MaxNodes = 2000

// ErrTooManyNodes is returned by Render when the DAG has more than
// MaxNodes reachable nodes.
var ErrTooManyNodes = errors.New("dot: graph exceeds MaxNodes, too large to render")

// Render walks the minimized DAG rooted at root and returns a Graphviz
// DOT document. Shared nodes (reachable through more than one parent)
// are emitted once and referenced from every incoming edge.
func Render(root *trie.Node) (string, error) {
	var sb strings.Builder
	sb.WriteString("digraph DAWG {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString("  node [shape=circle];\n")

	ids := make(map[*trie.Node]int)
	nodeID := func(n *trie.Node) (id int, fresh bool) {
		if id, ok := ids[n]; ok {
			return id, false
		}
		id = len(ids)
		ids[n] = id
		return id, true
	}

	rootID, _ := nodeID(root)
	sb.WriteString(fmt.Sprintf("  n%d [label=\"root\"];\n", rootID))

	type edge struct {
		from, to int
		letter   byte
		terminal bool
	}
	var edges []edge

	var visit func(n *trie.Node) error
	visit = func(n *trie.Node) error {
		if len(ids) > MaxNodes {
			return ErrTooManyNodes
		}
		id := ids[n]
		children := n.Children()
		for i, c := range children {
			if c == nil {
				continue
			}
			childID, fresh := nodeID(c)
			edges = append(edges, edge{from: id, to: childID, letter: byte('a' + i), terminal: n.EdgeTerminal(i)})
			if fresh {
				shape := ""
				if c.IsLeaf() {
					shape = ", shape=doublecircle"
				}
				sb.WriteString(fmt.Sprintf("  n%d [label=\"\"%s];\n", childID, shape))
				if err := visit(c); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if err := visit(root); err != nil {
		return "", err
	}

	sort.Slice(edges, func(i, j int) bool {
		if edges[i].from != edges[j].from {
			return edges[i].from < edges[j].from
		}
		return edges[i].letter < edges[j].letter
	})
	for _, e := range edges {
		label := string(e.letter)
		if e.terminal {
			label += "*"
		}
		sb.WriteString(fmt.Sprintf("  n%d -> n%d [label=\"%s\"];\n", e.from, e.to, label))
	}

	sb.WriteString("}\n")
	return sb.String(), nil
}
