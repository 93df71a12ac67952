// Package minimize implements bottom-up minimization of a trie into a
// DAWG: a post-order traversal that collapses subtrees with identical
// outgoing structure into a single canonical representative.
//
// The approach mirrors the minimizedNodes signature table in
// other_examples' smhanov-dawg (github.com/milden6/dawg), generalized
// from its add-words-in-sorted-order incremental scheme to a one-shot
// post-order pass over an already-built trie: here every node carries
// a stable integer id from allocation. A node's id never appears in its
// own signature; it participates in every parent's signature once it
// has become some node's canonical child.
package minimize

import (
	"strconv"
	"strings"

	"github.com/nrankin/dawgc/internal/trie"
)

const alphabetSize = 26

// table maps a node's structural signature to the representative node
// for that signature. Keys are computed only from already-canonical
// children, so the table is safe to share across the whole traversal:
// a node's slots are frozen before it is inserted as a key, so nothing
// in the table is ever mutated while it serves as a key.
type table map[string]*trie.Node

// Minimize collapses root's reachable subgraph into a DAG of pairwise
// structurally-distinct nodes and returns root unchanged (root itself
// is never looked up in the signature table; only its children are
// redirected to their canonical representatives).
func Minimize(root *trie.Node) *trie.Node {
	t := make(table)
	children := root.Children()
	for i, c := range children {
		if c == nil {
			continue
		}
		root.SetChild(i, canonicalize(c, t))
	}
	return root
}

// canonicalize returns the canonical representative for n's structural
// equivalence class, recursively canonicalizing n's children first so
// that the signature computed for n always reflects already-canonical
// child identities.
func canonicalize(n *trie.Node, t table) *trie.Node {
	if n.Done() {
		return n.Representative()
	}

	children := n.Children()
	for i, c := range children {
		if c == nil {
			continue
		}
		n.SetChild(i, canonicalize(c, t))
	}

	sig := signature(n)
	if existing, ok := t[sig]; ok {
		n.MarkDone(existing)
		return existing
	}

	t[sig] = n
	n.MarkDone(n)
	return n
}

// signature builds the structural key for n: the ordered 26-tuple of
// (canonical child id, edge-terminal flag), with a distinguished empty
// marker for unoccupied slots. Two nodes hash to the same signature iff
// their tuples are elementwise equal.
func signature(n *trie.Node) string {
	var b strings.Builder
	// Each slot contributes a fixed, unambiguous token so a value never
	// bleeds across slot boundaries in the concatenated key.
	children := n.Children()
	for i := 0; i < alphabetSize; i++ {
		c := children[i]
		b.WriteByte('|')
		if c == nil {
			b.WriteByte('_')
			continue
		}
		b.WriteString(strconv.Itoa(c.ID()))
		if n.EdgeTerminal(i) {
			b.WriteByte('T')
		} else {
			b.WriteByte('F')
		}
	}
	return b.String()
}
