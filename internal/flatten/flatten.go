// Package flatten turns a minimized DAWG (package minimize's output)
// into the deterministic, position-encoded array of 32-bit edge
// records: a two-pass BFS that first
// assigns every internal node a base offset, then fills one record per
// outgoing edge using that offset table.
//
// The per-record bit flags are named in the spirit of
// other_examples' smarty-archives-mafsa decoder.go (endOfWord /
// endOfNode constants for a bit-packed MA-FSA edge), the closest
// sibling prior art in the retrieval pack for a bit-packed DAWG edge
// record, though that format's byte layout differs from the fixed
// 32-bit little-endian record specified here.
package flatten

import (
	"errors"

	"github.com/nrankin/dawgc/internal/trie"
)

const alphabetSize = 26

// Record is a single packed 32-bit edge record.
//
// Bit layout (bit 0 is least significant):
//
//	bits 0-4   letter, 1..26 for a..z (0 reserved/unused)
//	bit  5     end-of-word: this edge terminates a word
//	bit  6     end-of-node: last sibling in this node's list
//	bits 7-31  next: base offset of the target node (25 bits); 0 = leaf
type Record uint32

const (
	letterMask   Record = 0x1F       // bits 0-4
	endOfWordBit Record = 1 << 5     // bit 5
	endOfNodeBit Record = 1 << 6     // bit 6
	nextShift           = 7          // bits 7-31
	maxNext      Record = (1 << 25) - 1
)

// ErrCapacityOverflow is returned when the packed array would need a
// base offset beyond the 25-bit next-pointer field, or more records
// than fit in that same 25-bit space.
var ErrCapacityOverflow = errors.New("flatten: record count exceeds 25-bit next-pointer capacity (2^25 records)")

// Letter returns the 1-based letter this record encodes (1='a'..26='z').
func (r Record) Letter() int { return int(r & letterMask) }

// EndOfWord reports whether this edge terminates a word.
func (r Record) EndOfWord() bool { return r&endOfWordBit != 0 }

// EndOfNode reports whether this record is the last sibling in its list.
func (r Record) EndOfNode() bool { return r&endOfNodeBit != 0 }

// Next returns the base offset of the target node; 0 means the target
// is a leaf with no children.
func (r Record) Next() uint32 { return uint32(r >> nextShift) }

func makeRecord(letter int, eow, eon bool, next uint32) Record {
	r := Record(letter) & letterMask
	if eow {
		r |= endOfWordBit
	}
	if eon {
		r |= endOfNodeBit
	}
	r |= Record(next) << nextShift
	return r
}

// childCount returns the number of non-empty child slots of n.
func childCount(n *trie.Node) int {
	count := 0
	children := n.Children()
	for _, c := range children {
		if c != nil {
			count++
		}
	}
	return count
}

// Flatten runs the two-pass layout over the minimized DAG rooted at
// root and returns the packed record array. root itself is never
// assigned an offset or written as a record target; A[0..k-1] encodes
// root's own children directly.
func Flatten(root *trie.Node) ([]Record, error) {
	offsets, total, err := assignOffsets(root)
	if err != nil {
		return nil, err
	}

	records := make([]Record, total)
	fillRecords(root, offsets, records)
	return records, nil
}

// assignOffsets performs pass 1: BFS from root, assigning each
// internal (non-leaf) node reachable from root a base offset equal to
// the running total of children counts seen so far. Leaves are
// assigned offset 0 and never enqueued, matching the "0 means no
// children" sentinel.
func assignOffsets(root *trie.Node) (map[*trie.Node]uint32, int, error) {
	offsets := make(map[*trie.Node]uint32)
	total := childCount(root)
	if Record(total) > maxNext+1 {
		return nil, 0, ErrCapacityOverflow
	}

	queue := make([]*trie.Node, 0, total)
	children := root.Children()
	for _, c := range children {
		if c != nil && childCount(c) > 0 {
			queue = append(queue, c)
		}
	}

	assign := func(n *trie.Node) error {
		if _, ok := offsets[n]; ok {
			return nil
		}
		offsets[n] = uint32(total)
		total += childCount(n)
		if Record(total) > maxNext+1 {
			return ErrCapacityOverflow
		}
		return nil
	}
	for _, n := range queue {
		if err := assign(n); err != nil {
			return nil, 0, err
		}
	}

	for head := 0; head < len(queue); head++ {
		n := queue[head]
		nc := n.Children()
		for _, c := range nc {
			if c == nil {
				continue
			}
			if _, ok := offsets[c]; ok {
				continue
			}
			if childCount(c) == 0 {
				continue
			}
			if err := assign(c); err != nil {
				return nil, 0, err
			}
			queue = append(queue, c)
		}
	}

	return offsets, total, nil
}

// fillRecords performs pass 2: BFS from root again, writing one record
// per outgoing edge of every visited node into its assigned slot range.
func fillRecords(root *trie.Node, offsets map[*trie.Node]uint32, out []Record) {
	visited := make(map[*trie.Node]bool)

	writeNode := func(n *trie.Node, base uint32) {
		children := n.Children()
		pos := uint32(0)
		last := lastNonEmptySlot(children)
		for i, c := range children {
			if c == nil {
				continue
			}
			next := offsets[c] // 0 for leaves, the correct base offset otherwise
			out[base+pos] = makeRecord(i+1, n.EdgeTerminal(i), i == last, next)
			pos++
		}
	}

	writeNode(root, 0)
	visited[root] = true

	queue := make([]*trie.Node, 0, len(offsets))
	rc := root.Children()
	for _, c := range rc {
		if c != nil {
			queue = append(queue, c)
		}
	}

	for head := 0; head < len(queue); head++ {
		n := queue[head]
		if visited[n] {
			continue
		}
		visited[n] = true

		if childCount(n) > 0 {
			writeNode(n, offsets[n])
		}

		nc := n.Children()
		for _, c := range nc {
			if c == nil || visited[c] {
				continue
			}
			if childCount(c) == 0 {
				continue
			}
			queue = append(queue, c)
		}
	}
}

// lastNonEmptySlot returns the highest index with a non-nil child, or
// -1 if all slots are empty.
func lastNonEmptySlot(children [alphabetSize]*trie.Node) int {
	last := -1
	for i, c := range children {
		if c != nil {
			last = i
		}
	}
	return last
}
