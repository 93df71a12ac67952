package flatten

import (
	"testing"

	"github.com/nrankin/dawgc/internal/minimize"
	"github.com/nrankin/dawgc/internal/trie"
)

func build(words ...string) *trie.Node {
	tree := trie.NewTree()
	for _, w := range words {
		tree.Insert(w)
	}
	root := tree.Root()
	trie.MigrateTerminals(root)
	minimize.Minimize(root)
	return root
}

func record(letter int, eow, eon bool, next uint32) Record {
	return makeRecord(letter, eow, eon, next)
}

// TestSingleLetterWord covers the single-letter boundary behavior:
// a single one-letter word "a" packs to exactly one record.
func TestSingleLetterWord(t *testing.T) {
	root := build("a")
	records, err := Flatten(root)
	if err != nil {
		t.Fatal(err)
	}

	want := []Record{record(1, true, true, 0)}
	assertRecords(t, records, want)
}

// TestLeafUnification covers the leaf-unification scenario: {a, b}.
func TestLeafUnification(t *testing.T) {
	root := build("a", "b")
	records, err := Flatten(root)
	if err != nil {
		t.Fatal(err)
	}

	want := []Record{
		record(1, true, false, 0), // a, eow=1, eon=0, next=0
		record(2, true, true, 0),  // b, eow=1, eon=1, next=0
	}
	assertRecords(t, records, want)
}

// TestPrefixSharing covers the prefix-sharing scenario: {cat, car, can}.
func TestPrefixSharing(t *testing.T) {
	root := build("cat", "car", "can")
	records, err := Flatten(root)
	if err != nil {
		t.Fatal(err)
	}

	want := []Record{
		record(3, false, true, 1),  // c, eon=1 (only child of root), next=1
		record(1, false, true, 2),  // a, eon=1 (only child of c), next=2
		record(14, true, false, 0), // n, eow=1, next=0 (leaf)
		record(18, true, false, 0), // r, eow=1, next=0 (leaf)
		record(20, true, true, 0),  // t, eow=1, eon=1, next=0 (leaf)
	}
	assertRecords(t, records, want)
}

// TestDuplicateWordCollapse covers the duplicate-collapse scenario: input
// containing "cat" three times is identical to input {cat}.
func TestDuplicateWordCollapse(t *testing.T) {
	dup, err := Flatten(build("cat", "cat", "cat"))
	if err != nil {
		t.Fatal(err)
	}
	single, err := Flatten(build("cat"))
	if err != nil {
		t.Fatal(err)
	}
	assertRecords(t, dup, single)
}

// TestLetterOrderingAndEndOfNode covers the letter-
// ordering and end-of-node-placement invariants over a wider sibling
// block.
func TestLetterOrderingAndEndOfNode(t *testing.T) {
	root := build("zoo", "apple", "mango", "kiwi")
	records, err := Flatten(root)
	if err != nil {
		t.Fatal(err)
	}

	// The root's own children occupy offsets 0..3 in letter order.
	rootBlock := records[0:4]
	last := -1
	for i, r := range rootBlock {
		if r.Letter() <= last {
			t.Errorf("letters not strictly increasing at root block index %d: %d <= %d", i, r.Letter(), last)
		}
		last = r.Letter()
	}
	for i, r := range rootBlock {
		isLast := i == len(rootBlock)-1
		if r.EndOfNode() != isLast {
			t.Errorf("root block index %d: EndOfNode()=%v, want %v", i, r.EndOfNode(), isLast)
		}
	}
}

// TestEmptyInput covers the empty-input boundary behavior: no
// words at all packs to zero records.
func TestEmptyInput(t *testing.T) {
	root := build()
	records, err := Flatten(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Errorf("len(records) = %d, want 0", len(records))
	}
}

func assertRecords(t *testing.T, got, want []Record) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len(records) = %d, want %d\ngot:  %v\nwant: %v", len(got), len(want), got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("record[%d] = %#v (letter=%d eow=%v eon=%v next=%d), want %#v (letter=%d eow=%v eon=%v next=%d)",
				i, got[i], got[i].Letter(), got[i].EndOfWord(), got[i].EndOfNode(), got[i].Next(),
				want[i], want[i].Letter(), want[i].EndOfWord(), want[i].EndOfNode(), want[i].Next())
		}
	}
}
