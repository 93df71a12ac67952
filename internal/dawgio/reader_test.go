package dawgio

import (
	"bytes"
	"sort"
	"testing"

	"github.com/nrankin/dawgc/internal/flatten"
	"github.com/nrankin/dawgc/internal/minimize"
	"github.com/nrankin/dawgc/internal/trie"
)

func packedBytes(t *testing.T, words ...string) []byte {
	t.Helper()
	tree := trie.NewTree()
	for _, w := range words {
		tree.Insert(w)
	}
	root := tree.Root()
	trie.MigrateTerminals(root)
	minimize.Minimize(root)
	records, err := flatten.Flatten(root)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if _, err := Write(&buf, records); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// TestRoundTrip covers the universal round-trip invariant: building,
// serializing and walking a word set yields
// exactly that set back (as a multiset, so duplicates in input
// collapse).
func TestRoundTrip(t *testing.T) {
	cases := [][]string{
		{"cat", "car", "can"},
		{"ing", "sing", "king"},
		{"cat", "cat", "cat"},
		{"a", "b"},
		{"alphabet", "elephant", "alpha"},
		{"zoo", "apple", "mango", "kiwi"},
	}

	for _, words := range cases {
		data := packedBytes(t, words...)
		r := NewReader(data)

		got := map[string]bool{}
		err := r.Enumerate(func(word []byte, isWord bool) EnumerationResult {
			if isWord {
				got[string(word)] = true
			}
			return Continue
		})
		if err != nil {
			t.Fatalf("Enumerate(%v): %v", words, err)
		}

		want := map[string]bool{}
		for _, w := range words {
			want[w] = true
		}

		if len(got) != len(want) {
			t.Errorf("words(%v): got %d distinct words, want %d (got=%v)", words, len(got), len(want), sortedKeys(got))
		}
		for w := range want {
			if !got[w] {
				t.Errorf("words(%v): missing %q from walk", words, w)
			}
		}
		for w := range got {
			if !want[w] {
				t.Errorf("words(%v): unexpected %q from walk", words, w)
			}
		}
	}
}

// TestEmptyInputWalk covers the empty-input boundary: walking a
// zero-byte file yields zero words.
func TestEmptyInputWalk(t *testing.T) {
	r := NewReader(nil)
	count := 0
	if err := r.Enumerate(func(word []byte, isWord bool) EnumerationResult {
		if isWord {
			count++
		}
		return Continue
	}); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("count = %d, want 0", count)
	}
}

func TestContainsAndHasPrefix(t *testing.T) {
	data := packedBytes(t, "cat", "car", "can", "cart")
	r := NewReader(data)

	members := []string{"cat", "car", "can", "cart"}
	for _, w := range members {
		ok, err := r.Contains(w)
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			t.Errorf("Contains(%q) = false, want true", w)
		}
	}

	nonMembers := []string{"ca", "ar", "dog", "carts", ""}
	for _, w := range nonMembers {
		ok, err := r.Contains(w)
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			t.Errorf("Contains(%q) = true, want false", w)
		}
	}

	prefixes := map[string]bool{
		"c":    true,
		"ca":   true,
		"car":  true,
		"cart": true,
		"x":    false,
		"carts": false,
	}
	for p, want := range prefixes {
		got, err := r.HasPrefix(p)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Errorf("HasPrefix(%q) = %v, want %v", p, got, want)
		}
	}
}

func TestWordTooLong(t *testing.T) {
	data := packedBytes(t, "cat")
	r := NewReader(data)
	r.SetMaxDepth(2)

	if _, err := r.Contains("cat"); err != ErrWordTooLong {
		t.Errorf("Contains with depth guard = %v, want ErrWordTooLong", err)
	}
}

func sortedKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
