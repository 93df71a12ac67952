// Reader implements the walker: the authoritative definition of what a
// packed DAWG file means. It is backed by a
// read-only byte slice, normally the live mapping returned by
// github.com/go-mmap/mmap - the zero-copy query path this format is
// built for, grounded on chriskillpack-emailsearch (compressedtrie's
// own downstream consumer, which maps a serialized trie the same way
// rather than reading it into a []byte up front).
package dawgio

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-mmap/mmap"

	"github.com/nrankin/dawgc/internal/flatten"
)

// ErrWordTooLong is returned by Contains/HasPrefix/Enumerate when a
// recursive walk would exceed maxDepth, guarding the depth-first
// recursion the format's walk is specified as (the reference
// implementations' call-stack recursion has no documented ceiling;
// this Reader imposes one explicitly instead of risking a stack
// overflow on pathological input).
var ErrWordTooLong = errors.New("dawgio: word exceeds reader's max depth")

// DefaultMaxDepth accepts words up to this many letters, double the
// reference implementations' effective ~256-character limit.
const DefaultMaxDepth = 512

// Reader walks a packed DAWG held in memory.
type Reader struct {
	data     []byte
	closer   interface{ Close() error }
	maxDepth int
}

// NewReader wraps an already-loaded packed byte slice (e.g. from
// dawgio.Write or os.ReadFile) with the default max recursion depth.
func NewReader(data []byte) *Reader {
	return &Reader{data: data, maxDepth: DefaultMaxDepth}
}

// SetMaxDepth overrides the recursion guard used by Contains,
// HasPrefix and Enumerate.
func (r *Reader) SetMaxDepth(n int) { r.maxDepth = n }

// Open memory-maps path and returns a Reader backed directly by the
// mapping, avoiding a full read of potentially large files. Call
// Close when done.
//
// An empty file (no accepted words at all) is handled without calling
// into mmap at all, since mapping a zero-length file is an error on
// most platforms.
func Open(path string) (*Reader, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("dawgio: open %s: %w", path, err)
	}
	if info.Size() == 0 {
		return &Reader{maxDepth: DefaultMaxDepth}, nil
	}

	f, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dawgio: open %s: %w", path, err)
	}
	return &Reader{data: f.Bytes(), closer: f, maxDepth: DefaultMaxDepth}, nil
}

// Close releases the backing mapping, if any. Safe to call on a Reader
// built with NewReader.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// recordAt reads the record at record-index i (not byte offset).
func (r *Reader) recordAt(i uint32) (flatten.Record, bool) {
	off := int(i) * 4
	if off < 0 || off+4 > len(r.data) {
		return 0, false
	}
	return flatten.Record(
		uint32(r.data[off]) |
			uint32(r.data[off+1])<<8 |
			uint32(r.data[off+2])<<16 |
			uint32(r.data[off+3])<<24,
	), true
}

// NumRecords returns the number of 32-bit records in the backing data.
func (r *Reader) NumRecords() int { return len(r.data) / 4 }

// Contains reports whether word is a member of the walked set.
func (r *Reader) Contains(word string) (bool, error) {
	if len(word) > r.maxDepth {
		return false, ErrWordTooLong
	}
	if word == "" {
		// The empty string can only be a member if the root itself were
		// terminal, but the root has no incoming edge to carry an
		// edge-terminal flag - this format has no representation for the
		// empty word, matching the word set of non-empty a-z strings
		// built by the external collaborator.
		return false, nil
	}

	base := uint32(0)
	for i := 0; i < len(word); i++ {
		idx, ok := letterIndex(word[i])
		if !ok {
			return false, nil
		}
		rec, found := r.findSibling(base, idx)
		if !found {
			return false, nil
		}
		last := i == len(word)-1
		if last {
			return rec.EndOfWord(), nil
		}
		if rec.Next() == 0 {
			return false, nil
		}
		base = rec.Next()
	}
	return false, nil
}

// HasPrefix reports whether any member word starts with prefix.
func (r *Reader) HasPrefix(prefix string) (bool, error) {
	if len(prefix) > r.maxDepth {
		return false, ErrWordTooLong
	}
	if prefix == "" {
		return r.NumRecords() > 0, nil
	}

	base := uint32(0)
	for i := 0; i < len(prefix); i++ {
		idx, ok := letterIndex(prefix[i])
		if !ok {
			return false, nil
		}
		rec, found := r.findSibling(base, idx)
		if !found {
			return false, nil
		}
		if i == len(prefix)-1 {
			return true, nil
		}
		if rec.Next() == 0 {
			return false, nil
		}
		base = rec.Next()
	}
	return false, nil
}

// findSibling scans the sibling block starting at base for the record
// whose letter matches 0-based idx, stopping after the end-of-node
// record.
func (r *Reader) findSibling(base uint32, idx int) (flatten.Record, bool) {
	for off := base; ; off++ {
		rec, ok := r.recordAt(off)
		if !ok {
			return 0, false
		}
		if rec.Letter() == idx+1 {
			return rec, true
		}
		if rec.EndOfNode() {
			return 0, false
		}
	}
}

func letterIndex(b byte) (int, bool) {
	if b < 'a' || b > 'z' {
		return 0, false
	}
	return int(b - 'a'), true
}

// EnumerationResult tells Enumerate whether to keep descending below
// the current prefix, skip the words below it (its siblings are still
// visited), or stop the walk entirely. Named and valued after other_examples'
// smhanov-dawg Finder API (Continue/Skip/Stop), the closest sibling
// read-side enumeration contract in the retrieval pack.
type EnumerationResult int

const (
	// Continue enumerating words below the current prefix.
	Continue EnumerationResult = iota
	// Skip the remaining words under the current prefix.
	Skip
	// Stop the walk immediately.
	Stop
)

// EnumFn is called once per accepted prefix during Enumerate, with the
// letters accumulated so far and whether that prefix is itself a word.
type EnumFn func(word []byte, isWord bool) EnumerationResult

// Enumerate walks every member word of the DAWG in letter order,
// calling fn for every accepted path from the root (exactly the
// walker described by the format: follow records until
// end-of-node, recurse into non-zero next pointers, report a member
// word wherever end-of-word is set).
func (r *Reader) Enumerate(fn EnumFn) error {
	_, err := r.enumerate(0, make([]byte, 0, r.maxDepth), fn)
	return err
}

func (r *Reader) enumerate(base uint32, path []byte, fn EnumFn) (EnumerationResult, error) {
	if len(path) >= r.maxDepth {
		return Stop, ErrWordTooLong
	}
	for off := base; ; off++ {
		rec, ok := r.recordAt(off)
		if !ok {
			if off == base {
				// No block at all at this offset. The only legitimate way
				// to reach this is an entirely empty DAWG walked from the
				// root (every non-zero Next() is only ever produced by
				// flatten.Flatten for a node with at least one child, so a
				// missing record mid-block below is real corruption, not
				// this case).
				return Continue, nil
			}
			return Stop, fmt.Errorf("dawgio: truncated record block at offset %d", off)
		}

		letter := byte('a' + rec.Letter() - 1)
		path = append(path, letter)

		res := fn(path, rec.EndOfWord())
		switch res {
		case Stop:
			path = path[:len(path)-1]
			return Stop, nil
		case Skip:
			// fall through without recursing into this edge's children
		default:
			if rec.Next() != 0 {
				childRes, err := r.enumerate(rec.Next(), path, fn)
				if err != nil {
					return Stop, err
				}
				if childRes == Stop {
					path = path[:len(path)-1]
					return Stop, nil
				}
			}
		}

		path = path[:len(path)-1]
		if rec.EndOfNode() {
			return Continue, nil
		}
	}
}
