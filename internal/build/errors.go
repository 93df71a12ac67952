package build

import "errors"

// The complete error taxonomy for a compile run. Named the way the
// teacher names its own sentinels (compressedtrie exposes
// ErrUnsupportedVersion and ErrInvalidFormat as package-level
// errors.New values, wrapped with fmt.Errorf("...: %w", ...) at the
// call site); dawgc follows the same pattern for its own taxonomy.
var (
	// ErrInputOpen means the given word-list path could not be opened.
	ErrInputOpen = errors.New("dawgc: could not open input word list")

	// ErrOutputWrite means the output path could not be created, or a
	// write to it was short.
	ErrOutputWrite = errors.New("dawgc: could not write output file")

	// ErrAllocation means an internal table or buffer could not grow.
	// No partial file is ever considered valid after this. Go's own
	// allocator panics rather than returning an error, so this sentinel
	// rounds out the taxonomy without a reachable call site.
	ErrAllocation = errors.New("dawgc: internal allocation failure")

	// ErrCapacityOverflow means the packed array would need more than
	// 2^25 records, exhausting the 25-bit next-pointer field.
	ErrCapacityOverflow = errors.New("dawgc: packed array exceeds 2^25 record capacity")
)
