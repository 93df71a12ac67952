package build

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"

	"github.com/nrankin/dawgc/internal/dawgio"
	"github.com/nrankin/dawgc/internal/flatten"
	"github.com/nrankin/dawgc/internal/minimize"
	"github.com/nrankin/dawgc/internal/trie"
	"github.com/nrankin/dawgc/internal/wordlist"
)

// Stats summarizes one compile run, in the order a build report
// should present them.
type Stats struct {
	WordsLoaded      int
	WordsSkipped     int
	TrieNodes        int
	DAWGNodes        int
	ReductionPercent float64
	PackedEntries    int
	PackedBytes      int64
	VerifiedWords    int
}

// Options configures a single compile run.
type Options struct {
	InputPath  string
	OutputPath string
	MaxWordLen int
	Quiet      bool
}

// Compile runs the full pipeline: load, insert, migrate terminals,
// minimize, flatten, serialize, and verify by walking the just-written
// file. It is the one place that wires every core package together,
// mirroring compressedtrie's own end-to-end flow of Insert calls
// followed by a single Serialize call.
func Compile(opt Options) (Stats, error) {
	_, stats, err := compileKeepingRoot(opt)
	return stats, err
}

// compileKeepingRoot is Compile's implementation, additionally
// returning the in-memory minimized DAG root so callers like the --dot
// flag can render it without rebuilding the pipeline.
func compileKeepingRoot(opt Options) (*trie.Node, Stats, error) {
	var stats Stats

	words, skipped, err := wordlist.Load(opt.InputPath)
	if err != nil {
		return nil, stats, fmt.Errorf("%w: %v", ErrInputOpen, err)
	}
	distinct := make(map[string]struct{}, len(words))
	for _, w := range words {
		distinct[w] = struct{}{}
	}
	stats.WordsLoaded = len(distinct)
	stats.WordsSkipped = skipped

	tree := trie.NewTree()

	var bar *progressbar.ProgressBar
	if !opt.Quiet {
		bar = progressbar.Default(int64(len(words)), "building trie")
	}
	for _, w := range words {
		tree.Insert(w)
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	if bar != nil {
		_ = bar.Finish()
	}

	stats.TrieNodes = tree.NodeCount()

	root := tree.Root()
	trie.MigrateTerminals(root)
	minimize.Minimize(root)

	stats.DAWGNodes = countCanonicalNodes(root)
	if stats.TrieNodes > 0 {
		stats.ReductionPercent = 100 * (1 - float64(stats.DAWGNodes)/float64(stats.TrieNodes))
	}

	records, err := flatten.Flatten(root)
	if err != nil {
		return nil, stats, fmt.Errorf("%w: %v", ErrCapacityOverflow, err)
	}
	stats.PackedEntries = len(records)

	out, err := os.Create(opt.OutputPath)
	if err != nil {
		return nil, stats, fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}
	n, werr := dawgio.Write(out, records)
	cerr := out.Close()
	if werr != nil {
		return nil, stats, fmt.Errorf("%w: %v", ErrOutputWrite, werr)
	}
	if cerr != nil {
		return nil, stats, fmt.Errorf("%w: %v", ErrOutputWrite, cerr)
	}
	stats.PackedBytes = n

	verified, err := verify(opt.OutputPath, opt.MaxWordLen)
	if err != nil {
		return nil, stats, fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}
	stats.VerifiedWords = verified

	return root, stats, nil
}

// verify opens the just-written file and walks it, counting accepted
// words, matching the "verification word count" a standard-output
// report should include.
func verify(path string, maxWordLen int) (int, error) {
	r, err := dawgio.Open(path)
	if err != nil {
		return 0, err
	}
	defer r.Close()
	if maxWordLen > 0 {
		r.SetMaxDepth(maxWordLen)
	}

	count := 0
	err = r.Enumerate(func(word []byte, isWord bool) dawgio.EnumerationResult {
		if isWord {
			count++
		}
		return dawgio.Continue
	})
	if err != nil && err != io.EOF {
		return count, err
	}
	return count, nil
}

// countCanonicalNodes counts the DAWG's distinct reachable nodes (root
// plus every unique canonical node reachable from it) by pointer
// identity, for the DAWGNodes statistic.
func countCanonicalNodes(root *trie.Node) int {
	seen := map[*trie.Node]bool{root: true}
	var walk func(n *trie.Node)
	walk = func(n *trie.Node) {
		children := n.Children()
		for _, c := range children {
			if c == nil || seen[c] {
				continue
			}
			seen[c] = true
			walk(c)
		}
	}
	walk(root)
	return len(seen)
}
