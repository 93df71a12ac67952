// Package wordlist implements the input collaborator: trimming,
// empty-line dropping, ASCII case-folding and a..z acceptance/
// rejection, ahead of trie insertion.
//
// Reading follows compressedtrie's bufio-first idiom (its own
// Serialize/Deserialize wrap an io.Writer/io.Reader in a
// bufio.Writer/bufio.Reader); here a bufio.Scanner does the line
// splitting. Open additionally recognizes a .gz suffix and transparently
// decompresses through github.com/klauspost/compress/gzip, grounded on
// javanhut-IvaldiVCS's and SnellerInc-sneller's use of the same package
// for bulk text decompression - word lists at the scale of a full
// dictionary are routinely shipped gzip-compressed.
package wordlist

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
)

// maxLineLen bounds the scanner's buffer rather than letting it grow
// indefinitely. A line longer than this is not counted as skipped: it
// ends the scan, and Scan returns bufio.ErrTooLong.
const maxLineLen = 1 << 16

// Open opens path for reading, transparently decompressing it if the
// name ends in ".gz". The returned closer must be closed by the caller.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !strings.HasSuffix(path, ".gz") {
		return f, nil
	}

	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &gzipReadCloser{gz: gz, f: f}, nil
}

// gzipReadCloser closes both the gzip stream and its underlying file.
type gzipReadCloser struct {
	gz *gzip.Reader
	f  *os.File
}

func (g *gzipReadCloser) Read(p []byte) (int, error) { return g.gz.Read(p) }

func (g *gzipReadCloser) Close() error {
	gerr := g.gz.Close()
	ferr := g.f.Close()
	if gerr != nil {
		return gerr
	}
	return ferr
}

// Accept case-folds an input line to lowercase and reports whether
// every resulting byte is in a..z, returning the folded word when
// accepted. Trailing whitespace must already be trimmed by the caller;
// an empty line is never accepted (callers drop it before counting it
// as skipped).
func Accept(line string) (word string, ok bool) {
	if line == "" {
		return "", false
	}

	buf := make([]byte, len(line))
	for i := 0; i < len(line); i++ {
		c := line[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c < 'a' || c > 'z' {
			return "", false
		}
		buf[i] = c
	}
	return string(buf), true
}

// VisitFn is called once per accepted word.
type VisitFn func(word string) error

// Scan reads lines from r, trimming trailing whitespace, dropping
// empty lines, and case-folding/validating the rest per Accept. It
// calls visit for every accepted word (duplicates included - the core
// trie treats repeated inserts as idempotent) and returns the count of
// rejected non-empty lines.
func Scan(r io.Reader, visit VisitFn) (skipped int, err error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLen)

	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r\n\v\f")
		if line == "" {
			continue
		}
		word, ok := Accept(line)
		if !ok {
			skipped++
			continue
		}
		if err := visit(word); err != nil {
			return skipped, err
		}
	}
	if err := sc.Err(); err != nil {
		return skipped, err
	}
	return skipped, nil
}

// Load reads every line from path via Open/Scan and returns the
// accepted words in encounter order along with the skipped count.
func Load(path string) (words []string, skipped int, err error) {
	f, err := Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	skipped, err = Scan(f, func(word string) error {
		words = append(words, word)
		return nil
	})
	return words, skipped, err
}
