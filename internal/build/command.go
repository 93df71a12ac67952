// Package build wires the core pipeline (trie, minimize, flatten,
// dawgio) into the command-line surface: a two-positional-argument
// compiler that reports build statistics and exits non-zero on
// failure.
package build

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/nrankin/dawgc/internal/dot"
	"github.com/nrankin/dawgc/internal/trie"
)

// NewRootCommand builds the dawgc root command: positional input and
// output paths (defaulting to words.txt and dawg.bin), plus the --dot,
// --max-word-len and --quiet flags.
func NewRootCommand(logger zerolog.Logger) *cobra.Command {
	var dotPath string
	var maxWordLen int
	var quiet bool

	cmd := &cobra.Command{
		Use:   "dawgc [input] [output]",
		Short: "Compile a word list into a packed Directed Acyclic Word Graph",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := "words.txt"
			output := "dawg.bin"
			if len(args) > 0 {
				input = args[0]
			}
			if len(args) > 1 {
				output = args[1]
			}

			opt := Options{
				InputPath:  input,
				OutputPath: output,
				MaxWordLen: maxWordLen,
				Quiet:      quiet,
			}

			root, stats, err := compileKeepingRoot(opt)
			if err != nil {
				logger.Error().Err(err).Str("input", input).Str("output", output).Msg("dawgc build failed")
				return err
			}

			reportStats(stats)

			if dotPath != "" {
				if err := writeDot(root, dotPath); err != nil {
					logger.Error().Err(err).Str("dot", dotPath).Msg("dawgc dot render failed")
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&dotPath, "dot", "", "also write a Graphviz DOT rendering of the minimized DAG to this path")
	cmd.Flags().IntVar(&maxWordLen, "max-word-len", 0, "override the verifier's recursion guard (0 = default)")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "suppress the progress bar")

	return cmd
}

func writeDot(root *trie.Node, path string) error {
	if root == nil {
		return fmt.Errorf("dawgc: no DAG available for dot rendering")
	}
	doc, err := dot.Render(root)
	if err != nil {
		return err
	}
	return writeFile(path, doc)
}

// reportStats prints the build summary line: words loaded/skipped,
// trie/DAWG node counts and reduction
// percentage, packed entry count and byte size, and the verified word
// count - colorized with fatih/color and formatted with
// dustin/go-humanize, the way Sumatoshi-tech-codefang's CLI reporting
// layer does.
func reportStats(s Stats) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen, color.Bold)

	bold.Println("dawgc build summary")
	fmt.Printf("  words loaded:      %s\n", humanize.Comma(int64(s.WordsLoaded)))
	fmt.Printf("  words skipped:     %s\n", humanize.Comma(int64(s.WordsSkipped)))
	fmt.Printf("  trie nodes:        %s\n", humanize.Comma(int64(s.TrieNodes)))
	fmt.Printf("  DAWG nodes:        %s\n", humanize.Comma(int64(s.DAWGNodes)))
	fmt.Printf("  reduction:         %.1f%%\n", s.ReductionPercent)
	fmt.Printf("  packed entries:    %s\n", humanize.Comma(int64(s.PackedEntries)))
	fmt.Printf("  packed size:       %s\n", humanize.Bytes(uint64(s.PackedBytes)))
	green.Printf("  verified words:    %s\n", humanize.Comma(int64(s.VerifiedWords)))
}
