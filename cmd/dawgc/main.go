// Command dawgc compiles a plain-text word list into a packed DAWG
// binary, reporting the build statistics a compiler run should
// surface on the command line.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/nrankin/dawgc/internal/build"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
		With().Timestamp().Logger()

	cmd := build.NewRootCommand(logger)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
