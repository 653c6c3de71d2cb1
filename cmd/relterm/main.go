// Command relterm finds related terms in a text corpus.
package main

import (
	"os"

	"github.com/hupe1980/relterm/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
