package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/modstrap/internal/cli"
	"github.com/arthur-debert/modstrap/internal/version"
)

func main() {
	rootCmd := cli.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "MODSTRAP",
		Section: "1",
		Source:  "modstrap " + version.Version,
		Manual:  "modstrap manual",
	}

	if err := doc.GenManTree(rootCmd, header, "."); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man pages: %v\n", err)
		os.Exit(1)
	}
}
