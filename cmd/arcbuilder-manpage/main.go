package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/arcbuilder/cmd/arcbuilder"
	"github.com/arthur-debert/arcbuilder/internal/version"
)

func main() {
	rootCmd := arcbuilder.NewRootCmd()
	rootCmd.DisableAutoGenTag = true

	header := &doc.GenManHeader{
		Title:   "ARCBUILDER",
		Section: "1",
		Source:  "arcbuilder " + version.Version,
		Manual:  "arcbuilder manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
