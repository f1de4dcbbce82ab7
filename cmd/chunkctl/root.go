package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ReesavGupta/RAG-playground/internal/corpus"
)

var rootCmd = &cobra.Command{
	Use:   "chunkctl",
	Short: "Inspect category selection and adaptive chunking",
	Long: `chunkctl runs the chunk-strategy selector and the per-category chunkers
on local files without touching the index. Useful for checking which
category a document lands in and what chunks a policy produces.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// readInput loads the document text from a path argument, or from stdin when
// the argument is "-".
func readInput(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	return corpus.Load(path)
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
