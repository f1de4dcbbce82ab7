package main

import (
	"github.com/spf13/cobra"

	"github.com/ReesavGupta/RAG-playground/internal/chunking"
)

var classifyCmd = &cobra.Command{
	Use:   "classify FILE",
	Short: "Classify a document and show the structural signals",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := readInput(args[0])
		if err != nil {
			return err
		}

		out := struct {
			Category string           `json:"category"`
			Signals  chunking.Signals `json:"signals"`
		}{
			Category: string(chunking.Classify(text)),
			Signals:  chunking.Analyze(text),
		}
		return printJSON(out)
	},
}

func init() {
	rootCmd.AddCommand(classifyCmd)
}
