package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/event-circulars/internal/llm"
)

var promptCmd = &cobra.Command{
	Use:   "prompt [text]",
	Short: "Print the exact prompt sent to the model (no model call)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var text string
		if len(args) == 1 {
			text = args[0]
		} else {
			b, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			text = string(b)
		}
		_, err := fmt.Fprint(cmd.OutOrStdout(), llm.BuildPrompt(text))
		return err
	},
}

func init() {
	rootCmd.AddCommand(promptCmd)
}
