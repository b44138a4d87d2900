package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/event-circulars/constants"
	"github.com/joseph-ayodele/event-circulars/internal/entity"
)

var (
	genText   string
	genFile   string
	genOut    string
	genJSON   bool
	genHeader string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate one circular from --text, --file or stdin",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("header-image") {
			cfg.Render.HeaderImagePath = genHeader
		}
		if err := cfg.ValidateLLM(); err != nil {
			return err
		}

		text, err := readInput(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		p, err := buildPipeline(ctx)
		if err != nil {
			return err
		}
		res, err := p.service.Generate(ctx, entity.CircularInput{Text: text})
		if err != nil {
			return err
		}
		defer p.service.Discard(res)

		if err := copyFile(res.Path, genOut); err != nil {
			return fmt.Errorf("write %s: %w", genOut, err)
		}
		logger.Info("circulars.generate.written", "req_id", res.RequestID, "out", genOut)

		if genJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(res.Circular)
		}
		fmt.Fprintln(cmd.OutOrStdout(), genOut)
		return nil
	},
}

func init() {
	generateCmd.Flags().StringVar(&genText, "text", "", "Event description text")
	generateCmd.Flags().StringVar(&genFile, "file", "", "Read event description from file")
	generateCmd.Flags().StringVarP(&genOut, "out", "o", constants.DownloadFilename, "Output .docx path")
	generateCmd.Flags().BoolVar(&genJSON, "json", false, "Print the extracted circular as JSON")
	generateCmd.Flags().StringVar(&genHeader, "header-image", "", "Header image path (overrides config)")
	generateCmd.MarkFlagsMutuallyExclusive("text", "file")
	rootCmd.AddCommand(generateCmd)
}

func readInput(cmd *cobra.Command) (string, error) {
	switch {
	case cmd.Flags().Changed("text"):
		return genText, nil
	case genFile != "":
		b, err := os.ReadFile(genFile)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", genFile, err)
		}
		return string(b), nil
	default:
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), nil
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}
