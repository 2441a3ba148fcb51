package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/nvandessel/auralie/internal/pathutil"
	"github.com/nvandessel/auralie/internal/store"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stored simulations as JSONL",
		Long: `Write every stored simulation, one JSON document per line, to stdout
or --output. Use 'auralie import' to load the file into another backend.

Examples:
  auralie export --output week.jsonl
  AURALIE_STORAGE=sqlite auralie import week.jsonl`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			results, err := a.resultStore(cmd.Context())
			if err != nil {
				return err
			}
			defer results.Close()

			var w io.Writer = cmd.OutOrStdout()
			output, _ := cmd.Flags().GetString("output")
			if output != "" {
				if err := pathutil.ValidatePath(output, pathutil.AllowedDataDirs(a.home)); err != nil {
					return err
				}
				f, err := os.OpenFile(output, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0600)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", pathutil.RedactPath(output), err)
				}
				defer f.Close()
				w = f
			}

			n, err := store.ExportJSONL(cmd.Context(), results, w)
			if err != nil {
				return fmt.Errorf("export failed after %d simulation(s): %w", n, err)
			}
			if output != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d simulation(s) to %s\n", n, output)
			}
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
	return cmd
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.jsonl>",
		Short: "Import simulations from a JSONL export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := loadApp(cmd)
			if err != nil {
				return err
			}
			results, err := a.resultStore(cmd.Context())
			if err != nil {
				return err
			}
			defer results.Close()

			if err := pathutil.ValidatePath(args[0], pathutil.AllowedDataDirs(a.home)); err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", pathutil.RedactPath(args[0]), err)
			}
			defer f.Close()

			n, err := store.ImportJSONL(cmd.Context(), results, f)
			if err != nil {
				return fmt.Errorf("import failed after %d simulation(s): %w", n, err)
			}
			if a.jsonOut {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"imported": n})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d simulation(s)\n", n)
			return nil
		},
	}
}
