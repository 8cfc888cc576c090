package main

import (
	"fmt"
	"os"

	infrafile "github.com/ekaterinavoj/validity-view/internal/infrastructure/file"
	"github.com/spf13/cobra"
)

func newPreviewCmd(opts *rootOptions) *cobra.Command {
	var (
		thresholds thresholdFlags
		errorsPath string
		full       bool
	)

	cmd := &cobra.Command{
		Use:   "preview FILE",
		Short: "Classify a spreadsheet without writing anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer rt.Close()

			out, err := rt.previewFile(cmd.Context(), args[0], &thresholds)
			if err != nil {
				return err
			}

			if errorsPath != "" && out.Preview.Counts.Errors > 0 {
				if err := writeErrors(rt, out.SessionID, errorsPath); err != nil {
					return err
				}
			}

			if full {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			return writeJSON(cmd.OutOrStdout(), out.Preview.Counts)
		},
	}

	thresholds.register(cmd)
	cmd.Flags().StringVar(&errorsPath, "errors", "", "Write rejected rows to this xlsx path")
	cmd.Flags().BoolVar(&full, "full", false, "Print every classified row")
	return cmd
}

func writeErrors(rt *runtime, sessionID, path string) error {
	rows, err := rt.queries.RejectedRows(sessionID)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	return infrafile.WriteErrorWorkbook(f, rows)
}
