package main

import (
	app "github.com/ekaterinavoj/validity-view/internal/application/trainingimport"
	"github.com/spf13/cobra"
)

type commitSummary struct {
	Counts app.Counts             `json:"counts"`
	Commit app.CommitImportOutput `json:"commit"`
}

func newCommitCmd(opts *rootOptions) *cobra.Command {
	var (
		thresholds thresholdFlags
		policy     string
		approveAll bool
		errorsPath string
	)

	cmd := &cobra.Command{
		Use:   "commit FILE",
		Short: "Classify a spreadsheet and write the accepted rows",
		Long: "Classify a spreadsheet and write valid, auto-matched and approved rows.\n" +
			"Suggestions are skipped unless --approve-all is set. Interrupting the command\n" +
			"stops the commit after the chunk in flight.",
		Args: cobra.ExactArgs(1),
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

			if approveAll {
				out, err = rt.review.Execute(cmd.Context(), app.ReviewImportInput{
					SessionID: out.SessionID,
					Action:    app.ReviewActionApproveAll,
				})
				if err != nil {
					return err
				}
			}

			if errorsPath != "" && out.Preview.Counts.Errors > 0 {
				if err := writeErrors(rt, out.SessionID, errorsPath); err != nil {
					return err
				}
			}

			result, err := rt.commit.Execute(cmd.Context(), app.CommitImportInput{
				SessionID:       out.SessionID,
				DuplicatePolicy: policy,
			})
			if err != nil {
				return err
			}

			return writeJSON(cmd.OutOrStdout(), commitSummary{Counts: out.Preview.Counts, Commit: result})
		},
	}

	thresholds.register(cmd)
	cmd.Flags().StringVar(&policy, "duplicates", "skip", "Duplicate policy: skip or overwrite")
	cmd.Flags().BoolVar(&approveAll, "approve-all", false, "Approve every suggestion before committing")
	cmd.Flags().StringVar(&errorsPath, "errors", "", "Write rejected rows to this xlsx path")
	return cmd
}
