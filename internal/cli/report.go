package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/safety360/internal/report"
	"github.com/Makepad-fr/safety360/internal/ui"
)

func newReportCommand(opts *RootOptions) *cobra.Command {
	var (
		outDir string
		stdout bool
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Export the plain-text compliance report",
		Args:  positional(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, closeFn, err := opts.openTracker(true)
			if err != nil {
				return err
			}
			defer closeFn()

			if stdout {
				fmt.Fprintln(cmd.OutOrStdout(), report.Build(t.State(), t.Now()))
				return nil
			}
			if outDir == "" {
				outDir = opts.cfg.Report.OutDir
			}
			path, err := report.Export(outDir, t.State(), t.Now())
			if err != nil {
				return err
			}
			ui.OK("report saved to " + path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "directory for the report file (default from config)")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "print the report instead of writing a file")
	return cmd
}
