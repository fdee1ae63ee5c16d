package cli

import (
	"github.com/spf13/cobra"

	"github.com/Makepad-fr/safety360/internal/tui"
)

func newTUICommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive checklist",
		Args:  positional(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, closeFn, err := opts.openTracker(true)
			if err != nil {
				return err
			}
			defer closeFn()

			return tui.Run(t, tui.Options{
				SnoozeDays: opts.cfg.Checklist.SnoozeDays,
				ReportDir:  opts.cfg.Report.OutDir,
			})
		},
	}
}
