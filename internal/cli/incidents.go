package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/safety360/internal/checklist"
	"github.com/Makepad-fr/safety360/internal/model"
	"github.com/Makepad-fr/safety360/internal/ui"
)

func newIncidentCommand(opts *RootOptions) *cobra.Command {
	var in checklist.NewIncident
	cmd := &cobra.Command{
		Use:     "incident",
		Short:   "Record an incident",
		Example: `  safety360 incident --category Fire --severity high --location Kitchen --description "Pan fire, extinguished"`,
		Args:    positional(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Labels are stored title-cased, as the seed data has them.
			if c, ok := model.ParseCategory(in.Category); ok {
				in.Category = c.Label()
			}
			in.Severity = strings.ToLower(strings.TrimSpace(in.Severity))

			t, closeFn, err := opts.openTracker(false)
			if err != nil {
				return err
			}
			defer closeFn()

			inc, err := t.AddIncident(in)
			if err != nil {
				return err
			}
			ui.Info("id " + inc.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Category, "category", model.Health.Label(), "health or fire")
	cmd.Flags().StringVar(&in.Severity, "severity", model.SeverityMedium, "low, medium or high")
	cmd.Flags().StringVar(&in.Location, "location", "", "where it happened")
	cmd.Flags().StringVar(&in.Description, "description", "", "what happened")
	return cmd
}

func newQuickLogCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "quicklog <description...>",
		Short: "Log a medium-severity health incident from a description",
		Args:  positional(cobra.MinimumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, closeFn, err := opts.openTracker(false)
			if err != nil {
				return err
			}
			defer closeFn()

			_, logged, err := t.QuickLog(strings.Join(args, " "))
			if err != nil {
				return err
			}
			if !logged {
				return usagef("quicklog: empty description")
			}
			return nil
		},
	}
}
