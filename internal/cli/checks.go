package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/safety360/internal/checklist"
	"github.com/Makepad-fr/safety360/internal/duedate"
	"github.com/Makepad-fr/safety360/internal/model"
	"github.com/Makepad-fr/safety360/internal/ui"
)

// positional wraps a cobra args validator so its errors count as usage errors.
func positional(v cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := v(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

func parseCategory(s string) (model.Category, error) {
	c, ok := model.ParseCategory(s)
	if !ok {
		return "", usagef("unknown category %q (want health or fire)", s)
	}
	return c, nil
}

func newListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "ls [category]",
		Aliases: []string{"list"},
		Short:   "List checks with their status",
		Args:    positional(cobra.MaximumNArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			cats := model.Categories
			if len(args) == 1 {
				c, err := parseCategory(args[0])
				if err != nil {
					return err
				}
				cats = []model.Category{c}
			}

			t, closeFn, err := opts.openTracker(true)
			if err != nil {
				return err
			}
			defer closeFn()

			s, today := t.State(), t.Today()
			var lines []string
			for i, c := range cats {
				if i > 0 {
					lines = append(lines, "")
				}
				lines = append(lines, categoryHeader(c, s.Items(c), today)...)
				lines = append(lines, "")
				lines = append(lines, checkLines(s.Items(c), today)...)
			}
			lines = append(lines, "")
			lines = append(lines, ui.C(ui.Current().Muted, "Tip: mark done with `safety360 done <category> <id>`"))
			ui.Panel(cmd.OutOrStdout(), lines)
			return nil
		},
	}
}

func newScheduleCommand(opts *RootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Show the next open checks across both lists",
		Args:  positional(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				limit = opts.cfg.Checklist.ScheduleSize
			}
			t, closeFn, err := opts.openTracker(true)
			if err != nil {
				return err
			}
			defer closeFn()

			rows := checklist.Upcoming(t.State(), t.Today(), limit)
			lines := []string{ui.C(ui.Current().Title, "Upcoming checks"), ""}
			ui.Panel(cmd.OutOrStdout(), append(lines, scheduleLines(rows)...))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "number of checks to show (default from config)")
	return cmd
}

func newStatsCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show compliance counters and recent incidents",
		Args:  positional(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, closeFn, err := opts.openTracker(true)
			if err != nil {
				return err
			}
			defer closeFn()

			s := t.State()
			lines := statsLines(checklist.Summarize(s, t.Today()))
			lines = append(lines, "", ui.C(ui.Current().Title, "Recent incidents"))
			lines = append(lines, incidentLines(checklist.RecentIncidents(s, 5))...)
			ui.Panel(cmd.OutOrStdout(), lines)
			return nil
		},
	}
}

func newDoneCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "done <category> <id>",
		Short: "Toggle a check between completed and outstanding",
		Args:  positional(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := parseCategory(args[0])
			if err != nil {
				return err
			}
			t, closeFn, err := opts.openTracker(false)
			if err != nil {
				return err
			}
			defer closeFn()

			changed, err := t.Toggle(c, args[1])
			if err != nil {
				return err
			}
			if !changed {
				return notFound(c, args[1])
			}
			return nil
		},
	}
}

func newSnoozeCommand(opts *RootOptions) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "snooze <category> <id>",
		Short: "Push a check's due date forward without completing it",
		Args:  positional(cobra.ExactArgs(2)),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := parseCategory(args[0])
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("days") {
				days = opts.cfg.Checklist.SnoozeDays
			}
			if days < 1 {
				return usagef("--days must be at least 1, got %d", days)
			}
			t, closeFn, err := opts.openTracker(false)
			if err != nil {
				return err
			}
			defer closeFn()

			_, changed, err := t.Snooze(c, args[1], days)
			if err != nil {
				return err
			}
			if !changed {
				return notFound(c, args[1])
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&days, "days", "d", 0, "days to add (default from config)")
	return cmd
}

func notFound(c model.Category, id string) error {
	fmt.Fprintln(ui.Stderr, ui.C(ui.Current().Muted, "Hint: run `safety360 ls "+string(c)+"` to see valid ids"))
	return usagef("no %s check with id %q", c, id)
}

func newAddCommand(opts *RootOptions) *cobra.Command {
	var in checklist.NewCheck
	cmd := &cobra.Command{
		Use:   "add <category>",
		Short: "Add a recurring check",
		Example: `  safety360 add fire --title "Hydrant pressure test" --location "Car park" --owner "Sam" --due 2024-03-01
  safety360 add health --title "Eyewash station" --location Lab --owner Kim --frequency Weekly`,
		Args: positional(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := parseCategory(args[0])
			if err != nil {
				return err
			}
			in.Category = c
			if due := strings.TrimSpace(in.Due); due != "" {
				d, ok := duedate.Parse(due, opts.clock().Location())
				if !ok {
					return usagef("--due %q: want a date like 2024-01-31", due)
				}
				in.Due = duedate.ISO(d)
			}

			t, closeFn, err := opts.openTracker(false)
			if err != nil {
				return err
			}
			defer closeFn()

			item, err := t.AddCheck(in)
			if err != nil {
				return err
			}
			ui.Info("id " + item.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Title, "title", "", "what to check (required)")
	cmd.Flags().StringVar(&in.Location, "location", "", "where the check happens (required)")
	cmd.Flags().StringVar(&in.Owner, "owner", "", "who is responsible (required)")
	cmd.Flags().StringVar(&in.Frequency, "frequency", "Monthly", "how often the check recurs")
	cmd.Flags().StringVar(&in.Due, "due", "", "next due date (YYYY-MM-DD)")
	return cmd
}
