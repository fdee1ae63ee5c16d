package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/safety360/internal/presets"
	"github.com/Makepad-fr/safety360/internal/ui"
)

func newPresetsCommand(opts *RootOptions) *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "presets",
		Short: "Browse the equipment preset catalogue",
	}
	cmd.PersistentFlags().DurationVar(&timeout, "timeout", 20*time.Second, "request timeout")

	client := func() *presets.Client {
		return presets.NewClient(opts.cfg.Presets.BaseURL, presets.WithLogger(opts.log))
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "models",
		Short: "List preset model names",
		Args:  positional(cobra.NoArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			models, err := client().FetchModels(ctx)
			if err != nil {
				return fmt.Errorf("fetch models: %w", err)
			}
			c := &presets.Catalog{Models: models}
			for _, name := range c.ModelNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	})

	var sets []string
	show := &cobra.Command{
		Use:   "show <model>",
		Short: "Show a model's spec sheet with the selectable options",
		Args:  positional(cobra.ExactArgs(1)),
		RunE: func(cmd *cobra.Command, args []string) error {
			edits := make([][2]string, 0, len(sets))
			for _, s := range sets {
				field, value, ok := strings.Cut(s, "=")
				if !ok || strings.TrimSpace(field) == "" {
					return usagef("--set %q: want FIELD=VALUE", s)
				}
				edits = append(edits, [2]string{strings.TrimSpace(field), strings.TrimSpace(value)})
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			cat, err := client().LoadAll(ctx)
			if err != nil {
				return fmt.Errorf("load presets: %w", err)
			}

			sheet := presets.NewSheet(cat)
			if err := sheet.Select(args[0]); err != nil {
				if errors.Is(err, presets.ErrUnknownModel) {
					return usageError{err}
				}
				return err
			}
			for _, e := range edits {
				sheet.Set(e[0], e[1])
			}
			ui.Panel(cmd.OutOrStdout(), sheetLines(sheet))
			return nil
		},
	}
	show.Flags().StringArrayVar(&sets, "set", nil, "override a field (FIELD=VALUE, repeatable)")
	cmd.AddCommand(show)

	return cmd
}

func sheetLines(s *presets.Sheet) []string {
	t := ui.Current()
	lines := []string{ui.C(t.Title, "Spec sheet: "+s.Model()), ""}
	for _, f := range s.Fields() {
		mark := " "
		color := ""
		if f.Dirty {
			mark, color = "*", t.Pending
		}
		lines = append(lines, fmt.Sprintf("%s %-16s %s", mark, f.Label, ui.C(color, f.Value)))
		lines = append(lines, ui.C(t.Muted, "    "+ui.Truncate(strings.Join(f.Options, " | "), 70)))
	}
	if dirty := s.Dirty(); len(dirty) > 0 {
		lines = append(lines, "", ui.C(t.Pending, "edited: "+strings.Join(dirty, ", ")))
	}
	return lines
}
