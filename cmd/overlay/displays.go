package main

import (
	"fmt"
	"strconv"

	"github.com/go-vgo/robotgo"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/vedantwpatil/cursor-overlay/internal/display"
	"github.com/vedantwpatil/cursor-overlay/internal/visibility"
)

func newDisplaysCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "displays",
		Short: "List displays and whether the overlay is enabled on them",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := opts.app

			displays, err := app.registry.Displays()
			if err != nil {
				return fmt.Errorf("list displays: %w", err)
			}
			enabled := app.store.Enabled()

			x, y := robotgo.Location()
			pointer := display.Point{X: float64(x), Y: float64(y)}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"", "ID", "Name", "Bounds", "Visible", "Pointer"})
			for _, d := range display.Sorted(displays) {
				table.Append(displayRow(d, enabled, pointer))
			}
			table.Render()
			return nil
		},
	}
}

func displayRow(d display.Display, enabled display.Set, pointer display.Point) []string {
	mark := "❌"
	if enabled.Contains(d.ID) {
		mark = "✅"
	}
	here := ""
	if visibility.Inside(d.Bounds, pointer) {
		here = "*"
	}
	return []string{
		mark,
		strconv.FormatUint(uint64(d.ID), 10),
		d.Name,
		d.Bounds.String(),
		d.Visible.String(),
		here,
	}
}
