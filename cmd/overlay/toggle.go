package main

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/vedantwpatil/cursor-overlay/internal/display"
)

func newToggleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <display-id>",
		Short: "Enable or disable the overlay on a display",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app := opts.app

			n, err := strconv.ParseUint(args[0], 10, 32)
			if err != nil {
				return fmt.Errorf("invalid display id %q: %w", args[0], err)
			}
			id := display.ID(n)

			if displays, err := app.registry.Displays(); err == nil {
				if _, ok := display.Lookup(displays, id); !ok {
					log.Warn().Uint32("display", uint32(id)).Msg("display is not connected, toggling anyway")
				}
			}

			set, err := app.store.Toggle(id)
			if err != nil {
				return err
			}

			state := "disabled"
			if set.Contains(id) {
				state = "enabled"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "display %d %s, enabled displays: %s\n", id, state, set)
			return nil
		},
	}
}
