package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/vedantwpatil/cursor-overlay/internal/cursor"
)

func newCursorCmd(opts *rootOptions) *cobra.Command {
	var (
		watch  time.Duration
		saveAs string
	)

	cmd := &cobra.Command{
		Use:   "cursor",
		Short: "Show the active cursor's size, kind, offset and digest",
		Long: `Show how the active system cursor is classified. The printed digest can be put
under cursor.digests in the config file to tell the hand cursors apart. With --save-as the
current cursor is stored as the reference image of a hand cursor (pointing-hand, open-hand or
closed-hand) at the path configured under cursor.images.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app := opts.app
			resolver, err := app.resolver()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if saveAs != "" {
				return saveReference(out, app, saveAs)
			}

			var last cursor.Descriptor
			first := true
			for {
				desc, err := app.query.Current()
				if err != nil {
					return fmt.Errorf("read cursor: %w", err)
				}
				if first || !desc.Same(last) {
					printCursor(out, resolver, desc)
					last, first = desc, false
				}
				if watch <= 0 {
					return nil
				}

				select {
				case <-cmd.Context().Done():
					return nil
				case <-time.After(watch):
				}
			}
		},
	}
	cmd.Flags().DurationVar(&watch, "watch", 0, "keep polling at this interval and print each new cursor")
	cmd.Flags().StringVar(&saveAs, "save-as", "", "store the active cursor as the reference image of this hand cursor")
	return cmd
}

func saveReference(out io.Writer, app *Application, name string) error {
	kind, ok := cursor.ParseKind(name)
	if !ok {
		return fmt.Errorf("unknown cursor kind %q", name)
	}
	path, ok := app.imagePath(kind)
	if !ok {
		return fmt.Errorf("no reference image path configured for %s", kind)
	}

	desc, err := app.query.Current()
	if err != nil {
		return fmt.Errorf("read cursor: %w", err)
	}
	if desc.Size != cursor.HandSize {
		return fmt.Errorf("active cursor is %s, hand cursors are %s", desc.Size, cursor.HandSize)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create cursor image directory: %w", err)
	}
	if err := cursor.SaveImage(path, desc); err != nil {
		return err
	}
	fmt.Fprintf(out, "saved %s reference to %s digest=%s\n", kind, path, desc.Digest())
	return nil
}

func printCursor(out io.Writer, resolver *cursor.Resolver, desc cursor.Descriptor) {
	kind, off := resolver.Lookup(desc)
	fmt.Fprintf(out, "serial=%d size=%s kind=%s offset=(%g,%g) digest=%s\n",
		desc.Serial, desc.Size, kind, off.DX, off.DY, desc.Digest())
}
