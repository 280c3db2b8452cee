package main

import (
	"errors"
	"os"

	"github.com/collecty/richtext/internal/cli"
	"github.com/collecty/richtext/internal/presentation/tui"
	"github.com/collecty/richtext/pkg/domain"
	"github.com/spf13/cobra"
)

func newPreviewCmd(a *app) *cobra.Command {
	var (
		id    string
		watch bool
		plain bool
		width int
	)

	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Show how a document reads in the terminal",
		Long: `Renders a document and prints it as Markdown, styled for the terminal when
stdout is a TTY. With --watch the preview is redrawn each time the file changes.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			styled := !plain
			if f, ok := out.(*os.File); ok {
				styled = styled && tui.IsTerminal(f)
				if width == 0 {
					width = tui.Width(f)
				}
			} else {
				styled = false
			}

			renderer := cli.NewRenderer(a.cfg.Render, a.logger, domain.RenderHooks{})
			draw := func() error {
				body, err := a.readInput(cmd, args, id)
				if err != nil {
					return err
				}
				res, err := renderer.RenderJSON(cmd.Context(), body)
				if err != nil {
					return err
				}
				for _, is := range res.Issues {
					a.logger.Warn("Document issue", "issue", is.String())
				}
				return tui.Preview(out, res.HTML, styled, width)
			}

			if !watch {
				return draw()
			}
			if id != "" || len(args) == 0 || args[0] == "-" {
				return errors.New("--watch needs a file argument")
			}

			ctx := cli.NewSignalContext(cmd.Context())
			defer ctx.Cancel()
			cli.PrintSystemMessage(cmd.ErrOrStderr(), "Watching '%s' for changes.", args[0])
			return cli.WatchFile(ctx, args[0], a.logger, draw)
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Preview the stored content record with this ID")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "Redraw when the file changes")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print plain Markdown without terminal styling")
	cmd.Flags().IntVar(&width, "width", 0, "Wrap width (defaults to the terminal width)")
	return cmd
}
