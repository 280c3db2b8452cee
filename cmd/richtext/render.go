package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/collecty/richtext/internal/cli"
	"github.com/collecty/richtext/internal/presentation/tui"
	"github.com/collecty/richtext/pkg/domain"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"
	"github.com/spf13/cobra"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		id     string
		output string
		stats  bool
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a document to HTML",
		Long: `Renders a document read from a file, from stdin or from the content store (--id)
and writes the HTML fragment to stdout. Problems found along the way are printed
to stderr; they never stop the render.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := a.readInput(cmd, args, id)
			if err != nil {
				return err
			}

			var event domain.RenderEvent
			hooks := domain.RenderHooks{
				OnRender: func(_ context.Context, e *domain.RenderEvent) { event = *e },
			}
			res, err := cli.NewRenderer(a.cfg.Render, a.logger, hooks).RenderJSON(cmd.Context(), body)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create output: %w", err)
				}
				defer f.Close()
				out = f
			}
			if _, err := io.WriteString(out, res.HTML+"\n"); err != nil {
				return err
			}

			errOut := cmd.ErrOrStderr()
			for _, is := range res.Issues {
				fmt.Fprintf(errOut, "warning: %s\n", tui.Sanitize(is.String()))
			}
			if stats {
				printStats(errOut, len(body), &event)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Render the stored content record with this ID")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write HTML to a file instead of stdout")
	cmd.Flags().BoolVar(&stats, "stats", false, "Print render statistics to stderr")
	return cmd
}

func printStats(w io.Writer, inputBytes int, e *domain.RenderEvent) {
	cli.PrintSystemMessage(w, "%s nodes (%s shape) in %s",
		humanize.Comma(int64(e.Nodes)), e.Shape, e.Duration)
	cli.PrintSystemMessage(w, "%s in, %s out, %s",
		humanize.Bytes(uint64(inputBytes)), humanize.Bytes(uint64(e.Bytes)),
		english.Plural(e.Issues, "issue", "issues"))
}
