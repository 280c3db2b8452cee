package main

import (
	"encoding/json"
	"fmt"

	"github.com/collecty/richtext/internal/cli"
	"github.com/collecty/richtext/internal/presentation/tui"
	"github.com/collecty/richtext/pkg/domain"
	"github.com/spf13/cobra"
)

func newValidateCmd(a *app) *cobra.Command {
	var (
		id     string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a document for problems",
		Long: `Decodes a document and reports malformed nodes, structural violations and
anything a render would flag. Exits non-zero when a problem is found.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := a.readInput(cmd, args, id)
			if err != nil {
				return err
			}

			issues, err := cli.NewRenderer(a.cfg.Render, a.logger, domain.RenderHooks{}).ValidateJSON(cmd.Context(), body)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				if issues == nil {
					issues = []domain.Issue{}
				}
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(issues); err != nil {
					return err
				}
			} else if len(issues) == 0 {
				fmt.Fprintln(out, "Document is valid! ✅")
			} else {
				for _, is := range issues {
					fmt.Fprintln(out, tui.Sanitize(is.String()))
				}
			}

			if len(issues) > 0 {
				return fmt.Errorf("validation failed: %d issue(s) found", len(issues))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "Validate the stored content record with this ID")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print issues as JSON")
	return cmd
}
