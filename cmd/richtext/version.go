package main

import (
	"fmt"
	"strings"

	"github.com/collecty/richtext"
	"github.com/collecty/richtext/internal/presentation/tui"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number of richtext",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			version := strings.TrimSpace(richtext.Version)
			if short {
				fmt.Fprintf(cmd.OutOrStdout(), "richtext version %s\n", version)
				return
			}
			tui.PrintBanner(cmd.OutOrStdout(), version)
		},
	}

	cmd.Flags().BoolVar(&short, "short", false, "Print only the version line")
	return cmd
}
