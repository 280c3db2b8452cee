package main

import (
	"errors"
	"log"
	"net/http"
	"os"

	"github.com/collecty/richtext/internal/cli"
	"github.com/collecty/richtext/pkg/adapters/mcp"
	"github.com/collecty/richtext/pkg/domain"
	"github.com/spf13/cobra"
)

func newMCPCmd(a *app) *cobra.Command {
	var sse bool

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the Model Context Protocol (MCP) server",
		Long: `Exposes the renderer to AI agents as MCP tools (render_document,
validate_document and, with a store, get_content_html and list_content).

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse (--sse): Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := a.logger

			store, closeStore, err := cli.NewStore(a.cfg.Store, logger)
			if err != nil {
				return err
			}
			defer closeStore()

			renderer := cli.NewRenderer(a.cfg.Render, logger, domain.RenderHooks{})
			srv := mcp.NewServer(renderer, mcp.WithStore(store), mcp.WithLogger(logger))

			if !sse {
				// Ensure logs don't corrupt JSON-RPC on Stdout
				log.SetOutput(os.Stderr)
				logger.Info("Starting richtext MCP server (stdio)")
				return srv.ServeStdio()
			}

			ctx := cli.NewSignalContext(cmd.Context())
			defer ctx.Cancel()

			logger.Info("Starting richtext MCP server (SSE)", "port", a.cfg.MCP.Port)
			if err := srv.ServeSSE(ctx, a.cfg.MCP.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("MCP server stopped gracefully")
			return nil
		},
	}

	cmd.Flags().BoolVar(&sse, "sse", false, "Serve over SSE instead of stdio")
	cmd.Flags().Int("port", 8081, "Port to listen on (only for SSE)")
	_ = a.v.BindPFlag("mcp.port", cmd.Flags().Lookup("port"))
	return cmd
}
