package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/collecty/richtext/internal/cli"
	"github.com/collecty/richtext/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app carries the settings resolved before any subcommand runs.
type app struct {
	v          *viper.Viper
	configFile string
	cfg        *config.Config
	logger     *slog.Logger
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}

	rootCmd := &cobra.Command{
		Use:   "richtext",
		Short: "Render rich-text editor documents to HTML",
		Long: `richtext turns the JSON documents produced by the content editor into
escaped HTML fragments, checks them for problems and serves them over HTTP or MCP.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.v, a.configFile)
			if err != nil {
				return err
			}
			a.cfg = cfg
			a.logger = cli.NewLogger(cfg.Log)
			return nil
		},
	}

	// Persistent flags (available to all commands)
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "Config file (YAML or JSON)")
	pf.String("log-level", "info", "Log level: debug, info, warn, error or off")
	pf.String("log-format", "text", "Log format: text or json")
	pf.String("store", config.BackendMemory, "Content store backend: memory, file or redis")
	pf.String("dir", ".richtext/content", "Directory of the file store")
	pf.String("redis-addr", "localhost:6379", "Address of the redis store")

	bindings := map[string]string{
		"log.level":        "log-level",
		"log.format":       "log-format",
		"store.backend":    "store",
		"store.dir":        "dir",
		"store.redis.addr": "redis-addr",
	}
	for key, flag := range bindings {
		_ = a.v.BindPFlag(key, pf.Lookup(flag))
	}

	rootCmd.AddCommand(
		newRenderCmd(a),
		newPreviewCmd(a),
		newValidateCmd(a),
		newServeCmd(a),
		newMCPCmd(a),
		newContentCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// readInput returns the document named by id (from the store) or by the
// first argument (a file, or stdin when absent).
func (a *app) readInput(cmd *cobra.Command, args []string, id string) ([]byte, error) {
	if id == "" {
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		return cli.ReadDocument(path, cmd.InOrStdin())
	}

	store, closeStore, err := cli.NewStore(a.cfg.Store, a.logger)
	if err != nil {
		return nil, err
	}
	defer closeStore()
	return cli.LoadDocument(cmd.Context(), store, id)
}
