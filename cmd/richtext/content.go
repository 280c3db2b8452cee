package main

import (
	"encoding/json"
	"fmt"

	"github.com/collecty/richtext/internal/cli"
	"github.com/collecty/richtext/pkg/domain"
	"github.com/collecty/richtext/pkg/ports"
	"github.com/spf13/cobra"
)

func newContentCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Manage stored content records",
		Long:  `Lists, reads, writes and deletes records in the configured content store.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List stored content IDs",
			Args:  cobra.NoArgs,
			RunE: a.withStore(func(cmd *cobra.Command, store ports.ContentStore, args []string) error {
				ids, err := store.List(cmd.Context())
				if err != nil {
					return err
				}
				for _, id := range ids {
					fmt.Fprintln(cmd.OutOrStdout(), id)
				}
				return nil
			}),
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Print a stored record as JSON",
			Args:  cobra.ExactArgs(1),
			RunE: a.withStore(func(cmd *cobra.Command, store ports.ContentStore, args []string) error {
				content, err := store.Load(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(content)
			}),
		},
		newContentPutCmd(a),
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a stored record",
			Args:  cobra.ExactArgs(1),
			RunE: a.withStore(func(cmd *cobra.Command, store ports.ContentStore, args []string) error {
				return store.Delete(cmd.Context(), args[0])
			}),
		},
	)
	return cmd
}

func newContentPutCmd(a *app) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "put <id> [file]",
		Short: "Store a document under an ID",
		Long:  `Reads a document from a file or stdin and saves it, replacing any record with the same ID.`,
		Args:  cobra.RangeArgs(1, 2),
		RunE: a.withStore(func(cmd *cobra.Command, store ports.ContentStore, args []string) error {
			path := ""
			if len(args) > 1 {
				path = args[1]
			}
			body, err := cli.ReadDocument(path, cmd.InOrStdin())
			if err != nil {
				return err
			}
			return store.Save(cmd.Context(), &domain.Content{ID: args[0], Title: title, Body: body})
		}),
	}

	cmd.Flags().StringVar(&title, "title", "", "Title of the record")
	return cmd
}

type storeRunE func(cmd *cobra.Command, store ports.ContentStore, args []string) error

// withStore opens the configured store around fn.
func (a *app) withStore(fn storeRunE) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		store, closeStore, err := cli.NewStore(a.cfg.Store, a.logger)
		if err != nil {
			return err
		}
		defer closeStore()
		return fn(cmd, store, args)
	}
}
