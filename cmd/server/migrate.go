package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/and161185/bookstore/internal/migrate"
)

func newMigrateCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	run := func(use, short string, fn func(cmd *cobra.Command, dsn string) error) *cobra.Command {
		return &cobra.Command{
			Use:   use,
			Short: short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := loadConfig(opts)
				if err != nil {
					return err
				}
				return fn(cmd, cfg.DatabaseURL)
			},
		}
	}

	cmd.AddCommand(
		run("up", "Apply all pending migrations", func(cmd *cobra.Command, dsn string) error {
			return migrate.Up(cmd.Context(), dsn)
		}),
		run("down", "Roll back the latest migration", func(cmd *cobra.Command, dsn string) error {
			return migrate.Down(cmd.Context(), dsn)
		}),
		run("status", "Show applied and pending migrations", func(cmd *cobra.Command, dsn string) error {
			return migrate.Status(cmd.Context(), dsn)
		}),
		run("version", "Print the current schema version", func(cmd *cobra.Command, dsn string) error {
			v, err := migrate.Version(cmd.Context(), dsn)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		}),
	)
	return cmd
}
