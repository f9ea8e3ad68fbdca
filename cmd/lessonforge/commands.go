package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/heartmarshall/lessonforge-backend/internal/app"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), configFile)
		},
	}
}

func newMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL schema",
	}

	for _, sub := range []struct {
		name, short string
	}{
		{app.MigrateUp, "Apply all pending migrations"},
		{app.MigrateDown, "Roll back the latest migration"},
		{app.MigrateStatus, "Show applied and pending migrations"},
	} {
		name := sub.name
		migrateCmd.AddCommand(&cobra.Command{
			Use:   name,
			Short: sub.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.Migrate(cmd.Context(), configFile, name, cmd.OutOrStdout())
			},
		})
	}

	return migrateCmd
}

func newTokenCommand() *cobra.Command {
	var user string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for local testing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var userID uuid.UUID
			if user != "" {
				id, err := uuid.Parse(user)
				if err != nil {
					return fmt.Errorf("--user: %w", err)
				}
				userID = id
			}

			userID, token, err := app.IssueToken(configFile, userID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "user: %s\n", userID)
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&user, "user", "", "user id to embed (random when empty)")

	return cmd
}
