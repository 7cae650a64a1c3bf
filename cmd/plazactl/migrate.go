package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/plazakit/plaza"
	"github.com/plazakit/plaza/pkg/config"
	"github.com/plazakit/plaza/pkg/db"
	"github.com/plazakit/plaza/pkg/logger"
)

var migrationsDir string

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database administration",
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	Long: `Connects with the DATABASE_* environment settings and applies pending
goose migrations. The embedded schema ships with the binary; --dir
overrides it with migration files from a directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var dbCfg db.Config
		if err := config.Bind(&dbCfg); err != nil {
			return fmt.Errorf("parse environment: %w", err)
		}

		ctx := cmd.Context()
		out.Step("connecting to database")
		pool, err := db.Connect(ctx, dbCfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		migrations := plaza.Migrations()
		if migrationsDir != "" {
			migrations = os.DirFS(migrationsDir)
		}

		out.Step("applying migrations")
		if err := db.Migrate(ctx, pool, migrations, dbCfg.MigrationsTable, logger.NewNope()); err != nil {
			return err
		}
		out.Success("database schema is up to date")
		return nil
	},
}

func init() {
	dbMigrateCmd.Flags().StringVar(&migrationsDir, "dir", "", "apply migrations from a directory instead of the embedded schema")
	dbCmd.AddCommand(dbMigrateCmd)
	rootCmd.AddCommand(dbCmd)
}
