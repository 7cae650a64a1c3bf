// Package db opens pgx connection pools for the platform's PostgreSQL
// storage and wires goose migrations, health probes, and shutdown
// hooks around them.
//
// # Connecting
//
//	var cfg db.Config
//	if err := config.Bind(&cfg); err != nil {
//		return err
//	}
//	pool, err := db.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
// Connect retries with a growing backoff, so the daemon survives a
// database that is still starting.
//
// # Migrations
//
// Migrations are plain goose SQL files embedded into the binary:
//
//	//go:embed migrations/*.sql
//	var migrations embed.FS
//
//	if err := db.Migrate(ctx, pool, migrations, cfg.MigrationsTable, log); err != nil {
//		return err
//	}
//
// # Transactions
//
//	err := db.WithTx(ctx, pool, func(tx pgx.Tx) error {
//		if _, err := tx.Exec(ctx, deleteSessions, userID); err != nil {
//			return err
//		}
//		_, err := tx.Exec(ctx, deleteTokens, userID)
//		return err
//	})
package db
