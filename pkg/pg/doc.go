// Package pg bootstraps PostgreSQL access with pgx/v5.
//
// Connect opens a *pgxpool.Pool from Config (populated from PG_* environment
// variables) and retries while the database comes up. Migrate applies goose
// migrations from an fs.FS, so schemas can be embedded next to the code that
// queries them. Healthcheck adapts the pool to httpserver health checks.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, oclapi.Migrations, oclapi.MigrationsDir, cfg, log); err != nil {
//		return err
//	}
package pg
