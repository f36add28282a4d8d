package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/urfave/cli/v3"

	"github.com/GuranshBedi/Backendd/internal/config"
	"github.com/GuranshBedi/Backendd/internal/logging"
	"github.com/GuranshBedi/Backendd/internal/repository/postgres"
)

func main() {
	defaults := config.Load()
	logger := logging.Init(logging.Config{Level: defaults.Log.Level, Format: "text"})

	args := os.Args
	if len(args) == 1 {
		args = append(args, "--help")
	}

	root := &cli.Command{
		Name:  "migrate_run",
		Usage: "Apply or inspect the embedded database migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "postgres connection string",
				Value:   defaults.Database.URL,
				Sources: cli.EnvVars("DATABASE_URL", "DB_URL"),
			},
		},
		Commands: []*cli.Command{
			migrationCommand("up", "Apply every pending migration", postgres.Migrate),
			migrationCommand("down", "Roll back the most recent migration", postgres.MigrateDown),
			migrationCommand("status", "Print the applied state of each migration", postgres.MigrationStatus),
		},
	}

	if err := root.Run(context.Background(), args); err != nil {
		logger.Error("migration command failed", "error", err)
		os.Exit(1)
	}
}

func migrationCommand(name, usage string, apply func(context.Context, *sql.DB) error) *cli.Command {
	return &cli.Command{
		Name:  name,
		Usage: usage,
		Action: func(ctx context.Context, c *cli.Command) error {
			db, err := sql.Open("pgx", c.String("database-url"))
			if err != nil {
				return fmt.Errorf("open database: %w", err)
			}
			defer db.Close()

			if err := db.PingContext(ctx); err != nil {
				return fmt.Errorf("connect: %w", err)
			}
			if err := apply(ctx, db); err != nil {
				return err
			}
			fmt.Printf("migrate %s: done\n", name)
			return nil
		},
	}
}
