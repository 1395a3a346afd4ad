package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/Rrens/tourism-api/internal/config"
	"github.com/Rrens/tourism-api/internal/logging"
	"github.com/Rrens/tourism-api/internal/repository/postgres"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	down := flag.Int("down", 0, "roll back this many migrations instead of applying")
	flag.Parse()

	// Load .env file if it exists
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	if _, err := logging.Setup(cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "failed to set up logging: %v\n", err)
		os.Exit(1)
	}

	log.Info().
		Str("host", cfg.Database.Host).
		Int("port", cfg.Database.Port).
		Str("source", cfg.Database.MigrationsURL).
		Msg("Connecting to database")

	if *down > 0 {
		if err := postgres.RollbackMigrations(cfg.Database.DSN(), cfg.Database.MigrationsURL, *down); err != nil {
			log.Fatal().Err(err).Msg("Rollback failed")
		}
		return
	}

	if err := postgres.RunMigrations(cfg.Database.DSN(), cfg.Database.MigrationsURL); err != nil {
		log.Fatal().Err(err).Msg("Migration failed")
	}
}
