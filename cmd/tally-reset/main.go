// tally-reset drops every table and reapplies the migrations, leaving an
// empty database with the seeded default user. Destructive; requires -yes.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"tally/internal/config"
	"tally/internal/log"
	"tally/internal/storage"
)

func main() {
	yes := flag.Bool("yes", false, "confirm the reset; all data is deleted")
	flag.Parse()

	logger := log.New(log.DefaultConfig())
	log.SetDefault(logger)

	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", log.FieldError, err)
		os.Exit(1)
	}

	if !*yes {
		fmt.Fprintf(os.Stderr, "This deletes everything in %s. Re-run with -yes to confirm.\n", cfg.SQLiteDBPath)
		os.Exit(2)
	}

	if err := storage.Reset(cfg.SQLiteDBPath); err != nil {
		logger.Error("Reset failed", log.FieldError, err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}

	logger.Info("Database reset complete", "path", cfg.SQLiteDBPath)
}
