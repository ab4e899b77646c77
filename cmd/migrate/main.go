// Command migrate applies or inspects the embedded database migrations.
//
//	migrate [up|down|status|version|redo|reset|up-to V|down-to V]
package main

import (
	"context"
	"flag"
	"os"

	"go.uber.org/zap"

	"github.com/iliyamo/lecture-hall-booking/internal/config"
	"github.com/iliyamo/lecture-hall-booking/internal/database"
	"github.com/iliyamo/lecture-hall-booking/internal/logging"
)

func main() {
	flag.Parse()
	command := "up"
	var args []string
	if flag.NArg() > 0 {
		command = flag.Arg(0)
		args = flag.Args()[1:]
	}

	cfg := config.Load()
	logger := logging.New(cfg.Env, cfg.LogLevel, "migrate")
	defer func() { _ = logger.Sync() }()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(context.Background(), db, logger, command, args...); err != nil {
		logger.Error("migration failed", zap.Error(err))
		_ = db.Close()
		os.Exit(1)
	}
}
