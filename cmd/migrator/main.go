package main

import (
	"context"
	"embed"
	"flag"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/maze-server/internal/config"
	"github.com/vancomm/maze-server/internal/database"
)

//go:embed migrations/*.sql
var migrations embed.FS

var log = logrus.New()

func main() {
	var configPath string
	flag.StringVar(&configPath, "c", "/run/config.json", "config file path")
	flag.Parse()

	if err := config.LoadEnv(); err != nil && !os.IsNotExist(err) {
		log.Warn("unable to load env file: ", err)
	}

	cfg := config.Default()
	if err := config.Read(configPath, cfg); err != nil {
		log.Fatalf("unable to read config %s: %s", configPath, err.Error())
	}
	if cfg.Development() {
		log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	pool, migrator, err := database.ConnectAndMigrate(ctx, cfg.Postgres, migrations, "migrations")
	if err != nil {
		log.Fatal("failed to migrate database: ", err)
	}
	defer pool.Close()
	defer migrator.Close()

	version, dirty, err := migrator.Version()
	if err != nil {
		log.Error("failed to check migration version: ", err)
		return
	}
	log.WithFields(logrus.Fields{
		"version": version,
		"dirty":   dirty,
	}).Info("migration successful")
}
