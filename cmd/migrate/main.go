package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/valeriaulyamaeva/finance-tracker/internal/config"
	"github.com/valeriaulyamaeva/finance-tracker/internal/database"
	"github.com/valeriaulyamaeva/finance-tracker/internal/log"
)

func main() {
	steps := flag.Int("steps", 1, "число миграций для отката командой down")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "использование: %s [-steps N] up|down|version\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg := config.Load()
	logger := log.New(log.Config{
		Level:     log.ParseLevel(cfg.LogLevel),
		Format:    cfg.LogFormat,
		Component: log.ComponentMigrate,
	})

	command := flag.Arg(0)
	if command == "" {
		command = "up"
	}

	dsn := cfg.DatabaseDSN()
	var err error
	switch command {
	case "up":
		err = database.RunMigrations(dsn)
	case "down":
		err = database.RollbackMigrations(dsn, *steps)
	case "version":
	default:
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		logger.Error("ошибка миграции", "command", command, log.FieldError, err)
		os.Exit(1)
	}

	version, dirty, err := database.MigrationVersion(dsn)
	if err != nil {
		logger.Error("ошибка чтения версии схемы", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("миграции выполнены", "command", command, "version", version, "dirty", dirty)
}
