package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/rodpenna/internal/app"
	"github.com/shrimpsizemoose/rodpenna/internal/export"
)

func main() {
	var configPath = flag.String("config", "config.toml", "Path to config file")
	flag.Parse()

	config, err := app.LoadConfig(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to read config: %v", err)
	}

	gradeStore, err := app.NewStore(config.Database.DSN, config.Database.MigrationsDir)
	if err != nil {
		logger.Error.Fatalf("Failed to init store: %v", err)
	}
	defer gradeStore.Close()

	scheduler, err := export.NewScheduler(gradeStore, config.Export.Dir, config.Export.EveryHours)
	if err != nil {
		logger.Error.Fatalf("Failed to create export scheduler: %v", err)
	}

	scheduler.Start()
	logger.Info.Printf("Invite export scheduler started, writing to %s", config.Export.Dir)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	scheduler.Stop()
	logger.Info.Println("Export scheduler stopped")
}
