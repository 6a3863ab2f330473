package main

import (
	"flag"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/rodpenna/internal/app"
	"github.com/shrimpsizemoose/rodpenna/internal/bot"
	"github.com/shrimpsizemoose/rodpenna/internal/invite"
)

func main() {
	var configPath = flag.String("config", "bot_config.toml", "Path to config file")
	flag.Parse()

	config, err := bot.ReadConfig(*configPath)
	if err != nil {
		logger.Error.Fatalf("Failed to read config: %v", err)
	}

	gradeStore, err := app.NewStore(config.Database.DSN, config.Database.MigrationsDir)
	if err != nil {
		logger.Error.Fatalf("Failed to init store: %v", err)
	}
	defer gradeStore.Close()

	gate := invite.NewGatekeeper(gradeStore)

	b, err := bot.New(config, gradeStore, gate)
	if err != nil {
		logger.Error.Fatalf("Failed to create bot: %v", err)
	}

	logger.Info.Println("Starting invite admin bot")
	if err := b.Start(); err != nil {
		logger.Error.Fatalf("Bot stopped with error: %v", err)
	}
}
