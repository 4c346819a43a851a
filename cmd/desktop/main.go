package main

import (
	"os"

	"github.com/charmbracelet/log"

	"github.com/tomz197/bullseye/internal/config"
	"github.com/tomz197/bullseye/internal/desktop"
	"github.com/tomz197/bullseye/internal/game"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatal("load .env", "err", err)
	}
	logger := config.NewLogger(os.Stderr, "desktop")

	cfg, err := game.ConfigFromEnv()
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}

	if err := desktop.Run(cfg, logger); err != nil {
		logger.Fatal("game error", "err", err)
	}
}
