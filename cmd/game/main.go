package main

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/tomz197/bullseye/internal/config"
	"github.com/tomz197/bullseye/internal/game"
	"github.com/tomz197/bullseye/internal/loop"
	"github.com/tomz197/bullseye/internal/loop/client"
	"github.com/tomz197/bullseye/internal/tui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	// Stdout is the game surface, so logs only go to LOG_FILE.
	logOut, closeLog, err := config.OpenLogFile()
	if err != nil {
		return err
	}
	defer closeLog()
	logger := config.NewLogger(logOut, "game")

	cfg, err := game.ConfigFromEnv()
	if err != nil {
		return err
	}

	renderer := config.GetEnv("GAME_RENDERER", "ansi")
	logger.Info("starting", "renderer", renderer, "round_seconds", cfg.RoundSeconds)

	switch renderer {
	case "tcell":
		return tui.Run(cfg, logger)
	case "ansi":
	default:
		return fmt.Errorf("unknown GAME_RENDERER %q (want ansi or tcell)", renderer)
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	return loop.Run(reader, os.Stdout, client.ClientOptions{
		Username: os.Getenv("USER"),
		Game:     cfg,
		Logger:   logger,
	})
}
