package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/cubebluff/internal/room"
	"github.com/lox/cubebluff/internal/server"
)

var CLI struct {
	Config   string `short:"c" long:"config" default:"cubebluff.hcl" help:"Path to HCL configuration file"`
	Addr     string `short:"a" long:"addr" help:"Server address to bind to (overrides config)"`
	LogLevel string `short:"l" long:"log-level" help:"Log level (overrides config)"`
	Seed     int64  `short:"s" long:"seed" help:"Dice seed (0 picks one from the clock)"`
}

func main() {
	ctx := kong.Parse(&CLI)

	cfg, err := server.LoadConfig(CLI.Config)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		ctx.Exit(1)
	}

	// Apply command line overrides
	if CLI.Addr != "" {
		host, port, ok := strings.Cut(CLI.Addr, ":")
		cfg.Server.Address = host
		if ok {
			p, err := strconv.Atoi(port)
			if err != nil {
				fmt.Printf("Invalid addr %q: %v\n", CLI.Addr, err)
				ctx.Exit(1)
			}
			cfg.Server.Port = p
		}
	}
	if CLI.LogLevel != "" {
		cfg.Server.LogLevel = CLI.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		ctx.Exit(1)
	}

	// Setup logging
	logger := log.New(os.Stderr)
	switch cfg.Server.LogLevel {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "info":
		logger.SetLevel(log.InfoLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}

	seed := CLI.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rooms := room.NewManager(quartz.NewReal(), logger, seed)
	srv := server.NewServer(cfg, rooms, logger)

	logger.Info("Starting Cube Bluff server", "addr", cfg.Addr())

	// Handle graceful shutdown
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(runCtx); err != nil {
		logger.Error("Server failed", "error", err)
		ctx.Exit(1)
	}
	logger.Info("Server stopped")
}
