package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/eliotmayer/W1MJ-Fox2/pkg/config"
	"github.com/eliotmayer/W1MJ-Fox2/pkg/logging"
)

var (
	configPath = flag.String("config", "config.yaml", "Configuration file path")
	version    = flag.Bool("version", false, "Show version information")
)

const (
	Version = "2.0.0-dev"
	Build   = "development"
)

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("foxd version %s (%s)\n", Version, Build)
		os.Exit(0)
	}

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize logging system
	if err := logging.InitGlobalLogger(cfg); err != nil {
		log.Fatalf("Failed to initialize logging: %v", err)
	}
	defer logging.CloseGlobalLogger()

	logging.Infof("main", "foxd version %s starting...", Version)
	logging.Infof("main", "Station: %s", cfg.Station.Callsign)
	logging.Infof("main", "Schedule: %s to %s, %ds slots",
		cfg.Schedule.StartTime, cfg.Schedule.StopTime, cfg.Schedule.MessageIntervalS)

	daemon, err := NewFoxDaemon(cfg)
	if err != nil {
		logging.Errorf("main", "Failed to create daemon: %v", err)
		os.Exit(1)
	}
	defer daemon.Close()

	// Set up signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logging.Infof("main", "Received %v, shutting down...", sig)
		cancel()
	}()

	// The beacon runs in the main goroutine; faults are fatal by
	// design, recovery is a power cycle
	if err := daemon.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Errorf("main", "Beacon fault: %v", err)
		os.Exit(1)
	}

	logging.Info("main", "foxd stopped")
}
