package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Black-And-White-Club/padel-ladder/app"
	"github.com/Black-And-White-Club/padel-ladder/config"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	runErr := application.Run(ctx)
	if err := application.Close(); err != nil {
		application.Logger.Error("Shutdown finished with errors", "error", err)
	}
	if runErr != nil {
		application.Logger.Error("Application stopped with error", "error", runErr)
		os.Exit(1)
	}
	application.Logger.Info("Application shut down gracefully")
}
