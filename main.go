package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"gambler/arcade/cmd"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

func main() {
	// A .env file is optional; real environment variables take precedence
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warnf("Failed to load .env file: %v", err)
	}

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			if err := cmd.Migrate(os.Args[2:]); err != nil {
				log.Fatalf("Migration error: %v", err)
			}
			return
		case "update-balance":
			if err := cmd.UpdateBalance(context.Background(), os.Args[2:]); err != nil {
				log.Fatalf("Balance adjustment error: %v", err)
			}
			return
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	if err := cmd.Run(ctx); err != nil {
		log.Fatalf("Application error: %v", err)
	}
}
