package main

import (
	"context"
	"log"

	"github.com/hypolab/workspace/internal/workspace/app"
)

func main() {
	cfg, err := app.LoadConfig(".env")
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	application, err := app.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
