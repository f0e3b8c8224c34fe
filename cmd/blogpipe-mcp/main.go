package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hcmlabs/blogpipe/mcpserver"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	apiURL := os.Getenv("BLOGPIPE_API_URL")
	if apiURL == "" {
		apiURL = "http://127.0.0.1:9742"
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	srv := mcpserver.NewServer(apiURL)
	if err := srv.Run(ctx); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
}
