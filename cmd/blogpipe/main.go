package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hcmlabs/blogpipe/internal/api"
	"github.com/hcmlabs/blogpipe/internal/biz/usecase"
	"github.com/hcmlabs/blogpipe/internal/conf"
	"github.com/hcmlabs/blogpipe/internal/data"
	"github.com/hcmlabs/blogpipe/internal/infra/lark"
	"github.com/hcmlabs/blogpipe/internal/server"
	"github.com/hcmlabs/blogpipe/internal/service"
	"github.com/hcmlabs/blogpipe/internal/watcher"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := conf.LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	// Initialize clients
	larkClient := lark.NewClient(cfg.Lark.AppID, cfg.Lark.AppSecret)

	// Initialize repository layer
	repos, err := data.NewRepositories(cfg, larkClient)
	if err != nil {
		log.Fatalf("Failed to create repositories: %v", err)
	}

	fmt.Printf("[Blogpipe] Tracking DB: %s\n", cfg.Tracking.DBPath)

	// Initialize usecase layer
	approvalUC := usecase.NewApprovalUsecase(cfg.ToApprovalConfig(), repos.Tracking, repos.Message, repos.Speech)
	pipelineUC := usecase.NewPipelineUsecase(repos.Writer, cfg.Approval.DraftsDir)
	publishUC := usecase.NewPublishUsecase(repos.Publish)

	// Initialize service layer
	approvalSvc := service.NewApprovalService(approvalUC)

	var scheduler *service.ReportScheduler
	if cfg.Nextcloud.URL != "" {
		scheduler = service.NewReportScheduler(pipelineUC, repos.Storage, repos.Reports, 5)
		fmt.Println("[Blogpipe] Topic report scheduler enabled")
	}

	// Initialize drafts watcher
	w, err := watcher.New(cfg.Approval.DraftsDir)
	if err != nil {
		log.Fatalf("Failed to create watcher: %v", err)
	}

	// Initialize HTTP API server for blogpipe-mcp
	apiServer := api.NewServer(approvalUC, pipelineUC, publishUC, cfg.API.Port)
	go func() {
		if err := apiServer.Start(); err != nil {
			fmt.Printf("[Blogpipe] API server error: %v\n", err)
		}
	}()
	fmt.Printf("[Blogpipe] HTTP API server started on port %d\n", cfg.API.Port)

	// Initialize server
	srv := server.NewBot(larkClient, w, approvalSvc, scheduler)

	// Verify the approval channel before going live
	go func() {
		if err := approvalUC.CheckChannel(context.Background()); err != nil {
			fmt.Printf("[Blogpipe] Warning: approval channel check failed: %v\n", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\nShutting down...")
		srv.Stop()
		apiServer.Stop()
		repos.Tracking.Close()
		os.Exit(0)
	}()

	fmt.Println("Starting blogpipe draft approval bot...")
	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
