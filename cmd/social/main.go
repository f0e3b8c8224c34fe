package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/hcmlabs/blogpipe/internal/biz/usecase"
	"github.com/hcmlabs/blogpipe/internal/conf"
	"github.com/hcmlabs/blogpipe/internal/data"
	"github.com/hcmlabs/blogpipe/internal/infra/buffer"
	"github.com/hcmlabs/blogpipe/internal/infra/openai"
	"github.com/joho/godotenv"
)

// One-shot social teaser runner. Checks the blog RSS feed for posts
// published inside the lookback window and queues teasers on Buffer.
func main() {
	sinceHours := flag.Int("since", 24, "lookback window in hours")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := conf.LoadFromEnv()
	if cfg.Social.FeedURL == "" {
		log.Fatalf("BLOG_RSS_FEED is required")
	}
	if cfg.Social.BufferToken == "" {
		log.Fatalf("BUFFER_ACCESS_TOKEN is required")
	}
	if cfg.Social.LinkedInProfile == "" && cfg.Social.TwitterProfile == "" {
		log.Fatalf("At least one Buffer profile id is required")
	}

	var teaserClient *openai.Client
	if cfg.Social.TeaserAPIKey != "" {
		teaserClient = openai.NewClient(cfg.Social.TeaserAPIKey, cfg.Social.TeaserBaseURL, cfg.Social.TeaserModel)
	}
	writerRepo := data.NewWriterRepo(teaserClient, teaserClient, cfg.Prompts)
	socialRepo := data.NewSocialRepo(buffer.NewClient(cfg.Social.BufferToken))
	feedRepo := data.NewFeedRepo(cfg.Social.FeedURL)

	teaserUC := usecase.NewTeaserUsecase(usecase.TeaserConfig{
		LinkedInProfile: cfg.Social.LinkedInProfile,
		TwitterProfile:  cfg.Social.TwitterProfile,
	}, writerRepo, socialRepo, feedRepo)

	since := time.Now().Add(-time.Duration(*sinceHours) * time.Hour)
	fmt.Printf("[Social] Checking feed for posts since %s\n", since.Format(time.RFC3339))

	handled, err := teaserUC.Run(context.Background(), since)
	if err != nil {
		log.Fatalf("Teaser run failed: %v", err)
	}
	fmt.Printf("[Social] Scheduled teasers for %d post(s)\n", handled)
}
