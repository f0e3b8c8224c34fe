package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/hcmlabs/blogpipe/internal/biz/usecase"
	"github.com/hcmlabs/blogpipe/internal/conf"
	"github.com/hcmlabs/blogpipe/internal/data"
	"github.com/hcmlabs/blogpipe/internal/infra/openai"
	"github.com/joho/godotenv"
)

// One-shot content pipeline runner. Without a topic it prints topic
// ideas; with -topic it writes a full draft into the drafts folder.
func main() {
	topic := flag.String("topic", "", "topic to write a draft for")
	numTopics := flag.Int("n", 5, "number of topic ideas to generate")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := conf.LoadFromEnv()
	if cfg.Writer.APIKey == "" {
		log.Fatalf("OPENAI_API_KEY is required")
	}
	if cfg.Approval.DraftsDir == "" {
		cfg.Approval.DraftsDir = "./drafts"
	}

	client := openai.NewClient(cfg.Writer.APIKey, cfg.Writer.BaseURL, cfg.Writer.Model)
	writerRepo := data.NewWriterRepo(client, nil, cfg.Prompts)
	pipelineUC := usecase.NewPipelineUsecase(writerRepo, cfg.Approval.DraftsDir)

	ctx := context.Background()

	if *topic == "" {
		report, err := pipelineUC.GenerateTopics(ctx, *numTopics)
		if err != nil {
			log.Fatalf("Failed to generate topics: %v", err)
		}
		for _, t := range report.Topics {
			fmt.Println(t.Text)
		}
		return
	}

	fmt.Printf("[Pipeline] Writing draft for topic: %s\n", *topic)
	path, err := pipelineUC.Run(ctx, *topic)
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}
	fmt.Printf("[Pipeline] Draft saved to %s\n", path)
}
