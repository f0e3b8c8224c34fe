package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hcmlabs/blogpipe/internal/biz/domain"
	"github.com/hcmlabs/blogpipe/internal/biz/repo"
)

// PipelineUsecase runs the content pipeline:
// topics -> brief -> draft -> edit -> draft file for review
type PipelineUsecase struct {
	writer    repo.WriterRepo
	draftsDir string
}

// NewPipelineUsecase creates a new pipeline usecase
func NewPipelineUsecase(writer repo.WriterRepo, draftsDir string) *PipelineUsecase {
	return &PipelineUsecase{writer: writer, draftsDir: draftsDir}
}

// GenerateTopics generates a batch of topic ideas as a dated report
func (uc *PipelineUsecase) GenerateTopics(ctx context.Context, numTopics int) (*domain.TopicReport, error) {
	if numTopics <= 0 {
		numTopics = 5
	}

	topics, err := uc.writer.GenerateTopics(ctx, numTopics)
	if err != nil {
		return nil, err
	}

	fmt.Printf("[Pipeline] Generated %d topics\n", len(topics))
	return &domain.TopicReport{
		ID:          uuid.New().String(),
		GeneratedAt: time.Now(),
		Topics:      topics,
	}, nil
}

// ComposeDraft runs the full writing chain for a topic
func (uc *PipelineUsecase) ComposeDraft(ctx context.Context, topic string) (string, error) {
	fmt.Printf("[Pipeline] Composing draft for: %s\n", topic)

	brief, err := uc.writer.CreateBrief(ctx, topic)
	if err != nil {
		return "", err
	}

	draft, err := uc.writer.WriteDraft(ctx, brief)
	if err != nil {
		return "", err
	}

	edited, err := uc.writer.EditDraft(ctx, draft)
	if err != nil {
		return "", err
	}

	return edited, nil
}

// SaveDraft writes a composed draft into the drafts folder. The file name
// carries a "draft" suffix so the watcher picks it up for review.
func (uc *PipelineUsecase) SaveDraft(ctx context.Context, topic, content string) (string, error) {
	if err := os.MkdirAll(uc.draftsDir, 0755); err != nil {
		return "", fmt.Errorf("create drafts dir: %w", err)
	}

	name := fmt.Sprintf("%s-%s-draft.md", time.Now().Format("2006-01-02"), slugify(topic))
	path := filepath.Join(uc.draftsDir, name)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("write draft: %w", err)
	}

	fmt.Printf("[Pipeline] Draft saved: %s\n", path)
	return path, nil
}

// Run composes and saves a draft for a topic in one step
func (uc *PipelineUsecase) Run(ctx context.Context, topic string) (string, error) {
	content, err := uc.ComposeDraft(ctx, topic)
	if err != nil {
		return "", err
	}
	return uc.SaveDraft(ctx, topic, content)
}

// slugify reduces a topic to a short, filesystem-safe slug
func slugify(topic string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(topic) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
	}
	slug := strings.Trim(b.String(), "-")
	if len(slug) > 60 {
		slug = strings.Trim(slug[:60], "-")
	}
	if slug == "" {
		slug = "untitled"
	}
	return slug
}
