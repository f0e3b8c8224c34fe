package usecase

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/hcmlabs/blogpipe/internal/biz/domain"
	"github.com/hcmlabs/blogpipe/internal/biz/repo"
)

// PublishUsecase publishes approved posts
type PublishUsecase struct {
	publish repo.PublishRepo
}

// NewPublishUsecase creates a new publish usecase
func NewPublishUsecase(publish repo.PublishRepo) *PublishUsecase {
	return &PublishUsecase{publish: publish}
}

// PublishFile publishes a markdown file, using its first heading as the title
func (uc *PublishUsecase) PublishFile(ctx context.Context, path string, tags []string) (*domain.PublishResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read post: %w", err)
	}
	return uc.PublishContent(ctx, string(content), tags)
}

// PublishContent publishes markdown content
func (uc *PublishUsecase) PublishContent(ctx context.Context, content string, tags []string) (*domain.PublishResult, error) {
	post := &domain.Post{
		Title:   extractTitle(content),
		Content: content,
		Tags:    tags,
	}

	result, err := uc.publish.Publish(ctx, post)
	if err != nil {
		return nil, err
	}

	fmt.Printf("[Publish] Post published: %s\n", result.URL)
	return result, nil
}

// extractTitle takes the first markdown heading, falling back to a default
func extractTitle(content string) string {
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "#"))
		}
	}
	return "HCM Blog Post"
}
