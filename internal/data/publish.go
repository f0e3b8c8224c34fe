package data

import (
	"context"
	"fmt"

	"github.com/hcmlabs/blogpipe/internal/biz/domain"
	"github.com/hcmlabs/blogpipe/internal/biz/repo"
	"github.com/hcmlabs/blogpipe/internal/infra/medium"
)

// publishRepo implements the Publish repository over the Medium client
type publishRepo struct {
	client *medium.Client
}

// NewPublishRepo creates a new Publish repository
func NewPublishRepo(client *medium.Client) repo.PublishRepo {
	return &publishRepo{client: client}
}

// Publish publishes a post to Medium as a draft
func (r *publishRepo) Publish(ctx context.Context, post *domain.Post) (*domain.PublishResult, error) {
	tags := post.Tags
	if len(tags) == 0 {
		tags = []string{"HCM", "HR", "Thought Leadership"}
	}

	created, err := r.client.CreatePost(ctx, post.Title, post.Content, tags, "draft")
	if err != nil {
		return nil, fmt.Errorf("publish to medium: %w", err)
	}

	return &domain.PublishResult{
		ID:       created.ID,
		URL:      created.URL,
		Platform: "medium",
	}, nil
}
