package repo

import (
	"context"
	"time"

	"github.com/hcmlabs/blogpipe/internal/biz/domain"
)

// PublishRepo publishes posts to an external platform
type PublishRepo interface {
	// Publish publishes a post and returns where it landed
	Publish(ctx context.Context, post *domain.Post) (*domain.PublishResult, error)
}

// SocialRepo schedules social media updates
type SocialRepo interface {
	// Schedule queues a text update on a profile at the given time
	Schedule(ctx context.Context, profileID, text string, at time.Time) error
}

// FeedRepo reads the blog's published posts
type FeedRepo interface {
	// FetchNew returns feed items published after since
	FetchNew(ctx context.Context, since time.Time) ([]domain.FeedItem, error)
}

// StorageRepo uploads generated files to remote storage
type StorageRepo interface {
	// Upload stores content at the remote path, creating parent
	// directories as needed
	Upload(ctx context.Context, remotePath string, content []byte) error
}
