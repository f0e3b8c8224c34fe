package repo

import (
	"context"

	"github.com/hcmlabs/blogpipe/internal/biz/domain"
)

// WriterRepo generates blog content through an LLM
type WriterRepo interface {
	// GenerateTopics generates blog topic ideas
	GenerateTopics(ctx context.Context, numTopics int) ([]domain.Topic, error)

	// CreateBrief creates a content brief for a topic
	CreateBrief(ctx context.Context, topic string) (*domain.Brief, error)

	// WriteDraft writes a first draft from a brief
	WriteDraft(ctx context.Context, brief *domain.Brief) (string, error)

	// EditDraft runs an editing pass over a draft
	EditDraft(ctx context.Context, draft string) (string, error)

	// GenerateTeaser writes a social teaser for a published post
	GenerateTeaser(ctx context.Context, item domain.FeedItem) (string, error)
}
