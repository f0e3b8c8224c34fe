package data

import (
	"context"
	"time"

	"github.com/hcmlabs/blogpipe/internal/biz/repo"
	"github.com/hcmlabs/blogpipe/internal/infra/buffer"
)

// socialRepo implements the Social repository over the Buffer client
type socialRepo struct {
	client *buffer.Client
}

// NewSocialRepo creates a new Social repository
func NewSocialRepo(client *buffer.Client) repo.SocialRepo {
	return &socialRepo{client: client}
}

// Schedule queues a text update on a profile at the given time
func (r *socialRepo) Schedule(ctx context.Context, profileID, text string, at time.Time) error {
	return r.client.ScheduleUpdate(ctx, profileID, text, at)
}
