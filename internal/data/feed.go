package data

import (
	"context"
	"fmt"
	"time"

	"github.com/hcmlabs/blogpipe/internal/biz/domain"
	"github.com/hcmlabs/blogpipe/internal/biz/repo"
	"github.com/mmcdole/gofeed"
)

// feedRepo implements the Feed repository over an RSS feed
type feedRepo struct {
	feedURL string
	parser  *gofeed.Parser
}

// NewFeedRepo creates a new Feed repository
func NewFeedRepo(feedURL string) repo.FeedRepo {
	return &feedRepo{
		feedURL: feedURL,
		parser:  gofeed.NewParser(),
	}
}

// FetchNew returns feed items published after since
func (r *feedRepo) FetchNew(ctx context.Context, since time.Time) ([]domain.FeedItem, error) {
	feed, err := r.parser.ParseURLWithContext(r.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	var items []domain.FeedItem
	for _, entry := range feed.Items {
		published := time.Time{}
		if entry.PublishedParsed != nil {
			published = *entry.PublishedParsed
		}
		if !published.After(since) {
			continue
		}
		items = append(items, domain.FeedItem{
			Title:       entry.Title,
			Link:        entry.Link,
			Description: entry.Description,
			Published:   published,
		})
	}

	fmt.Printf("[Feed] %d new posts since %s\n", len(items), since.Format(time.RFC3339))
	return items, nil
}
