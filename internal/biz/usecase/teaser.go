package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hcmlabs/blogpipe/internal/biz/domain"
	"github.com/hcmlabs/blogpipe/internal/biz/repo"
)

// TeaserConfig contains the social workflow settings
type TeaserConfig struct {
	LinkedInProfile string
	TwitterProfile  string
}

// TeaserUsecase schedules social teasers for newly published posts
type TeaserUsecase struct {
	config TeaserConfig
	writer repo.WriterRepo
	social repo.SocialRepo
	feed   repo.FeedRepo
}

// NewTeaserUsecase creates a new teaser usecase
func NewTeaserUsecase(config TeaserConfig, writer repo.WriterRepo, social repo.SocialRepo, feed repo.FeedRepo) *TeaserUsecase {
	return &TeaserUsecase{
		config: config,
		writer: writer,
		social: social,
		feed:   feed,
	}
}

// Run fetches posts published after since and schedules teasers for them.
// Returns the number of posts handled.
func (uc *TeaserUsecase) Run(ctx context.Context, since time.Time) (int, error) {
	items, err := uc.feed.FetchNew(ctx, since)
	if err != nil {
		return 0, fmt.Errorf("fetch feed: %w", err)
	}

	handled := 0
	for _, item := range items {
		if err := uc.schedulePost(ctx, item); err != nil {
			fmt.Printf("[Teaser] Failed to schedule %q: %v\n", item.Title, err)
			continue
		}
		handled++
	}
	return handled, nil
}

// schedulePost generates a teaser and queues it on the configured profiles,
// staggered an hour apart
func (uc *TeaserUsecase) schedulePost(ctx context.Context, item domain.FeedItem) error {
	teaser, err := uc.writer.GenerateTeaser(ctx, item)
	if err != nil {
		fmt.Printf("[Teaser] AI teaser failed for %q, using fallback: %v\n", item.Title, err)
		teaser = ""
	}

	now := time.Now()
	scheduled := false

	if uc.config.TwitterProfile != "" {
		text := teaser
		if text == "" {
			text = twitterFallback(item)
		}
		if err := uc.social.Schedule(ctx, uc.config.TwitterProfile, text, now.Add(time.Hour)); err != nil {
			return fmt.Errorf("schedule twitter: %w", err)
		}
		scheduled = true
	}

	if uc.config.LinkedInProfile != "" {
		text := teaser
		if text == "" {
			text = linkedInFallback(item)
		}
		if err := uc.social.Schedule(ctx, uc.config.LinkedInProfile, text, now.Add(2*time.Hour)); err != nil {
			return fmt.Errorf("schedule linkedin: %w", err)
		}
		scheduled = true
	}

	if !scheduled {
		return fmt.Errorf("no social profiles configured")
	}

	fmt.Printf("[Teaser] Scheduled teasers for %q\n", item.Title)
	return nil
}

// twitterFallback builds a plain snippet within the tweet length limit
func twitterFallback(item domain.FeedItem) string {
	text := fmt.Sprintf("%s %s #HCM #HR", item.Title, item.Link)
	return capLength(text, 280)
}

// linkedInFallback builds a plain snippet with the first paragraph
func linkedInFallback(item domain.FeedItem) string {
	para := firstParagraph(item.Description)
	text := item.Title
	if para != "" {
		text += "\n\n" + para
	}
	text += "\n\n" + item.Link + " #HCM #HR #ThoughtLeadership"
	return capLength(text, 300)
}

// firstParagraph returns the first non-empty paragraph of a description
func firstParagraph(description string) string {
	for _, para := range strings.Split(description, "\n\n") {
		para = strings.TrimSpace(para)
		if para != "" {
			return para
		}
	}
	return ""
}

// capLength trims text to at most n characters
func capLength(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n-3]) + "..."
}
