package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/hcmlabs/blogpipe/internal/biz/domain"
)

// mockSocialRepo records scheduled updates
type mockSocialRepo struct {
	scheduled []scheduledUpdate
}

type scheduledUpdate struct {
	profileID string
	text      string
	at        time.Time
}

func (m *mockSocialRepo) Schedule(ctx context.Context, profileID, text string, at time.Time) error {
	m.scheduled = append(m.scheduled, scheduledUpdate{profileID, text, at})
	return nil
}

// mockFeedRepo serves a fixed item list
type mockFeedRepo struct {
	items []domain.FeedItem
}

func (m *mockFeedRepo) FetchNew(ctx context.Context, since time.Time) ([]domain.FeedItem, error) {
	return m.items, nil
}

func TestTeaserSchedulesBothProfiles(t *testing.T) {
	writer := &mockWriterRepo{teaserText: "Fresh take on hybrid work. Read more: https://blog.example.com/p1"}
	social := &mockSocialRepo{}
	feed := &mockFeedRepo{items: []domain.FeedItem{
		{Title: "Hybrid Work", Link: "https://blog.example.com/p1", Published: time.Now()},
	}}

	uc := NewTeaserUsecase(TeaserConfig{
		LinkedInProfile: "li_1",
		TwitterProfile:  "tw_1",
	}, writer, social, feed)

	handled, err := uc.Run(context.Background(), time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if handled != 1 {
		t.Errorf("handled = %d, want 1", handled)
	}
	if len(social.scheduled) != 2 {
		t.Fatalf("expected 2 scheduled updates, got %d", len(social.scheduled))
	}

	// Twitter first, LinkedIn an hour later
	if social.scheduled[0].profileID != "tw_1" || social.scheduled[1].profileID != "li_1" {
		t.Errorf("unexpected profile order: %+v", social.scheduled)
	}
	if !social.scheduled[1].at.After(social.scheduled[0].at) {
		t.Errorf("updates should be staggered")
	}
}

func TestTeaserFallbackOnWriterError(t *testing.T) {
	writer := &mockWriterRepo{teaserErr: errWriter}
	social := &mockSocialRepo{}
	feed := &mockFeedRepo{items: []domain.FeedItem{
		{
			Title:       "Pay Transparency",
			Link:        "https://blog.example.com/p2",
			Description: "Why pay transparency matters.\n\nMore detail here.",
			Published:   time.Now(),
		},
	}}

	uc := NewTeaserUsecase(TeaserConfig{
		LinkedInProfile: "li_1",
		TwitterProfile:  "tw_1",
	}, writer, social, feed)

	if _, err := uc.Run(context.Background(), time.Now().Add(-time.Hour)); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(social.scheduled) != 2 {
		t.Fatalf("expected 2 scheduled updates, got %d", len(social.scheduled))
	}

	tweet := social.scheduled[0].text
	if !strings.Contains(tweet, "Pay Transparency") || !strings.Contains(tweet, "#HCM") {
		t.Errorf("tweet fallback missing title or hashtags: %q", tweet)
	}
	if len([]rune(tweet)) > 280 {
		t.Errorf("tweet fallback exceeds 280 chars")
	}

	post := social.scheduled[1].text
	if !strings.Contains(post, "Why pay transparency matters.") {
		t.Errorf("linkedin fallback should carry the first paragraph: %q", post)
	}
	if len([]rune(post)) > 300 {
		t.Errorf("linkedin fallback exceeds 300 chars")
	}
}

func TestTeaserNoProfilesConfigured(t *testing.T) {
	writer := &mockWriterRepo{teaserText: "snippet"}
	social := &mockSocialRepo{}
	feed := &mockFeedRepo{items: []domain.FeedItem{
		{Title: "Post", Link: "https://blog.example.com/p3", Published: time.Now()},
	}}

	uc := NewTeaserUsecase(TeaserConfig{}, writer, social, feed)

	handled, err := uc.Run(context.Background(), time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if handled != 0 {
		t.Errorf("nothing should be handled without profiles, got %d", handled)
	}
}
