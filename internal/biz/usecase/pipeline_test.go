package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hcmlabs/blogpipe/internal/biz/domain"
)

// mockWriterRepo returns canned content for each pipeline stage
type mockWriterRepo struct {
	topics     []domain.Topic
	teaserText string
	teaserErr  error
	calls      []string
}

func (m *mockWriterRepo) GenerateTopics(ctx context.Context, numTopics int) ([]domain.Topic, error) {
	m.calls = append(m.calls, "topics")
	return m.topics, nil
}

func (m *mockWriterRepo) CreateBrief(ctx context.Context, topic string) (*domain.Brief, error) {
	m.calls = append(m.calls, "brief")
	return &domain.Brief{Topic: topic, Body: "brief for " + topic}, nil
}

func (m *mockWriterRepo) WriteDraft(ctx context.Context, brief *domain.Brief) (string, error) {
	m.calls = append(m.calls, "draft")
	return "draft from " + brief.Body, nil
}

func (m *mockWriterRepo) EditDraft(ctx context.Context, draft string) (string, error) {
	m.calls = append(m.calls, "edit")
	return "edited " + draft, nil
}

func (m *mockWriterRepo) GenerateTeaser(ctx context.Context, item domain.FeedItem) (string, error) {
	m.calls = append(m.calls, "teaser")
	if m.teaserErr != nil {
		return "", m.teaserErr
	}
	return m.teaserText, nil
}

func TestComposeDraftRunsStagesInOrder(t *testing.T) {
	writer := &mockWriterRepo{}
	uc := NewPipelineUsecase(writer, t.TempDir())

	content, err := uc.ComposeDraft(context.Background(), "Remote Work Trends")
	if err != nil {
		t.Fatalf("ComposeDraft: %v", err)
	}

	want := []string{"brief", "draft", "edit"}
	if fmt.Sprint(writer.calls) != fmt.Sprint(want) {
		t.Errorf("stage order = %v, want %v", writer.calls, want)
	}
	if content != "edited draft from brief for Remote Work Trends" {
		t.Errorf("unexpected content: %s", content)
	}
}

func TestSaveDraftNameQualifiesForWatcher(t *testing.T) {
	dir := t.TempDir()
	uc := NewPipelineUsecase(&mockWriterRepo{}, dir)

	path, err := uc.SaveDraft(context.Background(), "The Future of Remote Work!", "# Post\n\nBody")
	if err != nil {
		t.Fatalf("SaveDraft: %v", err)
	}

	name := filepath.Base(path)
	if !strings.HasSuffix(name, "-draft.md") {
		t.Errorf("draft name should end with -draft.md: %s", name)
	}
	if strings.ContainsAny(name, "!? ") {
		t.Errorf("draft name should be slugified: %s", name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read draft: %v", err)
	}
	if string(data) != "# Post\n\nBody" {
		t.Errorf("unexpected draft content")
	}
}

func TestGenerateTopicsReport(t *testing.T) {
	writer := &mockWriterRepo{topics: []domain.Topic{
		{Text: "1. Skills-based hiring"},
		{Text: "2. Pay transparency"},
	}}
	uc := NewPipelineUsecase(writer, t.TempDir())

	report, err := uc.GenerateTopics(context.Background(), 2)
	if err != nil {
		t.Fatalf("GenerateTopics: %v", err)
	}
	if report.ID == "" {
		t.Error("report should carry an id")
	}
	if len(report.Topics) != 2 {
		t.Errorf("expected 2 topics, got %d", len(report.Topics))
	}
	if report.GeneratedAt.IsZero() {
		t.Error("report should carry a timestamp")
	}
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"The Future of Remote Work", "the-future-of-remote-work"},
		{"1. AI in HR: What's Next?", "1-ai-in-hr-what-s-next"},
		{"", "untitled"},
	}
	for _, c := range cases {
		if got := slugify(c.in); got != c.want {
			t.Errorf("slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPublishContentExtractsTitle(t *testing.T) {
	publish := &mockPublishRepo{}
	uc := NewPublishUsecase(publish)

	_, err := uc.PublishContent(context.Background(), "# Skills-Based Hiring\n\nBody text", nil)
	if err != nil {
		t.Fatalf("PublishContent: %v", err)
	}
	if publish.lastPost.Title != "Skills-Based Hiring" {
		t.Errorf("title = %q", publish.lastPost.Title)
	}
}

// mockPublishRepo records the last published post
type mockPublishRepo struct {
	lastPost *domain.Post
	err      error
}

func (m *mockPublishRepo) Publish(ctx context.Context, post *domain.Post) (*domain.PublishResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.lastPost = post
	return &domain.PublishResult{ID: "p1", URL: "https://medium.com/p/p1", Platform: "medium"}, nil
}

var errWriter = errors.New("writer unavailable")
