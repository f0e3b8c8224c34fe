package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hcmlabs/blogpipe/internal/biz/domain"
	"github.com/hcmlabs/blogpipe/internal/biz/repo"
	"github.com/hcmlabs/blogpipe/internal/biz/usecase"
)

type stubTracking struct {
	tracked []string
}

func (s *stubTracking) MarkProcessed(ctx context.Context, draftPath string) (bool, error) {
	return true, nil
}
func (s *stubTracking) Track(ctx context.Context, messageID, draftPath string) error { return nil }
func (s *stubTracking) Resolve(ctx context.Context, messageID string) (string, error) {
	return "", repo.ErrNotTracked
}
func (s *stubTracking) ListTracked(ctx context.Context) ([]string, error) { return s.tracked, nil }
func (s *stubTracking) Close() error                                      { return nil }

type stubWriter struct{}

func (s *stubWriter) GenerateTopics(ctx context.Context, numTopics int) ([]domain.Topic, error) {
	return []domain.Topic{{Text: "1. Skills-based hiring"}}, nil
}
func (s *stubWriter) CreateBrief(ctx context.Context, topic string) (*domain.Brief, error) {
	return &domain.Brief{Topic: topic, Body: "brief"}, nil
}
func (s *stubWriter) WriteDraft(ctx context.Context, brief *domain.Brief) (string, error) {
	return "# Draft\n\nBody", nil
}
func (s *stubWriter) EditDraft(ctx context.Context, draft string) (string, error) {
	return draft, nil
}
func (s *stubWriter) GenerateTeaser(ctx context.Context, item domain.FeedItem) (string, error) {
	return "", nil
}

func newTestServer(t *testing.T) (*Server, *stubTracking) {
	t.Helper()
	tracking := &stubTracking{}
	approvalUC := usecase.NewApprovalUsecase(usecase.ApprovalConfig{}, tracking, nil, nil)
	pipelineUC := usecase.NewPipelineUsecase(&stubWriter{}, t.TempDir())
	return NewServer(approvalUC, pipelineUC, nil, 0), tracking
}

func TestHandlePendingDrafts(t *testing.T) {
	s, tracking := newTestServer(t)
	tracking.tracked = []string{"/drafts/hr-draft-01.md"}

	req := httptest.NewRequest(http.MethodGet, "/api/drafts/pending", nil)
	rec := httptest.NewRecorder()
	s.handlePendingDrafts(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Drafts []string `json:"drafts"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Drafts) != 1 || resp.Drafts[0] != "/drafts/hr-draft-01.md" {
		t.Errorf("unexpected drafts: %v", resp.Drafts)
	}
}

func TestHandleTopics(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/topics", strings.NewReader(`{"num_topics":1}`))
	rec := httptest.NewRecorder()
	s.handleTopics(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		ReportID string   `json:"report_id"`
		Topics   []string `json:"topics"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ReportID == "" || len(resp.Topics) != 1 {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestHandlePipelineRunRequiresTopic(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/pipeline/run", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	s.handlePipelineRun(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestHandlePipelineRunSavesDraft(t *testing.T) {
	s, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/pipeline/run", strings.NewReader(`{"topic":"Remote Work"}`))
	rec := httptest.NewRecorder()
	s.handlePipelineRun(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		DraftPath string `json:"draft_path"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.HasSuffix(resp.DraftPath, "-draft.md") {
		t.Errorf("draft path should end with -draft.md: %s", resp.DraftPath)
	}
}
