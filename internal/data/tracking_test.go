package data

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/hcmlabs/blogpipe/internal/biz/repo"
)

func newTestRepo(t *testing.T) repo.TrackingRepo {
	t.Helper()
	r, err := NewTrackingRepo(filepath.Join(t.TempDir(), "tracking.db"))
	if err != nil {
		t.Fatalf("NewTrackingRepo: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestMarkProcessedDedup(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	first, err := r.MarkProcessed(ctx, "/drafts/hr-draft-01.md")
	if err != nil {
		t.Fatalf("MarkProcessed: %v", err)
	}
	if !first {
		t.Error("first mark should report the path as new")
	}

	second, err := r.MarkProcessed(ctx, "/drafts/hr-draft-01.md")
	if err != nil {
		t.Fatalf("MarkProcessed: %v", err)
	}
	if second {
		t.Error("second mark should report the path as seen")
	}
}

func TestTrackAndResolve(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	if err := r.Track(ctx, "om_123", "/drafts/hr-draft-01.md"); err != nil {
		t.Fatalf("Track: %v", err)
	}

	path, err := r.Resolve(ctx, "om_123")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if path != "/drafts/hr-draft-01.md" {
		t.Errorf("unexpected draft path: %s", path)
	}

	// Entry is gone after the claim
	_, err = r.Resolve(ctx, "om_123")
	if !errors.Is(err, repo.ErrNotTracked) {
		t.Errorf("second resolve should return ErrNotTracked, got %v", err)
	}
}

func TestResolveUnknownMessage(t *testing.T) {
	r := newTestRepo(t)

	_, err := r.Resolve(context.Background(), "om_unknown")
	if !errors.Is(err, repo.ErrNotTracked) {
		t.Errorf("expected ErrNotTracked, got %v", err)
	}
}

func TestListTracked(t *testing.T) {
	r := newTestRepo(t)
	ctx := context.Background()

	if err := r.Track(ctx, "om_1", "/drafts/a-draft.md"); err != nil {
		t.Fatalf("Track: %v", err)
	}
	if err := r.Track(ctx, "om_2", "/drafts/b-draft.md"); err != nil {
		t.Fatalf("Track: %v", err)
	}

	paths, err := r.ListTracked(ctx)
	if err != nil {
		t.Fatalf("ListTracked: %v", err)
	}
	if len(paths) != 2 {
		t.Fatalf("expected 2 tracked drafts, got %d", len(paths))
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	r, err := NewTrackingRepo(filepath.Join(t.TempDir(), "tracking.db"))
	if err != nil {
		t.Fatalf("NewTrackingRepo: %v", err)
	}

	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}
}

func TestReportLedger(t *testing.T) {
	r := newTestRepo(t)
	ledger := r.(repo.ReportLedger)
	ctx := context.Background()

	last, err := ledger.LastReportDate(ctx)
	if err != nil {
		t.Fatalf("LastReportDate: %v", err)
	}
	if !last.IsZero() {
		t.Errorf("empty ledger should report the zero time, got %v", last)
	}

	first := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	if err := ledger.RecordReport(ctx, "report-1", first); err != nil {
		t.Fatalf("RecordReport: %v", err)
	}
	if err := ledger.RecordReport(ctx, "report-2", first.AddDate(0, 0, 2)); err != nil {
		t.Fatalf("RecordReport: %v", err)
	}

	last, err = ledger.LastReportDate(ctx)
	if err != nil {
		t.Fatalf("LastReportDate: %v", err)
	}
	if !last.Equal(first.AddDate(0, 0, 2)) {
		t.Errorf("LastReportDate = %v, want %v", last, first.AddDate(0, 0, 2))
	}
}
