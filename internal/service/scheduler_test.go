package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/hcmlabs/blogpipe/internal/biz/domain"
)

type memLedger struct {
	last time.Time
}

func (m *memLedger) RecordReport(ctx context.Context, reportID string, generatedAt time.Time) error {
	m.last = generatedAt
	return nil
}

func (m *memLedger) LastReportDate(ctx context.Context) (time.Time, error) {
	return m.last, nil
}

func TestIsDueOnReportDays(t *testing.T) {
	s := NewReportScheduler(nil, nil, nil, 5)

	// 2026-08-24 is a Monday
	monday := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	tuesday := monday.AddDate(0, 0, 1)
	wednesday := monday.AddDate(0, 0, 2)

	if !s.isDue(monday) {
		t.Error("Monday should be due")
	}
	if s.isDue(tuesday) {
		t.Error("Tuesday should not be due")
	}
	if !s.isDue(wednesday) {
		t.Error("Wednesday should be due")
	}
}

func TestIsDueOncePerDay(t *testing.T) {
	s := NewReportScheduler(nil, nil, nil, 5)

	monday := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	s.lastRun = monday

	if s.isDue(monday.Add(2 * time.Hour)) {
		t.Error("report should run at most once per day")
	}
	if !s.isDue(monday.AddDate(0, 0, 2)) {
		t.Error("the next report day should be due again")
	}
}

func TestRestoreLastRunFromLedger(t *testing.T) {
	// 2026-08-24 is a Monday
	monday := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)

	s := NewReportScheduler(nil, nil, &memLedger{last: monday}, 5)
	s.ctx = context.Background()
	s.restoreLastRun()

	if s.isDue(monday.Add(2 * time.Hour)) {
		t.Error("report already in the ledger should not be due again")
	}
	if !s.isDue(monday.AddDate(0, 0, 2)) {
		t.Error("the next report day should be due")
	}
}

func TestFormatReport(t *testing.T) {
	report := &domain.TopicReport{
		GeneratedAt: time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC),
		Topics: []domain.Topic{
			{Text: "1. Skills-based hiring"},
			{Text: "2. Pay transparency"},
		},
	}

	content := formatReport(report)
	if !strings.Contains(content, "2026-08-24") {
		t.Errorf("report should be dated: %s", content)
	}
	if !strings.Contains(content, "- 1. Skills-based hiring") {
		t.Errorf("report should list topics: %s", content)
	}
}
