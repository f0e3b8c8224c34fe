package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hcmlabs/blogpipe/internal/biz/domain"
	"github.com/hcmlabs/blogpipe/internal/biz/repo"
	"github.com/hcmlabs/blogpipe/internal/biz/usecase"
)

// ReportScheduler generates topic reports on a Monday/Wednesday/Friday
// cadence and uploads them to remote storage
type ReportScheduler struct {
	pipelineUC *usecase.PipelineUsecase
	storage    repo.StorageRepo
	ledger     repo.ReportLedger
	numTopics  int

	lastRun time.Time
	ctx     context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewReportScheduler creates a new report scheduler. ledger may be nil;
// without it the cadence is tracked in memory only.
func NewReportScheduler(pipelineUC *usecase.PipelineUsecase, storage repo.StorageRepo, ledger repo.ReportLedger, numTopics int) *ReportScheduler {
	if numTopics <= 0 {
		numTopics = 5
	}
	return &ReportScheduler{
		pipelineUC: pipelineUC,
		storage:    storage,
		ledger:     ledger,
		numTopics:  numTopics,
	}
}

// Start starts the scheduler
func (s *ReportScheduler) Start(ctx context.Context) {
	s.ctx, s.cancel = context.WithCancel(ctx)

	s.restoreLastRun()

	s.wg.Add(1)
	go s.loop()

	fmt.Println("[Scheduler] Started (Mon/Wed/Fri topic reports)")
}

// restoreLastRun picks up the last report date from the ledger, so a
// restart on a report day does not produce a second report
func (s *ReportScheduler) restoreLastRun() {
	if s.ledger == nil {
		return
	}
	last, err := s.ledger.LastReportDate(s.ctx)
	if err != nil {
		fmt.Printf("[Scheduler] Warning: failed to read report ledger: %v\n", err)
		return
	}
	s.lastRun = last
}

// Stop stops the scheduler
func (s *ReportScheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	fmt.Println("[Scheduler] Stopped")
}

// loop checks hourly whether a report is due
func (s *ReportScheduler) loop() {
	defer s.wg.Done()

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case now := <-ticker.C:
			if s.isDue(now) {
				s.generateReport(now)
			}
		}
	}
}

// isDue reports whether a topic report should run now:
// report days only, at most once per day
func (s *ReportScheduler) isDue(now time.Time) bool {
	switch now.Weekday() {
	case time.Monday, time.Wednesday, time.Friday:
	default:
		return false
	}
	return s.lastRun.IsZero() || s.lastRun.Format("2006-01-02") != now.Format("2006-01-02")
}

// generateReport generates topics and uploads a dated report file
func (s *ReportScheduler) generateReport(now time.Time) {
	ctx, cancel := context.WithTimeout(s.ctx, 5*time.Minute)
	defer cancel()

	report, err := s.pipelineUC.GenerateTopics(ctx, s.numTopics)
	if err != nil {
		fmt.Printf("[Scheduler] Failed to generate topics: %v\n", err)
		return
	}

	content := formatReport(report)
	remotePath := fmt.Sprintf("blogpipe/reports/topics-%s.md", now.Format("2006-01-02"))

	if err := s.storage.Upload(ctx, remotePath, []byte(content)); err != nil {
		fmt.Printf("[Scheduler] Failed to upload report: %v\n", err)
		return
	}

	s.lastRun = now
	if s.ledger != nil {
		if err := s.ledger.RecordReport(ctx, report.ID, now); err != nil {
			fmt.Printf("[Scheduler] Warning: failed to record report: %v\n", err)
		}
	}
	fmt.Printf("[Scheduler] Topic report uploaded: %s\n", remotePath)
}

// formatReport renders the report file content
func formatReport(report *domain.TopicReport) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Blog Topic Report - %s\n\n", report.GeneratedAt.Format("2006-01-02")))
	for _, topic := range report.Topics {
		sb.WriteString("- " + topic.Text + "\n")
	}
	return sb.String()
}
