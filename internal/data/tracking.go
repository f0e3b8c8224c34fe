package data

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hcmlabs/blogpipe/internal/biz/repo"

	_ "modernc.org/sqlite"
)

// trackingRepo implements the Tracking repository
type trackingRepo struct {
	db *sql.DB
}

// NewTrackingRepo creates a new Tracking repository
func NewTrackingRepo(dbPath string) (repo.TrackingRepo, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Pending approvals: message id -> draft path
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS tracked_drafts (
			message_id TEXT PRIMARY KEY,
			draft_path TEXT NOT NULL,
			created_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tracked_drafts table: %w", err)
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_tracked_drafts_path ON tracked_drafts(draft_path)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	// Processed-set: draft paths that were already submitted once
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS processed_drafts (
			draft_path TEXT PRIMARY KEY,
			processed_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create processed_drafts table: %w", err)
	}

	// Topic report ledger: keeps the report cadence across restarts
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS topic_reports (
			report_id TEXT PRIMARY KEY,
			generated_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create topic_reports table: %w", err)
	}

	return &trackingRepo{db: db}, nil
}

// MarkProcessed records a draft path in the processed-set.
// Returns true if the path was not seen before.
func (r *trackingRepo) MarkProcessed(ctx context.Context, draftPath string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO processed_drafts (draft_path, processed_at) VALUES (?, ?)
	`, draftPath, time.Now().Unix())
	if err != nil {
		return false, fmt.Errorf("failed to mark processed: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check rows affected: %w", err)
	}
	return affected > 0, nil
}

// Track records a pending approval
func (r *trackingRepo) Track(ctx context.Context, messageID, draftPath string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO tracked_drafts (message_id, draft_path, created_at) VALUES (?, ?, ?)
	`, messageID, draftPath, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to track draft: %w", err)
	}
	return nil
}

// Resolve claims the draft tracked by a message id. The row is read and
// deleted in one transaction so two racing reactions cannot both claim it.
func (r *trackingRepo) Resolve(ctx context.Context, messageID string) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var draftPath string
	err = tx.QueryRowContext(ctx, `
		SELECT draft_path FROM tracked_drafts WHERE message_id = ?
	`, messageID).Scan(&draftPath)
	if err == sql.ErrNoRows {
		return "", repo.ErrNotTracked
	}
	if err != nil {
		return "", fmt.Errorf("failed to query tracked draft: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM tracked_drafts WHERE message_id = ?`, messageID)
	if err != nil {
		return "", fmt.Errorf("failed to delete tracked draft: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return "", fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return "", repo.ErrNotTracked
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	return draftPath, nil
}

// ListTracked returns the draft paths currently awaiting review
func (r *trackingRepo) ListTracked(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT draft_path FROM tracked_drafts ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracked drafts: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("failed to scan draft path: %w", err)
		}
		paths = append(paths, path)
	}

	return paths, nil
}

// RecordReport records a generated topic report
func (r *trackingRepo) RecordReport(ctx context.Context, reportID string, generatedAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO topic_reports (report_id, generated_at) VALUES (?, ?)
	`, reportID, generatedAt.Unix())
	if err != nil {
		return fmt.Errorf("failed to record report: %w", err)
	}
	return nil
}

// LastReportDate returns when the most recent topic report was generated
func (r *trackingRepo) LastReportDate(ctx context.Context) (time.Time, error) {
	var generatedAt sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
		SELECT MAX(generated_at) FROM topic_reports
	`).Scan(&generatedAt)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to query last report: %w", err)
	}
	if !generatedAt.Valid {
		return time.Time{}, nil
	}
	return time.Unix(generatedAt.Int64, 0), nil
}

// Close closes the database connection
func (r *trackingRepo) Close() error {
	return r.db.Close()
}

var _ repo.ReportLedger = (*trackingRepo)(nil)
