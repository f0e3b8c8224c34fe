package repo

import (
	"context"
	"errors"
	"time"
)

// ErrNotTracked indicates a message id with no tracked draft behind it
var ErrNotTracked = errors.New("message is not tracking any draft")

// TrackingRepo persists the draft tracking table and the processed-set
type TrackingRepo interface {
	// MarkProcessed records a draft path in the processed-set.
	// Returns true if the path was not seen before.
	MarkProcessed(ctx context.Context, draftPath string) (bool, error)

	// Track records a pending approval: message id -> draft path
	Track(ctx context.Context, messageID, draftPath string) error

	// Resolve claims the draft tracked by a message id, removing the
	// tracking entry in the same step. Returns ErrNotTracked when the
	// message id is unknown or the draft was already claimed.
	Resolve(ctx context.Context, messageID string) (string, error)

	// ListTracked returns the draft paths currently awaiting review
	ListTracked(ctx context.Context) ([]string, error)

	// Close closes the underlying store
	Close() error
}

// ReportLedger persists topic report runs so the cadence survives restarts
type ReportLedger interface {
	// RecordReport records a generated topic report
	RecordReport(ctx context.Context, reportID string, generatedAt time.Time) error

	// LastReportDate returns when the most recent report was generated,
	// or the zero time when no report exists
	LastReportDate(ctx context.Context) (time.Time, error)
}
