package domain

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"
)

// DraftState represents the lifecycle state of a draft
type DraftState string

const (
	DraftStatePending        DraftState = "pending"
	DraftStateAwaitingReview DraftState = "awaiting_review"
	DraftStateApproved       DraftState = "approved"
	DraftStateRejected       DraftState = "rejected"
)

// ReviewStatus is the status label rendered on a resolved approval card
type ReviewStatus string

const (
	ReviewApproved ReviewStatus = "APPROVED"
	ReviewRejected ReviewStatus = "REJECTED"
)

const (
	// SpeechLimit is the maximum character count sent to the TTS service
	SpeechLimit = 5000

	// CardBodyLimit is the maximum character count rendered in the card body
	CardBodyLimit = 2000

	speechTruncationMarker = "... [content truncated for audio]"
)

// Draft represents a blog draft moving through the approval workflow
type Draft struct {
	Path       string
	Content    string
	State      DraftState
	DetectedAt time.Time
}

// Name returns the draft's file name
func (d *Draft) Name() string {
	return filepath.Base(d.Path)
}

// AudioPath returns the path of the draft's narration audio file,
// next to the draft with an .mp3 extension
func (d *Draft) AudioPath() string {
	ext := filepath.Ext(d.Path)
	return strings.TrimSuffix(d.Path, ext) + ".mp3"
}

// CharCount returns the draft content length in characters
func (d *Draft) CharCount() int {
	return utf8.RuneCountInString(d.Content)
}

// SpeechText returns the draft content prepared for speech synthesis.
// Content over the limit is cut and suffixed with a truncation marker,
// keeping the result within the limit.
func (d *Draft) SpeechText() string {
	runes := []rune(d.Content)
	if len(runes) <= SpeechLimit {
		return d.Content
	}
	return string(runes[:SpeechLimit-100]) + speechTruncationMarker
}

// CardBody returns the draft content prepared for the approval card body
func (d *Draft) CardBody() string {
	runes := []rune(d.Content)
	if len(runes) <= CardBodyLimit {
		return d.Content
	}
	return string(runes[:CardBodyLimit]) + "..."
}

// ApprovalCard is the rendered approval notification for a draft
type ApprovalCard struct {
	Title     string
	Body      string
	FileName  string
	CharCount int
	Footer    string
}

// BuildApprovalCard renders the approval card for a draft
func (d *Draft) BuildApprovalCard(approveEmoji, rejectEmoji string) ApprovalCard {
	return ApprovalCard{
		Title:     fmt.Sprintf("New Blog Draft: %s", d.Name()),
		Body:      d.CardBody(),
		FileName:  d.Name(),
		CharCount: d.CharCount(),
		Footer:    fmt.Sprintf("React with %s to approve or %s to reject", approveEmoji, rejectEmoji),
	}
}
