package usecase

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hcmlabs/blogpipe/internal/biz/domain"
	"github.com/hcmlabs/blogpipe/internal/biz/repo"
)

// ApprovalConfig contains the approval workflow settings
type ApprovalConfig struct {
	ChannelID    string
	ApprovedDir  string
	RejectionLog string
	ApproveEmoji string
	RejectEmoji  string
}

// ApprovalUsecase runs the draft approval workflow: new drafts are
// narrated and posted for review; reactions resolve them.
type ApprovalUsecase struct {
	config   ApprovalConfig
	tracking repo.TrackingRepo
	message  repo.MessageRepo
	speech   repo.SpeechRepo
}

// NewApprovalUsecase creates a new approval usecase
func NewApprovalUsecase(config ApprovalConfig, tracking repo.TrackingRepo, message repo.MessageRepo, speech repo.SpeechRepo) *ApprovalUsecase {
	return &ApprovalUsecase{
		config:   config,
		tracking: tracking,
		message:  message,
		speech:   speech,
	}
}

// ProcessDraft submits a new draft for review: reads it, narrates it,
// posts the approval card, and tracks the sent message.
func (uc *ApprovalUsecase) ProcessDraft(ctx context.Context, draftPath string) error {
	// Each draft is submitted at most once, across restarts
	first, err := uc.tracking.MarkProcessed(ctx, draftPath)
	if err != nil {
		return fmt.Errorf("mark processed: %w", err)
	}
	if !first {
		fmt.Printf("[Approval] Already processed, skipping: %s\n", draftPath)
		return nil
	}

	content, err := os.ReadFile(draftPath)
	if err != nil {
		return fmt.Errorf("read draft: %w", err)
	}

	draft := &domain.Draft{
		Path:       draftPath,
		Content:    string(content),
		State:      domain.DraftStatePending,
		DetectedAt: time.Now(),
	}

	fmt.Printf("[Approval] Processing draft %s (%d characters)\n", draft.Name(), draft.CharCount())

	// Narration is required; without audio the draft is abandoned here,
	// never notified and never tracked
	audioPath, err := uc.speech.Synthesize(ctx, draft.SpeechText(), draft.AudioPath())
	if err != nil {
		fmt.Printf("[Approval] Audio generation failed for %s, abandoning draft: %v\n", draft.Name(), err)
		return nil
	}

	card := draft.BuildApprovalCard(uc.config.ApproveEmoji, uc.config.RejectEmoji)
	messageID, err := uc.message.SendApprovalCard(ctx, uc.config.ChannelID, card, audioPath)
	if err != nil {
		return fmt.Errorf("send approval card: %w", err)
	}

	// Pre-seed the reactions so reviewers can tap them
	if err := uc.message.AddReaction(ctx, messageID, uc.config.ApproveEmoji); err != nil {
		fmt.Printf("[Approval] Warning: failed to add approve reaction: %v\n", err)
	}
	if err := uc.message.AddReaction(ctx, messageID, uc.config.RejectEmoji); err != nil {
		fmt.Printf("[Approval] Warning: failed to add reject reaction: %v\n", err)
	}

	if err := uc.tracking.Track(ctx, messageID, draftPath); err != nil {
		return fmt.Errorf("track draft: %w", err)
	}

	fmt.Printf("[Approval] Draft %s awaiting review (message %s)\n", draft.Name(), messageID)
	return nil
}

// HandleReaction resolves a tracked draft from a reaction-added event
func (uc *ApprovalUsecase) HandleReaction(ctx context.Context, event *repo.ReactionEvent) error {
	// The bot pre-seeds both reactions on every card
	if event.IsBot {
		return nil
	}

	var status domain.ReviewStatus
	switch event.Emoji {
	case uc.config.ApproveEmoji:
		status = domain.ReviewApproved
	case uc.config.RejectEmoji:
		status = domain.ReviewRejected
	default:
		return nil
	}

	// Claim the draft before any side effect. The entry is removed here,
	// so a racing second reaction resolves nothing.
	draftPath, err := uc.tracking.Resolve(ctx, event.MessageID)
	if errors.Is(err, repo.ErrNotTracked) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("resolve tracked draft: %w", err)
	}

	if status == domain.ReviewApproved {
		return uc.approve(ctx, event.MessageID, draftPath)
	}
	return uc.reject(ctx, event.MessageID, draftPath)
}

// approve moves the draft to the approved folder and marks the card
func (uc *ApprovalUsecase) approve(ctx context.Context, messageID, draftPath string) error {
	if err := os.MkdirAll(uc.config.ApprovedDir, 0755); err != nil {
		return fmt.Errorf("create approved dir: %w", err)
	}

	dest := filepath.Join(uc.config.ApprovedDir, filepath.Base(draftPath))
	if err := os.Rename(draftPath, dest); err != nil {
		return fmt.Errorf("move draft: %w", err)
	}

	if err := uc.message.SetCardStatus(ctx, messageID, domain.ReviewApproved); err != nil {
		fmt.Printf("[Approval] Warning: failed to update card: %v\n", err)
	}

	fmt.Printf("[Approval] Approved: %s -> %s\n", draftPath, dest)
	return nil
}

// reject deletes the narration audio, logs the rejection, and marks the card
func (uc *ApprovalUsecase) reject(ctx context.Context, messageID, draftPath string) error {
	draft := &domain.Draft{Path: draftPath}
	if err := os.Remove(draft.AudioPath()); err != nil && !os.IsNotExist(err) {
		fmt.Printf("[Approval] Warning: failed to remove audio: %v\n", err)
	}

	if err := uc.message.SetCardStatus(ctx, messageID, domain.ReviewRejected); err != nil {
		fmt.Printf("[Approval] Warning: failed to update card: %v\n", err)
	}

	if err := uc.appendRejectionLog(draftPath); err != nil {
		return fmt.Errorf("append rejection log: %w", err)
	}

	fmt.Printf("[Approval] Rejected: %s\n", draftPath)
	return nil
}

// appendRejectionLog appends a "unixts,path" line to the rejection log
func (uc *ApprovalUsecase) appendRejectionLog(draftPath string) error {
	file, err := os.OpenFile(uc.config.RejectionLog, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer file.Close()

	_, err = fmt.Fprintf(file, "%d,%s\n", time.Now().Unix(), draftPath)
	return err
}

// PendingDrafts returns the drafts currently awaiting review
func (uc *ApprovalUsecase) PendingDrafts(ctx context.Context) ([]string, error) {
	return uc.tracking.ListTracked(ctx)
}

// CheckChannel verifies the approval channel is reachable
func (uc *ApprovalUsecase) CheckChannel(ctx context.Context) error {
	return uc.message.CheckChannel(ctx, uc.config.ChannelID)
}
