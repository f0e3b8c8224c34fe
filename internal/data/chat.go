package data

import (
	"context"
	"fmt"
	"strings"

	"github.com/hcmlabs/blogpipe/internal/biz/domain"
	"github.com/hcmlabs/blogpipe/internal/biz/repo"
	"github.com/hcmlabs/blogpipe/internal/infra/lark"
)

// messageRepo implements the Message repository over the Lark client
type messageRepo struct {
	client *lark.Client
}

// NewMessageRepo creates a new Message repository
func NewMessageRepo(client *lark.Client) repo.MessageRepo {
	return &messageRepo{client: client}
}

// SendApprovalCard posts the approval card with the narration audio attached
func (r *messageRepo) SendApprovalCard(ctx context.Context, channelID string, card domain.ApprovalCard, audioPath string) (string, error) {
	messageID, err := r.client.SendCard(ctx, channelID, &lark.Card{
		Title:     card.Title,
		Body:      card.Body,
		FileName:  card.FileName,
		CharCount: card.CharCount,
		Footer:    card.Footer,
	})
	if err != nil {
		return "", fmt.Errorf("send approval card: %w", err)
	}

	// Audio is best effort; the card alone is enough to review
	if audioPath != "" {
		if err := r.sendAudio(ctx, channelID, audioPath); err != nil {
			fmt.Printf("[Chat] Warning: failed to attach audio: %v\n", err)
		}
	}

	return messageID, nil
}

// sendAudio uploads and sends the narration file to the channel
func (r *messageRepo) sendAudio(ctx context.Context, channelID, audioPath string) error {
	fileKey, err := r.client.UploadFile(ctx, audioPath)
	if err != nil {
		return err
	}
	return r.client.SendFile(ctx, channelID, fileKey)
}

// SetCardStatus re-renders a sent card with a review status label
func (r *messageRepo) SetCardStatus(ctx context.Context, messageID string, status domain.ReviewStatus) error {
	color := "green"
	if status == domain.ReviewRejected {
		color = "red"
	}
	return r.client.UpdateCardStatus(ctx, messageID, string(status), color)
}

// AddReaction adds a reaction to a message by emoji key
func (r *messageRepo) AddReaction(ctx context.Context, messageID, emoji string) error {
	return r.client.AddReaction(ctx, messageID, emoji)
}

// CheckChannel verifies the bot can post to the channel
func (r *messageRepo) CheckChannel(ctx context.Context, channelID string) error {
	name, err := r.client.GetChatName(ctx, channelID)
	if err != nil {
		if strings.Contains(err.Error(), "not found") {
			return repo.ErrChannelNotFound
		}
		return err
	}
	fmt.Printf("[Chat] Approval channel: %s (%s)\n", name, channelID)
	return nil
}
