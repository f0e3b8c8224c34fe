package repo

import (
	"context"
	"errors"

	"github.com/hcmlabs/blogpipe/internal/biz/domain"
)

// ErrChannelNotFound indicates the approval channel is not reachable by the bot
var ErrChannelNotFound = errors.New("channel not found or bot is not a member")

// ReactionEvent is a reaction added to a message in the approval channel
type ReactionEvent struct {
	MessageID  string
	OperatorID string
	IsBot      bool
	Emoji      string
}

// MessageRepo sends and updates approval notifications in the chat platform
type MessageRepo interface {
	// SendApprovalCard posts the approval card with the narration audio
	// attached and returns the created message id
	SendApprovalCard(ctx context.Context, channelID string, card domain.ApprovalCard, audioPath string) (string, error)

	// SetCardStatus re-renders a sent card with a review status label
	// and the matching header color
	SetCardStatus(ctx context.Context, messageID string, status domain.ReviewStatus) error

	// AddReaction adds a reaction to a message by emoji key
	AddReaction(ctx context.Context, messageID, emoji string) error

	// CheckChannel verifies the bot can post to the channel
	CheckChannel(ctx context.Context, channelID string) error
}
