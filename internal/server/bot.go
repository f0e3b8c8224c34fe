package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/hcmlabs/blogpipe/internal/biz/repo"
	"github.com/hcmlabs/blogpipe/internal/infra/lark"
	"github.com/hcmlabs/blogpipe/internal/service"
	"github.com/hcmlabs/blogpipe/internal/watcher"
)

// Bot wires the drafts watcher, the chat client, and the approval
// service together
type Bot struct {
	larkClient *lark.Client
	watcher    *watcher.Watcher
	approval   *service.ApprovalService
	scheduler  *service.ReportScheduler

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewBot creates a new bot server
func NewBot(larkClient *lark.Client, w *watcher.Watcher, approval *service.ApprovalService, scheduler *service.ReportScheduler) *Bot {
	return &Bot{
		larkClient: larkClient,
		watcher:    w,
		approval:   approval,
		scheduler:  scheduler,
	}
}

// Start runs the bot. Blocks on the chat websocket until Stop is called.
func (b *Bot) Start() error {
	b.ctx, b.cancel = context.WithCancel(context.Background())

	b.approval.Start(b.ctx)
	if b.scheduler != nil {
		b.scheduler.Start(b.ctx)
	}

	// Watcher events feed the approval service
	b.watcher.Start()
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		for path := range b.watcher.Events() {
			b.approval.SubmitDraft(path)
		}
	}()

	// Reaction events feed the approval service
	b.larkClient.OnReaction(func(r *lark.Reaction) {
		b.approval.SubmitReaction(&repo.ReactionEvent{
			MessageID:  r.MessageID,
			OperatorID: r.OperatorID,
			IsBot:      r.IsBot,
			Emoji:      r.Emoji,
		})
	})

	fmt.Println("[Bot] Draft approval bot running")
	return b.larkClient.Start()
}

// Stop shuts the bot down: watcher first so no new drafts arrive, then
// the scheduler and the chat client, then the in-flight workers
func (b *Bot) Stop() {
	b.watcher.Stop()
	b.wg.Wait()

	if b.scheduler != nil {
		b.scheduler.Stop()
	}
	b.larkClient.Stop()
	b.approval.Stop()

	if b.cancel != nil {
		b.cancel()
	}
	fmt.Println("[Bot] Stopped")
}
