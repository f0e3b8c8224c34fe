package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/hcmlabs/blogpipe/internal/biz/repo"
	"github.com/hcmlabs/blogpipe/internal/biz/usecase"
)

// ApprovalService consumes watcher and reaction events and drives the
// approval usecase. Drafts are processed concurrently; reaction events
// are handled one at a time in arrival order.
type ApprovalService struct {
	approvalUC *usecase.ApprovalUsecase

	drafts    chan string
	reactions chan *repo.ReactionEvent
	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

// NewApprovalService creates a new approval service
func NewApprovalService(approvalUC *usecase.ApprovalUsecase) *ApprovalService {
	return &ApprovalService{
		approvalUC: approvalUC,
		drafts:     make(chan string, 16),
		reactions:  make(chan *repo.ReactionEvent, 16),
	}
}

// Start starts the event loops
func (s *ApprovalService) Start(ctx context.Context) {
	s.ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(2)
	go s.draftLoop()
	go s.reactionLoop()

	fmt.Println("[Approval] Service started")
}

// Stop stops the event loops and waits for in-flight work
func (s *ApprovalService) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	fmt.Println("[Approval] Service stopped")
}

// SubmitDraft queues a detected draft for processing
func (s *ApprovalService) SubmitDraft(path string) {
	select {
	case s.drafts <- path:
	case <-s.ctx.Done():
	}
}

// SubmitReaction queues a reaction event for handling
func (s *ApprovalService) SubmitReaction(event *repo.ReactionEvent) {
	select {
	case s.reactions <- event:
	case <-s.ctx.Done():
	}
}

// draftLoop processes detected drafts, one goroutine per draft so a slow
// TTS call does not block later drafts
func (s *ApprovalService) draftLoop() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			return
		case path := <-s.drafts:
			s.wg.Add(1)
			go func(p string) {
				defer s.wg.Done()
				if err := s.approvalUC.ProcessDraft(s.ctx, p); err != nil {
					fmt.Printf("[Approval] Failed to process %s: %v\n", p, err)
				}
			}(path)
		}
	}
}

// reactionLoop handles reaction events sequentially. Per-event errors are
// logged; the loop never stops on them.
func (s *ApprovalService) reactionLoop() {
	defer s.wg.Done()

	for {
		select {
		case <-s.ctx.Done():
			return
		case event := <-s.reactions:
			if err := s.approvalUC.HandleReaction(s.ctx, event); err != nil {
				fmt.Printf("[Approval] Failed to handle reaction on %s: %v\n", event.MessageID, err)
			}
		}
	}
}
