package data

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/hcmlabs/blogpipe/internal/biz/domain"
	"github.com/hcmlabs/blogpipe/internal/biz/repo"
	"github.com/hcmlabs/blogpipe/internal/conf"
	"github.com/hcmlabs/blogpipe/internal/infra/openai"
)

// writerRepo implements the Writer repository over OpenAI-compatible clients
type writerRepo struct {
	pipeline *openai.Client
	teaser   *openai.Client
	prompts  *conf.PromptsConfig
}

// NewWriterRepo creates a new Writer repository.
// pipeline drives the content stages; teaser drives the social snippets
// (a separate endpoint, may be nil to reuse pipeline).
func NewWriterRepo(pipeline, teaser *openai.Client, prompts *conf.PromptsConfig) repo.WriterRepo {
	if teaser == nil {
		teaser = pipeline
	}
	if prompts == nil {
		prompts = conf.DefaultPromptsConfig()
	}
	return &writerRepo{pipeline: pipeline, teaser: teaser, prompts: prompts}
}

// GenerateTopics generates blog topic ideas
func (r *writerRepo) GenerateTopics(ctx context.Context, numTopics int) ([]domain.Topic, error) {
	text, err := r.pipeline.Complete(ctx,
		r.prompts.Pipeline.TopicsSystem,
		r.prompts.FormatTopicsPrompt(numTopics),
		0.7, 1000)
	if err != nil {
		return nil, fmt.Errorf("generate topics: %w", err)
	}

	topics := parseTopicList(text)
	if len(topics) == 0 {
		return nil, fmt.Errorf("generate topics: no topics in response")
	}
	return topics, nil
}

// parseTopicList extracts topics from a numbered list response
func parseTopicList(text string) []domain.Topic {
	var topics []domain.Topic
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || !unicode.IsDigit(rune(line[0])) {
			continue
		}
		topics = append(topics, domain.Topic{Text: line})
	}
	return topics
}

// CreateBrief creates a content brief for a topic
func (r *writerRepo) CreateBrief(ctx context.Context, topic string) (*domain.Brief, error) {
	body, err := r.pipeline.Complete(ctx,
		r.prompts.Pipeline.BriefSystem,
		r.prompts.FormatBriefPrompt(topic),
		0.6, 1500)
	if err != nil {
		return nil, fmt.Errorf("create brief: %w", err)
	}
	return &domain.Brief{Topic: topic, Body: body}, nil
}

// WriteDraft writes a first draft from a brief
func (r *writerRepo) WriteDraft(ctx context.Context, brief *domain.Brief) (string, error) {
	draft, err := r.pipeline.Complete(ctx,
		r.prompts.Pipeline.DraftSystem,
		r.prompts.FormatDraftPrompt(brief.Body),
		0.8, 2000)
	if err != nil {
		return "", fmt.Errorf("write draft: %w", err)
	}
	return draft, nil
}

// EditDraft runs an editing pass over a draft
func (r *writerRepo) EditDraft(ctx context.Context, draft string) (string, error) {
	edited, err := r.pipeline.Complete(ctx,
		r.prompts.Pipeline.EditSystem,
		r.prompts.FormatEditPrompt(draft),
		0.5, 2000)
	if err != nil {
		return "", fmt.Errorf("edit draft: %w", err)
	}
	return edited, nil
}

// GenerateTeaser writes a social teaser for a published post
func (r *writerRepo) GenerateTeaser(ctx context.Context, item domain.FeedItem) (string, error) {
	if r.teaser == nil {
		return "", fmt.Errorf("generate teaser: no teaser client configured")
	}

	description := item.Description
	if runes := []rune(description); len(runes) > 500 {
		description = string(runes[:500]) + "..."
	}

	teaser, err := r.teaser.Complete(ctx,
		r.prompts.Social.TeaserSystem,
		r.prompts.FormatTeaserPrompt(item.Title, description, item.Link),
		0.7, 100)
	if err != nil {
		return "", fmt.Errorf("generate teaser: %w", err)
	}
	return teaser, nil
}
