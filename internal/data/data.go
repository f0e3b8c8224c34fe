package data

import (
	"github.com/hcmlabs/blogpipe/internal/biz/repo"
	"github.com/hcmlabs/blogpipe/internal/conf"
	"github.com/hcmlabs/blogpipe/internal/infra/buffer"
	"github.com/hcmlabs/blogpipe/internal/infra/lark"
	"github.com/hcmlabs/blogpipe/internal/infra/medium"
	"github.com/hcmlabs/blogpipe/internal/infra/openai"
	"github.com/hcmlabs/blogpipe/internal/infra/tts"
	"github.com/hcmlabs/blogpipe/internal/infra/webdav"
)

// Repositories contains all repositories
type Repositories struct {
	Message  repo.MessageRepo
	Tracking repo.TrackingRepo
	Reports  repo.ReportLedger
	Speech   repo.SpeechRepo
	Writer   repo.WriterRepo
	Publish  repo.PublishRepo
	Social   repo.SocialRepo
	Feed     repo.FeedRepo
	Storage  repo.StorageRepo
}

// NewRepositories creates all repositories
func NewRepositories(cfg *conf.Config, larkClient *lark.Client) (*Repositories, error) {
	trackingRepo, err := NewTrackingRepo(cfg.Tracking.DBPath)
	if err != nil {
		return nil, err
	}

	ttsClient := tts.NewClient(cfg.TTS.BaseURL, cfg.TTS.Token, cfg.TTS.Engine(), cfg.TTS.Language)

	pipelineClient := openai.NewClient(cfg.Writer.APIKey, cfg.Writer.BaseURL, cfg.Writer.Model)
	var teaserClient *openai.Client
	if cfg.Social.TeaserAPIKey != "" {
		teaserClient = openai.NewClient(cfg.Social.TeaserAPIKey, cfg.Social.TeaserBaseURL, cfg.Social.TeaserModel)
	}

	return &Repositories{
		Message:  NewMessageRepo(larkClient),
		Tracking: trackingRepo,
		Reports:  trackingRepo.(repo.ReportLedger),
		Speech:   NewSpeechRepo(ttsClient),
		Writer:   NewWriterRepo(pipelineClient, teaserClient, cfg.Prompts),
		Publish:  NewPublishRepo(medium.NewClient(cfg.Medium.Token)),
		Social:   NewSocialRepo(buffer.NewClient(cfg.Social.BufferToken)),
		Feed:     NewFeedRepo(cfg.Social.FeedURL),
		Storage:  NewStorageRepo(webdav.NewClient(cfg.Nextcloud.URL, cfg.Nextcloud.Username, cfg.Nextcloud.Password)),
	}, nil
}
