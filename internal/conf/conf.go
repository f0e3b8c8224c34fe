package conf

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/hcmlabs/blogpipe/internal/biz/usecase"
)

// Config represents application configuration
type Config struct {
	// Lark (chat platform) configuration
	Lark LarkConfig

	// Approval workflow configuration
	Approval ApprovalConfig

	// TTS service configuration
	TTS TTSConfig

	// Writer (LLM) configuration
	Writer WriterConfig

	// Social teaser configuration (optional)
	Social SocialConfig

	// Medium publishing configuration (optional)
	Medium MediumConfig

	// Nextcloud report upload configuration (optional)
	Nextcloud NextcloudConfig

	// Tracking store configuration
	Tracking TrackingConfig

	// Loopback API configuration
	API APIConfig

	// Prompts configuration (loaded from YAML)
	Prompts *PromptsConfig

	// Debug mode
	Debug bool
}

// LarkConfig contains chat platform credentials
type LarkConfig struct {
	AppID     string
	AppSecret string
}

// ApprovalConfig contains draft approval workflow settings
type ApprovalConfig struct {
	ChannelID    string
	DraftsDir    string
	ApprovedDir  string
	RejectionLog string
	ApproveEmoji string
	RejectEmoji  string
}

// TTSConfig contains TTS service settings
type TTSConfig struct {
	BaseURL  string
	Token    string
	EntityID string
	Language string
}

// Engine extracts the engine name from the TTS entity id
// ("tts.google_translate_say" -> "google_translate_say")
func (c *TTSConfig) Engine() string {
	if i := strings.Index(c.EntityID, "."); i >= 0 {
		return c.EntityID[i+1:]
	}
	return c.EntityID
}

// WriterConfig contains LLM settings for the content pipeline
type WriterConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// SocialConfig contains RSS and Buffer settings for the teaser workflow
type SocialConfig struct {
	FeedURL         string
	BufferToken     string
	LinkedInProfile string
	TwitterProfile  string
	TeaserAPIKey    string
	TeaserBaseURL   string
	TeaserModel     string
}

// MediumConfig contains Medium publishing settings
type MediumConfig struct {
	Token string
}

// NextcloudConfig contains WebDAV settings for topic report uploads
type NextcloudConfig struct {
	URL      string
	Username string
	Password string
}

// TrackingConfig contains tracking store settings
type TrackingConfig struct {
	DBPath string
}

// APIConfig contains loopback HTTP API settings
type APIConfig struct {
	Port int
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	// Tracking DB path
	trackingDBPath := os.Getenv("TRACKING_DB_PATH")
	if trackingDBPath == "" {
		homeDir, _ := os.UserHomeDir()
		trackingDBPath = filepath.Join(homeDir, ".blogpipe", "tracking.db")
	}

	// API port
	apiPort := 9742
	if val := os.Getenv("API_PORT"); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			apiPort = parsed
		}
	}

	approvedDir := os.Getenv("APPROVED_FOLDER")
	if approvedDir == "" {
		approvedDir = "./approved"
	}

	rejectionLog := os.Getenv("REJECTION_LOG")
	if rejectionLog == "" {
		rejectionLog = "rejections.log"
	}

	approveEmoji := os.Getenv("APPROVE_EMOJI")
	if approveEmoji == "" {
		approveEmoji = "DONE"
	}
	rejectEmoji := os.Getenv("REJECT_EMOJI")
	if rejectEmoji == "" {
		rejectEmoji = "THUMBSDOWN"
	}

	ttsEntity := os.Getenv("TTS_ENTITY_ID")
	if ttsEntity == "" {
		ttsEntity = "tts.google_translate_say"
	}
	ttsLanguage := os.Getenv("TTS_LANGUAGE")
	if ttsLanguage == "" {
		ttsLanguage = "en-US"
	}

	writerModel := os.Getenv("WRITER_MODEL")
	if writerModel == "" {
		writerModel = "gpt-4"
	}

	teaserModel := os.Getenv("TEASER_MODEL")
	if teaserModel == "" {
		teaserModel = "grok-4-fast-non-reasoning"
	}
	teaserBaseURL := os.Getenv("TEASER_BASE_URL")
	if teaserBaseURL == "" {
		teaserBaseURL = "https://api.x.ai/v1"
	}

	// Load prompts from YAML
	promptsConfigPath := os.Getenv("PROMPTS_CONFIG_PATH")
	promptsConfig, _ := LoadPromptsConfig(promptsConfigPath)

	return &Config{
		Lark: LarkConfig{
			AppID:     os.Getenv("LARK_APP_ID"),
			AppSecret: os.Getenv("LARK_APP_SECRET"),
		},
		Approval: ApprovalConfig{
			ChannelID:    os.Getenv("APPROVAL_CHANNEL_ID"),
			DraftsDir:    os.Getenv("DRAFTS_FOLDER"),
			ApprovedDir:  approvedDir,
			RejectionLog: rejectionLog,
			ApproveEmoji: approveEmoji,
			RejectEmoji:  rejectEmoji,
		},
		TTS: TTSConfig{
			BaseURL:  os.Getenv("TTS_SERVICE_URL"),
			Token:    os.Getenv("TTS_SERVICE_TOKEN"),
			EntityID: ttsEntity,
			Language: ttsLanguage,
		},
		Writer: WriterConfig{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: os.Getenv("OPENAI_BASE_URL"),
			Model:   writerModel,
		},
		Social: SocialConfig{
			FeedURL:         os.Getenv("BLOG_RSS_FEED"),
			BufferToken:     os.Getenv("BUFFER_ACCESS_TOKEN"),
			LinkedInProfile: os.Getenv("BUFFER_LINKEDIN_PROFILE_ID"),
			TwitterProfile:  os.Getenv("BUFFER_TWITTER_PROFILE_ID"),
			TeaserAPIKey:    os.Getenv("XAI_API_KEY"),
			TeaserBaseURL:   teaserBaseURL,
			TeaserModel:     teaserModel,
		},
		Medium: MediumConfig{
			Token: os.Getenv("MEDIUM_INTEGRATION_TOKEN"),
		},
		Nextcloud: NextcloudConfig{
			URL:      os.Getenv("NEXTCLOUD_URL"),
			Username: os.Getenv("NEXTCLOUD_USERNAME"),
			Password: os.Getenv("NEXTCLOUD_PASSWORD"),
		},
		Tracking: TrackingConfig{
			DBPath: trackingDBPath,
		},
		API: APIConfig{
			Port: apiPort,
		},
		Prompts: promptsConfig,
		Debug:   os.Getenv("DEBUG") == "true",
	}
}

// ToApprovalConfig converts to the usecase approval configuration
func (c *Config) ToApprovalConfig() usecase.ApprovalConfig {
	return usecase.ApprovalConfig{
		ChannelID:    c.Approval.ChannelID,
		ApprovedDir:  c.Approval.ApprovedDir,
		RejectionLog: c.Approval.RejectionLog,
		ApproveEmoji: c.Approval.ApproveEmoji,
		RejectEmoji:  c.Approval.RejectEmoji,
	}
}

// Validate validates the configuration, reporting every missing required
// variable at once so the operator can fix them in one pass
func (c *Config) Validate() error {
	required := map[string]string{
		"LARK_APP_ID":         c.Lark.AppID,
		"LARK_APP_SECRET":     c.Lark.AppSecret,
		"APPROVAL_CHANNEL_ID": c.Approval.ChannelID,
		"TTS_SERVICE_URL":     c.TTS.BaseURL,
		"TTS_SERVICE_TOKEN":   c.TTS.Token,
		"DRAFTS_FOLDER":       c.Approval.DraftsDir,
	}

	var missing []string
	for name, val := range required {
		if val == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &MissingVarsError{Names: missing}
	}
	return nil
}

// MissingVarsError reports required environment variables that are not set
type MissingVarsError struct {
	Names []string
}

func (e *MissingVarsError) Error() string {
	return "missing required environment variables: " + strings.Join(e.Names, ", ")
}
