package conf

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateReportsAllMissingVars(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error for empty config")
	}

	var missErr *MissingVarsError
	if !errors.As(err, &missErr) {
		t.Fatalf("expected MissingVarsError, got %T", err)
	}
	for _, name := range []string{
		"LARK_APP_ID", "LARK_APP_SECRET", "APPROVAL_CHANNEL_ID",
		"TTS_SERVICE_URL", "TTS_SERVICE_TOKEN", "DRAFTS_FOLDER",
	} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error should mention %s: %v", name, err)
		}
	}
}

func TestValidatePassesWithRequiredVars(t *testing.T) {
	cfg := &Config{
		Lark: LarkConfig{AppID: "cli_x", AppSecret: "secret"},
		Approval: ApprovalConfig{
			ChannelID: "oc_123",
			DraftsDir: "/drafts",
		},
		TTS: TTSConfig{BaseURL: "http://ha.local:8123", Token: "tok"},
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestLoadFromEnvDefaults(t *testing.T) {
	t.Setenv("APPROVED_FOLDER", "")
	t.Setenv("APPROVE_EMOJI", "")
	t.Setenv("REJECT_EMOJI", "")
	t.Setenv("TTS_ENTITY_ID", "")
	t.Setenv("WRITER_MODEL", "")
	t.Setenv("API_PORT", "")

	cfg := LoadFromEnv()

	if cfg.Approval.ApprovedDir != "./approved" {
		t.Errorf("ApprovedDir = %q", cfg.Approval.ApprovedDir)
	}
	if cfg.Approval.ApproveEmoji != "DONE" || cfg.Approval.RejectEmoji != "THUMBSDOWN" {
		t.Errorf("emoji defaults = %q / %q", cfg.Approval.ApproveEmoji, cfg.Approval.RejectEmoji)
	}
	if cfg.TTS.EntityID != "tts.google_translate_say" {
		t.Errorf("EntityID = %q", cfg.TTS.EntityID)
	}
	if cfg.Writer.Model != "gpt-4" {
		t.Errorf("Model = %q", cfg.Writer.Model)
	}
	if cfg.API.Port != 9742 {
		t.Errorf("Port = %d", cfg.API.Port)
	}
}

func TestTTSConfigEngine(t *testing.T) {
	c := &TTSConfig{EntityID: "tts.google_translate_say"}
	if got := c.Engine(); got != "google_translate_say" {
		t.Errorf("Engine() = %q", got)
	}

	c = &TTSConfig{EntityID: "cloud_say"}
	if got := c.Engine(); got != "cloud_say" {
		t.Errorf("Engine() = %q", got)
	}
}
