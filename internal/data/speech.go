package data

import (
	"context"

	"github.com/hcmlabs/blogpipe/internal/biz/repo"
	"github.com/hcmlabs/blogpipe/internal/infra/tts"
)

// speechRepo implements the Speech repository over the TTS client
type speechRepo struct {
	client *tts.Client
}

// NewSpeechRepo creates a new Speech repository
func NewSpeechRepo(client *tts.Client) repo.SpeechRepo {
	return &speechRepo{client: client}
}

// Synthesize generates speech for the text and writes it to dest
func (r *speechRepo) Synthesize(ctx context.Context, text, dest string) (string, error) {
	return r.client.Synthesize(ctx, text, dest)
}
