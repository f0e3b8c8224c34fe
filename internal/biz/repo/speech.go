package repo

import "context"

// SpeechRepo turns draft text into narration audio
type SpeechRepo interface {
	// Synthesize generates speech for the text and writes it to dest,
	// returning the written path
	Synthesize(ctx context.Context, text, dest string) (string, error)
}
