package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

var (
	// ErrServiceUnavailable indicates the TTS service is not configured
	ErrServiceUnavailable = errors.New("tts service is not configured")

	// ErrNoResult indicates the TTS service returned no audio URL
	ErrNoResult = errors.New("tts service returned no audio url")
)

// Client talks to a Home-Assistant-style TTS REST service
type Client struct {
	baseURL  string
	token    string
	engine   string
	language string
	httpCli  *http.Client
}

// NewClient creates a new TTS client
func NewClient(baseURL, token, engine, language string) *Client {
	return &Client{
		baseURL:  baseURL,
		token:    token,
		engine:   engine,
		language: language,
		httpCli:  &http.Client{Timeout: 60 * time.Second},
	}
}

type synthesisRequest struct {
	Engine   string `json:"engine"`
	Message  string `json:"message"`
	Language string `json:"language,omitempty"`
}

type synthesisResponse struct {
	URL  string `json:"url"`
	Path string `json:"path"`
}

// Synthesize generates speech for the text and writes the audio to dest,
// returning the written path. Single attempt, no retry.
func (c *Client) Synthesize(ctx context.Context, text, dest string) (string, error) {
	if c.baseURL == "" || c.token == "" {
		return "", ErrServiceUnavailable
	}

	audioURL, err := c.requestAudioURL(ctx, text)
	if err != nil {
		return "", err
	}

	if err := c.download(ctx, audioURL, dest); err != nil {
		return "", err
	}

	fmt.Printf("[TTS] Audio written to %s\n", dest)
	return dest, nil
}

// requestAudioURL asks the service to synthesize the text and returns the audio URL
func (c *Client) requestAudioURL(ctx context.Context, text string) (string, error) {
	body, err := json.Marshal(synthesisRequest{
		Engine:   c.engine,
		Message:  text,
		Language: c.language,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/tts_get_url", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return "", fmt.Errorf("tts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("tts request: unexpected status %d", resp.StatusCode)
	}

	var result synthesisResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if result.URL == "" {
		return "", ErrNoResult
	}

	// The service may return a path relative to its own base
	if !strings.HasPrefix(result.URL, "http://") && !strings.HasPrefix(result.URL, "https://") {
		return c.baseURL + result.URL, nil
	}
	return result.URL, nil
}

// download fetches the synthesized audio and writes it to dest
func (c *Client) download(ctx context.Context, audioURL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, audioURL, nil)
	if err != nil {
		return fmt.Errorf("build download request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpCli.Do(req)
	if err != nil {
		return fmt.Errorf("download audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("download audio: unexpected status %d", resp.StatusCode)
	}

	file, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create audio file: %w", err)
	}
	defer file.Close()

	if _, err := io.Copy(file, resp.Body); err != nil {
		return fmt.Errorf("write audio file: %w", err)
	}
	return nil
}
