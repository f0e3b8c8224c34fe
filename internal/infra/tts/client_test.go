package tts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestSynthesizeWritesAudio(t *testing.T) {
	var gotMessage, gotEngine string

	mux := http.NewServeMux()
	var server *httptest.Server
	mux.HandleFunc("/api/tts_get_url", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			t.Errorf("missing bearer token")
		}
		var req struct {
			Engine  string `json:"engine"`
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		gotMessage = req.Message
		gotEngine = req.Engine
		json.NewEncoder(w).Encode(synthesisResponse{URL: server.URL + "/audio/out.mp3"})
	})
	mux.HandleFunc("/audio/out.mp3", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("mp3-bytes"))
	})
	server = httptest.NewServer(mux)
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "draft.mp3")
	client := NewClient(server.URL, "test-token", "google_translate_say", "en-US")

	path, err := client.Synthesize(context.Background(), "hello world", dest)
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}
	if path != dest {
		t.Errorf("expected path %s, got %s", dest, path)
	}
	if gotMessage != "hello world" {
		t.Errorf("service received %q", gotMessage)
	}
	if gotEngine != "google_translate_say" {
		t.Errorf("engine field = %q, want google_translate_say", gotEngine)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read audio: %v", err)
	}
	if string(data) != "mp3-bytes" {
		t.Errorf("unexpected audio content: %s", data)
	}
}

func TestSynthesizeResolvesRelativeURL(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tts_get_url", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(synthesisResponse{URL: "/api/tts_proxy/out.mp3"})
	})
	mux.HandleFunc("/api/tts_proxy/out.mp3", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("mp3-bytes"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	dest := filepath.Join(t.TempDir(), "draft.mp3")
	client := NewClient(server.URL, "token", "google_translate_say", "en-US")

	if _, err := client.Synthesize(context.Background(), "hello", dest); err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read audio: %v", err)
	}
	if string(data) != "mp3-bytes" {
		t.Errorf("unexpected audio content: %s", data)
	}
}

func TestSynthesizeUnconfigured(t *testing.T) {
	client := NewClient("", "", "engine", "en-US")

	_, err := client.Synthesize(context.Background(), "text", "out.mp3")
	if !errors.Is(err, ErrServiceUnavailable) {
		t.Errorf("expected ErrServiceUnavailable, got %v", err)
	}
}

func TestSynthesizeNoResultURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer server.Close()

	client := NewClient(server.URL, "token", "engine", "en-US")
	_, err := client.Synthesize(context.Background(), "text", filepath.Join(t.TempDir(), "out.mp3"))
	if !errors.Is(err, ErrNoResult) {
		t.Errorf("expected ErrNoResult, got %v", err)
	}
}

func TestSynthesizeUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, "token", "engine", "en-US")
	_, err := client.Synthesize(context.Background(), "text", filepath.Join(t.TempDir(), "out.mp3"))
	if err == nil {
		t.Fatal("expected error on upstream 502")
	}
}
