package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/hcmlabs/blogpipe/internal/biz/usecase"
)

// Server provides the loopback HTTP API for the MCP server and operators
type Server struct {
	approvalUC *usecase.ApprovalUsecase
	pipelineUC *usecase.PipelineUsecase
	publishUC  *usecase.PublishUsecase

	server *http.Server
	port   int
}

// NewServer creates a new API server
func NewServer(approvalUC *usecase.ApprovalUsecase, pipelineUC *usecase.PipelineUsecase, publishUC *usecase.PublishUsecase, port int) *Server {
	return &Server{
		approvalUC: approvalUC,
		pipelineUC: pipelineUC,
		publishUC:  publishUC,
		port:       port,
	}
}

// Start starts the HTTP server
func (s *Server) Start() error {
	mux := http.NewServeMux()

	// Draft review state
	mux.HandleFunc("/api/drafts", s.handlePendingDrafts)
	mux.HandleFunc("/api/drafts/pending", s.handlePendingDrafts)

	// Content pipeline
	mux.HandleFunc("/api/topics", s.handleTopics)
	mux.HandleFunc("/api/pipeline/run", s.handlePipelineRun)

	// Publishing
	mux.HandleFunc("/api/publish", s.handlePublish)

	// Health check
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	s.server = &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", s.port),
		Handler: mux,
	}

	fmt.Printf("[API] Starting HTTP server on port %d\n", s.port)
	return s.server.ListenAndServe()
}

// Stop stops the HTTP server
func (s *Server) Stop() error {
	if s.server != nil {
		return s.server.Shutdown(context.Background())
	}
	return nil
}

// handlePendingDrafts lists drafts currently awaiting review
func (s *Server) handlePendingDrafts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	drafts, err := s.approvalUC.PendingDrafts(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if drafts == nil {
		drafts = []string{}
	}
	s.writeJSON(w, map[string]interface{}{"drafts": drafts})
}

// handleTopics generates a batch of topic ideas
func (s *Server) handleTopics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		NumTopics int `json:"num_topics"`
	}
	if r.Body != nil {
		// An empty body means the default count
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	report, err := s.pipelineUC.GenerateTopics(r.Context(), req.NumTopics)
	if err != nil {
		s.writeError(w, err)
		return
	}

	topics := make([]string, len(report.Topics))
	for i, t := range report.Topics {
		topics[i] = t.Text
	}
	s.writeJSON(w, map[string]interface{}{
		"report_id":    report.ID,
		"generated_at": report.GeneratedAt.Format(time.RFC3339),
		"topics":       topics,
	})
}

// handlePipelineRun composes a draft for a topic and saves it for review
func (s *Server) handlePipelineRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Topic string `json:"topic"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Topic == "" {
		http.Error(w, "topic is required", http.StatusBadRequest)
		return
	}

	path, err := s.pipelineUC.Run(r.Context(), req.Topic)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, map[string]interface{}{"draft_path": path})
}

// handlePublish publishes a post file or inline content
func (s *Server) handlePublish(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req struct {
		Path    string   `json:"path"`
		Content string   `json:"content"`
		Tags    []string `json:"tags"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Path == "" && req.Content == "" {
		http.Error(w, "path or content is required", http.StatusBadRequest)
		return
	}

	var (
		result interface{}
		err    error
	)
	if req.Path != "" {
		result, err = s.publishUC.PublishFile(r.Context(), req.Path, req.Tags)
	} else {
		result, err = s.publishUC.PublishContent(r.Context(), req.Content, req.Tags)
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, result)
}

// ============ Helpers ============

func (s *Server) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
