package mcpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// BlogMCPServer provides MCP tools for driving the blog pipeline.
// Tool calls are relayed to the running bot through its loopback HTTP API.
type BlogMCPServer struct {
	server *mcp.Server
}

var globalAPI *apiClient

// NewServer creates a new blog MCP server talking to the bot API at apiURL
func NewServer(apiURL string) *BlogMCPServer {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "blog-tools",
		Version: "v1.0.0",
	}, nil)

	globalAPI = &apiClient{
		baseURL: apiURL,
		httpCli: &http.Client{Timeout: 5 * time.Minute},
	}

	s := &BlogMCPServer{server: server}
	s.registerTools()
	return s
}

// Run starts the MCP server with stdio transport
func (s *BlogMCPServer) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// registerTools registers all blog pipeline MCP tools
func (s *BlogMCPServer) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "blog_generate_topics",
		Description: "Generate blog topic ideas for the HCM blog. Returns a numbered list of topics.",
	}, handleGenerateTopics)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "blog_write_draft",
		Description: "Run the writing pipeline for a topic: brief, draft, edit. The finished draft lands in the drafts folder and goes through chat review.",
	}, handleWriteDraft)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "blog_list_pending_drafts",
		Description: "List drafts currently awaiting approval in the review channel.",
	}, handleListPendingDrafts)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "blog_publish_post",
		Description: "Publish an approved post file to Medium as a draft post.",
	}, handlePublishPost)
}

// GenerateTopicsInput is the input for blog_generate_topics
type GenerateTopicsInput struct {
	NumTopics int `json:"num_topics,omitempty" jsonschema:"description=Number of topics to generate (default 5)"`
}

// GenerateTopicsOutput is the output for blog_generate_topics
type GenerateTopicsOutput struct {
	Topics []string `json:"topics"`
	Error  string   `json:"error,omitempty"`
}

func handleGenerateTopics(ctx context.Context, req *mcp.CallToolRequest, input GenerateTopicsInput) (*mcp.CallToolResult, GenerateTopicsOutput, error) {
	var resp struct {
		Topics []string `json:"topics"`
	}
	err := globalAPI.post(ctx, "/api/topics", map[string]interface{}{"num_topics": input.NumTopics}, &resp)
	if err != nil {
		return nil, GenerateTopicsOutput{Error: err.Error()}, nil
	}
	return nil, GenerateTopicsOutput{Topics: resp.Topics}, nil
}

// WriteDraftInput is the input for blog_write_draft
type WriteDraftInput struct {
	Topic string `json:"topic" jsonschema:"description=The blog topic to write about"`
}

// WriteDraftOutput is the output for blog_write_draft
type WriteDraftOutput struct {
	DraftPath string `json:"draft_path,omitempty"`
	Error     string `json:"error,omitempty"`
}

func handleWriteDraft(ctx context.Context, req *mcp.CallToolRequest, input WriteDraftInput) (*mcp.CallToolResult, WriteDraftOutput, error) {
	if input.Topic == "" {
		return nil, WriteDraftOutput{Error: "topic is required"}, nil
	}

	var resp struct {
		DraftPath string `json:"draft_path"`
	}
	err := globalAPI.post(ctx, "/api/pipeline/run", map[string]interface{}{"topic": input.Topic}, &resp)
	if err != nil {
		return nil, WriteDraftOutput{Error: err.Error()}, nil
	}
	return nil, WriteDraftOutput{DraftPath: resp.DraftPath}, nil
}

// ListPendingDraftsInput is empty - no input needed
type ListPendingDraftsInput struct{}

// ListPendingDraftsOutput is the output for blog_list_pending_drafts
type ListPendingDraftsOutput struct {
	Drafts []string `json:"drafts"`
	Error  string   `json:"error,omitempty"`
}

func handleListPendingDrafts(ctx context.Context, req *mcp.CallToolRequest, input ListPendingDraftsInput) (*mcp.CallToolResult, ListPendingDraftsOutput, error) {
	var resp struct {
		Drafts []string `json:"drafts"`
	}
	err := globalAPI.get(ctx, "/api/drafts/pending", &resp)
	if err != nil {
		return nil, ListPendingDraftsOutput{Error: err.Error()}, nil
	}
	return nil, ListPendingDraftsOutput{Drafts: resp.Drafts}, nil
}

// PublishPostInput is the input for blog_publish_post
type PublishPostInput struct {
	Path string   `json:"path" jsonschema:"description=Path to the approved markdown post file"`
	Tags []string `json:"tags,omitempty" jsonschema:"description=Tags for the post (default HCM/HR/Thought Leadership)"`
}

// PublishPostOutput is the output for blog_publish_post
type PublishPostOutput struct {
	URL   string `json:"url,omitempty"`
	Error string `json:"error,omitempty"`
}

func handlePublishPost(ctx context.Context, req *mcp.CallToolRequest, input PublishPostInput) (*mcp.CallToolResult, PublishPostOutput, error) {
	if input.Path == "" {
		return nil, PublishPostOutput{Error: "path is required"}, nil
	}

	var resp struct {
		URL string `json:"URL"`
	}
	err := globalAPI.post(ctx, "/api/publish", map[string]interface{}{
		"path": input.Path,
		"tags": input.Tags,
	}, &resp)
	if err != nil {
		return nil, PublishPostOutput{Error: err.Error()}, nil
	}
	return nil, PublishPostOutput{URL: resp.URL}, nil
}

// apiClient calls the bot's loopback HTTP API
type apiClient struct {
	baseURL string
	httpCli *http.Client
}

func (c *apiClient) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *apiClient) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *apiClient) do(req *http.Request, out interface{}) error {
	resp, err := c.httpCli.Do(req)
	if err != nil {
		return fmt.Errorf("bot API unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("bot API error %d: %s", resp.StatusCode, string(data))
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
