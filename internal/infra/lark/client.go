package lark

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	lark "github.com/larksuite/oapi-sdk-go/v3"
	larkcore "github.com/larksuite/oapi-sdk-go/v3/core"
	"github.com/larksuite/oapi-sdk-go/v3/event/dispatcher"
	larkim "github.com/larksuite/oapi-sdk-go/v3/service/im/v1"
	larkws "github.com/larksuite/oapi-sdk-go/v3/ws"
)

// Reaction is a reaction-added event received over the websocket
type Reaction struct {
	MessageID  string
	OperatorID string
	IsBot      bool
	Emoji      string
}

// ReactionHandler is the callback for received reaction events
type ReactionHandler func(r *Reaction)

// Card is the payload of an approval card message
type Card struct {
	Title     string
	Body      string
	FileName  string
	CharCount int
	Footer    string
	Status    string // empty while pending review
	Color     string // header template: blue, green, red
}

// Client is the Lark API client
type Client struct {
	appID      string
	appSecret  string
	larkCli    *lark.Client
	wsCli      *larkws.Client
	onReaction ReactionHandler
	ctx        context.Context
	cancel     context.CancelFunc
	botOpenID  string

	// sent cards by message id, kept so a status update can re-render
	// the full card (Patch replaces the whole card content)
	mu    sync.Mutex
	cards map[string]*Card
}

// NewClient creates a new Lark client
func NewClient(appID, appSecret string) *Client {
	return &Client{
		appID:     appID,
		appSecret: appSecret,
		larkCli:   lark.NewClient(appID, appSecret),
		cards:     make(map[string]*Card),
	}
}

// OnReaction sets the reaction event handler
func (c *Client) OnReaction(handler ReactionHandler) {
	c.onReaction = handler
}

// BotOpenID returns the bot's own open_id, known after Start
func (c *Client) BotOpenID() string {
	return c.botOpenID
}

// Start connects to Lark via WebSocket and starts listening for reaction events
func (c *Client) Start() error {
	c.ctx, c.cancel = context.WithCancel(context.Background())

	// Fetch bot's own open_id at startup, needed to ignore its own reactions
	if err := c.fetchBotOpenID(); err != nil {
		fmt.Printf("[Lark] Warning: failed to fetch bot open_id: %v\n", err)
	}

	// Register event handler
	// Note: Must return quickly so SDK can send ACK, otherwise Lark will retry due to timeout
	eventHandler := dispatcher.NewEventDispatcher("", "").
		OnP2MessageReactionCreatedV1(func(ctx context.Context, event *larkim.P2MessageReactionCreatedV1) error {
			// Process reaction asynchronously, return immediately to let SDK send ACK
			go c.handleReaction(event)
			return nil
		})

	// Create WebSocket client
	c.wsCli = larkws.NewClient(c.appID, c.appSecret,
		larkws.WithEventHandler(eventHandler),
		larkws.WithLogLevel(larkcore.LogLevelInfo),
	)

	fmt.Println("[Lark] Starting WebSocket connection...")

	// Start WebSocket (blocking)
	return c.wsCli.Start(c.ctx)
}

// Stop disconnects from Lark
func (c *Client) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
}

// fetchBotOpenID fetches the bot's own open_id
func (c *Client) fetchBotOpenID() error {
	// 1. First get tenant_access_token
	tokenReq := fmt.Sprintf(`{"app_id":"%s","app_secret":"%s"}`, c.appID, c.appSecret)
	tokenResp, err := http.Post(
		"https://open.feishu.cn/open-apis/auth/v3/tenant_access_token/internal",
		"application/json",
		strings.NewReader(tokenReq),
	)
	if err != nil {
		return fmt.Errorf("get token: %w", err)
	}
	defer tokenResp.Body.Close()

	var tokenResult struct {
		Code              int    `json:"code"`
		TenantAccessToken string `json:"tenant_access_token"`
	}
	if err := json.NewDecoder(tokenResp.Body).Decode(&tokenResult); err != nil {
		return fmt.Errorf("decode token: %w", err)
	}

	// 2. Get bot info
	req, _ := http.NewRequest("GET", "https://open.feishu.cn/open-apis/bot/v3/info", nil)
	req.Header.Set("Authorization", "Bearer "+tokenResult.TenantAccessToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("get bot info: %w", err)
	}
	defer resp.Body.Close()

	var botResult struct {
		Code int    `json:"code"`
		Msg  string `json:"msg"`
		Bot  struct {
			OpenID  string `json:"open_id"`
			AppName string `json:"app_name"`
		} `json:"bot"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&botResult); err != nil {
		return fmt.Errorf("decode bot info: %w", err)
	}

	if botResult.Code != 0 {
		return fmt.Errorf("API error: %s", botResult.Msg)
	}

	c.botOpenID = botResult.Bot.OpenID
	fmt.Printf("[Lark] Bot open_id: %s (name=%s)\n", c.botOpenID, botResult.Bot.AppName)
	return nil
}

// handleReaction processes incoming reaction-added events
func (c *Client) handleReaction(event *larkim.P2MessageReactionCreatedV1) {
	data := event.Event
	if data == nil || data.MessageId == nil || data.ReactionType == nil || data.ReactionType.EmojiType == nil {
		return
	}

	r := &Reaction{
		MessageID: *data.MessageId,
		Emoji:     *data.ReactionType.EmojiType,
	}

	if data.OperatorType != nil && *data.OperatorType == "app" {
		r.IsBot = true
	}
	if data.UserId != nil && data.UserId.OpenId != nil {
		r.OperatorID = *data.UserId.OpenId
		if c.botOpenID != "" && r.OperatorID == c.botOpenID {
			r.IsBot = true
		}
	}

	fmt.Printf("[Lark] Reaction %s on message %s (bot=%v)\n", r.Emoji, r.MessageID, r.IsBot)

	if c.onReaction != nil {
		c.onReaction(r)
	}
}

// SendCard sends an interactive card to a chat and returns the message id
func (c *Client) SendCard(ctx context.Context, chatID string, card *Card) (string, error) {
	contentJSON, err := json.Marshal(buildCardContent(card))
	if err != nil {
		return "", fmt.Errorf("marshal card: %w", err)
	}

	req := larkim.NewCreateMessageReqBuilder().
		ReceiveIdType(larkim.ReceiveIdTypeChatId).
		Body(larkim.NewCreateMessageReqBodyBuilder().
			ReceiveId(chatID).
			MsgType(larkim.MsgTypeInteractive).
			Content(string(contentJSON)).
			Build()).
		Build()

	resp, err := c.larkCli.Im.Message.Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("send card failed: %w", err)
	}
	if !resp.Success() {
		return "", fmt.Errorf("send card error: %s", resp.Msg)
	}

	messageID := *resp.Data.MessageId

	c.mu.Lock()
	c.cards[messageID] = card
	c.mu.Unlock()

	fmt.Printf("[Lark] Card sent to %s: %s\n", chatID, messageID)
	return messageID, nil
}

// UpdateCardStatus re-renders a sent card with a status label and header color
func (c *Client) UpdateCardStatus(ctx context.Context, messageID, status, color string) error {
	c.mu.Lock()
	card, ok := c.cards[messageID]
	if !ok {
		// Sent before a restart; render a compact status-only card
		card = &Card{Title: "Blog Draft Review"}
	}
	card.Status = status
	card.Color = color
	c.mu.Unlock()

	contentJSON, err := json.Marshal(buildCardContent(card))
	if err != nil {
		return fmt.Errorf("marshal card: %w", err)
	}

	req := larkim.NewPatchMessageReqBuilder().
		MessageId(messageID).
		Body(larkim.NewPatchMessageReqBodyBuilder().
			Content(string(contentJSON)).
			Build()).
		Build()

	resp, err := c.larkCli.Im.Message.Patch(ctx, req)
	if err != nil {
		return fmt.Errorf("update card failed: %w", err)
	}
	if !resp.Success() {
		return fmt.Errorf("update card error: %s", resp.Msg)
	}

	c.mu.Lock()
	delete(c.cards, messageID)
	c.mu.Unlock()

	fmt.Printf("[Lark] Card %s marked %s\n", messageID, status)
	return nil
}

// buildCardContent renders the interactive card JSON structure
func buildCardContent(card *Card) map[string]interface{} {
	color := card.Color
	if color == "" {
		color = "blue"
	}

	elements := []map[string]interface{}{}

	if card.Body != "" {
		elements = append(elements, map[string]interface{}{
			"tag": "div",
			"text": map[string]interface{}{
				"tag":     "plain_text",
				"content": card.Body,
			},
		})
	}

	if card.FileName != "" {
		elements = append(elements, map[string]interface{}{
			"tag": "div",
			"fields": []map[string]interface{}{
				{
					"is_short": true,
					"text": map[string]interface{}{
						"tag":     "lark_md",
						"content": fmt.Sprintf("**File:** %s", card.FileName),
					},
				},
				{
					"is_short": true,
					"text": map[string]interface{}{
						"tag":     "lark_md",
						"content": fmt.Sprintf("**Length:** %d characters", card.CharCount),
					},
				},
			},
		})
	}

	if card.Status != "" {
		elements = append(elements, map[string]interface{}{
			"tag": "div",
			"text": map[string]interface{}{
				"tag":     "lark_md",
				"content": fmt.Sprintf("**Status: %s**", card.Status),
			},
		})
	}

	if card.Footer != "" {
		elements = append(elements, map[string]interface{}{
			"tag": "note",
			"elements": []map[string]interface{}{
				{
					"tag":     "plain_text",
					"content": card.Footer,
				},
			},
		})
	}

	return map[string]interface{}{
		"config": map[string]interface{}{
			"wide_screen_mode": true,
		},
		"header": map[string]interface{}{
			"template": color,
			"title": map[string]interface{}{
				"tag":     "plain_text",
				"content": card.Title,
			},
		},
		"elements": elements,
	}
}

// UploadFile uploads a local file to Lark and returns its file key
func (c *Client) UploadFile(ctx context.Context, path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	req := larkim.NewCreateFileReqBuilder().
		Body(larkim.NewCreateFileReqBodyBuilder().
			FileType("stream").
			FileName(filepath.Base(path)).
			File(file).
			Build()).
		Build()

	resp, err := c.larkCli.Im.File.Create(ctx, req)
	if err != nil {
		return "", fmt.Errorf("upload file failed: %w", err)
	}
	if !resp.Success() {
		return "", fmt.Errorf("upload file error: %s", resp.Msg)
	}

	fileKey := *resp.Data.FileKey
	fmt.Printf("[Lark] Uploaded %s: %s\n", filepath.Base(path), fileKey)
	return fileKey, nil
}

// SendFile sends an uploaded file to a chat
func (c *Client) SendFile(ctx context.Context, chatID, fileKey string) error {
	content := map[string]string{"file_key": fileKey}
	contentJSON, _ := json.Marshal(content)

	req := larkim.NewCreateMessageReqBuilder().
		ReceiveIdType(larkim.ReceiveIdTypeChatId).
		Body(larkim.NewCreateMessageReqBodyBuilder().
			ReceiveId(chatID).
			MsgType(larkim.MsgTypeFile).
			Content(string(contentJSON)).
			Build()).
		Build()

	resp, err := c.larkCli.Im.Message.Create(ctx, req)
	if err != nil {
		return fmt.Errorf("send file failed: %w", err)
	}
	if !resp.Success() {
		return fmt.Errorf("send file error: %s", resp.Msg)
	}

	fmt.Printf("[Lark] File %s sent to %s\n", fileKey, chatID)
	return nil
}

// AddReaction adds an emoji reaction to a message
func (c *Client) AddReaction(ctx context.Context, messageID, emojiType string) error {
	req := larkim.NewCreateMessageReactionReqBuilder().
		MessageId(messageID).
		Body(larkim.NewCreateMessageReactionReqBodyBuilder().
			ReactionType(larkim.NewEmojiBuilder().EmojiType(emojiType).Build()).
			Build()).
		Build()

	resp, err := c.larkCli.Im.MessageReaction.Create(ctx, req)
	if err != nil {
		return fmt.Errorf("add reaction failed: %w", err)
	}
	if !resp.Success() {
		return fmt.Errorf("add reaction error: %s", resp.Msg)
	}

	fmt.Printf("[Lark] Reaction %s added to message %s\n", emojiType, messageID)
	return nil
}

// GetChatName verifies the bot can reach a chat and returns its name
func (c *Client) GetChatName(ctx context.Context, chatID string) (string, error) {
	req := larkim.NewGetChatReqBuilder().
		ChatId(chatID).
		Build()

	resp, err := c.larkCli.Im.Chat.Get(ctx, req)
	if err != nil {
		return "", fmt.Errorf("get chat failed: %w", err)
	}
	if !resp.Success() {
		return "", fmt.Errorf("get chat error: %s", resp.Msg)
	}

	name := ""
	if resp.Data.Name != nil {
		name = *resp.Data.Name
	}
	return name, nil
}
