package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/cloudwego/eino/schema"
)

const defaultTelegramBaseURL = "https://api.telegram.org"

// TelegramConfig binds the notifier to a bot and target chat.
type TelegramConfig struct {
	BotToken string
	ChatID   string
	// BaseURL overrides the Telegram endpoint, mainly for tests.
	BaseURL string
}

// TelegramTool posts free-text reports to the configured admin chat.
type TelegramTool struct {
	cfg        TelegramConfig
	httpClient *http.Client
}

// NewTelegramTool creates the send_telegram_report tool. Missing credentials
// degrade to a configuration-error result at execution time.
func NewTelegramTool(cfg TelegramConfig) *TelegramTool {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultTelegramBaseURL
	}
	return &TelegramTool{cfg: cfg, httpClient: &http.Client{}}
}

// Declaration implements Tool.
func (t *TelegramTool) Declaration() *schema.ToolInfo {
	return &schema.ToolInfo{
		Name: "send_telegram_report",
		Desc: "Sends a daily summary or report to the admin via Telegram.",
		ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
			"reportContent": {
				Type:     schema.String,
				Desc:     "The text content of the report to be sent.",
				Required: true,
			},
		}),
	}
}

// Execute implements Tool.
func (t *TelegramTool) Execute(ctx context.Context, args map[string]any) Result {
	if t.cfg.BotToken == "" || t.cfg.ChatID == "" {
		return Result{Success: false, Error: "Server configuration error: Telegram bot token or chat ID is not set."}
	}

	reportContent, err := stringArg(args, "reportContent")
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}

	body, err := json.Marshal(map[string]string{
		"chat_id": t.cfg.ChatID,
		"text":    reportContent,
	})
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.cfg.BaseURL, t.cfg.BotToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return Result{Success: false, Error: fmt.Sprintf("telegram request failed: %v", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return Result{Success: false, Error: fmt.Sprintf("telegram api returned status %d: %s", resp.StatusCode, bytes.TrimSpace(detail))}
	}

	return Result{Success: true, Message: "Report sent to Telegram successfully."}
}
