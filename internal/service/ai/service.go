// Package ai is the conversation gateway: it scopes the model configuration to
// the caller's role, runs the inference round-trips, and dispatches tool calls
// requested by the model.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/realganganadul/gingin-backend/internal/config"
	chatmodel "github.com/realganganadul/gingin-backend/internal/model/chat"
	"github.com/realganganadul/gingin-backend/internal/session"
	"github.com/realganganadul/gingin-backend/internal/tools"
)

// Service runs chat requests against the configured model. It holds two model
// instances: a plain one for customers and one with the tool declarations
// bound, so a non-admin request can never see a tool even by accident.
type Service struct {
	baseModel  model.ChatModel
	adminModel model.ChatModel
	registry   *tools.Registry
}

// NewService creates the gateway, building both model instances from the same
// provider configuration.
func NewService(ctx context.Context, cfg config.AIConfig, registry *tools.Registry) (*Service, error) {
	baseModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat model: %w", err)
	}

	adminModel, err := cfg.NewChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create admin chat model: %w", err)
	}
	if err := adminModel.BindTools(registry.Declarations()); err != nil {
		return nil, fmt.Errorf("failed to bind tool declarations: %w", err)
	}

	return &Service{
		baseModel:  baseModel,
		adminModel: adminModel,
		registry:   registry,
	}, nil
}

// roleConfig pairs a system prompt variant with the model instance allowed to
// serve it.
type roleConfig struct {
	systemPrompt string
	chatModel    model.ChatModel
	toolsEnabled bool
}

// configFor selects the privilege-scoped configuration. The switch is
// exhaustive over the role enum so adding a role is a compile-visible change.
func (s *Service) configFor(role session.Role) roleConfig {
	switch role {
	case session.RoleAdmin:
		return roleConfig{
			systemPrompt: adminSystemPrompt,
			chatModel:    s.adminModel,
			toolsEnabled: true,
		}
	default:
		return roleConfig{
			systemPrompt: customerSystemPrompt,
			chatModel:    s.baseModel,
			toolsEnabled: false,
		}
	}
}

// Chat runs one request through the dispatch cycle: primary inference, tool
// detection, execution, and the follow-up inference carrying the tool result.
// At most one tool round runs per request; if the follow-up response requests
// another tool it is logged and its text returned as-is.
func (s *Service) Chat(ctx context.Context, role session.Role, history []chatmodel.Turn, message string) (string, error) {
	cfg := s.configFor(role)

	messages := buildMessages(cfg.systemPrompt, history, message)
	response, err := cfg.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("inference failed: %w", err)
	}

	if len(response.ToolCalls) == 0 {
		return response.Content, nil
	}
	if !cfg.toolsEnabled {
		// Unreachable when the role gate holds, since no declarations were
		// bound. Refuse execution and fall through with the raw text.
		log.Printf("[ai] refusing tool call %q from non-admin session", response.ToolCalls[0].Function.Name)
		return response.Content, nil
	}

	call := response.ToolCalls[0]
	result := s.execute(ctx, call)

	payload, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to serialize tool result: %w", err)
	}

	messages = append(messages, response, schema.ToolMessage(string(payload), call.ID))
	final, err := cfg.chatModel.Generate(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("inference failed after tool execution: %w", err)
	}
	if len(final.ToolCalls) > 0 {
		// Single-pass contract: one tool round per request.
		log.Printf("[ai] follow-up response requested %q; only one tool round runs per request", final.ToolCalls[0].Function.Name)
	}
	return final.Content, nil
}

func (s *Service) execute(ctx context.Context, call schema.ToolCall) tools.Result {
	args := map[string]any{}
	if raw := call.Function.Arguments; raw != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			return tools.Result{Success: false, Error: fmt.Sprintf("invalid tool arguments: %v", err)}
		}
	}
	return s.registry.Execute(ctx, call.Function.Name, args)
}

// buildMessages assembles system prompt, prior history, and the new user
// message in order. Turns with unknown roles are skipped.
func buildMessages(systemPrompt string, history []chatmodel.Turn, message string) []*schema.Message {
	messages := make([]*schema.Message, 0, len(history)+2)
	messages = append(messages, schema.SystemMessage(systemPrompt))
	for _, turn := range history {
		switch turn.Role {
		case chatmodel.RoleUser:
			messages = append(messages, schema.UserMessage(turn.Text))
		case chatmodel.RoleModel:
			messages = append(messages, schema.AssistantMessage(turn.Text, nil))
		}
	}
	return append(messages, schema.UserMessage(message))
}

// IsUpstreamAuthError reports whether err looks like a rejected provider
// credential, so the handler can surface a configuration message instead of
// the generic one.
func IsUpstreamAuthError(err error) bool {
	if err == nil {
		return false
	}
	text := strings.ToLower(err.Error())
	return strings.Contains(text, "api key") ||
		strings.Contains(text, "unauthorized") ||
		strings.Contains(text, "authentication")
}
