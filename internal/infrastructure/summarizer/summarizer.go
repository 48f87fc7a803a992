package summarizer

import (
	"context"
	"strings"

	"github.com/sashabaranov/go-openai"

	"parley-server/services/chat-api/internal/config"
	"parley-server/services/chat-api/internal/utils/platformerrors"
)

const systemPrompt = "Summarize the following chat transcript in a few sentences. " +
	"Mention the main topic and any conclusions reached. Reply with the summary only."

// Client generates thread summaries against an OpenAI-compatible
// completion endpoint.
type Client struct {
	api   *openai.Client
	model string
}

// NewClient builds a summarizer, or nil when no endpoint is configured.
func NewClient(cfg *config.Config) *Client {
	if cfg.SummarizerBaseURL == "" && cfg.SummarizerAPIKey == "" {
		return nil
	}

	apiCfg := openai.DefaultConfig(cfg.SummarizerAPIKey)
	if cfg.SummarizerBaseURL != "" {
		apiCfg.BaseURL = cfg.SummarizerBaseURL
	}

	return &Client{
		api:   openai.NewClientWithConfig(apiCfg),
		model: cfg.SummarizerModel,
	}
}

// Summarize produces a short summary of the transcript and reports the
// model that produced it.
func (c *Client) Summarize(ctx context.Context, content string) (string, string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: content},
		},
	})
	if err != nil {
		return "", "", platformerrors.NewError(
			ctx,
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			"summary generation failed",
			err,
			"summarizer-completion-failed",
		)
	}
	if len(resp.Choices) == 0 {
		return "", "", platformerrors.NewError(
			ctx,
			platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal,
			"summary generation returned no choices",
			nil,
			"summarizer-empty-response",
		)
	}

	model := resp.Model
	if model == "" {
		model = c.model
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), model, nil
}
