package google

import (
	"context"
	"errors"
	"fmt"

	"github.com/dentalbot/scribe/pkg/provider"

	"github.com/google/uuid"
	"google.golang.org/genai"
)

var _ provider.Completer = (*Completer)(nil)

type Completer struct {
	*Config
}

func NewCompleter(model string, options ...Option) (*Completer, error) {
	cfg := &Config{
		model: model,
	}

	for _, option := range options {
		option(cfg)
	}

	return &Completer{
		Config: cfg,
	}, nil
}

func (c *Completer) Complete(ctx context.Context, messages []provider.Message, options *provider.CompleteOptions) (*provider.Completion, error) {
	if options == nil {
		options = new(provider.CompleteOptions)
	}

	client, err := c.newClient(ctx)

	if err != nil {
		return nil, err
	}

	contents, config := convertRequest(messages, options)

	resp, err := client.Models.GenerateContent(ctx, c.model, contents, config)

	if err != nil {
		return nil, convertError(err)
	}

	id := resp.ResponseID

	if id == "" {
		id = uuid.NewString()
	}

	model := resp.ModelVersion

	if model == "" {
		model = c.model
	}

	return &provider.Completion{
		ID:    id,
		Model: model,

		Message: &provider.Message{
			Role: provider.MessageRoleAssistant,

			Content: []provider.Content{
				provider.TextContent(resp.Text()),
			},
		},

		Usage: toUsage(resp.UsageMetadata),
	}, nil
}

func convertRequest(messages []provider.Message, options *provider.CompleteOptions) ([]*genai.Content, *genai.GenerateContentConfig) {
	config := &genai.GenerateContentConfig{
		Temperature: options.Temperature,
	}

	if options.MaxTokens != nil {
		config.MaxOutputTokens = int32(*options.MaxTokens)
	}

	if options.Format == provider.CompletionFormatJSON || options.Schema != nil {
		config.ResponseMIMEType = "application/json"

		if options.Schema != nil {
			config.ResponseJsonSchema = options.Schema.Schema
		}
	}

	var contents []*genai.Content

	for _, m := range messages {
		switch m.Role {
		case provider.MessageRoleSystem:
			config.SystemInstruction = genai.NewContentFromText(m.Text(), genai.RoleUser)

		case provider.MessageRoleUser:
			contents = append(contents, genai.NewContentFromText(m.Text(), genai.RoleUser))

		case provider.MessageRoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Text(), genai.RoleModel))
		}
	}

	return contents, config
}

func toUsage(metadata *genai.GenerateContentResponseUsageMetadata) *provider.Usage {
	if metadata == nil {
		return nil
	}

	return &provider.Usage{
		InputTokens:  int(metadata.PromptTokenCount),
		OutputTokens: int(metadata.CandidatesTokenCount),
	}
}

func convertError(err error) error {
	var apierr genai.APIError

	if errors.As(err, &apierr) {
		return fmt.Errorf("gemini: %s (%d %s)", apierr.Message, apierr.Code, apierr.Status)
	}

	return err
}
