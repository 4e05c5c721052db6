package bedrock

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dentalbot/scribe/pkg/provider"

	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/aws/smithy-go"
)

var _ provider.Completer = (*Completer)(nil)

type Completer struct {
	*Config

	client *bedrockruntime.Client
}

func NewCompleter(model string, options ...Option) (*Completer, error) {
	cfg := &Config{
		model: model,
	}

	for _, option := range options {
		option(cfg)
	}

	var loadOptions []func(*config.LoadOptions) error

	if cfg.region != "" {
		loadOptions = append(loadOptions, config.WithRegion(cfg.region))
	}

	if cfg.client != nil {
		loadOptions = append(loadOptions, config.WithHTTPClient(cfg.client))
	}

	awsConfig, err := config.LoadDefaultConfig(context.Background(), loadOptions...)

	if err != nil {
		return nil, err
	}

	client := bedrockruntime.NewFromConfig(awsConfig, func(o *bedrockruntime.Options) {
		o.RetryMaxAttempts = 1
	})

	return &Completer{
		Config: cfg,

		client: client,
	}, nil
}

func (c *Completer) Complete(ctx context.Context, messages []provider.Message, options *provider.CompleteOptions) (*provider.Completion, error) {
	if options == nil {
		options = new(provider.CompleteOptions)
	}

	req, err := c.convertConverseInput(messages, options)

	if err != nil {
		return nil, err
	}

	resp, err := c.client.Converse(ctx, req)

	if err != nil {
		return nil, convertError(err)
	}

	return &provider.Completion{
		ID:    uuid.NewString(),
		Model: c.model,

		Message: &provider.Message{
			Role: provider.MessageRoleAssistant,

			Content: toContent(resp.Output),
		},

		Usage: toUsage(resp.Usage),
	}, nil
}

func (c *Completer) convertConverseInput(input []provider.Message, options *provider.CompleteOptions) (*bedrockruntime.ConverseInput, error) {
	req := &bedrockruntime.ConverseInput{
		ModelId: aws.String(c.model),
	}

	for _, m := range input {
		switch m.Role {
		case provider.MessageRoleSystem:
			req.System = append(req.System, &types.SystemContentBlockMemberText{
				Value: m.Text(),
			})

		case provider.MessageRoleUser, provider.MessageRoleAssistant:
			role := types.ConversationRoleUser

			if m.Role == provider.MessageRoleAssistant {
				role = types.ConversationRoleAssistant
			}

			req.Messages = append(req.Messages, types.Message{
				Role: role,

				Content: []types.ContentBlock{
					&types.ContentBlockMemberText{
						Value: m.Text(),
					},
				},
			})

		default:
			return nil, errors.New("unsupported message role: " + string(m.Role))
		}
	}

	if options.MaxTokens != nil || options.Temperature != nil {
		req.InferenceConfig = &types.InferenceConfiguration{
			Temperature: options.Temperature,
		}

		if options.MaxTokens != nil {
			req.InferenceConfig.MaxTokens = aws.Int32(int32(*options.MaxTokens))
		}
	}

	return req, nil
}

func toContent(output types.ConverseOutput) []provider.Content {
	message, ok := output.(*types.ConverseOutputMemberMessage)

	if !ok {
		return nil
	}

	var parts []string

	for _, block := range message.Value.Content {
		if text, ok := block.(*types.ContentBlockMemberText); ok {
			parts = append(parts, text.Value)
		}
	}

	return []provider.Content{
		provider.TextContent(strings.Join(parts, "")),
	}
}

func toUsage(usage *types.TokenUsage) *provider.Usage {
	if usage == nil {
		return nil
	}

	return &provider.Usage{
		InputTokens:  int(aws.ToInt32(usage.InputTokens)),
		OutputTokens: int(aws.ToInt32(usage.OutputTokens)),
	}
}

func convertError(err error) error {
	var apierr smithy.APIError

	if errors.As(err, &apierr) {
		return fmt.Errorf("bedrock: %s: %s", apierr.ErrorCode(), apierr.ErrorMessage())
	}

	return err
}
