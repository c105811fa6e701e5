package groq

import (
	"context"
	"errors"

	"github.com/margdarshak/disha/generator"
	"github.com/sashabaranov/go-openai"
)

// Groq exposes an OpenAI-compatible chat completions API.
const (
	defaultBaseURL = "https://api.groq.com/openai/v1"
	defaultModel   = "llama-3.3-70b-versatile"
)

type groqGenerator struct {
	options generator.Options
	client  *openai.Client
}

func (g *groqGenerator) Generate(ctx context.Context, req generator.Request) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, len(req.History)+2)

	if len(req.System) > 0 {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}

	for _, msg := range req.History {
		role := openai.ChatMessageRoleUser
		if msg.Role == generator.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Content,
		})
	}

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Question,
	})

	rsp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.options.Model,
		Messages:    messages,
		Temperature: g.options.Temperature,
		MaxTokens:   g.options.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	if len(rsp.Choices) == 0 || len(rsp.Choices[0].Message.Content) == 0 {
		return "", errors.New("no response from Groq")
	}

	return rsp.Choices[0].Message.Content, nil
}

func NewGenerator(opts ...generator.Option) generator.Generator {
	options := generator.NewOptions(opts...)

	if len(options.Model) == 0 {
		options.Model = defaultModel
	}

	g := &groqGenerator{
		options: options,
	}

	config := openai.DefaultConfig(options.ApiKey)
	config.BaseURL = defaultBaseURL

	g.client = openai.NewClientWithConfig(config)

	return g
}
