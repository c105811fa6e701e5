package openai

import (
	"context"
	"errors"

	"github.com/margdarshak/disha/generator"
	"github.com/sashabaranov/go-openai"
)

const defaultModel = "gpt-4o-mini"

type openAIGenerator struct {
	options generator.Options
	client  *openai.Client
}

func (g *openAIGenerator) Generate(ctx context.Context, req generator.Request) (string, error) {
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
		return "", errors.New("no response from OpenAI")
	}

	return rsp.Choices[0].Message.Content, nil
}

func NewGenerator(opts ...generator.Option) generator.Generator {
	options := generator.NewOptions(opts...)

	if len(options.Model) == 0 {
		options.Model = defaultModel
	}

	g := &openAIGenerator{
		options: options,
	}

	g.client = openai.NewClient(options.ApiKey)

	return g
}
