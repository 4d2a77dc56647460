package service

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"
	"github.com/tieubaoca/docqa-be/types"
)

var systemMessageDocumentAssistant = openai.ChatCompletionMessage{
	Role:    openai.ChatMessageRoleSystem,
	Content: "You are a document question answering assistant. Answer strictly from the provided context. If the context does not contain the answer, say so instead of guessing.",
}

type OpenAIService struct {
	client         *openai.Client
	model          string
	embeddingModel string
}

func NewOpenAIService(baseURL, apiKey, model, embeddingModel string) *OpenAIService {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL // Set this to your local LLM server URL
	}
	client := openai.NewClientWithConfig(config)
	return &OpenAIService{
		client:         client,
		model:          model,
		embeddingModel: embeddingModel,
	}
}

func (s *OpenAIService) Generate(ctx context.Context, prompt string, opts types.GenerateOptions) (string, error) {
	model := s.model
	if opts.Model != "" {
		model = opts.Model
	}

	resp, err := s.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Messages: []openai.ChatCompletionMessage{
				systemMessageDocumentAssistant,
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			Model:       model,
			Temperature: opts.Temperature,
		},
	)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response generated")
	}

	return resp.Choices[0].Message.Content, nil
}

func (s *OpenAIService) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := s.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(s.embeddingModel),
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("no embedding generated")
	}
	return resp.Data[0].Embedding, nil
}

func (s *OpenAIService) EmbeddingModel() string {
	return s.embeddingModel
}
