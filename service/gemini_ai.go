package service

import (
	"context"
	"errors"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"github.com/tieubaoca/docqa-be/types"
	"google.golang.org/api/option"
)

// GeminiService is the alternate AIService implementation. It rotates across
// the configured API keys when a call fails.
type GeminiService struct {
	apiKeys        []string
	currentKey     int
	client         *genai.Client
	model          string
	embeddingModel string
	mu             sync.Mutex
}

func NewGeminiService(apiKeys []string, model, embeddingModel string) (*GeminiService, error) {
	if len(apiKeys) == 0 {
		return nil, errors.New("no API keys provided")
	}
	if embeddingModel == "" {
		embeddingModel = "text-embedding-004"
	}

	service := &GeminiService{
		apiKeys:        apiKeys,
		currentKey:     0,
		model:          model,
		embeddingModel: embeddingModel,
	}
	if err := service.initClient(); err != nil {
		return nil, err
	}
	return service, nil
}

func (s *GeminiService) initClient() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(s.apiKeys[s.currentKey]))
	if err != nil {
		return err
	}
	s.client = client
	return nil
}

func (s *GeminiService) rotateAPIKey() error {
	s.mu.Lock()
	s.currentKey = (s.currentKey + 1) % len(s.apiKeys)
	if err := s.client.Close(); err != nil {
		s.mu.Unlock()
		return err
	}
	s.mu.Unlock()
	return s.initClient()
}

func (s *GeminiService) Generate(ctx context.Context, prompt string, opts types.GenerateOptions) (string, error) {
	modelName := s.model
	if opts.Model != "" {
		modelName = opts.Model
	}
	model := s.client.GenerativeModel(modelName)
	model.SetTemperature(opts.Temperature)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		// Try rotating API key if there's an error
		if err := s.rotateAPIKey(); err != nil {
			return "", err
		}
		model = s.client.GenerativeModel(modelName)
		model.SetTemperature(opts.Temperature)
		resp, err = model.GenerateContent(ctx, genai.Text(prompt))
		if err != nil {
			return "", err
		}
	}

	if len(resp.Candidates) == 0 {
		return "", errors.New("no response generated")
	}

	content := ""
	for _, cand := range resp.Candidates {
		if cand.Content != nil {
			for _, part := range cand.Content.Parts {
				if text, ok := part.(genai.Text); ok {
					content += string(text)
				}
			}
		}
	}
	return content, nil
}

func (s *GeminiService) Embed(ctx context.Context, text string) ([]float32, error) {
	em := s.client.EmbeddingModel(s.embeddingModel)
	resp, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, err
	}
	if resp.Embedding == nil {
		return nil, errors.New("no embedding generated")
	}
	return resp.Embedding.Values, nil
}

func (s *GeminiService) EmbeddingModel() string {
	return s.embeddingModel
}
