package process

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"ewintr.nl/tubesum/model"
	"github.com/sashabaranov/go-openai"
)

const (
	DefaultBaseURL     = "https://api.groq.com/openai/v1"
	DefaultModel       = "openai/gpt-oss-20b"
	DefaultTemperature = 0.6
)

var ErrEmptyCompletion = errors.New("model returned no text")

type OpenAIConfig struct {
	BaseURL     string
	Model       string
	Temperature float32
}

// OpenAISummarizer talks to any OpenAI compatible chat endpoint. One client is
// kept per credential.
type OpenAISummarizer struct {
	config  OpenAIConfig
	mu      sync.Mutex
	clients map[string]*openai.Client
}

func NewOpenAISummarizer(config OpenAIConfig) *OpenAISummarizer {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}
	// zero is dropped from the request body, the provider would pick its own
	if config.Temperature == 0 {
		config.Temperature = DefaultTemperature
	}
	return &OpenAISummarizer{
		config:  config,
		clients: map[string]*openai.Client{},
	}
}

func (sum *OpenAISummarizer) Name() string {
	return "openai summarizer"
}

func (sum *OpenAISummarizer) client(credential string) *openai.Client {
	sum.mu.Lock()
	defer sum.mu.Unlock()

	if c, ok := sum.clients[credential]; ok {
		return c
	}
	clientConfig := openai.DefaultConfig(credential)
	clientConfig.BaseURL = sum.config.BaseURL
	c := openai.NewClientWithConfig(clientConfig)
	sum.clients[credential] = c

	return c
}

func (sum *OpenAISummarizer) Summarize(ctx context.Context, session model.Session, transcript string) (string, error) {
	req := BuildRequest(transcript)
	resp, err := sum.client(session.Credential).CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       sum.config.Model,
			Temperature: sum.config.Temperature,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: req.System,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: req.User,
				},
			},
		})
	if err != nil {
		return "", fmt.Errorf("failed to fetch summary: %w", err)
	}

	return parseText(resp)
}

// parseText takes the last choice as plain text.
func parseText(resp openai.ChatCompletionResponse) (string, error) {
	if len(resp.Choices) == 0 {
		return "", ErrEmptyCompletion
	}
	text := strings.TrimSpace(resp.Choices[len(resp.Choices)-1].Message.Content)
	if text == "" {
		return "", ErrEmptyCompletion
	}

	return text, nil
}
