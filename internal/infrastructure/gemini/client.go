package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/scoutlane/talent-backend/internal/config"
	"github.com/scoutlane/talent-backend/internal/domain"
	"google.golang.org/api/option"
)

// Client wraps the Gemini API for both embedding and text generation.
// It satisfies ai.Embedder and ai.Generator.
type Client struct {
	client     *genai.Client
	embedding  *genai.EmbeddingModel
	generative *genai.GenerativeModel
	cfg        *config.AIConfig
}

func NewClient(ctx context.Context, cfg *config.AIConfig) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	generative := client.GenerativeModel(cfg.GenerativeModel)
	generative.SetTemperature(0.7)

	return &Client{
		client:     client,
		embedding:  client.EmbeddingModel(cfg.EmbeddingModel),
		generative: generative,
		cfg:        cfg,
	}, nil
}

func (c *Client) Close() {
	c.client.Close()
}

func (c *Client) Configured() bool { return true }

// EmbedText computes the embedding vector for a single text blob.
func (c *Client) EmbedText(ctx context.Context, text string) ([]float64, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	resp, err := c.embedding.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEmbeddingBackend, err)
	}
	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("%w: empty embedding returned", domain.ErrEmbeddingBackend)
	}

	vector := make([]float64, len(resp.Embedding.Values))
	for i, v := range resp.Embedding.Values {
		vector[i] = float64(v)
	}
	return vector, nil
}

// GenerateText runs one generation call and returns the concatenated
// text parts of the first candidate.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.RequestTimeout)
	defer cancel()

	resp, err := c.generative.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generation failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini returned no content")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			sb.WriteString(string(txt))
		}
	}
	return strings.TrimSpace(sb.String()), nil
}
