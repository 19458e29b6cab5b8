package narrative

import (
	"context"
	"fmt"

	"github.com/daylightco/finops-reporter/internal/config"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// GeminiGenerator generates report prose with the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, cfg config.Narrative) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create genai client")
	}

	return &GeminiGenerator{
		client: client,
		model:  cfg.Model,
	}, nil
}

func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: prompt},
			},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, nil)
	if err != nil {
		logrus.WithError(err).Error("narrative: generate content failed")
		return "", errors.Wrap(err, "generate content")
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model %s", g.model)
	}

	return text, nil
}
