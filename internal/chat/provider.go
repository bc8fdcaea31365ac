package chat

import (
	"context"
	"strings"

	"google.golang.org/genai"

	"github.com/learnhub-dev/learnhub/internal/apperr"
	"github.com/learnhub-dev/learnhub/internal/config"
)

// Provider answers a study question given the assembled prompt.
type Provider interface {
	SendPrompt(ctx context.Context, system, user string) (string, error)
}

type geminiProvider struct {
	client *genai.Client
}

func NewGeminiProvider(ctx context.Context) (Provider, error) {
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, apperr.Upstream("failed to create Gemini client", err)
	}
	return &geminiProvider{client: client}, nil
}

func (p *geminiProvider) SendPrompt(ctx context.Context, system, user string) (string, error) {
	log := config.WithContext(ctx)
	prompt := system + "\n\n" + user

	result, err := p.client.Models.GenerateContent(
		ctx,
		"gemini-2.0-flash",
		genai.Text(prompt),
		nil,
	)
	if err != nil {
		log.WithError(err).Error("Gemini generation failed")
		return "", apperr.Upstream("assistant is unavailable", err)
	}

	raw := strings.TrimSpace(result.Text())
	if raw == "" {
		return "", apperr.Upstream("assistant returned an empty answer", nil)
	}
	return raw, nil
}
