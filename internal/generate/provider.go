package generate

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/creativesync/pkg/anthropic"
	"github.com/sells-group/creativesync/pkg/gemini"
)

// Kind selects sampling settings for a prompt.
type Kind int

const (
	KindCampaign Kind = iota
	KindVariant
	KindChat
)

func (k Kind) String() string {
	switch k {
	case KindCampaign:
		return "campaign"
	case KindVariant:
		return "variant"
	case KindChat:
		return "chat"
	default:
		return "unknown"
	}
}

// Prompt is a single generation request.
type Prompt struct {
	Kind Kind
	Text string
}

// Provider completes prompts against a hosted model.
type Provider interface {
	Name() string
	Complete(ctx context.Context, p Prompt) (string, error)
}

// GeminiProvider adapts a Gemini client.
type GeminiProvider struct {
	client gemini.Client
}

// NewGeminiProvider wraps client as a Provider.
func NewGeminiProvider(client gemini.Client) *GeminiProvider {
	return &GeminiProvider{client: client}
}

// Name implements Provider.
func (g *GeminiProvider) Name() string { return "gemini" }

// Complete implements Provider. Chat prompts use the lighter chat sampling
// and no safety overrides.
func (g *GeminiProvider) Complete(ctx context.Context, p Prompt) (string, error) {
	req := gemini.TextRequest(p.Text, gemini.CampaignConfig(), gemini.DefaultSafetySettings())
	if p.Kind == KindChat {
		req = gemini.TextRequest(p.Text, gemini.ChatConfig(), nil)
	}

	resp, err := g.client.GenerateContent(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.Text()
}

// AnthropicProvider adapts an Anthropic client.
type AnthropicProvider struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewAnthropicProvider wraps client as a Provider.
func NewAnthropicProvider(client anthropic.Client, model string, maxTokens int64) *AnthropicProvider {
	if maxTokens <= 0 {
		maxTokens = 2048
	}
	return &AnthropicProvider{client: client, model: model, maxTokens: maxTokens}
}

// Name implements Provider.
func (a *AnthropicProvider) Name() string { return "anthropic" }

// Complete implements Provider.
func (a *AnthropicProvider) Complete(ctx context.Context, p Prompt) (string, error) {
	temp := 0.9
	maxTokens := a.maxTokens
	if p.Kind == KindChat {
		temp = 0.7
		maxTokens = min(maxTokens, 500)
	}

	resp, err := a.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       a.model,
		MaxTokens:   maxTokens,
		Messages:    []anthropic.Message{{Role: "user", Content: p.Text}},
		Temperature: &temp,
	})
	if err != nil {
		return "", err
	}
	resp.Usage.LogCost(a.model, p.Kind.String())

	text := resp.Text()
	if text == "" {
		return "", eris.New("anthropic: empty response")
	}
	return text, nil
}
