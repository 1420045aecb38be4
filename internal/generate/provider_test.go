package generate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/creativesync/internal/model"
	"github.com/sells-group/creativesync/pkg/anthropic"
	"github.com/sells-group/creativesync/pkg/gemini"
)

type fakeGemini struct {
	req  gemini.GenerateRequest
	resp *gemini.GenerateResponse
	err  error
}

func (f *fakeGemini) GenerateContent(_ context.Context, req gemini.GenerateRequest) (*gemini.GenerateResponse, error) {
	f.req = req
	return f.resp, f.err
}

func geminiText(s string) *gemini.GenerateResponse {
	return &gemini.GenerateResponse{Candidates: []gemini.Candidate{{Content: gemini.Content{Parts: []gemini.Part{{Text: s}}}}}}
}

func TestGeminiProvider(t *testing.T) {
	f := &fakeGemini{resp: geminiText("copy")}
	p := NewGeminiProvider(f)
	assert.Equal(t, "gemini", p.Name())

	got, err := p.Complete(context.Background(), Prompt{Kind: KindCampaign, Text: "brief"})
	require.NoError(t, err)
	assert.Equal(t, "copy", got)
	assert.Equal(t, gemini.CampaignConfig(), f.req.GenerationConfig)
	assert.Len(t, f.req.SafetySettings, 4)
	assert.Equal(t, "brief", f.req.Contents[0].Parts[0].Text)

	_, err = p.Complete(context.Background(), Prompt{Kind: KindChat, Text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, gemini.ChatConfig(), f.req.GenerationConfig)
	assert.Nil(t, f.req.SafetySettings)
}

func TestGeminiProvider_Errors(t *testing.T) {
	p := NewGeminiProvider(&fakeGemini{err: gemini.ErrMissingKey})
	_, err := p.Complete(context.Background(), Prompt{Text: "x"})
	assert.ErrorIs(t, err, gemini.ErrMissingKey)

	p = NewGeminiProvider(&fakeGemini{resp: &gemini.GenerateResponse{}})
	_, err = p.Complete(context.Background(), Prompt{Text: "x"})
	assert.ErrorIs(t, err, gemini.ErrNoCandidates)
}

type fakeAnthropic struct {
	req  anthropic.MessageRequest
	resp *anthropic.MessageResponse
	err  error
}

func (f *fakeAnthropic) CreateMessage(_ context.Context, req anthropic.MessageRequest) (*anthropic.MessageResponse, error) {
	f.req = req
	return f.resp, f.err
}

func TestAnthropicProvider(t *testing.T) {
	f := &fakeAnthropic{resp: &anthropic.MessageResponse{Content: []anthropic.ContentBlock{{Type: "text", Text: "copy"}}}}
	p := NewAnthropicProvider(f, "claude-haiku-4-5-20251001", 0)
	assert.Equal(t, "anthropic", p.Name())

	got, err := p.Complete(context.Background(), Prompt{Kind: KindVariant, Text: "brief"})
	require.NoError(t, err)
	assert.Equal(t, "copy", got)
	assert.Equal(t, int64(2048), f.req.MaxTokens)
	assert.InDelta(t, 0.9, *f.req.Temperature, 0.0001)
	assert.Equal(t, "claude-haiku-4-5-20251001", f.req.Model)

	_, err = p.Complete(context.Background(), Prompt{Kind: KindChat, Text: "hi"})
	require.NoError(t, err)
	assert.Equal(t, int64(500), f.req.MaxTokens)
	assert.InDelta(t, 0.7, *f.req.Temperature, 0.0001)
}

func TestAnthropicProvider_Errors(t *testing.T) {
	p := NewAnthropicProvider(&fakeAnthropic{err: errors.New("boom")}, "m", 100)
	_, err := p.Complete(context.Background(), Prompt{Text: "x"})
	assert.Error(t, err)

	p = NewAnthropicProvider(&fakeAnthropic{resp: &anthropic.MessageResponse{}}, "m", 100)
	_, err = p.Complete(context.Background(), Prompt{Text: "x"})
	assert.Error(t, err)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "campaign", KindCampaign.String())
	assert.Equal(t, "variant", KindVariant.String())
	assert.Equal(t, "chat", KindChat.String())
	assert.Equal(t, "unknown", Kind(7).String())
}

func TestCampaignPrompt(t *testing.T) {
	got := CampaignPrompt(testBrief())
	assert.Contains(t, got, "Campaign Name: Spring Bake")
	assert.Contains(t, got, "Target Audience: Clubcard Members")
	assert.Contains(t, got, "Tone: Friendly")
	assert.Contains(t, got, "with a friendly tone for Email.")
	assert.Contains(t, got, "Creates urgency appropriate for Product Launch")
	assert.Contains(t, got, "## 🎨 Visual Direction")

	b := testBrief()
	b.Name = ""
	assert.Contains(t, CampaignPrompt(b), "Campaign Name: New Campaign")
}

func TestPrompts_TrendContext(t *testing.T) {
	b := testBrief()
	b.Trend = "Black Friday Shopping Surge"

	got := CampaignPrompt(b)
	assert.Contains(t, got, "Product/Service: [TREND APPLIED: Black Friday Shopping Surge]\n\nFresh sourdough baked daily")

	// Already-marked briefs are not prefixed twice.
	b.ProductBrief = productBrief(b)
	assert.Equal(t, b.ProductBrief, productBrief(b))

	v := VariantPrompt(b, "Urgent & Action-Oriented", 3)
	assert.Contains(t, v, "Create advertising copy variant 3 with a Urgent & Action-Oriented tone.")
	assert.Contains(t, v, "[TREND APPLIED: Black Friday Shopping Surge]")
}

func TestPrompts_UnknownCategories(t *testing.T) {
	got := CampaignPrompt(model.Brief{ProductBrief: "x"})
	assert.Contains(t, got, "Target Audience: Unknown")
}
