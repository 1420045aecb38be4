package gemini

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"google.golang.org/genai"

	"github.com/sells-group/creativesync/internal/resilience"
)

const (
	defaultModel      = "gemini-2.5-flash"
	defaultAPIVersion = "v1beta"

	// PlaceholderKey is the unconfigured key shipped in sample configs.
	PlaceholderKey = "YOUR_GEMINI_API_KEY_HERE"
	// MinKeyLength is the shortest key accepted as configured.
	MinKeyLength = 20
)

var (
	// ErrMissingKey is returned before any network call when no usable key is set.
	ErrMissingKey = eris.New("gemini: api key not configured")
	// ErrNoCandidates is returned when a response carries no generated text.
	ErrNoCandidates = eris.New("gemini: invalid response format")
)

// Client generates content against the Gemini API.
type Client interface {
	GenerateContent(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// GenerateRequest is a generateContent call.
type GenerateRequest struct {
	Contents         []Content
	GenerationConfig GenerationConfig
	SafetySettings   []SafetySetting
}

// Content is one turn of input or output.
type Content struct {
	Role  string
	Parts []Part
}

// Part is a text fragment of a Content.
type Part struct {
	Text string
}

// GenerationConfig holds sampling parameters. Zero TopK and TopP are left
// to the model defaults.
type GenerationConfig struct {
	Temperature     float32
	TopK            float32
	TopP            float32
	MaxOutputTokens int32
}

// SafetySetting sets the block threshold for one harm category.
type SafetySetting struct {
	Category  genai.HarmCategory
	Threshold genai.HarmBlockThreshold
}

// GenerateResponse is the response from generateContent.
type GenerateResponse struct {
	Candidates []Candidate
}

// Candidate is a single generated completion.
type Candidate struct {
	Content      Content
	FinishReason string
}

// Text returns the first part of the first candidate.
func (r *GenerateResponse) Text() (string, error) {
	if r == nil || len(r.Candidates) == 0 || len(r.Candidates[0].Content.Parts) == 0 {
		return "", ErrNoCandidates
	}
	return r.Candidates[0].Content.Parts[0].Text, nil
}

// DefaultSafetySettings disables blocking for the four harm categories.
func DefaultSafetySettings() []SafetySetting {
	return []SafetySetting{
		{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockNone},
		{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockNone},
		{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockNone},
		{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockNone},
	}
}

// CampaignConfig is the sampling used for long-form campaign copy.
func CampaignConfig() GenerationConfig {
	return GenerationConfig{Temperature: 0.9, TopK: 40, TopP: 0.95, MaxOutputTokens: 2048}
}

// ChatConfig is the sampling used for assistant replies.
func ChatConfig() GenerationConfig {
	return GenerationConfig{Temperature: 0.7, MaxOutputTokens: 500}
}

// TextRequest builds a single-turn request for prompt.
func TextRequest(prompt string, cfg GenerationConfig, safety []SafetySetting) GenerateRequest {
	return GenerateRequest{
		Contents:         []Content{{Role: string(genai.RoleUser), Parts: []Part{{Text: prompt}}}},
		GenerationConfig: cfg,
		SafetySettings:   safety,
	}
}

// KeyConfigured reports whether key looks like a real API key.
func KeyConfigured(key string) bool {
	return key != "" && key != PlaceholderKey && len(key) >= MinKeyLength
}

// Option configures the client.
type Option func(*sdkClient)

// WithBaseURL overrides the API endpoint. Empty keeps the SDK default.
func WithBaseURL(url string) Option {
	return func(c *sdkClient) {
		c.baseURL = url
	}
}

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(c *sdkClient) {
		c.model = model
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *sdkClient) {
		c.http = hc
	}
}

// sdkClient implements Client on google.golang.org/genai. The key travels
// in the x-goog-api-key header, never in the URL.
type sdkClient struct {
	apiKey  string
	baseURL string
	model   string
	http    *http.Client

	client  *genai.Client
	initErr error
}

// NewClient creates a Gemini API client. An unusable key yields a client
// whose calls fail with ErrMissingKey.
func NewClient(apiKey string, opts ...Option) Client {
	c := &sdkClient{
		apiKey: apiKey,
		model:  defaultModel,
		http:   &http.Client{Timeout: 60 * time.Second},
	}
	for _, o := range opts {
		o(c)
	}
	if c.model == "" {
		c.model = defaultModel
	}
	if !KeyConfigured(apiKey) {
		return c
	}

	c.client, c.initErr = genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.http,
		HTTPOptions: genai.HTTPOptions{
			BaseURL:    c.baseURL,
			APIVersion: defaultAPIVersion,
		},
	})
	return c
}

func (c *sdkClient) GenerateContent(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	if !KeyConfigured(c.apiKey) {
		return nil, ErrMissingKey
	}
	if c.initErr != nil {
		return nil, eris.Wrap(c.initErr, "gemini: create client")
	}
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "gemini: generate content")
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, toSDKContents(req.Contents), toSDKConfig(req))
	if err != nil {
		return nil, classify(err)
	}
	return fromSDKResponse(resp), nil
}

// classify wraps SDK errors, marking retryable API statuses as transient.
func classify(err error) error {
	code, msg, ok := apiErrorOf(err)
	if !ok {
		return eris.Wrap(err, "gemini: generate content")
	}
	if msg == "" {
		msg = "Unknown error"
	}
	wrapped := eris.Errorf("gemini: unexpected status %d: %s", code, msg)
	if resilience.IsTransientHTTPStatus(code) {
		return resilience.NewTransientError(wrapped, code)
	}
	return wrapped
}

func apiErrorOf(err error) (int, string, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, apiErr.Message, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, apiErrPtr.Message, true
	}
	return 0, "", false
}

func toSDKContents(contents []Content) []*genai.Content {
	out := make([]*genai.Content, 0, len(contents))
	for _, c := range contents {
		role := c.Role
		if role == "" {
			role = string(genai.RoleUser)
		}
		parts := make([]*genai.Part, 0, len(c.Parts))
		for _, p := range c.Parts {
			parts = append(parts, genai.NewPartFromText(p.Text))
		}
		out = append(out, genai.NewContentFromParts(parts, genai.Role(role)))
	}
	return out
}

func toSDKConfig(req GenerateRequest) *genai.GenerateContentConfig {
	gc := req.GenerationConfig
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(gc.Temperature),
		MaxOutputTokens: gc.MaxOutputTokens,
	}
	if gc.TopK > 0 {
		cfg.TopK = genai.Ptr(gc.TopK)
	}
	if gc.TopP > 0 {
		cfg.TopP = genai.Ptr(gc.TopP)
	}
	for _, s := range req.SafetySettings {
		cfg.SafetySettings = append(cfg.SafetySettings, &genai.SafetySetting{
			Category:  s.Category,
			Threshold: s.Threshold,
		})
	}
	return cfg
}

func fromSDKResponse(resp *genai.GenerateContentResponse) *GenerateResponse {
	out := &GenerateResponse{}
	if resp == nil {
		return out
	}
	for _, cand := range resp.Candidates {
		if cand == nil {
			continue
		}
		c := Candidate{FinishReason: string(cand.FinishReason)}
		if cand.Content != nil {
			c.Content.Role = cand.Content.Role
			for _, p := range cand.Content.Parts {
				if p != nil && p.Text != "" {
					c.Content.Parts = append(c.Content.Parts, Part{Text: p.Text})
				}
			}
		}
		out.Candidates = append(out.Candidates, c)
	}
	return out
}
