// Package generate produces campaign copy, A/B variants, and assistant
// replies. Provider failures never surface: template copy from
// internal/fallback takes their place and is scored the same way.
package generate

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/creativesync/internal/fallback"
	"github.com/sells-group/creativesync/internal/model"
	"github.com/sells-group/creativesync/internal/render"
	"github.com/sells-group/creativesync/internal/resilience"
	"github.com/sells-group/creativesync/internal/scorer"
)

// ErrMissingBrief is returned when a brief has no product description.
var ErrMissingBrief = eris.New("generate: product brief is required")

// minContentLength is the shortest provider output accepted as a campaign.
const minContentLength = 51

// DefaultVariantDelay spaces variant requests.
const DefaultVariantDelay = 500 * time.Millisecond

// Creative is generated campaign copy with its forecast.
type Creative struct {
	ID          string              `json:"id"`
	Name        string              `json:"title"`
	Content     string              `json:"content"`
	HTML        string              `json:"html"`
	Source      model.ContentSource `json:"source"`
	Brief       model.Brief         `json:"metadata"`
	Prediction  model.Prediction    `json:"predictions"`
	GeneratedAt time.Time           `json:"created"`
}

// Campaign converts the creative into a storable campaign record.
func (c *Creative) Campaign(status model.CampaignStatus, metrics model.Metrics) model.Campaign {
	return model.Campaign{
		ID:         c.ID,
		Name:       c.Name,
		Content:    c.Content,
		Source:     c.Source,
		Brief:      c.Brief,
		Prediction: c.Prediction,
		Metrics:    metrics,
		Status:     status,
		CreatedAt:  c.GeneratedAt,
	}
}

// Service orchestrates generation against a Provider.
type Service struct {
	mu       sync.RWMutex
	provider Provider

	breaker  *resilience.CircuitBreaker
	retry    resilience.RetryConfig
	delay    time.Duration
	timeout  time.Duration
	rng      scorer.RandSource
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithRand sets the jitter source used for scoring.
func WithRand(rng scorer.RandSource) Option {
	return func(s *Service) { s.rng = rng }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithVariantDelay sets the pause between variant requests.
func WithVariantDelay(d time.Duration) Option {
	return func(s *Service) { s.delay = d }
}

// WithTimeout bounds each provider call.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) { s.timeout = d }
}

// WithBreaker guards provider calls with cb.
func WithBreaker(cb *resilience.CircuitBreaker) Option {
	return func(s *Service) { s.breaker = cb }
}

// WithRetry sets the retry policy for transient provider errors.
func WithRetry(cfg resilience.RetryConfig) Option {
	return func(s *Service) { s.retry = cfg }
}

// NewService creates a Service. A nil provider means template copy only.
func NewService(p Provider, opts ...Option) *Service {
	s := &Service{
		provider: p,
		retry:    resilience.DefaultRetryConfig(),
		delay:    DefaultVariantDelay,
		timeout:  60 * time.Second,
		rng:      scorer.GlobalRand(),
		now:      time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	if s.breaker == nil {
		s.breaker = resilience.NewCircuitBreaker(resilience.NewBreakerConfig(0, 0))
	}
	return s
}

// SetProvider swaps the provider used by subsequent calls. Nil switches to
// template copy.
func (s *Service) SetProvider(p Provider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.provider = p
}

func (s *Service) currentProvider() Provider {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.provider
}

// ProviderName reports the configured provider, or "fallback".
func (s *Service) ProviderName() string {
	p := s.currentProvider()
	if p == nil {
		return "fallback"
	}
	return p.Name()
}

// complete runs one guarded provider call.
func (s *Service) complete(ctx context.Context, p Prompt) (string, error) {
	provider := s.currentProvider()
	if provider == nil {
		return "", eris.New("generate: no provider configured")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	return resilience.Call(ctx, s.breaker, func(ctx context.Context) (string, error) {
		retry := s.retry
		retry.OnRetry = resilience.RetryLogger(provider.Name(), p.Kind.String())
		return resilience.Retry(ctx, retry, func(ctx context.Context) (string, error) {
			return provider.Complete(ctx, p)
		})
	})
}

// Campaign generates a full campaign for b.
func (s *Service) Campaign(ctx context.Context, b model.Brief) (*Creative, error) {
	if strings.TrimSpace(b.ProductBrief) == "" {
		return nil, ErrMissingBrief
	}

	now := s.now()
	if b.Name == "" {
		campaignType := b.CampaignType
		if campaignType == "" {
			campaignType = "Campaign"
		}
		b.Name = fmt.Sprintf("%s - %d", campaignType, now.UnixMilli())
	}

	log := zap.L().With(zap.String("campaign", b.Name), zap.String("provider", s.ProviderName()))

	source := model.ContentSourceAI
	content, err := s.complete(ctx, Prompt{Kind: KindCampaign, Text: CampaignPrompt(b)})
	switch {
	case err != nil:
		log.Warn("generate: provider failed, using template copy", zap.Error(err))
		content, source = fallback.Campaign(b), model.ContentSourceFallback
	case utf8.RuneCountInString(content) < minContentLength:
		log.Warn("generate: provider returned incomplete content, using template copy",
			zap.Int("length", utf8.RuneCountInString(content)))
		content, source = fallback.Campaign(b), model.ContentSourceFallback
	}

	pred := scorer.Score(scorer.InputFromBrief(content, b), s.rng)
	log.Info("generate: campaign ready",
		zap.String("source", string(source)),
		zap.Float64("ctr", pred.CTR),
		zap.Int("reach", pred.Reach),
	)

	return &Creative{
		ID:          uuid.NewString(),
		Name:        b.Name,
		Content:     content,
		HTML:        render.HTML(content),
		Source:      source,
		Brief:       b,
		Prediction:  pred,
		GeneratedAt: now,
	}, nil
}

// Variants generates three A/B variants of b, one per tone in
// fallback.VariantTones, spaced by the variant delay.
func (s *Service) Variants(ctx context.Context, b model.Brief) ([]model.Variant, error) {
	if strings.TrimSpace(b.ProductBrief) == "" {
		return nil, ErrMissingBrief
	}

	if s.currentProvider() == nil {
		variants := fallback.DemoVariants(b.ProductBrief)
		for i := range variants {
			variants[i].ID = uuid.NewString()
			variants[i].Label = variantLabel(variants[i].Number)
		}
		return variants, nil
	}

	limit := rate.Inf
	if s.delay > 0 {
		limit = rate.Every(s.delay)
	}
	limiter := rate.NewLimiter(limit, 1)

	variants := make([]model.Variant, 0, len(fallback.VariantTones))
	for i, vt := range fallback.VariantTones {
		if err := limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "generate: wait for variant slot")
		}

		n := i + 1
		source := model.ContentSourceAI
		content, err := s.complete(ctx, Prompt{Kind: KindVariant, Text: VariantPrompt(b, vt.Label, n)})
		content = strings.TrimSpace(content)
		if err != nil || content == "" {
			zap.L().Warn("generate: variant failed, using template copy",
				zap.Int("variant", n), zap.String("tone", vt.Label), zap.Error(err))
			content, source = fallback.Variant(b.ProductBrief, vt.Label), model.ContentSourceFallback
		}

		vb := b
		vb.Tone = vt.Tone
		variants = append(variants, model.Variant{
			ID:         uuid.NewString(),
			Number:     n,
			Label:      variantLabel(n),
			ToneLabel:  vt.Label,
			Content:    content,
			Source:     source,
			Prediction: scorer.Score(scorer.InputFromBrief(content, vb), s.rng),
		})
	}

	return variants, nil
}

func variantLabel(n int) string {
	return fmt.Sprintf("Version %c", 'A'+rune(n-1))
}

// Chat answers msg. It never fails: provider errors fall back to keyword
// replies built from c.
func (s *Service) Chat(ctx context.Context, msg string, c fallback.ChatContext) string {
	msg = strings.TrimSpace(msg)
	if msg == "" {
		return fallback.Chat(msg, c)
	}

	reply, err := s.complete(ctx, Prompt{Kind: KindChat, Text: ChatPrompt(msg)})
	if err != nil || strings.TrimSpace(reply) == "" {
		zap.L().Debug("generate: chat provider unavailable, using keyword reply", zap.Error(err))
		return fallback.Chat(msg, c)
	}
	return strings.TrimSpace(reply)
}
