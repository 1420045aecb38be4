// Package scorer derives synthetic performance forecasts for generated copy.
//
// The forecast is a heuristic: a platform base rate, adjusted by tone and
// audience, plus fixed increments for text signals and bounded jitter. It is
// a total function over any input and performs no I/O.
package scorer

import (
	"math"
	"math/rand/v2"

	"github.com/sells-group/creativesync/internal/model"
)

// RandSource supplies jitter in [0, 1). *rand.Rand satisfies it.
type RandSource interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// GlobalRand returns a RandSource backed by the process-wide generator.
func GlobalRand() RandSource { return globalRand{} }

// NewRand returns a seeded RandSource for reproducible runs.
func NewRand(seed uint64) RandSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Input is the text and categories a forecast is computed from.
type Input struct {
	Text     string
	Platform model.Platform
	Audience model.Audience
	Tone     model.Tone
}

// InputFromBrief pairs generated text with the categories of its brief.
func InputFromBrief(text string, b model.Brief) Input {
	return Input{Text: text, Platform: b.Platform, Audience: b.Audience, Tone: b.Tone}
}

// Breakdown is the deterministic part of a forecast, before jitter.
type Breakdown struct {
	Signals       Signals `json:"signals"`
	BaseCTR       float64 `json:"base_ctr"`
	ToneBonus     float64 `json:"tone_bonus"`
	AudienceBonus float64 `json:"audience_bonus"`
	SignalBonus   float64 `json:"signal_bonus"`
}

// CTR returns the pre-noise, unclamped click-through rate.
func (b Breakdown) CTR() float64 {
	return b.BaseCTR + b.ToneBonus + b.AudienceBonus + b.SignalBonus
}

// Baseline computes the lookup and signal contributions for in.
func Baseline(in Input) Breakdown {
	sig := Detect(in.Text)

	var bonus float64
	if sig.Urgency {
		bonus += urgencyBonus
	}
	if sig.Benefit {
		bonus += benefitBonus
	}
	if sig.Emoji {
		bonus += emojiBonus
	}
	if sig.Numeric {
		bonus += numericBonus
	}
	if sig.PunchyPunctuation() {
		bonus += exclamationBonus
	}
	if sig.SweetSpotLength() {
		bonus += lengthBonus
	}

	return Breakdown{
		Signals:       sig,
		BaseCTR:       baseCTR(in.Platform),
		ToneBonus:     toneCTRBonus[in.Tone],
		AudienceBonus: audienceCTRBonus[in.Audience],
		SignalBonus:   bonus,
	}
}

// Score produces a complete forecast for in. A nil rng uses GlobalRand.
func Score(in Input, rng RandSource) model.Prediction {
	if rng == nil {
		rng = GlobalRand()
	}
	b := Baseline(in)

	ctr := b.CTR() + rng.Float64()*CTRNoise
	ctr = round2(clamp(ctr, MinCTR, MaxCTR))

	reach := int(math.Floor(baseReach(in.Platform)*reachBoost(in.Audience) + rng.Float64()*reachNoise))

	engagement := baseEngagement
	if b.Signals.Urgency && b.Signals.Benefit {
		engagement += comboEngagementBonus
	}
	if in.Tone == model.TonePlayful || in.Tone == model.ToneFriendly {
		engagement += toneEngagementBonus
	}
	if b.Signals.Emoji {
		engagement += emojiEngagementBonus
	}
	engagement = min(engagement+int(math.Floor(rng.Float64()*engagementNoise)), maxEngagement)

	confidence := min(baseConfidence+confidencePerHit*b.Signals.Hits(), maxConfidence)

	return model.Prediction{
		CTR:        ctr,
		Reach:      reach,
		Engagement: engagement,
		Confidence: confidence,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
