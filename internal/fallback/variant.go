package fallback

import (
	"fmt"

	"github.com/sells-group/creativesync/internal/model"
)

// VariantTone is one of the three A/B voices.
type VariantTone struct {
	Label string
	Tone  model.Tone
}

// VariantTones are the voices used for A/B variants, in order.
var VariantTones = []VariantTone{
	{Label: "Professional & Authoritative", Tone: model.ToneProfessional},
	{Label: "Friendly & Conversational", Tone: model.ToneFriendly},
	{Label: "Urgent & Action-Oriented", Tone: model.ToneUrgent},
}

// Variant returns the template copy for one variant.
func Variant(brief, toneLabel string) string {
	return fmt.Sprintf("%s approach:\n\n%s...\n\nDiscover amazing benefits today! Act now and transform your experience.",
		toneLabel, head(brief, 120))
}

// DemoVariants returns the canned three-variant set with fixed forecasts.
func DemoVariants(brief string) []model.Variant {
	return []model.Variant{
		{
			Number:    1,
			ToneLabel: VariantTones[0].Label,
			Source:    model.ContentSourceFallback,
			Content: fmt.Sprintf("Professional Excellence Awaits\n\n%s... Our data-driven approach ensures optimal results. Experience the difference that expertise makes.\n\nGet Started with Confidence Today",
				head(brief, 100)),
			Prediction: model.Prediction{CTR: 6.8, Engagement: 87, Reach: 125_000, Confidence: 92},
		},
		{
			Number:    2,
			ToneLabel: VariantTones[1].Label,
			Source:    model.ContentSourceFallback,
			Content: fmt.Sprintf("Hey! We've Got Something Special 🎉\n\n%s... We're here to make your life easier and more enjoyable. Join our community of happy customers!\n\nLet's Make It Happen Together!",
				head(brief, 90)),
			Prediction: model.Prediction{CTR: 7.2, Engagement: 91, Reach: 145_000, Confidence: 89},
		},
		{
			Number:    3,
			ToneLabel: VariantTones[2].Label,
			Source:    model.ContentSourceFallback,
			Content: fmt.Sprintf("⚡ Limited Time Offer - Act Now!\n\n%s... Don't miss out on this exclusive opportunity. Time is running out!\n\n🔥 Claim Your Offer Before It's Gone!",
				head(brief, 95)),
			Prediction: model.Prediction{CTR: 8.1, Engagement: 94, Reach: 165_000, Confidence: 95},
		},
	}
}
