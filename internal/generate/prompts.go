package generate

import (
	"fmt"
	"strings"

	"github.com/sells-group/creativesync/internal/model"
)

const trendMarker = "[TREND APPLIED"

// productBrief returns the brief text sent to the provider, prefixed with
// the applied trend when there is one.
func productBrief(b model.Brief) string {
	if b.Trend == "" || strings.Contains(b.ProductBrief, trendMarker) {
		return b.ProductBrief
	}
	return fmt.Sprintf("%s: %s]\n\n%s", trendMarker, b.Trend, b.ProductBrief)
}

// CampaignPrompt builds the full-campaign copywriting prompt.
func CampaignPrompt(b model.Brief) string {
	name := b.Name
	if name == "" {
		name = "New Campaign"
	}
	audience := b.Audience.String()
	tone := strings.ToLower(b.Tone.String())
	platform := b.Platform.String()
	brief := productBrief(b)

	return fmt.Sprintf(`You are an expert advertising copywriter for Tesco Retail Media. Create a compelling campaign with these EXACT details:

Campaign Name: %[1]s
Product/Service: %[2]s
Target Audience: %[3]s
Campaign Type: %[4]s
Tone: %[5]s
Platform: %[6]s

IMPORTANT: Tailor the content specifically for %[3]s with a %[7]s tone for %[6]s.

Generate a complete campaign with:

## 🎯 Headline
Create ONE attention-grabbing headline (8-12 words max) that speaks directly to %[3]s

## 📢 Subheadline
One supporting subheadline (15-20 words) that reinforces the main message

## 📝 Main Copy
Write 2-3 short paragraphs (4-5 sentences each) of persuasive copy that:
- Addresses %[3]s pain points
- Highlights product benefits from the brief: %[2]s
- Uses %[7]s language
- Creates urgency appropriate for %[4]s

## 🎬 Call-to-Action
ONE strong, action-oriented CTA (5-8 words) for %[6]s

## ✨ Key Benefits
List EXACTLY 4 specific benefits as short bullet points (5-7 words each)

## 📱 Hashtags
5 relevant hashtags for %[6]s

## 🎨 Visual Direction
2-3 sentences describing ideal imagery for %[3]s

Make it sound natural, not robotic. Focus on %[3]s needs. Use %[7]s language throughout.`,
		name, brief, audience, b.CampaignType, b.Tone.String(), platform, tone)
}

// VariantPrompt builds the short-form prompt for A/B variant n.
func VariantPrompt(b model.Brief, toneLabel string, n int) string {
	name := b.Name
	if name == "" {
		name = "New Campaign"
	}
	return fmt.Sprintf(`Create advertising copy variant %d with a %s tone.

Product/Service: %s
Campaign: %s

Generate ONLY:
1. A compelling headline (8-10 words)
2. Two sentences of persuasive copy
3. One strong call-to-action

Keep it concise and optimized for %s style. Make each variant distinctly different.`,
		n, toneLabel, productBrief(b), name, toneLabel)
}

// ChatPrompt wraps a user question for the assistant.
func ChatPrompt(msg string) string {
	return "You are CreativeSync AI assistant. User asked: " + msg
}
