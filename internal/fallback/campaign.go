// Package fallback produces template copy when no provider output is usable.
// Every function is deterministic and never fails.
package fallback

import (
	"fmt"
	"strings"

	"github.com/sells-group/creativesync/internal/model"
)

type toneStyle struct {
	headline string
	prefix   string
	style    string
}

var toneStyles = map[model.Tone]toneStyle{
	model.ToneProfessional: {"Excellence in Every Detail", "Discover premium", "sophisticated and reliable"},
	model.ToneFriendly:     {"Hey There! We've Got Something Special", "We're excited to share", "warm and approachable"},
	model.ToneUrgent:       {"⚡ Act Fast - Limited Time Only!", "Don't miss out on", "time-sensitive and compelling"},
	model.TonePlayful:      {"🎉 Something Amazing Just Dropped!", "Get ready for", "fun and energetic"},
	model.ToneLuxury:       {"Indulge in Premium Excellence", "Experience the finest", "exclusive and refined"},
}

var audienceApproach = map[model.Audience]string{
	model.AudienceClubcardMembers: "exclusive member benefits and personalized rewards",
	model.AudienceYoungFamilies:   "family-friendly savings and convenient solutions",
	model.AudiencePremiumShoppers: "curated selections and premium quality",
	model.AudienceBudgetConscious: "incredible value and smart savings",
	model.AudienceHealthFocused:   "wholesome choices and wellness benefits",
}

const defaultApproach = "amazing benefits"

// Campaign returns a complete Markdown campaign built from the brief alone.
func Campaign(b model.Brief) string {
	ts, ok := toneStyles[b.Tone]
	if !ok {
		ts = toneStyles[model.ToneProfessional]
	}
	approach, ok := audienceApproach[b.Audience]
	if !ok {
		approach = defaultApproach
	}

	audience := b.Audience.String()
	platform := b.Platform.String()
	campaignType := b.CampaignType
	if campaignType == "" {
		campaignType = "Campaign"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## 🎯 %s\n\n", ts.headline)
	fmt.Fprintf(&sb, "**Perfect for %s - %s**\n\n", audience, campaignType)

	sb.WriteString("## 📢 Subheadline\n")
	fmt.Fprintf(&sb, "%s %s - designed specifically for %s\n\n", ts.prefix, Truncate(b.ProductBrief, 80), audience)

	sb.WriteString("## 📝 Main Copy\n\n")
	sb.WriteString(b.ProductBrief + "\n\n")
	fmt.Fprintf(&sb, "Our %s brings you %s. With a %s approach, we ensure every %s customer gets exactly what they need.\n\n",
		strings.ToLower(campaignType), approach, ts.style, audience)
	sb.WriteString("Whether you're shopping online or in-store, enjoy seamless access to exclusive offers. Our Clubcard integration means more rewards, more savings, and more reasons to choose us every time.\n\n")
	fmt.Fprintf(&sb, "Join thousands of satisfied %s customers who've already discovered the difference. Your perfect shopping experience starts here.\n\n", audience)

	sb.WriteString("## 🎬 Call-to-Action\n")
	fmt.Fprintf(&sb, "**Shop Now and Save Big - %s Exclusive!**\n\n", platform)

	sb.WriteString("## ✨ Key Benefits\n")
	fmt.Fprintf(&sb, "• **%s Exclusive:** Tailored specifically for your needs\n", audience)
	sb.WriteString("• **Instant Savings:** Up to 50% off on selected items\n")
	sb.WriteString("• **Clubcard Rewards:** Earn points on every purchase\n")
	fmt.Fprintf(&sb, "• **%s Special:** Unique offers only on this platform\n\n", platform)

	sb.WriteString("## 📱 Hashtags\n")
	fmt.Fprintf(&sb, "#%s #%s #TescoOffers #SmartShopping #ExclusiveDeals\n\n", hashtag(campaignType), hashtag(audience))

	sb.WriteString("## 🎨 Visual Direction\n")
	fmt.Fprintf(&sb, "Feature vibrant %s visuals showcasing %s customers enjoying the benefits. Include clear product shots with Clubcard branding, using Tesco's signature blue and red colors. Add lifestyle imagery that resonates with %s while maintaining a %s aesthetic.",
		strings.ToLower(platform), strings.ToLower(audience), audience, ts.style)

	return sb.String()
}

// Truncate cuts s to at most n runes, marking the cut with "...".
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// head returns the first n runes of s.
func head(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func hashtag(s string) string {
	return strings.Join(strings.Fields(s), "")
}
