package fallback

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/creativesync/internal/model"
)

func TestCampaign_ToneAndAudience(t *testing.T) {
	got := Campaign(model.Brief{
		ProductBrief: "Fresh sourdough baked daily",
		Audience:     model.AudienceYoungFamilies,
		CampaignType: "Product Launch",
		Tone:         model.ToneUrgent,
		Platform:     model.PlatformSocialMedia,
	})

	assert.True(t, strings.HasPrefix(got, "## 🎯 ⚡ Act Fast - Limited Time Only!"))
	assert.Contains(t, got, "**Perfect for Young Families - Product Launch**")
	assert.Contains(t, got, "Don't miss out on Fresh sourdough baked daily - designed specifically for Young Families")
	assert.Contains(t, got, "Our product launch brings you family-friendly savings and convenient solutions.")
	assert.Contains(t, got, "**Shop Now and Save Big - Social Media Exclusive!**")
	assert.Contains(t, got, "#ProductLaunch #YoungFamilies #TescoOffers")
	assert.Contains(t, got, "Feature vibrant social media visuals showcasing young families customers")
	assert.Contains(t, got, "time-sensitive and compelling aesthetic.")
}

func TestCampaign_UnknownDefaults(t *testing.T) {
	got := Campaign(model.Brief{ProductBrief: "Anything"})

	assert.Contains(t, got, "Excellence in Every Detail")
	assert.Contains(t, got, "amazing benefits")
	assert.Contains(t, got, "sophisticated and reliable")
}

func TestCampaign_TruncatesSubheadline(t *testing.T) {
	brief := strings.Repeat("a", 100)
	got := Campaign(model.Brief{ProductBrief: brief, Tone: model.ToneLuxury})

	assert.Contains(t, got, "Experience the finest "+strings.Repeat("a", 80)+"... - designed")
	// Main copy keeps the full brief.
	assert.Contains(t, got, "\n"+brief+"\n")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 80))
	assert.Equal(t, "abc...", Truncate("abcdef", 3))
	assert.Equal(t, "🎉🎉...", Truncate("🎉🎉🎉", 2), "counts runes, not bytes")
}

func TestVariant(t *testing.T) {
	got := Variant("Organic veg box", "Friendly & Conversational")
	assert.Equal(t, "Friendly & Conversational approach:\n\nOrganic veg box...\n\nDiscover amazing benefits today! Act now and transform your experience.", got)

	long := Variant(strings.Repeat("b", 200), "Urgent & Action-Oriented")
	assert.Contains(t, long, strings.Repeat("b", 120)+"...")
	assert.NotContains(t, long, strings.Repeat("b", 121))
}

func TestDemoVariants(t *testing.T) {
	got := DemoVariants("Weekly meal deals")
	require.Len(t, got, 3)

	assert.Equal(t, "Professional & Authoritative", got[0].ToneLabel)
	assert.InDelta(t, 6.8, got[0].Prediction.CTR, 0.001)
	assert.Equal(t, 125_000, got[0].Prediction.Reach)
	assert.InDelta(t, 8.1, got[2].Prediction.CTR, 0.001)
	assert.Equal(t, 95, got[2].Prediction.Confidence)

	for i, v := range got {
		assert.Equal(t, i+1, v.Number)
		assert.Equal(t, model.ContentSourceFallback, v.Source)
		assert.Contains(t, v.Content, "Weekly meal deals...")
	}
}

func TestChat(t *testing.T) {
	ctx := ChatContext{
		SavedCampaigns:  4,
		ActiveCampaigns: 2,
		Metrics:         model.Metrics{Impressions: 245678, Clicks: 18234, CTR: 7.42},
	}

	tests := []struct {
		msg  string
		want string
	}{
		{"How do I create a campaign?", "You currently have 4 saved campaigns."},
		{"What's trending?", "Black Friday prep (234% growth)"},
		{"Show my analytics", "Total Impressions: 245,678"},
		{"Show my analytics", "Average CTR: 7.42%"},
		{"Can you do an A/B run?", "3 unique campaign variants"},
		{"download please", "creativesync export"},
		{"where does the gemini key go", "makersuite.google.com"},
		{"can I speak to it", "Voice input isn't available"},
		{"what can you do", "I can help you with:"},
		{"thanks!", "You're welcome!"},
		{"hey", "I'm your AI advertising assistant"},
		{"zzz", "Could you rephrase your question"},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Contains(t, Chat(tt.msg, ctx), tt.want)
		})
	}
}

func TestChat_FirstRouteWins(t *testing.T) {
	// "campaign" is checked before "export".
	assert.Contains(t, Chat("export my campaign", ChatContext{}), "To create a campaign")
}
