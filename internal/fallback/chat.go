package fallback

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/creativesync/internal/model"
)

// ChatContext is the workspace state quoted by assistant replies.
type ChatContext struct {
	SavedCampaigns  int
	ActiveCampaigns int
	Metrics         model.Metrics
}

type chatRoute struct {
	keywords []string
	reply    func(ChatContext) string
}

var printer = message.NewPrinter(language.English)

// Routes are checked in order; the first keyword hit wins.
var chatRoutes = []chatRoute{
	{[]string{"campaign", "create", "generate"}, func(c ChatContext) string {
		return fmt.Sprintf(`To create a campaign, run "creativesync generate" with your product brief and target details, or POST the brief to /api/campaigns/generate. I'll create compelling ad copy optimized for your audience! You currently have %d saved campaigns.`, c.SavedCampaigns)
	}},
	{[]string{"trend", "trending", "popular"}, func(ChatContext) string {
		return `Run "creativesync trends list" to see current cultural moments and shopping behaviors! I've detected several hot trends including Black Friday prep (234% growth) and mobile commerce surge (67% increase). Apply one with "creativesync trends apply" before your next campaign.`
	}},
	{[]string{"performance", "metric", "analytics"}, func(c ChatContext) string {
		return printer.Sprintf("Your campaigns are performing well! Current metrics:\n• Total Impressions: %d\n• Total Clicks: %d\n• Average CTR: %.2f%%\n• Active Campaigns: %d\n\nExport an analytics report for detailed insights and comparisons!",
			c.Metrics.Impressions, c.Metrics.Clicks, c.Metrics.CTR, c.ActiveCampaigns)
	}},
	{[]string{"variant", "a/b", "test"}, func(ChatContext) string {
		return `I can generate 3 unique campaign variants for A/B testing! Each variant uses a different tone (Professional, Friendly, Urgent) to help you find what resonates best with your audience. Run "creativesync variants" with your brief to get started.`
	}},
	{[]string{"export", "download", "save"}, func(ChatContext) string {
		return `You can export your campaigns and analytics as JSON, CSV, text, HTML, or XLSX with "creativesync export". Generated campaigns can be saved with --save and are kept in the local campaign store.`
	}},
	{[]string{"api", "key", "gemini"}, func(ChatContext) string {
		return `To enable full AI features, you need a Gemini API key. Get one free at https://makersuite.google.com/app/apikey, then store it with "creativesync settings set gemini_api_key <key>" or set CREATIVESYNC_GEMINI_KEY. Without an API key, you'll see template content with simulated AI responses.`
	}},
	{[]string{"voice", "speak", "microphone"}, func(ChatContext) string {
		return `Voice input isn't available here. Type or paste your campaign details into the product brief instead, and I'll take it from there.`
	}},
	{[]string{"help", "how", "what can"}, func(ChatContext) string {
		return "I can help you with:\n\n✨ Creating AI-powered campaigns\n📊 Analyzing performance metrics\n🔥 Detecting trends and cultural moments\n🧪 Generating A/B test variants\n📈 Providing optimization recommendations\n💾 Exporting data and reports\n\nWhat would you like to work on?"
	}},
	{[]string{"thank", "thanks"}, func(ChatContext) string {
		return "You're welcome! I'm always here to help you create amazing campaigns. Let me know if you need anything else! 🚀"
	}},
	{[]string{"hello", "hi", "hey"}, func(ChatContext) string {
		return "Hello! 👋 I'm your AI advertising assistant. I can help you create campaigns, analyze performance, detect trends, and optimize your advertising strategy. What would you like to work on today?"
	}},
}

const defaultChatReply = "I'm here to help with campaign creation, performance analysis, trend detection, and optimization strategies. Could you rephrase your question or ask me about:\n• Creating new campaigns\n• Analyzing metrics\n• Current trends\n• Multi-variant testing\n• Export options\n\nWhat would you like to know?"

// Chat answers message by keyword, quoting figures from c where relevant.
func Chat(msg string, c ChatContext) string {
	lower := strings.ToLower(msg)
	for _, r := range chatRoutes {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.reply(c)
			}
		}
	}
	return defaultChatReply
}
