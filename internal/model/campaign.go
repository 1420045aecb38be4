package model

import "time"

// CampaignStatus is the lifecycle label shown in campaign history.
type CampaignStatus string

const (
	CampaignStatusActive CampaignStatus = "Active"
	CampaignStatusPaused CampaignStatus = "Paused"
	CampaignStatusDraft  CampaignStatus = "Draft"
)

// ContentSource records where generated copy came from.
type ContentSource string

const (
	ContentSourceAI       ContentSource = "ai"
	ContentSourceFallback ContentSource = "fallback"
)

// Brief holds the campaign parameters collected from the user.
type Brief struct {
	Name         string   `json:"name"`
	ProductBrief string   `json:"product_brief"`
	Audience     Audience `json:"target_audience"`
	CampaignType string   `json:"campaign_type"`
	Tone         Tone     `json:"tone"`
	Platform     Platform `json:"platform"`
	Trend        string   `json:"trend,omitempty"`
}

// Prediction is the synthetic performance forecast attached to generated copy.
type Prediction struct {
	CTR        float64 `json:"ctr"`
	Reach      int     `json:"reach"`
	Engagement int     `json:"engagement"`
	Confidence int     `json:"confidence"`
}

// Metrics are the simulated delivery numbers of a saved campaign.
type Metrics struct {
	Impressions int     `json:"impressions"`
	Clicks      int     `json:"clicks"`
	CTR         float64 `json:"ctr"`
	Engagement  int     `json:"engagement"`
	Reach       int     `json:"reach"`
}

// Campaign is a saved piece of generated copy with its forecast and metrics.
type Campaign struct {
	ID         string         `json:"id"`
	Name       string         `json:"name"`
	Content    string         `json:"content"`
	Source     ContentSource  `json:"source"`
	Brief      Brief          `json:"metadata"`
	Prediction Prediction     `json:"predictions"`
	Metrics    Metrics        `json:"metrics"`
	Status     CampaignStatus `json:"status"`
	CreatedAt  time.Time      `json:"created"`
}

// Variant is one A/B copy alternative generated from a shared brief.
type Variant struct {
	ID         string        `json:"id"`
	Number     int           `json:"number"`
	Label      string        `json:"label"`
	ToneLabel  string        `json:"tone"`
	Content    string        `json:"content"`
	Source     ContentSource `json:"source"`
	Prediction Prediction    `json:"predictions"`
}

// Profile holds the user details printed on exported reports.
type Profile struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Company  string `json:"company"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Industry string `json:"industry"`
}

// DefaultIndustry is used when a profile has none set.
const DefaultIndustry = "Retail"

// DisplayName returns the profile name or "User" when unset.
func (p Profile) DisplayName() string {
	if p.Name == "" {
		return "User"
	}
	return p.Name
}

// Trend is a detected shopping moment that can preset a campaign brief.
type Trend struct {
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description" yaml:"description"`
	Badge       string      `json:"badge" yaml:"badge"`
	Score       int         `json:"score" yaml:"score"`
	Growth      string      `json:"growth" yaml:"growth"`
	Audience    string      `json:"audience" yaml:"audience"`
	Icon        string      `json:"icon" yaml:"icon"`
	Seasonal    bool        `json:"seasonal,omitempty" yaml:"seasonal"`
	Preset      TrendPreset `json:"preset" yaml:"preset"`
}

// TrendPreset is the brief overlay applied when a trend is chosen.
type TrendPreset struct {
	Name         string `json:"name" yaml:"name"`
	CampaignType string `json:"campaign_type" yaml:"type"`
	Audience     string `json:"audience" yaml:"audience"`
	Tone         string `json:"tone" yaml:"tone"`
	Platform     string `json:"platform,omitempty" yaml:"platform"`
	Brief        string `json:"brief" yaml:"brief"`
}
