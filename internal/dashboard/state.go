// Package dashboard holds the simulated live-metrics view of the application.
//
// State is a value. It changes only through Reduce, which returns a new
// State and leaves its input untouched. Randomness enters through the
// actions, so a seeded source makes every transition reproducible.
package dashboard

import (
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/sells-group/creativesync/internal/model"
	"github.com/sells-group/creativesync/internal/scorer"
)

// Seed values shown before the first tick.
const (
	SeedImpressions     = 245678
	SeedClicks          = 18234
	SeedCTR             = 7.42
	SeedActiveCampaigns = 12
)

// Themes.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

const (
	seriesLen      = 24
	maxActivity    = 10
	activityChance = 0.6
)

// Point is one hourly sample of a chart series.
type Point struct {
	Time  string  `json:"time"`
	Value float64 `json:"value"`
}

// Activity is one entry of the activity feed.
type Activity struct {
	Icon        string    `json:"icon"`
	Title       string    `json:"title"`
	Description string    `json:"desc"`
	At          time.Time `json:"at"`
}

// Counters are the headline dashboard numbers.
type Counters struct {
	Impressions     int     `json:"impressions"`
	Clicks          int     `json:"clicks"`
	CTR             float64 `json:"ctr"`
	ActiveCampaigns int     `json:"active_campaigns"`
}

// State is the full dashboard view.
type State struct {
	Metrics           Counters   `json:"metrics"`
	HourlyImpressions []Point    `json:"hourly_impressions"`
	HourlyClicks      []Point    `json:"hourly_clicks"`
	HourlyEngagement  []Point    `json:"hourly_engagement"`
	Activity          []Activity `json:"activity"`
	Theme             string     `json:"theme"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

var initialActivity = []struct {
	icon, title, desc string
	ago               time.Duration
}{
	{"rocket", "Campaign Launched", "Summer Sale is now live", 2 * time.Minute},
	{"chart-line", "Performance Milestone", "CTR increased by 15%", 15 * time.Minute},
	{"bell", "Trend Alert", "New cultural moment detected", time.Hour},
	{"check-circle", "Compliance Check", "All campaigns passed validation", 2 * time.Hour},
	{"users", "Audience Insight", "Premium shoppers engagement up 23%", 3 * time.Hour},
}

var liveActivity = []Activity{
	{Icon: "eye", Title: "New Impressions", Description: "+500 impressions in the last few seconds"},
	{Icon: "mouse-pointer", Title: "Clicks Recorded", Description: "+25 clicks from your campaigns"},
	{Icon: "fire", Title: "Trending Up", Description: "Your campaign is gaining momentum"},
}

// Seed builds the initial state: 24 hourly samples ending at now, the seed
// counters and the starter activity feed. A nil rng uses scorer.GlobalRand.
func Seed(now time.Time, rng scorer.RandSource) State {
	if rng == nil {
		rng = scorer.GlobalRand()
	}
	s := State{
		Metrics: Counters{
			Impressions:     SeedImpressions,
			Clicks:          SeedClicks,
			CTR:             SeedCTR,
			ActiveCampaigns: SeedActiveCampaigns,
		},
		HourlyImpressions: make([]Point, 0, seriesLen),
		HourlyClicks:      make([]Point, 0, seriesLen),
		HourlyEngagement:  make([]Point, 0, seriesLen),
		Theme:             ThemeLight,
		UpdatedAt:         now,
	}
	for i := seriesLen - 1; i >= 0; i-- {
		label := hourLabel(now.Add(-time.Duration(i) * time.Hour))
		imp, clk, eng := sample(rng)
		s.HourlyImpressions = append(s.HourlyImpressions, Point{Time: label, Value: imp})
		s.HourlyClicks = append(s.HourlyClicks, Point{Time: label, Value: clk})
		s.HourlyEngagement = append(s.HourlyEngagement, Point{Time: label, Value: eng})
	}
	for _, a := range initialActivity {
		s.Activity = append(s.Activity, Activity{
			Icon:        a.icon,
			Title:       a.title,
			Description: a.desc,
			At:          now.Add(-a.ago),
		})
	}
	return s
}

// Simulate produces delivery metrics for a newly saved campaign.
func Simulate(rng scorer.RandSource) model.Metrics {
	if rng == nil {
		rng = scorer.GlobalRand()
	}
	return model.Metrics{
		Impressions: 100000 + intn(rng, 50000),
		Clicks:      5000 + intn(rng, 3000),
		CTR:         round2(5 + rng.Float64()*3),
		Engagement:  70 + intn(rng, 20),
		Reach:       150000 + intn(rng, 100000),
	}
}

// sample draws one hourly data point for each series.
func sample(rng scorer.RandSource) (impressions, clicks, engagement float64) {
	impressions = float64(8000 + intn(rng, 5000))
	clicks = float64(500 + intn(rng, 400))
	engagement = round2(5 + rng.Float64()*3)
	return impressions, clicks, engagement
}

func hourLabel(t time.Time) string {
	return fmt.Sprintf("%d:00", t.Hour())
}

func intn(rng scorer.RandSource, n int) int {
	return int(math.Floor(rng.Float64() * float64(n)))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// roll drops the oldest point and appends p, returning a new slice.
func roll(series []Point, p Point) []Point {
	out := slices.Clone(series)
	if len(out) >= seriesLen {
		out = out[1:]
	}
	return append(out, p)
}
