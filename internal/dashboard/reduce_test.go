package dashboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/creativesync/internal/scorer"
)

type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

var seedTime = time.Date(2026, 10, 18, 14, 30, 0, 0, time.UTC)

func TestSeed(t *testing.T) {
	s := Seed(seedTime, fixedRand(0))

	assert.Equal(t, SeedImpressions, s.Metrics.Impressions)
	assert.Equal(t, SeedClicks, s.Metrics.Clicks)
	assert.Equal(t, SeedCTR, s.Metrics.CTR)
	assert.Equal(t, SeedActiveCampaigns, s.Metrics.ActiveCampaigns)
	assert.Equal(t, ThemeLight, s.Theme)

	require.Len(t, s.HourlyImpressions, 24)
	require.Len(t, s.HourlyClicks, 24)
	require.Len(t, s.HourlyEngagement, 24)
	assert.Equal(t, "15:00", s.HourlyImpressions[0].Time)
	assert.Equal(t, "14:00", s.HourlyImpressions[23].Time)
	assert.Equal(t, 8000.0, s.HourlyImpressions[0].Value)
	assert.Equal(t, 500.0, s.HourlyClicks[0].Value)
	assert.Equal(t, 5.0, s.HourlyEngagement[0].Value)

	require.Len(t, s.Activity, 5)
	assert.Equal(t, "Campaign Launched", s.Activity[0].Title)
	assert.Equal(t, seedTime.Add(-2*time.Minute), s.Activity[0].At)
}

func TestSeed_Ranges(t *testing.T) {
	s := Seed(seedTime, scorer.NewRand(42))
	for i := range s.HourlyImpressions {
		assert.GreaterOrEqual(t, s.HourlyImpressions[i].Value, 8000.0)
		assert.Less(t, s.HourlyImpressions[i].Value, 13000.0)
		assert.GreaterOrEqual(t, s.HourlyClicks[i].Value, 500.0)
		assert.Less(t, s.HourlyClicks[i].Value, 900.0)
		assert.GreaterOrEqual(t, s.HourlyEngagement[i].Value, 5.0)
		assert.LessOrEqual(t, s.HourlyEngagement[i].Value, 8.0)
	}
}

func TestReduce_TickDoesNotMutateInput(t *testing.T) {
	s := Seed(seedTime, fixedRand(0.5))
	before := Seed(seedTime, fixedRand(0.5))

	next := Reduce(s, Tick{Now: seedTime.Add(time.Hour), Rand: fixedRand(0.9)})

	assert.Equal(t, before, s, "input state unchanged")
	assert.NotEqual(t, s.Metrics, next.Metrics)
}

func TestReduce_Tick(t *testing.T) {
	s := Seed(seedTime, fixedRand(0))
	now := seedTime.Add(time.Hour)

	next := Reduce(s, Tick{Now: now, Rand: fixedRand(0)})

	assert.Equal(t, SeedImpressions+200, next.Metrics.Impressions)
	assert.Equal(t, SeedClicks+10, next.Metrics.Clicks)
	assert.Equal(t, 7.42, next.Metrics.CTR)

	require.Len(t, next.HourlyImpressions, 24)
	assert.Equal(t, "15:00", next.HourlyImpressions[23].Time)
	assert.Equal(t, s.HourlyImpressions[1], next.HourlyImpressions[0], "oldest point rolled off")

	// A zero draw never clears the activity threshold.
	assert.Equal(t, s.Activity, next.Activity)
	assert.Equal(t, now, next.UpdatedAt)
}

func TestReduce_TickAddsActivity(t *testing.T) {
	s := Seed(seedTime, fixedRand(0))
	now := seedTime.Add(time.Minute)

	next := Reduce(s, Tick{Now: now, Rand: fixedRand(0.99)})
	require.Len(t, next.Activity, 6)
	assert.Equal(t, "Trending Up", next.Activity[0].Title)
	assert.Equal(t, now, next.Activity[0].At)
	assert.Len(t, s.Activity, 5)

	for range 10 {
		next = Reduce(next, Tick{Now: now, Rand: fixedRand(0.99)})
	}
	assert.Len(t, next.Activity, maxActivity)
}

func TestReduce_TickCTRRange(t *testing.T) {
	s := Seed(seedTime, scorer.NewRand(1))
	rng := scorer.NewRand(2)
	for range 100 {
		s = Reduce(s, Tick{Now: seedTime, Rand: rng})
	}
	assert.Greater(t, s.Metrics.Impressions, SeedImpressions)
	assert.Greater(t, s.Metrics.CTR, 0.0)
	assert.Less(t, s.Metrics.CTR, 100.0)
}

func TestReduce_CampaignsChanged(t *testing.T) {
	s := Seed(seedTime, fixedRand(0))

	next := Reduce(s, CampaignsChanged{Active: 3})
	assert.Equal(t, 3, next.Metrics.ActiveCampaigns)
	assert.Equal(t, SeedActiveCampaigns, s.Metrics.ActiveCampaigns)

	assert.Zero(t, Reduce(s, CampaignsChanged{Active: -1}).Metrics.ActiveCampaigns)
}

func TestReduce_Theme(t *testing.T) {
	s := Seed(seedTime, fixedRand(0))

	dark := Reduce(s, ToggleTheme{})
	assert.Equal(t, ThemeDark, dark.Theme)
	assert.Equal(t, ThemeLight, Reduce(dark, ToggleTheme{}).Theme)
	assert.Equal(t, ThemeLight, s.Theme)

	assert.Equal(t, ThemeDark, Reduce(s, SetTheme{Theme: ThemeDark}).Theme)
	assert.Equal(t, ThemeLight, Reduce(s, SetTheme{Theme: "sepia"}).Theme)
}

func TestReduce_NilAction(t *testing.T) {
	s := Seed(seedTime, fixedRand(0))
	assert.Equal(t, s, Reduce(s, nil))
}

func TestSimulate(t *testing.T) {
	low := Simulate(fixedRand(0))
	assert.Equal(t, 100000, low.Impressions)
	assert.Equal(t, 5000, low.Clicks)
	assert.Equal(t, 5.0, low.CTR)
	assert.Equal(t, 70, low.Engagement)
	assert.Equal(t, 150000, low.Reach)

	rng := scorer.NewRand(9)
	for range 50 {
		m := Simulate(rng)
		assert.GreaterOrEqual(t, m.Impressions, 100000)
		assert.Less(t, m.Impressions, 150000)
		assert.GreaterOrEqual(t, m.Clicks, 5000)
		assert.Less(t, m.Clicks, 8000)
		assert.GreaterOrEqual(t, m.CTR, 5.0)
		assert.LessOrEqual(t, m.CTR, 8.0)
		assert.GreaterOrEqual(t, m.Engagement, 70)
		assert.Less(t, m.Engagement, 90)
		assert.GreaterOrEqual(t, m.Reach, 150000)
		assert.Less(t, m.Reach, 250000)
	}
}

func TestRecent(t *testing.T) {
	s := Seed(seedTime, fixedRand(0))
	last := Recent(s.HourlyImpressions, 7)
	require.Len(t, last, 7)
	assert.Equal(t, s.HourlyImpressions[23], last[6])
	assert.Len(t, Recent(s.HourlyImpressions, 100), 24)
	assert.Len(t, Recent(s.HourlyImpressions, 0), 24)
}
