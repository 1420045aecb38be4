package dashboard

import (
	"slices"
	"time"

	"github.com/sells-group/creativesync/internal/scorer"
)

// Action is a state transition understood by Reduce.
type Action interface {
	apply(s State) State
}

// Tick advances the simulated counters by one update interval.
type Tick struct {
	Now  time.Time
	Rand scorer.RandSource
}

// CampaignsChanged reports the current number of active saved campaigns.
type CampaignsChanged struct {
	Active int
}

// ToggleTheme switches between the light and dark themes.
type ToggleTheme struct{}

// SetTheme selects a theme explicitly. Unknown values are ignored.
type SetTheme struct {
	Theme string
}

// Reduce returns the state that results from applying a to s.
// s is never modified.
func Reduce(s State, a Action) State {
	if a == nil {
		return s
	}
	return a.apply(s)
}

func (t Tick) apply(s State) State {
	rng := t.Rand
	if rng == nil {
		rng = scorer.GlobalRand()
	}
	now := t.Now
	if now.IsZero() {
		now = time.Now()
	}

	next := s
	next.Metrics.Impressions += 200 + intn(rng, 800)
	next.Metrics.Clicks += 10 + intn(rng, 50)
	if next.Metrics.Impressions > 0 {
		next.Metrics.CTR = round2(float64(next.Metrics.Clicks) / float64(next.Metrics.Impressions) * 100)
	}

	label := hourLabel(now)
	imp, clk, eng := sample(rng)
	next.HourlyImpressions = roll(s.HourlyImpressions, Point{Time: label, Value: imp})
	next.HourlyClicks = roll(s.HourlyClicks, Point{Time: label, Value: clk})
	next.HourlyEngagement = roll(s.HourlyEngagement, Point{Time: label, Value: eng})

	next.Activity = slices.Clone(s.Activity)
	if rng.Float64() > activityChance {
		a := liveActivity[intn(rng, len(liveActivity))]
		a.At = now
		next.Activity = append([]Activity{a}, next.Activity...)
		if len(next.Activity) > maxActivity {
			next.Activity = next.Activity[:maxActivity]
		}
	}

	next.UpdatedAt = now
	return next
}

func (c CampaignsChanged) apply(s State) State {
	next := s
	next.Metrics.ActiveCampaigns = max(c.Active, 0)
	return next
}

func (ToggleTheme) apply(s State) State {
	next := s
	if s.Theme == ThemeDark {
		next.Theme = ThemeLight
	} else {
		next.Theme = ThemeDark
	}
	return next
}

func (t SetTheme) apply(s State) State {
	if t.Theme != ThemeLight && t.Theme != ThemeDark {
		return s
	}
	next := s
	next.Theme = t.Theme
	return next
}

// Recent returns the last n points of a series, or all of them when the
// series is shorter.
func Recent(series []Point, n int) []Point {
	if n <= 0 || n >= len(series) {
		return slices.Clone(series)
	}
	return slices.Clone(series[len(series)-n:])
}
