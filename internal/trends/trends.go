// Package trends serves the catalog of detected shopping moments and applies
// their presets to campaign briefs.
package trends

import (
	_ "embed"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/creativesync/internal/model"
)

// ErrUnknownTrend is returned by Apply for titles outside the catalog.
var ErrUnknownTrend = errors.New("trends: unknown trend")

//go:embed trends.yaml
var catalogYAML []byte

var (
	loadOnce sync.Once
	catalog  []model.Trend
	loadErr  error
)

// Catalog returns the embedded trends with their base titles.
func Catalog() ([]model.Trend, error) {
	loadOnce.Do(func() {
		catalog, loadErr = Parse(catalogYAML)
	})
	if loadErr != nil {
		return nil, loadErr
	}
	out := make([]model.Trend, len(catalog))
	copy(out, catalog)
	return out, nil
}

// Parse decodes a YAML trend catalog.
func Parse(data []byte) ([]model.Trend, error) {
	var ts []model.Trend
	if err := yaml.Unmarshal(data, &ts); err != nil {
		return nil, eris.Wrap(err, "trends: parse catalog")
	}
	for i, t := range ts {
		if strings.TrimSpace(t.Title) == "" {
			return nil, eris.Errorf("trends: entry %d has no title", i)
		}
	}
	return ts, nil
}

// List returns the catalog as displayed at now. Seasonal trends carry the
// current month name in their title.
func List(now time.Time) ([]model.Trend, error) {
	ts, err := Catalog()
	if err != nil {
		return nil, err
	}
	for i := range ts {
		ts[i].Title = displayTitle(ts[i], now)
	}
	return ts, nil
}

func displayTitle(t model.Trend, now time.Time) string {
	if t.Seasonal {
		return now.Month().String() + " " + t.Title
	}
	return t.Title
}

// Find looks up a trend by its base or displayed title, case-insensitively.
func Find(title string) (model.Trend, error) {
	ts, err := Catalog()
	if err != nil {
		return model.Trend{}, err
	}
	want := strings.TrimSpace(title)
	for _, t := range ts {
		if strings.EqualFold(t.Title, want) {
			return t, nil
		}
		if t.Seasonal && strings.EqualFold(stripMonth(want), t.Title) {
			return t, nil
		}
	}
	return model.Trend{}, eris.Wrapf(ErrUnknownTrend, "trends: %q", title)
}

func stripMonth(title string) string {
	head, rest, ok := strings.Cut(title, " ")
	if !ok {
		return title
	}
	for m := time.January; m <= time.December; m++ {
		if strings.EqualFold(head, m.String()) {
			return rest
		}
	}
	return title
}

// Apply overlays the preset of the named trend onto b and records the trend
// on the brief. An empty preset platform keeps the brief's platform.
func Apply(title string, b model.Brief) (model.Brief, error) {
	t, err := Find(title)
	if err != nil {
		return b, err
	}
	p := t.Preset

	b.Name = p.Name
	b.ProductBrief = p.Brief
	b.CampaignType = p.CampaignType
	b.Audience = model.ParseAudience(p.Audience)
	b.Tone = model.ParseTone(p.Tone)
	if p.Platform != "" {
		b.Platform = model.ParsePlatform(p.Platform)
	}
	b.Trend = strings.TrimSpace(title)
	return b, nil
}
