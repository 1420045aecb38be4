package store

import (
	"context"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/sells-group/creativesync/internal/model"
	"github.com/sells-group/creativesync/pkg/gemini"
)

// ErrNotFound is returned when a campaign, profile or setting does not exist.
var ErrNotFound = eris.New("store: not found")

// ErrUnknownSetting is returned for setting keys outside the known set.
var ErrUnknownSetting = eris.New("store: unknown setting")

// Setting keys.
const (
	SettingTheme        = "theme"
	SettingGeminiAPIKey = "gemini_api_key"
)

// Theme values accepted for SettingTheme.
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

const defaultListLimit = 100

// CampaignFilter specifies criteria for listing campaigns.
type CampaignFilter struct {
	Query  string               `json:"q,omitempty"`
	Status model.CampaignStatus `json:"status,omitempty"`
	Limit  int                  `json:"limit,omitempty"`
}

// Store defines the persistence interface for campaigns, the user profile
// and settings.
type Store interface {
	// Campaigns
	SaveCampaign(ctx context.Context, c *model.Campaign) error
	GetCampaign(ctx context.Context, id string) (*model.Campaign, error)
	ListCampaigns(ctx context.Context, filter CampaignFilter) ([]model.Campaign, error)
	DuplicateCampaign(ctx context.Context, id string) (*model.Campaign, error)
	DeleteCampaign(ctx context.Context, id string) error
	CountByStatus(ctx context.Context, status model.CampaignStatus) (int, error)

	// Profile
	GetProfile(ctx context.Context) (*model.Profile, error)
	SaveProfile(ctx context.Context, p model.Profile) error

	// Settings
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// ValidateSetting checks that key is known and value is acceptable for it.
func ValidateSetting(key, value string) error {
	switch key {
	case SettingTheme:
		if value != ThemeLight && value != ThemeDark {
			return eris.Errorf("store: theme must be %s or %s, got %q", ThemeLight, ThemeDark, value)
		}
	case SettingGeminiAPIKey:
		if value == "" {
			return eris.New("store: gemini api key is empty")
		}
		if !gemini.KeyConfigured(value) {
			return eris.Errorf("store: gemini api key must be at least %d characters", gemini.MinKeyLength)
		}
	default:
		return eris.Wrapf(ErrUnknownSetting, "store: setting %q", key)
	}
	return nil
}

// Totals counts every saved campaign and those still Active.
func Totals(ctx context.Context, s Store) (saved, active int, err error) {
	for _, status := range []model.CampaignStatus{
		model.CampaignStatusActive, model.CampaignStatusPaused, model.CampaignStatusDraft,
	} {
		n, err := s.CountByStatus(ctx, status)
		if err != nil {
			return 0, 0, err
		}
		saved += n
		if status == model.CampaignStatusActive {
			active = n
		}
	}
	return saved, active, nil
}

func knownSetting(key string) bool {
	return key == SettingTheme || key == SettingGeminiAPIKey
}

// prepareCampaign fills the id, status and creation time of a new campaign.
func prepareCampaign(c *model.Campaign, now time.Time) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Status == "" {
		c.Status = model.CampaignStatusActive
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now.UTC()
	}
}

// duplicateOf returns a deep copy of c under a new id with its delivery
// counters reset.
func duplicateOf(c model.Campaign, now time.Time) model.Campaign {
	dup := c
	dup.ID = uuid.New().String()
	dup.Name = c.Name + " (Copy)"
	dup.CreatedAt = now.UTC()
	dup.Metrics.Impressions = 0
	dup.Metrics.Clicks = 0
	dup.Metrics.CTR = 0
	return dup
}

var campaignColumns = []string{
	"id", "name", "content", "source", "brief", "prediction", "metrics", "status", "created_at",
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes term match literally inside a LIKE pattern.
func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// listCampaignsQuery builds the history query shared by both drivers.
func listCampaignsQuery(filter CampaignFilter, format sq.PlaceholderFormat) (string, []any, error) {
	q := sq.Select(campaignColumns...).
		From("campaigns").
		OrderBy("created_at DESC").
		PlaceholderFormat(format)

	if term := strings.TrimSpace(filter.Query); term != "" {
		pattern := "%" + escapeLike(strings.ToLower(term)) + "%"
		q = q.Where(sq.Or{
			sq.Expr(`LOWER(name) LIKE ? ESCAPE '\'`, pattern),
			sq.Expr(`LOWER(content) LIKE ? ESCAPE '\'`, pattern),
		})
	}
	if filter.Status != "" {
		q = q.Where(sq.Eq{"status": string(filter.Status)})
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	q = q.Limit(uint64(limit))

	query, args, err := q.ToSql()
	if err != nil {
		return "", nil, eris.Wrap(err, "store: build list query")
	}
	return query, args, nil
}
