package store

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/creativesync/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func campaignRows(created time.Time) *pgxmock.Rows {
	return pgxmock.NewRows(campaignColumns).AddRow(
		"c-1", "Spring Veg", "Fresh produce", "ai",
		[]byte(`{"name":"Spring Veg","product_brief":"Veg boxes","target_audience":"Young Families","campaign_type":"Product Launch","tone":"Friendly","platform":"Email"}`),
		[]byte(`{"ctr":7.1,"reach":130000,"engagement":80,"confidence":91}`),
		[]byte(`{"impressions":120000,"clicks":6000,"ctr":5,"engagement":75,"reach":200000}`),
		"Active", created,
	)
}

func TestPostgresStore_GetCampaign(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, name, content, source, brief, prediction, metrics, status, created_at FROM campaigns WHERE id = \$1`).
		WithArgs("c-1").
		WillReturnRows(campaignRows(created))

	c, err := s.GetCampaign(context.Background(), "c-1")
	require.NoError(t, err)
	assert.Equal(t, "Spring Veg", c.Name)
	assert.Equal(t, model.AudienceYoungFamilies, c.Brief.Audience)
	assert.Equal(t, model.PlatformEmail, c.Brief.Platform)
	assert.Equal(t, 7.1, c.Prediction.CTR)
	assert.Equal(t, 6000, c.Metrics.Clicks)
	assert.Equal(t, model.CampaignStatusActive, c.Status)
	assert.Equal(t, created, c.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetCampaign_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT .* FROM campaigns WHERE id = \$1`).
		WithArgs("nonexistent").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetCampaign(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveCampaign_Upsert(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	fixed := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	mock.ExpectExec(`INSERT INTO campaigns .* ON CONFLICT \(id\) DO UPDATE`).
		WithArgs(pgxmock.AnyArg(), "Launch", "copy", "fallback",
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), "Active", fixed).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	c := &model.Campaign{Name: "Launch", Content: "copy", Source: model.ContentSourceFallback}
	require.NoError(t, s.SaveCampaign(context.Background(), c))
	assert.NotEmpty(t, c.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListCampaigns(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT .* FROM campaigns WHERE \(LOWER\(name\) LIKE \$1 ESCAPE '\\' OR LOWER\(content\) LIKE \$2 ESCAPE '\\'\) AND status = \$3 ORDER BY created_at DESC LIMIT 5`).
		WithArgs("%veg%", "%veg%", "Active").
		WillReturnRows(campaignRows(created))

	list, err := s.ListCampaigns(context.Background(), CampaignFilter{
		Query:  " Veg ",
		Status: model.CampaignStatusActive,
		Limit:  5,
	})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "c-1", list[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListCampaigns_DefaultLimit(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT .* FROM campaigns ORDER BY created_at DESC LIMIT 100`).
		WillReturnRows(pgxmock.NewRows(campaignColumns))

	list, err := s.ListCampaigns(context.Background(), CampaignFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_DuplicateCampaign(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	created := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	later := created.Add(24 * time.Hour)
	s.now = func() time.Time { return later }

	mock.ExpectQuery(`SELECT .* FROM campaigns WHERE id = \$1`).
		WithArgs("c-1").
		WillReturnRows(campaignRows(created))
	mock.ExpectExec(`INSERT INTO campaigns`).
		WithArgs(pgxmock.AnyArg(), "Spring Veg (Copy)", "Fresh produce", "ai",
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), "Active", later).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	dup, err := s.DuplicateCampaign(context.Background(), "c-1")
	require.NoError(t, err)
	assert.NotEqual(t, "c-1", dup.ID)
	assert.Zero(t, dup.Metrics.Impressions)
	assert.Zero(t, dup.Metrics.Clicks)
	assert.Zero(t, dup.Metrics.CTR)
	assert.Equal(t, 200000, dup.Metrics.Reach)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_DeleteCampaign_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`DELETE FROM campaigns WHERE id = \$1`).
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := s.DeleteCampaign(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_CountByStatus(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM campaigns WHERE status = \$1`).
		WithArgs("Active").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(3))

	n, err := s.CountByStatus(context.Background(), model.CampaignStatusActive)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_GetProfile_Default(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT name, email, company, phone, location, industry FROM profile`).
		WillReturnError(pgx.ErrNoRows)

	p, err := s.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.DefaultIndustry, p.Industry)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveProfile(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO profile .* ON CONFLICT`).
		WithArgs("Sam", "sam@example.com", "", "", "", model.DefaultIndustry).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := s.SaveProfile(context.Background(), model.Profile{Name: "Sam", Email: "sam@example.com"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Settings(t *testing.T) {
	s, mock := newMockPostgresStore(t)
	ctx := context.Background()

	mock.ExpectQuery(`SELECT value FROM settings WHERE key = \$1`).
		WithArgs(SettingTheme).
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectExec(`INSERT INTO settings .* ON CONFLICT \(key\)`).
		WithArgs(SettingTheme, ThemeDark, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	theme, err := s.GetSetting(ctx, SettingTheme)
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, theme)

	require.NoError(t, s.SetSetting(ctx, SettingTheme, ThemeDark))

	// Rejected before touching the database.
	assert.ErrorIs(t, s.SetSetting(ctx, "font", "serif"), ErrUnknownSetting)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS campaigns`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
