package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/creativesync/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS campaigns (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	content    TEXT NOT NULL,
	source     TEXT NOT NULL DEFAULT 'ai',
	brief      TEXT NOT NULL,
	prediction TEXT NOT NULL,
	metrics    TEXT NOT NULL,
	status     TEXT NOT NULL DEFAULT 'Active',
	created_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS profile (
	id       INTEGER PRIMARY KEY CHECK (id = 1),
	name     TEXT NOT NULL DEFAULT '',
	email    TEXT NOT NULL DEFAULT '',
	company  TEXT NOT NULL DEFAULT '',
	phone    TEXT NOT NULL DEFAULT '',
	location TEXT NOT NULL DEFAULT '',
	industry TEXT NOT NULL DEFAULT 'Retail'
);

CREATE TABLE IF NOT EXISTS settings (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_campaigns_status ON campaigns(status);
CREATE INDEX IF NOT EXISTS idx_campaigns_created_at ON campaigns(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveCampaign(ctx context.Context, c *model.Campaign) error {
	prepareCampaign(c, s.now())

	brief, prediction, metrics, err := marshalCampaign(c)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO campaigns (id, name, content, source, brief, prediction, metrics, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
			name = excluded.name, content = excluded.content, source = excluded.source,
			brief = excluded.brief, prediction = excluded.prediction, metrics = excluded.metrics,
			status = excluded.status`,
		c.ID, c.Name, c.Content, string(c.Source), brief, prediction, metrics, string(c.Status), c.CreatedAt,
	)
	return eris.Wrapf(err, "sqlite: save campaign %s", c.ID)
}

func (s *SQLiteStore) GetCampaign(ctx context.Context, id string) (*model.Campaign, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, content, source, brief, prediction, metrics, status, created_at
		 FROM campaigns WHERE id = ?`,
		id,
	)
	c, err := scanCampaign(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "sqlite: campaign %s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "sqlite: get campaign %s", id)
	}
	return c, nil
}

func (s *SQLiteStore) ListCampaigns(ctx context.Context, filter CampaignFilter) ([]model.Campaign, error) {
	query, args, err := listCampaignsQuery(filter, sq.Question)
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list campaigns")
	}
	defer rows.Close()

	var campaigns []model.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite: scan campaign")
		}
		campaigns = append(campaigns, *c)
	}
	return campaigns, eris.Wrap(rows.Err(), "sqlite: list campaigns iterate")
}

func (s *SQLiteStore) DuplicateCampaign(ctx context.Context, id string) (*model.Campaign, error) {
	src, err := s.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	dup := duplicateOf(*src, s.now())
	if err := s.SaveCampaign(ctx, &dup); err != nil {
		return nil, err
	}
	return &dup, nil
}

func (s *SQLiteStore) DeleteCampaign(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM campaigns WHERE id = ?`, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete campaign %s", id)
	}
	return checkRowsAffected(res, "campaign", id)
}

func (s *SQLiteStore) CountByStatus(ctx context.Context, status model.CampaignStatus) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM campaigns WHERE status = ?`, string(status),
	).Scan(&n)
	return n, eris.Wrap(err, "sqlite: count campaigns")
}

func (s *SQLiteStore) GetProfile(ctx context.Context) (*model.Profile, error) {
	var p model.Profile
	err := s.db.QueryRowContext(ctx,
		`SELECT name, email, company, phone, location, industry FROM profile WHERE id = 1`,
	).Scan(&p.Name, &p.Email, &p.Company, &p.Phone, &p.Location, &p.Industry)
	if errors.Is(err, sql.ErrNoRows) {
		return &model.Profile{Industry: model.DefaultIndustry}, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: get profile")
	}
	return &p, nil
}

func (s *SQLiteStore) SaveProfile(ctx context.Context, p model.Profile) error {
	if p.Industry == "" {
		p.Industry = model.DefaultIndustry
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO profile (id, name, email, company, phone, location, industry)
		 VALUES (1, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
			name = excluded.name, email = excluded.email, company = excluded.company,
			phone = excluded.phone, location = excluded.location, industry = excluded.industry`,
		p.Name, p.Email, p.Company, p.Phone, p.Location, p.Industry,
	)
	return eris.Wrap(err, "sqlite: save profile")
}

func (s *SQLiteStore) GetSetting(ctx context.Context, key string) (string, error) {
	if !knownSetting(key) {
		return "", eris.Wrapf(ErrUnknownSetting, "sqlite: setting %q", key)
	}
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return settingDefault(key)
	}
	if err != nil {
		return "", eris.Wrapf(err, "sqlite: get setting %s", key)
	}
	return value, nil
}

func (s *SQLiteStore) SetSetting(ctx context.Context, key, value string) error {
	if err := ValidateSetting(key, value); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, s.now().UTC(),
	)
	return eris.Wrapf(err, "sqlite: set setting %s", key)
}

// helpers

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Wrapf(ErrNotFound, "%s %s", entity, id)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanCampaign(row scannable) (*model.Campaign, error) {
	var c model.Campaign
	var source, status string
	var brief, prediction, metrics []byte

	err := row.Scan(&c.ID, &c.Name, &c.Content, &source, &brief, &prediction, &metrics, &status, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	c.Source = model.ContentSource(source)
	c.Status = model.CampaignStatus(status)

	if err := unmarshalCampaign(&c, brief, prediction, metrics); err != nil {
		return nil, err
	}
	return &c, nil
}

func marshalCampaign(c *model.Campaign) (brief, prediction, metrics string, err error) {
	b, err := json.Marshal(c.Brief)
	if err != nil {
		return "", "", "", eris.Wrap(err, "store: marshal brief")
	}
	p, err := json.Marshal(c.Prediction)
	if err != nil {
		return "", "", "", eris.Wrap(err, "store: marshal prediction")
	}
	m, err := json.Marshal(c.Metrics)
	if err != nil {
		return "", "", "", eris.Wrap(err, "store: marshal metrics")
	}
	return string(b), string(p), string(m), nil
}

func unmarshalCampaign(c *model.Campaign, brief, prediction, metrics []byte) error {
	if err := json.Unmarshal(brief, &c.Brief); err != nil {
		return eris.Wrap(err, "store: unmarshal brief")
	}
	if err := json.Unmarshal(prediction, &c.Prediction); err != nil {
		return eris.Wrap(err, "store: unmarshal prediction")
	}
	if err := json.Unmarshal(metrics, &c.Metrics); err != nil {
		return eris.Wrap(err, "store: unmarshal metrics")
	}
	return nil
}

var settingDefaults = map[string]string{
	SettingTheme: ThemeLight,
}

func settingDefault(key string) (string, error) {
	if v, ok := settingDefaults[key]; ok {
		return v, nil
	}
	return "", eris.Wrapf(ErrNotFound, "setting %s", key)
}
