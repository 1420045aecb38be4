package store

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/creativesync/internal/db"
	"github.com/sells-group/creativesync/internal/model"
)

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
	now     func() time.Time
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection.
var preparedStatements = map[string]string{
	"get_campaign":    `SELECT id, name, content, source, brief, prediction, metrics, status, created_at FROM campaigns WHERE id = $1`,
	"count_campaigns": `SELECT COUNT(*) FROM campaigns WHERE status = $1`,
	"get_setting":     `SELECT value FROM settings WHERE key = $1`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close, now: time.Now}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS campaigns (
	id         TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	name       TEXT NOT NULL,
	content    TEXT NOT NULL,
	source     TEXT NOT NULL DEFAULT 'ai',
	brief      JSONB NOT NULL,
	prediction JSONB NOT NULL,
	metrics    JSONB NOT NULL,
	status     TEXT NOT NULL DEFAULT 'Active',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
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
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_campaigns_status ON campaigns(status);
CREATE INDEX IF NOT EXISTS idx_campaigns_created_at ON campaigns(created_at DESC);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

func (s *PostgresStore) SaveCampaign(ctx context.Context, c *model.Campaign) error {
	prepareCampaign(c, s.clock())

	brief, prediction, metrics, err := marshalCampaign(c)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO campaigns (id, name, content, source, brief, prediction, metrics, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, content = EXCLUDED.content, source = EXCLUDED.source,
			brief = EXCLUDED.brief, prediction = EXCLUDED.prediction, metrics = EXCLUDED.metrics,
			status = EXCLUDED.status`,
		c.ID, c.Name, c.Content, string(c.Source), brief, prediction, metrics, string(c.Status), c.CreatedAt,
	)
	return eris.Wrapf(err, "postgres: save campaign %s", c.ID)
}

func (s *PostgresStore) GetCampaign(ctx context.Context, id string) (*model.Campaign, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, name, content, source, brief, prediction, metrics, status, created_at FROM campaigns WHERE id = $1`,
		id,
	)
	c, err := scanCampaign(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, eris.Wrapf(ErrNotFound, "postgres: campaign %s", id)
	}
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get campaign %s", id)
	}
	return c, nil
}

func (s *PostgresStore) ListCampaigns(ctx context.Context, filter CampaignFilter) ([]model.Campaign, error) {
	query, args, err := listCampaignsQuery(filter, sq.Dollar)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list campaigns")
	}
	defer rows.Close()

	var campaigns []model.Campaign
	for rows.Next() {
		c, err := scanCampaign(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan campaign")
		}
		campaigns = append(campaigns, *c)
	}
	return campaigns, eris.Wrap(rows.Err(), "postgres: list campaigns iterate")
}

func (s *PostgresStore) DuplicateCampaign(ctx context.Context, id string) (*model.Campaign, error) {
	src, err := s.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	dup := duplicateOf(*src, s.clock())
	if err := s.SaveCampaign(ctx, &dup); err != nil {
		return nil, err
	}
	return &dup, nil
}

func (s *PostgresStore) DeleteCampaign(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete campaign %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "campaign %s", id)
	}
	return nil
}

func (s *PostgresStore) CountByStatus(ctx context.Context, status model.CampaignStatus) (int, error) {
	var n int
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM campaigns WHERE status = $1`, string(status),
	).Scan(&n)
	return n, eris.Wrap(err, "postgres: count campaigns")
}

func (s *PostgresStore) GetProfile(ctx context.Context) (*model.Profile, error) {
	var p model.Profile
	err := s.pool.QueryRow(ctx,
		`SELECT name, email, company, phone, location, industry FROM profile WHERE id = 1`,
	).Scan(&p.Name, &p.Email, &p.Company, &p.Phone, &p.Location, &p.Industry)
	if errors.Is(err, pgx.ErrNoRows) {
		return &model.Profile{Industry: model.DefaultIndustry}, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get profile")
	}
	return &p, nil
}

func (s *PostgresStore) SaveProfile(ctx context.Context, p model.Profile) error {
	if p.Industry == "" {
		p.Industry = model.DefaultIndustry
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO profile (id, name, email, company, phone, location, industry)
		 VALUES (1, $1, $2, $3, $4, $5, $6)
		 ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name, email = EXCLUDED.email, company = EXCLUDED.company,
			phone = EXCLUDED.phone, location = EXCLUDED.location, industry = EXCLUDED.industry`,
		p.Name, p.Email, p.Company, p.Phone, p.Location, p.Industry,
	)
	return eris.Wrap(err, "postgres: save profile")
}

func (s *PostgresStore) GetSetting(ctx context.Context, key string) (string, error) {
	if !knownSetting(key) {
		return "", eris.Wrapf(ErrUnknownSetting, "postgres: setting %q", key)
	}
	var value string
	err := s.pool.QueryRow(ctx, `SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return settingDefault(key)
	}
	if err != nil {
		return "", eris.Wrapf(err, "postgres: get setting %s", key)
	}
	return value, nil
}

func (s *PostgresStore) SetSetting(ctx context.Context, key, value string) error {
	if err := ValidateSetting(key, value); err != nil {
		return err
	}
	_, err := s.pool.Exec(ctx,
		`INSERT INTO settings (key, value, updated_at) VALUES ($1, $2, $3)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		key, value, s.clock().UTC(),
	)
	return eris.Wrapf(err, "postgres: set setting %s", key)
}
