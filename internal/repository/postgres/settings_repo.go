package pgrepo

import (
	"context"
	"errors"
	"fmt"

	"paraguay-shipping/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const createSettingsTable = `
CREATE TABLE IF NOT EXISTS shipping_settings (
	method_id        TEXT PRIMARY KEY,
	enabled          BOOLEAN     NOT NULL DEFAULT TRUE,
	title            TEXT        NOT NULL,
	default_cost     TEXT        NOT NULL DEFAULT '',
	rates            TEXT        NOT NULL DEFAULT '',
	pickup_locations TEXT        NOT NULL DEFAULT '',
	match_department BOOLEAN     NOT NULL DEFAULT FALSE,
	resolve_region   BOOLEAN     NOT NULL DEFAULT FALSE,
	updated_at       TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const selectSettings = `
SELECT method_id, enabled, title, default_cost, rates, pickup_locations,
       match_department, resolve_region, updated_at
FROM shipping_settings
WHERE method_id = $1`

const upsertSettings = `
INSERT INTO shipping_settings (
	method_id, enabled, title, default_cost, rates, pickup_locations,
	match_department, resolve_region, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW())
ON CONFLICT (method_id) DO UPDATE SET
	enabled          = EXCLUDED.enabled,
	title            = EXCLUDED.title,
	default_cost     = EXCLUDED.default_cost,
	rates            = EXCLUDED.rates,
	pickup_locations = EXCLUDED.pickup_locations,
	match_department = EXCLUDED.match_department,
	resolve_region   = EXCLUDED.resolve_region,
	updated_at       = NOW()
RETURNING method_id, enabled, title, default_cost, rates, pickup_locations,
          match_department, resolve_region, updated_at`

type settingsRepository struct {
	db DBTX
}

func NewSettingsRepository(db DBTX) domain.SettingsRepository {
	return &settingsRepository{db: db}
}

// EnsureSchema creates the settings table when it does not exist yet.
func EnsureSchema(ctx context.Context, db DBTX) error {
	if _, err := db.Exec(ctx, createSettingsTable); err != nil {
		return fmt.Errorf("create shipping_settings: %w", err)
	}
	return nil
}

func (r *settingsRepository) GetSettings(ctx context.Context, methodID string) (*domain.Settings, error) {
	s, err := scanSettings(r.db.QueryRow(ctx, selectSettings, methodID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get shipping settings %s: %w", methodID, err)
	}
	return s, nil
}

func (r *settingsRepository) SaveSettings(ctx context.Context, s *domain.Settings) (*domain.Settings, error) {
	row := r.db.QueryRow(ctx, upsertSettings,
		s.MethodID,
		s.Enabled,
		s.Title,
		s.DefaultCost,
		s.Rates,
		s.PickupLocations,
		s.MatchDepartment,
		s.ResolveRegion,
	)
	saved, err := scanSettings(row)
	if err != nil {
		return nil, fmt.Errorf("save shipping settings %s: %w", s.MethodID, err)
	}
	return saved, nil
}

func scanSettings(row pgx.Row) (*domain.Settings, error) {
	var (
		s         domain.Settings
		updatedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&s.MethodID,
		&s.Enabled,
		&s.Title,
		&s.DefaultCost,
		&s.Rates,
		&s.PickupLocations,
		&s.MatchDepartment,
		&s.ResolveRegion,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.UpdatedAt = pgtimeToTime(updatedAt)
	return &s, nil
}
