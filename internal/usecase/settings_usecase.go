package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"paraguay-shipping/internal/domain"
	"paraguay-shipping/internal/ratetable"
	"paraguay-shipping/pkg/logger"
	"paraguay-shipping/pkg/utils"

	"github.com/goccy/go-json"
)

type settingsUsecase struct {
	repo     domain.SettingsRepository
	archive  domain.SettingsArchive
	methodID string
	now      func() time.Time
}

// NewSettingsUsecase wires the settings surface. archive may be nil, in which
// case saves are not snapshotted.
func NewSettingsUsecase(repo domain.SettingsRepository, archive domain.SettingsArchive, methodID string) domain.SettingsUsecase {
	return &settingsUsecase{
		repo:     repo,
		archive:  archive,
		methodID: methodID,
		now:      time.Now,
	}
}

func (u *settingsUsecase) GetSettings(ctx context.Context) (*domain.SettingsReport, error) {
	settings, err := loadSettings(ctx, u.repo, u.methodID)
	if err != nil {
		return nil, err
	}
	return &domain.SettingsReport{
		Settings: settings,
		Warnings: lineWarnings(settings),
	}, nil
}

// ValidateSettings returns the lines a calculation would skip. The error is
// non-nil only for settings that cannot be saved at all.
func (u *settingsUsecase) ValidateSettings(s *domain.Settings) ([]domain.LineError, error) {
	if strings.TrimSpace(s.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidSettings)
	}
	if !utils.IsAmount(s.DefaultCost) {
		return nil, fmt.Errorf("%w: default cost %q is not a valid amount", domain.ErrInvalidSettings, s.DefaultCost)
	}
	return lineWarnings(s), nil
}

// UpdateSettings validates, saves and snapshots the settings. Malformed lines
// do not block the save; they come back as warnings for the merchant.
func (u *settingsUsecase) UpdateSettings(ctx context.Context, s *domain.Settings) (*domain.SettingsReport, error) {
	log := logger.WithContext(ctx)

	s.MethodID = u.methodID
	s.Title = strings.TrimSpace(s.Title)
	s.DefaultCost = strings.TrimSpace(s.DefaultCost)

	warnings, err := u.ValidateSettings(s)
	if err != nil {
		return nil, err
	}

	saved, err := u.repo.SaveSettings(ctx, s)
	if err != nil {
		return nil, fmt.Errorf("save shipping settings: %w", err)
	}

	log.Info().
		Str("method_id", saved.MethodID).
		Bool("enabled", saved.Enabled).
		Int("warnings", len(warnings)).
		Msg("Settings: shipping settings updated")

	report := &domain.SettingsReport{Settings: saved, Warnings: warnings}
	if u.archive != nil {
		url, err := u.snapshot(ctx, saved)
		if err != nil {
			// the save already succeeded; a missing snapshot is not worth failing it
			log.Warn().Err(err).Msg("Settings: snapshot upload failed")
		} else {
			report.SnapshotURL = url
		}
	}

	return report, nil
}

func (u *settingsUsecase) snapshot(ctx context.Context, s *domain.Settings) (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}
	name := fmt.Sprintf("%s/%s.json", s.MethodID, u.now().UTC().Format("20060102T150405Z"))
	return u.archive.PutSnapshot(ctx, name, data)
}

// lineWarnings parses both tables the way a calculation would and also flags
// rates that are not amounts.
func lineWarnings(s *domain.Settings) []domain.LineError {
	rates := ratetable.ParseRates(s.Rates, ratetable.ParseOptions{Normalize: true})
	pickups := ratetable.ParsePickups(s.PickupLocations, ratetable.ParseOptions{Normalize: false})

	warnings := make([]domain.LineError, 0, len(rates.Skipped)+len(pickups.Skipped))
	warnings = append(warnings, rates.Skipped...)
	warnings = append(warnings, pickups.Skipped...)
	warnings = append(warnings, invalidAmounts(domain.TableRates, s.Rates)...)
	warnings = append(warnings, invalidAmounts(domain.TablePickups, s.PickupLocations)...)
	return warnings
}

// invalidAmounts reports well-formed lines whose last field is not an amount.
func invalidAmounts(table, raw string) []domain.LineError {
	var out []domain.LineError
	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		fields := strings.Split(line, "|")
		if line == "" || len(fields) < 2 || len(fields) > 3 || strings.TrimSpace(fields[0]) == "" {
			continue
		}
		if table == domain.TablePickups && len(fields) != 2 {
			continue
		}
		if rate := strings.TrimSpace(fields[len(fields)-1]); !utils.IsAmount(rate) {
			out = append(out, domain.LineError{
				Table:  table,
				Line:   i + 1,
				Text:   line,
				Reason: fmt.Sprintf("rate %q is not a valid amount", rate),
			})
		}
	}
	return out
}
