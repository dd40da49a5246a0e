package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"paraguay-shipping/internal/domain"
	"paraguay-shipping/internal/ratetable"
	"paraguay-shipping/pkg/logger"
)

type shippingUsecase struct {
	settingsRepo domain.SettingsRepository
	regions      domain.RegionDirectory
	methodID     string
	country      string
}

func NewShippingUsecase(settingsRepo domain.SettingsRepository, regions domain.RegionDirectory, methodID, country string) domain.ShippingUsecase {
	if country == "" {
		country = domain.CountryParaguay
	}
	return &shippingUsecase{
		settingsRepo: settingsRepo,
		regions:      regions,
		methodID:     methodID,
		country:      strings.ToUpper(country),
	}
}

// CalculateShipping quotes dest against the current settings and pushes the
// offers into sink. Settings are read and parsed on every call so merchant
// edits apply to the next quote.
func (u *shippingUsecase) CalculateShipping(ctx context.Context, dest domain.Destination, sink domain.OfferSink) (*domain.Quote, error) {
	log := logger.WithContext(ctx)

	if strings.TrimSpace(dest.City) == "" {
		log.Debug().Msg("Shipping: no destination city, nothing to quote")
		return &domain.Quote{}, nil
	}

	country := strings.ToUpper(strings.TrimSpace(dest.Country))
	if country == "" {
		country = u.country
	}
	if country != u.country {
		log.Debug().Str("country", country).Msg("Shipping: destination outside served country")
		return &domain.Quote{}, nil
	}

	settings, err := loadSettings(ctx, u.settingsRepo, u.methodID)
	if err != nil {
		return nil, err
	}
	if !settings.Enabled {
		return &domain.Quote{}, nil
	}

	rates := ratetable.ParseRates(settings.Rates, ratetable.ParseOptions{Normalize: true})
	pickups := ratetable.ParsePickups(settings.PickupLocations, ratetable.ParseOptions{Normalize: false})

	department := ""
	if settings.MatchDepartment {
		department = u.departmentName(country, dest.StateCode, settings.ResolveRegion)
	}

	offers := ratetable.Resolve(dest, ratetable.ResolveInput{
		MethodID:        settings.MethodID,
		Title:           settings.Title,
		DefaultCost:     settings.DefaultCost,
		Rates:           rates,
		Pickups:         pickups,
		Department:      department,
		MatchDepartment: settings.MatchDepartment,
	})
	for _, offer := range offers {
		sink.AddRate(offer)
	}

	skipped := append(append([]domain.LineError{}, rates.Skipped...), pickups.Skipped...)
	for _, le := range skipped {
		log.Warn().
			Str("table", le.Table).
			Int("line", le.Line).
			Str("text", le.Text).
			Str("reason", le.Reason).
			Msg("Shipping: skipped malformed configuration line")
	}

	log.Debug().
		Str("city", dest.City).
		Str("department", department).
		Int("offers", len(offers)).
		Msg("Shipping: quote resolved")

	return &domain.Quote{Offers: offers, Skipped: skipped}, nil
}

// GetCities lists the configured cities for the city selector.
func (u *shippingUsecase) GetCities(ctx context.Context) ([]domain.CityOption, error) {
	settings, err := loadSettings(ctx, u.settingsRepo, u.methodID)
	if err != nil {
		return nil, err
	}
	cities := ratetable.ParseRates(settings.Rates, ratetable.ParseOptions{Normalize: true}).Cities()
	return cities, nil
}

// departmentName turns the destination state into the name merchants type in
// their rate lines. Unknown codes come back unchanged from the directory.
func (u *shippingUsecase) departmentName(country, stateCode string, resolve bool) string {
	stateCode = strings.TrimSpace(stateCode)
	if stateCode == "" || !resolve || u.regions == nil {
		return stateCode
	}
	return u.regions.StateName(country, stateCode)
}

func loadSettings(ctx context.Context, repo domain.SettingsRepository, methodID string) (*domain.Settings, error) {
	settings, err := repo.GetSettings(ctx, methodID)
	if errors.Is(err, domain.ErrSettingsNotFound) {
		return domain.DefaultSettings(methodID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load shipping settings: %w", err)
	}
	if settings.MethodID == "" {
		settings.MethodID = methodID
	}
	return settings, nil
}
