package domain

import (
	"context"
	"time"
)

const (
	DefaultMethodID = "paraguay_shipping"
	DefaultTitle    = "Paraguay Shipping"
	CountryParaguay = "PY"
)

// Settings is the merchant-facing configuration of the shipping method.
// Rates holds "City|Department|Rate" (or "City|Rate") lines and
// PickupLocations holds "Location|Rate" lines, one per line.
type Settings struct {
	MethodID        string    `json:"methodId"`
	Enabled         bool      `json:"enabled"`
	Title           string    `json:"title"`
	DefaultCost     string    `json:"defaultCost"`
	Rates           string    `json:"rates"`
	PickupLocations string    `json:"pickupLocations"`
	MatchDepartment bool      `json:"matchDepartment"`
	ResolveRegion   bool      `json:"resolveRegion"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// DefaultSettings mirrors the defaults a fresh install starts with.
func DefaultSettings(methodID string) *Settings {
	if methodID == "" {
		methodID = DefaultMethodID
	}
	return &Settings{
		MethodID: methodID,
		Enabled:  true,
		Title:    DefaultTitle,
	}
}

// SettingsReport pairs settings with the lines a calculation would skip.
type SettingsReport struct {
	Settings    *Settings   `json:"settings"`
	Warnings    []LineError `json:"warnings"`
	SnapshotURL string      `json:"snapshotUrl,omitempty"`
}

type SettingsRepository interface {
	// GetSettings returns ErrSettingsNotFound when nothing was saved yet.
	GetSettings(ctx context.Context, methodID string) (*Settings, error)
	SaveSettings(ctx context.Context, s *Settings) (*Settings, error)
}

// SettingsArchive stores point-in-time copies of saved settings.
type SettingsArchive interface {
	PutSnapshot(ctx context.Context, name string, data []byte) (string, error)
}

type SettingsUsecase interface {
	GetSettings(ctx context.Context) (*SettingsReport, error)
	ValidateSettings(s *Settings) ([]LineError, error)
	UpdateSettings(ctx context.Context, s *Settings) (*SettingsReport, error)
}
