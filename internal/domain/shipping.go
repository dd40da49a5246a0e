package domain

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrMalformedLine    = errors.New("malformed configuration line")
	ErrSettingsNotFound = errors.New("shipping settings not found")
	ErrInvalidSettings  = errors.New("invalid shipping settings")
)

// TaxMode tells the storefront how to apply tax to an offer's cost.
type TaxMode string

const (
	TaxPerItem  TaxMode = "per_item"
	TaxPerOrder TaxMode = "per_order"
)

// RateEntry is one parsed "City|Department|Rate" line. City keeps the
// merchant's spelling for display.
type RateEntry struct {
	City       string `json:"city"`
	Department string `json:"department"`
	Rate       string `json:"rate"`
}

// PickupLocation is one parsed "Location|Rate" line.
type PickupLocation struct {
	Label string `json:"label"`
	Rate  string `json:"rate"`
}

// Destination is the customer's shipping address as far as rating cares.
type Destination struct {
	Country   string `json:"country"`
	City      string `json:"city"`
	StateCode string `json:"state"`
}

// ShippingOffer is one selectable shipping option handed back to the storefront.
type ShippingOffer struct {
	ID      string  `json:"id"`
	Label   string  `json:"label"`
	Cost    string  `json:"cost"`
	TaxMode TaxMode `json:"calcTax"`
	Pickup  bool    `json:"pickup"`
}

// CityOption feeds the city selector: the merchant's city text with its
// department and rate.
type CityOption struct {
	City       string `json:"city"`
	Department string `json:"department"`
	Rate       string `json:"rate"`
}

// Config table names reported in LineError.Table.
const (
	TableRates   = "rates"
	TablePickups = "pickup_locations"
)

// LineError describes a configuration line that was skipped.
type LineError struct {
	Table  string `json:"table"`
	Line   int    `json:"line"`
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

func (e *LineError) Error() string {
	return fmt.Sprintf("%s line %d: %s: %q", e.Table, e.Line, e.Reason, e.Text)
}

func (e *LineError) Unwrap() error {
	return ErrMalformedLine
}

// Quote is the result of one shipping calculation.
type Quote struct {
	Offers  []ShippingOffer `json:"offers"`
	Skipped []LineError     `json:"skippedLines,omitempty"`
}

// OfferSink receives offers in display order.
type OfferSink interface {
	AddRate(offer ShippingOffer)
}

// OfferCollector is a slice-backed OfferSink.
type OfferCollector struct {
	Offers []ShippingOffer
}

func (c *OfferCollector) AddRate(offer ShippingOffer) {
	c.Offers = append(c.Offers, offer)
}

// RegionDirectory maps a (country, state code) pair to a display name.
// Unknown codes are returned unchanged.
type RegionDirectory interface {
	StateName(countryCode, stateCode string) string
}

type ShippingUsecase interface {
	CalculateShipping(ctx context.Context, dest Destination, sink OfferSink) (*Quote, error)
	GetCities(ctx context.Context) ([]CityOption, error)
}
