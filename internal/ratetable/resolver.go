package ratetable

import (
	"strconv"
	"strings"

	"paraguay-shipping/internal/domain"
	"paraguay-shipping/pkg/utils"
)

// ResolveInput carries everything Resolve needs besides the destination.
type ResolveInput struct {
	MethodID    string
	Title       string
	DefaultCost string

	Rates   *Table
	Pickups *PickupTable

	// Department is the destination's department display name, already
	// resolved from its state code.
	Department      string
	MatchDepartment bool
}

// Resolve returns the primary city offer followed by one offer per pickup
// location. An empty destination city yields no offers at all.
func Resolve(dest domain.Destination, in ResolveInput) []domain.ShippingOffer {
	city := strings.TrimSpace(dest.City)
	if city == "" {
		return nil
	}

	cost := in.DefaultCost
	displayCity := city
	if entry, ok := in.Rates.Lookup(city, in.Department, in.MatchDepartment); ok {
		cost = entry.Rate
		displayCity = entry.City
	}

	offers := []domain.ShippingOffer{{
		ID:      in.MethodID,
		Label:   in.Title + domain.LabelJoiner + displayCity,
		Cost:    cost,
		TaxMode: domain.TaxPerItem,
	}}

	used := map[string]int{in.MethodID: 1}
	for _, loc := range in.Pickups.Locations() {
		offers = append(offers, domain.ShippingOffer{
			ID:      pickupOfferID(in.MethodID, loc.Label, used),
			Label:   loc.Label,
			Cost:    loc.Rate,
			TaxMode: domain.TaxPerItem,
			Pickup:  true,
		})
	}

	return offers
}

// pickupOfferID derives "<method>_<slug>" and suffixes "-2", "-3"... when two
// labels slug to the same id.
func pickupOfferID(methodID, label string, used map[string]int) string {
	slug := utils.GenerateSlug(label)
	if slug == "" {
		slug = "pickup"
	}
	base := methodID + "_" + slug

	id := base
	for used[id] > 0 {
		used[base]++
		id = base + "-" + strconv.Itoa(used[base])
	}
	used[id]++
	return id
}
