package region

import (
	"sort"
	"strings"

	"paraguay-shipping/internal/domain"
)

// State is one first-level administrative region.
type State struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// paraguayStates uses the codes storefront checkouts send for Paraguay.
var paraguayStates = map[string]string{
	"PY-ASU": "Asunción",
	"PY-1":   "Concepción",
	"PY-2":   "San Pedro",
	"PY-3":   "Cordillera",
	"PY-4":   "Guairá",
	"PY-5":   "Caaguazú",
	"PY-6":   "Caazapá",
	"PY-7":   "Itapúa",
	"PY-8":   "Misiones",
	"PY-9":   "Paraguarí",
	"PY-10":  "Alto Paraná",
	"PY-11":  "Central",
	"PY-12":  "Ñeembucú",
	"PY-13":  "Amambay",
	"PY-14":  "Canindeyú",
	"PY-15":  "Presidente Hayes",
	"PY-16":  "Alto Paraguay",
	"PY-17":  "Boquerón",
}

// Directory is an in-memory domain.RegionDirectory.
type Directory struct {
	states map[string]map[string]string
}

// NewDirectory returns a directory preloaded with Paraguay's departments.
func NewDirectory() *Directory {
	return &Directory{
		states: map[string]map[string]string{
			domain.CountryParaguay: paraguayStates,
		},
	}
}

var _ domain.RegionDirectory = (*Directory)(nil)

// StateName returns the display name for a state code, or the code itself
// when the country or code is unknown.
func (d *Directory) StateName(countryCode, stateCode string) string {
	states, ok := d.states[strings.ToUpper(strings.TrimSpace(countryCode))]
	if !ok {
		return stateCode
	}
	if name, ok := states[strings.ToUpper(strings.TrimSpace(stateCode))]; ok {
		return name
	}
	return stateCode
}

// States lists a country's regions sorted by name.
func (d *Directory) States(countryCode string) []State {
	states := d.states[strings.ToUpper(strings.TrimSpace(countryCode))]
	out := make([]State, 0, len(states))
	for code, name := range states {
		out = append(out, State{Code: code, Name: name})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}
