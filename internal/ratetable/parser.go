// Package ratetable parses merchant rate configuration and resolves a
// destination to shipping offers.
//
// Rate lines look like "City|Department|Rate" or "City|Rate"; pickup lines
// look like "Location|Rate". Malformed lines are skipped and reported, never
// fatal.
package ratetable

import (
	"strings"

	"paraguay-shipping/internal/domain"
	"paraguay-shipping/pkg/utils"
)

const fieldSeparator = "|"

// ParseOptions controls how lookup keys are derived.
type ParseOptions struct {
	// Normalize keys with utils.NormalizeName. When false the trimmed text is
	// the key, so only exact spellings match.
	Normalize bool
}

func (o ParseOptions) key(s string) string {
	if o.Normalize {
		return utils.NormalizeName(s)
	}
	return strings.TrimSpace(s)
}

// Table is the parsed rates configuration.
type Table struct {
	opts ParseOptions

	byCity map[string]domain.RateEntry
	byDept map[string]map[string]domain.RateEntry

	// getCities view keyed by the merchant's own spelling
	cities    map[string]domain.RateEntry
	cityOrder []string

	Skipped []domain.LineError
}

// PickupTable is the parsed pickup-locations configuration.
type PickupTable struct {
	opts      ParseOptions
	locations map[string]domain.PickupLocation
	order     []string

	Skipped []domain.LineError
}

// ParseRates parses "City|Department|Rate" and "City|Rate" lines. Later lines
// for the same key overwrite earlier ones.
func ParseRates(raw string, opts ParseOptions) *Table {
	t := &Table{
		opts:   opts,
		byCity: make(map[string]domain.RateEntry),
		byDept: make(map[string]map[string]domain.RateEntry),
		cities: make(map[string]domain.RateEntry),
	}

	eachLine(raw, func(n int, line string) {
		fields := splitFields(line)

		var entry domain.RateEntry
		switch len(fields) {
		case 3:
			entry = domain.RateEntry{City: fields[0], Department: fields[1], Rate: fields[2]}
		case 2:
			entry = domain.RateEntry{City: fields[0], Rate: fields[1]}
		default:
			t.skip(n, line, "expected City|Department|Rate or City|Rate")
			return
		}
		if entry.City == "" {
			t.skip(n, line, "missing city")
			return
		}

		t.add(entry)
	})

	return t
}

// ParsePickups parses "Location|Rate" lines.
func ParsePickups(raw string, opts ParseOptions) *PickupTable {
	p := &PickupTable{
		opts:      opts,
		locations: make(map[string]domain.PickupLocation),
	}

	eachLine(raw, func(n int, line string) {
		fields := splitFields(line)
		if len(fields) != 2 {
			p.Skipped = append(p.Skipped, domain.LineError{
				Table: domain.TablePickups, Line: n, Text: line, Reason: "expected Location|Rate",
			})
			return
		}
		if fields[0] == "" {
			p.Skipped = append(p.Skipped, domain.LineError{
				Table: domain.TablePickups, Line: n, Text: line, Reason: "missing location",
			})
			return
		}

		key := p.opts.key(fields[0])
		if _, seen := p.locations[key]; !seen {
			p.order = append(p.order, key)
		}
		p.locations[key] = domain.PickupLocation{Label: fields[0], Rate: fields[1]}
	})

	return p
}

func (t *Table) add(entry domain.RateEntry) {
	cityKey := t.opts.key(entry.City)
	t.byCity[cityKey] = entry

	depts, ok := t.byDept[cityKey]
	if !ok {
		depts = make(map[string]domain.RateEntry)
		t.byDept[cityKey] = depts
	}
	depts[t.opts.key(entry.Department)] = entry

	if _, seen := t.cities[entry.City]; !seen {
		t.cityOrder = append(t.cityOrder, entry.City)
	}
	t.cities[entry.City] = entry
}

func (t *Table) skip(n int, line, reason string) {
	t.Skipped = append(t.Skipped, domain.LineError{
		Table: domain.TableRates, Line: n, Text: line, Reason: reason,
	})
}

// Len is the number of distinct city keys.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byCity)
}

// Lookup finds the entry for a city, optionally narrowed by department.
//
// With matchDepartment the (city, department) pair wins, then a city-wide
// "City|Rate" line. A destination without a department falls back to the
// last line seen for the city.
func (t *Table) Lookup(city, department string, matchDepartment bool) (domain.RateEntry, bool) {
	if t == nil {
		return domain.RateEntry{}, false
	}
	cityKey := t.opts.key(city)
	if cityKey == "" {
		return domain.RateEntry{}, false
	}

	if !matchDepartment {
		e, ok := t.byCity[cityKey]
		return e, ok
	}

	depts := t.byDept[cityKey]
	deptKey := t.opts.key(department)
	if deptKey != "" {
		if e, ok := depts[deptKey]; ok {
			return e, true
		}
	}
	if e, ok := depts[""]; ok {
		return e, true
	}
	if deptKey == "" {
		e, ok := t.byCity[cityKey]
		return e, ok
	}
	return domain.RateEntry{}, false
}

// Cities returns one option per distinct city spelling, in first-seen order.
func (t *Table) Cities() []domain.CityOption {
	if t == nil {
		return nil
	}
	out := make([]domain.CityOption, 0, len(t.cityOrder))
	for _, city := range t.cityOrder {
		e := t.cities[city]
		out = append(out, domain.CityOption{City: city, Department: e.Department, Rate: e.Rate})
	}
	return out
}

// Locations returns pickup locations in first-seen order.
func (p *PickupTable) Locations() []domain.PickupLocation {
	if p == nil {
		return nil
	}
	out := make([]domain.PickupLocation, 0, len(p.order))
	for _, key := range p.order {
		out = append(out, p.locations[key])
	}
	return out
}

func eachLine(raw string, fn func(n int, line string)) {
	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		fn(i+1, line)
	}
}

func splitFields(line string) []string {
	fields := strings.Split(line, fieldSeparator)
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}
