package acs

import (
	"sort"
	"strings"
)

// StateAll is the aggregate placeholder: it expands to every known state
// code when passed to GetData or Resolve.
const StateAll = "ALL"

// stateFIPS maps two-letter state codes to their zero-padded FIPS codes,
// as used in the Census PUMS file naming scheme from 2017 on. The set is
// the 50 states plus DC and Puerto Rico, matching the codes the Census
// publishes per-state PUMS archives for.
var stateFIPS = map[string]string{
	"AL": "01", "AK": "02", "AZ": "04", "AR": "05", "CA": "06",
	"CO": "08", "CT": "09", "DE": "10", "FL": "12", "GA": "13",
	"HI": "15", "ID": "16", "IL": "17", "IN": "18", "IA": "19",
	"KS": "20", "KY": "21", "LA": "22", "ME": "23", "MD": "24",
	"MA": "25", "MI": "26", "MN": "27", "MS": "28", "MO": "29",
	"MT": "30", "NE": "31", "NV": "32", "NH": "33", "NJ": "34",
	"NM": "35", "NY": "36", "NC": "37", "ND": "38", "OH": "39",
	"OK": "40", "OR": "41", "PA": "42", "RI": "44", "SC": "45",
	"SD": "46", "TN": "47", "TX": "48", "UT": "49", "VT": "50",
	"VA": "51", "WA": "53", "WV": "54", "WI": "55", "WY": "56",
	"DC": "11", "PR": "72",
}

// AllStates returns every known state code in sorted order.
func AllStates() []string {
	states := make([]string, 0, len(stateFIPS))
	for st := range stateFIPS {
		states = append(states, st)
	}
	sort.Strings(states)
	return states
}

// normalizeStates upper-cases the given codes, validates each against the
// known-state set, and expands the StateAll placeholder. Validation happens
// before any file or network I/O, so an unrecognized code never triggers a
// partial download.
func normalizeStates(states []string) ([]string, error) {
	normalized := make([]string, 0, len(states))
	for _, raw := range states {
		st := strings.ToUpper(strings.TrimSpace(raw))
		if st == StateAll {
			normalized = append(normalized, AllStates()...)
			continue
		}
		if _, ok := stateFIPS[st]; !ok {
			return nil, newInvalidStateError(raw)
		}
		normalized = append(normalized, st)
	}
	if len(normalized) == 0 {
		return nil, newConfigurationError("at least one state code is required")
	}
	return normalized, nil
}
