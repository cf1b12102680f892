package engine

import (
	"strings"

	"routescout/internal/airline"
)

// FleetMatcher decides which of a route's offered aircraft the operator
// actually owns. Implementations must return the empty set, not an error,
// when nothing matches.
type FleetMatcher interface {
	Match(fleet []OwnedAircraft, options []airline.AircraftOption) []airline.AircraftOption
}

// SubstringMatcher matches by model id, or by normalized substring
// containment of the owned name fragment in the offered model name. The
// containment rule tolerates partial names typed by the operator ("737"
// owns every 737 variant) at the cost of false positives on very short
// fragments.
type SubstringMatcher struct{}

func (SubstringMatcher) Match(fleet []OwnedAircraft, options []airline.AircraftOption) []airline.AircraftOption {
	var matched []airline.AircraftOption
	for _, opt := range options {
		optName := normalizeName(opt.Name)
		for _, owned := range fleet {
			if owned.ModelID > 0 && owned.ModelID == opt.ModelID {
				matched = append(matched, opt)
				break
			}
			frag := normalizeName(owned.NameFragment)
			if frag != "" && strings.Contains(optName, frag) {
				matched = append(matched, opt)
				break
			}
		}
	}
	return matched
}

// ExactMatcher is the strict alternative: model id equality or full
// normalized name equality only.
type ExactMatcher struct{}

func (ExactMatcher) Match(fleet []OwnedAircraft, options []airline.AircraftOption) []airline.AircraftOption {
	var matched []airline.AircraftOption
	for _, opt := range options {
		optName := normalizeName(opt.Name)
		for _, owned := range fleet {
			if owned.ModelID > 0 && owned.ModelID == opt.ModelID {
				matched = append(matched, opt)
				break
			}
			if frag := normalizeName(owned.NameFragment); frag != "" && frag == optName {
				matched = append(matched, opt)
				break
			}
		}
	}
	return matched
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
