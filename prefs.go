package main

import (
	"math"
	"time"
)

// ========== Preference Normalizer ==========

// PreferenceDefaults are the fixed fallbacks used when neither the request
// nor the stored profile supplies a value. Kept as one table so tests can
// substitute an alternate set.
type PreferenceDefaults struct {
	NightlyBudget     float64
	Nights            int
	StadiumProximity  int
	LocalCulture      int
	Walkability       int
	Nightlife         int
	BudgetSensitivity int
	Language          string
}

func defaultPreferences() PreferenceDefaults {
	return PreferenceDefaults{
		NightlyBudget:     220,
		Nights:            4,
		StadiumProximity:  70,
		LocalCulture:      60,
		Walkability:       65,
		Nightlife:         40,
		BudgetSensitivity: 55,
		Language:          "en",
	}
}

// normalizePreferences merges the request preferences, the stored profile
// and the trip dates into one complete record. Precedence per field is
// request > profile > defaults, except nights, where a valid date range on
// the trip wins over any explicit value. It never fails: anything missing
// or out of range degrades to the defaults table.
func normalizePreferences(prefs *LodgingPreferences, profile *StoredProfile, trip *TripSelection, def PreferenceDefaults) PreferenceRecord {
	if prefs == nil {
		prefs = &LodgingPreferences{}
	}
	if profile == nil {
		profile = &StoredProfile{}
	}

	budget := pickFloat(prefs.NightlyBudget, profile.NightlyBudget, def.NightlyBudget)
	if !isFinite(budget) || budget <= 0 {
		budget = def.NightlyBudget
	}

	rec := PreferenceRecord{
		NightlyBudget:       budget,
		Nights:              deriveNights(trip, prefs.Nights, def.Nights),
		CarRental:           pickBool(prefs.CarRental, profile.CarRental),
		MultipleMatches:     pickBool(prefs.MultipleMatches, profile.MultipleMatches),
		TravelingWithFamily: pickBool(prefs.TravelingWithFamily, profile.TravelingWithFamily),
		Weights: PreferenceWeights{
			StadiumProximity:  clampWeight(pickFloat(prefs.StadiumProximity, profile.StadiumProximity, float64(def.StadiumProximity))),
			LocalCulture:      clampWeight(pickFloat(prefs.LocalCulture, profile.LocalCulture, float64(def.LocalCulture))),
			Walkability:       clampWeight(pickFloat(prefs.Walkability, profile.Walkability, float64(def.Walkability))),
			Nightlife:         clampWeight(pickFloat(prefs.Nightlife, profile.Nightlife, float64(def.Nightlife))),
			BudgetSensitivity: clampWeight(pickFloat(prefs.BudgetSensitivity, profile.BudgetSensitivity, float64(def.BudgetSensitivity))),
		},
		Language: firstNonEmpty(prefs.Language, profile.Language, def.Language),
		Notes:    firstNonEmpty(prefs.Notes, profile.Notes, ""),
	}
	return rec
}

// deriveNights prefers a valid positive date range on the trip, then the
// explicit preference, then the default. Always >= 1.
func deriveNights(trip *TripSelection, explicit *int, def int) int {
	if trip != nil && trip.StartDate != "" && trip.EndDate != "" {
		start, err1 := time.Parse("2006-01-02", trip.StartDate)
		end, err2 := time.Parse("2006-01-02", trip.EndDate)
		if err1 == nil && err2 == nil {
			days := end.Sub(start).Hours() / 24
			if days > 0 {
				n := int(math.Round(days))
				if n < 1 {
					n = 1
				}
				return n
			}
		}
	}
	if explicit != nil && *explicit >= 1 {
		return *explicit
	}
	if def < 1 {
		return 1
	}
	return def
}

// clampWeight maps any numeric input into the integer range [0,100].
// Non-finite values land on the minimum bound.
func clampWeight(v float64) int {
	if !isFinite(v) {
		return 0
	}
	w := int(math.Round(v))
	if w < 0 {
		return 0
	}
	if w > 100 {
		return 100
	}
	return w
}

func pickFloat(req, prof *float64, def float64) float64 {
	if req != nil {
		return *req
	}
	if prof != nil {
		return *prof
	}
	return def
}

func pickBool(req, prof *bool) bool {
	if req != nil {
		return *req
	}
	if prof != nil {
		return *prof
	}
	return false
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
