package main

import (
	"fmt"
	"math"
)

// ========== Fallback Synthesizer ==========

// affordabilityLabel buckets a nightly budget. Fixed business thresholds.
func affordabilityLabel(nightlyBudget float64) string {
	switch {
	case nightlyBudget <= 180:
		return "Budget"
	case nightlyBudget <= 275:
		return "Balanced"
	default:
		return "Premium"
	}
}

func formatDollars(v float64) string {
	return fmt.Sprintf("$%d", int(math.Round(v)))
}

func roundToNearest50(v float64) float64 {
	return math.Round(v/50) * 50
}

// synthesizeLodgingPlan builds a plan directly from the zone catalog and the
// normalized preferences. It is the path of last resort and never fails:
// every derived value has a hard-coded final default. Given identical inputs
// it produces identical output.
func synthesizeLodgingPlan(rec PreferenceRecord, research CityResearch, trip *TripSelection) LodgingPlan {
	city := trip.FocusCity()

	// Catalog order already reflects research priority.
	zones := zonesOrSynthetic(city, research)
	if len(zones) > 3 {
		zones = zones[:3]
	}

	comparisons := make([]ZoneComparison, 0, len(zones))
	for i, z := range zones {
		comparisons = append(comparisons, ZoneComparison{
			ZoneName:         z.Name,
			MatchScore:       synthesisScore(i),
			PriceRange:       firstNonEmpty(z.Ratings[ratingPriceRange], z.PriceRange, defaultPriceRange),
			CommuteToStadium: firstNonEmpty(z.Ratings[ratingCommuteToStadium], defaultCommute),
			CommuteToFanFest: firstNonEmpty(z.Ratings[ratingCommuteToFanFest], defaultCommute),
			Vibe:             firstNonEmpty(z.Descriptor, "Mixed"),
			Pros:             capList(z.Pros, maxProsConsDisplay),
			Cons:             capList(z.Cons, maxProsConsDisplay),
		})
	}

	top := TopRecommendation{
		ZoneComparison: comparisons[0],
		EstimatedTotal: formatDollars(roundToNearest50(float64(rec.Nights) * rec.NightlyBudget)),
		Reasons:        synthesisReasons(zones[0]),
	}

	markers := make([]MapMarker, 0, len(comparisons))
	for _, cmp := range comparisons {
		lat, lng, ok := zoneCoordinates(city, cmp.ZoneName)
		if !ok {
			continue
		}
		markers = append(markers, MapMarker{
			Name:             cmp.ZoneName,
			Lat:              lat,
			Lng:              lng,
			MatchScore:       cmp.MatchScore,
			CommuteToStadium: cmp.CommuteToStadium,
			Highlight:        cmp.ZoneName == top.ZoneName,
		})
	}

	return LodgingPlan{
		City:               city,
		TravelerSummary:    travelerSummary(rec, trip),
		DateRange:          tripDateRange(trip),
		Nights:             rec.Nights,
		NightlyBudget:      rec.NightlyBudget,
		AffordabilityLabel: affordabilityLabel(rec.NightlyBudget),
		TopRecommendation:  top,
		ZoneComparisons:    comparisons,
		MapMarkers:         markers,
		Insights:           synthesisInsights(rec, research),
		BookingGuidance:    synthesisGuidance(rec),
	}
}

// synthesisScore assigns a rank-based score: 90 for the lead zone, 7 less
// per position, held inside [60,95]. The band is narrower than the
// generator's on purpose: a rule-based score should never read as a top
// judged score.
func synthesisScore(idx int) int {
	score := 90 - idx*7
	if score < 60 {
		return 60
	}
	if score > 95 {
		return 95
	}
	return score
}

func synthesisReasons(z LodgingZone) []string {
	reasons := capList(z.Pros, 2)
	if len(reasons) == 0 {
		return []string{"Best available zone in the research catalog"}
	}
	return reasons
}

// synthesisInsights prefers researched pain points; for cities without
// research it falls back to one generic insight per preference flag.
func synthesisInsights(rec PreferenceRecord, research CityResearch) []string {
	if len(research.PainPoints) > 0 {
		return capList(research.PainPoints, 4)
	}
	var out []string
	if rec.CarRental {
		out = append(out, "Confirm hotel parking rates before booking; match-day lots fill early and charge event pricing.")
	} else {
		out = append(out, "Without a car, budget extra for rideshare surge pricing right after matches.")
	}
	if rec.TravelingWithFamily {
		out = append(out, "Aparthotels and suites usually beat two standard rooms on price for families.")
	}
	if rec.MultipleMatches {
		out = append(out, "Staying on a transit line beats changing hotels between matches.")
	}
	return out
}

func synthesisGuidance(rec PreferenceRecord) []string {
	out := []string{
		"Book refundable rates now; match-week prices only move up.",
		fmt.Sprintf("Plan around %s in lodging for %d nights at $%.0f per night.",
			formatDollars(roundToNearest50(float64(rec.Nights)*rec.NightlyBudget)), rec.Nights, rec.NightlyBudget),
	}
	switch affordabilityLabel(rec.NightlyBudget) {
	case "Budget":
		out = append(out, "At this budget, look one transit stop outside the core for the best value.")
	case "Premium":
		out = append(out, "At this budget, central zones with walk-everywhere access are in reach; book those first.")
	}
	return out
}

func capList(in []string, limit int) []string {
	out := []string{}
	for _, s := range in {
		if s == "" {
			continue
		}
		out = append(out, s)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
