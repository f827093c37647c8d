package main

import (
	"fmt"
	"strings"
)

// ========== Prompt Builder ==========

// promptRatingKeys fixes the order ratings are rendered in so the prompt is
// a pure function of its inputs.
var promptRatingKeys = []string{
	ratingDistanceToStadium,
	ratingCommuteToStadium,
	ratingCommuteToFanFest,
	ratingWalkability,
	ratingNightlife,
	ratingPriceRange,
}

// buildLodgingPrompt renders the normalized preferences, the trip and the
// zone research into the single instruction sent to the generator. Identical
// inputs always produce an identical string.
func buildLodgingPrompt(rec PreferenceRecord, trip *TripSelection, research CityResearch, zones []LodgingZone) string {
	city := trip.FocusCity()

	var b strings.Builder
	b.WriteString("You are a lodging advisor for World Cup 2026 travelers.\n")
	fmt.Fprintf(&b, "Build a lodging recommendation for %s.\n\n", city)

	b.WriteString("Traveler:\n")
	fmt.Fprintf(&b, "- Trip: %s\n", trip.Title)
	if trip.Summary != "" {
		fmt.Fprintf(&b, "- Itinerary: %s\n", trip.Summary)
	}
	if len(trip.Cities) > 0 {
		names := make([]string, 0, len(trip.Cities))
		for _, c := range trip.Cities {
			names = append(names, c.Name)
		}
		fmt.Fprintf(&b, "- Cities on the itinerary: %s\n", strings.Join(names, ", "))
	}
	if trip.StartDate != "" && trip.EndDate != "" {
		fmt.Fprintf(&b, "- Dates: %s to %s\n", trip.StartDate, trip.EndDate)
	}
	if trip.Adults > 0 || trip.Children > 0 {
		fmt.Fprintf(&b, "- Party: %d adults, %d children\n", trip.Adults, trip.Children)
	}
	fmt.Fprintf(&b, "- Nights in %s: %d\n", city, rec.Nights)
	fmt.Fprintf(&b, "- Nightly budget: $%.0f\n", rec.NightlyBudget)
	fmt.Fprintf(&b, "- Car rental: %t, attending multiple matches: %t, traveling with family: %t\n",
		rec.CarRental, rec.MultipleMatches, rec.TravelingWithFamily)
	fmt.Fprintf(&b, "- Priorities (0-100): stadium proximity %d, local culture %d, walkability %d, nightlife %d, budget sensitivity %d\n",
		rec.Weights.StadiumProximity, rec.Weights.LocalCulture, rec.Weights.Walkability,
		rec.Weights.Nightlife, rec.Weights.BudgetSensitivity)
	if rec.Notes != "" {
		fmt.Fprintf(&b, "- Notes: %s\n", rec.Notes)
	}
	fmt.Fprintf(&b, "- Answer language: %s\n\n", rec.Language)

	b.WriteString("Zone research:\n")
	for _, line := range research.Overview {
		fmt.Fprintf(&b, "- %s\n", line)
	}
	for _, z := range zones {
		fmt.Fprintf(&b, "\n%s (%s)\n%s\n", z.Name, z.Descriptor, z.Summary)
		for _, k := range promptRatingKeys {
			if v, ok := z.Ratings[k]; ok {
				fmt.Fprintf(&b, "  %s: %s\n", k, v)
			}
		}
		if len(z.Pros) > 0 {
			fmt.Fprintf(&b, "  Pros: %s\n", strings.Join(z.Pros, "; "))
		}
		if len(z.Cons) > 0 {
			fmt.Fprintf(&b, "  Cons: %s\n", strings.Join(z.Cons, "; "))
		}
	}
	if research.Comparison != "" {
		fmt.Fprintf(&b, "\nComparison notes: %s\n", research.Comparison)
	}
	if len(research.PainPoints) > 0 {
		b.WriteString("\nKnown pain points:\n")
		for _, p := range research.PainPoints {
			fmt.Fprintf(&b, "- %s\n", p)
		}
	}

	b.WriteString(`
Respond with a single JSON object, no markdown fences, matching exactly:
{
  "top_recommendation": {
    "zone_name": string,
    "match_score": number,
    "price_range": string,
    "commute_to_stadium": string,
    "commute_to_fan_fest": string,
    "vibe": string,
    "pros": [string],
    "cons": [string],
    "estimated_total": string,
    "reasons": [string]
  },
  "zone_comparisons": [ same fields as top_recommendation minus estimated_total and reasons ],
  "map_markers": [ { "name": string, "lat": number, "lng": number, "match_score": number, "commute_to_stadium": string } ],
  "insights": [string],
  "booking_guidance": [string],
  "warnings": [string]
}

Rules:
1. match_score is a number between 50 and 100.
2. Every zone listed in the research must appear in zone_comparisons.
3. zone_comparisons must be ordered by descending match_score.
4. Every map marker must include real lat and lng coordinates.
5. estimated_total covers all nights at the stated budget, formatted like "$900".
6. Keep pros and cons to at most 4 entries each.
7. Return only the JSON object, nothing before or after it.
`)

	return b.String()
}
