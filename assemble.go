package main

import (
	"fmt"
	"strings"
	"time"
)

// ========== Plan Assembler ==========

// assemblePlan selects between the sanitized generator plan and the
// synthesized plan - the former wins whenever it exists, with no field-level
// merging between the two - then stamps the generation time and attaches the
// rendered summary.
func assemblePlan(sanitized *LodgingPlan, synthesized LodgingPlan, now time.Time) LodgingPlan {
	plan := synthesized
	if sanitized != nil {
		plan = *sanitized
	}
	plan.GeneratedAt = now
	plan.Summary = renderPlanSummary(plan)
	return plan
}

// renderPlanSummary templates a human-readable digest over the final plan
// fields. It reads the same regardless of which path produced the plan.
func renderPlanSummary(plan LodgingPlan) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Lodging plan for %s", plan.City)
	if plan.DateRange != "" {
		fmt.Fprintf(&b, " (%s)", plan.DateRange)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Top pick: %s - match %d/100, %s, est. %s for %d nights\n",
		plan.TopRecommendation.ZoneName,
		plan.TopRecommendation.MatchScore,
		plan.TopRecommendation.PriceRange,
		plan.TopRecommendation.EstimatedTotal,
		plan.Nights)

	if len(plan.BookingGuidance) > 0 {
		b.WriteString("Booking:\n")
		for _, g := range plan.BookingGuidance {
			fmt.Fprintf(&b, "- %s\n", g)
		}
	}
	if len(plan.Insights) > 0 {
		b.WriteString("Insights:\n")
		for _, in := range plan.Insights {
			fmt.Fprintf(&b, "- %s\n", in)
		}
	}
	for _, w := range plan.Warnings {
		fmt.Fprintf(&b, "Warning: %s\n", w)
	}

	return strings.TrimRight(b.String(), "\n")
}

// travelerSummary is the short one-line description shown on the plan.
func travelerSummary(rec PreferenceRecord, trip *TripSelection) string {
	var parts []string
	if trip != nil && (trip.Adults > 0 || trip.Children > 0) {
		p := fmt.Sprintf("%d adults", trip.Adults)
		if trip.Children > 0 {
			p += fmt.Sprintf(", %d children", trip.Children)
		}
		parts = append(parts, p)
	}
	if rec.TravelingWithFamily {
		parts = append(parts, "traveling with family")
	}
	if rec.CarRental {
		parts = append(parts, "with car rental")
	}
	if rec.MultipleMatches {
		parts = append(parts, "attending multiple matches")
	}
	return strings.Join(parts, ", ")
}

func tripDateRange(trip *TripSelection) string {
	if trip == nil || trip.StartDate == "" || trip.EndDate == "" {
		return ""
	}
	return trip.StartDate + " to " + trip.EndDate
}
