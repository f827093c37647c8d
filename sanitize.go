package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ========== Response Validator / Sanitizer ==========

// errUnusableResponse marks a generator response that failed parsing or the
// structural checks. The handler routes it to fallback synthesis.
var errUnusableResponse = errors.New("unusable generator response")

const (
	maxProsConsDisplay = 4
	defaultCommute     = "30-40 min taxi"
	defaultPriceRange  = "$$"
)

// Loose intermediate shapes: every leaf is decoded as any so a stylistically
// inconsistent response (numbers as strings, missing arrays, nulls) still
// decodes and gets coerced field by field.
type looseComparison struct {
	ZoneName         any `json:"zone_name"`
	MatchScore       any `json:"match_score"`
	PriceRange       any `json:"price_range"`
	CommuteToStadium any `json:"commute_to_stadium"`
	CommuteToFanFest any `json:"commute_to_fan_fest"`
	Vibe             any `json:"vibe"`
	Pros             any `json:"pros"`
	Cons             any `json:"cons"`
	EstimatedTotal   any `json:"estimated_total"`
	Reasons          any `json:"reasons"`
}

type loosePlan struct {
	TopRecommendation *looseComparison  `json:"top_recommendation"`
	ZoneComparisons   []looseComparison `json:"zone_comparisons"`
	MapMarkers        any               `json:"map_markers"`
	Insights          any               `json:"insights"`
	BookingGuidance   any               `json:"booking_guidance"`
	Warnings          any               `json:"warnings"`
}

// sanitizeGeneratedPlan turns raw generator text into a fully bounded plan,
// or rejects it. Every field is coerced independently: a valid field
// survives even when its neighbours are garbage.
func sanitizeGeneratedPlan(raw string, rec PreferenceRecord, trip *TripSelection) (*LodgingPlan, error) {
	clean := stripCodeFences(raw)

	var loose loosePlan
	if err := json.Unmarshal([]byte(clean), &loose); err != nil {
		return nil, fmt.Errorf("%w: parse: %v", errUnusableResponse, err)
	}
	if loose.TopRecommendation == nil {
		return nil, fmt.Errorf("%w: missing top_recommendation", errUnusableResponse)
	}
	if len(loose.ZoneComparisons) == 0 {
		return nil, fmt.Errorf("%w: empty zone_comparisons", errUnusableResponse)
	}

	city := trip.FocusCity()

	comparisons := make([]ZoneComparison, 0, len(loose.ZoneComparisons))
	for i, lc := range loose.ZoneComparisons {
		comparisons = append(comparisons, sanitizeComparison(lc, fmt.Sprintf("%s Zone %d", city, i+1)))
	}
	// Descending match score; generator order breaks ties.
	sort.SliceStable(comparisons, func(i, j int) bool {
		return comparisons[i].MatchScore > comparisons[j].MatchScore
	})

	top := TopRecommendation{
		ZoneComparison: sanitizeComparison(*loose.TopRecommendation, comparisons[0].ZoneName),
		EstimatedTotal: coerceString(loose.TopRecommendation.EstimatedTotal, formatDollars(float64(rec.Nights)*rec.NightlyBudget)),
		Reasons:        coerceStringList(loose.TopRecommendation.Reasons, 0),
	}
	if len(top.Reasons) == 0 {
		top.Reasons = []string{"Best overall fit for your stated priorities"}
	}

	markers := sanitizeMarkers(loose.MapMarkers, top.ZoneName)

	plan := &LodgingPlan{
		City:               city,
		TravelerSummary:    travelerSummary(rec, trip),
		DateRange:          tripDateRange(trip),
		Nights:             rec.Nights,
		NightlyBudget:      rec.NightlyBudget,
		AffordabilityLabel: affordabilityLabel(rec.NightlyBudget),
		TopRecommendation:  top,
		ZoneComparisons:    comparisons,
		MapMarkers:         markers,
		Insights:           coerceStringList(loose.Insights, 0),
		BookingGuidance:    coerceStringList(loose.BookingGuidance, 0),
		Warnings:           coerceStringList(loose.Warnings, 0),
	}
	return plan, nil
}

// sanitizeMarkers coerces the markers field element by element. A garbage
// markers value (non-array, or non-object entries) costs only the markers
// it touches, never the plan: the result is simply shorter, possibly empty.
// Markers without a finite coordinate pair carry no information and are
// dropped rather than defaulted.
func sanitizeMarkers(v any, topZone string) []MapMarker {
	markers := []MapMarker{}
	items, ok := v.([]any)
	if !ok {
		return markers
	}
	for _, item := range items {
		fields, ok := item.(map[string]any)
		if !ok {
			continue
		}
		lat, latOK := coerceFiniteNumber(fields["lat"])
		lng, lngOK := coerceFiniteNumber(fields["lng"])
		if !latOK || !lngOK {
			continue
		}
		name := coerceString(fields["name"], "")
		if name == "" {
			continue
		}
		markers = append(markers, MapMarker{
			Name:             name,
			Lat:              lat,
			Lng:              lng,
			MatchScore:       coerceScore(fields["match_score"], 50, 100),
			CommuteToStadium: coerceString(fields["commute_to_stadium"], ""),
			Highlight:        name == topZone,
		})
	}
	return markers
}

func sanitizeComparison(lc looseComparison, fallbackName string) ZoneComparison {
	return ZoneComparison{
		ZoneName:         coerceString(lc.ZoneName, fallbackName),
		MatchScore:       coerceScore(lc.MatchScore, 50, 100),
		PriceRange:       coerceString(lc.PriceRange, defaultPriceRange),
		CommuteToStadium: coerceString(lc.CommuteToStadium, defaultCommute),
		CommuteToFanFest: coerceString(lc.CommuteToFanFest, defaultCommute),
		Vibe:             coerceString(lc.Vibe, "Mixed"),
		Pros:             coerceStringList(lc.Pros, maxProsConsDisplay),
		Cons:             coerceStringList(lc.Cons, maxProsConsDisplay),
	}
}

// stripCodeFences removes markdown code fences, a leading "json" language
// tag and any stray tokens around the JSON object itself.
func stripCodeFences(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```JSON")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	s = strings.TrimSpace(s)
	if start := strings.Index(s, "{"); start > 0 {
		s = s[start:]
	}
	if end := strings.LastIndex(s, "}"); end >= 0 && end < len(s)-1 {
		s = s[:end+1]
	}
	return s
}

// ========== Coercion helpers ==========

// coerceString renders any scalar as a trimmed string, falling back when the
// value is absent, empty or not a scalar.
func coerceString(v any, fallback string) string {
	switch t := v.(type) {
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return s
		}
	case float64:
		if isFinite(t) {
			return strconv.FormatFloat(t, 'f', -1, 64)
		}
	case bool:
		return strconv.FormatBool(t)
	}
	return fallback
}

// coerceNumber extracts a float from a JSON scalar. Non-finite and
// non-numeric values map to 0.
func coerceNumber(v any) float64 {
	switch t := v.(type) {
	case float64:
		if isFinite(t) {
			return t
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil && isFinite(f) {
			return f
		}
	}
	return 0
}

// coerceFiniteNumber is coerceNumber without the zero default: ok is false
// when the value is not a finite number.
func coerceFiniteNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		if isFinite(t) {
			return t, true
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil && isFinite(f) {
			return f, true
		}
	}
	return 0, false
}

// coerceScore rounds a coerced number into the integer band [lo,hi].
func coerceScore(v any, lo, hi int) int {
	n := int(math.Round(coerceNumber(v)))
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// coerceStringList coerces a decoded array into a string slice, dropping
// non-scalar and empty entries. A non-array yields an empty slice, never
// nil. limit 0 means unbounded.
func coerceStringList(v any, limit int) []string {
	out := []string{}
	items, ok := v.([]any)
	if !ok {
		return out
	}
	for _, item := range items {
		if s := coerceString(item, ""); s != "" {
			out = append(out, s)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
