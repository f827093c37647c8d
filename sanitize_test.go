package main

import (
	"errors"
	"strings"
	"testing"
)

func sanitizeFixture() (PreferenceRecord, *TripSelection) {
	trip := &TripSelection{Title: "Dallas stay", Cities: []TripCity{{Name: "Dallas"}}}
	nights := 3
	budget := 200.0
	rec := normalizePreferences(&LodgingPreferences{Nights: &nights, NightlyBudget: &budget}, nil, trip, defaultPreferences())
	return rec, trip
}

const validGeneratorDoc = `{
  "top_recommendation": {
    "zone_name": "Downtown Dallas",
    "match_score": 88,
    "price_range": "$$$",
    "commute_to_stadium": "45 min rideshare",
    "commute_to_fan_fest": "Walking distance",
    "vibe": "Urban core",
    "pros": ["Walkable", "Rail hub"],
    "cons": ["Far from stadium"],
    "estimated_total": "$600",
    "reasons": ["Best transit access"]
  },
  "zone_comparisons": [
    {"zone_name": "Uptown Dallas", "match_score": 81, "price_range": "$$$", "commute_to_stadium": "50 min", "commute_to_fan_fest": "10 min", "vibe": "Nightlife", "pros": ["Bars"], "cons": ["Noise"]},
    {"zone_name": "Downtown Dallas", "match_score": 88, "price_range": "$$$", "commute_to_stadium": "45 min", "commute_to_fan_fest": "Walk", "vibe": "Urban", "pros": ["Walkable"], "cons": []}
  ],
  "map_markers": [
    {"name": "Downtown Dallas", "lat": 32.7791, "lng": -96.8003, "match_score": 88},
    {"name": "Uptown Dallas", "lat": 32.8007, "lng": -96.8025, "match_score": 81}
  ],
  "insights": ["Book near DART"],
  "booking_guidance": ["Reserve refundable rates"],
  "warnings": []
}`

func TestSanitize_FencedResponse(t *testing.T) {
	t.Parallel()

	rec, trip := sanitizeFixture()
	raw := "```json\n" + validGeneratorDoc + "\n```"
	plan, err := sanitizeGeneratedPlan(raw, rec, trip)
	if err != nil {
		t.Fatalf("fenced response rejected: %v", err)
	}
	if plan.TopRecommendation.ZoneName != "Downtown Dallas" {
		t.Fatalf("top zone=%q", plan.TopRecommendation.ZoneName)
	}
}

func TestSanitize_StrayPrefixTokens(t *testing.T) {
	t.Parallel()

	rec, trip := sanitizeFixture()
	raw := "Here is your plan:\n" + validGeneratorDoc + "\nHope this helps!"
	if _, err := sanitizeGeneratedPlan(raw, rec, trip); err != nil {
		t.Fatalf("prefixed response rejected: %v", err)
	}
}

func TestSanitize_OrdersComparisonsByScore(t *testing.T) {
	t.Parallel()

	rec, trip := sanitizeFixture()
	plan, err := sanitizeGeneratedPlan(validGeneratorDoc, rec, trip)
	if err != nil {
		t.Fatal(err)
	}
	if len(plan.ZoneComparisons) != 2 {
		t.Fatalf("comparisons=%d want=2", len(plan.ZoneComparisons))
	}
	if plan.ZoneComparisons[0].MatchScore < plan.ZoneComparisons[1].MatchScore {
		t.Fatal("comparisons not ordered by descending match score")
	}
	if plan.ZoneComparisons[0].ZoneName != "Downtown Dallas" {
		t.Fatalf("first=%q want Downtown Dallas", plan.ZoneComparisons[0].ZoneName)
	}
}

func TestSanitize_RejectsGarbage(t *testing.T) {
	t.Parallel()

	rec, trip := sanitizeFixture()
	for name, raw := range map[string]string{
		"not json":        "sorry, I can't do that",
		"missing top":     `{"zone_comparisons": [{"zone_name": "A", "match_score": 70}]}`,
		"empty list":      `{"top_recommendation": {"zone_name": "A", "match_score": 90}, "zone_comparisons": []}`,
		"absent list":     `{"top_recommendation": {"zone_name": "A", "match_score": 90}}`,
	} {
		if _, err := sanitizeGeneratedPlan(raw, rec, trip); !errors.Is(err, errUnusableResponse) {
			t.Fatalf("%s: err=%v, want errUnusableResponse", name, err)
		}
	}
}

func TestSanitize_CoercesFields(t *testing.T) {
	t.Parallel()

	rec, trip := sanitizeFixture()
	raw := `{
	  "top_recommendation": {"zone_name": "Somewhere", "match_score": "130", "pros": null},
	  "zone_comparisons": [
	    {"zone_name": "Somewhere", "match_score": 12},
	    {"match_score": 77.4, "pros": ["a", "b", "c", "d", "e", "f"]}
	  ]
	}`
	plan, err := sanitizeGeneratedPlan(raw, rec, trip)
	if err != nil {
		t.Fatal(err)
	}

	top := plan.TopRecommendation
	if top.MatchScore != 100 {
		t.Fatalf("top score=%d want=100 (clamped)", top.MatchScore)
	}
	if top.PriceRange != defaultPriceRange {
		t.Fatalf("price=%q want default", top.PriceRange)
	}
	if top.CommuteToStadium != defaultCommute {
		t.Fatalf("commute=%q want default", top.CommuteToStadium)
	}
	// nights * budget = 3 * 200
	if top.EstimatedTotal != "$600" {
		t.Fatalf("estimated=%q want=$600", top.EstimatedTotal)
	}
	if len(top.Reasons) == 0 {
		t.Fatal("reasons must never be empty")
	}
	if top.Pros == nil {
		t.Fatal("pros must default to an empty slice")
	}

	// Scores held in the generator band.
	for _, cmp := range plan.ZoneComparisons {
		if cmp.MatchScore < 50 || cmp.MatchScore > 100 {
			t.Fatalf("score %d outside [50,100]", cmp.MatchScore)
		}
	}
	// The nameless comparison gets a computed name; long lists are capped.
	for _, cmp := range plan.ZoneComparisons {
		if cmp.ZoneName == "" {
			t.Fatal("empty zone name survived sanitization")
		}
		if len(cmp.Pros) > maxProsConsDisplay {
			t.Fatalf("pros=%d not capped to %d", len(cmp.Pros), maxProsConsDisplay)
		}
	}
}

func TestSanitize_DropsMarkersWithoutCoordinates(t *testing.T) {
	t.Parallel()

	rec, trip := sanitizeFixture()
	raw := `{
	  "top_recommendation": {"zone_name": "Downtown Dallas", "match_score": 90},
	  "zone_comparisons": [{"zone_name": "Downtown Dallas", "match_score": 90}],
	  "map_markers": [
	    {"name": "Downtown Dallas", "lat": 32.7791, "lng": -96.8003, "match_score": 90},
	    {"name": "No Longitude", "lat": 32.0},
	    {"name": "Bad Types", "lat": "north", "lng": "west"},
	    {"lat": 1.0, "lng": 2.0}
	  ]
	}`
	plan, err := sanitizeGeneratedPlan(raw, rec, trip)
	if err != nil {
		t.Fatal(err)
	}
	if len(plan.MapMarkers) != 1 {
		t.Fatalf("markers=%d want=1", len(plan.MapMarkers))
	}
	m := plan.MapMarkers[0]
	if m.Name != "Downtown Dallas" || !m.Highlight {
		t.Fatalf("surviving marker=%+v, want highlighted top zone", m)
	}
}

func TestSanitize_TolerantMarkersField(t *testing.T) {
	t.Parallel()

	rec, trip := sanitizeFixture()

	// A non-array markers value costs only the markers, not the plan.
	raw := `{
	  "top_recommendation": {"zone_name": "Downtown Dallas", "match_score": 90},
	  "zone_comparisons": [{"zone_name": "Downtown Dallas", "match_score": 90}],
	  "map_markers": "none"
	}`
	plan, err := sanitizeGeneratedPlan(raw, rec, trip)
	if err != nil {
		t.Fatalf("non-array markers rejected the whole plan: %v", err)
	}
	if len(plan.MapMarkers) != 0 {
		t.Fatalf("markers=%d want=0", len(plan.MapMarkers))
	}
	if len(plan.ZoneComparisons) != 1 {
		t.Fatalf("comparisons=%d want=1", len(plan.ZoneComparisons))
	}

	// Non-object entries inside the array are dropped individually.
	raw = `{
	  "top_recommendation": {"zone_name": "Downtown Dallas", "match_score": 90},
	  "zone_comparisons": [{"zone_name": "Downtown Dallas", "match_score": 90}],
	  "map_markers": [
	    "not a marker",
	    42,
	    {"name": "Downtown Dallas", "lat": 32.7791, "lng": -96.8003, "match_score": 90}
	  ]
	}`
	plan, err = sanitizeGeneratedPlan(raw, rec, trip)
	if err != nil {
		t.Fatal(err)
	}
	if len(plan.MapMarkers) != 1 {
		t.Fatalf("markers=%d want=1", len(plan.MapMarkers))
	}
	if plan.MapMarkers[0].Name != "Downtown Dallas" {
		t.Fatalf("surviving marker=%q", plan.MapMarkers[0].Name)
	}
}

func TestSanitize_MarkerScoreSharesComparisonBand(t *testing.T) {
	t.Parallel()

	rec, trip := sanitizeFixture()
	raw := `{
	  "top_recommendation": {"zone_name": "Downtown Dallas", "match_score": 90},
	  "zone_comparisons": [{"zone_name": "Downtown Dallas", "match_score": 90}],
	  "map_markers": [
	    {"name": "Low Score", "lat": 32.7, "lng": -96.8, "match_score": 10},
	    {"name": "High Score", "lat": 32.8, "lng": -96.9, "match_score": 140}
	  ]
	}`
	plan, err := sanitizeGeneratedPlan(raw, rec, trip)
	if err != nil {
		t.Fatal(err)
	}
	if len(plan.MapMarkers) != 2 {
		t.Fatalf("markers=%d want=2", len(plan.MapMarkers))
	}
	for _, m := range plan.MapMarkers {
		if m.MatchScore < 50 || m.MatchScore > 100 {
			t.Fatalf("marker %q score=%d outside [50,100]", m.Name, m.MatchScore)
		}
	}
}

func TestStripCodeFences(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"```json\n{\"a\":1}\n```": `{"a":1}`,
		"```\n{\"a\":1}\n```":     `{"a":1}`,
		"{\"a\":1}":               `{"a":1}`,
		"noise {\"a\":1} tail":    `{"a":1}`,
	}
	for in, want := range cases {
		if got := stripCodeFences(in); got != want {
			t.Fatalf("stripCodeFences(%q)=%q want=%q", in, got, want)
		}
	}
	if out := stripCodeFences("no json here"); strings.Contains(out, "{") {
		t.Fatalf("unexpected brace in %q", out)
	}
}
