package main

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ========== Trip selection ==========

// TripSelection is the itinerary the user saved before asking for a lodging
// plan. The plan pipeline only reads it.
type TripSelection struct {
	Title     string     `json:"title" bson:"title"`
	Summary   string     `json:"summary,omitempty" bson:"summary,omitempty"`
	Cities    []TripCity `json:"cities" bson:"cities"`
	StartDate string     `json:"start_date,omitempty" bson:"start_date,omitempty"`
	EndDate   string     `json:"end_date,omitempty" bson:"end_date,omitempty"`
	Adults    int        `json:"adults,omitempty" bson:"adults,omitempty"`
	Children  int        `json:"children,omitempty" bson:"children,omitempty"`
}

type TripCity struct {
	Name    string   `json:"name" bson:"name"`
	Country string   `json:"country,omitempty" bson:"country,omitempty"`
	Matches []string `json:"matches,omitempty" bson:"matches,omitempty"`
	Nights  int      `json:"nights,omitempty" bson:"nights,omitempty"`
}

// FocusCity returns the city the lodging plan is built for.
func (t *TripSelection) FocusCity() string {
	if t == nil || len(t.Cities) == 0 {
		return ""
	}
	return t.Cities[0].Name
}

// SavedTrip is a stored trip selection owned by one user.
type SavedTrip struct {
	MongoID primitive.ObjectID `bson:"_id,omitempty" json:"-"`

	ID        string        `json:"id" bson:"id"`
	Owner     string        `json:"-" bson:"owner"`
	Selection TripSelection `json:"selection" bson:"selection"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" bson:"updated_at"`
}

// ========== Preferences ==========

// LodgingPreferences is the raw preference object from the request body.
// Every field may be absent; pointers keep "absent" distinct from zero.
type LodgingPreferences struct {
	NightlyBudget       *float64 `json:"nightly_budget"`
	Nights              *int     `json:"nights"`
	CarRental           *bool    `json:"car_rental"`
	MultipleMatches     *bool    `json:"multiple_matches"`
	TravelingWithFamily *bool    `json:"traveling_with_family"`
	StadiumProximity    *float64 `json:"stadium_proximity"`
	LocalCulture        *float64 `json:"local_culture"`
	Walkability         *float64 `json:"walkability"`
	Nightlife           *float64 `json:"nightlife"`
	BudgetSensitivity   *float64 `json:"budget_sensitivity"`
	Language            string   `json:"language"`
	Notes               string   `json:"notes"`
}

// StoredProfile is the onboarding profile kept per user. It is read-only for
// the pipeline and may be missing entirely.
type StoredProfile struct {
	UserID              string   `json:"user_id" bson:"user_id"`
	APIToken            string   `json:"-" bson:"api_token,omitempty"`
	NightlyBudget       *float64 `json:"nightly_budget" bson:"nightly_budget,omitempty"`
	CarRental           *bool    `json:"car_rental" bson:"car_rental,omitempty"`
	MultipleMatches     *bool    `json:"multiple_matches" bson:"multiple_matches,omitempty"`
	TravelingWithFamily *bool    `json:"traveling_with_family" bson:"traveling_with_family,omitempty"`
	StadiumProximity    *float64 `json:"stadium_proximity" bson:"stadium_proximity,omitempty"`
	LocalCulture        *float64 `json:"local_culture" bson:"local_culture,omitempty"`
	Walkability         *float64 `json:"walkability" bson:"walkability,omitempty"`
	Nightlife           *float64 `json:"nightlife" bson:"nightlife,omitempty"`
	BudgetSensitivity   *float64 `json:"budget_sensitivity" bson:"budget_sensitivity,omitempty"`
	Language            string   `json:"language" bson:"language,omitempty"`
	Notes               string   `json:"notes" bson:"notes,omitempty"`
}

// PreferenceWeights are the five tunable dimensions, each in [0,100].
type PreferenceWeights struct {
	StadiumProximity  int `json:"stadium_proximity" bson:"stadium_proximity"`
	LocalCulture      int `json:"local_culture" bson:"local_culture"`
	Walkability       int `json:"walkability" bson:"walkability"`
	Nightlife         int `json:"nightlife" bson:"nightlife"`
	BudgetSensitivity int `json:"budget_sensitivity" bson:"budget_sensitivity"`
}

// PreferenceRecord is the complete, bounded preference set one plan request
// runs on. Built once per request, never mutated afterwards.
type PreferenceRecord struct {
	NightlyBudget       float64           `json:"nightly_budget" bson:"nightly_budget"`
	Nights              int               `json:"nights" bson:"nights"`
	CarRental           bool              `json:"car_rental" bson:"car_rental"`
	MultipleMatches     bool              `json:"multiple_matches" bson:"multiple_matches"`
	TravelingWithFamily bool              `json:"traveling_with_family" bson:"traveling_with_family"`
	Weights             PreferenceWeights `json:"weights" bson:"weights"`
	Language            string            `json:"language" bson:"language"`
	Notes               string            `json:"notes" bson:"notes"`
}

// ========== Zone research ==========

// LodgingZone is one researched (or synthetic) lodging area of a host city.
type LodgingZone struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Descriptor string            `json:"descriptor"`
	Summary    string            `json:"summary"`
	Pros       []string          `json:"pros"`
	Cons       []string          `json:"cons"`
	Ratings    map[string]string `json:"ratings"`
	PriceRange string            `json:"price_range"`
}

// CityResearch bundles the zones of one city with the narrative text used
// only for prompt construction.
type CityResearch struct {
	City       string        `json:"city"`
	Language   string        `json:"language"`
	Overview   []string      `json:"overview"`
	PainPoints []string      `json:"pain_points"`
	Comparison string        `json:"comparison"`
	Zones      []LodgingZone `json:"zones"`
}

// ========== Plan output ==========

type ZoneComparison struct {
	ZoneName         string   `json:"zone_name" bson:"zone_name"`
	MatchScore       int      `json:"match_score" bson:"match_score"`
	PriceRange       string   `json:"price_range" bson:"price_range"`
	CommuteToStadium string   `json:"commute_to_stadium" bson:"commute_to_stadium"`
	CommuteToFanFest string   `json:"commute_to_fan_fest" bson:"commute_to_fan_fest"`
	Vibe             string   `json:"vibe" bson:"vibe"`
	Pros             []string `json:"pros" bson:"pros"`
	Cons             []string `json:"cons" bson:"cons"`
}

type TopRecommendation struct {
	ZoneComparison `bson:",inline"`

	EstimatedTotal string   `json:"estimated_total" bson:"estimated_total"`
	Reasons        []string `json:"reasons" bson:"reasons"`
}

type MapMarker struct {
	Name             string  `json:"name" bson:"name"`
	Lat              float64 `json:"lat" bson:"lat"`
	Lng              float64 `json:"lng" bson:"lng"`
	MatchScore       int     `json:"match_score" bson:"match_score"`
	CommuteToStadium string  `json:"commute_to_stadium,omitempty" bson:"commute_to_stadium,omitempty"`
	Highlight        bool    `json:"highlight" bson:"highlight"`
}

// LodgingPlan is the canonical pipeline output. Its shape is identical
// whether it came from the generator or from fallback synthesis.
type LodgingPlan struct {
	City               string            `json:"city" bson:"city"`
	GeneratedAt        time.Time         `json:"generated_at" bson:"generated_at"`
	TravelerSummary    string            `json:"traveler_summary,omitempty" bson:"traveler_summary,omitempty"`
	DateRange          string            `json:"date_range,omitempty" bson:"date_range,omitempty"`
	Nights             int               `json:"nights" bson:"nights"`
	NightlyBudget      float64           `json:"nightly_budget" bson:"nightly_budget"`
	AffordabilityLabel string            `json:"affordability_label" bson:"affordability_label"`
	TopRecommendation  TopRecommendation `json:"top_recommendation" bson:"top_recommendation"`
	ZoneComparisons    []ZoneComparison  `json:"zone_comparisons" bson:"zone_comparisons"`
	MapMarkers         []MapMarker       `json:"map_markers" bson:"map_markers"`
	Insights           []string          `json:"insights" bson:"insights"`
	BookingGuidance    []string          `json:"booking_guidance" bson:"booking_guidance"`
	Warnings           []string          `json:"warnings,omitempty" bson:"warnings,omitempty"`
	Summary            string            `json:"summary,omitempty" bson:"summary,omitempty"`
}

// PlanRequest is the body of POST /api/lodging/plan.
type PlanRequest struct {
	TripSelection *TripSelection      `json:"trip_selection"`
	Preferences   *LodgingPreferences `json:"preferences"`
}

// PlanRecord is the insert-only audit copy written after the response has
// already been determined.
type PlanRecord struct {
	MongoID primitive.ObjectID `bson:"_id,omitempty" json:"-"`

	RequestID string      `json:"request_id" bson:"request_id"`
	UserID    string      `json:"user_id" bson:"user_id"`
	City      string      `json:"city" bson:"city"`
	Plan      LodgingPlan `json:"plan" bson:"plan"`
	CreatedAt time.Time   `json:"created_at" bson:"created_at"`
}
