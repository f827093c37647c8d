package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ========== Lodging plan endpoint ==========

// generateLodgingPlan runs the whole pipeline: normalize preferences, build
// the prompt, invoke the generator, sanitize its output, and fall back to
// deterministic synthesis whenever the generator path yields nothing usable.
// Generator faults never fail the request.
func generateLodgingPlan(invoker *GenerationInvoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PlanRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(400, gin.H{"error": err.Error()})
			return
		}
		if req.TripSelection == nil || req.TripSelection.FocusCity() == "" {
			c.JSON(400, gin.H{"error": "trip selection with at least one city is required"})
			return
		}

		userID := c.GetString(identityKey)
		ctx := c.Request.Context()

		profile := loadStoredProfile(ctx, userID)
		rec := normalizePreferences(req.Preferences, profile, req.TripSelection, defaultPreferences())

		city := req.TripSelection.FocusCity()
		research := lookupCityResearch(city, rec.Language)
		zones := zonesOrSynthetic(city, research)

		var sanitized *LodgingPlan
		if invoker.Enabled() {
			prompt := buildLodgingPrompt(rec, req.TripSelection, research, zones)
			raw, err := invoker.Generate(ctx, prompt)
			if err != nil {
				log.Printf("generator unavailable for %s: %v", city, err)
			} else if plan, serr := sanitizeGeneratedPlan(raw, rec, req.TripSelection); serr != nil {
				log.Printf("generator response rejected for %s: %v", city, serr)
			} else {
				sanitized = plan
			}
		}

		synthesized := synthesizeLodgingPlan(rec, research, req.TripSelection)
		plan := assemblePlan(sanitized, synthesized, time.Now().UTC())

		// Audit copy, after the response is already determined.
		record := PlanRecord{
			RequestID: uuid.NewString(),
			UserID:    userID,
			City:      plan.City,
			Plan:      plan,
			CreatedAt: plan.GeneratedAt,
		}
		go savePlanRecord(record)

		c.JSON(200, plan)
	}
}
