package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env")
	}

	initMongo(os.Getenv("MONGO_URI"))

	if path := os.Getenv("RESEARCH_PATH"); path != "" {
		if err := loadResearchCatalog(path); err != nil {
			log.Printf("research catalog override skipped: %v", err)
		} else {
			log.Printf("research catalog loaded from %s", path)
		}
	}

	if os.Getenv("API_TOKEN") == "" && profilesCollection == nil {
		log.Println("No profile store and no API_TOKEN configured; authenticated routes will reject everything")
	}

	invoker := NewGenerationInvoker(
		os.Getenv("GEMINI_API_KEY"),
		os.Getenv("GEMINI_MODEL"),
		os.Getenv("LODGING_AI_DISABLED") == "true",
	)
	if invoker.Enabled() {
		log.Println("Generator enabled")
	} else {
		log.Println("Generator disabled, plans come from fallback synthesis")
	}

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status": "ok",
				"time":   time.Now(),
			})
		})

		authed := api.Group("/", authRequired(os.Getenv("API_TOKEN")))
		{
			authed.POST("/lodging/plan", generateLodgingPlan(invoker))

			authed.GET("/trips", getTrips)
			authed.GET("/trips/:id", getTrip)
			authed.POST("/trips", createTrip)
			authed.PUT("/trips/:id", updateTrip)
			authed.DELETE("/trips/:id", deleteTrip)
		}
	}

	port := getEnv("PORT", "8080")
	log.Printf("API listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
