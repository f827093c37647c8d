package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

// ========== Trip selection storage ==========

// requireTripStore guards the CRUD handlers when persistence is disabled.
func requireTripStore(c *gin.Context) bool {
	if tripsCollection == nil {
		c.JSON(503, gin.H{"error": "trip storage not configured"})
		return false
	}
	return true
}

func getTrips(c *gin.Context) {
	if !requireTripStore(c) {
		return
	}
	owner := c.GetString(identityKey)

	cursor, err := tripsCollection.Find(c.Request.Context(), bson.M{"owner": owner})
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	defer cursor.Close(c.Request.Context())

	trips := []SavedTrip{}
	for cursor.Next(c.Request.Context()) {
		var t SavedTrip
		if err := cursor.Decode(&t); err == nil {
			trips = append(trips, t)
		}
	}

	c.JSON(200, trips)
}

func getTrip(c *gin.Context) {
	if !requireTripStore(c) {
		return
	}
	owner := c.GetString(identityKey)

	var trip SavedTrip
	err := tripsCollection.FindOne(c.Request.Context(),
		bson.M{"id": c.Param("id"), "owner": owner}).Decode(&trip)
	if err != nil {
		c.JSON(404, gin.H{"error": "Trip not found"})
		return
	}

	c.JSON(200, trip)
}

func createTrip(c *gin.Context) {
	if !requireTripStore(c) {
		return
	}

	var selection TripSelection
	if err := c.ShouldBindJSON(&selection); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if selection.FocusCity() == "" {
		c.JSON(400, gin.H{"error": "trip selection needs at least one city"})
		return
	}

	trip := SavedTrip{
		ID:        uuid.NewString(),
		Owner:     c.GetString(identityKey),
		Selection: selection,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if _, err := tripsCollection.InsertOne(c.Request.Context(), trip); err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}

	c.JSON(201, trip)
}

func updateTrip(c *gin.Context) {
	if !requireTripStore(c) {
		return
	}
	owner := c.GetString(identityKey)

	var selection TripSelection
	if err := c.ShouldBindJSON(&selection); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}

	result, err := tripsCollection.UpdateOne(
		c.Request.Context(),
		bson.M{"id": c.Param("id"), "owner": owner},
		bson.M{"$set": bson.M{
			"selection":  selection,
			"updated_at": time.Now().UTC(),
		}},
	)
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(404, gin.H{"error": "Trip not found"})
		return
	}

	c.JSON(200, gin.H{"message": "Trip updated"})
}

func deleteTrip(c *gin.Context) {
	if !requireTripStore(c) {
		return
	}
	owner := c.GetString(identityKey)

	result, err := tripsCollection.DeleteOne(c.Request.Context(),
		bson.M{"id": c.Param("id"), "owner": owner})
	if err != nil {
		c.JSON(500, gin.H{"error": err.Error()})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(404, gin.H{"error": "Trip not found"})
		return
	}

	c.JSON(200, gin.H{"message": "Trip deleted"})
}
