package main

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ========== MongoDB ==========

var (
	mongoClient        *mongo.Client
	plansCollection    *mongo.Collection
	tripsCollection    *mongo.Collection
	profilesCollection *mongo.Collection
)

// initMongo connects when a URI is configured. Without one the service still
// runs: profile lookups come back empty, trip storage is unavailable and
// plan persistence is a no-op.
func initMongo(uri string) {
	if uri == "" {
		log.Println("MONGO_URI not set, running without persistence")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("MongoDB connect error: %v", err)
	}

	mongoClient = client
	db := client.Database("worldcup_travel")
	plansCollection = db.Collection("plans")
	tripsCollection = db.Collection("trip_selections")
	profilesCollection = db.Collection("profiles")

	log.Println("MongoDB connected")
}

// loadStoredProfile fetches the onboarding profile for an identity. Any
// failure, including a missing store, degrades to "no profile" - the
// normalizer's defaults take over.
func loadStoredProfile(ctx context.Context, userID string) *StoredProfile {
	if profilesCollection == nil || userID == "" {
		return nil
	}
	var p StoredProfile
	if err := profilesCollection.FindOne(ctx, bson.M{"user_id": userID}).Decode(&p); err != nil {
		return nil
	}
	return &p
}

// userIDForToken resolves a bearer token to a user id via the profiles
// collection. Empty result means the token is unknown.
func userIDForToken(ctx context.Context, token string) string {
	if profilesCollection == nil || token == "" {
		return ""
	}
	var p StoredProfile
	if err := profilesCollection.FindOne(ctx, bson.M{"api_token": token}).Decode(&p); err != nil {
		return ""
	}
	return p.UserID
}

// savePlanRecord writes the insert-only audit copy. It runs on its own
// goroutine after the response is determined; failures are logged and
// swallowed, never surfaced.
func savePlanRecord(record PlanRecord) {
	if plansCollection == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := plansCollection.InsertOne(ctx, record); err != nil {
		log.Printf("save plan record %s: %v", record.RequestID, err)
	}
}
