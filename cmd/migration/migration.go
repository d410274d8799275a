package main

import (
	"context"
	"log"
	"mentorin-service/internal/app/config"
	"mentorin-service/internal/app/drivers/database"
	"mentorin-service/internal/pkg/constvars"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Creates the indexes the admission filters, the bookable scan and the reaper
// prefix scan rely on.
func main() {
	driverConfig := config.NewDriverConfig()

	client := database.NewMongoDB(driverConfig)
	db := client.Database(driverConfig.MongoDB.DbName)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	indexes := map[string][]mongo.IndexModel{
		constvars.MongoCollectionWeeklySlots: {
			{Keys: bson.D{{Key: "mentorId", Value: 1}, {Key: "dayOfWeek", Value: 1}, {Key: "startTime", Value: 1}}},
		},
		constvars.MongoCollectionDateOverrideSlots: {
			{Keys: bson.D{{Key: "mentorId", Value: 1}, {Key: "date", Value: 1}, {Key: "startTime", Value: 1}}},
			{Keys: bson.D{{Key: "date", Value: 1}, {Key: "endTime", Value: 1}}},
		},
		constvars.MongoCollectionSessions: {
			{Keys: bson.D{{Key: "mentorId", Value: 1}, {Key: "dayOfWeek", Value: 1}, {Key: "date", Value: 1}}},
		},
	}

	created := 0
	for collection, models := range indexes {
		names, err := db.Collection(collection).Indexes().CreateMany(ctx, models, options.CreateIndexes())
		if err != nil {
			log.Fatalf("Error creating indexes on %s: %v", collection, err)
		}
		created += len(names)
	}

	log.Printf("Applied %d indexes!\n", created)
}
