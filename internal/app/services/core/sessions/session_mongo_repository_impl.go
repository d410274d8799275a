package sessions

import (
	"context"
	"mentorin-service/internal/app/contracts"
	"mentorin-service/internal/app/models"
	"mentorin-service/internal/pkg/constvars"
	"mentorin-service/internal/pkg/exceptions"
	"mentorin-service/internal/pkg/utils"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// BookedSessionMongoRepository reads the session collection owned by the
// session subsystem. This service never writes to it.
type BookedSessionMongoRepository struct {
	Collection *mongo.Collection
}

func NewBookedSessionMongoRepository(client *mongo.Client, dbName string) contracts.BookedSessionRepository {
	return &BookedSessionMongoRepository{
		Collection: client.Database(dbName).Collection(constvars.MongoCollectionSessions),
	}
}

func (r *BookedSessionMongoRepository) CountUpcomingWeekly(ctx context.Context, mentorID string, dayOfWeek int, startTime, endTime string) (int64, error) {
	filter := bson.M{
		"mentorId":  mentorID,
		"dayOfWeek": dayOfWeek,
		"status":    bson.M{"$in": []string{models.SessionStatusPending, models.SessionStatusApproved}},
		"date":      bson.M{"$gte": utils.NormalizeDate(time.Now())},
		"startTime": bson.M{"$lt": endTime},
		"endTime":   bson.M{"$gt": startTime},
	}
	count, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, exceptions.ErrMongoDBFindDocument(err)
	}
	return count, nil
}

func (r *BookedSessionMongoRepository) CountOnDate(ctx context.Context, mentorID string, date time.Time, startTime, endTime string) (int64, error) {
	filter := bson.M{
		"mentorId":  mentorID,
		"date":      date,
		"status":    bson.M{"$in": []string{models.SessionStatusPending, models.SessionStatusApproved}},
		"startTime": bson.M{"$lt": endTime},
		"endTime":   bson.M{"$gt": startTime},
	}
	count, err := r.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, exceptions.ErrMongoDBFindDocument(err)
	}
	return count, nil
}
