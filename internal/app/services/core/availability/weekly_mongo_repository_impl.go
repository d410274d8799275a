package availability

import (
	"context"
	"mentorin-service/internal/app/contracts"
	"mentorin-service/internal/app/models"
	"mentorin-service/internal/pkg/constvars"
	"mentorin-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type WeeklySlotMongoRepository struct {
	Collection *mongo.Collection
}

func NewWeeklySlotMongoRepository(client *mongo.Client, dbName string) contracts.WeeklySlotRepository {
	return &WeeklySlotMongoRepository{
		Collection: client.Database(dbName).Collection(constvars.MongoCollectionWeeklySlots),
	}
}

func (r *WeeklySlotMongoRepository) Create(ctx context.Context, slot *models.WeeklySlot) (string, error) {
	if slot.ID == "" {
		slot.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.Collection.InsertOne(ctx, slot)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return slot.ID, nil
}

func (r *WeeklySlotMongoRepository) Update(ctx context.Context, slot *models.WeeklySlot) error {
	if _, err := primitive.ObjectIDFromHex(slot.ID); err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	filter := bson.M{"_id": slot.ID}
	update := bson.M{"$set": bson.M{
		"startTime": slot.StartTime,
		"endTime":   slot.EndTime,
		"isActive":  slot.IsActive,
		"updatedAt": slot.UpdatedAt,
	}}

	_, err := r.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(false))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *WeeklySlotMongoRepository) Delete(ctx context.Context, slotID string) error {
	if _, err := primitive.ObjectIDFromHex(slotID); err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	_, err := r.Collection.DeleteOne(ctx, bson.M{"_id": slotID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}

func (r *WeeklySlotMongoRepository) FindByID(ctx context.Context, slotID string) (*models.WeeklySlot, error) {
	if _, err := primitive.ObjectIDFromHex(slotID); err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	var slot models.WeeklySlot
	err := r.Collection.FindOne(ctx, bson.M{"_id": slotID}).Decode(&slot)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &slot, nil
}

func (r *WeeklySlotMongoRepository) FindAllByMentor(ctx context.Context, mentorID string) ([]models.WeeklySlot, error) {
	filter := bson.M{"mentorId": mentorID}
	opts := options.Find().SetSort(bson.D{{Key: "dayOfWeek", Value: 1}, {Key: "startTime", Value: 1}})
	return r.findSlots(ctx, filter, opts)
}

func (r *WeeklySlotMongoRepository) FindByMentorAndDay(ctx context.Context, mentorID string, dayOfWeek int, activeOnly bool) ([]models.WeeklySlot, error) {
	filter := bson.M{"mentorId": mentorID, "dayOfWeek": dayOfWeek}
	if activeOnly {
		filter["isActive"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	return r.findSlots(ctx, filter, opts)
}

// FindOverlapping relies on zero-padded "HH:MM" strings sorting
// lexicographically in chronological order, so the half-open intersection test
// runs as an indexed range filter inside Mongo.
func (r *WeeklySlotMongoRepository) FindOverlapping(ctx context.Context, mentorID string, dayOfWeek int, startTime, endTime, excludeSlotID string) ([]models.WeeklySlot, error) {
	filter := bson.M{
		"mentorId":  mentorID,
		"dayOfWeek": dayOfWeek,
		"startTime": bson.M{"$lt": endTime},
		"endTime":   bson.M{"$gt": startTime},
	}
	if excludeSlotID != "" {
		filter["_id"] = bson.M{"$ne": excludeSlotID}
	}
	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	return r.findSlots(ctx, filter, opts)
}

func (r *WeeklySlotMongoRepository) SetActiveForWeekday(ctx context.Context, mentorID string, dayOfWeek int, active bool) error {
	filter := bson.M{"mentorId": mentorID, "dayOfWeek": dayOfWeek}
	update := bson.M{"$set": bson.M{"isActive": active, "updatedAt": time.Now()}}

	_, err := r.Collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *WeeklySlotMongoRepository) findSlots(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.WeeklySlot, error) {
	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var slots []models.WeeklySlot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return slots, nil
}
