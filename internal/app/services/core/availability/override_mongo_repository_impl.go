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

type DateOverrideSlotMongoRepository struct {
	Collection *mongo.Collection
}

func NewDateOverrideSlotMongoRepository(client *mongo.Client, dbName string) contracts.DateOverrideSlotRepository {
	return &DateOverrideSlotMongoRepository{
		Collection: client.Database(dbName).Collection(constvars.MongoCollectionDateOverrideSlots),
	}
}

func (r *DateOverrideSlotMongoRepository) Create(ctx context.Context, slot *models.DateOverrideSlot) (string, error) {
	if slot.ID == "" {
		slot.ID = primitive.NewObjectID().Hex()
	}
	_, err := r.Collection.InsertOne(ctx, slot)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return slot.ID, nil
}

func (r *DateOverrideSlotMongoRepository) Update(ctx context.Context, slot *models.DateOverrideSlot) error {
	if _, err := primitive.ObjectIDFromHex(slot.ID); err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	filter := bson.M{"_id": slot.ID}
	update := bson.M{"$set": bson.M{
		"startTime": slot.StartTime,
		"endTime":   slot.EndTime,
		"updatedAt": slot.UpdatedAt,
	}}

	_, err := r.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(false))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *DateOverrideSlotMongoRepository) Delete(ctx context.Context, slotID string) error {
	if _, err := primitive.ObjectIDFromHex(slotID); err != nil {
		return exceptions.ErrMongoDBNotObjectID(err)
	}
	_, err := r.Collection.DeleteOne(ctx, bson.M{"_id": slotID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}

func (r *DateOverrideSlotMongoRepository) FindByID(ctx context.Context, slotID string) (*models.DateOverrideSlot, error) {
	if _, err := primitive.ObjectIDFromHex(slotID); err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	var slot models.DateOverrideSlot
	err := r.Collection.FindOne(ctx, bson.M{"_id": slotID}).Decode(&slot)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &slot, nil
}

func (r *DateOverrideSlotMongoRepository) FindAllByMentor(ctx context.Context, mentorID string) ([]models.DateOverrideSlot, error) {
	filter := bson.M{"mentorId": mentorID}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "startTime", Value: 1}})
	return r.findSlots(ctx, filter, opts)
}

func (r *DateOverrideSlotMongoRepository) FindByMentorAndDate(ctx context.Context, mentorID string, date time.Time) ([]models.DateOverrideSlot, error) {
	filter := bson.M{"mentorId": mentorID, "date": date}
	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	return r.findSlots(ctx, filter, opts)
}

func (r *DateOverrideSlotMongoRepository) FindOverlapping(ctx context.Context, mentorID string, date time.Time, startTime, endTime, excludeSlotID string) ([]models.DateOverrideSlot, error) {
	filter := bson.M{
		"mentorId":  mentorID,
		"date":      date,
		"startTime": bson.M{"$lt": endTime},
		"endTime":   bson.M{"$gt": startTime},
	}
	if excludeSlotID != "" {
		filter["_id"] = bson.M{"$ne": excludeSlotID}
	}
	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	return r.findSlots(ctx, filter, opts)
}

func (r *DateOverrideSlotMongoRepository) FindDatedOnOrBefore(ctx context.Context, cutoff time.Time) ([]models.DateOverrideSlot, error) {
	filter := bson.M{"date": bson.M{"$lte": cutoff}}
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "endTime", Value: 1}})
	return r.findSlots(ctx, filter, opts)
}

func (r *DateOverrideSlotMongoRepository) findSlots(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.DateOverrideSlot, error) {
	cursor, err := r.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var slots []models.DateOverrideSlot
	if err := cursor.All(ctx, &slots); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return slots, nil
}
