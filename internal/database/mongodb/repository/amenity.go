package repository

import (
	"context"
	"fmt"
	"time"

	"uptown/internal/core"
	client "uptown/internal/database/client"
	"uptown/internal/database/mongodb/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AmenityRepository struct {
	collection *mongo.Collection
}

func NewAmenityRepository(mongoClient *client.MongoClient) *AmenityRepository {
	repository := &AmenityRepository{
		collection: mongoClient.Client().Database(string(core.MongoDBUptown)).Collection(string(core.MongoCollectionAmenities)),
	}
	_ = repository.ensureIndexes(context.Background())
	return repository
}

func (repository *AmenityRepository) ensureIndexes(contextValue context.Context) error {
	_, _ = repository.collection.Indexes().CreateMany(contextValue, model.AmenityIndexes)
	return nil
}

func (repository *AmenityRepository) Create(contextValue context.Context, amenity *model.Amenity) (_ *model.Amenity, returnedError error) {
	nowUTC := time.Now().UTC()
	if amenity.ID.IsZero() {
		amenity.ID = primitive.NewObjectID()
	}
	amenity.CreatedAt = nowUTC
	amenity.UpdatedAt = nowUTC

	insertResult, insertError := repository.collection.InsertOne(contextValue, amenity)
	if insertError != nil {
		return nil, insertError
	}
	objectID, ok := insertResult.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected InsertedID type: %T", insertResult.InsertedID)
	}
	amenity.ID = objectID
	return amenity, nil
}

func (repository *AmenityRepository) GetByID(contextValue context.Context, amenityIdentifier primitive.ObjectID) (_ *model.Amenity, returnedError error) {
	var amenity model.Amenity
	if returnedError = repository.collection.FindOne(contextValue, bson.M{"_id": amenityIdentifier}).Decode(&amenity); returnedError != nil {
		return nil, returnedError
	}
	return &amenity, nil
}

func (repository *AmenityRepository) List(contextValue context.Context, filter bson.M, findOptions ...*options.FindOptions) (_ []*model.Amenity, returnedError error) {
	cursor, findError := repository.collection.Find(contextValue, filter, findOptions...)
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	var results []*model.Amenity
	for cursor.Next(contextValue) {
		var amenity model.Amenity
		if decodeError := cursor.Decode(&amenity); decodeError != nil {
			return nil, decodeError
		}
		results = append(results, &amenity)
	}
	if cursorError := cursor.Err(); cursorError != nil {
		return nil, cursorError
	}

	return results, nil
}

func (repository *AmenityRepository) UpdateByID(contextValue context.Context, amenityIdentifier primitive.ObjectID, update bson.M) (returnedCount int64, returnedError error) {
	result, updateError := repository.collection.UpdateOne(contextValue, bson.M{"_id": amenityIdentifier}, withUpdatedAt(update))
	if updateError != nil {
		return 0, updateError
	}
	if result.MatchedCount == 0 {
		return 0, mongo.ErrNoDocuments
	}
	return result.MatchedCount, nil
}

func (repository *AmenityRepository) DeleteByID(contextValue context.Context, amenityIdentifier primitive.ObjectID) (returnedError error) {
	_, returnedError = repository.collection.DeleteOne(contextValue, bson.M{"_id": amenityIdentifier})
	return returnedError
}
