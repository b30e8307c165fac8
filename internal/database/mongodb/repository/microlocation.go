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

type MicrolocationRepository struct {
	collection *mongo.Collection
}

func NewMicrolocationRepository(mongoClient *client.MongoClient) *MicrolocationRepository {
	repository := &MicrolocationRepository{
		collection: mongoClient.Client().Database(string(core.MongoDBUptown)).Collection(string(core.MongoCollectionMicrolocations)),
	}
	_ = repository.ensureIndexes(context.Background())
	return repository
}

func (repository *MicrolocationRepository) ensureIndexes(contextValue context.Context) error {
	_, _ = repository.collection.Indexes().CreateMany(contextValue, model.MicrolocationIndexes)
	return nil
}

func (repository *MicrolocationRepository) Create(contextValue context.Context, microlocation *model.Microlocation) (_ *model.Microlocation, returnedError error) {
	nowUTC := time.Now().UTC()
	if microlocation.ID.IsZero() {
		microlocation.ID = primitive.NewObjectID()
	}
	microlocation.CreatedAt = nowUTC
	microlocation.UpdatedAt = nowUTC

	insertResult, insertError := repository.collection.InsertOne(contextValue, microlocation)
	if insertError != nil {
		return nil, insertError
	}
	objectID, ok := insertResult.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected InsertedID type: %T", insertResult.InsertedID)
	}
	microlocation.ID = objectID
	return microlocation, nil
}

func (repository *MicrolocationRepository) GetByID(contextValue context.Context, microlocationIdentifier primitive.ObjectID) (_ *model.Microlocation, returnedError error) {
	var microlocation model.Microlocation
	if returnedError = repository.collection.FindOne(contextValue, bson.M{"_id": microlocationIdentifier}).Decode(&microlocation); returnedError != nil {
		return nil, returnedError
	}
	return &microlocation, nil
}

// GetByCityAndSlug slug 只在城市內唯一，查詢必定帶 city
func (repository *MicrolocationRepository) GetByCityAndSlug(contextValue context.Context, cityIdentifier primitive.ObjectID, slugValue string) (_ *model.Microlocation, returnedError error) {
	var microlocation model.Microlocation
	filter := bson.M{"city": cityIdentifier, "slug": slugValue}
	if returnedError = repository.collection.FindOne(contextValue, filter).Decode(&microlocation); returnedError != nil {
		return nil, returnedError
	}
	return &microlocation, nil
}

func (repository *MicrolocationRepository) ExistsByCityAndSlug(contextValue context.Context, cityIdentifier primitive.ObjectID, slugValue string, excludeID *primitive.ObjectID) (bool, error) {
	filter := bson.M{"city": cityIdentifier, "slug": slugValue}
	if excludeID != nil {
		filter["_id"] = bson.M{"$ne": *excludeID}
	}
	count, countError := repository.collection.CountDocuments(contextValue, filter)
	if countError != nil {
		return false, countError
	}
	return count > 0, nil
}

func (repository *MicrolocationRepository) List(contextValue context.Context, filter bson.M, findOptions ...*options.FindOptions) (_ []*model.Microlocation, returnedError error) {
	cursor, findError := repository.collection.Find(contextValue, filter, findOptions...)
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	var results []*model.Microlocation
	for cursor.Next(contextValue) {
		var microlocation model.Microlocation
		if decodeError := cursor.Decode(&microlocation); decodeError != nil {
			return nil, decodeError
		}
		results = append(results, &microlocation)
	}
	if cursorError := cursor.Err(); cursorError != nil {
		return nil, cursorError
	}

	return results, nil
}

func (repository *MicrolocationRepository) UpdateByID(contextValue context.Context, microlocationIdentifier primitive.ObjectID, update bson.M) (returnedCount int64, returnedError error) {
	result, updateError := repository.collection.UpdateOne(contextValue, bson.M{"_id": microlocationIdentifier}, withUpdatedAt(update))
	if updateError != nil {
		return 0, updateError
	}
	if result.MatchedCount == 0 {
		return 0, mongo.ErrNoDocuments
	}
	return result.MatchedCount, nil
}

// UpsertByCityAndSlug SEO 內容 upsert；新建時補 _id、name 與 createdAt
func (repository *MicrolocationRepository) UpsertByCityAndSlug(contextValue context.Context, cityIdentifier primitive.ObjectID, slugValue string, set bson.M, setOnInsert bson.M) (_ *model.Microlocation, returnedError error) {
	if setOnInsert == nil {
		setOnInsert = bson.M{}
	}
	setOnInsert["_id"] = primitive.NewObjectID()
	setOnInsert["city"] = cityIdentifier
	setOnInsert["slug"] = slugValue
	setOnInsert["createdAt"] = time.Now().UTC()

	update := withUpdatedAt(bson.M{
		"$set":         set,
		"$setOnInsert": setOnInsert,
	})

	var microlocation model.Microlocation
	findOneOptions := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	filter := bson.M{"city": cityIdentifier, "slug": slugValue}
	if returnedError = repository.collection.FindOneAndUpdate(contextValue, filter, update, findOneOptions).Decode(&microlocation); returnedError != nil {
		return nil, returnedError
	}
	return &microlocation, nil
}

func (repository *MicrolocationRepository) DeleteByID(contextValue context.Context, microlocationIdentifier primitive.ObjectID) (returnedError error) {
	_, returnedError = repository.collection.DeleteOne(contextValue, bson.M{"_id": microlocationIdentifier})
	return returnedError
}
