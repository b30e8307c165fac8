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

type CityContentRepository struct {
	collection *mongo.Collection
}

func NewCityContentRepository(mongoClient *client.MongoClient) *CityContentRepository {
	repository := &CityContentRepository{
		collection: mongoClient.Client().Database(string(core.MongoDBUptown)).Collection(string(core.MongoCollectionCityContents)),
	}
	_ = repository.ensureIndexes(context.Background())
	return repository
}

func (repository *CityContentRepository) ensureIndexes(contextValue context.Context) error {
	_, _ = repository.collection.Indexes().CreateMany(contextValue, model.CityContentIndexes)
	return nil
}

func (repository *CityContentRepository) Create(contextValue context.Context, city *model.CityContent) (_ *model.CityContent, returnedError error) {
	nowUTC := time.Now().UTC()
	if city.ID.IsZero() {
		city.ID = primitive.NewObjectID()
	}
	city.CreatedAt = nowUTC
	city.UpdatedAt = nowUTC

	insertResult, insertError := repository.collection.InsertOne(contextValue, city)
	if insertError != nil {
		return nil, insertError
	}
	objectID, ok := insertResult.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected InsertedID type: %T", insertResult.InsertedID)
	}
	city.ID = objectID
	return city, nil
}

func (repository *CityContentRepository) GetByID(contextValue context.Context, cityIdentifier primitive.ObjectID) (_ *model.CityContent, returnedError error) {
	var city model.CityContent
	if returnedError = repository.collection.FindOne(contextValue, bson.M{"_id": cityIdentifier}).Decode(&city); returnedError != nil {
		return nil, returnedError
	}
	return &city, nil
}

// GetBySlug 以 city slug 取件
func (repository *CityContentRepository) GetBySlug(contextValue context.Context, slugValue string) (_ *model.CityContent, returnedError error) {
	var city model.CityContent
	if returnedError = repository.collection.FindOne(contextValue, bson.M{"city": slugValue}).Decode(&city); returnedError != nil {
		return nil, returnedError
	}
	return &city, nil
}

func (repository *CityContentRepository) ExistsBySlug(contextValue context.Context, slugValue string, excludeID *primitive.ObjectID) (bool, error) {
	filter := bson.M{"city": slugValue}
	if excludeID != nil {
		filter["_id"] = bson.M{"$ne": *excludeID}
	}
	count, countError := repository.collection.CountDocuments(contextValue, filter)
	if countError != nil {
		return false, countError
	}
	return count > 0, nil
}

func (repository *CityContentRepository) List(contextValue context.Context, filter bson.M, findOptions ...*options.FindOptions) (_ []*model.CityContent, returnedError error) {
	cursor, findError := repository.collection.Find(contextValue, filter, findOptions...)
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	var results []*model.CityContent
	for cursor.Next(contextValue) {
		var city model.CityContent
		if decodeError := cursor.Decode(&city); decodeError != nil {
			return nil, decodeError
		}
		results = append(results, &city)
	}
	if cursorError := cursor.Err(); cursorError != nil {
		return nil, cursorError
	}

	return results, nil
}

func (repository *CityContentRepository) UpdateByID(contextValue context.Context, cityIdentifier primitive.ObjectID, update bson.M) (returnedCount int64, returnedError error) {
	result, updateError := repository.collection.UpdateOne(contextValue, bson.M{"_id": cityIdentifier}, withUpdatedAt(update))
	if updateError != nil {
		return 0, updateError
	}
	if result.MatchedCount == 0 {
		return 0, mongo.ErrNoDocuments
	}
	return result.MatchedCount, nil
}

// UpdateMany 批次更新；回傳實際被修改的文件數
func (repository *CityContentRepository) UpdateMany(contextValue context.Context, filter bson.M, update bson.M) (modifiedCount int64, returnedError error) {
	result, updateError := repository.collection.UpdateMany(contextValue, filter, withUpdatedAt(update))
	if updateError != nil {
		return 0, updateError
	}
	return result.ModifiedCount, nil
}

// UpsertContentBySlug SEO 內容以 city slug upsert；新建時補 _id 與 createdAt
func (repository *CityContentRepository) UpsertContentBySlug(contextValue context.Context, slugValue string, set bson.M) (_ *model.CityContent, returnedError error) {
	update := withUpdatedAt(bson.M{
		"$set": set,
		"$setOnInsert": bson.M{
			"_id":       primitive.NewObjectID(),
			"city":      slugValue,
			"createdAt": time.Now().UTC(),
		},
	})

	var city model.CityContent
	findOneOptions := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	if returnedError = repository.collection.FindOneAndUpdate(contextValue, bson.M{"city": slugValue}, update, findOneOptions).Decode(&city); returnedError != nil {
		return nil, returnedError
	}
	return &city, nil
}

func (repository *CityContentRepository) DeleteByID(contextValue context.Context, cityIdentifier primitive.ObjectID) (returnedError error) {
	_, returnedError = repository.collection.DeleteOne(contextValue, bson.M{"_id": cityIdentifier})
	return returnedError
}
