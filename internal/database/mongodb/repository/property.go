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

type PropertyRepository struct {
	collection *mongo.Collection
}

func NewPropertyRepository(mongoClient *client.MongoClient) *PropertyRepository {
	repository := &PropertyRepository{
		collection: mongoClient.Client().Database(string(core.MongoDBUptown)).Collection(string(core.MongoCollectionProperties)),
	}
	_ = repository.ensureIndexes(context.Background())
	return repository
}

func (repository *PropertyRepository) ensureIndexes(contextValue context.Context) error {
	_, _ = repository.collection.Indexes().CreateMany(contextValue, model.PropertyIndexes)
	return nil
}

func (repository *PropertyRepository) Create(contextValue context.Context, property *model.Property) (_ *model.Property, returnedError error) {
	nowUTC := time.Now().UTC()
	if property.ID.IsZero() {
		property.ID = primitive.NewObjectID()
	}
	property.CreatedAt = nowUTC
	property.UpdatedAt = nowUTC

	insertResult, insertError := repository.collection.InsertOne(contextValue, property)
	if insertError != nil {
		return nil, insertError
	}
	objectID, ok := insertResult.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected InsertedID type: %T", insertResult.InsertedID)
	}
	property.ID = objectID
	return property, nil
}

// GetByID 直接以 id 取件；不過濾 isDeleted（軟刪除後仍可由後台取回）
func (repository *PropertyRepository) GetByID(contextValue context.Context, propertyIdentifier primitive.ObjectID) (_ *model.Property, returnedError error) {
	var property model.Property
	if returnedError = repository.collection.FindOne(contextValue, bson.M{"_id": propertyIdentifier}).Decode(&property); returnedError != nil {
		return nil, returnedError
	}
	return &property, nil
}

func (repository *PropertyRepository) GetBySlug(contextValue context.Context, slugValue string) (_ *model.Property, returnedError error) {
	var property model.Property
	filter := bson.M{"slug": slugValue, "isDeleted": false}
	if returnedError = repository.collection.FindOne(contextValue, filter).Decode(&property); returnedError != nil {
		return nil, returnedError
	}
	return &property, nil
}

// ExistsBySlug 檢查 slug 是否已被占用；excludeID 用於 rename 時排除自身
func (repository *PropertyRepository) ExistsBySlug(contextValue context.Context, slugValue string, excludeID *primitive.ObjectID) (bool, error) {
	filter := bson.M{"slug": slugValue}
	if excludeID != nil {
		filter["_id"] = bson.M{"$ne": *excludeID}
	}
	count, countError := repository.collection.CountDocuments(contextValue, filter)
	if countError != nil {
		return false, countError
	}
	return count > 0, nil
}

func (repository *PropertyRepository) Count(contextValue context.Context, filter bson.M) (int64, error) {
	return repository.collection.CountDocuments(contextValue, filter)
}

func (repository *PropertyRepository) List(contextValue context.Context, filter bson.M, findOptions ...*options.FindOptions) (_ []*model.Property, returnedError error) {
	cursor, findError := repository.collection.Find(contextValue, filter, findOptions...)
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	var results []*model.Property
	for cursor.Next(contextValue) {
		var property model.Property
		if decodeError := cursor.Decode(&property); decodeError != nil {
			return nil, decodeError
		}
		results = append(results, &property)
	}
	if cursorError := cursor.Err(); cursorError != nil {
		return nil, cursorError
	}

	return results, nil
}

func (repository *PropertyRepository) UpdateByID(contextValue context.Context, propertyIdentifier primitive.ObjectID, update bson.M) (returnedCount int64, returnedError error) {
	result, updateError := repository.collection.UpdateOne(contextValue, bson.M{"_id": propertyIdentifier}, withUpdatedAt(update))
	if updateError != nil {
		return 0, updateError
	}
	if result.MatchedCount == 0 {
		return 0, mongo.ErrNoDocuments
	}
	return result.MatchedCount, nil
}

// UpdateOneFiltered 附帶額外條件的更新（例如 isDeleted: false）；無命中回傳 ErrNoDocuments
func (repository *PropertyRepository) UpdateOneFiltered(contextValue context.Context, filter bson.M, update bson.M) (returnedCount int64, returnedError error) {
	result, updateError := repository.collection.UpdateOne(contextValue, filter, withUpdatedAt(update))
	if updateError != nil {
		return 0, updateError
	}
	if result.MatchedCount == 0 {
		return 0, mongo.ErrNoDocuments
	}
	return result.MatchedCount, nil
}

func (repository *PropertyRepository) DeleteByID(contextValue context.Context, propertyIdentifier primitive.ObjectID) (returnedError error) {
	_, returnedError = repository.collection.DeleteOne(contextValue, bson.M{"_id": propertyIdentifier})
	return returnedError
}
