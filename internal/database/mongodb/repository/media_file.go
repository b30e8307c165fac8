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

type MediaFileRepository struct {
	collection *mongo.Collection
}

func NewMediaFileRepository(mongoClient *client.MongoClient) *MediaFileRepository {
	repository := &MediaFileRepository{
		collection: mongoClient.Client().Database(string(core.MongoDBUptown)).Collection(string(core.MongoCollectionMediaFiles)),
	}
	_ = repository.ensureIndexes(context.Background())
	return repository
}

func (repository *MediaFileRepository) ensureIndexes(contextValue context.Context) error {
	_, _ = repository.collection.Indexes().CreateMany(contextValue, model.MediaFileIndexes)
	return nil
}

func (repository *MediaFileRepository) Create(contextValue context.Context, mediaFile *model.MediaFile) (_ *model.MediaFile, returnedError error) {
	nowUTC := time.Now().UTC()
	if mediaFile.ID.IsZero() {
		mediaFile.ID = primitive.NewObjectID()
	}
	mediaFile.CreatedAt = nowUTC
	mediaFile.UpdatedAt = nowUTC

	insertResult, insertError := repository.collection.InsertOne(contextValue, mediaFile)
	if insertError != nil {
		return nil, insertError
	}
	objectID, ok := insertResult.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected InsertedID type: %T", insertResult.InsertedID)
	}
	mediaFile.ID = objectID
	return mediaFile, nil
}

func (repository *MediaFileRepository) GetByID(contextValue context.Context, mediaFileIdentifier primitive.ObjectID) (_ *model.MediaFile, returnedError error) {
	var mediaFile model.MediaFile
	if returnedError = repository.collection.FindOne(contextValue, bson.M{"_id": mediaFileIdentifier}).Decode(&mediaFile); returnedError != nil {
		return nil, returnedError
	}
	return &mediaFile, nil
}

func (repository *MediaFileRepository) Count(contextValue context.Context, filter bson.M) (int64, error) {
	return repository.collection.CountDocuments(contextValue, filter)
}

func (repository *MediaFileRepository) List(contextValue context.Context, filter bson.M, findOptions ...*options.FindOptions) (_ []*model.MediaFile, returnedError error) {
	cursor, findError := repository.collection.Find(contextValue, filter, findOptions...)
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	var results []*model.MediaFile
	for cursor.Next(contextValue) {
		var mediaFile model.MediaFile
		if decodeError := cursor.Decode(&mediaFile); decodeError != nil {
			return nil, decodeError
		}
		results = append(results, &mediaFile)
	}
	if cursorError := cursor.Err(); cursorError != nil {
		return nil, cursorError
	}

	return results, nil
}

func (repository *MediaFileRepository) UpdateByID(contextValue context.Context, mediaFileIdentifier primitive.ObjectID, update bson.M) (returnedCount int64, returnedError error) {
	result, updateError := repository.collection.UpdateOne(contextValue, bson.M{"_id": mediaFileIdentifier}, withUpdatedAt(update))
	if updateError != nil {
		return 0, updateError
	}
	if result.MatchedCount == 0 {
		return 0, mongo.ErrNoDocuments
	}
	return result.MatchedCount, nil
}

func (repository *MediaFileRepository) DeleteByID(contextValue context.Context, mediaFileIdentifier primitive.ObjectID) (returnedError error) {
	deleteResult, deleteError := repository.collection.DeleteOne(contextValue, bson.M{"_id": mediaFileIdentifier})
	if deleteError != nil {
		return deleteError
	}
	if deleteResult.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
