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

type StateRepository struct {
	collection *mongo.Collection
}

func NewStateRepository(mongoClient *client.MongoClient) *StateRepository {
	repository := &StateRepository{
		collection: mongoClient.Client().Database(string(core.MongoDBUptown)).Collection(string(core.MongoCollectionStates)),
	}
	_ = repository.ensureIndexes(context.Background())
	return repository
}

func (repository *StateRepository) ensureIndexes(contextValue context.Context) error {
	_, _ = repository.collection.Indexes().CreateMany(contextValue, model.StateIndexes)
	return nil
}

func (repository *StateRepository) Create(contextValue context.Context, state *model.State) (_ *model.State, returnedError error) {
	nowUTC := time.Now().UTC()
	if state.ID.IsZero() {
		state.ID = primitive.NewObjectID()
	}
	state.CreatedAt = nowUTC
	state.UpdatedAt = nowUTC

	insertResult, insertError := repository.collection.InsertOne(contextValue, state)
	if insertError != nil {
		return nil, insertError
	}
	objectID, ok := insertResult.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected InsertedID type: %T", insertResult.InsertedID)
	}
	state.ID = objectID
	return state, nil
}

func (repository *StateRepository) GetByID(contextValue context.Context, stateIdentifier primitive.ObjectID) (_ *model.State, returnedError error) {
	var state model.State
	if returnedError = repository.collection.FindOne(contextValue, bson.M{"_id": stateIdentifier}).Decode(&state); returnedError != nil {
		return nil, returnedError
	}
	return &state, nil
}

// GetBySlug 以 state slug 取件
func (repository *StateRepository) GetBySlug(contextValue context.Context, slugValue string) (_ *model.State, returnedError error) {
	var state model.State
	if returnedError = repository.collection.FindOne(contextValue, bson.M{"state": slugValue}).Decode(&state); returnedError != nil {
		return nil, returnedError
	}
	return &state, nil
}

func (repository *StateRepository) ExistsBySlug(contextValue context.Context, slugValue string, excludeID *primitive.ObjectID) (bool, error) {
	filter := bson.M{"state": slugValue}
	if excludeID != nil {
		filter["_id"] = bson.M{"$ne": *excludeID}
	}
	return repository.Exists(contextValue, filter)
}

// Exists 依任意條件檢查是否有符合文件；供呼叫端組複合唯一性條件
func (repository *StateRepository) Exists(contextValue context.Context, filter bson.M) (bool, error) {
	count, countError := repository.collection.CountDocuments(contextValue, filter)
	if countError != nil {
		return false, countError
	}
	return count > 0, nil
}

func (repository *StateRepository) List(contextValue context.Context, filter bson.M, findOptions ...*options.FindOptions) (_ []*model.State, returnedError error) {
	cursor, findError := repository.collection.Find(contextValue, filter, findOptions...)
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	var results []*model.State
	for cursor.Next(contextValue) {
		var state model.State
		if decodeError := cursor.Decode(&state); decodeError != nil {
			return nil, decodeError
		}
		results = append(results, &state)
	}
	if cursorError := cursor.Err(); cursorError != nil {
		return nil, cursorError
	}

	return results, nil
}

func (repository *StateRepository) UpdateByID(contextValue context.Context, stateIdentifier primitive.ObjectID, update bson.M) (returnedCount int64, returnedError error) {
	result, updateError := repository.collection.UpdateOne(contextValue, bson.M{"_id": stateIdentifier}, withUpdatedAt(update))
	if updateError != nil {
		return 0, updateError
	}
	if result.MatchedCount == 0 {
		return 0, mongo.ErrNoDocuments
	}
	return result.MatchedCount, nil
}

func (repository *StateRepository) DeleteByID(contextValue context.Context, stateIdentifier primitive.ObjectID) (returnedError error) {
	_, returnedError = repository.collection.DeleteOne(contextValue, bson.M{"_id": stateIdentifier})
	return returnedError
}
