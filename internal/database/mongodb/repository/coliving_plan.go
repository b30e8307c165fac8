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

type ColivingPlanRepository struct {
	collection *mongo.Collection
}

func NewColivingPlanRepository(mongoClient *client.MongoClient) *ColivingPlanRepository {
	repository := &ColivingPlanRepository{
		collection: mongoClient.Client().Database(string(core.MongoDBUptown)).Collection(string(core.MongoCollectionColivingPlans)),
	}
	_ = repository.ensureIndexes(context.Background())
	return repository
}

func (repository *ColivingPlanRepository) ensureIndexes(contextValue context.Context) error {
	_, _ = repository.collection.Indexes().CreateMany(contextValue, model.ColivingPlanIndexes)
	return nil
}

func (repository *ColivingPlanRepository) Create(contextValue context.Context, plan *model.ColivingPlan) (_ *model.ColivingPlan, returnedError error) {
	nowUTC := time.Now().UTC()
	if plan.ID.IsZero() {
		plan.ID = primitive.NewObjectID()
	}
	plan.CreatedAt = nowUTC
	plan.UpdatedAt = nowUTC

	insertResult, insertError := repository.collection.InsertOne(contextValue, plan)
	if insertError != nil {
		return nil, insertError
	}
	objectID, ok := insertResult.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected InsertedID type: %T", insertResult.InsertedID)
	}
	plan.ID = objectID
	return plan, nil
}

func (repository *ColivingPlanRepository) GetByID(contextValue context.Context, planIdentifier primitive.ObjectID) (_ *model.ColivingPlan, returnedError error) {
	var plan model.ColivingPlan
	if returnedError = repository.collection.FindOne(contextValue, bson.M{"_id": planIdentifier}).Decode(&plan); returnedError != nil {
		return nil, returnedError
	}
	return &plan, nil
}

func (repository *ColivingPlanRepository) List(contextValue context.Context, filter bson.M, findOptions ...*options.FindOptions) (_ []*model.ColivingPlan, returnedError error) {
	cursor, findError := repository.collection.Find(contextValue, filter, findOptions...)
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	var results []*model.ColivingPlan
	for cursor.Next(contextValue) {
		var plan model.ColivingPlan
		if decodeError := cursor.Decode(&plan); decodeError != nil {
			return nil, decodeError
		}
		results = append(results, &plan)
	}
	if cursorError := cursor.Err(); cursorError != nil {
		return nil, cursorError
	}

	return results, nil
}

func (repository *ColivingPlanRepository) UpdateByID(contextValue context.Context, planIdentifier primitive.ObjectID, update bson.M) (returnedCount int64, returnedError error) {
	result, updateError := repository.collection.UpdateOne(contextValue, bson.M{"_id": planIdentifier}, withUpdatedAt(update))
	if updateError != nil {
		return 0, updateError
	}
	if result.MatchedCount == 0 {
		return 0, mongo.ErrNoDocuments
	}
	return result.MatchedCount, nil
}

func (repository *ColivingPlanRepository) DeleteByID(contextValue context.Context, planIdentifier primitive.ObjectID) (returnedError error) {
	_, returnedError = repository.collection.DeleteOne(contextValue, bson.M{"_id": planIdentifier})
	return returnedError
}
