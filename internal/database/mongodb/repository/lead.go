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

type LeadRepository struct {
	collection *mongo.Collection
}

func NewLeadRepository(mongoClient *client.MongoClient) *LeadRepository {
	repository := &LeadRepository{
		collection: mongoClient.Client().Database(string(core.MongoDBUptown)).Collection(string(core.MongoCollectionLeads)),
	}
	_ = repository.ensureIndexes(context.Background())
	return repository
}

func (repository *LeadRepository) ensureIndexes(contextValue context.Context) error {
	_, _ = repository.collection.Indexes().CreateMany(contextValue, model.LeadIndexes)
	return nil
}

func (repository *LeadRepository) Create(contextValue context.Context, lead *model.Lead) (_ *model.Lead, returnedError error) {
	nowUTC := time.Now().UTC()
	if lead.ID.IsZero() {
		lead.ID = primitive.NewObjectID()
	}
	lead.CreatedAt = nowUTC
	lead.UpdatedAt = nowUTC

	insertResult, insertError := repository.collection.InsertOne(contextValue, lead)
	if insertError != nil {
		return nil, insertError
	}
	objectID, ok := insertResult.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected InsertedID type: %T", insertResult.InsertedID)
	}
	lead.ID = objectID
	return lead, nil
}

func (repository *LeadRepository) Count(contextValue context.Context, filter bson.M) (int64, error) {
	return repository.collection.CountDocuments(contextValue, filter)
}

func (repository *LeadRepository) List(contextValue context.Context, filter bson.M, findOptions ...*options.FindOptions) (_ []*model.Lead, returnedError error) {
	cursor, findError := repository.collection.Find(contextValue, filter, findOptions...)
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	var results []*model.Lead
	for cursor.Next(contextValue) {
		var lead model.Lead
		if decodeError := cursor.Decode(&lead); decodeError != nil {
			return nil, decodeError
		}
		results = append(results, &lead)
	}
	if cursorError := cursor.Err(); cursorError != nil {
		return nil, cursorError
	}

	return results, nil
}

func (repository *LeadRepository) DeleteByID(contextValue context.Context, leadIdentifier primitive.ObjectID) (returnedError error) {
	deleteResult, deleteError := repository.collection.DeleteOne(contextValue, bson.M{"_id": leadIdentifier})
	if deleteError != nil {
		return deleteError
	}
	if deleteResult.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}
