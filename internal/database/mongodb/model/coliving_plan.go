package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ColivingPlan 共居方案類型；被 Property.coliving_plans[].plan 弱參照
type ColivingPlan struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	Type        string             `json:"type" bson:"type"`
	Description string             `json:"description" bson:"description"`
	Image       *ImageAsset        `json:"image,omitempty" bson:"image,omitempty"`
	Enabled     bool               `json:"enabled" bson:"enabled"`
	IsDeleted   bool               `json:"isDeleted" bson:"isDeleted"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

var ColivingPlanIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "enabled", Value: 1}},
		Options: options.Index().SetName("idx_enabled"),
	},
	{
		Keys:    bson.D{{Key: "isDeleted", Value: 1}},
		Options: options.Index().SetName("idx_isDeleted"),
	},
}
