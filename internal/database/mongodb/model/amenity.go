package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Amenity 設施；icon 於上傳檔案時才設定
type Amenity struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	Name      string             `json:"name" bson:"name"`
	Icon      *ImageAsset        `json:"icon,omitempty" bson:"icon,omitempty"`
	Enabled   bool               `json:"enabled" bson:"enabled"`
	IsDeleted bool               `json:"isDeleted" bson:"isDeleted"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt" bson:"updatedAt"`
}

var AmenityIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "enabled", Value: 1}},
		Options: options.Index().SetName("idx_enabled"),
	},
	{
		Keys:    bson.D{{Key: "isDeleted", Value: 1}},
		Options: options.Index().SetName("idx_isDeleted"),
	},
}
