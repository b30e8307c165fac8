package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MediaFile 泛用媒體庫項目（portfolio 用），與 Property 相簿互相獨立
type MediaFile struct {
	ID               primitive.ObjectID `json:"id" bson:"_id"`
	URL              string             `json:"url" bson:"url"`
	PublicID         string             `json:"public_id" bson:"public_id"`
	ResourceType     string             `json:"resource_type" bson:"resource_type"`
	OriginalFilename string             `json:"original_filename,omitempty" bson:"original_filename,omitempty"`
	Alt              string             `json:"alt,omitempty" bson:"alt,omitempty"`
	Width            int                `json:"width,omitempty" bson:"width,omitempty"`
	Height           int                `json:"height,omitempty" bson:"height,omitempty"`
	IsPriority       bool               `json:"isPriority" bson:"isPriority"`
	PriorityOrder    int                `json:"priorityOrder" bson:"priorityOrder"`
	CreatedAt        time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time          `json:"updatedAt" bson:"updatedAt"`
}

var MediaFileIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "public_id", Value: 1}},
		Options: options.Index().SetName("uniq_public_id").SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: "resource_type", Value: 1}, {Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("idx_resource_type_createdAt"),
	},
}
