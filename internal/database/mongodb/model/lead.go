package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Lead 訪客詢問單；純 create + 篩選列表，無其他不變量
type Lead struct {
	ID            primitive.ObjectID  `json:"id" bson:"_id"`
	Name          string              `json:"name,omitempty" bson:"name,omitempty"`
	Email         string              `json:"email,omitempty" bson:"email,omitempty"`
	Phone         string              `json:"phone,omitempty" bson:"phone,omitempty"`
	RoomType      string              `json:"roomType,omitempty" bson:"roomType,omitempty"`
	MoveInDate    string              `json:"moveInDate,omitempty" bson:"moveInDate,omitempty"`
	PropertyID    *primitive.ObjectID `json:"propertyId,omitempty" bson:"propertyId,omitempty"`
	City          string              `json:"city,omitempty" bson:"city,omitempty"`
	Microlocation string              `json:"microlocation,omitempty" bson:"microlocation,omitempty"`
	URL           string              `json:"url,omitempty" bson:"url,omitempty"`
	CreatedAt     time.Time           `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt" bson:"updatedAt"`
}

var LeadIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("idx_createdAt_desc"),
	},
}
