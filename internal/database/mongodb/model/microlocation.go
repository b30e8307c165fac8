package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Microlocation 城市下的微區位；slug 只需在所屬城市內唯一。
type Microlocation struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	Name      string             `json:"name" bson:"name"`
	Slug      string             `json:"slug" bson:"slug"`
	City      primitive.ObjectID `json:"city" bson:"city"`
	Enabled   bool               `json:"enabled" bson:"enabled"`
	IsDeleted bool               `json:"isDeleted" bson:"isDeleted"`

	FooterTitle       string `json:"footerTitle,omitempty" bson:"footerTitle,omitempty"`
	FooterDescription string `json:"footerDescription,omitempty" bson:"footerDescription,omitempty"`
	MetaTitle         string `json:"metaTitle,omitempty" bson:"metaTitle,omitempty"`
	MetaDescription   string `json:"metaDescription,omitempty" bson:"metaDescription,omitempty"`
	SchemaMarkup      string `json:"schemaMarkup,omitempty" bson:"schemaMarkup,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

var MicrolocationIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "city", Value: 1}, {Key: "slug", Value: 1}},
		Options: options.Index().SetName("uniq_city_slug").SetUnique(true),
	},
}
