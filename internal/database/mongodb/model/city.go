package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CityContent 城市與其 SEO 內容；City 欄位即 slug（全域唯一、小寫）。
// (state, displayCity) 索引僅供查詢加速，唯一性約束只在 city slug 上。
type CityContent struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	City        string             `json:"city" bson:"city"`
	DisplayCity string             `json:"displayCity" bson:"displayCity"`
	State       primitive.ObjectID `json:"state" bson:"state"`

	Title             string `json:"title,omitempty" bson:"title,omitempty"`
	Description       string `json:"description,omitempty" bson:"description,omitempty"`
	FooterTitle       string `json:"footerTitle,omitempty" bson:"footerTitle,omitempty"`
	FooterDescription string `json:"footerDescription,omitempty" bson:"footerDescription,omitempty"`
	MetaTitle         string `json:"metaTitle,omitempty" bson:"metaTitle,omitempty"`
	MetaDescription   string `json:"metaDescription,omitempty" bson:"metaDescription,omitempty"`
	SchemaMarkup      string `json:"schemaMarkup,omitempty" bson:"schemaMarkup,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

var CityContentIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "city", Value: 1}},
		Options: options.Index().SetName("uniq_city").SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: "state", Value: 1}, {Key: "displayCity", Value: 1}},
		Options: options.Index().SetName("idx_state_displayCity"),
	},
}
