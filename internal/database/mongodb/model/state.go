package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// State 州/省；State 欄位即 slug（全域唯一、小寫）。
// 刪除不做 cascade，City 端可能留下懸掛參照（已知且接受）。
type State struct {
	ID           primitive.ObjectID `json:"id" bson:"_id"`
	State        string             `json:"state" bson:"state"`
	DisplayState string             `json:"displayState" bson:"displayState"`
	Country      string             `json:"country" bson:"country"`
	Enabled      bool               `json:"enabled" bson:"enabled"`
	Order        int                `json:"order" bson:"order"`
	CreatedAt    time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updatedAt"`
}

var StateIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "state", Value: 1}},
		Options: options.Index().SetName("uniq_state").SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: "enabled", Value: 1}, {Key: "order", Value: 1}, {Key: "displayState", Value: 1}},
		Options: options.Index().SetName("idx_enabled_order_displayState"),
	},
}
