package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ImageAsset 外部圖床資產描述（內嵌，不是獨立 collection）。
// 生命週期跟隨擁有者文件：硬刪除擁有者時必須一併銷毀外部資產。
type ImageAsset struct {
	PublicID  string `json:"publicId" bson:"publicId"`
	SecureURL string `json:"secureUrl" bson:"secureUrl"`
	Bytes     int64  `json:"bytes,omitempty" bson:"bytes,omitempty"`
	Format    string `json:"format,omitempty" bson:"format,omitempty"`
	Width     int    `json:"width,omitempty" bson:"width,omitempty"`
	Height    int    `json:"height,omitempty" bson:"height,omitempty"`
}

// PropertyImage 物件相簿內嵌圖片；order 為顯示順序欄位（非陣列位置），
// 重新排序是以 _id 對應 order 的批次改寫。
type PropertyImage struct {
	ID        primitive.ObjectID `json:"id" bson:"_id"`
	PublicID  string             `json:"publicId" bson:"publicId"`
	SecureURL string             `json:"secureUrl" bson:"secureUrl"`
	Bytes     int64              `json:"bytes,omitempty" bson:"bytes,omitempty"`
	Format    string             `json:"format,omitempty" bson:"format,omitempty"`
	Width     int                `json:"width,omitempty" bson:"width,omitempty"`
	Height    int                `json:"height,omitempty" bson:"height,omitempty"`
	Order     int                `json:"order" bson:"order"`
	Alt       string             `json:"alt" bson:"alt"`
}
