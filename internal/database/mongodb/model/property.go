package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PropertyContact struct {
	Name          string `json:"name,omitempty" bson:"name,omitempty"`
	Email         string `json:"email,omitempty" bson:"email,omitempty"`
	Phone         string `json:"phone,omitempty" bson:"phone,omitempty"`
	ShowOnWebsite bool   `json:"show_on_website" bson:"show_on_website"`
}

type MetroDetail struct {
	IsNearMetro bool    `json:"is_near_metro" bson:"is_near_metro"`
	StationName string  `json:"station_name" bson:"station_name"`
	DistanceKm  float64 `json:"distance_km" bson:"distance_km"`
}

type NearbyPlace struct {
	Name     string `json:"name,omitempty" bson:"name,omitempty"`
	Distance string `json:"distance,omitempty" bson:"distance,omitempty"`
	Type     string `json:"type,omitempty" bson:"type,omitempty"`
}

// PropertyLocation 內嵌位置資訊。City 與 MicroLocations 是弱參照：
// 只存 id，不做存在性驗證、不做 cascade；懸掛參照於讀取時寬鬆解析。
type PropertyLocation struct {
	Address        string               `json:"address,omitempty" bson:"address,omitempty"`
	Latitude       float64              `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude      float64              `json:"longitude,omitempty" bson:"longitude,omitempty"`
	City           *primitive.ObjectID  `json:"city,omitempty" bson:"city,omitempty"`
	State          string               `json:"state" bson:"state"`
	Country        string               `json:"country" bson:"country"`
	LocationSlug   string               `json:"location_slug,omitempty" bson:"location_slug,omitempty"`
	MetroDetail    MetroDetail          `json:"metro_detail" bson:"metro_detail"`
	MicroLocations []primitive.ObjectID `json:"micro_locations" bson:"micro_locations"`
	NearbyPlaces   []NearbyPlace        `json:"nearby_places" bson:"nearby_places"`
}

type SeoCard struct {
	Image       string `json:"image" bson:"image"`
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
}

type PropertySeo struct {
	Status      bool     `json:"status" bson:"status"`
	Title       string   `json:"title" bson:"title"`
	Description string   `json:"description" bson:"description"`
	Keywords    []string `json:"keywords" bson:"keywords"`
	Robots      string   `json:"robots" bson:"robots"`
	Twitter     SeoCard  `json:"twitter" bson:"twitter"`
	OpenGraph   SeoCard  `json:"open_graph" bson:"open_graph"`
}

type MealOption struct {
	IsInclude bool    `json:"is_include" bson:"is_include"`
	Price     float64 `json:"price" bson:"price"`
}

type OtherDetail struct {
	Breakfast                 MealOption `json:"breakfast" bson:"breakfast"`
	Lunch                     MealOption `json:"lunch" bson:"lunch"`
	Dinner                    MealOption `json:"dinner" bson:"dinner"`
	IsElectricityBillIncluded bool       `json:"is_electricity_bill_included" bson:"is_electricity_bill_included"`
	Beds                      int        `json:"beds" bson:"beds"`
	RentPerBed                float64    `json:"rent_per_bed" bson:"rent_per_bed"`
	FoodAndBeverage           string     `json:"food_and_beverage" bson:"food_and_beverage"`
	TypeOfCoLiving            string     `json:"type_of_co_living" bson:"type_of_co_living"`
}

// PlanPrice 方案定價；Plan 為 ColivingPlan 弱參照
type PlanPrice struct {
	ID       primitive.ObjectID `json:"id" bson:"_id"`
	Plan     primitive.ObjectID `json:"plan" bson:"plan"`
	Price    float64            `json:"price" bson:"price"`
	Duration string             `json:"duration" bson:"duration"`
}

// Property 聚合根
type Property struct {
	ID                  primitive.ObjectID `json:"id" bson:"_id"`
	Name                string             `json:"name" bson:"name"`
	Slug                string             `json:"slug" bson:"slug"`
	Description         string             `json:"description" bson:"description"`
	Tags                []string           `json:"tags" bson:"tags"`
	Images              []PropertyImage    `json:"images" bson:"images"`
	SpaceContactDetails PropertyContact    `json:"space_contact_details" bson:"space_contact_details"`
	Location            PropertyLocation   `json:"location" bson:"location"`
	// Amenity 弱參照集合
	Amenities     []primitive.ObjectID `json:"amenities" bson:"amenities"`
	ColivingPlans []PlanPrice          `json:"coliving_plans" bson:"coliving_plans"`
	// 衍生欄位：未明確給定且 > 0 時，等於 coliving_plans 最低價
	StartingPrice float64     `json:"startingPrice" bson:"startingPrice"`
	Rating        float64     `json:"rating" bson:"rating"`
	ReviewCount   int         `json:"reviewCount" bson:"reviewCount"`
	Seo           PropertySeo `json:"seo" bson:"seo"`
	OtherDetail   OtherDetail `json:"other_detail" bson:"other_detail"`
	SpaceType     string      `json:"space_type" bson:"space_type"`
	Status        string      `json:"status" bson:"status"`
	Featured      bool        `json:"featured" bson:"featured"`
	Verified      bool        `json:"verified" bson:"verified"`
	IsDeleted     bool        `json:"isDeleted" bson:"isDeleted"`
	CreatedAt     time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt" bson:"updatedAt"`
}

var PropertyIndexes = []mongo.IndexModel{
	{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: options.Index().SetName("uniq_slug").SetUnique(true),
	},
	{
		Keys:    bson.D{{Key: "isDeleted", Value: 1}, {Key: "status", Value: 1}},
		Options: options.Index().SetName("idx_isDeleted_status"),
	},
	{
		Keys:    bson.D{{Key: "location.city", Value: 1}},
		Options: options.Index().SetName("idx_location_city"),
	},
	{
		Keys:    bson.D{{Key: "location.micro_locations", Value: 1}},
		Options: options.Index().SetName("idx_location_micro_locations"),
	},
	{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("idx_createdAt_desc"),
	},
}
