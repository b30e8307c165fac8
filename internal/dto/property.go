package dto

import (
	"encoding/json"

	"uptown/internal/database/mongodb/model"

	"github.com/gin-gonic/gin"
)

// PropertyFormDto 建立/更新物件的表單內容。
// 請求為 multipart/form-data：純量欄位直接取值，
// 子文件欄位（location、seo、other_detail...）為 JSON 字串。
// 指標欄位 nil 代表該欄位未出現在表單中（部分更新語意）。
type PropertyFormDto struct {
	Name                *string
	Slug                *string
	Description         *string
	Tags                []string
	SpaceContactDetails *model.PropertyContact
	Location            *PropertyLocationDto
	Amenities           []string
	ColivingPlans       []PlanPriceDto
	StartingPrice       *float64
	Rating              *float64
	ReviewCount         *int
	Seo                 *model.PropertySeo
	OtherDetail         *model.OtherDetail
	SpaceType           *string
	Status              *string
	Featured            *bool
	Verified            *bool
	ImageAlts           []string
}

// PropertyLocationDto 位置子文件；City/MicroLocations 為 ObjectID hex 字串
type PropertyLocationDto struct {
	Address        string              `json:"address"`
	Latitude       float64             `json:"latitude"`
	Longitude      float64             `json:"longitude"`
	City           *string             `json:"city,omitempty"`
	State          string              `json:"state"`
	Country        string              `json:"country"`
	LocationSlug   string              `json:"location_slug"`
	MetroDetail    model.MetroDetail   `json:"metro_detail"`
	MicroLocations []string            `json:"micro_locations"`
	NearbyPlaces   []model.NearbyPlace `json:"nearby_places"`
}

// PlanPriceDto 方案定價；Plan 為 ColivingPlan 的 ObjectID hex 字串
type PlanPriceDto struct {
	ID       string  `json:"_id,omitempty"`
	Plan     string  `json:"plan"`
	Price    float64 `json:"price"`
	Duration string  `json:"duration"`
}

// ParsePropertyForm 解析 multipart 表單為 PropertyFormDto。
// 子文件 JSON 解析失敗回傳該欄位名稱，由呼叫端組錯誤訊息。
func ParsePropertyForm(c *gin.Context) (*PropertyFormDto, string, error) {
	form := &PropertyFormDto{}

	if v, ok := c.GetPostForm("name"); ok {
		form.Name = &v
	}
	if v, ok := c.GetPostForm("slug"); ok {
		form.Slug = &v
	}
	if v, ok := c.GetPostForm("description"); ok {
		form.Description = &v
	}
	if v, ok := c.GetPostForm("space_type"); ok {
		form.SpaceType = &v
	}
	if v, ok := c.GetPostForm("status"); ok {
		form.Status = &v
	}

	if field, err := parseJSONField(c, "tags", &form.Tags); err != nil {
		return nil, field, err
	}
	if field, err := parseJSONField(c, "space_contact_details", &form.SpaceContactDetails); err != nil {
		return nil, field, err
	}
	if field, err := parseJSONField(c, "location", &form.Location); err != nil {
		return nil, field, err
	}
	if field, err := parseJSONField(c, "amenities", &form.Amenities); err != nil {
		return nil, field, err
	}
	if field, err := parseJSONField(c, "coliving_plans", &form.ColivingPlans); err != nil {
		return nil, field, err
	}
	if field, err := parseJSONField(c, "seo", &form.Seo); err != nil {
		return nil, field, err
	}
	if field, err := parseJSONField(c, "other_detail", &form.OtherDetail); err != nil {
		return nil, field, err
	}
	if field, err := parseJSONField(c, "startingPrice", &form.StartingPrice); err != nil {
		return nil, field, err
	}
	if field, err := parseJSONField(c, "rating", &form.Rating); err != nil {
		return nil, field, err
	}
	if field, err := parseJSONField(c, "reviewCount", &form.ReviewCount); err != nil {
		return nil, field, err
	}
	if field, err := parseJSONField(c, "featured", &form.Featured); err != nil {
		return nil, field, err
	}
	if field, err := parseJSONField(c, "verified", &form.Verified); err != nil {
		return nil, field, err
	}
	if field, err := parseJSONField(c, "image_alts", &form.ImageAlts); err != nil {
		return nil, field, err
	}

	return form, "", nil
}

// parseJSONField 表單欄位存在時以 JSON 解析到 target；缺欄位不算錯
func parseJSONField(c *gin.Context, field string, target any) (string, error) {
	raw, ok := c.GetPostForm(field)
	if !ok || raw == "" {
		return "", nil
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return field, err
	}
	return "", nil
}

// ImageOrderDto 相簿排序項；未知 id 會被忽略
type ImageOrderDto struct {
	ID    string   `json:"id" binding:"required"`
	Order *float64 `json:"order" binding:"required"`
}

type ReorderImagesDto struct {
	Images []ImageOrderDto `json:"images" binding:"required"`
}

type SetStatusDto struct {
	Status string `json:"status" binding:"required"`
}

type SetFeaturedDto struct {
	Featured *bool `json:"featured" binding:"required"`
}

// RefDto 弱參照解析結果；解析失敗時 Name 退回 id 字串
type RefDto struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug,omitempty"`
}

// HydratedLocationDto 位置子文件的解析版本
type HydratedLocationDto struct {
	Address        string              `json:"address,omitempty"`
	Latitude       float64             `json:"latitude,omitempty"`
	Longitude      float64             `json:"longitude,omitempty"`
	City           *RefDto             `json:"city,omitempty"`
	State          string              `json:"state"`
	Country        string              `json:"country"`
	LocationSlug   string              `json:"location_slug,omitempty"`
	MetroDetail    model.MetroDetail   `json:"metro_detail"`
	MicroLocations []RefDto            `json:"micro_locations"`
	NearbyPlaces   []model.NearbyPlace `json:"nearby_places"`
}

// HydratedPlanPriceDto 方案定價的解析版本
type HydratedPlanPriceDto struct {
	ID       string  `json:"id"`
	Plan     *RefDto `json:"plan,omitempty"`
	Price    float64 `json:"price"`
	Duration string  `json:"duration,omitempty"`
}

// PropertyResponseDto 對外回應；弱參照均已解析為 RefDto
type PropertyResponseDto struct {
	ID                  string                 `json:"id"`
	Name                string                 `json:"name"`
	Slug                string                 `json:"slug"`
	Description         string                 `json:"description,omitempty"`
	Tags                []string               `json:"tags"`
	Images              []model.PropertyImage  `json:"images"`
	SpaceContactDetails model.PropertyContact  `json:"space_contact_details"`
	Location            HydratedLocationDto    `json:"location"`
	Amenities           []RefDto               `json:"amenities"`
	ColivingPlans       []HydratedPlanPriceDto `json:"coliving_plans"`
	StartingPrice       float64                `json:"startingPrice"`
	Rating              float64                `json:"rating"`
	ReviewCount         int                    `json:"reviewCount"`
	Seo                 model.PropertySeo      `json:"seo"`
	OtherDetail         model.OtherDetail      `json:"other_detail"`
	SpaceType           string                 `json:"space_type,omitempty"`
	Status              string                 `json:"status"`
	Featured            bool                   `json:"featured"`
	Verified            bool                   `json:"verified"`
	IsDeleted           bool                   `json:"isDeleted"`
	CreatedAt           string                 `json:"createdAt"`
	UpdatedAt           string                 `json:"updatedAt"`
}
