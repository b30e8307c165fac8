package dto

// ===== State =====

// 建立州別；State 省略時由 DisplayState slug 化產生
type CreateStateDto struct {
	State        string `json:"state" binding:"omitempty"`
	DisplayState string `json:"displayState" binding:"required"`
	Country      string `json:"country" binding:"omitempty"`
	Enabled      *bool  `json:"enabled" binding:"omitempty"`
	Order        *int   `json:"order" binding:"omitempty"`
}

// 更新州別（允許部分欄位可選）
type UpdateStateDto struct {
	State        *string `json:"state,omitempty"`
	DisplayState *string `json:"displayState,omitempty"`
	Country      *string `json:"country,omitempty"`
	Enabled      *bool   `json:"enabled,omitempty"`
	Order        *int    `json:"order,omitempty"`
}

// ===== City =====

// 建立城市；City 省略時由 DisplayCity slug 化產生，State 為已存在州別的 id 或 slug
type CreateCityDto struct {
	City        string `json:"city" binding:"omitempty"`
	DisplayCity string `json:"displayCity" binding:"required"`
	State       string `json:"state" binding:"required"`
}

type UpdateCityDto struct {
	City        *string `json:"city,omitempty"`
	DisplayCity *string `json:"displayCity,omitempty"`
	State       *string `json:"state,omitempty"`
}

// CityContentDto 城市 SEO 內容 upsert
type CityContentDto struct {
	Title             *string `json:"title,omitempty"`
	Description       *string `json:"description,omitempty"`
	FooterTitle       *string `json:"footerTitle,omitempty"`
	FooterDescription *string `json:"footerDescription,omitempty"`
	MetaTitle         *string `json:"metaTitle,omitempty"`
	MetaDescription   *string `json:"metaDescription,omitempty"`
	SchemaMarkup      *string `json:"schemaMarkup,omitempty"`
}

// ===== Microlocation =====

// 建立微區位；Slug 省略時由 Name slug 化產生，City 為已存在城市的 id 或 slug
type CreateMicrolocationDto struct {
	Name    string `json:"name" binding:"required"`
	Slug    string `json:"slug" binding:"omitempty"`
	City    string `json:"city" binding:"required"`
	Enabled *bool  `json:"enabled" binding:"omitempty"`
}

type UpdateMicrolocationDto struct {
	Name    *string `json:"name,omitempty"`
	Slug    *string `json:"slug,omitempty"`
	Enabled *bool   `json:"enabled,omitempty"`
}

// MicrolocationContentDto 微區位 SEO 內容 upsert
type MicrolocationContentDto struct {
	Name              *string `json:"name,omitempty"`
	FooterTitle       *string `json:"footerTitle,omitempty"`
	FooterDescription *string `json:"footerDescription,omitempty"`
	MetaTitle         *string `json:"metaTitle,omitempty"`
	MetaDescription   *string `json:"metaDescription,omitempty"`
	SchemaMarkup      *string `json:"schemaMarkup,omitempty"`
}

// ===== Amenity =====

// 更新設施；icon 檔案走 multipart 另行處理
type UpdateAmenityDto struct {
	Name    *string `json:"name,omitempty"`
	Enabled *bool   `json:"enabled,omitempty"`
}

type SetEnabledDto struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// ===== ColivingPlan =====

type UpdateColivingPlanDto struct {
	Type        *string `json:"type,omitempty"`
	Description *string `json:"description,omitempty"`
	Enabled     *bool   `json:"enabled,omitempty"`
}
