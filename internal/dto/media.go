package dto

// UpdateMediaFileDto 媒體庫項目的中繼資料更新
type UpdateMediaFileDto struct {
	Alt           *string `json:"alt,omitempty"`
	IsPriority    *bool   `json:"isPriority,omitempty"`
	PriorityOrder *int    `json:"priorityOrder,omitempty"`
}
