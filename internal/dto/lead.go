package dto

// CreateLeadDto 訪客詢問單；欄位多為可選，僅 email 格式做檢核
type CreateLeadDto struct {
	Name          string `json:"name" binding:"omitempty"`
	Email         string `json:"email" binding:"omitempty,email"`
	Phone         string `json:"phone" binding:"omitempty"`
	RoomType      string `json:"roomType" binding:"omitempty"`
	MoveInDate    string `json:"moveInDate" binding:"omitempty"`
	PropertyID    string `json:"propertyId" binding:"omitempty"`
	City          string `json:"city" binding:"omitempty"`
	Microlocation string `json:"microlocation" binding:"omitempty"`
	URL           string `json:"url" binding:"omitempty"`
}
