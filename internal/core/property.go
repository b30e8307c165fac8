package core

// PropertyStatus 物件上架狀態；五值固定，不做狀態機轉移限制
type PropertyStatus string

const (
	PropertyStatusDraft    PropertyStatus = "draft"
	PropertyStatusPending  PropertyStatus = "pending"
	PropertyStatusApproved PropertyStatus = "approved"
	PropertyStatusRejected PropertyStatus = "rejected"
	PropertyStatusArchived PropertyStatus = "archived"
)

var PropertyStatuses = []PropertyStatus{
	PropertyStatusDraft,
	PropertyStatusPending,
	PropertyStatusApproved,
	PropertyStatusRejected,
	PropertyStatusArchived,
}

func IsValidPropertyStatus(status string) bool {
	for _, s := range PropertyStatuses {
		if PropertyStatus(status) == s {
			return true
		}
	}
	return false
}

// Cloudinary 資產資料夾（FolderPrefix 之下）
type AssetFolder string

const (
	AssetFolderProperties AssetFolder = "properties"
	AssetFolderAmenities  AssetFolder = "amenities"
	AssetFolderPlans      AssetFolder = "plans"
	AssetFolderMedia      AssetFolder = "media"
)
