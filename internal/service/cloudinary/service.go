package cloudinary

import (
	"context"

	"uptown/internal/core"
)

// 允許的上傳 MIME 類型
var allowedMimeTypes = map[string]bool{
	"image/png":     true,
	"image/jpeg":    true,
	"image/jpg":     true,
	"image/webp":    true,
	"image/gif":     true,
	"image/bmp":     true,
	"image/tiff":    true,
	"image/svg+xml": true,
	"image/svg":     true,
	"text/xml":      true,
}

func IsAllowedMimeType(mimeType string) bool {
	return allowedMimeTypes[mimeType]
}

// IsSvg 判斷是否為向量圖；SVG 上傳不做格式轉換
func IsSvg(mimeType string) bool {
	switch mimeType {
	case "image/svg+xml", "image/svg", "text/xml":
		return true
	}
	return false
}

type UploadInput struct {
	Data     []byte
	Filename string
	MimeType string
	Folder   core.AssetFolder
}

type UploadResult struct {
	PublicID         string `json:"public_id"`
	SecureURL        string `json:"secure_url"`
	Format           string `json:"format"`
	ResourceType     string `json:"resource_type"`
	Width            int    `json:"width"`
	Height           int    `json:"height"`
	Bytes            int64  `json:"bytes"`
	OriginalFilename string `json:"original_filename"`
}

type Service interface {
	// 上傳圖片到圖床；點陣圖轉 webp（quality auto:eco），SVG 原樣保存
	Upload(ctx context.Context, input *UploadInput) (*UploadResult, error)
	// 刪除圖床資產
	Destroy(ctx context.Context, publicID string) error
}
