package handler

import (
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"

	"uptown/internal/core"
	cErr "uptown/internal/pkg/error"
	"uptown/internal/service/cloudinary"

	"github.com/gin-gonic/gin"
)

// readUploadFiles 讀取 multipart 欄位的所有檔案；大小與 MIME 檢核由 cloudinary 層負責
func readUploadFiles(c *gin.Context, field string, folder core.AssetFolder) ([]*cloudinary.UploadInput, error) {
	form, formError := c.MultipartForm()
	if formError != nil {
		// 非 multipart 請求視為沒有檔案
		return nil, nil
	}
	headers := form.File[field]
	if len(headers) == 0 {
		return nil, nil
	}

	inputs := make([]*cloudinary.UploadInput, 0, len(headers))
	for _, header := range headers {
		input, readError := readUploadFile(header, folder)
		if readError != nil {
			return nil, readError
		}
		inputs = append(inputs, input)
	}
	return inputs, nil
}

// readSingleUploadFile 讀取 multipart 欄位的第一個檔案；沒有檔案回傳 nil
func readSingleUploadFile(c *gin.Context, field string, folder core.AssetFolder) (*cloudinary.UploadInput, error) {
	header, headerError := c.FormFile(field)
	if headerError != nil {
		return nil, nil
	}
	return readUploadFile(header, folder)
}

func readUploadFile(header *multipart.FileHeader, folder core.AssetFolder) (*cloudinary.UploadInput, error) {
	file, openError := header.Open()
	if openError != nil {
		return nil, cErr.InternalServer("open uploaded file failed")
	}
	defer file.Close()

	data, readError := io.ReadAll(file)
	if readError != nil {
		return nil, cErr.InternalServer("read uploaded file failed")
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = mime.TypeByExtension(filepath.Ext(header.Filename))
	}

	return &cloudinary.UploadInput{
		Data:     data,
		Filename: header.Filename,
		MimeType: mimeType,
		Folder:   folder,
	}, nil
}
