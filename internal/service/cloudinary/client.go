package cloudinary

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"uptown/config"
	"uptown/internal/core"
	cErr "uptown/internal/pkg/error"
	"uptown/internal/telemetry"

	"go.opentelemetry.io/otel/attribute"
)

const defaultBaseURL = "https://api.cloudinary.com"

type CloudinaryService struct {
	HTTPClient *http.Client
	trace      *telemetry.Trace
	metric     *telemetry.Metric
	config     *config.Configuration
	now        func() time.Time
}

func NewCloudinaryService(trace *telemetry.Trace, metric *telemetry.Metric, config *config.Configuration, client *http.Client) Service {
	return &CloudinaryService{
		HTTPClient: client,
		trace:      trace,
		metric:     metric,
		config:     config,
		now:        time.Now,
	}
}

// Upload 執行簽名上傳。
// 失敗分類：
//   - 本地 multipart 組裝失敗：InternalServer
//   - 對外請求/非 2xx：ExternalRequestError
//   - 回應解析失敗：ExternalResponseFormatError
func (s *CloudinaryService) Upload(ctx context.Context, input *UploadInput) (_ *UploadResult, returnedError error) {
	uploadURL := s.baseURL() + "/v1_1/" + s.config.Cloudinary.CloudName + "/image/upload"
	ctx, span, end := s.trace.WithSpan(ctx, "cloudinary.image.upload")
	defer func() { end(returnedError) }()

	folder := s.folderPath(input.Folder)
	span.SetAttributes(
		attribute.String("http.url", uploadURL),
		attribute.String("asset.folder", folder),
	)

	if !IsAllowedMimeType(input.MimeType) {
		returnedError = cErr.UnsupportedMedia("unsupported image type: " + input.MimeType)
		s.countUpload(folder, "rejected")
		return nil, returnedError
	}
	if max := s.config.Cloudinary.MaxUploadBytes; max > 0 && int64(len(input.Data)) > max {
		returnedError = cErr.UnsupportedMedia(fmt.Sprintf("file exceeds %d bytes", max))
		s.countUpload(folder, "rejected")
		return nil, returnedError
	}

	// 簽名參數；SVG 原樣保存，點陣圖統一轉 webp 並壓縮
	params := map[string]string{
		"folder":    folder,
		"timestamp": strconv.FormatInt(s.now().Unix(), 10),
	}
	if IsSvg(input.MimeType) {
		params["format"] = "svg"
	} else {
		params["format"] = "webp"
		params["quality"] = "auto:eco"
	}
	params["signature"] = s.sign(params)
	params["api_key"] = s.config.Cloudinary.APIKey

	// multipart 組裝
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range params {
		if writeError := writer.WriteField(key, value); writeError != nil {
			returnedError = cErr.InternalServer("write upload field failed")
			return nil, returnedError
		}
	}
	partHeader := textproto.MIMEHeader{}
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, escapeQuotes(input.Filename)))
	partHeader.Set("Content-Type", input.MimeType)
	filePart, partError := writer.CreatePart(partHeader)
	if partError != nil {
		returnedError = cErr.InternalServer("create upload part failed")
		return nil, returnedError
	}
	if _, copyError := filePart.Write(input.Data); copyError != nil {
		returnedError = cErr.InternalServer("write upload payload failed")
		return nil, returnedError
	}
	if closeError := writer.Close(); closeError != nil {
		returnedError = cErr.InternalServer("finalize upload payload failed")
		return nil, returnedError
	}

	httpRequest, requestError := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, &body)
	if requestError != nil {
		returnedError = cErr.InternalServer("create http request failed")
		return nil, returnedError
	}
	httpRequest.Header.Set("Content-Type", writer.FormDataContentType())

	httpResponse, doError := s.HTTPClient.Do(httpRequest)
	if doError != nil {
		returnedError = cErr.ExternalRequestError("cloudinary upload request failed")
		s.countUpload(folder, "error")
		return nil, returnedError
	}
	defer httpResponse.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", httpResponse.StatusCode))

	if httpResponse.StatusCode < http.StatusOK || httpResponse.StatusCode >= http.StatusMultipleChoices {
		responseBody, _ := io.ReadAll(httpResponse.Body)
		returnedError = cErr.ExternalRequestError("cloudinary upload error: " + trimBody(responseBody))
		s.countUpload(folder, "error")
		return nil, returnedError
	}

	var result UploadResult
	if decodeError := json.NewDecoder(httpResponse.Body).Decode(&result); decodeError != nil {
		returnedError = cErr.ExternalResponseFormatError("decode cloudinary response failed")
		s.countUpload(folder, "error")
		return nil, returnedError
	}
	if result.PublicID == "" || result.SecureURL == "" {
		returnedError = cErr.ExternalResponseFormatError("cloudinary response missing public_id or secure_url")
		s.countUpload(folder, "error")
		return nil, returnedError
	}

	s.trace.ApplyTraceAttributes(span, core.TraceAssetMeta{
		Folder:   folder,
		PublicID: result.PublicID,
		Format:   result.Format,
		Bytes:    result.Bytes,
		Status:   "ok",
	})
	s.countUpload(folder, "ok")
	return &result, nil
}

// Destroy 刪除資產；Cloudinary 對不存在的 public_id 回 "not found"，視為成功
func (s *CloudinaryService) Destroy(ctx context.Context, publicID string) (returnedError error) {
	destroyURL := s.baseURL() + "/v1_1/" + s.config.Cloudinary.CloudName + "/image/destroy"
	ctx, span, end := s.trace.WithSpan(ctx, "cloudinary.image.destroy")
	defer func() { end(returnedError) }()

	span.SetAttributes(
		attribute.String("http.url", destroyURL),
		attribute.String("asset.public_id", publicID),
	)

	params := map[string]string{
		"public_id": publicID,
		"timestamp": strconv.FormatInt(s.now().Unix(), 10),
	}
	params["signature"] = s.sign(params)
	params["api_key"] = s.config.Cloudinary.APIKey

	form := url.Values{}
	for key, value := range params {
		form.Set(key, value)
	}

	httpRequest, requestError := http.NewRequestWithContext(ctx, http.MethodPost, destroyURL, strings.NewReader(form.Encode()))
	if requestError != nil {
		returnedError = cErr.InternalServer("create http request failed")
		return returnedError
	}
	httpRequest.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	httpResponse, doError := s.HTTPClient.Do(httpRequest)
	if doError != nil {
		returnedError = cErr.ExternalRequestError("cloudinary destroy request failed")
		s.countDestroy("error")
		return returnedError
	}
	defer httpResponse.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", httpResponse.StatusCode))

	if httpResponse.StatusCode < http.StatusOK || httpResponse.StatusCode >= http.StatusMultipleChoices {
		responseBody, _ := io.ReadAll(httpResponse.Body)
		returnedError = cErr.ExternalRequestError("cloudinary destroy error: " + trimBody(responseBody))
		s.countDestroy("error")
		return returnedError
	}

	var result struct {
		Result string `json:"result"`
	}
	if decodeError := json.NewDecoder(httpResponse.Body).Decode(&result); decodeError != nil {
		returnedError = cErr.ExternalResponseFormatError("decode cloudinary response failed")
		s.countDestroy("error")
		return returnedError
	}
	if result.Result != "ok" && result.Result != "not found" {
		returnedError = cErr.ExternalRequestError("cloudinary destroy rejected: " + result.Result)
		s.countDestroy("error")
		return returnedError
	}

	s.countDestroy("ok")
	return nil
}

// sign 產生 Cloudinary 請求簽名：參數按 key 排序串接後接上 secret 取 SHA-1
func (s *CloudinaryService) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for key := range params {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+params[key])
	}

	digest := sha1.Sum([]byte(strings.Join(pairs, "&") + s.config.Cloudinary.APISecret))
	return hex.EncodeToString(digest[:])
}

func (s *CloudinaryService) baseURL() string {
	if s.config.Cloudinary.BaseURL != "" {
		return strings.TrimRight(s.config.Cloudinary.BaseURL, "/")
	}
	return defaultBaseURL
}

func (s *CloudinaryService) folderPath(folder core.AssetFolder) string {
	if s.config.Cloudinary.FolderPrefix == "" {
		return string(folder)
	}
	return s.config.Cloudinary.FolderPrefix + "/" + string(folder)
}

func (s *CloudinaryService) countUpload(folder, status string) {
	if s.metric == nil || s.metric.AssetUploadTotal == nil {
		return
	}
	s.metric.AssetUploadTotal.WithLabelValues(folder, status).Inc()
}

func (s *CloudinaryService) countDestroy(status string) {
	if s.metric == nil || s.metric.AssetDestroyTotal == nil {
		return
	}
	s.metric.AssetDestroyTotal.WithLabelValues(status).Inc()
}

func escapeQuotes(value string) string {
	replacer := strings.NewReplacer("\\", "\\\\", `"`, "\\\"")
	return replacer.Replace(value)
}

func trimBody(body []byte) string {
	const maxLen = 512
	trimmed := strings.TrimSpace(string(body))
	if len(trimmed) > maxLen {
		return trimmed[:maxLen] + "..."
	}
	return trimmed
}
