package cloudinary

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"uptown/config"
	"uptown/internal/core"
	cErr "uptown/internal/pkg/error"
	"uptown/internal/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, baseURL string) *CloudinaryService {
	t.Helper()
	conf := &config.Configuration{}
	conf.Cloudinary.CloudName = "demo"
	conf.Cloudinary.APIKey = "key123"
	conf.Cloudinary.APISecret = "secret456"
	conf.Cloudinary.BaseURL = baseURL
	conf.Cloudinary.FolderPrefix = "coliving"
	conf.Cloudinary.MaxUploadBytes = 1 << 20

	tr, err := telemetry.NewTrace(nil)
	require.NoError(t, err)

	return &CloudinaryService{
		HTTPClient: http.DefaultClient,
		trace:      tr,
		metric:     telemetry.NewMetric(nil),
		config:     conf,
		now:        func() time.Time { return time.Unix(1700000000, 0) },
	}
}

func TestUploadSignsAndConvertsRaster(t *testing.T) {
	var gotSignature, gotFormat, gotQuality, gotFolder, gotTimestamp string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<22))
		gotSignature = r.FormValue("signature")
		gotFormat = r.FormValue("format")
		gotQuality = r.FormValue("quality")
		gotFolder = r.FormValue("folder")
		gotTimestamp = r.FormValue("timestamp")

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "room.png", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"public_id":"coliving/properties/abc","secure_url":"https://res.example/abc.webp","format":"webp","bytes":321,"width":10,"height":20}`))
	}))
	defer server.Close()

	service := newTestService(t, server.URL)
	result, err := service.Upload(context.Background(), &UploadInput{
		Data:     []byte("fake-png-bytes"),
		Filename: "room.png",
		MimeType: "image/png",
		Folder:   core.AssetFolderProperties,
	})
	require.NoError(t, err)

	assert.Equal(t, "coliving/properties/abc", result.PublicID)
	assert.Equal(t, "https://res.example/abc.webp", result.SecureURL)
	assert.Equal(t, int64(321), result.Bytes)

	assert.Equal(t, "coliving/properties", gotFolder)
	assert.Equal(t, "1700000000", gotTimestamp)
	assert.Equal(t, "webp", gotFormat)
	assert.Equal(t, "auto:eco", gotQuality)

	// 簽名 = 排序後的 k=v 以 & 相接，再接上 secret 的 SHA-1
	payload := "folder=coliving/properties&format=webp&quality=auto:eco&timestamp=1700000000" + "secret456"
	digest := sha1.Sum([]byte(payload))
	assert.Equal(t, hex.EncodeToString(digest[:]), gotSignature)
}

func TestUploadKeepsSvgVerbatim(t *testing.T) {
	var gotFormat, gotQuality string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<22))
		gotFormat = r.FormValue("format")
		gotQuality = r.FormValue("quality")
		w.Write([]byte(`{"public_id":"coliving/amenities/icon","secure_url":"https://res.example/icon.svg"}`))
	}))
	defer server.Close()

	service := newTestService(t, server.URL)
	_, err := service.Upload(context.Background(), &UploadInput{
		Data:     []byte("<svg/>"),
		Filename: "icon.svg",
		MimeType: "image/svg+xml",
		Folder:   core.AssetFolderAmenities,
	})
	require.NoError(t, err)
	assert.Equal(t, "svg", gotFormat)
	assert.Empty(t, gotQuality)
}

func TestUploadRejectsDisallowedMime(t *testing.T) {
	service := newTestService(t, "http://127.0.0.1:1")
	_, err := service.Upload(context.Background(), &UploadInput{
		Data:     []byte("%PDF-"),
		Filename: "doc.pdf",
		MimeType: "application/pdf",
		Folder:   core.AssetFolderMedia,
	})
	require.Error(t, err)
	appErr, ok := err.(*cErr.Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.HttpCode())
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	service := newTestService(t, "http://127.0.0.1:1")
	service.config.Cloudinary.MaxUploadBytes = 4
	_, err := service.Upload(context.Background(), &UploadInput{
		Data:     []byte("12345"),
		Filename: "big.png",
		MimeType: "image/png",
		Folder:   core.AssetFolderMedia,
	})
	assert.Error(t, err)
}

func TestUploadNon2xxIsExternalRequestError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"Invalid Signature"}}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	service := newTestService(t, server.URL)
	_, err := service.Upload(context.Background(), &UploadInput{
		Data:     []byte("x"),
		Filename: "a.png",
		MimeType: "image/png",
		Folder:   core.AssetFolderProperties,
	})
	require.Error(t, err)
	appErr, ok := err.(*cErr.Error)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, appErr.HttpCode())
}

func TestUploadMissingPublicIDIsFormatError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"format":"webp"}`))
	}))
	defer server.Close()

	service := newTestService(t, server.URL)
	_, err := service.Upload(context.Background(), &UploadInput{
		Data:     []byte("x"),
		Filename: "a.png",
		MimeType: "image/png",
		Folder:   core.AssetFolderProperties,
	})
	assert.Error(t, err)
}

func TestDestroy(t *testing.T) {
	t.Run("ok result succeeds", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseForm())
			assert.Equal(t, "coliving/properties/abc", r.FormValue("public_id"))
			assert.NotEmpty(t, r.FormValue("signature"))
			assert.Equal(t, "key123", r.FormValue("api_key"))
			w.Write([]byte(`{"result":"ok"}`))
		}))
		defer server.Close()

		service := newTestService(t, server.URL)
		assert.NoError(t, service.Destroy(context.Background(), "coliving/properties/abc"))
	})

	t.Run("not found is treated as success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"result":"not found"}`))
		}))
		defer server.Close()

		service := newTestService(t, server.URL)
		assert.NoError(t, service.Destroy(context.Background(), "gone"))
	})

	t.Run("other result is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"result":"pending"}`))
		}))
		defer server.Close()

		service := newTestService(t, server.URL)
		assert.Error(t, service.Destroy(context.Background(), "abc"))
	})
}

func TestIsAllowedMimeType(t *testing.T) {
	t.Parallel()

	assert.True(t, IsAllowedMimeType("image/png"))
	assert.True(t, IsAllowedMimeType("image/svg+xml"))
	assert.False(t, IsAllowedMimeType("application/pdf"))
	assert.False(t, IsAllowedMimeType("video/mp4"))
}

func TestFolderPath(t *testing.T) {
	t.Parallel()

	service := newTestService(t, "")
	assert.Equal(t, "coliving/media", service.folderPath(core.AssetFolderMedia))

	service.config.Cloudinary.FolderPrefix = ""
	assert.Equal(t, "media", service.folderPath(core.AssetFolderMedia))
}
