package dto_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"uptown/internal/dto"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFormContext(t *testing.T, fields map[string]string) *gin.Context {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/properties", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = req
	return c
}

func TestParsePropertyForm(t *testing.T) {
	t.Run("scalar and json fields", func(t *testing.T) {
		c := newFormContext(t, map[string]string{
			"name":           "Uptown Loft",
			"slug":           "uptown-loft",
			"description":    "三房兩廳",
			"space_type":     "coliving",
			"status":         "pending",
			"tags":           `["pet-friendly","metro"]`,
			"amenities":      `["64a000000000000000000001"]`,
			"coliving_plans": `[{"plan":"64a000000000000000000002","price":12000,"duration":"month"}]`,
			"location":       `{"address":"12 MG Road","latitude":28.4,"longitude":77.1,"city":"64a000000000000000000003","state":"Haryana","country":"India","micro_locations":["64a000000000000000000004"]}`,
			"startingPrice":  `9999`,
			"rating":         `4.5`,
			"reviewCount":    `37`,
			"featured":       `true`,
			"verified":       `false`,
			"image_alts":     `["front","lobby"]`,
		})

		form, field, err := dto.ParsePropertyForm(c)
		require.NoError(t, err)
		assert.Empty(t, field)

		require.NotNil(t, form.Name)
		assert.Equal(t, "Uptown Loft", *form.Name)
		require.NotNil(t, form.Slug)
		assert.Equal(t, "uptown-loft", *form.Slug)
		assert.Equal(t, []string{"pet-friendly", "metro"}, form.Tags)
		assert.Equal(t, []string{"64a000000000000000000001"}, form.Amenities)

		require.Len(t, form.ColivingPlans, 1)
		assert.Equal(t, "64a000000000000000000002", form.ColivingPlans[0].Plan)
		assert.Equal(t, float64(12000), form.ColivingPlans[0].Price)
		assert.Equal(t, "month", form.ColivingPlans[0].Duration)

		require.NotNil(t, form.Location)
		assert.Equal(t, "12 MG Road", form.Location.Address)
		require.NotNil(t, form.Location.City)
		assert.Equal(t, "64a000000000000000000003", *form.Location.City)
		assert.Equal(t, []string{"64a000000000000000000004"}, form.Location.MicroLocations)

		require.NotNil(t, form.StartingPrice)
		assert.Equal(t, 9999.0, *form.StartingPrice)
		require.NotNil(t, form.Rating)
		assert.Equal(t, 4.5, *form.Rating)
		require.NotNil(t, form.ReviewCount)
		assert.Equal(t, 37, *form.ReviewCount)
		require.NotNil(t, form.Featured)
		assert.True(t, *form.Featured)
		require.NotNil(t, form.Verified)
		assert.False(t, *form.Verified)
		assert.Equal(t, []string{"front", "lobby"}, form.ImageAlts)
	})

	t.Run("missing fields stay nil", func(t *testing.T) {
		c := newFormContext(t, map[string]string{"name": "Partial"})

		form, field, err := dto.ParsePropertyForm(c)
		require.NoError(t, err)
		assert.Empty(t, field)

		require.NotNil(t, form.Name)
		assert.Nil(t, form.Slug)
		assert.Nil(t, form.Description)
		assert.Nil(t, form.Location)
		assert.Nil(t, form.Status)
		assert.Nil(t, form.Featured)
		assert.Nil(t, form.Tags)
	})

	t.Run("empty json field is ignored", func(t *testing.T) {
		c := newFormContext(t, map[string]string{"tags": ""})

		form, field, err := dto.ParsePropertyForm(c)
		require.NoError(t, err)
		assert.Empty(t, field)
		assert.Nil(t, form.Tags)
	})

	t.Run("malformed json reports field name", func(t *testing.T) {
		c := newFormContext(t, map[string]string{"location": `{"address":`})

		form, field, err := dto.ParsePropertyForm(c)
		require.Error(t, err)
		assert.Equal(t, "location", field)
		assert.Nil(t, form)
	})
}
