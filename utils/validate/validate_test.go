package validate_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"uptown/utils/validate"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQueryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/?"+rawQuery, nil)
	return c
}

func newPostFormContext(t *testing.T, form url.Values) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c
}

func TestParseObjectID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("valid hex", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Params = gin.Params{{Key: "id", Value: "64a000000000000000000001"}}

		id, cause, respErr := validate.ParseObjectID(c, "id")
		require.NoError(t, cause)
		require.NoError(t, respErr)
		assert.Equal(t, "64a000000000000000000001", id.Hex())
	})

	t.Run("malformed hex", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Params = gin.Params{{Key: "id", Value: "not-an-id"}}

		_, cause, respErr := validate.ParseObjectID(c, "id")
		assert.Error(t, cause)
		assert.Error(t, respErr)
	})
}

func TestGetInt64Query(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		c := newQueryContext(t, "limit=25")
		n, err := validate.GetInt64Query(c, "limit", 10)
		require.NoError(t, err)
		assert.Equal(t, int64(25), n)
	})

	t.Run("missing uses default", func(t *testing.T) {
		c := newQueryContext(t, "")
		n, err := validate.GetInt64Query(c, "limit", 10)
		require.NoError(t, err)
		assert.Equal(t, int64(10), n)
	})

	t.Run("malformed", func(t *testing.T) {
		c := newQueryContext(t, "limit=abc")
		_, err := validate.GetInt64Query(c, "limit", 10)
		assert.Error(t, err)
	})
}

func TestGetBoolQuery(t *testing.T) {
	t.Run("true value", func(t *testing.T) {
		c := newQueryContext(t, "all=true")
		value, present, err := validate.GetBoolQuery(c, "all")
		require.NoError(t, err)
		assert.True(t, present)
		assert.True(t, value)
	})

	t.Run("missing", func(t *testing.T) {
		c := newQueryContext(t, "")
		value, present, err := validate.GetBoolQuery(c, "all")
		require.NoError(t, err)
		assert.False(t, present)
		assert.False(t, value)
	})

	t.Run("malformed", func(t *testing.T) {
		c := newQueryContext(t, "all=yes")
		_, present, err := validate.GetBoolQuery(c, "all")
		assert.True(t, present)
		assert.Error(t, err)
	})
}

func TestGetBoolPostForm(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		c := newPostFormContext(t, url.Values{"enabled": {"false"}})
		value, present, err := validate.GetBoolPostForm(c, "enabled")
		require.NoError(t, err)
		assert.True(t, present)
		assert.False(t, value)
	})

	t.Run("missing", func(t *testing.T) {
		c := newPostFormContext(t, url.Values{})
		_, present, err := validate.GetBoolPostForm(c, "enabled")
		require.NoError(t, err)
		assert.False(t, present)
	})

	t.Run("malformed", func(t *testing.T) {
		c := newPostFormContext(t, url.Values{"enabled": {"enabledd"}})
		_, present, err := validate.GetBoolPostForm(c, "enabled")
		assert.True(t, present)
		assert.Error(t, err)
	})
}

func TestPayloadToMap(t *testing.T) {
	t.Parallel()

	type payload struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}

	m, err := validate.PayloadToMap(payload{Name: "a", Count: 2})
	require.NoError(t, err)
	assert.Equal(t, "a", m["name"])
	assert.Equal(t, float64(2), m["count"])
}
