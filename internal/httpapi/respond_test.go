package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perform(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/t", handler)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/t", nil)
	router.ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestSuccessEnvelope(t *testing.T) {
	rec, body := perform(t, func(c *gin.Context) {
		Success(c, http.StatusOK, gin.H{"id": "x"}, "done")
	})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "done", body["message"])
	assert.NotNil(t, body["data"])
	_, hasError := body["error"]
	assert.False(t, hasError)
}

func TestErrorEnvelopeOmitsData(t *testing.T) {
	rec, body := perform(t, func(c *gin.Context) {
		Error(c, http.StatusNotFound, "Thing not found", "")
	})

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Thing not found", body["error"])
	_, hasData := body["data"]
	assert.False(t, hasData)
}

func TestPaginatedNestsPageResult(t *testing.T) {
	_, body := perform(t, func(c *gin.Context) {
		Paginated(c, http.StatusOK, []string{"a", "b"}, 25, 2, 10)
	})

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)

	pagination, ok := data["pagination"].(map[string]any)
	require.True(t, ok)
	assert.EqualValues(t, 25, pagination["total"])
	assert.EqualValues(t, 2, pagination["page"])
	assert.EqualValues(t, 10, pagination["limit"])
	assert.EqualValues(t, 3, pagination["totalPages"])

	items, ok := data["data"].([]any)
	require.True(t, ok)
	assert.Len(t, items, 2)
}
