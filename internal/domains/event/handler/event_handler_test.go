package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artplatform-backend/internal/domains/event"
	"artplatform-backend/internal/domains/event/model"
	"artplatform-backend/internal/domains/event/service"
	"artplatform-backend/internal/infrastructure/storage"
)

// stubService overrides only the methods a test cares about; calling
// anything else panics via the embedded nil interface.
type stubService struct {
	service.ServiceInterface
	createErr error
}

func (s stubService) CreateEvent(ctx context.Context, req model.CreateEventRequest, image *model.ImageUpload) (*model.EventResponse, error) {
	return nil, s.createErr
}

func multipartEventForm(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	require.NoError(t, w.WriteField("name", "Open Studio"))
	require.NoError(t, w.WriteField("location", "Main Hall"))
	require.NoError(t, w.WriteField("start_date", time.Now().Add(24*time.Hour).Format(time.RFC3339)))
	require.NoError(t, w.Close())
	return body, w.FormDataContentType()
}

func postCreate(t *testing.T, svc service.ServiceInterface) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/events", NewEventHandler(svc).Create)

	body, contentType := multipartEventForm(t)
	req := httptest.NewRequest(http.MethodPost, "/events", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w, parsed
}

func errorMessage(t *testing.T, parsed map[string]interface{}) string {
	t.Helper()
	errObj, ok := parsed["error"].(map[string]interface{})
	require.True(t, ok, "response carries an error object")
	msg, _ := errObj["message"].(string)
	return msg
}

func TestCreate_UploadFailureSurfacesCause(t *testing.T) {
	svc := stubService{createErr: fmt.Errorf("%w: bucket unavailable", event.ErrUploadFailed)}

	w, parsed := postCreate(t, svc)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, errorMessage(t, parsed), "bucket unavailable")
}

func TestCreate_InvalidImageIsClientError(t *testing.T) {
	svc := stubService{createErr: fmt.Errorf("%w: format gif not allowed (only jpeg/png)", storage.ErrInvalidImage)}

	w, parsed := postCreate(t, svc)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, errorMessage(t, parsed), "format gif not allowed")
}

func TestCreate_UnexpectedErrorStaysOpaque(t *testing.T) {
	svc := stubService{createErr: fmt.Errorf("pq: connection reset")}

	w, parsed := postCreate(t, svc)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	msg := errorMessage(t, parsed)
	assert.NotContains(t, msg, "connection reset", "internal detail never leaks")
	assert.Equal(t, "something went wrong", msg)
}

func TestRespondError_EndBeforeStart(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, event.ErrEndBeforeStart)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), event.ErrEndBeforeStart.Error())
}

func TestRespondError_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	respondError(c, event.ErrEventNotFound)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_FOUND")
}
