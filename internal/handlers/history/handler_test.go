package history_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkovalenko-dev/weather-search-api/internal/handlers/history"
	"github.com/mkovalenko-dev/weather-search-api/internal/models"
)

type mockService struct {
	id      int64
	records []models.WeatherSearchRecord
	err     error

	lastID     int64
	lastSave   models.SaveSearchRequest
	lastUpdate models.UpdateSearchRequest
}

func (m *mockService) Save(_ context.Context, req models.SaveSearchRequest) (int64, error) {
	m.lastSave = req
	return m.id, m.err
}

func (m *mockService) List(_ context.Context) ([]models.WeatherSearchRecord, error) {
	return m.records, m.err
}

func (m *mockService) Update(_ context.Context, id int64, req models.UpdateSearchRequest) error {
	m.lastID = id
	m.lastUpdate = req
	return m.err
}

func (m *mockService) Delete(_ context.Context, id int64) error {
	m.lastID = id
	return m.err
}

func newContext(
	t *testing.T, method, body string, params gin.Params,
) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	req, err := http.NewRequest(method, "/", bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Params = params

	return c, rec
}

func TestSave_Success(t *testing.T) {
	m := &mockService{id: 7}
	h := history.NewHandler(m)

	c, rec := newContext(t, http.MethodPost,
		`{"location":"Kyiv","temperature":21.5,"condition":"clear"}`, nil)
	h.Save(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":7,"message":"Weather data saved successfully"}`, rec.Body.String())
	assert.Equal(t, "Kyiv", m.lastSave.Location)
	require.NotNil(t, m.lastSave.Temperature)
	assert.Equal(t, 21.5, *m.lastSave.Temperature)
}

func TestSave_MalformedBody(t *testing.T) {
	h := history.NewHandler(&mockService{})

	c, rec := newContext(t, http.MethodPost, `{"location":`, nil)
	h.Save(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid request body"}`, rec.Body.String())
}

func TestSave_ValidationReasonEchoed(t *testing.T) {
	m := &mockService{err: models.NewValidationError("Temperature must be between -100°C and 60°C")}
	h := history.NewHandler(m)

	c, rec := newContext(t, http.MethodPost, `{"location":"Paris","temperature":75}`, nil)
	h.Save(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Temperature must be between -100°C and 60°C"}`, rec.Body.String())
}

func TestSave_StorageError(t *testing.T) {
	h := history.NewHandler(&mockService{err: errors.New("db gone")})

	c, rec := newContext(t, http.MethodPost, `{"location":"Kyiv","temperature":20}`, nil)
	h.Save(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to save weather data"}`, rec.Body.String())
}

func TestList_Success(t *testing.T) {
	m := &mockService{records: []models.WeatherSearchRecord{{ID: 2, Location: "Kyiv"}}}
	h := history.NewHandler(m)

	c, rec := newContext(t, http.MethodGet, "", nil)
	h.List(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"location":"Kyiv"`)
}

func TestList_Error(t *testing.T) {
	h := history.NewHandler(&mockService{err: errors.New("db gone")})

	c, rec := newContext(t, http.MethodGet, "", nil)
	h.List(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to fetch weather history"}`, rec.Body.String())
}

func TestUpdate_Success(t *testing.T) {
	m := &mockService{}
	h := history.NewHandler(m)

	c, rec := newContext(t, http.MethodPut,
		`{"location":"Kyiv, UA","temperature":25}`,
		gin.Params{{Key: "id", Value: "42"}})
	h.Update(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Weather data updated successfully"}`, rec.Body.String())
	assert.Equal(t, int64(42), m.lastID)
	assert.Equal(t, "Kyiv, UA", m.lastUpdate.Location)
}

func TestUpdate_InvalidID(t *testing.T) {
	h := history.NewHandler(&mockService{})

	c, rec := newContext(t, http.MethodPut, `{}`, gin.Params{{Key: "id", Value: "abc"}})
	h.Update(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid record ID"}`, rec.Body.String())
}

func TestUpdate_NotFound(t *testing.T) {
	h := history.NewHandler(&mockService{err: models.ErrNotFound})

	c, rec := newContext(t, http.MethodPut,
		`{"location":"Kyiv","temperature":20}`,
		gin.Params{{Key: "id", Value: "9999"}})
	h.Update(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Weather record not found"}`, rec.Body.String())
}

func TestDelete_Success(t *testing.T) {
	m := &mockService{}
	h := history.NewHandler(m)

	c, rec := newContext(t, http.MethodDelete, "", gin.Params{{Key: "id", Value: "5"}})
	h.Delete(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Weather data deleted successfully"}`, rec.Body.String())
	assert.Equal(t, int64(5), m.lastID)
}

func TestDelete_InvalidID(t *testing.T) {
	h := history.NewHandler(&mockService{})

	c, rec := newContext(t, http.MethodDelete, "", gin.Params{{Key: "id", Value: "not-a-number"}})
	h.Delete(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid record ID"}`, rec.Body.String())
}

func TestDelete_NotFound(t *testing.T) {
	h := history.NewHandler(&mockService{err: models.ErrNotFound})

	c, rec := newContext(t, http.MethodDelete, "", gin.Params{{Key: "id", Value: "8"}})
	h.Delete(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Weather record not found"}`, rec.Body.String())
}
