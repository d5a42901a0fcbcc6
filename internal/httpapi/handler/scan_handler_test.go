package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"winecellar/internal/cache"
	"winecellar/internal/capture"
	"winecellar/internal/httpapi/handler"
	"winecellar/internal/httpapi/models"
	"winecellar/internal/httpapi/service"
)

// --- MOCK SERVICE ---

type MockScanService struct {
	mock.Mock
}

func (m *MockScanService) Scan(ctx context.Context, userID string) (*service.ScanResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ScanResult), args.Error(1)
}

func (m *MockScanService) Lookup(ctx context.Context, userID, barcode string) (*service.ScanResult, error) {
	args := m.Called(ctx, userID, barcode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ScanResult), args.Error(1)
}

func (m *MockScanService) SubmitRating(ctx context.Context, wineID int64, rating int, notes string, isFavorite bool) (*service.ScanResult, error) {
	args := m.Called(ctx, wineID, rating, notes, isFavorite)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ScanResult), args.Error(1)
}

func (m *MockScanService) ToggleFavorite(ctx context.Context, wineID int64) (*service.ScanResult, error) {
	args := m.Called(ctx, wineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ScanResult), args.Error(1)
}

func (m *MockScanService) History(ctx context.Context, userID string) ([]cache.ScanEntry, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]cache.ScanEntry), args.Error(1)
}

func (m *MockScanService) State() service.ScanState {
	args := m.Called()
	return args.Get(0).(service.ScanState)
}

// --- SETUP ---

func setupScanRouter(mockService *MockScanService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewScanHandler(mockService)

	rg := r.Group("/api")
	h.RegisterRoutes(rg)
	return r
}

// --- TESTS ---

func TestScanHandler_Lookup(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		mockService := new(MockScanService)
		r := setupScanRouter(mockService)

		wine := &models.Wine{ID: 1, Name: "Opus One", Barcode: "1234567890123"}
		mockService.On("Lookup", mock.Anything, "", "1234567890123").Return(&service.ScanResult{
			State:   service.StateFound,
			Barcode: "1234567890123",
			Wine:    wine,
		}, nil).Once()

		body, _ := json.Marshal(map[string]string{"barcode": "1234567890123"})
		req, _ := http.NewRequest(http.MethodPost, "/api/scan/lookup", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "found", resp["state"])
		mockService.AssertExpectations(t)
	})

	t.Run("NotFoundCarriesRedirect", func(t *testing.T) {
		mockService := new(MockScanService)
		r := setupScanRouter(mockService)

		mockService.On("Lookup", mock.Anything, "", "9999999999999").Return(&service.ScanResult{
			State:      service.StateNotFound,
			Barcode:    "9999999999999",
			RedirectTo: "/add-wine?barcode=9999999999999",
		}, nil).Once()

		body, _ := json.Marshal(map[string]string{"barcode": "9999999999999"})
		req, _ := http.NewRequest(http.MethodPost, "/api/scan/lookup", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "not_found", resp["state"])
		assert.Equal(t, "/add-wine?barcode=9999999999999", resp["redirect_to"])
	})

	t.Run("BlankBarcode", func(t *testing.T) {
		mockService := new(MockScanService)
		r := setupScanRouter(mockService)

		mockService.On("Lookup", mock.Anything, "", "").Return(nil, service.ErrBlankBarcode).Once()

		body, _ := json.Marshal(map[string]string{"barcode": ""})
		req, _ := http.NewRequest(http.MethodPost, "/api/scan/lookup", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "invalid barcode detected")
	})
}

func TestScanHandler_Scan_DeviceBusy(t *testing.T) {
	mockService := new(MockScanService)
	r := setupScanRouter(mockService)

	mockService.On("Scan", mock.Anything, "").Return(nil, &capture.Error{Cause: capture.CauseDeviceBusy}).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/scan", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "device_busy", resp["cause"])
	assert.NotEmpty(t, resp["remediation"])
}

func TestScanHandler_History(t *testing.T) {
	mockService := new(MockScanService)
	r := setupScanRouter(mockService)

	mockService.On("History", mock.Anything, "").Return([]cache.ScanEntry{
		{Barcode: "1234567890123", WineID: 1, Found: true},
		{Barcode: "9999999999999", Found: false},
	}, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/scan/history", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var entries []cache.ScanEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	assert.Len(t, entries, 2)
	assert.True(t, entries[0].Found)
}
