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

	"winecellar/internal/httpapi/handler"
	"winecellar/internal/httpapi/models"
	"winecellar/internal/httpapi/repository"
)

// --- MOCK SERVICE ---

type MockRatingService struct {
	mock.Mock
}

func (m *MockRatingService) GetAll(ctx context.Context) ([]models.UserRating, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.UserRating), args.Error(1)
}

func (m *MockRatingService) GetForWine(ctx context.Context, wineID int64) (*models.UserRating, error) {
	args := m.Called(ctx, wineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserRating), args.Error(1)
}

func (m *MockRatingService) GetRecent(ctx context.Context, limit int) ([]models.UserRating, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]models.UserRating), args.Error(1)
}

func (m *MockRatingService) GetFavorites(ctx context.Context) ([]models.UserRating, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.UserRating), args.Error(1)
}

func (m *MockRatingService) CreateOrUpdate(ctx context.Context, wineID int64, rating int, notes string, isFavorite bool) (*models.UserRating, error) {
	args := m.Called(ctx, wineID, rating, notes, isFavorite)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserRating), args.Error(1)
}

func (m *MockRatingService) ToggleFavorite(ctx context.Context, wineID int64) (*models.UserRating, error) {
	args := m.Called(ctx, wineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserRating), args.Error(1)
}

func (m *MockRatingService) Delete(ctx context.Context, wineID int64) (*models.UserRating, error) {
	args := m.Called(ctx, wineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserRating), args.Error(1)
}

// --- SETUP ---

func setupRatingRouter(mockService *MockRatingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewRatingHandler(mockService)

	rg := r.Group("/api")
	h.RegisterRoutes(rg)
	return r
}

// --- TESTS ---

func TestRatingHandler_Get(t *testing.T) {
	t.Run("Exists", func(t *testing.T) {
		mockService := new(MockRatingService)
		r := setupRatingRouter(mockService)

		rating := &models.UserRating{ID: 1, WineID: 3, Rating: 4, Notes: "cherry"}
		mockService.On("GetForWine", mock.Anything, int64(3)).Return(rating, nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/wines/3/rating", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, float64(4), resp["rating"])
	})

	t.Run("NoneYetIs204", func(t *testing.T) {
		mockService := new(MockRatingService)
		r := setupRatingRouter(mockService)

		mockService.On("GetForWine", mock.Anything, int64(3)).Return(nil, nil).Once()

		req, _ := http.NewRequest(http.MethodGet, "/api/wines/3/rating", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("BadID", func(t *testing.T) {
		mockService := new(MockRatingService)
		r := setupRatingRouter(mockService)

		req, _ := http.NewRequest(http.MethodGet, "/api/wines/abc/rating", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "GetForWine", mock.Anything, mock.Anything)
	})
}

func TestRatingHandler_Submit(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		mockService := new(MockRatingService)
		r := setupRatingRouter(mockService)

		rating := &models.UserRating{ID: 1, WineID: 3, Rating: 5, Notes: "superb", IsFavorite: true}
		mockService.On("CreateOrUpdate", mock.Anything, int64(3), 5, "superb", true).Return(rating, nil).Once()

		body, _ := json.Marshal(map[string]any{"rating": 5, "notes": "superb", "is_favorite": true})
		req, _ := http.NewRequest(http.MethodPost, "/api/wines/3/rating", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("ScoreAboveRangeRejectedByBinding", func(t *testing.T) {
		mockService := new(MockRatingService)
		r := setupRatingRouter(mockService)

		body, _ := json.Marshal(map[string]any{"rating": 6})
		req, _ := http.NewRequest(http.MethodPost, "/api/wines/3/rating", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "CreateOrUpdate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("UnknownWine", func(t *testing.T) {
		mockService := new(MockRatingService)
		r := setupRatingRouter(mockService)

		mockService.On("CreateOrUpdate", mock.Anything, int64(99), 3, "", false).Return(nil, repository.ErrNotFound).Once()

		body, _ := json.Marshal(map[string]any{"rating": 3})
		req, _ := http.NewRequest(http.MethodPost, "/api/wines/99/rating", bytes.NewBuffer(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRatingHandler_ToggleFavorite(t *testing.T) {
	mockService := new(MockRatingService)
	r := setupRatingRouter(mockService)

	rating := &models.UserRating{ID: 2, WineID: 5, Rating: 0, IsFavorite: true}
	mockService.On("ToggleFavorite", mock.Anything, int64(5)).Return(rating, nil).Once()

	req, _ := http.NewRequest(http.MethodPost, "/api/wines/5/favorite", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, true, resp["is_favorite"])
	assert.Equal(t, float64(0), resp["rating"])
}

func TestRatingHandler_Recent(t *testing.T) {
	mockService := new(MockRatingService)
	r := setupRatingRouter(mockService)

	mockService.On("GetRecent", mock.Anything, 10).Return([]models.UserRating{
		{ID: 2, WineID: 2, Rating: 3},
		{ID: 1, WineID: 1, Rating: 5},
	}, nil).Once()

	req, _ := http.NewRequest(http.MethodGet, "/api/ratings/recent", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp, 2)
}
