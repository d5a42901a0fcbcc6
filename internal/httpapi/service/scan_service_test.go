package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"winecellar/internal/cache"
	"winecellar/internal/capture"
	"winecellar/internal/httpapi/models"
	"winecellar/internal/httpapi/repository"
)

// --- MOCKS ---

type MockWineRepository struct {
	mock.Mock
}

func (m *MockWineRepository) GetAll(ctx context.Context) ([]models.Wine, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Wine), args.Error(1)
}

func (m *MockWineRepository) GetByID(ctx context.Context, id int64) (*models.Wine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wine), args.Error(1)
}

func (m *MockWineRepository) GetByBarcode(ctx context.Context, code string) (*models.Wine, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wine), args.Error(1)
}

func (m *MockWineRepository) GetByType(ctx context.Context, wineType models.WineType) ([]models.Wine, error) {
	args := m.Called(ctx, wineType)
	return args.Get(0).([]models.Wine), args.Error(1)
}

func (m *MockWineRepository) Create(ctx context.Context, wine *models.Wine) error {
	args := m.Called(ctx, wine)
	return args.Error(0)
}

func (m *MockWineRepository) Update(ctx context.Context, id int64, patch repository.WinePatch) (*models.Wine, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wine), args.Error(1)
}

func (m *MockWineRepository) Delete(ctx context.Context, id int64) (*models.Wine, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wine), args.Error(1)
}

func (m *MockWineRepository) Search(ctx context.Context, query string) ([]models.Wine, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]models.Wine), args.Error(1)
}

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

func newScanService(wineRepo *MockWineRepository, ratingSvc *MockRatingService) ScanService {
	return NewScanService(capture.NewDevice(0), wineRepo, ratingSvc, &cache.ScanCache{}, nil)
}

// --- TESTS ---

func TestScanService_Lookup_BlankBarcodeNeverReachesRepository(t *testing.T) {
	wineRepo := new(MockWineRepository)
	ratingSvc := new(MockRatingService)
	svc := newScanService(wineRepo, ratingSvc)

	for _, barcode := range []string{"", "   ", "\t"} {
		result, err := svc.Lookup(context.Background(), "", barcode)
		assert.ErrorIs(t, err, ErrBlankBarcode)
		assert.Nil(t, result)
		assert.Equal(t, StateIdle, svc.State())
	}

	wineRepo.AssertNotCalled(t, "GetByBarcode", mock.Anything, mock.Anything)
	ratingSvc.AssertNotCalled(t, "GetForWine", mock.Anything, mock.Anything)
}

func TestScanService_Lookup_Found(t *testing.T) {
	wineRepo := new(MockWineRepository)
	ratingSvc := new(MockRatingService)
	svc := newScanService(wineRepo, ratingSvc)

	wine := &models.Wine{ID: 1, Name: "Opus One", Barcode: "1234567890123"}
	rating := &models.UserRating{ID: 7, WineID: 1, Rating: 5}
	wineRepo.On("GetByBarcode", mock.Anything, "1234567890123").Return(wine, nil).Once()
	ratingSvc.On("GetForWine", mock.Anything, int64(1)).Return(rating, nil).Once()

	result, err := svc.Lookup(context.Background(), "", "1234567890123")
	require.NoError(t, err)
	assert.Equal(t, StateFound, result.State)
	assert.Equal(t, wine, result.Wine)
	assert.Equal(t, rating, result.Rating)
	assert.Empty(t, result.RedirectTo)
	assert.Equal(t, StateFound, svc.State())

	wineRepo.AssertExpectations(t)
	ratingSvc.AssertExpectations(t)
}

func TestScanService_Lookup_FoundWithoutRating(t *testing.T) {
	wineRepo := new(MockWineRepository)
	ratingSvc := new(MockRatingService)
	svc := newScanService(wineRepo, ratingSvc)

	wine := &models.Wine{ID: 2, Name: "Cloudy Bay", Barcode: "9876543210987"}
	wineRepo.On("GetByBarcode", mock.Anything, "9876543210987").Return(wine, nil).Once()
	ratingSvc.On("GetForWine", mock.Anything, int64(2)).Return(nil, nil).Once()

	result, err := svc.Lookup(context.Background(), "", "9876543210987")
	require.NoError(t, err)
	assert.Equal(t, StateFound, result.State)
	assert.Nil(t, result.Rating)
}

func TestScanService_Lookup_NotFoundRedirectsToAddWine(t *testing.T) {
	wineRepo := new(MockWineRepository)
	ratingSvc := new(MockRatingService)
	svc := newScanService(wineRepo, ratingSvc)

	wineRepo.On("GetByBarcode", mock.Anything, "9999999999999").Return(nil, repository.ErrNotFound).Once()

	result, err := svc.Lookup(context.Background(), "", "9999999999999")
	require.NoError(t, err)
	assert.Equal(t, StateNotFound, result.State)
	assert.Equal(t, "9999999999999", result.Barcode)
	// the literal scanned barcode is pre-filled, no wine was written
	assert.Equal(t, "/add-wine?barcode=9999999999999", result.RedirectTo)
	assert.Nil(t, result.Wine)
	assert.Equal(t, StateNotFound, svc.State())

	wineRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestScanService_Lookup_RepositoryFailureResetsToIdle(t *testing.T) {
	wineRepo := new(MockWineRepository)
	ratingSvc := new(MockRatingService)
	svc := newScanService(wineRepo, ratingSvc)

	wineRepo.On("GetByBarcode", mock.Anything, "1234567890123").Return(nil, errors.New("backend down")).Once()

	result, err := svc.Lookup(context.Background(), "", "1234567890123")
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, StateIdle, svc.State())
}

func TestScanService_Scan_ReleasesDeviceOnEveryPath(t *testing.T) {
	wineRepo := new(MockWineRepository)
	ratingSvc := new(MockRatingService)
	device := capture.NewDevice(0)
	svc := NewScanService(device, wineRepo, ratingSvc, &cache.ScanCache{}, nil)

	wineRepo.On("GetByBarcode", mock.Anything, mock.AnythingOfType("string")).Return(nil, repository.ErrNotFound)

	result, err := svc.Scan(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, StateNotFound, result.State)
	assert.Len(t, result.Barcode, 13)

	// the session was released, so the device can be opened again
	session, err := device.Open()
	require.NoError(t, err)
	session.Close()
}

func TestScanService_Scan_CancelledCaptureResetsToIdle(t *testing.T) {
	wineRepo := new(MockWineRepository)
	ratingSvc := new(MockRatingService)
	device := capture.NewDevice(0)
	svc := NewScanService(device, wineRepo, ratingSvc, &cache.ScanCache{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Scan(ctx, "")
	require.Error(t, err)
	var capErr *capture.Error
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, capture.CauseClosed, capErr.Cause)
	assert.Equal(t, StateIdle, svc.State())

	// device released despite the failure
	session, err := device.Open()
	require.NoError(t, err)
	session.Close()

	wineRepo.AssertNotCalled(t, "GetByBarcode", mock.Anything, mock.Anything)
}

func TestScanService_SubmitRating(t *testing.T) {
	wineRepo := new(MockWineRepository)
	ratingSvc := new(MockRatingService)
	svc := newScanService(wineRepo, ratingSvc)

	rating := &models.UserRating{ID: 1, WineID: 3, Rating: 4, Notes: "bright acidity"}
	ratingSvc.On("CreateOrUpdate", mock.Anything, int64(3), 4, "bright acidity", false).Return(rating, nil).Once()

	result, err := svc.SubmitRating(context.Background(), 3, 4, "bright acidity", false)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, result.State)
	assert.Equal(t, rating, result.Rating)
	assert.Equal(t, StateIdle, svc.State())

	ratingSvc.AssertExpectations(t)
}

func TestScanService_ToggleFavorite(t *testing.T) {
	wineRepo := new(MockWineRepository)
	ratingSvc := new(MockRatingService)
	svc := newScanService(wineRepo, ratingSvc)

	rating := &models.UserRating{ID: 2, WineID: 5, Rating: 0, IsFavorite: true}
	ratingSvc.On("ToggleFavorite", mock.Anything, int64(5)).Return(rating, nil).Once()

	result, err := svc.ToggleFavorite(context.Background(), 5)
	require.NoError(t, err)
	assert.True(t, result.Rating.IsFavorite)
	assert.Zero(t, result.Rating.Rating)
}

func TestScanService_History_DisabledCacheIsEmpty(t *testing.T) {
	svc := newScanService(new(MockWineRepository), new(MockRatingService))

	entries, err := svc.History(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, entries)
}
