package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"winecellar/internal/httpapi/models"
	"winecellar/internal/httpapi/repository"
)

// minVintageYear is the oldest vintage the catalogue accepts.
const minVintageYear = 1800

// CreateWineInput carries the add-wine form. The optional initial rating
// is written only after the wine itself exists, and only when Rating > 0
// or the favorite flag is set.
type CreateWineInput struct {
	Name     string
	Vineyard string
	Year     int
	Type     models.WineType
	Region   string
	Barcode  string
	ImageURL string
	AddedBy  string

	Rating     int
	Notes      string
	IsFavorite bool
}

type WineService interface {
	GetAll(ctx context.Context) ([]models.Wine, error)
	GetByID(ctx context.Context, id int64) (*models.Wine, error)
	GetByBarcode(ctx context.Context, code string) (*models.Wine, error)
	Create(ctx context.Context, input CreateWineInput) (*models.Wine, error)
	Update(ctx context.Context, id int64, patch repository.WinePatch) (*models.Wine, error)
	Delete(ctx context.Context, id int64) (*models.Wine, error)
	Search(ctx context.Context, query string) ([]models.Wine, error)
}

type wineService struct {
	wineRepo   repository.WineRepository
	ratingRepo repository.RatingRepository
	now        func() time.Time
}

func NewWineService(wineRepo repository.WineRepository, ratingRepo repository.RatingRepository) WineService {
	return &wineService{
		wineRepo:   wineRepo,
		ratingRepo: ratingRepo,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *wineService) GetAll(ctx context.Context) ([]models.Wine, error) {
	return s.wineRepo.GetAll(ctx)
}

func (s *wineService) GetByID(ctx context.Context, id int64) (*models.Wine, error) {
	return s.wineRepo.GetByID(ctx, id)
}

func (s *wineService) GetByBarcode(ctx context.Context, code string) (*models.Wine, error) {
	return s.wineRepo.GetByBarcode(ctx, code)
}

// validate applies the add-wine form rules. The repository itself never
// enforces these; validation always happens here, upstream of the write.
func (s *wineService) validate(input CreateWineInput) error {
	verr := NewValidationError()
	if strings.TrimSpace(input.Name) == "" {
		verr.Add("name", "Wine name is required")
	}
	if strings.TrimSpace(input.Vineyard) == "" {
		verr.Add("vineyard", "Vineyard is required")
	}
	currentYear := s.now().Year()
	if input.Year < minVintageYear || input.Year > currentYear {
		verr.Add("year", fmt.Sprintf("Year must be between %d and %d", minVintageYear, currentYear))
	}
	if !input.Type.Valid() {
		verr.Add("type", "Wine type is required")
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}

func (s *wineService) Create(ctx context.Context, input CreateWineInput) (*models.Wine, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	addedBy := input.AddedBy
	if addedBy == "" {
		addedBy = models.LocalUserID
	}
	wine := &models.Wine{
		Name:      strings.TrimSpace(input.Name),
		Vineyard:  strings.TrimSpace(input.Vineyard),
		Year:      input.Year,
		Type:      input.Type,
		Region:    strings.TrimSpace(input.Region),
		Barcode:   input.Barcode,
		ImageURL:  input.ImageURL,
		AddedBy:   addedBy,
		AddedDate: s.now(),
	}
	if err := s.wineRepo.Create(ctx, wine); err != nil {
		return nil, err
	}

	if input.Rating > 0 || input.IsFavorite {
		rating := &models.UserRating{
			WineID:     wine.ID,
			Rating:     input.Rating,
			Notes:      input.Notes,
			IsFavorite: input.IsFavorite,
		}
		if err := s.ratingRepo.Create(ctx, rating); err != nil {
			return nil, fmt.Errorf("wine created but initial rating failed: %w", err)
		}
	}
	return wine, nil
}

func (s *wineService) Update(ctx context.Context, id int64, patch repository.WinePatch) (*models.Wine, error) {
	return s.wineRepo.Update(ctx, id, patch)
}

func (s *wineService) Delete(ctx context.Context, id int64) (*models.Wine, error) {
	return s.wineRepo.Delete(ctx, id)
}

func (s *wineService) Search(ctx context.Context, query string) ([]models.Wine, error) {
	return s.wineRepo.Search(ctx, query)
}
