package service

import (
	"context"
	"errors"

	"winecellar/internal/httpapi/models"
	"winecellar/internal/httpapi/repository"
)

type RatingService interface {
	GetAll(ctx context.Context) ([]models.UserRating, error)
	GetForWine(ctx context.Context, wineID int64) (*models.UserRating, error)
	GetRecent(ctx context.Context, limit int) ([]models.UserRating, error)
	GetFavorites(ctx context.Context) ([]models.UserRating, error)
	CreateOrUpdate(ctx context.Context, wineID int64, rating int, notes string, isFavorite bool) (*models.UserRating, error)
	ToggleFavorite(ctx context.Context, wineID int64) (*models.UserRating, error)
	Delete(ctx context.Context, wineID int64) (*models.UserRating, error)
}

type ratingService struct {
	ratingRepo repository.RatingRepository
	wineRepo   repository.WineRepository
}

func NewRatingService(ratingRepo repository.RatingRepository, wineRepo repository.WineRepository) RatingService {
	return &ratingService{ratingRepo: ratingRepo, wineRepo: wineRepo}
}

func (s *ratingService) GetAll(ctx context.Context) ([]models.UserRating, error) {
	return s.ratingRepo.GetAll(ctx)
}

// GetForWine returns (nil, nil) when the wine has no rating yet, so
// callers can branch on presence without unwrapping errors.
func (s *ratingService) GetForWine(ctx context.Context, wineID int64) (*models.UserRating, error) {
	rating, err := s.ratingRepo.GetByWineID(ctx, wineID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rating, nil
}

func (s *ratingService) GetRecent(ctx context.Context, limit int) ([]models.UserRating, error) {
	return s.ratingRepo.GetRecent(ctx, limit)
}

func (s *ratingService) GetFavorites(ctx context.Context) ([]models.UserRating, error) {
	return s.ratingRepo.GetFavorites(ctx)
}

// CreateOrUpdate saves the user's score, notes and favorite flag for a
// wine: update when a rating already exists, create otherwise.
func (s *ratingService) CreateOrUpdate(ctx context.Context, wineID int64, score int, notes string, isFavorite bool) (*models.UserRating, error) {
	if score < 0 || score > 5 {
		verr := NewValidationError()
		verr.Add("rating", "Rating must be between 0 and 5")
		return nil, verr
	}
	if _, err := s.wineRepo.GetByID(ctx, wineID); err != nil {
		return nil, err
	}

	existing, err := s.GetForWine(ctx, wineID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return s.ratingRepo.Update(ctx, existing.ID, repository.RatingPatch{
			Rating:     &score,
			Notes:      &notes,
			IsFavorite: &isFavorite,
		})
	}

	rating := &models.UserRating{
		WineID:     wineID,
		Rating:     score,
		Notes:      notes,
		IsFavorite: isFavorite,
	}
	if err := s.ratingRepo.Create(ctx, rating); err != nil {
		return nil, err
	}
	return rating, nil
}

// ToggleFavorite flips the favorite flag. With no prior rating it creates
// an unscored one (rating 0) carrying only the flag; with one it flips
// IsFavorite alone, preserving score and notes.
func (s *ratingService) ToggleFavorite(ctx context.Context, wineID int64) (*models.UserRating, error) {
	if _, err := s.wineRepo.GetByID(ctx, wineID); err != nil {
		return nil, err
	}

	existing, err := s.GetForWine(ctx, wineID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		rating := &models.UserRating{
			WineID:     wineID,
			Rating:     0,
			IsFavorite: true,
		}
		if err := s.ratingRepo.Create(ctx, rating); err != nil {
			return nil, err
		}
		return rating, nil
	}

	flipped := !existing.IsFavorite
	return s.ratingRepo.Update(ctx, existing.ID, repository.RatingPatch{IsFavorite: &flipped})
}

// Delete removes the wine's rating, which also drops the wine out of the
// derived collection.
func (s *ratingService) Delete(ctx context.Context, wineID int64) (*models.UserRating, error) {
	existing, err := s.ratingRepo.GetByWineID(ctx, wineID)
	if err != nil {
		return nil, err
	}
	return s.ratingRepo.Delete(ctx, existing.ID)
}
