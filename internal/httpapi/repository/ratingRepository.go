package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"winecellar/internal/httpapi/models"

	"gorm.io/gorm"
)

// RatingPatch is a shallow-merge update for a UserRating. RatedDate is
// always restamped by Update regardless of which fields change.
type RatingPatch struct {
	Rating     *int
	Notes      *string
	IsFavorite *bool
}

func (p RatingPatch) ApplyTo(r *models.UserRating) {
	if p.Rating != nil {
		r.Rating = *p.Rating
	}
	if p.Notes != nil {
		r.Notes = *p.Notes
	}
	if p.IsFavorite != nil {
		r.IsFavorite = *p.IsFavorite
	}
}

type RatingRepository interface {
	GetAll(ctx context.Context) ([]models.UserRating, error)
	GetByID(ctx context.Context, id int64) (*models.UserRating, error)
	GetByWineID(ctx context.Context, wineID int64) (*models.UserRating, error)
	GetFavorites(ctx context.Context) ([]models.UserRating, error)
	GetRecent(ctx context.Context, limit int) ([]models.UserRating, error)
	GetByMinScore(ctx context.Context, minScore int) ([]models.UserRating, error)
	Create(ctx context.Context, rating *models.UserRating) error
	Update(ctx context.Context, id int64, patch RatingPatch) (*models.UserRating, error)
	Delete(ctx context.Context, id int64) (*models.UserRating, error)
}

type ratingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) RatingRepository {
	return &ratingRepository{db: db}
}

func (r *ratingRepository) GetAll(ctx context.Context) ([]models.UserRating, error) {
	var list []models.UserRating
	if err := r.db.WithContext(ctx).Order("id").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list ratings: %w", err)
	}
	return list, nil
}

func (r *ratingRepository) GetByID(ctx context.Context, id int64) (*models.UserRating, error) {
	var rating models.UserRating
	if err := r.db.WithContext(ctx).First(&rating, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rating, nil
}

// GetByWineID returns the first rating referencing the wine. Duplicate
// ratings for one wine are possible; first-in-insertion-order wins, the
// same rule the collection engine uses.
func (r *ratingRepository) GetByWineID(ctx context.Context, wineID int64) (*models.UserRating, error) {
	var rating models.UserRating
	err := r.db.WithContext(ctx).Where("wine_id = ?", wineID).Order("id").First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) GetFavorites(ctx context.Context) ([]models.UserRating, error) {
	var list []models.UserRating
	if err := r.db.WithContext(ctx).Where("is_favorite = ?", true).Order("id").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	return list, nil
}

// GetRecent returns up to limit ratings, most recently rated first.
func (r *ratingRepository) GetRecent(ctx context.Context, limit int) ([]models.UserRating, error) {
	var list []models.UserRating
	if err := r.db.WithContext(ctx).Order("rated_date DESC").Limit(limit).Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list recent ratings: %w", err)
	}
	return list, nil
}

func (r *ratingRepository) GetByMinScore(ctx context.Context, minScore int) ([]models.UserRating, error) {
	var list []models.UserRating
	if err := r.db.WithContext(ctx).Where("rating >= ?", minScore).Order("id").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list ratings by score: %w", err)
	}
	return list, nil
}

func (r *ratingRepository) Create(ctx context.Context, rating *models.UserRating) error {
	if rating.UserID == "" {
		rating.UserID = models.LocalUserID
	}
	rating.RatedDate = time.Now().UTC()
	if err := r.db.WithContext(ctx).Create(rating).Error; err != nil {
		return fmt.Errorf("create rating: %w", err)
	}
	return nil
}

func (r *ratingRepository) Update(ctx context.Context, id int64, patch RatingPatch) (*models.UserRating, error) {
	var rating models.UserRating
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rating, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		patch.ApplyTo(&rating)
		rating.RatedDate = time.Now().UTC()
		return tx.Save(&rating).Error
	})
	if err != nil {
		return nil, err
	}
	return &rating, nil
}

func (r *ratingRepository) Delete(ctx context.Context, id int64) (*models.UserRating, error) {
	var rating models.UserRating
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rating, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return tx.Delete(&models.UserRating{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &rating, nil
}
