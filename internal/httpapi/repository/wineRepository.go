package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"winecellar/internal/httpapi/models"

	"gorm.io/gorm"
)

// WinePatch is a shallow-merge update: nil fields are left untouched.
type WinePatch struct {
	Name          *string
	Vineyard      *string
	Year          *int
	Type          *models.WineType
	Region        *string
	Barcode       *string
	ImageURL      *string
	AverageRating *float64
	ReviewCount   *int
}

// ApplyTo merges the patch into w.
func (p WinePatch) ApplyTo(w *models.Wine) {
	if p.Name != nil {
		w.Name = *p.Name
	}
	if p.Vineyard != nil {
		w.Vineyard = *p.Vineyard
	}
	if p.Year != nil {
		w.Year = *p.Year
	}
	if p.Type != nil {
		w.Type = *p.Type
	}
	if p.Region != nil {
		w.Region = *p.Region
	}
	if p.Barcode != nil {
		w.Barcode = *p.Barcode
	}
	if p.ImageURL != nil {
		w.ImageURL = *p.ImageURL
	}
	if p.AverageRating != nil {
		w.AverageRating = *p.AverageRating
	}
	if p.ReviewCount != nil {
		w.ReviewCount = *p.ReviewCount
	}
}

type WineRepository interface {
	GetAll(ctx context.Context) ([]models.Wine, error)
	GetByID(ctx context.Context, id int64) (*models.Wine, error)
	GetByBarcode(ctx context.Context, code string) (*models.Wine, error)
	GetByType(ctx context.Context, wineType models.WineType) ([]models.Wine, error)
	Create(ctx context.Context, wine *models.Wine) error
	Update(ctx context.Context, id int64, patch WinePatch) (*models.Wine, error)
	Delete(ctx context.Context, id int64) (*models.Wine, error)
	Search(ctx context.Context, query string) ([]models.Wine, error)
}

type wineRepository struct {
	db *gorm.DB
}

func NewWineRepository(db *gorm.DB) WineRepository {
	return &wineRepository{db: db}
}

func (r *wineRepository) GetAll(ctx context.Context) ([]models.Wine, error) {
	var list []models.Wine
	if err := r.db.WithContext(ctx).Order("id").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list wines: %w", err)
	}
	return list, nil
}

func (r *wineRepository) GetByID(ctx context.Context, id int64) (*models.Wine, error) {
	var w models.Wine
	if err := r.db.WithContext(ctx).First(&w, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}

// GetByBarcode returns the first wine carrying exactly the given barcode.
// No normalization is applied to the input.
func (r *wineRepository) GetByBarcode(ctx context.Context, code string) (*models.Wine, error) {
	var w models.Wine
	err := r.db.WithContext(ctx).Where("barcode = ?", code).Order("id").First(&w).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &w, nil
}

func (r *wineRepository) GetByType(ctx context.Context, wineType models.WineType) ([]models.Wine, error) {
	var list []models.Wine
	if err := r.db.WithContext(ctx).Where("type = ?", wineType).Order("id").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list wines by type: %w", err)
	}
	return list, nil
}

func (r *wineRepository) Create(ctx context.Context, wine *models.Wine) error {
	// Community aggregates always start at zero for a freshly catalogued bottle.
	wine.AverageRating = 0
	wine.ReviewCount = 0
	if err := r.db.WithContext(ctx).Create(wine).Error; err != nil {
		return fmt.Errorf("create wine: %w", err)
	}
	return nil
}

func (r *wineRepository) Update(ctx context.Context, id int64, patch WinePatch) (*models.Wine, error) {
	var w models.Wine
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&w, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		patch.ApplyTo(&w)
		return tx.Save(&w).Error
	})
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// Delete removes the wine and returns the removed record.
func (r *wineRepository) Delete(ctx context.Context, id int64) (*models.Wine, error) {
	var w models.Wine
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&w, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		return tx.Delete(&models.Wine{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// Search performs a case-insensitive substring match over name, vineyard,
// region and type. Blank queries return every wine, matching the in-memory
// backend.
func (r *wineRepository) Search(ctx context.Context, query string) ([]models.Wine, error) {
	var list []models.Wine
	q := strings.TrimSpace(query)
	db := r.db.WithContext(ctx)
	if q != "" {
		p := "%" + q + "%"
		db = db.Where(
			"name ILIKE ? OR vineyard ILIKE ? OR COALESCE(region,'') ILIKE ? OR type ILIKE ?",
			p, p, p, p,
		)
	}
	if err := db.Order("id").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("search wines: %w", err)
	}
	return list, nil
}
