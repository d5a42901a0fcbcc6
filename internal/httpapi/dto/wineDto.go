package dto

import (
	"time"

	"winecellar/internal/httpapi/models"
	"winecellar/internal/httpapi/repository"
	"winecellar/internal/httpapi/service"
)

// CreateWineDTO used for POST /api/wines. Carries the optional initial
// rating the add-wine form offers.
type CreateWineDTO struct {
	Name     string `json:"name" binding:"required"`
	Vineyard string `json:"vineyard" binding:"required"`
	Year     int    `json:"year" binding:"required"`
	Type     string `json:"type" binding:"required"`
	Region   string `json:"region,omitempty"`
	Barcode  string `json:"barcode,omitempty"`
	ImageURL string `json:"image_url,omitempty"`

	Rating     int    `json:"rating,omitempty"`
	Notes      string `json:"notes,omitempty"`
	IsFavorite bool   `json:"is_favorite,omitempty"`
}

func (d CreateWineDTO) ToInput() service.CreateWineInput {
	return service.CreateWineInput{
		Name:       d.Name,
		Vineyard:   d.Vineyard,
		Year:       d.Year,
		Type:       models.WineType(d.Type),
		Region:     d.Region,
		Barcode:    d.Barcode,
		ImageURL:   d.ImageURL,
		Rating:     d.Rating,
		Notes:      d.Notes,
		IsFavorite: d.IsFavorite,
	}
}

// UpdateWineDTO used for PUT /api/wines/:id (partial updates allowed)
type UpdateWineDTO struct {
	Name     *string `json:"name,omitempty"`
	Vineyard *string `json:"vineyard,omitempty"`
	Year     *int    `json:"year,omitempty"`
	Type     *string `json:"type,omitempty"`
	Region   *string `json:"region,omitempty"`
	Barcode  *string `json:"barcode,omitempty"`
	ImageURL *string `json:"image_url,omitempty"`
}

func (d UpdateWineDTO) ToPatch() repository.WinePatch {
	patch := repository.WinePatch{
		Name:     d.Name,
		Vineyard: d.Vineyard,
		Year:     d.Year,
		Region:   d.Region,
		Barcode:  d.Barcode,
		ImageURL: d.ImageURL,
	}
	if d.Type != nil {
		t := models.WineType(*d.Type)
		patch.Type = &t
	}
	return patch
}

// WineResponse DTO for responses
type WineResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Vineyard      string    `json:"vineyard"`
	Year          int       `json:"year"`
	Type          string    `json:"type"`
	Region        string    `json:"region,omitempty"`
	Barcode       string    `json:"barcode,omitempty"`
	ImageURL      string    `json:"image_url,omitempty"`
	AverageRating float64   `json:"average_rating"`
	ReviewCount   int       `json:"review_count"`
	AddedBy       string    `json:"added_by,omitempty"`
	AddedDate     time.Time `json:"added_date"`
}

func FromWineModel(w models.Wine) WineResponse {
	return WineResponse{
		ID:            w.ID,
		Name:          w.Name,
		Vineyard:      w.Vineyard,
		Year:          w.Year,
		Type:          string(w.Type),
		Region:        w.Region,
		Barcode:       w.Barcode,
		ImageURL:      w.ImageURL,
		AverageRating: w.AverageRating,
		ReviewCount:   w.ReviewCount,
		AddedBy:       w.AddedBy,
		AddedDate:     w.AddedDate,
	}
}

func FromWineModels(wines []models.Wine) []WineResponse {
	out := make([]WineResponse, 0, len(wines))
	for _, w := range wines {
		out = append(out, FromWineModel(w))
	}
	return out
}
