package dto

import (
	"time"

	"winecellar/internal/httpapi/models"
)

// SubmitRatingDTO for creating or updating the user's rating of a wine.
// Rating 0 is valid (favorite-only entry), so no required binding on it.
type SubmitRatingDTO struct {
	Rating     int    `json:"rating" binding:"min=0,max=5"`
	Notes      string `json:"notes,omitempty"`
	IsFavorite bool   `json:"is_favorite"`
}

// RatingResponse for returning rating information
type RatingResponse struct {
	ID         int64     `json:"id"`
	WineID     int64     `json:"wine_id"`
	Rating     int       `json:"rating"`
	Notes      string    `json:"notes,omitempty"`
	IsFavorite bool      `json:"is_favorite"`
	RatedDate  time.Time `json:"rated_date"`
}

func FromRatingModel(r *models.UserRating) *RatingResponse {
	if r == nil {
		return nil
	}
	return &RatingResponse{
		ID:         r.ID,
		WineID:     r.WineID,
		Rating:     r.Rating,
		Notes:      r.Notes,
		IsFavorite: r.IsFavorite,
		RatedDate:  r.RatedDate,
	}
}

func FromRatingModels(ratings []models.UserRating) []RatingResponse {
	out := make([]RatingResponse, 0, len(ratings))
	for i := range ratings {
		out = append(out, *FromRatingModel(&ratings[i]))
	}
	return out
}
