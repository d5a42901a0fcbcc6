package models

import "time"

// UserRating is one user's personal score, tasting notes and favorite flag
// for a wine. Rating 0 means "not yet scored" (favorite-only entries).
// A wine counts as part of the collection iff at least one UserRating
// references it; membership is derived, never stored.
type UserRating struct {
	ID         int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	WineID     int64     `json:"wine_id" gorm:"not null;index"`
	UserID     string    `json:"user_id" gorm:"not null;index"`
	Rating     int       `json:"rating" gorm:"not null;check:rating >= 0 AND rating <= 5"`
	Notes      string    `json:"notes,omitempty"`
	IsFavorite bool      `json:"is_favorite"`
	RatedDate  time.Time `json:"rated_date"`

	// Association
	Wine *Wine `json:"wine,omitempty" gorm:"foreignKey:WineID;constraint:OnDelete:CASCADE;"`
}

func (UserRating) TableName() string {
	return "user_ratings"
}
