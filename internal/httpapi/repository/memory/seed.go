package memory

import (
	"embed"
	"encoding/json"
	"fmt"
	"time"

	"winecellar/internal/httpapi/models"
)

//go:embed seed/*.json
var seedFS embed.FS

// SeedWines returns a fresh copy of the embedded wine seed data. Every
// process restart starts from this exact set; nothing persists.
func SeedWines() ([]models.Wine, error) {
	raw, err := seedFS.ReadFile("seed/wines.json")
	if err != nil {
		return nil, fmt.Errorf("read wine seed: %w", err)
	}
	var wines []models.Wine
	if err := json.Unmarshal(raw, &wines); err != nil {
		return nil, fmt.Errorf("parse wine seed: %w", err)
	}
	return wines, nil
}

// SeedRatings returns a fresh copy of the embedded rating seed data.
func SeedRatings() ([]models.UserRating, error) {
	raw, err := seedFS.ReadFile("seed/userRatings.json")
	if err != nil {
		return nil, fmt.Errorf("read rating seed: %w", err)
	}
	var ratings []models.UserRating
	if err := json.Unmarshal(raw, &ratings); err != nil {
		return nil, fmt.Errorf("parse rating seed: %w", err)
	}
	return ratings, nil
}

// seedUser mirrors models.User but exposes the password hash, which the
// model deliberately hides from JSON.
type seedUser struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"password_hash"`
	DisplayName   string    `json:"display_name"`
	JoinedDate    time.Time `json:"joined_date"`
	TotalRatings  int       `json:"total_ratings"`
	FavoriteCount int       `json:"favorite_count"`
}

// SeedUsers returns a fresh copy of the embedded user seed data.
func SeedUsers() ([]models.User, error) {
	raw, err := seedFS.ReadFile("seed/users.json")
	if err != nil {
		return nil, fmt.Errorf("read user seed: %w", err)
	}
	var seeds []seedUser
	if err := json.Unmarshal(raw, &seeds); err != nil {
		return nil, fmt.Errorf("parse user seed: %w", err)
	}
	users := make([]models.User, 0, len(seeds))
	for _, s := range seeds {
		users = append(users, models.User{
			ID:            s.ID,
			Username:      s.Username,
			Email:         s.Email,
			Password:      s.PasswordHash,
			DisplayName:   s.DisplayName,
			JoinedDate:    s.JoinedDate,
			TotalRatings:  s.TotalRatings,
			FavoriteCount: s.FavoriteCount,
		})
	}
	return users, nil
}
