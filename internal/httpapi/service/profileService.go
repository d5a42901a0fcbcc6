package service

import (
	"context"

	"winecellar/internal/httpapi/models"
	"winecellar/internal/httpapi/repository"
)

// ProfileStats are recomputed from the rating set on every read; the
// denormalized counters on the user record are refreshed as a side
// effect so stale values never survive a profile view.
type ProfileStats struct {
	TotalRatings  int                 `json:"total_ratings"`
	FavoriteCount int                 `json:"favorite_count"`
	AverageRating float64             `json:"average_rating"`
	Recent        []models.UserRating `json:"recent"`
}

type Profile struct {
	User  models.User  `json:"user"`
	Stats ProfileStats `json:"stats"`
}

type ProfileService interface {
	Get(ctx context.Context) (*Profile, error)
	Update(ctx context.Context, patch repository.ProfilePatch) (*models.User, error)
	Stats(ctx context.Context) (*ProfileStats, error)
}

const recentRatingsLimit = 5

type profileService struct {
	userRepo   repository.UserRepository
	ratingRepo repository.RatingRepository
}

func NewProfileService(userRepo repository.UserRepository, ratingRepo repository.RatingRepository) ProfileService {
	return &profileService{userRepo: userRepo, ratingRepo: ratingRepo}
}

func (s *profileService) Get(ctx context.Context) (*Profile, error) {
	stats, err := s.Stats(ctx)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.UpdateStats(ctx, models.LocalUserID, stats.TotalRatings, stats.FavoriteCount)
	if err != nil {
		return nil, err
	}
	return &Profile{User: *user, Stats: *stats}, nil
}

func (s *profileService) Update(ctx context.Context, patch repository.ProfilePatch) (*models.User, error) {
	return s.userRepo.UpdateProfile(ctx, models.LocalUserID, patch)
}

func (s *profileService) Stats(ctx context.Context) (*ProfileStats, error) {
	ratings, err := s.ratingRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	stats := &ProfileStats{TotalRatings: len(ratings)}
	sum := 0
	for _, r := range ratings {
		if r.IsFavorite {
			stats.FavoriteCount++
		}
		sum += r.Rating
	}
	if len(ratings) > 0 {
		stats.AverageRating = float64(sum) / float64(len(ratings))
	}

	recent, err := s.ratingRepo.GetRecent(ctx, recentRatingsLimit)
	if err != nil {
		return nil, err
	}
	stats.Recent = recent
	return stats, nil
}
