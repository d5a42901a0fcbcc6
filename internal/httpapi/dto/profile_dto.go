package dto

import (
	"winecellar/internal/httpapi/repository"
	"winecellar/internal/httpapi/service"
)

// UpdateProfileDTO for PUT /api/profile (partial updates allowed)
type UpdateProfileDTO struct {
	Username    *string `json:"username,omitempty"`
	Email       *string `json:"email,omitempty"`
	DisplayName *string `json:"display_name,omitempty"`
}

func (d UpdateProfileDTO) ToPatch() repository.ProfilePatch {
	return repository.ProfilePatch{
		Username:    d.Username,
		Email:       d.Email,
		DisplayName: d.DisplayName,
	}
}

type ProfileStatsResponse struct {
	TotalRatings  int              `json:"total_ratings"`
	FavoriteCount int              `json:"favorite_count"`
	AverageRating float64          `json:"average_rating"`
	Recent        []RatingResponse `json:"recent"`
}

type ProfileResponse struct {
	User  UserResponse         `json:"user"`
	Stats ProfileStatsResponse `json:"stats"`
}

func FromProfileStats(s *service.ProfileStats) ProfileStatsResponse {
	return ProfileStatsResponse{
		TotalRatings:  s.TotalRatings,
		FavoriteCount: s.FavoriteCount,
		AverageRating: s.AverageRating,
		Recent:        FromRatingModels(s.Recent),
	}
}

func FromProfile(p *service.Profile) *ProfileResponse {
	return &ProfileResponse{
		User:  FromUserModel(&p.User),
		Stats: FromProfileStats(&p.Stats),
	}
}
