package dto

import "winecellar/internal/httpapi/models"

type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

type UserResponse struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	DisplayName   string `json:"display_name,omitempty"`
	TotalRatings  int    `json:"total_ratings"`
	FavoriteCount int    `json:"favorite_count"`
}

func FromUserModel(u *models.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Username:      u.Username,
		Email:         u.Email,
		DisplayName:   u.DisplayName,
		TotalRatings:  u.TotalRatings,
		FavoriteCount: u.FavoriteCount,
	}
}
