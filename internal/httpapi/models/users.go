package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LocalUserID is the id the mock seed data assigns to the single local
// account. Every rating defaults to this user unless a caller says otherwise.
const LocalUserID = "current-user"

type User struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"uniqueIndex;not null" json:"username"`
	Email       string    `gorm:"uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"column:password_hash;not null" json:"-"` // Not show in JSON
	DisplayName string    `json:"display_name,omitempty"`
	JoinedDate  time.Time `json:"joined_date"`

	// Denormalized profile counters, refreshed by the profile service.
	TotalRatings  int `json:"total_ratings"`
	FavoriteCount int `json:"favorite_count"`
}

// BeforeCreate hook to set UUID before creating a User
func (user *User) BeforeCreate(tx *gorm.DB) (err error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	return
}

func (User) TableName() string {
	return "users"
}
