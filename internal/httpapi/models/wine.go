package models

import "time"

// WineType enumerates the supported bottle styles.
type WineType string

const (
	TypeRed       WineType = "red"
	TypeWhite     WineType = "white"
	TypeRose      WineType = "rose"
	TypeSparkling WineType = "sparkling"
	TypeDessert   WineType = "dessert"
	TypeFortified WineType = "fortified"
)

// WineTypes lists every valid WineType, in display order.
var WineTypes = []WineType{TypeRed, TypeWhite, TypeRose, TypeSparkling, TypeDessert, TypeFortified}

// Valid reports whether t is one of the known wine types.
func (t WineType) Valid() bool {
	for _, known := range WineTypes {
		if t == known {
			return true
		}
	}
	return false
}

type Wine struct {
	ID       int64    `json:"id" gorm:"primaryKey;autoIncrement"`
	Name     string   `json:"name" gorm:"not null"`
	Vineyard string   `json:"vineyard" gorm:"not null"`
	Year     int      `json:"year" gorm:"not null"`
	Type     WineType `json:"type" gorm:"not null;size:20;index"`
	Region   string   `json:"region,omitempty"`
	Barcode  string   `json:"barcode,omitempty" gorm:"index"`
	ImageURL string   `json:"image_url,omitempty"`

	// Community aggregate, supplied by the data source. Never recomputed here.
	AverageRating float64 `json:"average_rating" gorm:"type:decimal(3,2)"`
	ReviewCount   int     `json:"review_count"`

	AddedBy   string    `json:"added_by,omitempty"`
	AddedDate time.Time `json:"added_date" gorm:"autoCreateTime"`
}

func (Wine) TableName() string {
	return "wines"
}
