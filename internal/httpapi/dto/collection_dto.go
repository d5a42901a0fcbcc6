package dto

import "winecellar/internal/httpapi/service"

// CollectionQueryDTO binds the collection view query string. Missing
// facets default to the cleared state.
type CollectionQueryDTO struct {
	Query         string `form:"q"`
	Type          string `form:"type"`
	Rating        string `form:"rating"`
	FavoritesOnly bool   `form:"favorites"`
}

func (d CollectionQueryDTO) ToFilters() service.Filters {
	filters := service.DefaultFilters()
	filters.Query = d.Query
	if d.Type != "" {
		filters.Type = d.Type
	}
	if d.Rating != "" {
		filters.Rating = d.Rating
	}
	filters.FavoritesOnly = d.FavoritesOnly
	return filters
}

// CollectionItemResponse pairs a wine with the user's rating.
type CollectionItemResponse struct {
	Wine   WineResponse    `json:"wine"`
	Rating *RatingResponse `json:"rating,omitempty"`
}

type CollectionResponse struct {
	Items []CollectionItemResponse `json:"items"`
	Stats service.Stats            `json:"stats"`
}

func FromCollectionView(view *service.CollectionView) *CollectionResponse {
	items := make([]CollectionItemResponse, 0, len(view.Items))
	for _, item := range view.Items {
		items = append(items, CollectionItemResponse{
			Wine:   FromWineModel(item.Wine),
			Rating: FromRatingModel(item.Rating),
		})
	}
	return &CollectionResponse{Items: items, Stats: view.Stats}
}
