package service

import (
	"context"
	"strconv"
	"strings"

	"winecellar/internal/httpapi/models"
	"winecellar/internal/httpapi/repository"

	"golang.org/x/sync/errgroup"
)

// FacetAll is the wildcard value for the type and rating facets.
const FacetAll = "all"

// Filters are the collection view controls: free-text search plus three
// facets combined by logical AND.
type Filters struct {
	Query         string
	Type          string // "all" or one of the wine types
	Rating        string // "all" or a minimum score "1".."5"
	FavoritesOnly bool
}

// DefaultFilters returns the cleared state.
func DefaultFilters() Filters {
	return Filters{Type: FacetAll, Rating: FacetAll}
}

// Clear resets the search text and all three facets in one atomic update.
// The "Clear" affordance always resets everything together, never one
// control at a time.
func (f *Filters) Clear() {
	*f = DefaultFilters()
}

// Stats summarize the whole collection, not the filtered view.
type Stats struct {
	TotalWines    int     `json:"total_wines"`
	Favorites     int     `json:"favorites"`
	AverageRating float64 `json:"average_rating"`
}

// ratingFor picks the first rating referencing the wine, in document
// order - the same rule GetByWineID uses, so duplicate ratings resolve
// consistently everywhere.
func ratingFor(ratings []models.UserRating, wineID int64) *models.UserRating {
	for i := range ratings {
		if ratings[i].WineID == wineID {
			return &ratings[i]
		}
	}
	return nil
}

// FilterCollection is the pure core of the collection view. Membership
// comes first: only wines with at least one rating are in the collection
// at all. The remaining stages are independent AND predicates, so their
// order only narrows work, never changes the result. Stats are computed
// from the pre-filter membership set.
func FilterCollection(wines []models.Wine, ratings []models.UserRating, filters Filters) ([]models.Wine, Stats) {
	// Stage 1: derived membership.
	member := make([]models.Wine, 0, len(wines))
	for _, w := range wines {
		if ratingFor(ratings, w.ID) != nil {
			member = append(member, w)
		}
	}

	stats := Stats{TotalWines: len(member)}
	for _, r := range ratings {
		if r.IsFavorite {
			stats.Favorites++
		}
	}
	if len(ratings) > 0 {
		sum := 0
		for _, r := range ratings {
			sum += r.Rating
		}
		stats.AverageRating = float64(sum) / float64(len(ratings))
	}

	filtered := member

	// Stage 2: free-text search over name, vineyard and region.
	if q := strings.ToLower(strings.TrimSpace(filters.Query)); q != "" {
		kept := filtered[:0:0]
		for _, w := range filtered {
			if strings.Contains(strings.ToLower(w.Name), q) ||
				strings.Contains(strings.ToLower(w.Vineyard), q) ||
				strings.Contains(strings.ToLower(w.Region), q) {
				kept = append(kept, w)
			}
		}
		filtered = kept
	}

	// Stage 3: type facet.
	if filters.Type != "" && filters.Type != FacetAll {
		kept := filtered[:0:0]
		for _, w := range filtered {
			if string(w.Type) == filters.Type {
				kept = append(kept, w)
			}
		}
		filtered = kept
	}

	// Stage 4: minimum-score facet. A wine with no rating record never
	// passes, independent of the membership guarantee.
	if filters.Rating != "" && filters.Rating != FacetAll {
		minScore, err := strconv.Atoi(filters.Rating)
		if err == nil {
			kept := filtered[:0:0]
			for _, w := range filtered {
				if r := ratingFor(ratings, w.ID); r != nil && r.Rating >= minScore {
					kept = append(kept, w)
				}
			}
			filtered = kept
		}
	}

	// Stage 5: favorites only.
	if filters.FavoritesOnly {
		kept := filtered[:0:0]
		for _, w := range filtered {
			if r := ratingFor(ratings, w.ID); r != nil && r.IsFavorite {
				kept = append(kept, w)
			}
		}
		filtered = kept
	}

	return filtered, stats
}

// CollectionItem pairs a wine with the user's rating for display.
type CollectionItem struct {
	Wine   models.Wine        `json:"wine"`
	Rating *models.UserRating `json:"rating,omitempty"`
}

type CollectionView struct {
	Items []CollectionItem `json:"items"`
	Stats Stats            `json:"stats"`
}

type CollectionService interface {
	View(ctx context.Context, filters Filters) (*CollectionView, error)
}

type collectionService struct {
	wineRepo   repository.WineRepository
	ratingRepo repository.RatingRepository
}

func NewCollectionService(wineRepo repository.WineRepository, ratingRepo repository.RatingRepository) CollectionService {
	return &collectionService{wineRepo: wineRepo, ratingRepo: ratingRepo}
}

// View loads wines and ratings as a concurrent pair - both must resolve
// before membership can be derived - then applies the filter pipeline.
func (s *collectionService) View(ctx context.Context, filters Filters) (*CollectionView, error) {
	var (
		wines   []models.Wine
		ratings []models.UserRating
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		wines, err = s.wineRepo.GetAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		ratings, err = s.ratingRepo.GetAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	filtered, stats := FilterCollection(wines, ratings, filters)
	items := make([]CollectionItem, 0, len(filtered))
	for _, w := range filtered {
		items = append(items, CollectionItem{Wine: w, Rating: ratingFor(ratings, w.ID)})
	}
	return &CollectionView{Items: items, Stats: stats}, nil
}
