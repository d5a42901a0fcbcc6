package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"winecellar/internal/httpapi/models"
	"winecellar/internal/httpapi/repository"
)

// RatingStore is the in-memory RatingRepository. It owns the rating list
// exclusively; workflows hold transient copies and write back through
// Create/Update.
type RatingStore struct {
	mu      sync.Mutex
	ratings []models.UserRating
	delay   Delay
	now     func() time.Time
}

func NewRatingStore(ratings []models.UserRating, delay Delay) *RatingStore {
	if delay == nil {
		delay = NoDelay
	}
	return &RatingStore{
		ratings: append([]models.UserRating(nil), ratings...),
		delay:   delay,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

var _ repository.RatingRepository = (*RatingStore)(nil)

func (s *RatingStore) GetAll(ctx context.Context) ([]models.UserRating, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.UserRating(nil), s.ratings...), nil
}

func (s *RatingStore) GetByID(ctx context.Context, id int64) (*models.UserRating, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.ratings {
		if r.ID == id {
			copied := r
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

// GetByWineID returns the first rating referencing the wine, in insertion
// order. Nothing forbids duplicate ratings per wine; later ones are
// simply never picked up here.
func (s *RatingStore) GetByWineID(ctx context.Context, wineID int64) (*models.UserRating, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.ratings {
		if r.WineID == wineID {
			copied := r
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *RatingStore) GetFavorites(ctx context.Context) ([]models.UserRating, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.UserRating
	for _, r := range s.ratings {
		if r.IsFavorite {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *RatingStore) GetRecent(ctx context.Context, limit int) ([]models.UserRating, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]models.UserRating(nil), s.ratings...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RatedDate.After(out[j].RatedDate)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *RatingStore) GetByMinScore(ctx context.Context, minScore int) ([]models.UserRating, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.UserRating
	for _, r := range s.ratings {
		if r.Rating >= minScore {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *RatingStore) Create(ctx context.Context, rating *models.UserRating) error {
	if err := s.delay(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var maxID int64
	for _, r := range s.ratings {
		if r.ID > maxID {
			maxID = r.ID
		}
	}
	rating.ID = maxID + 1
	if rating.UserID == "" {
		rating.UserID = models.LocalUserID
	}
	rating.RatedDate = s.now()
	s.ratings = append(s.ratings, *rating)
	return nil
}

// Update shallow-merges the patch and restamps RatedDate.
func (s *RatingStore) Update(ctx context.Context, id int64, patch repository.RatingPatch) (*models.UserRating, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.ratings {
		if s.ratings[i].ID == id {
			patch.ApplyTo(&s.ratings[i])
			s.ratings[i].RatedDate = s.now()
			copied := s.ratings[i]
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *RatingStore) Delete(ctx context.Context, id int64) (*models.UserRating, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.ratings {
		if s.ratings[i].ID == id {
			removed := s.ratings[i]
			s.ratings = append(s.ratings[:i], s.ratings[i+1:]...)
			return &removed, nil
		}
	}
	return nil, repository.ErrNotFound
}
