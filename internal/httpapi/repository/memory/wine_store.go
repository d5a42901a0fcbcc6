package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"winecellar/internal/httpapi/models"
	"winecellar/internal/httpapi/repository"
)

// WineStore is the in-memory WineRepository. Ids are assigned as
// max(existing)+1, so a deleted id is never reused.
type WineStore struct {
	mu    sync.Mutex
	wines []models.Wine
	delay Delay
}

func NewWineStore(wines []models.Wine, delay Delay) *WineStore {
	if delay == nil {
		delay = NoDelay
	}
	return &WineStore{wines: append([]models.Wine(nil), wines...), delay: delay}
}

var _ repository.WineRepository = (*WineStore)(nil)

func (s *WineStore) GetAll(ctx context.Context) ([]models.Wine, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Wine(nil), s.wines...), nil
}

func (s *WineStore) GetByID(ctx context.Context, id int64) (*models.Wine, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.wines {
		if w.ID == id {
			copied := w
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

// GetByBarcode matches the stored barcode exactly; no trimming, no
// normalization. First match in insertion order wins.
func (s *WineStore) GetByBarcode(ctx context.Context, code string) (*models.Wine, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.wines {
		if w.Barcode != "" && w.Barcode == code {
			copied := w
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *WineStore) GetByType(ctx context.Context, wineType models.WineType) ([]models.Wine, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Wine
	for _, w := range s.wines {
		if w.Type == wineType {
			out = append(out, w)
		}
	}
	return out, nil
}

func (s *WineStore) Create(ctx context.Context, wine *models.Wine) error {
	if err := s.delay(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var maxID int64
	for _, w := range s.wines {
		if w.ID > maxID {
			maxID = w.ID
		}
	}
	wine.ID = maxID + 1
	wine.AverageRating = 0
	wine.ReviewCount = 0
	if wine.AddedDate.IsZero() {
		wine.AddedDate = time.Now().UTC()
	}
	s.wines = append(s.wines, *wine)
	return nil
}

func (s *WineStore) Update(ctx context.Context, id int64, patch repository.WinePatch) (*models.Wine, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.wines {
		if s.wines[i].ID == id {
			patch.ApplyTo(&s.wines[i])
			copied := s.wines[i]
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *WineStore) Delete(ctx context.Context, id int64) (*models.Wine, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.wines {
		if s.wines[i].ID == id {
			removed := s.wines[i]
			s.wines = append(s.wines[:i], s.wines[i+1:]...)
			return &removed, nil
		}
	}
	return nil, repository.ErrNotFound
}

// Search is a case-insensitive substring match over name, vineyard,
// region and type.
func (s *WineStore) Search(ctx context.Context, query string) ([]models.Wine, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return append([]models.Wine(nil), s.wines...), nil
	}
	var out []models.Wine
	for _, w := range s.wines {
		if strings.Contains(strings.ToLower(w.Name), q) ||
			strings.Contains(strings.ToLower(w.Vineyard), q) ||
			strings.Contains(strings.ToLower(w.Region), q) ||
			strings.Contains(strings.ToLower(string(w.Type)), q) {
			out = append(out, w)
		}
	}
	return out, nil
}
