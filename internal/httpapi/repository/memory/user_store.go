package memory

import (
	"context"
	"sync"

	"winecellar/internal/httpapi/models"
	"winecellar/internal/httpapi/repository"
)

// UserStore is the in-memory UserRepository for the single local account.
type UserStore struct {
	mu    sync.Mutex
	users []models.User
	delay Delay
}

func NewUserStore(users []models.User, delay Delay) *UserStore {
	if delay == nil {
		delay = NoDelay
	}
	return &UserStore{users: append([]models.User(nil), users...), delay: delay}
}

var _ repository.UserRepository = (*UserStore)(nil)

func (s *UserStore) GetCurrent(ctx context.Context) (*models.User, error) {
	return s.GetByID(ctx, models.LocalUserID)
}

func (s *UserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ID == id {
			copied := u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *UserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			copied := u
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *UserStore) UpdateProfile(ctx context.Context, id string, patch repository.ProfilePatch) (*models.User, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			patch.ApplyTo(&s.users[i])
			copied := s.users[i]
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *UserStore) UpdateStats(ctx context.Context, id string, totalRatings, favoriteCount int) (*models.User, error) {
	if err := s.delay(ctx); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].TotalRatings = totalRatings
			s.users[i].FavoriteCount = favoriteCount
			copied := s.users[i]
			return &copied, nil
		}
	}
	return nil, repository.ErrNotFound
}
