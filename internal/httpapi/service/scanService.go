package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"
	"time"

	"winecellar/internal/cache"
	"winecellar/internal/capture"
	"winecellar/internal/httpapi/models"
	"winecellar/internal/httpapi/repository"
)

// ScanState names a position in the scan workflow:
// Idle -> Scanning -> (Found | NotFound) -> [RatingEditor] -> Idle.
type ScanState string

const (
	StateIdle         ScanState = "idle"
	StateScanning     ScanState = "scanning"
	StateFound        ScanState = "found"
	StateNotFound     ScanState = "not_found"
	StateRatingEditor ScanState = "rating_editor"
)

// ScanResult is what one workflow step hands back to the UI.
type ScanResult struct {
	State   ScanState          `json:"state"`
	Barcode string             `json:"barcode,omitempty"`
	Wine    *models.Wine       `json:"wine,omitempty"`
	Rating  *models.UserRating `json:"rating,omitempty"`

	// RedirectTo is set on NotFound: the add-wine form with the scanned
	// barcode pre-filled. No write has happened at this point.
	RedirectTo string `json:"redirect_to,omitempty"`
}

type ScanService interface {
	// Scan runs a full capture: acquire the camera, wait for a barcode,
	// release the camera, then look the barcode up.
	Scan(ctx context.Context, userID string) (*ScanResult, error)
	// Lookup resolves an already-captured barcode.
	Lookup(ctx context.Context, userID, barcode string) (*ScanResult, error)
	// SubmitRating is the RatingEditor transition from a Found result.
	SubmitRating(ctx context.Context, wineID int64, rating int, notes string, isFavorite bool) (*ScanResult, error)
	// ToggleFavorite is the side transition available from the details view.
	ToggleFavorite(ctx context.Context, wineID int64) (*ScanResult, error)
	History(ctx context.Context, userID string) ([]cache.ScanEntry, error)
	State() ScanState
}

type scanService struct {
	device     *capture.Device
	wineRepo   repository.WineRepository
	ratingSvc  RatingService
	scanCache  *cache.ScanCache
	logger     *slog.Logger
	mu         sync.Mutex
	state      ScanState
}

func NewScanService(
	device *capture.Device,
	wineRepo repository.WineRepository,
	ratingSvc RatingService,
	scanCache *cache.ScanCache,
	logger *slog.Logger,
) ScanService {
	if logger == nil {
		logger = slog.Default()
	}
	return &scanService{
		device:    device,
		wineRepo:  wineRepo,
		ratingSvc: ratingSvc,
		scanCache: scanCache,
		logger:    logger,
		state:     StateIdle,
	}
}

func (s *scanService) State() ScanState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *scanService) setState(state ScanState) {
	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
}

// Scan acquires a capture session and waits for a simulated detection.
// The session is released on every exit path - success, cancellation or
// failure - before the lookup runs.
func (s *scanService) Scan(ctx context.Context, userID string) (*ScanResult, error) {
	session, err := s.device.Open()
	if err != nil {
		return nil, err
	}
	s.setState(StateScanning)

	barcode, err := session.Detect(ctx)
	session.Close()
	if err != nil {
		s.setState(StateIdle)
		return nil, err
	}
	return s.Lookup(ctx, userID, barcode)
}

// Lookup branches on the barcode: blank input never reaches the
// repository; a hit loads the wine plus any existing rating; a miss
// produces a redirect to the add-wine form with the literal barcode
// pre-filled. Any repository failure resets the workflow to Idle.
func (s *scanService) Lookup(ctx context.Context, userID, barcode string) (*ScanResult, error) {
	if strings.TrimSpace(barcode) == "" {
		s.setState(StateIdle)
		return nil, ErrBlankBarcode
	}
	s.setState(StateScanning)

	wine, err := s.lookupWine(ctx, barcode)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		s.setState(StateIdle)
		return nil, fmt.Errorf("barcode lookup: %w", err)
	}

	if wine == nil {
		s.recordScan(ctx, userID, cache.ScanEntry{Barcode: barcode, Found: false, ScannedAt: time.Now().UTC()})
		s.setState(StateNotFound)
		return &ScanResult{
			State:      StateNotFound,
			Barcode:    barcode,
			RedirectTo: "/add-wine?barcode=" + url.QueryEscape(barcode),
		}, nil
	}

	rating, err := s.ratingSvc.GetForWine(ctx, wine.ID)
	if err != nil {
		s.setState(StateIdle)
		return nil, fmt.Errorf("load rating: %w", err)
	}

	s.recordScan(ctx, userID, cache.ScanEntry{Barcode: barcode, WineID: wine.ID, Found: true, ScannedAt: time.Now().UTC()})
	s.setState(StateFound)
	return &ScanResult{State: StateFound, Barcode: barcode, Wine: wine, Rating: rating}, nil
}

// lookupWine consults the barcode cache before the repository. A stale
// cache entry (wine since deleted) falls through to a fresh lookup.
func (s *scanService) lookupWine(ctx context.Context, barcode string) (*models.Wine, error) {
	if id, ok, err := s.scanCache.LookupBarcode(ctx, barcode); err == nil && ok {
		wine, err := s.wineRepo.GetByID(ctx, id)
		if err == nil {
			return wine, nil
		}
		if errors.Is(err, repository.ErrNotFound) {
			if derr := s.scanCache.InvalidateBarcode(ctx, barcode); derr != nil {
				s.logger.Warn("invalidate barcode cache", "barcode", barcode, "error", derr)
			}
		}
	} else if err != nil {
		s.logger.Warn("barcode cache lookup", "barcode", barcode, "error", err)
	}

	wine, err := s.wineRepo.GetByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if cerr := s.scanCache.CacheBarcode(ctx, barcode, wine.ID); cerr != nil {
		s.logger.Warn("cache barcode", "barcode", barcode, "error", cerr)
	}
	return wine, nil
}

func (s *scanService) recordScan(ctx context.Context, userID string, entry cache.ScanEntry) {
	if userID == "" {
		userID = models.LocalUserID
	}
	if err := s.scanCache.RecordScan(ctx, userID, entry); err != nil {
		s.logger.Warn("record scan history", "user", userID, "error", err)
	}
}

func (s *scanService) SubmitRating(ctx context.Context, wineID int64, score int, notes string, isFavorite bool) (*ScanResult, error) {
	s.setState(StateRatingEditor)
	rating, err := s.ratingSvc.CreateOrUpdate(ctx, wineID, score, notes, isFavorite)
	s.setState(StateIdle)
	if err != nil {
		return nil, err
	}
	return &ScanResult{State: StateIdle, Rating: rating}, nil
}

func (s *scanService) ToggleFavorite(ctx context.Context, wineID int64) (*ScanResult, error) {
	rating, err := s.ratingSvc.ToggleFavorite(ctx, wineID)
	if err != nil {
		s.setState(StateIdle)
		return nil, err
	}
	return &ScanResult{State: s.State(), Rating: rating}, nil
}

func (s *scanService) History(ctx context.Context, userID string) ([]cache.ScanEntry, error) {
	if userID == "" {
		userID = models.LocalUserID
	}
	return s.scanCache.History(ctx, userID)
}
