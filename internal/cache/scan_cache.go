// Package cache keeps scan-adjacent hot data in Redis: a barcode to wine
// id lookup cache and a capped per-user scan history. Redis is strictly
// optional - with no client configured every method degrades to a no-op,
// so the scan workflow behaves identically without it.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	historyLen  = 20
	barcodeTTL  = 6 * time.Hour
	historyTTL  = 30 * 24 * time.Hour
	dialTimeout = 5 * time.Second
)

// ScanEntry is one remembered scan.
type ScanEntry struct {
	Barcode   string    `json:"barcode"`
	WineID    int64     `json:"wine_id,omitempty"`
	Found     bool      `json:"found"`
	ScannedAt time.Time `json:"scanned_at"`
}

type ScanCache struct {
	client *redis.Client
}

// NewScanCache connects to Redis at the given URL and verifies the
// connection. An empty URL yields a disabled cache rather than an error.
func NewScanCache(redisURL string) (*ScanCache, error) {
	if redisURL == "" {
		return &ScanCache{}, nil
	}
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opts.DialTimeout = dialTimeout
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), dialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return &ScanCache{client: client}, nil
}

// Enabled reports whether a live Redis connection backs this cache.
func (c *ScanCache) Enabled() bool {
	return c != nil && c.client != nil
}

func barcodeKey(code string) string {
	return "scan:barcode:" + code
}

func historyKey(userID string) string {
	return "scan:history:" + userID
}

// CacheBarcode remembers which wine a barcode resolved to.
func (c *ScanCache) CacheBarcode(ctx context.Context, code string, wineID int64) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Set(ctx, barcodeKey(code), wineID, barcodeTTL).Err()
}

// LookupBarcode returns the cached wine id for a barcode, if any.
func (c *ScanCache) LookupBarcode(ctx context.Context, code string) (int64, bool, error) {
	if !c.Enabled() {
		return 0, false, nil
	}
	val, err := c.client.Get(ctx, barcodeKey(code)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("corrupt barcode cache entry: %w", err)
	}
	return id, true, nil
}

// InvalidateBarcode drops a cached lookup, e.g. after the wine is deleted.
func (c *ScanCache) InvalidateBarcode(ctx context.Context, code string) error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Del(ctx, barcodeKey(code)).Err()
}

// RecordScan prepends an entry to the user's scan history, capped at
// historyLen entries.
func (c *ScanCache) RecordScan(ctx context.Context, userID string, entry ScanEntry) error {
	if !c.Enabled() {
		return nil
	}
	raw, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	key := historyKey(userID)
	pipe := c.client.TxPipeline()
	pipe.LPush(ctx, key, raw)
	pipe.LTrim(ctx, key, 0, historyLen-1)
	pipe.Expire(ctx, key, historyTTL)
	_, err = pipe.Exec(ctx)
	return err
}

// History returns the user's most recent scans, newest first.
func (c *ScanCache) History(ctx context.Context, userID string) ([]ScanEntry, error) {
	if !c.Enabled() {
		return []ScanEntry{}, nil
	}
	raws, err := c.client.LRange(ctx, historyKey(userID), 0, historyLen-1).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]ScanEntry, 0, len(raws))
	for _, raw := range raws {
		var e ScanEntry
		if err := json.Unmarshal([]byte(raw), &e); err != nil {
			continue // skip corrupt entries
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Close releases the Redis connection.
func (c *ScanCache) Close() error {
	if !c.Enabled() {
		return nil
	}
	return c.client.Close()
}
