package client

// http_client.go wraps the winecellar REST API for the CLI commands.

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// Request/response structures mirror the API's JSON payloads.

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Email         string `json:"email"`
	DisplayName   string `json:"display_name,omitempty"`
	TotalRatings  int    `json:"total_ratings"`
	FavoriteCount int    `json:"favorite_count"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

type CreateWineRequest struct {
	Name     string `json:"name"`
	Vineyard string `json:"vineyard"`
	Year     int    `json:"year"`
	Type     string `json:"type"`
	Region   string `json:"region,omitempty"`
	Barcode  string `json:"barcode,omitempty"`

	Rating     int    `json:"rating,omitempty"`
	Notes      string `json:"notes,omitempty"`
	IsFavorite bool   `json:"is_favorite,omitempty"`
}

type WineResponse struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Vineyard      string    `json:"vineyard"`
	Year          int       `json:"year"`
	Type          string    `json:"type"`
	Region        string    `json:"region,omitempty"`
	Barcode       string    `json:"barcode,omitempty"`
	AverageRating float64   `json:"average_rating"`
	ReviewCount   int       `json:"review_count"`
	AddedDate     time.Time `json:"added_date"`
}

type SubmitRatingRequest struct {
	Rating     int    `json:"rating"`
	Notes      string `json:"notes,omitempty"`
	IsFavorite bool   `json:"is_favorite"`
}

type RatingResponse struct {
	ID         int64     `json:"id"`
	WineID     int64     `json:"wine_id"`
	Rating     int       `json:"rating"`
	Notes      string    `json:"notes,omitempty"`
	IsFavorite bool      `json:"is_favorite"`
	RatedDate  time.Time `json:"rated_date"`
}

type ScanResponse struct {
	State      string          `json:"state"`
	Barcode    string          `json:"barcode,omitempty"`
	Wine       *WineResponse   `json:"wine,omitempty"`
	Rating     *RatingResponse `json:"rating,omitempty"`
	RedirectTo string          `json:"redirect_to,omitempty"`
}

type CollectionItemResponse struct {
	Wine   WineResponse    `json:"wine"`
	Rating *RatingResponse `json:"rating,omitempty"`
}

type CollectionStats struct {
	TotalWines    int     `json:"total_wines"`
	Favorites     int     `json:"favorites"`
	AverageRating float64 `json:"average_rating"`
}

type CollectionResponse struct {
	Items []CollectionItemResponse `json:"items"`
	Stats CollectionStats          `json:"stats"`
}

type ProfileStatsResponse struct {
	TotalRatings  int              `json:"total_ratings"`
	FavoriteCount int              `json:"favorite_count"`
	AverageRating float64          `json:"average_rating"`
	Recent        []RatingResponse `json:"recent"`
}

type ProfileResponse struct {
	User  UserResponse         `json:"user"`
	Stats ProfileStatsResponse `json:"stats"`
}

type ScanHistoryEntry struct {
	Barcode   string    `json:"barcode"`
	WineID    int64     `json:"wine_id,omitempty"`
	Found     bool      `json:"found"`
	ScannedAt time.Time `json:"scanned_at"`
}

func NewHTTPClient(apiURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: apiURL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

// do sends an authenticated request and decodes the JSON response into
// out (skipped when out is nil or the server replies 204).
func (c *HTTPClient) do(method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s (%s)", apiErr.Error, resp.Status)
		}
		return fmt.Errorf("request failed with status: %s", resp.Status)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *HTTPClient) Login(request *LoginRequest) (*LoginResponse, error) {
	var result LoginResponse
	if err := c.do("POST", "/api/auth/login", request, &result); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return &result, nil
}

// Wine CRUD

func (c *HTTPClient) GetAllWines() ([]WineResponse, error) {
	var result []WineResponse
	err := c.do("GET", "/api/wines", nil, &result)
	return result, err
}

func (c *HTTPClient) GetWine(id int64) (*WineResponse, error) {
	var result WineResponse
	if err := c.do("GET", fmt.Sprintf("/api/wines/%d", id), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) GetWineByBarcode(code string) (*WineResponse, error) {
	var result WineResponse
	if err := c.do("GET", "/api/wines/barcode/"+url.PathEscape(code), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) SearchWines(query string) ([]WineResponse, error) {
	var result []WineResponse
	err := c.do("GET", "/api/wines/search?q="+url.QueryEscape(query), nil, &result)
	return result, err
}

func (c *HTTPClient) CreateWine(request *CreateWineRequest) (*WineResponse, error) {
	var result WineResponse
	if err := c.do("POST", "/api/wines", request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) DeleteWine(id int64) error {
	return c.do("DELETE", fmt.Sprintf("/api/wines/%d", id), nil, nil)
}

// Ratings

func (c *HTTPClient) GetRating(wineID int64) (*RatingResponse, error) {
	var result RatingResponse
	if err := c.do("GET", fmt.Sprintf("/api/wines/%d/rating", wineID), nil, &result); err != nil {
		return nil, err
	}
	if result.ID == 0 {
		// 204: no rating for this wine yet
		return nil, nil
	}
	return &result, nil
}

func (c *HTTPClient) SubmitRating(wineID int64, request *SubmitRatingRequest) (*RatingResponse, error) {
	var result RatingResponse
	if err := c.do("POST", fmt.Sprintf("/api/wines/%d/rating", wineID), request, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) DeleteRating(wineID int64) error {
	return c.do("DELETE", fmt.Sprintf("/api/wines/%d/rating", wineID), nil, nil)
}

func (c *HTTPClient) ToggleFavorite(wineID int64) (*RatingResponse, error) {
	var result RatingResponse
	if err := c.do("POST", fmt.Sprintf("/api/wines/%d/favorite", wineID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Scanning

func (c *HTTPClient) Scan() (*ScanResponse, error) {
	var result ScanResponse
	if err := c.do("POST", "/api/scan", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) LookupBarcode(barcode string) (*ScanResponse, error) {
	var result ScanResponse
	body := map[string]string{"barcode": barcode}
	if err := c.do("POST", "/api/scan/lookup", body, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) ScanHistory() ([]ScanHistoryEntry, error) {
	var result []ScanHistoryEntry
	err := c.do("GET", "/api/scan/history", nil, &result)
	return result, err
}

// Collection view with optional facets

func (c *HTTPClient) GetCollection(params url.Values) (*CollectionResponse, error) {
	path := "/api/collection"
	if len(params) > 0 {
		path += "?" + params.Encode()
	}
	var result CollectionResponse
	if err := c.do("GET", path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Profile

func (c *HTTPClient) GetProfile() (*ProfileResponse, error) {
	var result ProfileResponse
	if err := c.do("GET", "/api/profile", nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}
