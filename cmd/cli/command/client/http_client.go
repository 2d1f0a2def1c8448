package client

// HTTP client for talking to the BuildHub API from the CLI.

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// Auth request/response structures
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

type RegisterResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Moderation request/response structures
type ReportResponse struct {
	ID             string     `json:"id"`
	EntityKind     string     `json:"entity_kind"`
	EntityID       int64      `json:"entity_id"`
	ReporterUserID string     `json:"reporter_user_id"`
	Reason         string     `json:"reason"`
	Description    string     `json:"description,omitempty"`
	Status         string     `json:"status"`
	AdminNotes     string     `json:"admin_notes,omitempty"`
	ReviewedBy     *string    `json:"reviewed_by,omitempty"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type PaginatedReports struct {
	Data       []ReportResponse `json:"data"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	Total      int              `json:"total"`
	TotalPages int              `json:"total_pages"`
}

type ReviewReportRequest struct {
	Status     string `json:"status"`
	AdminNotes string `json:"admin_notes,omitempty"`
}

type FlaggedEntity struct {
	EntityID          int64   `json:"entity_id"`
	Upvotes           int64   `json:"upvotes"`
	Downvotes         int64   `json:"downvotes"`
	TotalVotes        int64   `json:"total_votes"`
	Score             int64   `json:"score"`
	DownvoteRatio     float64 `json:"downvote_ratio"`
	RecentDownvotes   int64   `json:"recent_downvotes"`
	HasPendingReports bool    `json:"has_pending_reports"`
}

type FlaggedResponse struct {
	EntityKind string          `json:"entity_kind"`
	Count      int             `json:"count"`
	Entities   []FlaggedEntity `json:"entities"`
}

type QuotaResponse struct {
	MinuteRemaining int       `json:"minute_remaining"`
	HourRemaining   int       `json:"hour_remaining"`
	MinuteResetAt   time.Time `json:"minute_reset_at"`
	HourResetAt     time.Time `json:"hour_reset_at"`
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

func (c *HTTPClient) Register(request *RegisterRequest) (*RegisterResponse, error) {
	var result RegisterResponse
	if err := c.do(http.MethodPost, "/auth/register", request, http.StatusCreated, &result); err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	return &result, nil
}

func (c *HTTPClient) Login(request *LoginRequest) (*AuthResponse, error) {
	var result AuthResponse
	if err := c.do(http.MethodPost, "/auth/login", request, http.StatusOK, &result); err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return &result, nil
}

func (c *HTTPClient) ListReports(status string, page, pageSize int) (*PaginatedReports, error) {
	params := url.Values{}
	if status != "" {
		params.Set("status", status)
	}
	params.Set("page", fmt.Sprintf("%d", page))
	params.Set("page_size", fmt.Sprintf("%d", pageSize))

	var result PaginatedReports
	if err := c.do(http.MethodGet, "/admin/reports?"+params.Encode(), nil, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) ReviewReport(reportID string, request *ReviewReportRequest) (*ReportResponse, error) {
	var result ReportResponse
	path := "/admin/reports/" + url.PathEscape(reportID)
	if err := c.do(http.MethodPatch, path, request, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) Flagged(kind string, lookbackDays, minDownvotes int) (*FlaggedResponse, error) {
	params := url.Values{}
	params.Set("lookback_days", fmt.Sprintf("%d", lookbackDays))
	params.Set("min_downvotes", fmt.Sprintf("%d", minDownvotes))

	var result FlaggedResponse
	path := "/admin/flagged/" + url.PathEscape(kind) + "?" + params.Encode()
	if err := c.do(http.MethodGet, path, nil, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) Quota() (*QuotaResponse, error) {
	var result QuotaResponse
	if err := c.do(http.MethodGet, "/ratelimit/quota", nil, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *HTTPClient) do(method, path string, body any, wantStatus int, result any) error {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(jsonData)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s: %s", resp.Status, apiErr.Error)
		}
		return fmt.Errorf("unexpected status: %s", resp.Status)
	}

	if result == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(result)
}
