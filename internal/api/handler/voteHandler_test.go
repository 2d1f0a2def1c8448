package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"buildhub/internal/api/apperror"
	"buildhub/internal/api/dto"
	"buildhub/internal/api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubVoteService returns canned values so handler tests exercise only the
// HTTP mapping.
type stubVoteService struct {
	castErr    error
	removeOK   bool
	removeErr  error
	summaryErr error
}

func (s *stubVoteService) CastVote(kind models.EntityKind, entityID int64, userID, direction string) (*dto.VoteResponse, error) {
	if s.castErr != nil {
		return nil, s.castErr
	}
	return &dto.VoteResponse{
		Direction: direction,
		Summary:   dto.VoteSummaryResponse{Upvotes: 1, Total: 1, Score: 1, UpvotePct: 100},
	}, nil
}

func (s *stubVoteService) RemoveVote(kind models.EntityKind, entityID int64, userID string) (bool, error) {
	return s.removeOK, s.removeErr
}

func (s *stubVoteService) GetUserVote(kind models.EntityKind, entityID int64, userID string) (*dto.UserVoteResponse, error) {
	return &dto.UserVoteResponse{Direction: models.VoteUp}, nil
}

func (s *stubVoteService) GetSummary(kind models.EntityKind, entityID int64) (*dto.VoteSummaryResponse, error) {
	if s.summaryErr != nil {
		return nil, s.summaryErr
	}
	return &dto.VoteSummaryResponse{Upvotes: 2, Downvotes: 1, Total: 3, Score: 1, UpvotePct: 66.7, DownvotePct: 33.3}, nil
}

func setupVoteRouter(svc *stubVoteService, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	public := router.Group("/cars")
	authed := router.Group("/cars")
	if userID != "" {
		authed.Use(func(c *gin.Context) {
			c.Set("userID", userID)
			c.Next()
		})
	}

	NewVoteHandler(svc).RegisterRoutes(public, authed, models.EntityKindCar)
	return router
}

func TestCastVote_HTTPSuccess(t *testing.T) {
	router := setupVoteRouter(&stubVoteService{}, "user-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cars/42/votes", strings.NewReader(`{"direction":"upvote"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"direction":"upvote"`)
}

func TestCastVote_HTTPBadEntityID(t *testing.T) {
	router := setupVoteRouter(&stubVoteService{}, "user-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cars/abc/votes", strings.NewReader(`{"direction":"upvote"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCastVote_HTTPBadDirection(t *testing.T) {
	// Binding rejects the payload before the service is reached.
	router := setupVoteRouter(&stubVoteService{}, "user-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cars/42/votes", strings.NewReader(`{"direction":"sideways"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCastVote_HTTPUnauthenticated(t *testing.T) {
	router := setupVoteRouter(&stubVoteService{}, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/cars/42/votes", strings.NewReader(`{"direction":"upvote"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCastVote_HTTPErrorMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"not found", apperror.ErrNotFound, http.StatusNotFound},
		{"self vote", apperror.ErrSelfVote, http.StatusConflict},
		{"invalid argument", apperror.ErrInvalidArgument, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router := setupVoteRouter(&stubVoteService{castErr: tc.err}, "user-1")

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/cars/42/votes", strings.NewReader(`{"direction":"upvote"}`))
			req.Header.Set("Content-Type", "application/json")
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.wantCode, w.Code)
		})
	}
}

func TestRemoveVote_HTTPReportsExistence(t *testing.T) {
	router := setupVoteRouter(&stubVoteService{removeOK: true}, "user-1")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/cars/42/votes", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"removed":true`)

	router = setupVoteRouter(&stubVoteService{removeOK: false}, "user-1")
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/cars/42/votes", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"removed":false`)
}

func TestGetSummary_HTTPPublic(t *testing.T) {
	// No auth context needed for the summary read.
	router := setupVoteRouter(&stubVoteService{}, "")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/cars/42/votes", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"upvote_pct":66.7`)
}
