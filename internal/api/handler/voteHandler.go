package handler

import (
	"net/http"
	"strconv"

	"buildhub/internal/api/dto"
	"buildhub/internal/api/models"
	"buildhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

// VoteHandler serves the vote routes for every entity kind. The kind is
// fixed at registration time, so one handler instance backs the car,
// build-list and part route trees alike.
type VoteHandler struct {
	voteService service.VoteService
}

func NewVoteHandler(voteService service.VoteService) *VoteHandler {
	return &VoteHandler{voteService: voteService}
}

// RegisterRoutes mounts vote routes under an entity group, e.g.
// /api/cars/:id/votes. The public group carries no auth; the authed group
// carries the JWT middleware.
func (h *VoteHandler) RegisterRoutes(public, authed *gin.RouterGroup, kind models.EntityKind) {
	public.GET("/:id/votes", h.summary(kind))

	authed.POST("/:id/votes", h.cast(kind))
	authed.DELETE("/:id/votes", h.remove(kind))
	authed.GET("/:id/votes/me", h.userVote(kind))
}

// cast creates or replaces the caller's vote
// POST /api/{kind}/:id/votes
func (h *VoteHandler) cast(kind models.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		entityID, ok := entityIDParam(c)
		if !ok {
			return
		}
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		var req dto.CastVoteDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		vote, err := h.voteService.CastVote(kind, entityID, userID, req.Direction)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, vote)
	}
}

// remove withdraws the caller's vote; removing an absent vote is a no-op
// DELETE /api/{kind}/:id/votes
func (h *VoteHandler) remove(kind models.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		entityID, ok := entityIDParam(c)
		if !ok {
			return
		}
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		existed, err := h.voteService.RemoveVote(kind, entityID, userID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, gin.H{"removed": existed})
	}
}

// userVote returns the caller's own vote on the entity
// GET /api/{kind}/:id/votes/me
func (h *VoteHandler) userVote(kind models.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		entityID, ok := entityIDParam(c)
		if !ok {
			return
		}
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		vote, err := h.voteService.GetUserVote(kind, entityID, userID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, vote)
	}
}

// summary returns the aggregated tallies for the entity
// GET /api/{kind}/:id/votes
func (h *VoteHandler) summary(kind models.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		entityID, ok := entityIDParam(c)
		if !ok {
			return
		}

		summary, err := h.voteService.GetSummary(kind, entityID)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, summary)
	}
}

func entityIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entity ID"})
		return 0, false
	}
	return id, true
}

func requireUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return "", false
	}
	return userID.(string), true
}
