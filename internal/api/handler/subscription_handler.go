package handler

import (
	"net/http"

	"buildhub/internal/api/dto"
	"buildhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	subscriptionService service.SubscriptionService
}

func NewSubscriptionHandler(subscriptionService service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{subscriptionService: subscriptionService}
}

func (h *SubscriptionHandler) RegisterRoutes(authed *gin.RouterGroup) {
	sub := authed.Group("/subscription")
	{
		sub.GET("", h.Get)
		sub.PUT("", h.ChangeTier)
	}
}

// Get returns the caller's subscription; users without one are free tier
// GET /api/subscription
func (h *SubscriptionHandler) Get(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	sub, err := h.subscriptionService.GetForUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}

// ChangeTier switches the caller between free and pro
// PUT /api/subscription
func (h *SubscriptionHandler) ChangeTier(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.ChangeTierDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := h.subscriptionService.ChangeTier(userID, req.Tier)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, sub)
}
