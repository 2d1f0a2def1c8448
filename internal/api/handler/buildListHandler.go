package handler

import (
	"net/http"
	"strconv"

	"buildhub/internal/api/dto"
	"buildhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type BuildListHandler struct {
	buildListService    service.BuildListService
	subscriptionService service.SubscriptionService
}

func NewBuildListHandler(
	buildListService service.BuildListService,
	subscriptionService service.SubscriptionService,
) *BuildListHandler {
	return &BuildListHandler{
		buildListService:    buildListService,
		subscriptionService: subscriptionService,
	}
}

func (h *BuildListHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("", h.List)
	public.GET("/:id", h.GetByID)

	authed.POST("", h.Create)
	authed.PUT("/:id", h.Update)
	authed.DELETE("/:id", h.Delete)
}

// Create opens a new build list; free-tier users are capped
// POST /api/build-lists
func (h *BuildListHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateBuildListDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sub, err := h.subscriptionService.GetForUser(userID)
	if err != nil {
		respondError(c, err)
		return
	}

	list, err := h.buildListService.Create(userID, sub.Tier, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, list)
}

// Update edits a build list; only the owner or an admin may
// PUT /api/build-lists/:id
func (h *BuildListHandler) Update(c *gin.Context) {
	listID, ok := entityIDParam(c)
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateBuildListDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	list, err := h.buildListService.Update(userID, callerRole(c), listID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// Delete removes a build list along with its votes
// DELETE /api/build-lists/:id
func (h *BuildListHandler) Delete(c *gin.Context) {
	listID, ok := entityIDParam(c)
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.buildListService.Delete(userID, callerRole(c), listID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "build list deleted successfully"})
}

// GetByID fetches one build list with its parts
// GET /api/build-lists/:id
func (h *BuildListHandler) GetByID(c *gin.Context) {
	listID, ok := entityIDParam(c)
	if !ok {
		return
	}

	list, err := h.buildListService.GetByID(listID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}

// List pages through build lists, optionally by owner or car
// GET /api/build-lists?owner_id=...&car_id=1&page=1&page_size=20
func (h *BuildListHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c)

	var carID int64
	if raw := c.Query("car_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid car_id"})
			return
		}
		carID = parsed
	}

	lists, err := h.buildListService.List(c.Query("owner_id"), carID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, lists)
}
