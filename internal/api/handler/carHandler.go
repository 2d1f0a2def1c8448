package handler

import (
	"net/http"
	"strconv"

	"buildhub/internal/api/dto"
	"buildhub/internal/api/repository"
	"buildhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

type CarHandler struct {
	carService service.CarService
}

func NewCarHandler(carService service.CarService) *CarHandler {
	return &CarHandler{carService: carService}
}

// RegisterRoutes registers car CRUD routes. Reads are public; writes
// require the JWT middleware on the authed group.
func (h *CarHandler) RegisterRoutes(public, authed *gin.RouterGroup) {
	public.GET("", h.List)
	public.GET("/:id", h.GetByID)

	authed.POST("", h.Create)
	authed.PUT("/:id", h.Update)
	authed.DELETE("/:id", h.Delete)
}

// Create registers a new car owned by the caller
// POST /api/cars
func (h *CarHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCarDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	car, err := h.carService.Create(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, car)
}

// Update edits a car; only the owner or an admin may
// PUT /api/cars/:id
func (h *CarHandler) Update(c *gin.Context) {
	carID, ok := entityIDParam(c)
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateCarDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	car, err := h.carService.Update(userID, callerRole(c), carID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, car)
}

// Delete removes a car along with its votes; reports stay for audit
// DELETE /api/cars/:id
func (h *CarHandler) Delete(c *gin.Context) {
	carID, ok := entityIDParam(c)
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.carService.Delete(userID, callerRole(c), carID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "car deleted successfully"})
}

// GetByID fetches one car
// GET /api/cars/:id
func (h *CarHandler) GetByID(c *gin.Context) {
	carID, ok := entityIDParam(c)
	if !ok {
		return
	}

	car, err := h.carService.GetByID(carID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, car)
}

// List pages through cars with optional filters
// GET /api/cars?category_id=1&owner_id=...&make=Honda&page=1&page_size=20
func (h *CarHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c)

	var filter repository.CarFilter
	if raw := c.Query("category_id"); raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
			return
		}
		filter.CategoryID = categoryID
	}
	filter.OwnerID = c.Query("owner_id")
	filter.Make = c.Query("make")

	cars, err := h.carService.List(filter, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, cars)
}

func pageParams(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}

func callerRole(c *gin.Context) string {
	role, exists := c.Get("role")
	if !exists {
		return ""
	}
	r, _ := role.(string)
	return r
}
