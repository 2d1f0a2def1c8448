package handler

import (
	"net/http"
	"strconv"

	"buildhub/internal/api/dto"
	"buildhub/internal/api/repository"
	"buildhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

// PartHandler serves the global parts catalog. Reads are public; the
// catalog itself is curated, so writes sit behind the admin gate.
type PartHandler struct {
	partService service.PartService
}

func NewPartHandler(partService service.PartService) *PartHandler {
	return &PartHandler{partService: partService}
}

func (h *PartHandler) RegisterRoutes(public, admin *gin.RouterGroup) {
	public.GET("", h.List)
	public.GET("/:id", h.GetByID)

	admin.POST("", h.Create)
	admin.PUT("/:id", h.Update)
	admin.DELETE("/:id", h.Delete)
}

// Create adds a part to the catalog
// POST /api/admin/parts
func (h *PartHandler) Create(c *gin.Context) {
	var req dto.CreatePartDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	part, err := h.partService.Create(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, part)
}

// Update edits a catalog part
// PUT /api/admin/parts/:id
func (h *PartHandler) Update(c *gin.Context) {
	partID, ok := entityIDParam(c)
	if !ok {
		return
	}

	var req dto.UpdatePartDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	part, err := h.partService.Update(partID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, part)
}

// Delete removes a part from the catalog
// DELETE /api/admin/parts/:id
func (h *PartHandler) Delete(c *gin.Context) {
	partID, ok := entityIDParam(c)
	if !ok {
		return
	}

	if err := h.partService.Delete(partID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "part deleted successfully"})
}

// GetByID fetches one part
// GET /api/parts/:id
func (h *PartHandler) GetByID(c *gin.Context) {
	partID, ok := entityIDParam(c)
	if !ok {
		return
	}

	part, err := h.partService.GetByID(partID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, part)
}

// List pages through the catalog with optional filters
// GET /api/parts?category_id=1&manufacturer=Brembo&page=1&page_size=20
func (h *PartHandler) List(c *gin.Context) {
	page, pageSize := pageParams(c)

	var filter repository.PartFilter
	if raw := c.Query("category_id"); raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
			return
		}
		filter.CategoryID = categoryID
	}
	filter.Manufacturer = c.Query("manufacturer")

	parts, err := h.partService.List(filter, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, parts)
}
