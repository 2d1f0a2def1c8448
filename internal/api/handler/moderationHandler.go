package handler

import (
	"net/http"
	"strconv"

	"buildhub/internal/api/dto"
	"buildhub/internal/api/models"
	"buildhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

const (
	defaultFlaggedLookbackDays = 7
	defaultFlaggedMinDownvotes = 5
)

// ModerationHandler serves the admin review surface: report queues, status
// transitions and the flagged-entity digest.
type ModerationHandler struct {
	moderationService service.ModerationService
}

func NewModerationHandler(moderationService service.ModerationService) *ModerationHandler {
	return &ModerationHandler{moderationService: moderationService}
}

// RegisterRoutes mounts the admin routes. The group must already carry
// auth plus the admin role gate.
func (h *ModerationHandler) RegisterRoutes(admin *gin.RouterGroup) {
	reports := admin.Group("/reports")
	{
		reports.GET("", h.ListReports)
		reports.PATCH("/:report_id", h.ReviewReport)
	}
	admin.GET("/flagged/:kind", h.Flagged)
}

// ListReports pages through reports, optionally filtered by status
// GET /api/admin/reports?status=pending&page=1&page_size=20
func (h *ModerationHandler) ListReports(c *gin.Context) {
	status := c.Query("status")

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	reports, total, err := h.moderationService.ListReports(status, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginated(reports, int(total), page, pageSize))
}

// ReviewReport transitions a report's status
// PATCH /api/admin/reports/:report_id
func (h *ModerationHandler) ReviewReport(c *gin.Context) {
	reportID := c.Param("report_id")

	reviewerID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req dto.ReviewReportDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.moderationService.UpdateReportStatus(reportID, req.Status, req.AdminNotes, reviewerID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Flagged lists entities of one kind needing moderator attention
// GET /api/admin/flagged/:kind?lookback_days=7&min_downvotes=5
func (h *ModerationHandler) Flagged(c *gin.Context) {
	kind := models.EntityKind(c.Param("kind"))
	if !kind.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid entity kind"})
		return
	}

	lookbackDays, err := strconv.Atoi(c.DefaultQuery("lookback_days", strconv.Itoa(defaultFlaggedLookbackDays)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lookback_days"})
		return
	}
	minDownvotes, err := strconv.Atoi(c.DefaultQuery("min_downvotes", strconv.Itoa(defaultFlaggedMinDownvotes)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_downvotes"})
		return
	}

	flagged, err := h.moderationService.FlaggedEntities(kind, lookbackDays, minDownvotes)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entity_kind": kind,
		"count":       len(flagged),
		"entities":    flagged,
	})
}
