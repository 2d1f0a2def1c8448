package handler

import (
	"net/http"

	"buildhub/internal/api/dto"
	"buildhub/internal/api/models"
	"buildhub/internal/api/service"

	"github.com/gin-gonic/gin"
)

// ReportHandler accepts abuse reports from authenticated users. Review of
// the submitted reports lives in ModerationHandler.
type ReportHandler struct {
	moderationService service.ModerationService
}

func NewReportHandler(moderationService service.ModerationService) *ReportHandler {
	return &ReportHandler{moderationService: moderationService}
}

// RegisterRoutes mounts the submit route under an entity group, e.g.
// /api/cars/:id/reports.
func (h *ReportHandler) RegisterRoutes(authed *gin.RouterGroup, kind models.EntityKind) {
	authed.POST("/:id/reports", h.create(kind))
}

// create files a report against the entity
// POST /api/{kind}/:id/reports
func (h *ReportHandler) create(kind models.EntityKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		entityID, ok := entityIDParam(c)
		if !ok {
			return
		}
		userID, ok := requireUserID(c)
		if !ok {
			return
		}

		var req dto.CreateReportDTO
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		report, err := h.moderationService.CreateReport(kind, entityID, userID, req.Reason, req.Description)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, report)
	}
}
