package cron

import (
	"net/http"

	"github.com/engagehq/engage-api/internal/logger"
	"github.com/engagehq/engage-api/internal/service"
	"github.com/gin-gonic/gin"
)

// EngagementHandler exposes the scheduled status transitions as endpoints
// for an external scheduler to hit.
type EngagementHandler struct {
	engagementService service.EngagementService
	logger            *logger.Logger
}

func NewEngagementHandler(engagementService service.EngagementService, logger *logger.Logger) *EngagementHandler {
	return &EngagementHandler{
		engagementService: engagementService,
		logger:            logger,
	}
}

// CloseEngagementsDue closes every published engagement whose end date has
// passed. Safe to invoke concurrently, a transition is applied at most once.
func (h *EngagementHandler) CloseEngagementsDue(c *gin.Context) {
	h.logger.Infow("starting close-due engagements cron job")

	closed, err := h.engagementService.CloseEngagementsDue(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to close due engagements", "error", err)
		c.Error(err)
		return
	}

	h.logger.Infow("completed close-due engagements cron job", "closed", len(closed))
	c.JSON(http.StatusOK, gin.H{"status": "completed", "closed": closed})
}

// PublishScheduledEngagementsDue publishes every scheduled engagement whose
// scheduled date has arrived.
func (h *EngagementHandler) PublishScheduledEngagementsDue(c *gin.Context) {
	h.logger.Infow("starting publish-scheduled engagements cron job")

	published, err := h.engagementService.PublishScheduledEngagementsDue(c.Request.Context())
	if err != nil {
		h.logger.Errorw("failed to publish scheduled engagements", "error", err)
		c.Error(err)
		return
	}

	h.logger.Infow("completed publish-scheduled engagements cron job", "published", len(published))
	c.JSON(http.StatusOK, gin.H{"status": "completed", "published": published})
}
