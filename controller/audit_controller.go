// controller/audit_controller.go
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/atriumhq/atrium/audit"
	"github.com/atriumhq/atrium/middleware"
	"github.com/atriumhq/atrium/model"
	"github.com/atriumhq/atrium/util"
	helper_util "github.com/atriumhq/atrium/util/helper"
)

type AuditController struct {
	auditService audit.Service
}

func NewAuditController(auditService audit.Service) *AuditController {
	return &AuditController{
		auditService: auditService,
	}
}

// RegisterRoutes registers the API routes. The audit trail exposes who
// accessed what, so reading it is itself restricted to leadership.
func (ac *AuditController) RegisterRoutes(r *gin.RouterGroup) {
	events := r.Group("/audit", middleware.RequireRole(model.RoleLeadership))
	{
		events.GET("/events", ac.ListEvents)
	}
}

// ListEvents endpoint. The window defaults to the last 24 hours when from/to
// are omitted.
func (ac *AuditController) ListEvents(c *gin.Context) {
	to := time.Now().UTC()
	from := to.Add(-24 * time.Hour)

	if raw := c.Query("from"); raw != "" {
		parsed, err := helper_util.ParseTime(raw)
		if err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid from timestamp", err)
			return
		}
		from = parsed
	}
	if raw := c.Query("to"); raw != "" {
		parsed, err := helper_util.ParseTime(raw)
		if err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid to timestamp", err)
			return
		}
		to = parsed
	}

	events, err := ac.auditService.QueryEvents(c, from, to, c.Query("user_id"), c.Query("resource"))
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to query audit events", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"count":  len(events),
	})
}
