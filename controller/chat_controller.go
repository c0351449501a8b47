// controller/chat_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atriumhq/atrium/audit"
	"github.com/atriumhq/atrium/model"
	"github.com/atriumhq/atrium/rbac"
	"github.com/atriumhq/atrium/util"
)

type ChatController struct {
	guard        *rbac.Guard
	auditService audit.Service
}

func NewChatController(guard *rbac.Guard, auditService audit.Service) *ChatController {
	return &ChatController{
		guard:        guard,
		auditService: auditService,
	}
}

// RegisterRoutes registers the API routes
func (cc *ChatController) RegisterRoutes(r *gin.RouterGroup) {
	chat := r.Group("/chat")
	{
		chat.POST("/filter", cc.FilterResponse)
	}
}

// FilterResponse endpoint. Takes an assistant response assembled upstream
// and strips it down to what the caller may see: sources they cannot read
// are replaced with restricted placeholders and financial figures are
// redacted for junior roles.
func (cc *ChatController) FilterResponse(c *gin.Context) {
	user, err := util.GetUserContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Authentication required", err)
		return
	}

	var response model.ChatResponse
	if err := c.ShouldBindJSON(&response); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid chat response payload", err)
		return
	}

	filtered := cc.guard.FilterChatResponse(c, user, response)

	restricted := 0
	for _, source := range filtered.Sources {
		if source.AccessDenied {
			restricted++
		}
	}
	if restricted > 0 || filtered.Content != response.Content {
		cc.auditService.Record(audit.Event{
			Type:    audit.EventChatFiltered,
			UserID:  user.UserID,
			Role:    user.Role.String(),
			Allowed: true,
			Metadata: map[string]any{
				"restricted_sources": restricted,
				"total_sources":      len(filtered.Sources),
				"content_redacted":   filtered.Content != response.Content,
			},
		})
	}

	c.JSON(http.StatusOK, filtered)
}
