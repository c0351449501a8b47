// controller/access_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	atrium_errors "github.com/atriumhq/atrium/errors"
	"github.com/atriumhq/atrium/model"
	"github.com/atriumhq/atrium/rbac"
	"github.com/atriumhq/atrium/util"
)

type AccessController struct {
	guard *rbac.Guard
}

func NewAccessController(guard *rbac.Guard) *AccessController {
	return &AccessController{
		guard: guard,
	}
}

// RegisterRoutes registers the API routes
func (ac *AccessController) RegisterRoutes(r *gin.RouterGroup) {
	access := r.Group("/access")
	{
		access.GET("/bootstrap", ac.Bootstrap)
		access.POST("/check", ac.CheckAccess)
		access.GET("/knowledge-scope", ac.GetKnowledgeScope)
		access.GET("/tools", ac.GetToolPermissions)
		access.GET("/dashboard", ac.GetDashboardConfig)
	}
}

// checkRequest is an explicit permission probe: which level does the caller
// hold on a resource, given the request attributes.
type checkRequest struct {
	Resource   string         `json:"resource" binding:"required"`
	Level      string         `json:"level" binding:"required"`
	Attributes map[string]any `json:"attributes"`
}

// Bootstrap endpoint. Returns everything a client session needs to render
// itself: identity, dashboard layout, tool grants, knowledge scope and the
// caller's effective permissions.
func (ac *AccessController) Bootstrap(c *gin.Context) {
	user, err := util.GetUserContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Authentication required", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":              user.UserID,
			"name":            user.Name,
			"email":           user.Email,
			"role":            user.Role,
			"team_id":         user.TeamID,
			"department_id":   user.DepartmentID,
			"organization_id": user.OrgID,
		},
		"dashboard":       ac.guard.DashboardConfig(user),
		"mcp_permissions": ac.guard.MCPToolPermissions(c, user),
		"knowledge_scope": ac.guard.KnowledgeScope(user),
		"permissions":     ac.guard.Engine().PermissionsForRole(user.Role),
	})
}

// CheckAccess endpoint. Evaluates a single access question and returns the
// full decision, including the reason and any scope filters. A denial is a
// 200 with allowed=false, not an error.
func (ac *AccessController) CheckAccess(c *gin.Context) {
	user, err := util.GetUserContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Authentication required", err)
		return
	}

	var req checkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid check request", err)
		return
	}

	resource := model.ResourceType(req.Resource)
	if !resource.Valid() {
		util.RespondWithError(c, http.StatusBadRequest, "Unknown resource type", atrium_errors.ErrUnknownResource)
		return
	}
	level, ok := model.ParseAccessLevel(req.Level)
	if !ok {
		util.RespondWithError(c, http.StatusBadRequest, "Unknown access level", atrium_errors.ErrUnknownAccessLevel)
		return
	}

	decision := ac.guard.CheckAccess(c, user, resource, level, req.Attributes)
	c.JSON(http.StatusOK, decision)
}

// GetKnowledgeScope endpoint
func (ac *AccessController) GetKnowledgeScope(c *gin.Context) {
	user, err := util.GetUserContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Authentication required", err)
		return
	}

	c.JSON(http.StatusOK, ac.guard.KnowledgeScope(user))
}

// GetToolPermissions endpoint
func (ac *AccessController) GetToolPermissions(c *gin.Context) {
	user, err := util.GetUserContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Authentication required", err)
		return
	}

	c.JSON(http.StatusOK, ac.guard.MCPToolPermissions(c, user))
}

// GetDashboardConfig endpoint
func (ac *AccessController) GetDashboardConfig(c *gin.Context) {
	user, err := util.GetUserContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Authentication required", err)
		return
	}

	c.JSON(http.StatusOK, ac.guard.DashboardConfig(user))
}
