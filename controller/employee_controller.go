// controller/employee_controller.go
package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/atriumhq/atrium/audit"
	"github.com/atriumhq/atrium/db"
	atrium_errors "github.com/atriumhq/atrium/errors"
	logger "github.com/atriumhq/atrium/logging"
	"github.com/atriumhq/atrium/middleware"
	"github.com/atriumhq/atrium/model"
	"github.com/atriumhq/atrium/rbac"
	"github.com/atriumhq/atrium/util"
	helper_util "github.com/atriumhq/atrium/util/helper"
)

// bulkUpsertLockTTL bounds how long a crashed seeding run can hold the
// directory lock.
const bulkUpsertLockTTL = 2 * time.Minute

// EmployeeStore is the directory surface the controller needs.
type EmployeeStore interface {
	GetEmployee(ctx context.Context, userID string) (*model.Employee, error)
	UpsertEmployee(ctx context.Context, employee model.Employee) (string, error)
	BulkUpsertEmployees(ctx context.Context, employees []model.Employee) error
	ListEmployees(ctx context.Context, limit, offset int) ([]*model.Employee, error)
}

// EmployeeCache fronts the store for single-record reads.
type EmployeeCache interface {
	GetEmployee(ctx context.Context, userID string) (*model.Employee, error)
	SetEmployee(ctx context.Context, employee model.Employee) error
	DeleteEmployee(ctx context.Context, userID string) error
}

type EmployeeController struct {
	employeeStore EmployeeStore
	guard         *rbac.Guard
	cacheService  EmployeeCache
	auditService  audit.Service
}

func NewEmployeeController(employeeStore EmployeeStore, guard *rbac.Guard, cacheService EmployeeCache, auditService audit.Service) *EmployeeController {
	return &EmployeeController{
		employeeStore: employeeStore,
		guard:         guard,
		cacheService:  cacheService,
		auditService:  auditService,
	}
}

// RegisterRoutes registers the API routes
func (ec *EmployeeController) RegisterRoutes(r *gin.RouterGroup) {
	employees := r.Group("/employees")
	{
		employees.GET("", ec.ListEmployees)
		employees.GET("/:id", ec.GetEmployee)
		employees.GET("/:id/visibility", ec.GetVisibility)
		employees.POST("", middleware.RequireRole(model.RoleManager), ec.UpsertEmployee)
		employees.POST("/bulk", middleware.RequireRole(model.RoleLeadership), ec.BulkUpsertEmployees)
	}
}

// GetEmployee endpoint. The record is fetched before the visibility check
// because the check needs the target's team.
func (ec *EmployeeController) GetEmployee(c *gin.Context) {
	user, err := util.GetUserContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Authentication required", err)
		return
	}
	targetID := c.Param("id")

	employee, err := ec.lookupEmployee(c, targetID)
	if err != nil {
		if errors.Is(err, atrium_errors.ErrUserNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Employee not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve employee", err)
		}
		return
	}

	if !ec.guard.CanViewEmployeeData(c, user, employee.ID, employee.TeamID) {
		util.RespondWithError(c, http.StatusForbidden, "Not allowed to view this employee", atrium_errors.ErrAccessDenied)
		return
	}

	c.JSON(http.StatusOK, ec.employeePayload(c, user, employee))
}

// GetVisibility endpoint. Answers whether the caller may see the target's
// records without returning any of them. team_id is optional; when absent
// it is resolved from the directory.
func (ec *EmployeeController) GetVisibility(c *gin.Context) {
	user, err := util.GetUserContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Authentication required", err)
		return
	}
	targetID := c.Param("id")

	targetTeamID := c.Query("team_id")
	if targetTeamID == "" {
		if employee, err := ec.lookupEmployee(c, targetID); err == nil {
			targetTeamID = employee.TeamID
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":  targetID,
		"can_view": ec.guard.CanViewEmployeeData(c, user, targetID, targetTeamID),
	})
}

// ListEmployees endpoint. Pages through the directory and drops records the
// caller may not see rather than failing the whole request.
func (ec *EmployeeController) ListEmployees(c *gin.Context) {
	user, err := util.GetUserContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Authentication required", err)
		return
	}

	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	employees, err := ec.employeeStore.ListEmployees(c, limit, offset)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	visible := make([]map[string]any, 0, len(employees))
	for _, employee := range employees {
		if !ec.guard.CanViewEmployeeData(c, user, employee.ID, employee.TeamID) {
			continue
		}
		visible = append(visible, ec.employeePayload(c, user, employee))
	}

	c.JSON(http.StatusOK, gin.H{
		"employees": visible,
		"limit":     limit,
		"offset":    offset,
	})
}

// UpsertEmployee endpoint
func (ec *EmployeeController) UpsertEmployee(c *gin.Context) {
	var employee model.Employee
	if err := c.ShouldBindJSON(&employee); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid employee data", atrium_errors.ErrInvalidUserData)
		return
	}

	employeeID, err := ec.employeeStore.UpsertEmployee(c, employee)
	if err != nil {
		switch {
		case errors.Is(err, atrium_errors.ErrInvalidUserData):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid employee data", err)
		case errors.Is(err, atrium_errors.ErrDatabaseOperation):
			util.RespondWithError(c, http.StatusInternalServerError, "Database operation failed", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to upsert employee", atrium_errors.ErrInternalServer)
		}
		return
	}

	if err := ec.cacheService.DeleteEmployee(c, employeeID); err != nil {
		logger.Warn("Failed to invalidate employee cache", zap.String("employeeID", employeeID), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"id": employeeID})
}

// BulkUpsertEmployees endpoint. Seeding runs are serialized through a Redis
// lock so overlapping imports do not interleave relationship rewrites.
func (ec *EmployeeController) BulkUpsertEmployees(c *gin.Context) {
	var employees []model.Employee
	if err := c.ShouldBindJSON(&employees); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid employee data", atrium_errors.ErrInvalidUserData)
		return
	}
	if len(employees) == 0 {
		util.RespondWithError(c, http.StatusBadRequest, "Empty employee list", atrium_errors.ErrInvalidUserData)
		return
	}

	locked, err := db.LockResource(c, "employee-bulk-upsert", bulkUpsertLockTTL)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to acquire directory lock", err)
		return
	}
	if !locked {
		util.RespondWithError(c, http.StatusConflict, "Another import is in progress", atrium_errors.ErrDatabaseOperation)
		return
	}
	defer func() {
		if err := db.UnlockResource(c, "employee-bulk-upsert"); err != nil {
			logger.Warn("Failed to release directory lock", zap.Error(err))
		}
	}()

	if err := ec.employeeStore.BulkUpsertEmployees(c, employees); err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to bulk upsert employees", err)
		return
	}

	for _, employee := range employees {
		if err := ec.cacheService.DeleteEmployee(c, employee.ID); err != nil {
			logger.Warn("Failed to invalidate employee cache", zap.String("employeeID", employee.ID), zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, gin.H{"count": len(employees)})
}

// lookupEmployee serves reads through the cache and fills it on a miss.
func (ec *EmployeeController) lookupEmployee(c *gin.Context, employeeID string) (*model.Employee, error) {
	if cached, err := ec.cacheService.GetEmployee(c, employeeID); err == nil && cached != nil {
		return cached, nil
	}
	employee, err := ec.employeeStore.GetEmployee(c, employeeID)
	if err != nil {
		return nil, err
	}
	if err := ec.cacheService.SetEmployee(c, *employee); err != nil {
		logger.Warn("Failed to cache employee", zap.String("employeeID", employeeID), zap.Error(err))
	}
	return employee, nil
}

// employeePayload renders an employee for the given viewer. Profile extras
// are redacted for viewers below leadership, and the redaction is audited.
func (ec *EmployeeController) employeePayload(c *gin.Context, viewer model.UserContext, employee *model.Employee) map[string]any {
	raw, err := json.Marshal(employee)
	if err != nil {
		return map[string]any{"id": employee.ID}
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		return map[string]any{"id": employee.ID}
	}

	redacted := ec.guard.RedactSensitiveFields(viewer, payload)
	if !viewer.Role.AtLeast(model.RoleLeadership) && len(employee.Metadata) > 0 {
		ec.auditService.Record(audit.Event{
			Type:    audit.EventDataRedacted,
			UserID:  viewer.UserID,
			Role:    viewer.Role.String(),
			Allowed: true,
			Metadata: map[string]any{
				"employee_id": employee.ID,
			},
		})
	}
	return redacted
}
