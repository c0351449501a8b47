// identity/builder.go
package identity

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	atrium_errors "github.com/atriumhq/atrium/errors"
	logger "github.com/atriumhq/atrium/logging"
	"github.com/atriumhq/atrium/model"
)

// Directory looks up employee records in the org graph.
type Directory interface {
	GetEmployee(ctx context.Context, userID string) (*model.Employee, error)
}

// Cache fronts the directory so repeat requests skip the graph query.
type Cache interface {
	GetEmployee(ctx context.Context, userID string) (*model.Employee, error)
	SetEmployee(ctx context.Context, employee model.Employee) error
}

// Builder assembles the UserContext every decision evaluates against. Token
// claims win over directory data; the directory fills what claims omit. A
// directory outage degrades to a claims-only context, never an open one.
type Builder struct {
	directory Directory
	cache     Cache
}

func NewBuilder(directory Directory, cache Cache) *Builder {
	return &Builder{directory: directory, cache: cache}
}

// FromClaims builds a context from a verified token payload. The sub claim
// is required; the role claim defaults through ParseRole when absent.
func (b *Builder) FromClaims(ctx context.Context, claims map[string]any, sessionID string) (model.UserContext, error) {
	userID := stringClaim(claims, "sub")
	if userID == "" {
		return model.UserContext{}, fmt.Errorf("%w: missing sub claim", atrium_errors.ErrInvalidToken)
	}

	user := model.UserContext{
		UserID:       userID,
		Role:         model.ParseRole(stringClaim(claims, "role")),
		TeamID:       stringClaim(claims, "team_id"),
		DepartmentID: stringClaim(claims, "department_id"),
		OrgID:        stringClaim(claims, "org_id"),
		Email:        stringClaim(claims, "email"),
		Name:         stringClaim(claims, "name"),
		SessionID:    sessionID,
	}

	if employee := b.lookup(ctx, userID); employee != nil {
		if user.TeamID == "" {
			user.TeamID = employee.TeamID
		}
		if user.DepartmentID == "" {
			user.DepartmentID = employee.DepartmentID
		}
		if user.OrgID == "" {
			user.OrgID = employee.OrgID
		}
		if user.Email == "" {
			user.Email = employee.Email
		}
		if user.Name == "" {
			user.Name = employee.Name
		}
		user.ManagerID = employee.ManagerID
		user.DirectReports = employee.DirectReports
		user.ProjectIDs = employee.ProjectIDs
	}
	if user.OrgID == "" {
		user.OrgID = "default"
	}

	return user, nil
}

// FromUserID builds a context straight from the directory, for callers that
// authenticate out of band.
func (b *Builder) FromUserID(ctx context.Context, userID, sessionID string) (model.UserContext, error) {
	employee := b.lookup(ctx, userID)
	if employee == nil {
		return model.UserContext{}, fmt.Errorf("%w: %s", atrium_errors.ErrUserNotFound, userID)
	}

	orgID := employee.OrgID
	if orgID == "" {
		orgID = "default"
	}

	return model.UserContext{
		UserID:        userID,
		Role:          model.ParseRole(employee.Role),
		TeamID:        employee.TeamID,
		DepartmentID:  employee.DepartmentID,
		OrgID:         orgID,
		Email:         employee.Email,
		Name:          employee.Name,
		ManagerID:     employee.ManagerID,
		DirectReports: employee.DirectReports,
		ProjectIDs:    employee.ProjectIDs,
		SessionID:     sessionID,
	}, nil
}

// Anonymous is the context for unauthenticated callers: the most restrictive
// role and no org placement.
func (b *Builder) Anonymous(sessionID string) model.UserContext {
	return model.UserContext{
		UserID:    "anonymous",
		Role:      model.RoleNewHire,
		SessionID: sessionID,
	}
}

// lookup resolves a directory record through the cache. Every failure is
// logged and treated as a miss.
func (b *Builder) lookup(ctx context.Context, userID string) *model.Employee {
	if b.cache != nil {
		employee, err := b.cache.GetEmployee(ctx, userID)
		if err != nil {
			logger.Warn("Employee cache lookup failed",
				zap.String("userID", userID),
				zap.Error(err))
		} else if employee != nil {
			return employee
		}
	}

	if b.directory == nil {
		return nil
	}

	employee, err := b.directory.GetEmployee(ctx, userID)
	if err != nil {
		if !errors.Is(err, atrium_errors.ErrUserNotFound) {
			logger.Warn("Directory lookup failed",
				zap.String("userID", userID),
				zap.Error(err))
		}
		return nil
	}

	if b.cache != nil && employee != nil {
		if err := b.cache.SetEmployee(ctx, *employee); err != nil {
			logger.Warn("Employee cache write failed",
				zap.String("userID", userID),
				zap.Error(err))
		}
	}
	return employee
}

func stringClaim(claims map[string]any, key string) string {
	value, _ := claims[key].(string)
	return value
}
