// rbac/guard.go
package rbac

import (
	"context"

	"go.uber.org/zap"

	atrium_errors "github.com/atriumhq/atrium/errors"
	logger "github.com/atriumhq/atrium/logging"
	"github.com/atriumhq/atrium/model"
)

// AuditRecorder receives every decision the guard makes. Implementations
// must not block; the guard sits on the request path.
type AuditRecorder interface {
	RecordDecision(ctx context.Context, user model.UserContext, decision model.AccessDecision)
}

// Guard wraps the policy engine with decision auditing and the
// response-shaping helpers the chat surface needs. All enforcement funnels
// through CheckAccess so every decision is logged and recorded exactly once.
type Guard struct {
	engine   *Engine
	recorder AuditRecorder
}

// NewGuard creates a guard over the given engine. recorder may be nil, in
// which case decisions are only logged.
func NewGuard(engine *Engine, recorder AuditRecorder) *Guard {
	return &Guard{engine: engine, recorder: recorder}
}

// Engine exposes the underlying policy engine for introspection endpoints.
func (g *Guard) Engine() *Engine {
	return g.engine
}

// CheckAccess evaluates the request against the policy set and records the
// decision. It never returns an error: absence of a grant is a deny, not a
// fault.
func (g *Guard) CheckAccess(ctx context.Context, user model.UserContext, resource model.ResourceType, required model.AccessLevel, attrs map[string]any) model.AccessDecision {
	decision := g.engine.Evaluate(user, resource, required, attrs)

	logger.Info("access decision",
		zap.Bool("allowed", decision.Allowed),
		zap.String("userID", user.UserID),
		zap.String("role", user.Role.String()),
		zap.String("resource", string(resource)),
		zap.String("reason", decision.Reason),
		zap.String("policyID", decision.PolicyID),
	)

	if g.recorder != nil {
		g.recorder.RecordDecision(ctx, user, decision)
	}
	return decision
}

// RequireAccess is CheckAccess for callers that treat denial as an error.
// The returned error unwraps to ErrAccessDenied.
func (g *Guard) RequireAccess(ctx context.Context, user model.UserContext, resource model.ResourceType, required model.AccessLevel, attrs map[string]any) (model.AccessDecision, error) {
	decision := g.CheckAccess(ctx, user, resource, required, attrs)
	if !decision.Allowed {
		return decision, &atrium_errors.AccessDeniedError{
			Resource: string(resource),
			PolicyID: decision.PolicyID,
			Reason:   decision.Reason,
		}
	}
	return decision, nil
}

// CanViewEmployeeData reports whether user may see the directory record of
// targetID. targetTeamID may be empty when the caller does not know it.
func (g *Guard) CanViewEmployeeData(ctx context.Context, user model.UserContext, targetID, targetTeamID string) bool {
	switch {
	case user.UserID == targetID:
		return true
	case user.Role == model.RoleExecutive:
		return true
	case user.Role == model.RoleManager && user.IsManagerOf(targetID):
		return true
	case targetTeamID != "" && user.TeamID == targetTeamID:
		return true
	case user.Role == model.RoleLeadership:
		decision := g.CheckAccess(ctx, user, model.ResourceTeamMembers, model.AccessRead, map[string]any{
			"team_id": targetTeamID,
		})
		return decision.Allowed
	}
	return false
}
