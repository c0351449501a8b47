// rbac/engine.go
package rbac

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	atrium_errors "github.com/atriumhq/atrium/errors"
	logger "github.com/atriumhq/atrium/logging"
	"github.com/atriumhq/atrium/model"
)

// Engine holds the policy registry and evaluates access requests against
// it. The registry is populated at startup and read-mostly afterwards:
// registration and removal are serialized behind the write lock while
// evaluations share the read lock. Decisions are never cached; role, team,
// and ownership attributes can change between calls and a stale decision
// would silently over- or under-grant.
type Engine struct {
	mu               sync.RWMutex
	policies         map[string]model.AccessPolicy
	rolePolicies     map[model.Role][]model.AccessPolicy
	resourcePolicies map[model.ResourceType][]model.AccessPolicy
}

// NewEngine creates an empty registry. Most callers want NewDefaultEngine.
func NewEngine() *Engine {
	return &Engine{
		policies:         make(map[string]model.AccessPolicy),
		rolePolicies:     make(map[model.Role][]model.AccessPolicy),
		resourcePolicies: make(map[model.ResourceType][]model.AccessPolicy),
	}
}

// NewDefaultEngine creates a registry loaded with the production policy
// set.
func NewDefaultEngine() (*Engine, error) {
	e := NewEngine()
	for _, p := range DefaultPolicies() {
		if err := e.Register(p); err != nil {
			return nil, fmt.Errorf("register default policy %s: %w", p.ID, err)
		}
	}
	logger.Info("Access policies initialized", zap.Int("policyCount", e.PolicyCount()))
	return e, nil
}

// Register adds a policy to both indexes. Malformed policies are rejected
// here so that a correctly registered set never faults during evaluation.
func (e *Engine) Register(p model.AccessPolicy) error {
	if p.ID == "" {
		return fmt.Errorf("%w: empty policy id", atrium_errors.ErrInvalidPolicyData)
	}
	if !p.Role.Valid() {
		return fmt.Errorf("%w: policy %s role %d", atrium_errors.ErrUnknownRole, p.ID, p.Role)
	}
	if !p.Resource.Valid() {
		return fmt.Errorf("%w: policy %s resource %q", atrium_errors.ErrUnknownResource, p.ID, p.Resource)
	}
	if !p.AccessLevel.Valid() {
		return fmt.Errorf("%w: policy %s level %d", atrium_errors.ErrUnknownAccessLevel, p.ID, p.AccessLevel)
	}
	if p.Conditions.MaxHierarchyDepth < 0 {
		return fmt.Errorf("%w: policy %s negative hierarchy depth", atrium_errors.ErrInvalidPolicyData, p.ID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, exists := e.policies[p.ID]; exists {
		return fmt.Errorf("%w: %s", atrium_errors.ErrDuplicatePolicy, p.ID)
	}

	e.policies[p.ID] = p
	e.rolePolicies[p.Role] = append(e.rolePolicies[p.Role], p)
	e.resourcePolicies[p.Resource] = append(e.resourcePolicies[p.Resource], p)
	return nil
}

// Unregister removes a policy from both indexes.
func (e *Engine) Unregister(policyID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, exists := e.policies[policyID]
	if !exists {
		return fmt.Errorf("%w: %s", atrium_errors.ErrPolicyNotFound, policyID)
	}

	delete(e.policies, policyID)
	e.rolePolicies[p.Role] = removePolicy(e.rolePolicies[p.Role], policyID)
	e.resourcePolicies[p.Resource] = removePolicy(e.resourcePolicies[p.Resource], policyID)
	return nil
}

func removePolicy(policies []model.AccessPolicy, policyID string) []model.AccessPolicy {
	for i, p := range policies {
		if p.ID == policyID {
			return append(policies[:i], policies[i+1:]...)
		}
	}
	return policies
}

// PolicyCount reports the number of registered policies.
func (e *Engine) PolicyCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.policies)
}

// Evaluate decides an access request. It never fails for a well-formed
// request: unresolvable requests yield a deny with a human-readable reason.
func (e *Engine) Evaluate(ctx model.UserContext, resource model.ResourceType, required model.AccessLevel, attrs map[string]any) model.AccessDecision {
	return e.EvaluateAt(ctx, resource, required, attrs, time.Now().UTC())
}

// EvaluateAt is Evaluate with the decision time supplied by the caller,
// which keeps evaluation a pure function of its inputs.
func (e *Engine) EvaluateAt(ctx model.UserContext, resource model.ResourceType, required model.AccessLevel, attrs map[string]any, now time.Time) model.AccessDecision {
	// Copy the attributes before defaulting owner_id; the caller's map is
	// never touched.
	merged := make(map[string]any, len(attrs)+1)
	for k, v := range attrs {
		merged[k] = v
	}
	if _, ok := merged["owner_id"]; !ok {
		merged["owner_id"] = ctx.UserID
	}

	e.mu.RLock()
	candidates := e.applicablePolicies(ctx, resource)
	e.mu.RUnlock()

	if len(candidates) == 0 {
		decision := model.DenyDecision(
			fmt.Sprintf("No policies found for role %s on resource %s", ctx.Role, resource),
			resource,
		)
		decision.DecisionTime = now
		return decision
	}

	// Stable sort keeps registration order among equal priorities.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority > candidates[j].Priority
	})

	for _, policy := range candidates {
		if !policy.Matches(ctx, merged) {
			continue
		}

		// The first policy whose conditions hold is terminal: a matched
		// grant at an insufficient level falls straight through to the
		// final deny instead of searching lower-priority policies.
		if policy.AccessLevel == model.AccessNone {
			decision := model.DenyDecision(
				fmt.Sprintf("Access denied by policy %s", policy.ID),
				resource,
			)
			decision.DecisionTime = now
			return decision
		}

		if policy.Allows(required) {
			decision := model.AllowDecision(policy.ID, resource, policy.AccessLevel, policy.ScopeFilters(ctx))
			decision.DecisionTime = now
			decision.ContextSnapshot = ctx.Snapshot()

			logger.Debug("Access granted",
				zap.String("userID", ctx.UserID),
				zap.String("role", ctx.Role.String()),
				zap.String("resource", resource.String()),
				zap.String("policyID", policy.ID))
			return decision
		}

		break
	}

	decision := model.DenyDecision(
		fmt.Sprintf("No policy grants %s access to %s", required, resource),
		resource,
	)
	decision.DecisionTime = now
	return decision
}

// applicablePolicies collects the caller's direct policies for the
// resource plus, for Leadership and above, every strictly-lower-role
// policy synthesized as an inherited, condition-stripped grant. Higher
// ranks receive the unscoped union of lower grants. Callers must hold the
// read lock; the returned slice is fresh and safe to use after release.
func (e *Engine) applicablePolicies(ctx model.UserContext, resource model.ResourceType) []model.AccessPolicy {
	var policies []model.AccessPolicy

	for _, p := range e.resourcePolicies[resource] {
		if p.Role == ctx.Role && p.Enabled {
			policies = append(policies, p)
		}
	}

	if ctx.Role.AtLeast(model.RoleLeadership) {
		for _, p := range e.resourcePolicies[resource] {
			if ctx.Role.Outranks(p.Role) && p.Enabled {
				policies = append(policies, p.Inherited(ctx.Role))
			}
		}
	}

	return policies
}

// CheckQuick reports only the boolean outcome of an evaluation.
func (e *Engine) CheckQuick(ctx model.UserContext, resource model.ResourceType, required model.AccessLevel) bool {
	return e.Evaluate(ctx, resource, required, nil).Allowed
}

// PermissionsForRole lists a role's effective grants for introspection
// payloads: its own policies plus, for Leadership and above, the inherited
// unscoped set.
func (e *Engine) PermissionsForRole(role model.Role) []model.Permission {
	e.mu.RLock()
	defer e.mu.RUnlock()

	var permissions []model.Permission
	for _, p := range e.rolePolicies[role] {
		if !p.Enabled {
			continue
		}
		permissions = append(permissions, model.Permission{
			Resource:    p.Resource,
			AccessLevel: p.AccessLevel,
			Conditions:  p.Conditions,
			PolicyID:    p.ID,
		})
	}

	if role.AtLeast(model.RoleLeadership) {
		for lower := model.RoleNewHire; role.Outranks(lower); lower++ {
			for _, p := range e.rolePolicies[lower] {
				if !p.Enabled {
					continue
				}
				permissions = append(permissions, model.Permission{
					Resource:    p.Resource,
					AccessLevel: p.AccessLevel,
					PolicyID:    p.ID + "-inherited",
					Inherited:   true,
				})
			}
		}
	}

	return permissions
}
