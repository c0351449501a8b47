// errors/policy_errors.go
package errors

import "errors"

var (
	ErrPolicyNotFound     = errors.New("policy not found")
	ErrDuplicatePolicy    = errors.New("duplicate policy id")
	ErrInvalidPolicyData  = errors.New("invalid policy data")
	ErrUnknownRole        = errors.New("unknown role")
	ErrUnknownResource    = errors.New("unknown resource type")
	ErrUnknownAccessLevel = errors.New("unknown access level")
	ErrInternalServer     = errors.New("internal server error")
)
