// model/access.go
package model

import (
	"encoding/json"
	"strings"
)

// AccessLevel orders the grant strength of a policy. Levels are compared
// numerically: None < Read < Write < Admin.
type AccessLevel int

const (
	AccessNone AccessLevel = iota
	AccessRead
	AccessWrite
	AccessAdmin
)

var accessLevelNames = map[AccessLevel]string{
	AccessNone:  "none",
	AccessRead:  "read",
	AccessWrite: "write",
	AccessAdmin: "admin",
}

var accessLevelValues = map[string]AccessLevel{
	"none":  AccessNone,
	"read":  AccessRead,
	"write": AccessWrite,
	"admin": AccessAdmin,
}

func (l AccessLevel) String() string {
	if name, ok := accessLevelNames[l]; ok {
		return name
	}
	return "none"
}

// Valid reports whether l is one of the four defined levels.
func (l AccessLevel) Valid() bool {
	_, ok := accessLevelNames[l]
	return ok
}

// Allows reports whether a grant at level l satisfies the required level.
func (l AccessLevel) Allows(required AccessLevel) bool {
	return l >= required
}

// ParseAccessLevel resolves a level string; the second return reports
// whether the string named a defined level.
func ParseAccessLevel(s string) (AccessLevel, bool) {
	level, ok := accessLevelValues[strings.ToLower(strings.TrimSpace(s))]
	return level, ok
}

func (l AccessLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.String())
}

func (l *AccessLevel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	level, _ := ParseAccessLevel(s)
	*l = level
	return nil
}

// Permission is one entry of a role's effective grant list, reported by the
// engine for bootstrap/introspection payloads.
type Permission struct {
	Resource    ResourceType `json:"resource"`
	AccessLevel AccessLevel  `json:"access_level"`
	Conditions  Conditions   `json:"conditions"`
	PolicyID    string       `json:"policy_id"`
	Inherited   bool         `json:"inherited,omitempty"`
}
