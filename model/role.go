// model/role.go
package model

import (
	"encoding/json"
	"strings"
)

// Role is the organizational rank of a caller. Roles form a total order and
// the ordering is the sole basis for policy inheritance: a higher rank
// receives the unscoped union of every lower rank's grants.
type Role int

const (
	RoleNewHire Role = iota + 1
	RoleContributor
	RoleManager
	RoleLeadership
	RoleExecutive
)

var roleNames = map[Role]string{
	RoleNewHire:     "new_hire",
	RoleContributor: "contributor",
	RoleManager:     "manager",
	RoleLeadership:  "leadership",
	RoleExecutive:   "executive",
}

// roleAliases maps every accepted role string, lowercased, to its rank.
// Unrecognized strings fall back to Contributor.
var roleAliases = map[string]Role{
	"new_hire":               RoleNewHire,
	"new_employee":           RoleNewHire,
	"intern":                 RoleNewHire,
	"contributor":            RoleContributor,
	"ic":                     RoleContributor,
	"individual_contributor": RoleContributor,
	"engineer":               RoleContributor,
	"employee":               RoleContributor,
	"manager":                RoleManager,
	"team_lead":              RoleManager,
	"lead":                   RoleManager,
	"leadership":             RoleLeadership,
	"director":               RoleLeadership,
	"vp":                     RoleLeadership,
	"vice_president":         RoleLeadership,
	"executive":              RoleExecutive,
	"ceo":                    RoleExecutive,
	"cto":                    RoleExecutive,
	"cfo":                    RoleExecutive,
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "unknown"
}

// Valid reports whether r is one of the five defined ranks.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// AtLeast reports whether r ranks at or above other.
func (r Role) AtLeast(other Role) bool {
	return r >= other
}

// Outranks reports whether r ranks strictly above other.
func (r Role) Outranks(other Role) bool {
	return r > other
}

// ParseRole resolves a role string against the fixed, case-insensitive
// vocabulary. Unrecognized values default to Contributor so a garbled role
// claim never grants elevated access.
func ParseRole(s string) Role {
	if role, ok := roleAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return role
	}
	return RoleContributor
}

func (r Role) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = ParseRole(s)
	return nil
}
