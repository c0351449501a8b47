// rbac/redact.go
package rbac

import (
	"strings"

	"github.com/atriumhq/atrium/model"
)

// sensitiveFields are matched as substrings of lowercased map keys.
var sensitiveFields = []string{
	"salary",
	"compensation",
	"ssn",
	"social_security",
	"bank_account",
	"personal_email",
	"home_address",
	"phone_number",
}

const maxRedactDepth = 10

// RedactSensitiveFields returns a copy of payload with sensitive values
// replaced by "[REDACTED]". Roles at leadership and above see the payload
// unchanged. Nested maps and slices are walked up to a fixed depth;
// extraFields extends the match list for a single call.
func (g *Guard) RedactSensitiveFields(user model.UserContext, payload map[string]any, extraFields ...string) map[string]any {
	if user.Role.AtLeast(model.RoleLeadership) {
		return payload
	}
	fields := sensitiveFields
	if len(extraFields) > 0 {
		fields = append(append([]string{}, sensitiveFields...), extraFields...)
	}
	redacted, _ := redactValue(payload, fields, 0).(map[string]any)
	return redacted
}

func redactValue(value any, fields []string, depth int) any {
	if depth > maxRedactDepth {
		return value
	}
	switch v := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, val := range v {
			if sensitiveKey(key, fields) {
				out[key] = "[REDACTED]"
				continue
			}
			out[key] = redactValue(val, fields, depth+1)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = redactValue(item, fields, depth+1)
		}
		return out
	case []map[string]any:
		out := make([]map[string]any, len(v))
		for i, item := range v {
			out[i], _ = redactValue(item, fields, depth+1).(map[string]any)
		}
		return out
	default:
		return value
	}
}

func sensitiveKey(key string, fields []string) bool {
	lower := strings.ToLower(key)
	for _, field := range fields {
		if strings.Contains(lower, field) {
			return true
		}
	}
	return false
}
