// rbac/redact_test.go
package rbac_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	logger "github.com/atriumhq/atrium/logging"
	"github.com/atriumhq/atrium/model"
)

func TestRedactSensitiveFields(t *testing.T) {
	logger.InitTestLogger()
	guard := newTestGuard(t, nil)

	payload := map[string]any{
		"name":            "Jordan Li",
		"base_salary_usd": 150000,
		"metadata": map[string]any{
			"personal_email": "jordan@home.example",
			"tenure_years":   3,
		},
		"contacts": []any{
			map[string]any{"phone_number": "555-0101", "slack": "@jordan"},
		},
	}

	redacted := guard.RedactSensitiveFields(platformUser(model.RoleContributor), payload)

	assert.Equal(t, "Jordan Li", redacted["name"])
	assert.Equal(t, "[REDACTED]", redacted["base_salary_usd"])

	metadata := redacted["metadata"].(map[string]any)
	assert.Equal(t, "[REDACTED]", metadata["personal_email"])
	assert.Equal(t, 3, metadata["tenure_years"])

	contact := redacted["contacts"].([]any)[0].(map[string]any)
	assert.Equal(t, "[REDACTED]", contact["phone_number"])
	assert.Equal(t, "@jordan", contact["slack"])

	// The caller's payload is copied, never rewritten.
	assert.Equal(t, 150000, payload["base_salary_usd"])
	assert.Equal(t, "jordan@home.example", payload["metadata"].(map[string]any)["personal_email"])
}

func TestRedactSensitiveFields_LeadershipSeesEverything(t *testing.T) {
	logger.InitTestLogger()
	guard := newTestGuard(t, nil)

	payload := map[string]any{"salary": 200000, "ssn": "123-45-6789"}

	redacted := guard.RedactSensitiveFields(platformUser(model.RoleLeadership), payload)
	assert.Equal(t, payload, redacted)

	redacted = guard.RedactSensitiveFields(platformUser(model.RoleExecutive), payload)
	assert.Equal(t, 200000, redacted["salary"])
}

func TestRedactSensitiveFields_ExtraFields(t *testing.T) {
	logger.InitTestLogger()
	guard := newTestGuard(t, nil)

	payload := map[string]any{
		"badge_code": "B-7741",
		"desk":       "4F-12",
	}

	redacted := guard.RedactSensitiveFields(platformUser(model.RoleManager), payload, "badge_code")
	assert.Equal(t, "[REDACTED]", redacted["badge_code"])
	assert.Equal(t, "4F-12", redacted["desk"])
}

func TestRedactSensitiveFields_MapSlices(t *testing.T) {
	logger.InitTestLogger()
	guard := newTestGuard(t, nil)

	payload := map[string]any{
		"reports": []map[string]any{
			{"name": "A", "compensation_band": "L4"},
			{"name": "B", "home_address": "12 Elm St"},
		},
	}

	redacted := guard.RedactSensitiveFields(platformUser(model.RoleNewHire), payload)
	reports := redacted["reports"].([]map[string]any)
	assert.Equal(t, "[REDACTED]", reports[0]["compensation_band"])
	assert.Equal(t, "A", reports[0]["name"])
	assert.Equal(t, "[REDACTED]", reports[1]["home_address"])
}
