package service

import (
	"testing"

	"ops-collab-be/pkg/events"

	"github.com/stretchr/testify/assert"
)

func TestRenderTemplateSubstitutesPayload(t *testing.T) {
	body := renderTemplate("{title} moved from {from} to {to}", map[string]interface{}{
		"title": "Recon sweep",
		"from":  "open",
		"to":    "active",
	})

	assert.Equal(t, "Recon sweep moved from open to active", body)
}

func TestRenderTemplateLeavesUnknownPlaceholders(t *testing.T) {
	body := renderTemplate("Hello {name}", map[string]interface{}{"other": "x"})

	assert.Equal(t, "Hello {name}", body)
}

func TestRoutesCoverPublishedEventTypes(t *testing.T) {
	for _, eventType := range []string{
		events.ReportCreated,
		events.ReportDeleted,
		events.MissionCreated,
		events.MissionAssigned,
		events.MissionStatusChanged,
		events.UserRoleChanged,
	} {
		r, ok := routes[eventType]
		assert.True(t, ok, "missing route for %s", eventType)
		assert.NotEmpty(t, r.Title, "empty title for %s", eventType)
		assert.NotEmpty(t, r.Template, "empty template for %s", eventType)
	}
}

func TestOnlyAssignmentRouteSendsEmail(t *testing.T) {
	for eventType, r := range routes {
		if eventType == events.MissionAssigned {
			assert.True(t, r.SendEmail)
		} else {
			assert.False(t, r.SendEmail, "unexpected email route for %s", eventType)
		}
	}
}
