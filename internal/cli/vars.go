package cli

import (
	"github.com/fterranova/venture-playbooks/internal/core"
	"github.com/fterranova/venture-playbooks/internal/observability"
	"github.com/fterranova/venture-playbooks/pkg/models"
)

// Service instances, set during app initialization in app.go.
var (
	BasePath string
	Config   *models.GlobalConfig
	Session  *core.AssessmentSession
	EventLog observability.EventLog

	// StartupWarning carries a non-fatal load problem (e.g. a corrupt
	// session file) to be shown before the first command output.
	StartupWarning string
)
