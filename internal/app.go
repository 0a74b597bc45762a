// Package internal provides the App struct that wires all components of the
// Venture Playbook Kit together and initializes the CLI layer.
package internal

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fterranova/venture-playbooks/internal/cli"
	"github.com/fterranova/venture-playbooks/internal/core"
	"github.com/fterranova/venture-playbooks/internal/observability"
	"github.com/fterranova/venture-playbooks/internal/storage"
	"github.com/fterranova/venture-playbooks/pkg/models"
)

// App holds all service dependencies for the Venture Playbook Kit.
type App struct {
	BasePath string

	// Configuration
	ConfigMgr core.ConfigurationManager
	Config    *models.GlobalConfig

	// Storage layer
	SessionStore storage.SessionStore

	// Core services
	Session *core.AssessmentSession

	// Observability
	EventLog observability.EventLog
}

// NewApp creates and wires all components of the Venture Playbook Kit.
// basePath is the directory holding the session file, the event log, and
// the optional .vpkconfig (typically the directory VPK_HOME points at or
// the nearest ancestor carrying a .vpkconfig).
func NewApp(basePath string) (*App, error) {
	app := &App{BasePath: basePath}

	// --- Configuration ---
	app.ConfigMgr = core.NewConfigurationManager(basePath)
	cfg, err := app.ConfigMgr.LoadGlobalConfig()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	app.Config = cfg

	// --- Observability ---
	eventLogPath := filepath.Join(basePath, ".vpk_events.jsonl")
	app.EventLog, err = observability.NewJSONLEventLog(eventLogPath)
	if err != nil {
		// Non-fatal: run without an event log if it can't be created.
		app.EventLog = observability.NopEventLog{}
	}

	// --- Session ---
	app.SessionStore = storage.NewSessionStore(basePath)
	session, warning, err := core.NewAssessmentSession(*cfg, app.SessionStore, app.EventLog)
	if err != nil {
		return nil, err
	}
	app.Session = session

	// --- Wire CLI package-level variables ---
	cli.BasePath = basePath
	cli.Config = app.Config
	cli.Session = app.Session
	cli.EventLog = app.EventLog
	cli.StartupWarning = warning

	return app, nil
}

// Close releases resources held by the App, such as the event log handle.
func (a *App) Close() error {
	if a.EventLog != nil {
		return a.EventLog.Close()
	}
	return nil
}

// ResolveBasePath determines the base path for the session data directory.
// A --config flag wins, then the VPK_HOME env var, then a walk up from the
// current directory looking for a .vpkconfig, falling back to the current
// directory. The flag may name the .vpkconfig file itself or the directory
// holding it.
func ResolveBasePath() string {
	if override := cli.ConfigOverride(os.Args[1:]); override != "" {
		if info, err := os.Stat(override); err == nil && !info.IsDir() {
			return filepath.Dir(override)
		}
		return override
	}
	if home := os.Getenv("VPK_HOME"); home != "" {
		return home
	}
	dir, err := os.Getwd()
	if err != nil {
		return "."
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".vpkconfig")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	cwd, _ := os.Getwd()
	return cwd
}
