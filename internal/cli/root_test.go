package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fterranova/venture-playbooks/internal/core"
	"github.com/fterranova/venture-playbooks/internal/observability"
	"github.com/fterranova/venture-playbooks/internal/storage"
	"github.com/fterranova/venture-playbooks/pkg/models"
)

// withTestSession swaps the package-level service vars for a fresh session
// over temp directories, restoring the originals when the test ends.
func withTestSession(t *testing.T) *core.AssessmentSession {
	t.Helper()

	origSession := Session
	origConfig := Config
	t.Cleanup(func() {
		Session = origSession
		Config = origConfig
	})

	cfg := models.GlobalConfig{
		MaxTokens:          50000,
		MaxAPICalls:        200,
		MaxComputationTime: 600,
		CostWarnThreshold:  0.8,
		ExportDirectory:    t.TempDir(),
		AutoExport:         true,
	}
	store := storage.NewSessionStore(t.TempDir())
	session, warning, err := core.NewAssessmentSession(cfg, store, observability.NopEventLog{})
	if err != nil {
		t.Fatalf("NewAssessmentSession: %v", err)
	}
	if warning != "" {
		t.Fatalf("unexpected warning: %s", warning)
	}

	Config = &cfg
	Session = session
	return session
}

// answerUntilSufficient drives the questioning loop with canned answers until
// the session leaves the gathering phase.
func answerUntilSufficient(t *testing.T, s *core.AssessmentSession) {
	t.Helper()
	for s.Monitor().Phase() == models.PhaseGathering {
		q, ok := s.NextQuestion()
		if !ok {
			t.Fatal("question bank exhausted before sufficiency")
		}
		if err := s.RecordResponse(q, "canned answer for "+string(q.Category)); err != nil {
			t.Fatalf("RecordResponse: %v", err)
		}
	}
}

func TestSetVersionInfo(t *testing.T) {
	origVersion := appVersion
	origCommit := appCommit
	origDate := appDate
	defer func() {
		appVersion = origVersion
		appCommit = origCommit
		appDate = origDate
	}()

	origRootVersion := rootCmd.Version
	defer func() { rootCmd.Version = origRootVersion }()

	SetVersionInfo("1.2.3", "abc1234", "2026-02-13")

	if appVersion != "1.2.3" {
		t.Errorf("appVersion = %q, want 1.2.3", appVersion)
	}
	if appCommit != "abc1234" {
		t.Errorf("appCommit = %q, want abc1234", appCommit)
	}
	if appDate != "2026-02-13" {
		t.Errorf("appDate = %q, want 2026-02-13", appDate)
	}
	if rootCmd.Version != "1.2.3" {
		t.Errorf("rootCmd.Version = %q, want 1.2.3", rootCmd.Version)
	}
}

func TestConfigOverride(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"absent", []string{"status", "--debug"}, ""},
		{"separate value", []string{"--config", "/tmp/vpk", "status"}, "/tmp/vpk"},
		{"equals form", []string{"status", "--config=/tmp/vpk"}, "/tmp/vpk"},
		{"after terminator", []string{"status", "--", "--config", "/tmp/vpk"}, ""},
		{"dangling flag", []string{"status", "--config"}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ConfigOverride(tc.args); got != tc.want {
				t.Errorf("ConfigOverride(%v) = %q, want %q", tc.args, got, tc.want)
			}
		})
	}
}

func TestPersistentFlagsRegistered(t *testing.T) {
	for _, name := range []string{"debug", "config"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected persistent --%s flag", name)
		}
	}
}

func TestExecute_UnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs([]string{"nonexistent-command"})

	err := Execute()
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if !strings.Contains(err.Error(), "unknown command") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestCommandRegistration(t *testing.T) {
	want := []string{"version", "run", "status", "playbook", "validate", "demo", "dashboard", "mcp"}
	registered := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		registered[cmd.Name()] = true
	}
	for _, name := range want {
		if !registered[name] {
			t.Errorf("expected %q command to be registered", name)
		}
	}
}
