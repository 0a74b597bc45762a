package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fterranova/venture-playbooks/internal/agents"
	"github.com/fterranova/venture-playbooks/internal/observability"
	"github.com/fterranova/venture-playbooks/internal/report"
	"github.com/fterranova/venture-playbooks/internal/storage"
	"github.com/fterranova/venture-playbooks/pkg/models"
)

// responseKeys maps each category's questions, in bank order, to the dotted
// knowledge key the answer is stored under. Answers feed the agents through
// the shared knowledge store rather than being re-parsed from the responses.
var responseKeys = map[models.QuestionCategory][]string{
	models.ProblemClarity: {
		"problem_clarity.problem",
		"target_market.audience",
		"problem_clarity.pain_level",
		"problem_clarity.current_alternatives",
		"problem_clarity.cost_of_problem",
	},
	models.MarketContext: {
		"market_context.industry",
		"market_context.trends",
		"market_context.competitors",
		"market_context.regulations",
		"market_context.technology_shift",
	},
	models.SolutionUniqueness: {
		"solution.approach",
		"solution.unique_value",
		"solution.key_benefits",
		"solution.competitive_advantage",
		"solution.customer_preference",
	},
	models.ScalePotential: {
		"market_context.market_size",
		"financial_data.pricing_approach",
		"financial_data.willingness_to_pay",
		"market_context.customer_count",
		"market_context.growth_potential",
	},
	models.ExecutionReadiness: {
		"execution.founder_background",
		"execution.resources",
		"execution.timeline",
		"execution.risks",
		"execution.needs",
	},
}

// exportFileName is the markdown document the assessment is exported as.
const exportFileName = "vision_opportunity_assessment.md"

// AssessmentSession orchestrates one founder assessment end to end: the
// questioning loop, the shared knowledge store, the playbook coordinator,
// agent runs under a cost budget, and wholesale persistence. All operations
// run on the caller's goroutine; the session is not safe for concurrent use.
type AssessmentSession struct {
	cfg       models.GlobalConfig
	state     *models.SessionState
	store     storage.SessionStore
	knowledge storage.KnowledgeStore
	monitor   *Monitor
	questions *QuestionGenerator
	coord     *Coordinator
	budget    *BudgetTracker
	events    observability.EventLog
	now       func() time.Time
}

// NewAssessmentSession loads (or starts) a session from the store and wires
// the coordinator, monitor, and budget over it. A corrupt session file is
// reported through the returned warning and the session starts fresh.
func NewAssessmentSession(cfg models.GlobalConfig, store storage.SessionStore, events observability.EventLog) (*AssessmentSession, string, error) {
	var warning string
	state, err := store.Load()
	if err != nil {
		if !errors.Is(err, storage.ErrCorruptState) {
			return nil, "", fmt.Errorf("starting session: %w", err)
		}
		warning = fmt.Sprintf("session file could not be read, starting fresh: %v", err)
	}

	knowledge := storage.NewKnowledgeStore()
	knowledge.Replace(state.Knowledge, state.History)

	graph, err := NewDefaultGraph()
	if err != nil {
		return nil, "", fmt.Errorf("starting session: %w", err)
	}
	coord, err := NewCoordinator(graph, knowledge, state)
	if err != nil {
		return nil, "", fmt.Errorf("starting session: %w", err)
	}

	questions := NewQuestionGenerator()
	questions.SeedFromResponses(state)

	budget := NewBudgetTracker(cfg)
	// Preload costs already spent in a resumed session. An already spent
	// budget surfaces on the next Charge, not at load time.
	_ = budget.Charge(state.Cost)

	if events == nil {
		events = observability.NopEventLog{}
	}

	return &AssessmentSession{
		cfg:       cfg,
		state:     state,
		store:     store,
		knowledge: knowledge,
		monitor:   NewMonitor(state),
		questions: questions,
		coord:     coord,
		budget:    budget,
		events:    events,
		now:       time.Now,
	}, warning, nil
}

// State exposes the underlying session state for read-only display.
func (s *AssessmentSession) State() *models.SessionState { return s.state }

// Monitor exposes the completion monitor.
func (s *AssessmentSession) Monitor() *Monitor { return s.monitor }

// Coordinator exposes the playbook coordinator.
func (s *AssessmentSession) Coordinator() *Coordinator { return s.coord }

// Budget exposes the cost tracker.
func (s *AssessmentSession) Budget() *BudgetTracker { return s.budget }

// Knowledge exposes the shared knowledge store.
func (s *AssessmentSession) Knowledge() storage.KnowledgeStore { return s.knowledge }

// NextQuestion returns the next question to present, or ok=false when the
// session has left the gathering phase or the bank is exhausted.
func (s *AssessmentSession) NextQuestion() (models.Question, bool) {
	q, ok := s.questions.NextQuestion(s.monitor, s.state)
	if ok {
		s.logEvent("INFO", observability.EventQuestionAsked, q.Text, map[string]any{
			"question_id": q.ID,
			"category":    string(q.Category),
		})
	}
	return q, ok
}

// RecordResponse records an answer, syncs it into the shared knowledge
// store under the question's mapped key, and fires any dependency edges the
// write triggers.
func (s *AssessmentSession) RecordResponse(question models.Question, response string) error {
	response = strings.TrimSpace(response)
	if response == "" {
		return fmt.Errorf("recording response: empty answer for %s", question.ID)
	}

	// The knowledge key is positional: the answer to a category's nth
	// question lands under that category's nth key.
	index := 0
	for _, r := range s.state.Responses {
		if r.Category == question.Category {
			index++
		}
	}

	if err := s.monitor.RecordResponse(question, response); err != nil {
		return err
	}

	if keys := responseKeys[question.Category]; index < len(keys) {
		s.coord.SetKnowledge(keys[index], response, models.VisionOpportunity)
		s.logEvent("INFO", observability.EventKnowledgeUpdated, "answer stored", map[string]any{
			"key": keys[index],
		})
	}

	s.logEvent("INFO", observability.EventResponseRecorded, "response recorded", map[string]any{
		"question_id": question.ID,
		"category":    string(question.Category),
		"phase":       string(s.state.Phase),
	})
	return nil
}

// SkipAvailable reports whether the founder may cut the questionnaire short.
func (s *AssessmentSession) SkipAvailable() bool { return s.monitor.SkipAvailable() }

// AcceptSkip moves the session to SUFFICIENT on the founder's request.
func (s *AssessmentSession) AcceptSkip() error {
	if err := s.monitor.AcceptSkip(); err != nil {
		return err
	}
	s.logEvent("INFO", observability.EventSkipAccepted, "questionnaire skipped", map[string]any{
		"questions_asked": s.state.QuestionsAsked,
	})
	return nil
}

// GenerateAssessment finalizes the session, runs the vision and opportunity
// agents over the gathered knowledge, charges the budget, and renders the
// full markdown report. A budget spent before the agents run halts them and
// the document carries the partial-result note; a budget that trips on the
// generation charge still yields the full document. Either way the call
// returns ErrBudgetExceeded alongside the content. Calling it again on a
// finished session re-renders the identical document without charging.
func (s *AssessmentSession) GenerateAssessment() (string, error) {
	if err := s.monitor.Finalize(); err != nil {
		return "", err
	}
	s.logEvent("INFO", observability.EventPhaseChanged, "session finalizing", map[string]any{
		"phase": string(s.state.Phase),
	})

	firstRun := s.state.Playbooks[models.VisionOpportunity].Status != models.PlaybookComplete

	budgetErr := s.budget.Exceeded()
	if firstRun && budgetErr != nil {
		s.logEvent("WARN", observability.EventBudgetExceeded, budgetErr.Error(), map[string]any{
			"playbook": string(models.VisionOpportunity),
		})
		content := report.Render(s.state, agents.VisionOpportunityComponents{}, s.monitor.Overall(), true)
		return content, budgetErr
	}

	// The component build is deterministic for a given session, so a
	// re-render recomputes it instead of reading back stored artifacts.
	comps, err := agents.GenerateComponents(s.knowledge, s.state.Started)
	if err != nil {
		return "", fmt.Errorf("generating assessment: %w", err)
	}

	if firstRun {
		budgetErr = s.budget.Charge(comps.Cost)
		if budgetErr != nil {
			s.logEvent("WARN", observability.EventBudgetExceeded, budgetErr.Error(), map[string]any{
				"tokens_used": s.budget.Used().TokensUsed,
				"api_calls":   s.budget.Used().APICalls,
			})
		}
		s.state.Cost.Add(comps.Cost)

		artifacts := map[string]string{
			"vision_statement": agents.RenderVisionMarkdown(comps.Vision),
			"tam_calculation":  agents.RenderTAMMarkdown(comps.TAM),
			"timing_analysis":  agents.RenderTimingMarkdown(comps.Timing),
			"exit_strategy":    agents.RenderExitMarkdown(comps.Exit),
		}
		if err := s.coord.UpdateProgress(models.VisionOpportunity, 1.0, artifacts); err != nil {
			return "", fmt.Errorf("generating assessment: %w", err)
		}
		s.coord.ProcessPendingUpdates()
		for name := range artifacts {
			s.logEvent("INFO", observability.EventArtifactGenerated, name, map[string]any{
				"playbook": string(models.VisionOpportunity),
			})
		}
	}

	content := report.Render(s.state, comps, s.monitor.Overall(), budgetErr != nil)
	if missing := report.Validate(content); len(missing) > 0 {
		return content, fmt.Errorf("generating assessment: document missing sections: %s",
			strings.Join(missing, ", "))
	}
	return content, budgetErr
}

// RunPlaybook executes the agent for one playbook, charges the budget, and
// records the produced artifacts through the coordinator. A playbook whose
// REQUIRES edges are unmet returns an error naming the blockers; a session
// whose budget is already spent refuses to run the agent at all.
func (s *AssessmentSession) RunPlaybook(pb models.PlaybookType) ([]agents.Artifact, error) {
	if !models.IsValidPlaybook(pb) {
		return nil, fmt.Errorf("running playbook: unknown playbook %q", pb)
	}
	if !s.coord.Unlocked(pb) {
		blocked := s.state.Playbooks[pb].BlockedBy
		return nil, fmt.Errorf("running playbook: %s is blocked by %v", pb, blocked)
	}
	if err := s.budget.Exceeded(); err != nil {
		s.logEvent("WARN", observability.EventBudgetExceeded, err.Error(), map[string]any{
			"playbook": string(pb),
		})
		return nil, fmt.Errorf("running playbook %s: %w", pb, err)
	}

	agent, ok := agents.ForPlaybook(pb, s.state.Started)
	if !ok {
		return nil, fmt.Errorf("running playbook: no agent for %q", pb)
	}

	produced, err := agent.ProduceArtifacts(s.knowledge)
	if err != nil {
		return nil, fmt.Errorf("running playbook %s: %w", pb, err)
	}

	var spent models.CostMetrics
	artifacts := make(map[string]string, len(produced))
	for _, a := range produced {
		artifacts[a.Name] = a.Markdown
		spent.Add(a.Cost)
	}
	s.state.Cost.Add(spent)

	budgetErr := s.budget.Charge(spent)
	if budgetErr != nil {
		s.logEvent("WARN", observability.EventBudgetExceeded, budgetErr.Error(), map[string]any{
			"playbook": string(pb),
		})
	}

	if err := s.coord.UpdateProgress(pb, 1.0, artifacts); err != nil {
		return nil, fmt.Errorf("running playbook %s: %w", pb, err)
	}
	s.coord.ProcessPendingUpdates()

	for _, a := range produced {
		s.logEvent("INFO", observability.EventArtifactGenerated, a.Name, map[string]any{
			"playbook": string(pb),
		})
	}
	return produced, budgetErr
}

// ExportPath returns the path the assessment is exported to.
func (s *AssessmentSession) ExportPath() string {
	dir := s.cfg.ExportDirectory
	if dir == "" {
		dir = "."
	}
	return filepath.Join(dir, exportFileName)
}

// Export writes the rendered assessment to the configured export directory
// and returns the file path.
func (s *AssessmentSession) Export(content string) (string, error) {
	dir := s.cfg.ExportDirectory
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("exporting assessment: %w", err)
	}
	path := filepath.Join(dir, exportFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("exporting assessment: %w", err)
	}
	s.logEvent("INFO", observability.EventReportExported, "assessment exported", map[string]any{
		"path": path,
	})
	return path, nil
}

// Save persists the full session state wholesale, folding the knowledge
// store contents back into the state first.
func (s *AssessmentSession) Save() error {
	s.state.Knowledge = s.knowledge.Entries()
	s.state.History = s.knowledge.History()

	if err := s.store.Save(s.state); err != nil {
		return err
	}
	s.logEvent("INFO", observability.EventSessionSaved, "session saved", map[string]any{
		"path":            s.store.Path(),
		"questions_asked": s.state.QuestionsAsked,
	})
	return nil
}

func (s *AssessmentSession) logEvent(level, eventType, msg string, data map[string]any) {
	// Event log failures never interrupt the session.
	_ = s.events.Write(observability.Event{
		Time:    s.now().UTC(),
		Level:   level,
		Type:    eventType,
		Message: msg,
		Data:    data,
	})
}
