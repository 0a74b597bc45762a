// Package mcp provides an MCP (Model Context Protocol) server that exposes
// the assessment session as MCP tools for AI coding assistants.
package mcp

import (
	"context"
	"fmt"
	"time"

	gomcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/fterranova/venture-playbooks/internal/core"
	"github.com/fterranova/venture-playbooks/pkg/models"
)

// Server wraps an assessment session and exposes it as MCP tools.
type Server struct {
	server  *gomcp.Server
	session *core.AssessmentSession

	// issued tracks questions handed out through next_question so that
	// record_answer can resolve the question by its identifier.
	issued map[string]models.Question
}

// NewServer creates a new MCP server over the given session.
func NewServer(session *core.AssessmentSession, version string) *Server {
	if version == "" {
		version = "dev"
	}

	s := &Server{
		session: session,
		issued:  make(map[string]models.Question),
	}

	s.server = gomcp.NewServer(
		&gomcp.Implementation{Name: "vpk", Version: version},
		nil,
	)

	s.registerTools()

	return s
}

// Run starts the MCP server on stdio, blocking until the client disconnects
// or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &gomcp.StdioTransport{})
}

// MCPServer returns the underlying mcp.Server for testing purposes.
func (s *Server) MCPServer() *gomcp.Server {
	return s.server
}

// --- Tool input/output types ---

type getStatusInput struct{}

type categoryStatusOutput struct {
	Category string  `json:"category"`
	Progress float64 `json:"progress"`
	Status   string  `json:"status"`
}

type playbookStatusOutput struct {
	Playbook        string   `json:"playbook"`
	Status          string   `json:"status"`
	Progress        float64  `json:"progress"`
	DependenciesMet bool     `json:"dependencies_met"`
	BlockedBy       []string `json:"blocked_by,omitempty"`
}

type getStatusOutput struct {
	SessionID       string                 `json:"session_id"`
	Phase           string                 `json:"phase"`
	QuestionsAsked  int                    `json:"questions_asked"`
	Overall         float64                `json:"overall_completion"`
	Categories      []categoryStatusOutput `json:"categories"`
	Playbooks       []playbookStatusOutput `json:"playbooks"`
	KnowledgeItems  int                    `json:"knowledge_items"`
	PendingUpdates  int                    `json:"pending_updates"`
	TokensUsed      int                    `json:"tokens_used"`
	APICalls        int                    `json:"api_calls"`
	ComputationTime float64                `json:"computation_time_seconds"`
}

type getKnowledgeInput struct {
	Key string `json:"key,omitempty" jsonschema:"dotted knowledge key to fetch (e.g. problem_clarity.problem); omit to list all keys"`
}

type knowledgeEntryOutput struct {
	Key     string `json:"key"`
	Value   any    `json:"value,omitempty"`
	Source  string `json:"source,omitempty"`
	Updated string `json:"updated,omitempty"`
}

type getKnowledgeOutput struct {
	Entries []knowledgeEntryOutput `json:"entries"`
	Count   int                    `json:"count"`
}

type nextQuestionInput struct{}

type nextQuestionOutput struct {
	QuestionID string `json:"question_id,omitempty"`
	Text       string `json:"text,omitempty"`
	Category   string `json:"category,omitempty"`
	Rationale  string `json:"rationale,omitempty"`
	SkipOption bool   `json:"skip_option,omitempty"`
	Done       bool   `json:"done"`
}

type recordAnswerInput struct {
	QuestionID string `json:"question_id" jsonschema:"required,the identifier returned by next_question"`
	Answer     string `json:"answer" jsonschema:"required,the founder's answer text"`
}

type recordAnswerOutput struct {
	Phase   string  `json:"phase"`
	Overall float64 `json:"overall_completion"`
	Message string  `json:"message"`
}

type runPlaybookInput struct {
	Playbook string `json:"playbook" jsonschema:"required,the playbook to run (e.g. customer_discovery, business_model)"`
}

type artifactOutput struct {
	Name     string `json:"name"`
	Markdown string `json:"markdown"`
}

type runPlaybookOutput struct {
	Playbook  string           `json:"playbook"`
	Artifacts []artifactOutput `json:"artifacts"`
	Count     int              `json:"count"`
	Warning   string           `json:"warning,omitempty"`
}

type generateAssessmentInput struct{}

type generateAssessmentOutput struct {
	Document string `json:"document"`
	Warning  string `json:"warning,omitempty"`
}

// --- Tool registration ---

func (s *Server) registerTools() {
	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_status",
		Description: "Get session status: phase, category completion, playbook unlock state, and budget consumption.",
	}, s.handleGetStatus)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "get_knowledge",
		Description: "Read the shared knowledge store. Pass a key for one entry or omit it to list every key.",
	}, s.handleGetKnowledge)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "next_question",
		Description: "Get the next questionnaire question. Returns done=true once the session has gathered enough.",
	}, s.handleNextQuestion)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "record_answer",
		Description: "Record the founder's answer to a question previously returned by next_question.",
	}, s.handleRecordAnswer)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "run_playbook",
		Description: "Run one playbook's agent over the gathered knowledge. Blocked playbooks are rejected with their blockers named.",
	}, s.handleRunPlaybook)

	gomcp.AddTool(s.server, &gomcp.Tool{
		Name:        "generate_assessment",
		Description: "Finalize the session and render the full Vision & Opportunity assessment document.",
	}, s.handleGenerateAssessment)
}

// --- Tool handlers ---

func (s *Server) handleGetStatus(_ context.Context, _ *gomcp.CallToolRequest, _ getStatusInput) (*gomcp.CallToolResult, getStatusOutput, error) {
	state := s.session.State()
	summary := s.session.Coordinator().Summary()
	used := s.session.Budget().Used()

	out := getStatusOutput{
		SessionID:       state.SessionID,
		Phase:           string(state.Phase),
		QuestionsAsked:  state.QuestionsAsked,
		Overall:         s.session.Monitor().Overall(),
		KnowledgeItems:  summary.KnowledgeItems,
		PendingUpdates:  summary.PendingUpdates,
		TokensUsed:      used.TokensUsed,
		APICalls:        used.APICalls,
		ComputationTime: used.ComputationTime,
	}

	for _, cat := range models.AllCategories {
		progress := state.Categories[cat]
		out.Categories = append(out.Categories, categoryStatusOutput{
			Category: string(cat),
			Progress: progress.Progress,
			Status:   string(progress.Status),
		})
	}

	for _, row := range summary.Playbooks {
		ps := playbookStatusOutput{
			Playbook:        string(row.Playbook),
			Status:          string(row.Status),
			Progress:        row.Progress,
			DependenciesMet: row.DependenciesMet,
		}
		for _, pb := range row.BlockedBy {
			ps.BlockedBy = append(ps.BlockedBy, string(pb))
		}
		out.Playbooks = append(out.Playbooks, ps)
	}

	return nil, out, nil
}

func (s *Server) handleGetKnowledge(_ context.Context, _ *gomcp.CallToolRequest, input getKnowledgeInput) (*gomcp.CallToolResult, getKnowledgeOutput, error) {
	store := s.session.Knowledge()

	if input.Key != "" {
		entry, ok := store.GetEntry(input.Key)
		if !ok {
			return errorResult(fmt.Sprintf("no knowledge under key %q", input.Key)), getKnowledgeOutput{}, nil
		}
		out := getKnowledgeOutput{
			Entries: []knowledgeEntryOutput{{
				Key:     entry.Key,
				Value:   entry.Value,
				Source:  string(entry.Source),
				Updated: entry.Updated.Format(time.RFC3339),
			}},
			Count: 1,
		}
		return nil, out, nil
	}

	keys := store.Keys()
	out := getKnowledgeOutput{
		Entries: make([]knowledgeEntryOutput, len(keys)),
		Count:   len(keys),
	}
	for i, key := range keys {
		out.Entries[i] = knowledgeEntryOutput{Key: key}
	}
	return nil, out, nil
}

func (s *Server) handleNextQuestion(_ context.Context, _ *gomcp.CallToolRequest, _ nextQuestionInput) (*gomcp.CallToolResult, nextQuestionOutput, error) {
	q, ok := s.session.NextQuestion()
	if !ok {
		return nil, nextQuestionOutput{Done: true}, nil
	}

	s.issued[q.ID] = q
	out := nextQuestionOutput{
		QuestionID: q.ID,
		Text:       q.Text,
		Category:   string(q.Category),
		Rationale:  q.Rationale,
		SkipOption: q.SkipOption,
	}
	return nil, out, nil
}

func (s *Server) handleRecordAnswer(_ context.Context, _ *gomcp.CallToolRequest, input recordAnswerInput) (*gomcp.CallToolResult, recordAnswerOutput, error) {
	if input.QuestionID == "" {
		return errorResult("question_id is required"), recordAnswerOutput{}, nil
	}
	if input.Answer == "" {
		return errorResult("answer is required"), recordAnswerOutput{}, nil
	}

	q, ok := s.issued[input.QuestionID]
	if !ok {
		return errorResult(fmt.Sprintf("unknown question %q: call next_question first", input.QuestionID)), recordAnswerOutput{}, nil
	}

	if err := s.session.RecordResponse(q, input.Answer); err != nil {
		return errorResult(fmt.Sprintf("recording answer: %s", err)), recordAnswerOutput{}, nil
	}
	delete(s.issued, input.QuestionID)

	if err := s.session.Save(); err != nil {
		return errorResult(fmt.Sprintf("saving session: %s", err)), recordAnswerOutput{}, nil
	}

	out := recordAnswerOutput{
		Phase:   string(s.session.State().Phase),
		Overall: s.session.Monitor().Overall(),
		Message: fmt.Sprintf("answer recorded for %s", input.QuestionID),
	}
	return nil, out, nil
}

func (s *Server) handleRunPlaybook(_ context.Context, _ *gomcp.CallToolRequest, input runPlaybookInput) (*gomcp.CallToolResult, runPlaybookOutput, error) {
	if input.Playbook == "" {
		return errorResult("playbook is required"), runPlaybookOutput{}, nil
	}

	pb := models.PlaybookType(input.Playbook)
	produced, err := s.session.RunPlaybook(pb)
	if err != nil && len(produced) == 0 {
		return errorResult(fmt.Sprintf("running playbook: %s", err)), runPlaybookOutput{}, nil
	}

	out := runPlaybookOutput{
		Playbook:  string(pb),
		Artifacts: make([]artifactOutput, len(produced)),
		Count:     len(produced),
	}
	if err != nil {
		out.Warning = err.Error()
	}
	for i, a := range produced {
		out.Artifacts[i] = artifactOutput{Name: a.Name, Markdown: a.Markdown}
	}

	if err := s.session.Save(); err != nil {
		return errorResult(fmt.Sprintf("saving session: %s", err)), runPlaybookOutput{}, nil
	}
	return nil, out, nil
}

func (s *Server) handleGenerateAssessment(_ context.Context, _ *gomcp.CallToolRequest, _ generateAssessmentInput) (*gomcp.CallToolResult, generateAssessmentOutput, error) {
	content, err := s.session.GenerateAssessment()
	if err != nil && content == "" {
		return errorResult(fmt.Sprintf("generating assessment: %s", err)), generateAssessmentOutput{}, nil
	}

	out := generateAssessmentOutput{Document: content}
	if err != nil {
		out.Warning = err.Error()
	}

	if err := s.session.Save(); err != nil {
		return errorResult(fmt.Sprintf("saving session: %s", err)), generateAssessmentOutput{}, nil
	}
	return nil, out, nil
}

// --- Helpers ---

func errorResult(msg string) *gomcp.CallToolResult {
	return &gomcp.CallToolResult{
		Content: []gomcp.Content{&gomcp.TextContent{Text: msg}},
		IsError: true,
	}
}
