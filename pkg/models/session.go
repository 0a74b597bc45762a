package models

import "time"

// SessionState is the wholesale-persisted state of one assessment session:
// everything needed to resume or re-render an assessment. It is written and
// read as a single JSON object; there is no incremental format.
type SessionState struct {
	SessionID      string                                `json:"session_id"`
	Started        time.Time                             `json:"started"`
	Phase          SessionPhase                          `json:"phase"`
	QuestionsAsked int                                   `json:"questions_asked"`
	Responses      []UserResponse                        `json:"responses"`
	Categories     map[QuestionCategory]CategoryProgress `json:"categories"`
	Playbooks      map[PlaybookType]PlaybookState        `json:"playbooks"`
	Knowledge      map[string]KnowledgeEntry             `json:"knowledge"`
	History        []KnowledgeUpdate                     `json:"knowledge_history,omitempty"`
	Cost           CostMetrics                           `json:"cost_metrics"`
}
