package models

import "time"

// PlaybookType identifies one of the fifteen topical playbooks in the
// startup framework.
type PlaybookType string

const (
	VisionOpportunity     PlaybookType = "vision_opportunity"
	CustomerDiscovery     PlaybookType = "customer_discovery"
	BusinessModel         PlaybookType = "business_model"
	ProductStrategy       PlaybookType = "product_strategy"
	UXDesign              PlaybookType = "ux_design"
	TechnicalDevelopment  PlaybookType = "technical_development"
	TeamCulture           PlaybookType = "team_culture"
	FinancialPlanning     PlaybookType = "financial_planning"
	ProjectExecution      PlaybookType = "project_execution"
	LaunchGrowth          PlaybookType = "launch_growth"
	DataAnalytics         PlaybookType = "data_analytics"
	BrandCommunication    PlaybookType = "brand_communication"
	LegalCompliance       PlaybookType = "legal_compliance"
	Partnerships          PlaybookType = "partnerships"
	ContinuousImprovement PlaybookType = "continuous_improvement"
)

// AllPlaybooks lists every playbook in its fixed enumeration order. The
// order is part of the coordinator's tie-break contract and must not change.
var AllPlaybooks = []PlaybookType{
	VisionOpportunity,
	CustomerDiscovery,
	BusinessModel,
	ProductStrategy,
	UXDesign,
	TechnicalDevelopment,
	TeamCulture,
	FinancialPlanning,
	ProjectExecution,
	LaunchGrowth,
	DataAnalytics,
	BrandCommunication,
	LegalCompliance,
	Partnerships,
	ContinuousImprovement,
}

// PlaybookOrdinal returns the position of a playbook in the fixed
// enumeration order, or len(AllPlaybooks) for an unknown playbook so that
// unknowns sort last.
func PlaybookOrdinal(p PlaybookType) int {
	for i, pb := range AllPlaybooks {
		if pb == p {
			return i
		}
	}
	return len(AllPlaybooks)
}

// IsValidPlaybook reports whether p names one of the fifteen playbooks.
func IsValidPlaybook(p PlaybookType) bool {
	return PlaybookOrdinal(p) < len(AllPlaybooks)
}

// PlaybookPriority buckets playbooks by how foundational they are.
type PlaybookPriority string

const (
	PriorityHigh       PlaybookPriority = "high"
	PriorityMediumHigh PlaybookPriority = "medium_high"
	PriorityMedium     PlaybookPriority = "medium"
	PriorityMediumLow  PlaybookPriority = "medium_low"
)

// Weight returns the numeric weight used when averaging overall progress
// across playbooks.
func (p PlaybookPriority) Weight() float64 {
	switch p {
	case PriorityHigh:
		return 4
	case PriorityMediumHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityMediumLow:
		return 1
	}
	return 1
}

// PlaybookStatus represents the lifecycle state of a single playbook.
type PlaybookStatus string

const (
	PlaybookNotStarted  PlaybookStatus = "not_started"
	PlaybookInProgress  PlaybookStatus = "in_progress"
	PlaybookSufficient  PlaybookStatus = "sufficient"
	PlaybookComplete    PlaybookStatus = "complete"
	PlaybookNeedsUpdate PlaybookStatus = "needs_update"
)

// DependencyType classifies an edge between two playbooks. REQUIRES edges
// gate whether the target may start; the other kinds are advisory.
type DependencyType string

const (
	DepRequires   DependencyType = "requires"
	DepInfluences DependencyType = "influences"
	DepUpdates    DependencyType = "updates"
	DepSyncs      DependencyType = "syncs"
)

// DependencyEdge is a static, directed edge between two playbooks. Edges are
// configuration: defined once at load time and never mutated.
type DependencyEdge struct {
	From          PlaybookType   `yaml:"from" json:"from"`
	To            PlaybookType   `yaml:"to" json:"to"`
	Kind          DependencyType `yaml:"kind" json:"kind"`
	Description   string         `yaml:"description" json:"description"`
	TriggerFields []string       `yaml:"trigger_fields" json:"trigger_fields"`
	UpdateTargets []string       `yaml:"update_targets" json:"update_targets"`
	Priority      int            `yaml:"priority" json:"priority"`
}

// PlaybookState tracks one playbook's progress and produced artifacts.
type PlaybookState struct {
	Type            PlaybookType      `json:"type"`
	Status          PlaybookStatus    `json:"status"`
	Priority        PlaybookPriority  `json:"priority"`
	Progress        float64           `json:"progress"`
	Artifacts       map[string]string `json:"artifacts,omitempty"`
	DependenciesMet bool              `json:"dependencies_met"`
	BlockedBy       []PlaybookType    `json:"blocked_by,omitempty"`
	LastUpdated     time.Time         `json:"last_updated"`
}
