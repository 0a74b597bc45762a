package models

import "time"

// Citation points at a source backing a generated artifact.
type Citation struct {
	Source         string    `json:"source"`
	DateRetrieved  time.Time `json:"date_retrieved"`
	RelevanceScore float64   `json:"relevance_score"`
	ContentSnippet string    `json:"content_snippet,omitempty"`
	FreshnessFlag  string    `json:"freshness_flag"` // current, stale, outdated
}

// VisionVariation is one rendering of the vision statement in a given tone.
type VisionVariation struct {
	Statement            string `json:"statement"`
	Tone                 string `json:"tone"` // ambitious, practical, disruptive
	EmotionalAppeal      int    `json:"emotional_appeal"`
	ClarityScore         int    `json:"clarity_score"`
	DifferentiationScore int    `json:"differentiation_score"`
	UseCase              string `json:"use_case"`
}

// VisionStatement holds the three tone variants and the recommended pick.
type VisionStatement struct {
	Variations        []VisionVariation `json:"variations"`
	RecommendedChoice string            `json:"recommended_choice"`
	Reasoning         string            `json:"reasoning"`
	Citations         []Citation        `json:"citations,omitempty"`
}

// TAMCalculation is a single TAM methodology's result.
type TAMCalculation struct {
	MarketSize            float64  `json:"market_size"`
	AddressablePercentage float64  `json:"addressable_percentage"`
	TAMEstimate           float64  `json:"tam_estimate"`
	ConfidenceLevel       float64  `json:"confidence_level"`
	Assumptions           []string `json:"assumptions"`
	CalculationSteps      []string `json:"calculation_steps"`
}

// TAMRange brackets the final estimate.
type TAMRange struct {
	Conservative float64 `json:"conservative"`
	Optimistic   float64 `json:"optimistic"`
	Recommended  float64 `json:"recommended"`
}

// TAMResult combines the top-down and bottom-up calculations with the
// derived range.
type TAMResult struct {
	Calculations     map[string]TAMCalculation `json:"calculations"`
	FinalRange       TAMRange                  `json:"final_range"`
	ValidationChecks []string                  `json:"validation_checks"`
	Citations        []Citation                `json:"citations,omitempty"`
}

// TimingScores are the six TIMING framework factors, each scored 1-10.
type TimingScores struct {
	TechnologyEnablers int `json:"technology_enablers"`
	IndustryTrends     int `json:"industry_trends"`
	MarketMaturity     int `json:"market_maturity"`
	Infrastructure     int `json:"infrastructure"`
	NarrativeMomentum  int `json:"narrative_momentum"`
	SolutionGaps       int `json:"solution_gaps"`
}

// TimingAnalysis is the market-timing assessment.
type TimingAnalysis struct {
	ExecutiveSummary      string       `json:"executive_summary"`
	Scores                TimingScores `json:"timing_scores"`
	KeyOpportunities      []string     `json:"key_opportunities"`
	TimingRisks           []string     `json:"timing_risks"`
	OptimalEntryWindow    string       `json:"optimal_entry_window"`
	RecommendedStrategies []string     `json:"recommended_strategies"`
}

// ExitStrategy captures exit scenarios and the milestones leading there.
type ExitStrategy struct {
	PrimaryScenario       string   `json:"primary_exit_scenario"`
	SecondaryOptions      []string `json:"secondary_exit_options"`
	Milestones            []string `json:"value_creation_milestones"`
	Timeline              string   `json:"timeline_considerations"`
	StrategicImplications []string `json:"strategic_implications"`
	PotentialAcquirers    []string `json:"potential_acquirers"`
}
