package agents

import (
	"fmt"
	"strings"

	"github.com/fterranova/venture-playbooks/pkg/models"
)

// TimingGenerator produces the market-timing analysis using the TIMING
// framework factors.
type TimingGenerator struct{}

// NewTimingGenerator creates a timing generator.
func NewTimingGenerator() *TimingGenerator {
	return &TimingGenerator{}
}

var timingCost = models.CostMetrics{TokensUsed: 250, ComputationTime: 0.25, APICalls: 2}

// Generate renders the fixed-framework timing assessment. The industry
// field, when present, is woven into the summary.
func (g *TimingGenerator) Generate(k Knowledge) (models.TimingAnalysis, models.CostMetrics, error) {
	industry := lookupString(k, "industry", "the target market")

	analysis := models.TimingAnalysis{
		ExecutiveSummary: fmt.Sprintf("Market timing in %s shows strong opportunity with favorable trends", industry),
		Scores: models.TimingScores{
			TechnologyEnablers: 8,
			IndustryTrends:     7,
			MarketMaturity:     6,
			Infrastructure:     7,
			NarrativeMomentum:  8,
			SolutionGaps:       9,
		},
		KeyOpportunities: []string{
			"Emerging technology makes solution feasible",
			"Industry consolidation creates market gaps",
			"Regulatory changes favor new entrants",
		},
		TimingRisks: []string{
			"Market may be oversaturated",
			"Technology adoption slower than expected",
		},
		OptimalEntryWindow: "Next 6-12 months",
		RecommendedStrategies: []string{
			"Move quickly to establish market position",
			"Focus on early adopters",
			"Build partnerships with industry leaders",
		},
	}
	return analysis, timingCost, nil
}

// RenderTimingMarkdown formats a timing analysis as the report fragment.
func RenderTimingMarkdown(timing models.TimingAnalysis) string {
	var b strings.Builder
	b.WriteString(timing.ExecutiveSummary)
	b.WriteString("\n\n### Timing Scores\n\n")

	scores := []struct {
		label string
		value int
	}{
		{"Technology Enablers", timing.Scores.TechnologyEnablers},
		{"Industry Trends", timing.Scores.IndustryTrends},
		{"Market Maturity", timing.Scores.MarketMaturity},
		{"Infrastructure", timing.Scores.Infrastructure},
		{"Narrative Momentum", timing.Scores.NarrativeMomentum},
		{"Solution Gaps", timing.Scores.SolutionGaps},
	}
	for _, score := range scores {
		fmt.Fprintf(&b, "- %s: %d/10\n", score.label, score.value)
	}

	b.WriteString("\n### Key Opportunities\n\n")
	for _, opportunity := range timing.KeyOpportunities {
		fmt.Fprintf(&b, "- %s\n", opportunity)
	}

	b.WriteString("\n### Timing Risks\n\n")
	for _, risk := range timing.TimingRisks {
		fmt.Fprintf(&b, "- %s\n", risk)
	}

	fmt.Fprintf(&b, "\n**Optimal Entry Window:** %s\n", timing.OptimalEntryWindow)
	return b.String()
}
