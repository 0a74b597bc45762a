package agents

import (
	"fmt"
	"strings"

	"github.com/fterranova/venture-playbooks/pkg/models"
)

// ExitGenerator produces exit-strategy considerations.
type ExitGenerator struct{}

// NewExitGenerator creates an exit strategy generator.
func NewExitGenerator() *ExitGenerator {
	return &ExitGenerator{}
}

var exitCost = models.CostMetrics{TokensUsed: 200, ComputationTime: 0.2, APICalls: 1}

// Generate renders the exit scenarios, milestones, and acquirer profile.
func (g *ExitGenerator) Generate(k Knowledge) (models.ExitStrategy, models.CostMetrics, error) {
	strategy := models.ExitStrategy{
		PrimaryScenario: "Strategic acquisition by industry leader",
		SecondaryOptions: []string{
			"Private equity acquisition",
			"IPO after reaching $100M revenue",
			"Management buyout",
		},
		Milestones: []string{
			"Product-market fit within 18 months",
			"$10M ARR within 3 years",
			"Market leadership position within 5 years",
		},
		Timeline: "3-7 years to exit depending on growth rate",
		StrategicImplications: []string{
			"Focus on scalable business model",
			"Build strong IP portfolio",
			"Establish key partnerships",
		},
		PotentialAcquirers: []string{
			"Large tech companies in adjacent markets",
			"Industry incumbents seeking innovation",
			"Private equity firms focused on growth",
		},
	}
	return strategy, exitCost, nil
}

// RenderExitMarkdown formats an exit strategy as the report fragment.
func RenderExitMarkdown(exit models.ExitStrategy) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Primary Exit Scenario:** %s\n\n", exit.PrimaryScenario)
	fmt.Fprintf(&b, "**Timeline:** %s\n\n", exit.Timeline)

	b.WriteString("### Value Creation Milestones\n\n")
	for _, milestone := range exit.Milestones {
		fmt.Fprintf(&b, "- %s\n", milestone)
	}

	b.WriteString("\n### Secondary Exit Options\n\n")
	for _, option := range exit.SecondaryOptions {
		fmt.Fprintf(&b, "- %s\n", option)
	}

	b.WriteString("\n### Potential Acquirers\n\n")
	for _, acquirer := range exit.PotentialAcquirers {
		fmt.Fprintf(&b, "- %s\n", acquirer)
	}
	return b.String()
}
