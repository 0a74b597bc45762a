// Package report renders the final Vision & Opportunity assessment as a
// markdown document and validates that a rendered document carries every
// mandatory section.
package report

import (
	"fmt"
	"strings"

	"github.com/fterranova/venture-playbooks/internal/agents"
	"github.com/fterranova/venture-playbooks/pkg/models"
)

// requiredSections are the headers every complete assessment must carry, in
// document order.
var requiredSections = []string{
	"# Vision & Opportunity Assessment",
	"## Executive Summary",
	"## Vision Statement",
	"## Total Addressable Market",
	"## Market Timing Analysis",
	"## Exit Strategy",
	"## User Responses Summary",
	"## Session Metadata",
	"## Next Steps",
}

// BudgetNote is emitted when the session spent its cost budget and the
// document was assembled from whatever the agents completed.
const BudgetNote = "> **Note:** The session cost budget was exceeded. This assessment was generated from partial results."

// nextSteps is the fixed closing checklist.
var nextSteps = []string{
	"Review and refine your vision statement",
	"Validate TAM calculations with market research",
	"Develop detailed go-to-market strategy",
	"Create investor pitch deck",
	"Begin customer discovery interviews",
}

// Render builds the full assessment document from the session state and the
// generated components. The document timestamp derives from the session
// start and the cost totals come from the state alone, so rendering is
// idempotent for a given session. budgetExceeded adds the partial-result
// note under the executive summary.
func Render(state *models.SessionState, comps agents.VisionOpportunityComponents, overallCompletion float64, budgetExceeded bool) string {
	var b strings.Builder

	b.WriteString("# Vision & Opportunity Assessment\n\n")
	fmt.Fprintf(&b, "*Generated for session started %s*\n\n", state.Started.UTC().Format("2006-01-02 15:04:05"))

	b.WriteString("## Executive Summary\n\n")
	fmt.Fprintf(&b,
		"This assessment analyzed %d responses across %d categories with %.0f%% completion.\n\n",
		len(state.Responses), len(models.AllCategories), overallCompletion*100)
	if budgetExceeded {
		b.WriteString(BudgetNote)
		b.WriteString("\n\n")
	}

	b.WriteString("## Vision Statement\n\n")
	b.WriteString(agents.RenderVisionMarkdown(comps.Vision))

	b.WriteString("## Total Addressable Market\n\n")
	b.WriteString(agents.RenderTAMMarkdown(comps.TAM))

	b.WriteString("## Market Timing Analysis\n\n")
	b.WriteString(agents.RenderTimingMarkdown(comps.Timing))

	b.WriteString("\n## Exit Strategy\n\n")
	b.WriteString(agents.RenderExitMarkdown(comps.Exit))

	b.WriteString("\n## User Responses Summary\n\n")
	fmt.Fprintf(&b, "Total questions answered: %d\n\n", len(state.Responses))
	for _, category := range models.AllCategories {
		var responses []models.UserResponse
		for _, r := range state.Responses {
			if r.Category == category {
				responses = append(responses, r)
			}
		}
		if len(responses) == 0 {
			continue
		}
		fmt.Fprintf(&b, "### %s\n\n", categoryTitle(category))
		for i, r := range responses {
			fmt.Fprintf(&b, "%d. %s\n", i+1, r.Response)
		}
		b.WriteString("\n")
	}

	total := state.Cost

	b.WriteString("## Session Metadata\n\n")
	fmt.Fprintf(&b, "- **Session ID:** %s\n", state.SessionID)
	fmt.Fprintf(&b, "- **Completion Level:** %.0f%%\n", overallCompletion*100)
	fmt.Fprintf(&b, "- **Questions Asked:** %d\n", state.QuestionsAsked)
	fmt.Fprintf(&b, "- **Total Tokens Used:** %d\n", total.TokensUsed)
	fmt.Fprintf(&b, "- **Processing Time:** %.1fs\n", total.ComputationTime)
	fmt.Fprintf(&b, "- **API Calls:** %d\n\n", total.APICalls)

	b.WriteString("## Next Steps\n\n")
	for i, step := range nextSteps {
		fmt.Fprintf(&b, "%d. %s\n", i+1, step)
	}

	return b.String()
}

// Validate checks a rendered document for the mandatory sections and returns
// the missing headers in document order. A nil result means the document is
// structurally complete.
func Validate(content string) []string {
	var missing []string
	for _, section := range requiredSections {
		if !strings.Contains(content, section) {
			missing = append(missing, section)
		}
	}
	return missing
}

func categoryTitle(c models.QuestionCategory) string {
	words := strings.Split(string(c), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
