package agents

import (
	"fmt"
	"strings"
	"time"

	"github.com/fterranova/venture-playbooks/pkg/models"
)

// Default substitutions used when the founder has not yet described their
// audience or approach.
const (
	defaultAudience = "users"
	defaultApproach = "smart solutions"
)

// VisionGenerator renders the three vision-statement tone variants from the
// founder's problem, audience, and approach.
type VisionGenerator struct {
	asOf time.Time
}

// NewVisionGenerator creates a generator whose citations are dated relative
// to asOf, keeping output stable for a fixed session.
func NewVisionGenerator(asOf time.Time) *VisionGenerator {
	return &VisionGenerator{asOf: asOf}
}

// visionCost is the synthetic cost of one vision generation run.
var visionCost = models.CostMetrics{TokensUsed: 300, ComputationTime: 0.3, APICalls: 1}

// Generate produces exactly three tone variants (ambitious, practical,
// disruptive) and a recommended choice drawn from them. The problem field
// is mandatory; audience and approach fall back to defaults.
func (g *VisionGenerator) Generate(k Knowledge) (models.VisionStatement, models.CostMetrics, error) {
	if err := checkRequired("vision generator", k, []string{"problem"}); err != nil {
		return models.VisionStatement{}, models.CostMetrics{}, err
	}

	problem := lookupString(k, "problem", "")
	audience := lookupString(k, "audience", defaultAudience)
	approach := lookupString(k, "approach", defaultApproach)

	variations := []models.VisionVariation{
		{
			Statement:            fmt.Sprintf("We will redefine %s for %s through %s", problem, audience, approach),
			Tone:                 "ambitious",
			EmotionalAppeal:      9,
			ClarityScore:         7,
			DifferentiationScore: 8,
			UseCase:              "For investor presentations and team inspiration",
		},
		{
			Statement:            fmt.Sprintf("We help %s with %s using %s", audience, problem, approach),
			Tone:                 "practical",
			EmotionalAppeal:      6,
			ClarityScore:         9,
			DifferentiationScore: 6,
			UseCase:              "For customer communications and marketing",
		},
		{
			Statement:            fmt.Sprintf("We are revolutionizing %s for %s with %s", problem, audience, approach),
			Tone:                 "disruptive",
			EmotionalAppeal:      8,
			ClarityScore:         8,
			DifferentiationScore: 9,
			UseCase:              "For disrupting markets and attracting early adopters",
		},
	}

	statement := models.VisionStatement{
		Variations:        variations,
		RecommendedChoice: variations[0].Statement,
		Reasoning:         "The ambitious tone aligns with startup culture and investment appeal",
		Citations: []models.Citation{
			{
				Source:         "Market Research Report 2024",
				DateRetrieved:  g.asOf.AddDate(0, 0, -30),
				RelevanceScore: 0.8,
				ContentSnippet: "Market trends show increasing demand...",
				FreshnessFlag:  "current",
			},
		},
	}
	return statement, visionCost, nil
}

// RenderMarkdown formats a vision statement as the report fragment.
func RenderVisionMarkdown(vision models.VisionStatement) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**Recommended Vision:** %s\n\n", vision.RecommendedChoice)
	fmt.Fprintf(&b, "**Reasoning:** %s\n\n", vision.Reasoning)
	b.WriteString("### Alternative Variations\n\n")
	for i, variation := range vision.Variations {
		fmt.Fprintf(&b, "%d. **%s:** %s\n", i+1, titleCase(variation.Tone), variation.Statement)
		fmt.Fprintf(&b, "   - *%s*\n\n", variation.UseCase)
	}
	return b.String()
}

// titleCase uppercases the first letter of each underscore- or
// space-separated word.
func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '_' || r == ' ' })
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
