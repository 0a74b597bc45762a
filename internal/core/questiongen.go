package core

import (
	"fmt"

	"github.com/fterranova/venture-playbooks/pkg/models"
)

// questionBank holds the per-category question templates, asked in order
// within a category.
var questionBank = map[models.QuestionCategory][]string{
	models.ProblemClarity: {
		"What specific problem are you trying to solve?",
		"Who is your target customer experiencing this problem?",
		"How painful is this problem for your target audience?",
		"What are people currently doing to solve this problem?",
		"How much does this problem cost your target customers?",
	},
	models.MarketContext: {
		"What industry or market are you targeting?",
		"What trends are driving demand for your solution?",
		"Who are your main competitors?",
		"What regulations might affect your market?",
		"How is technology changing your target market?",
	},
	models.SolutionUniqueness: {
		"What makes your solution different from existing options?",
		"What's your unique value proposition?",
		"What key benefits do you provide that others don't?",
		"What's your competitive advantage?",
		"Why would customers choose you over alternatives?",
	},
	models.ScalePotential: {
		"How large is your target market?",
		"What's your pricing strategy?",
		"How much would customers pay for your solution?",
		"How many potential customers exist?",
		"What's the growth potential of your market?",
	},
	models.ExecutionReadiness: {
		"What's your background and relevant experience?",
		"What resources do you currently have?",
		"What's your timeline for launch?",
		"What are your biggest risks?",
		"What do you need to get started?",
	},
}

// defaultCompletionImpact is how much each answered question moves its
// category's score.
const defaultCompletionImpact = 0.2

// QuestionGenerator produces the next most useful question for a session:
// it targets the category with the lowest progress and never repeats a
// question within a session.
type QuestionGenerator struct {
	asked map[string]struct{}
}

// NewQuestionGenerator returns a generator with an empty asked set.
func NewQuestionGenerator() *QuestionGenerator {
	return &QuestionGenerator{asked: make(map[string]struct{})}
}

// NextQuestion picks the unasked question from the lowest-progress
// category, falling back to other categories in fixed order once a
// category's bank is exhausted. ok is false when every question has been
// asked or the session is no longer gathering.
func (g *QuestionGenerator) NextQuestion(monitor *Monitor, state *models.SessionState) (models.Question, bool) {
	if monitor.Phase() != models.PhaseGathering {
		return models.Question{}, false
	}

	for _, category := range categoriesByProgress(state) {
		for _, text := range questionBank[category] {
			if _, done := g.asked[text]; done {
				continue
			}
			g.asked[text] = struct{}{}
			return models.Question{
				ID:               fmt.Sprintf("q_%d", state.QuestionsAsked+1),
				Text:             text,
				Category:         category,
				Rationale:        fmt.Sprintf("This helps us understand %s better", category),
				CompletionImpact: defaultCompletionImpact,
				SkipOption:       monitor.SkipAvailable(),
				FollowUpHints:    []string{"Be specific", "Provide examples", "Quantify if possible"},
			}, true
		}
	}
	return models.Question{}, false
}

// SeedFromResponses marks the questions a resumed session has already
// answered. Questions are asked in bank order within a category, so the
// per-category response count identifies exactly which ones those were.
func (g *QuestionGenerator) SeedFromResponses(state *models.SessionState) {
	counts := make(map[models.QuestionCategory]int)
	for _, r := range state.Responses {
		counts[r.Category]++
	}
	for category, n := range counts {
		bank := questionBank[category]
		if n > len(bank) {
			n = len(bank)
		}
		for _, text := range bank[:n] {
			g.asked[text] = struct{}{}
		}
	}
}

// categoriesByProgress orders the five categories lowest progress first,
// with the fixed category order breaking ties.
func categoriesByProgress(state *models.SessionState) []models.QuestionCategory {
	ordered := make([]models.QuestionCategory, len(models.AllCategories))
	copy(ordered, models.AllCategories)

	// Insertion sort keeps the fixed order stable for equal progress.
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0; j-- {
			a := state.Categories[ordered[j-1]].Progress
			b := state.Categories[ordered[j]].Progress
			if b < a {
				ordered[j-1], ordered[j] = ordered[j], ordered[j-1]
			}
		}
	}
	return ordered
}
