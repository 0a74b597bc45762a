package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fterranova/venture-playbooks/pkg/models"
)

// demoAnswers holds canned founder answers, in bank order per category.
var demoAnswers = map[models.QuestionCategory][]string{
	models.ProblemClarity: {
		"Small restaurants waste 20-30% of their food inventory because they cannot predict demand",
		"Independent restaurant owners with 1-3 locations",
		"It is a top-three cost problem; owners track waste manually on paper",
		"Spreadsheets and gut feeling, sometimes a clipboard by the walk-in",
		"Roughly $2,000-4,000 per month per location in spoiled stock",
	},
	models.MarketContext: {
		"food service technology",
		"Rising food costs and thin margins push owners toward software they ignored before",
		"Toast and MarketMan target chains; nobody serves small independents well",
		"Health codes require disposal logs, which our tracking satisfies as a side effect",
		"Cheap cameras and on-device vision models make automatic inventory counts viable",
	},
	models.SolutionUniqueness: {
		"A camera over the prep station counts what is used and predicts tomorrow's demand",
		"No manual data entry at all; the system learns from what the kitchen actually does",
		"Cuts waste by a quarter, orders land automatically, works with existing suppliers",
		"Two years of labeled kitchen footage nobody else has",
		"Owners who piloted it refused to give the cameras back",
	},
	models.ScalePotential: {
		"About 70,000 independent restaurants in the initial market",
		"Monthly subscription per location, priced against the waste it prevents",
		"Pilot owners pay $200 per month without hesitation",
		"Around 500 locations reachable through the first two supplier partnerships",
		"Same model extends to cafes, bakeries, and hotel kitchens",
	},
	models.ExecutionReadiness: {
		"Ten years running restaurant operations plus a CTO from a computer vision startup",
		"Two founders full time, $150k of savings, a working prototype in three kitchens",
		"Paid pilots this quarter, first supplier integration within six months",
		"Hardware installs slow us down; a POS vendor could bundle a copycat",
		"A seed round and one enterprise sales hire",
	},
}

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run a scripted demo session with canned founder answers",
	Long: `Answer the questionnaire with a canned restaurant-tech founder profile
until the session is sufficient, then generate and export the assessment.
Useful for trying the tool without typing twenty answers.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if Session == nil {
			return fmt.Errorf("session not initialized")
		}
		if Session.Monitor().Phase() != models.PhaseGathering {
			return fmt.Errorf("session already past gathering; remove the session file to re-run the demo")
		}

		used := make(map[models.QuestionCategory]int)
		for {
			q, ok := Session.NextQuestion()
			if !ok {
				break
			}

			answers := demoAnswers[q.Category]
			idx := used[q.Category]
			if idx >= len(answers) {
				break
			}
			used[q.Category]++

			fmt.Println(questionStyle.Render(q.Text))
			fmt.Printf("> %s\n\n", answers[idx])

			if err := Session.RecordResponse(q, answers[idx]); err != nil {
				return err
			}
			if Session.Monitor().Phase() != models.PhaseGathering {
				break
			}
		}

		fmt.Printf("Demo gathered %d answers (%.0f%% complete).\n\n",
			Session.State().QuestionsAsked, Session.Monitor().Overall()*100)

		return generateAndExport()
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
}
