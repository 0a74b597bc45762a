package agents

import (
	"fmt"
	"strings"

	"github.com/fterranova/venture-playbooks/pkg/models"
)

// playbookSpec configures a template agent: which knowledge fields it
// consumes and which named artifacts it renders.
type playbookSpec struct {
	playbook models.PlaybookType
	title    string
	// required gates generation; every field must match some knowledge key.
	required []string
	// optional fields are woven into the output when present.
	optional []string
	// artifacts lists output names paired with one-line framings.
	artifacts []artifactSpec
}

type artifactSpec struct {
	name    string
	framing string
}

// templateCost is the synthetic cost of one template agent run per
// artifact produced.
var templateCost = models.CostMetrics{TokensUsed: 150, ComputationTime: 0.15, APICalls: 1}

// playbookSpecs covers the fourteen playbooks beyond vision and opportunity.
// Artifact names line up with the dependency graph's trigger fields so that
// producing them unlocks the downstream gated playbooks.
var playbookSpecs = []playbookSpec{
	{
		playbook: models.CustomerDiscovery,
		title:    "Customer Discovery",
		optional: []string{"problem", "audience", "industry"},
		artifacts: []artifactSpec{
			{name: "customer_personas", framing: "Primary and secondary personas derived from the stated audience"},
			{name: "pain_points", framing: "Ranked pain points behind the core problem"},
			{name: "jtbd", framing: "Jobs-to-be-done framing for the main use case"},
			{name: "pricing_insights", framing: "Willingness-to-pay signals gathered from discovery conversations"},
		},
	},
	{
		playbook: models.BusinessModel,
		title:    "Business Model",
		optional: []string{"audience", "approach", "market_size"},
		artifacts: []artifactSpec{
			{name: "revenue_model", framing: "Recurring revenue structure and primary monetization paths"},
			{name: "unit_economics", framing: "Per-customer economics: acquisition cost against lifetime value"},
			{name: "pricing_strategy", framing: "Tiered pricing anchored on delivered value"},
		},
	},
	{
		playbook: models.ProductStrategy,
		title:    "Product Strategy",
		required: []string{"customer_personas", "pain_points", "jtbd"},
		artifacts: []artifactSpec{
			{name: "product_roadmap", framing: "Phased roadmap from validated pain points to differentiated product"},
			{name: "feature_prioritization", framing: "Feature ranking by persona impact and effort"},
			{name: "value_proposition", framing: "Value proposition aligned to the jobs-to-be-done"},
			{name: "user_stories", framing: "Core user stories covering the primary personas"},
			{name: "target_segments", framing: "Launch segments ordered by fit and reachability"},
			{name: "technical_requirements", framing: "Technical requirements implied by the roadmap"},
		},
	},
	{
		playbook: models.UXDesign,
		title:    "UX Design",
		required: []string{"user_stories", "feature_prioritization", "value_proposition"},
		artifacts: []artifactSpec{
			{name: "design_principles", framing: "Design principles anchoring the experience to the value proposition"},
			{name: "interaction_flows", framing: "Interaction flows for the top prioritized features"},
		},
	},
	{
		playbook: models.TechnicalDevelopment,
		title:    "Technical Development",
		required: []string{"product_roadmap", "technical_requirements"},
		artifacts: []artifactSpec{
			{name: "architecture_outline", framing: "Architecture outline sized to the roadmap phases"},
			{name: "technology_decisions", framing: "Build-versus-buy decisions for each requirement cluster"},
		},
	},
	{
		playbook: models.TeamCulture,
		title:    "Team & Culture",
		optional: []string{"approach"},
		artifacts: []artifactSpec{
			{name: "hiring_plan", framing: "Hiring sequence for the first twelve months"},
			{name: "culture_principles", framing: "Operating principles for a small founding team"},
		},
	},
	{
		playbook: models.FinancialPlanning,
		title:    "Financial Planning",
		required: []string{"revenue_model", "unit_economics", "pricing_strategy"},
		artifacts: []artifactSpec{
			{name: "financial_projections", framing: "Three-year projections built on the validated unit economics"},
			{name: "funding_requirements", framing: "Capital requirements through the next milestone"},
		},
	},
	{
		playbook: models.ProjectExecution,
		title:    "Project Execution",
		artifacts: []artifactSpec{
			{name: "execution_plan", framing: "Milestone plan with owners and checkpoints"},
			{name: "risk_register", framing: "Top delivery risks with mitigations"},
		},
	},
	{
		playbook: models.LaunchGrowth,
		title:    "Launch & Growth",
		required: []string{"target_segments", "value_proposition", "unit_economics", "revenue_model"},
		artifacts: []artifactSpec{
			{name: "launch_plan", framing: "Segment-by-segment launch sequence"},
			{name: "growth_channels", framing: "Acquisition channels ranked by economics"},
		},
	},
	{
		playbook: models.DataAnalytics,
		title:    "Data & Analytics",
		artifacts: []artifactSpec{
			{name: "metrics_framework", framing: "North-star metric with supporting input metrics"},
			{name: "instrumentation_plan", framing: "Event instrumentation needed to track the framework"},
		},
	},
	{
		playbook: models.BrandCommunication,
		title:    "Brand & Communication",
		optional: []string{"audience"},
		artifacts: []artifactSpec{
			{name: "brand_positioning", framing: "Positioning statement for the primary audience"},
			{name: "messaging_pillars", framing: "Three messaging pillars supporting the positioning"},
		},
	},
	{
		playbook: models.LegalCompliance,
		title:    "Legal & Compliance",
		optional: []string{"industry"},
		artifacts: []artifactSpec{
			{name: "compliance_checklist", framing: "Regulatory checklist for the target industry"},
			{name: "ip_strategy", framing: "Intellectual property protection priorities"},
		},
	},
	{
		playbook: models.Partnerships,
		title:    "Partnerships",
		optional: []string{"industry"},
		artifacts: []artifactSpec{
			{name: "partner_map", framing: "Candidate partners by category and strategic value"},
			{name: "partnership_criteria", framing: "Criteria for qualifying and sequencing partnerships"},
		},
	},
	{
		playbook: models.ContinuousImprovement,
		title:    "Continuous Improvement",
		artifacts: []artifactSpec{
			{name: "feedback_loops", framing: "Customer and internal feedback loops with cadences"},
			{name: "review_cadence", framing: "Operating review rhythm across the playbooks"},
		},
	},
}

// templateAgent renders fixed-structure markdown fragments from a spec. It
// is the single implementation behind every playbook that does not need a
// dedicated generator.
type templateAgent struct {
	spec playbookSpec
}

func (a *templateAgent) Name() string { return string(a.spec.playbook) }

func (a *templateAgent) Playbook() models.PlaybookType { return a.spec.playbook }

func (a *templateAgent) RequiredFields() []string { return a.spec.required }

func (a *templateAgent) ProduceArtifacts(k Knowledge) ([]Artifact, error) {
	if err := checkRequired(a.Name(), k, a.spec.required); err != nil {
		return nil, err
	}

	context := a.contextLines(k)
	artifacts := make([]Artifact, 0, len(a.spec.artifacts))
	for _, art := range a.spec.artifacts {
		artifacts = append(artifacts, Artifact{
			Name:     art.name,
			Markdown: renderTemplateArtifact(a.spec.title, art, context),
			Cost:     templateCost,
		})
	}
	return artifacts, nil
}

// contextLines collects the available input values, required first, then
// optional, each rendered as a bullet.
func (a *templateAgent) contextLines(k Knowledge) []string {
	var lines []string
	for _, field := range a.spec.required {
		if entry, ok := k.Find(field); ok {
			lines = append(lines, fmt.Sprintf("%s: %v", field, entry.Value))
		}
	}
	for _, field := range a.spec.optional {
		if entry, ok := k.Find(field); ok {
			lines = append(lines, fmt.Sprintf("%s: %v", field, entry.Value))
		}
	}
	return lines
}

func renderTemplateArtifact(title string, art artifactSpec, context []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### %s: %s\n\n", title, titleCase(art.name))
	fmt.Fprintf(&b, "%s.\n", art.framing)
	if len(context) > 0 {
		b.WriteString("\nInputs considered:\n\n")
		for _, line := range context {
			fmt.Fprintf(&b, "- %s\n", line)
		}
	}
	return b.String()
}
