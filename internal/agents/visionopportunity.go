package agents

import (
	"time"

	"github.com/fterranova/venture-playbooks/pkg/models"
)

// visionOpportunityAgent composes the vision, TAM, timing, and exit
// generators into the four artifacts of the flagship playbook.
type visionOpportunityAgent struct {
	vision *VisionGenerator
	tam    *TAMGenerator
	timing *TimingGenerator
	exit   *ExitGenerator
}

// NewVisionOpportunityAgent builds the composite agent. Citations inside
// generated artifacts are dated relative to asOf so repeated runs over the
// same session produce identical output.
func NewVisionOpportunityAgent(asOf time.Time) Agent {
	return &visionOpportunityAgent{
		vision: NewVisionGenerator(asOf),
		tam:    NewTAMGenerator(asOf),
		timing: NewTimingGenerator(),
		exit:   NewExitGenerator(),
	}
}

func (a *visionOpportunityAgent) Name() string { return "vision_opportunity" }

func (a *visionOpportunityAgent) Playbook() models.PlaybookType {
	return models.VisionOpportunity
}

func (a *visionOpportunityAgent) RequiredFields() []string {
	return []string{"problem"}
}

// ProduceArtifacts runs the four generators in dependency order: the vision
// statement first, then TAM, then timing and exit which build on the market
// picture. Any missing mandatory input aborts the whole run.
func (a *visionOpportunityAgent) ProduceArtifacts(k Knowledge) ([]Artifact, error) {
	vision, visionSpend, err := a.vision.Generate(k)
	if err != nil {
		return nil, err
	}
	tam, tamSpend, err := a.tam.Generate(k)
	if err != nil {
		return nil, err
	}
	timing, timingSpend, err := a.timing.Generate(k)
	if err != nil {
		return nil, err
	}
	exit, exitSpend, err := a.exit.Generate(k)
	if err != nil {
		return nil, err
	}

	return []Artifact{
		{Name: "vision_statement", Markdown: RenderVisionMarkdown(vision), Cost: visionSpend},
		{Name: "tam_calculation", Markdown: RenderTAMMarkdown(tam), Cost: tamSpend},
		{Name: "timing_analysis", Markdown: RenderTimingMarkdown(timing), Cost: timingSpend},
		{Name: "exit_strategy", Markdown: RenderExitMarkdown(exit), Cost: exitSpend},
	}, nil
}

// Components runs the generators and returns the structured results, used
// by the report renderer which needs the typed values rather than the
// pre-rendered fragments.
func (a *visionOpportunityAgent) Components(k Knowledge) (models.VisionStatement, models.TAMResult, models.TimingAnalysis, models.ExitStrategy, models.CostMetrics, error) {
	var total models.CostMetrics

	vision, spend, err := a.vision.Generate(k)
	if err != nil {
		return models.VisionStatement{}, models.TAMResult{}, models.TimingAnalysis{}, models.ExitStrategy{}, total, err
	}
	total.Add(spend)

	tam, spend, err := a.tam.Generate(k)
	if err != nil {
		return models.VisionStatement{}, models.TAMResult{}, models.TimingAnalysis{}, models.ExitStrategy{}, total, err
	}
	total.Add(spend)

	timing, spend, err := a.timing.Generate(k)
	if err != nil {
		return models.VisionStatement{}, models.TAMResult{}, models.TimingAnalysis{}, models.ExitStrategy{}, total, err
	}
	total.Add(spend)

	exit, spend, err := a.exit.Generate(k)
	if err != nil {
		return models.VisionStatement{}, models.TAMResult{}, models.TimingAnalysis{}, models.ExitStrategy{}, total, err
	}
	total.Add(spend)

	return vision, tam, timing, exit, total, nil
}

// VisionOpportunityComponents is the typed bundle produced for the final
// assessment report.
type VisionOpportunityComponents struct {
	Vision models.VisionStatement
	TAM    models.TAMResult
	Timing models.TimingAnalysis
	Exit   models.ExitStrategy
	Cost   models.CostMetrics
}

// GenerateComponents is the convenience entry point used by the session
// orchestrator when building the report.
func GenerateComponents(k Knowledge, asOf time.Time) (VisionOpportunityComponents, error) {
	agent := NewVisionOpportunityAgent(asOf).(*visionOpportunityAgent)
	vision, tam, timing, exit, cost, err := agent.Components(k)
	if err != nil {
		return VisionOpportunityComponents{}, err
	}
	return VisionOpportunityComponents{
		Vision: vision,
		TAM:    tam,
		Timing: timing,
		Exit:   exit,
		Cost:   cost,
	}, nil
}
