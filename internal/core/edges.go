package core

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/fterranova/venture-playbooks/pkg/models"
)

//go:embed edges.yaml
var defaultEdgesYAML []byte

type edgeCatalogue struct {
	Edges []models.DependencyEdge `yaml:"edges"`
}

// DefaultEdges parses the embedded dependency catalogue.
func DefaultEdges() ([]models.DependencyEdge, error) {
	var catalogue edgeCatalogue
	if err := yaml.Unmarshal(defaultEdgesYAML, &catalogue); err != nil {
		return nil, fmt.Errorf("parsing edge catalogue: %w", err)
	}
	return catalogue.Edges, nil
}

// NewDefaultGraph builds and validates a graph from the embedded catalogue.
// A REQUIRES cycle in the catalogue fails fast here.
func NewDefaultGraph() (*Graph, error) {
	edges, err := DefaultEdges()
	if err != nil {
		return nil, err
	}
	graph := NewGraph()
	for _, edge := range edges {
		if err := graph.RegisterEdge(edge); err != nil {
			return nil, err
		}
	}
	if err := graph.Validate(); err != nil {
		return nil, err
	}
	return graph, nil
}

// PlaybookPriorities assigns each playbook its priority band.
var PlaybookPriorities = map[models.PlaybookType]models.PlaybookPriority{
	models.VisionOpportunity:     models.PriorityHigh,
	models.CustomerDiscovery:     models.PriorityHigh,
	models.BusinessModel:         models.PriorityHigh,
	models.ProductStrategy:       models.PriorityHigh,
	models.UXDesign:              models.PriorityHigh,
	models.TechnicalDevelopment:  models.PriorityMediumHigh,
	models.TeamCulture:           models.PriorityMediumHigh,
	models.FinancialPlanning:     models.PriorityMedium,
	models.ProjectExecution:      models.PriorityMedium,
	models.LaunchGrowth:          models.PriorityMedium,
	models.DataAnalytics:         models.PriorityMedium,
	models.BrandCommunication:    models.PriorityMediumLow,
	models.LegalCompliance:       models.PriorityMediumLow,
	models.Partnerships:          models.PriorityMediumLow,
	models.ContinuousImprovement: models.PriorityMediumLow,
}
