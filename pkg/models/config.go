package models

// GlobalConfig holds the application configuration read once at startup from
// .vpkconfig and the environment. Budgets are static inputs, not enforced
// concurrency controls.
type GlobalConfig struct {
	// Cost budgets for a single session.
	MaxTokens          int     `yaml:"max_tokens"`
	MaxAPICalls        int     `yaml:"max_api_calls"`
	MaxComputationTime int     `yaml:"max_computation_time"` // seconds
	CostWarnThreshold  float64 `yaml:"cost_warn_threshold"`  // fraction of budget

	// Output settings.
	ExportDirectory string `yaml:"export_directory"`
	AutoExport      bool   `yaml:"auto_export"`

	// Application settings.
	Debug bool `yaml:"debug"`
}
