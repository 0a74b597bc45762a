// Package core contains the business logic for the Venture Playbook Kit:
// the completion monitor, the cross-playbook dependency graph and
// coordinator, question generation, cost budgeting, and session
// orchestration.
package core

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/fterranova/venture-playbooks/pkg/models"
)

// ConfigurationManager loads the application configuration from the
// .vpkconfig file and environment variables. Configuration is a static
// input, read once at startup.
type ConfigurationManager interface {
	LoadGlobalConfig() (*models.GlobalConfig, error)
}

// viperConfigManager implements ConfigurationManager using Viper for
// reading the YAML configuration file with environment overrides.
type viperConfigManager struct {
	basePath string
}

// NewConfigurationManager creates a ConfigurationManager that reads
// .vpkconfig relative to basePath.
func NewConfigurationManager(basePath string) ConfigurationManager {
	return &viperConfigManager{basePath: basePath}
}

// DefaultGlobalConfig returns a GlobalConfig populated with the default
// session budgets and output settings.
func DefaultGlobalConfig() *models.GlobalConfig {
	return &models.GlobalConfig{
		MaxTokens:          20000,
		MaxAPICalls:        50,
		MaxComputationTime: 300,
		CostWarnThreshold:  0.8,
		ExportDirectory:    "./exports",
		AutoExport:         true,
		Debug:              false,
	}
}

// LoadGlobalConfig reads .vpkconfig from the base path. A missing file
// yields defaults; an unreadable or malformed file is an error, which the
// caller treats as fatal.
func (cm *viperConfigManager) LoadGlobalConfig() (*models.GlobalConfig, error) {
	cfg := DefaultGlobalConfig()

	v := viper.New()
	v.SetConfigName(".vpkconfig")
	v.SetConfigType("yaml")
	v.AddConfigPath(cm.basePath)

	v.SetDefault("budgets.max_tokens", cfg.MaxTokens)
	v.SetDefault("budgets.max_api_calls", cfg.MaxAPICalls)
	v.SetDefault("budgets.max_computation_time", cfg.MaxComputationTime)
	v.SetDefault("budgets.warn_threshold", cfg.CostWarnThreshold)
	v.SetDefault("output.export_directory", cfg.ExportDirectory)
	v.SetDefault("output.auto_export", cfg.AutoExport)
	v.SetDefault("debug", cfg.Debug)

	// Environment overrides: VPK_MAX_TOKENS, VPK_EXPORT_DIRECTORY, etc.
	v.SetEnvPrefix("VPK")
	_ = v.BindEnv("budgets.max_tokens", "VPK_MAX_TOKENS")
	_ = v.BindEnv("budgets.max_api_calls", "VPK_MAX_API_CALLS")
	_ = v.BindEnv("budgets.max_computation_time", "VPK_MAX_COMPUTATION_TIME")
	_ = v.BindEnv("output.export_directory", "VPK_EXPORT_DIRECTORY")
	_ = v.BindEnv("output.auto_export", "VPK_AUTO_EXPORT")
	_ = v.BindEnv("debug", "VPK_DEBUG")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading .vpkconfig: %w", err)
		}
	}

	cfg.MaxTokens = v.GetInt("budgets.max_tokens")
	cfg.MaxAPICalls = v.GetInt("budgets.max_api_calls")
	cfg.MaxComputationTime = v.GetInt("budgets.max_computation_time")
	cfg.CostWarnThreshold = v.GetFloat64("budgets.warn_threshold")
	cfg.ExportDirectory = v.GetString("output.export_directory")
	cfg.AutoExport = v.GetBool("output.auto_export")
	cfg.Debug = v.GetBool("debug")

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validateConfig(cfg *models.GlobalConfig) error {
	if cfg.MaxTokens <= 0 {
		return fmt.Errorf("validating config: max_tokens must be positive, got %d", cfg.MaxTokens)
	}
	if cfg.MaxAPICalls <= 0 {
		return fmt.Errorf("validating config: max_api_calls must be positive, got %d", cfg.MaxAPICalls)
	}
	if cfg.CostWarnThreshold <= 0 || cfg.CostWarnThreshold > 1 {
		return fmt.Errorf("validating config: warn_threshold must be in (0,1], got %g", cfg.CostWarnThreshold)
	}
	if cfg.ExportDirectory == "" {
		return fmt.Errorf("validating config: export_directory must not be empty")
	}
	return nil
}
