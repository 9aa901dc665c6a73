package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/nhspension/benefits-calculator/internal/domain"
)

// Scenario is a named calculator scenario in a configuration file.
type Scenario struct {
	Name  string               `yaml:"name" json:"name"`
	Input domain.ScenarioInput `yaml:"input" json:"input"`
}

// Configuration represents the complete input configuration: optional
// policy constant overrides plus one or more scenarios.
type Configuration struct {
	Policy    *domain.PolicyConstants `yaml:"policy,omitempty" json:"policy,omitempty"`
	Scenarios []Scenario              `yaml:"scenarios" json:"scenarios"`
}

// PolicyConstants returns the configured policy constants, or the
// defaults when the file does not override them.
func (c *Configuration) PolicyConstants() domain.PolicyConstants {
	if c.Policy == nil {
		return domain.DefaultPolicyConstants()
	}
	return *c.Policy
}

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML file
func (ip *InputParser) LoadFromFile(filename string) (*Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var config Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Validate the configuration
	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration through the
// same path the calculator itself uses.
func (ip *InputParser) ValidateConfiguration(config *Configuration) error {
	policy := config.PolicyConstants()
	if err := policy.Validate(); err != nil {
		return fmt.Errorf("policy validation failed: %w", err)
	}

	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	for i, scenario := range config.Scenarios {
		if scenario.Name == "" {
			return fmt.Errorf("scenario %d validation failed: scenario name is required", i)
		}
		if err := scenario.Input.WithDefaults().Validate(policy); err != nil {
			return fmt.Errorf("scenario %q validation failed: %w", scenario.Name, err)
		}
	}

	return nil
}

// CreateExampleConfiguration creates an example configuration file
func (ip *InputParser) CreateExampleConfiguration() *Configuration {
	policy := domain.DefaultPolicyConstants()

	return &Configuration{
		Policy: &policy,
		Scenarios: []Scenario{
			{
				Name: "1995 Section at NPA",
				Input: domain.ScenarioInput{
					Scheme:           domain.Scheme1995,
					CurrentAge:       50,
					RetirementAge:    60,
					CurrentSalary:    decimal.NewFromInt(50000),
					ServiceYears:     decimal.NewFromInt(25),
					SalaryGrowthRate: decimal.NewFromFloat(0.02),
					InflationRate:    decimal.NewFromFloat(0.025),
				},
			},
			{
				Name: "2015 CARE with commutation",
				Input: domain.ScenarioInput{
					Scheme:                domain.Scheme2015,
					CurrentAge:            45,
					RetirementAge:         67,
					CurrentSalary:         decimal.NewFromInt(40000),
					ServiceYears:          decimal.NewFromInt(42),
					SalaryGrowthRate:      decimal.NewFromFloat(0.02),
					InvestmentGrowthRate:  decimal.NewFromFloat(0.04),
					InflationRate:         decimal.NewFromFloat(0.025),
					CommutationProportion: decimal.NewFromFloat(0.15),
					CareEarningsFactor:    decimal.NewFromFloat(0.8),
				},
			},
		},
	}
}

// SaveConfiguration writes a configuration to a YAML file.
func SaveConfiguration(config *Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0644)
}
