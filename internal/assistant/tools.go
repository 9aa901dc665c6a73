package assistant

// Tool is a function-calling tool definition in OpenAI wire format.
type Tool struct {
	Type     string   `json:"type"`
	Function Function `json:"function"`
}

// Function describes a callable function and its JSON-schema parameters.
type Function struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

const updateCalculatorTool = "update_calculator"

// calculatorTools declares the single tool exposed to the model. Its
// parameters mirror the scenario fields one to one; rates are fractions
// (0.02 = 2%), matching the calculator's contract, so tool output can be
// applied without unit conversion.
func calculatorTools() []Tool {
	return []Tool{
		{
			Type: "function",
			Function: Function{
				Name: updateCalculatorTool,
				Description: "Update the pension calculator with new values. Use this when the " +
					"user asks to change calculator settings, run scenarios, or explore " +
					"different options. Only include the fields the user asked to change.",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"scheme": map[string]any{
							"type":        "string",
							"enum":        []string{"1995", "2008", "2015"},
							"description": "The NHS pension scheme section",
						},
						"current_age": map[string]any{
							"type":        "integer",
							"description": "Current age in years (18-75)",
						},
						"retirement_age": map[string]any{
							"type":        "integer",
							"description": "Planned retirement age (55-75)",
						},
						"normal_pension_age": map[string]any{
							"type":        "integer",
							"description": "Normal pension age for the scheme. Typical: 1995=60, 2008=65, 2015=67",
						},
						"current_salary": map[string]any{
							"type":        "number",
							"description": "Annual pensionable pay in GBP (e.g. 45000)",
						},
						"service_years": map[string]any{
							"type":        "number",
							"description": "Total years of NHS pensionable service (0-50)",
						},
						"salary_growth_rate": map[string]any{
							"type":        "number",
							"description": "Expected annual salary growth as a fraction (0.02 = 2%)",
						},
						"investment_growth_rate": map[string]any{
							"type":        "number",
							"description": "CARE revaluation rate as a fraction (0.02 = 2%)",
						},
						"inflation_rate": map[string]any{
							"type":        "number",
							"description": "Assumed inflation rate as a fraction (0.025 = 2.5%)",
						},
						"commutation_proportion": map[string]any{
							"type":        "number",
							"description": "Fraction of pension to exchange for lump sum (0-0.30)",
						},
						"care_earnings_factor": map[string]any{
							"type":        "number",
							"description": "For the 2015 scheme: career average earnings as a multiple of current pay (0.5-1.1)",
						},
					},
					"required": []string{},
				},
			},
		},
	}
}
