package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/nhspension/benefits-calculator/internal/calculation"
	"github.com/nhspension/benefits-calculator/internal/domain"
)

// Assistant drives one chat turn: it sends the conversation to the model
// with the calculator tool attached, applies any requested field updates
// through full scenario validation, and returns the model's final text.
type Assistant struct {
	client *Client
	engine *calculation.CalculationEngine
}

// NewAssistant pairs a chat client with a calculation engine. Returns
// nil if the client is disabled.
func NewAssistant(client *Client, engine *calculation.CalculationEngine) *Assistant {
	if !client.Enabled() {
		return nil
	}
	return &Assistant{client: client, engine: engine}
}

// Reply is the outcome of one chat turn.
type Reply struct {
	// Message is the model's final natural-language response.
	Message string `json:"message"`
	// Scenario is the (possibly updated) calculator scenario.
	Scenario domain.ScenarioInput `json:"scenario"`
	// Changes lists applied field updates, one line per field.
	Changes []string `json:"changes,omitempty"`
	// Updated reports whether any field update was accepted.
	Updated bool `json:"updated"`
}

// Chat processes one user message against the current scenario. Field
// updates requested by the model are applied to a copy and accepted only
// if the resulting scenario validates; on rejection the scenario is left
// untouched and the validation error is fed back to the model so it can
// explain the problem to the user.
func (a *Assistant) Chat(ctx context.Context, scenario domain.ScenarioInput, history []Message, userMessage string) (*Reply, error) {
	system, err := a.systemPrompt(scenario)
	if err != nil {
		return nil, err
	}

	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: "system", Content: system})
	messages = append(messages, history...)
	messages = append(messages, Message{Role: "user", Content: userMessage})

	reply, err := a.client.ChatCompletion(ctx, messages, calculatorTools())
	if err != nil {
		return nil, err
	}

	if len(reply.ToolCalls) == 0 {
		return &Reply{Message: reply.Content, Scenario: scenario}, nil
	}

	call := reply.ToolCalls[0]
	next, changes, toolResult := a.handleToolCall(scenario, call)

	messages = append(messages, *reply)
	messages = append(messages, Message{
		Role:       "tool",
		ToolCallID: call.ID,
		Content:    toolResult,
	})

	final, err := a.client.ChatCompletion(ctx, messages, nil)
	if err != nil {
		return nil, err
	}

	return &Reply{
		Message:  final.Content,
		Scenario: next,
		Changes:  changes,
		Updated:  len(changes) > 0,
	}, nil
}

// handleToolCall applies an update_calculator call and renders its
// result text for the follow-up completion. Model output is never
// trusted: arguments go through the same validation path as any other
// input, and a rejected update leaves the scenario unchanged.
func (a *Assistant) handleToolCall(scenario domain.ScenarioInput, call ToolCall) (domain.ScenarioInput, []string, string) {
	if call.Function.Name != updateCalculatorTool {
		return scenario, nil, fmt.Sprintf("unknown tool %q", call.Function.Name)
	}

	var args map[string]any
	if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
		return scenario, nil, fmt.Sprintf("invalid tool arguments: %v", err)
	}

	updates, err := ParseUpdates(args)
	if err != nil {
		return scenario, nil, fmt.Sprintf("update rejected: %v", err)
	}
	if len(updates) == 0 {
		return scenario, nil, "No changes made to the calculator."
	}

	next, changes, err := ApplyUpdates(scenario, a.engine.Policy, updates)
	if err != nil {
		return scenario, nil, fmt.Sprintf("update rejected: %v", err)
	}
	return next, changes, "Calculator updated:\n" + strings.Join(changes, "\n")
}

// systemPrompt embeds the current scenario and its computed results so
// the model can answer questions without a round trip.
func (a *Assistant) systemPrompt(scenario domain.ScenarioInput) (string, error) {
	result, err := a.engine.Calculate(scenario)
	if err != nil {
		return "", fmt.Errorf("calculate current scenario: %w", err)
	}

	in := scenario.WithDefaults()
	var b strings.Builder
	b.WriteString("You are an expert NHS pension advisor assistant integrated with an interactive pension calculator.\n\n")

	b.WriteString("CURRENT CALCULATOR STATE:\n")
	fmt.Fprintf(&b, "- Pension scheme: %s Section\n", in.Scheme)
	fmt.Fprintf(&b, "- Current age: %d\n", in.CurrentAge)
	fmt.Fprintf(&b, "- Retirement age: %d\n", in.RetirementAge)
	fmt.Fprintf(&b, "- Normal pension age: %d\n", in.NormalPensionAge)
	fmt.Fprintf(&b, "- Current salary: £%s\n", in.CurrentSalary.StringFixed(0))
	fmt.Fprintf(&b, "- Years of service: %s\n", in.ServiceYears.String())
	fmt.Fprintf(&b, "- Salary growth rate: %s\n", in.SalaryGrowthRate.String())
	fmt.Fprintf(&b, "- Investment growth rate: %s\n", in.InvestmentGrowthRate.String())
	fmt.Fprintf(&b, "- Inflation rate: %s\n", in.InflationRate.String())
	fmt.Fprintf(&b, "- Commutation proportion: %s\n", in.CommutationProportion.String())
	fmt.Fprintf(&b, "- CARE earnings factor: %s\n\n", in.CareEarningsFactor.String())

	b.WriteString("CURRENT CALCULATION RESULTS:\n")
	fmt.Fprintf(&b, "- Annual pension (after commutation): £%s\n", result.AnnualPension.StringFixed(2))
	fmt.Fprintf(&b, "- Total lump sum: £%s\n", result.TotalLumpSum.StringFixed(2))
	fmt.Fprintf(&b, "- Base annual pension: £%s\n", result.BasePension.StringFixed(2))
	fmt.Fprintf(&b, "- Early/late adjustment factor: %s\n\n", result.AdjustmentFactor.StringFixed(4))

	b.WriteString("NHS PENSION SCHEME INFORMATION:\n")
	for _, rules := range domain.AllSchemeRules() {
		fmt.Fprintf(&b, "- %s Section: %s, Normal Pension Age %d\n",
			rules.Scheme, rules.Description, rules.NormalPensionAge)
	}
	b.WriteString("\n")

	b.WriteString("All rates in the calculator are fractions, not percentages (0.02 means 2%).\n")
	b.WriteString("Use the update_calculator function to modify values when the user wants to " +
		"change their details, explore scenarios, switch schemes or adjust commutation. " +
		"Only include the specific fields the user asked to change; never reset or modify " +
		"other values. Always explain the impact of changes.\n")

	return b.String(), nil
}
