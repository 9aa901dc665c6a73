package api

import (
	"net/http"

	"github.com/goccy/go-json"

	"github.com/nhspension/benefits-calculator/internal/assistant"
	"github.com/nhspension/benefits-calculator/internal/calculation"
	"github.com/nhspension/benefits-calculator/internal/domain"
)

// apiKeyHeader carries the caller's language-model API key. The key is
// used for the single outbound call and never stored or logged.
const apiKeyHeader = "X-API-Key"

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Engine *calculation.CalculationEngine

	// newAssistant builds a per-request assistant from the caller's API
	// key. Overridable in tests.
	newAssistant func(apiKey string) *assistant.Assistant
}

// NewHandler creates a handler backed by the given engine.
func NewHandler(engine *calculation.CalculationEngine) *Handler {
	return &Handler{
		Engine: engine,
		newAssistant: func(apiKey string) *assistant.Assistant {
			return assistant.NewAssistant(assistant.NewClient(apiKey), engine)
		},
	}
}

// ErrorResponse is the error envelope for all endpoints. Field and Code
// are set for validation errors only.
type ErrorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
	Code  string `json:"code,omitempty"`
}

// Calculate computes benefits for one scenario.
// POST /api/calculate
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var input domain.ScenarioInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.Engine.Calculate(input)
	if err != nil {
		writeCalculationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, domain.BenefitStatement{
		Input:  input.WithDefaults(),
		Result: *result,
	})
}

// Compare evaluates the same inputs under every scheme section.
// POST /api/compare
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	var input domain.ScenarioInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rows, err := h.Engine.CompareSchemes(input)
	if err != nil {
		writeCalculationError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"comparison": rows})
}

// ListSchemes returns the scheme rule table and active policy constants.
// GET /api/schemes
func (h *Handler) ListSchemes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"schemes": domain.AllSchemeRules(),
		"policy":  h.Engine.Policy,
	})
}

// AssistantMessageRequest is one chat turn from the client, carrying the
// full scenario and conversation so the server stays stateless.
type AssistantMessageRequest struct {
	Message  string               `json:"message"`
	Scenario domain.ScenarioInput `json:"scenario"`
	History  []assistant.Message  `json:"history,omitempty"`
}

// AssistantMessage forwards a user message to the language model and
// returns its reply plus any accepted scenario updates.
// POST /api/assistant/message
func (h *Handler) AssistantMessage(w http.ResponseWriter, r *http.Request) {
	apiKey := r.Header.Get(apiKeyHeader)
	if apiKey == "" {
		writeError(w, http.StatusUnauthorized, "Missing "+apiKeyHeader+" header", nil)
		return
	}

	var req AssistantMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "Message is required", nil)
		return
	}

	a := h.newAssistant(apiKey)
	if a == nil {
		writeError(w, http.StatusUnauthorized, "Invalid API key", nil)
		return
	}

	reply, err := a.Chat(r.Context(), req.Scenario, req.History, req.Message)
	if err != nil {
		if _, ok := domain.IsValidationError(err); ok {
			writeCalculationError(w, err)
			return
		}
		writeError(w, http.StatusBadGateway, "Assistant call failed", err)
		return
	}

	writeJSON(w, http.StatusOK, reply)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Error = message + ": " + err.Error()
	}
	writeJSON(w, status, resp)
}

// writeCalculationError maps validation errors to 400 with the offending
// field named; anything else is a 500.
func writeCalculationError(w http.ResponseWriter, err error) {
	if ve, ok := domain.IsValidationError(err); ok {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: ve.Message,
			Field: ve.Field,
			Code:  ve.Code,
		})
		return
	}
	writeError(w, http.StatusInternalServerError, "Calculation failed", err)
}
