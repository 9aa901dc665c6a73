package output

import (
	"github.com/goccy/go-json"

	"github.com/nhspension/benefits-calculator/internal/domain"
)

// JSONFormatter serializes the benefit statement as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(statement *domain.BenefitStatement) ([]byte, error) {
	return json.MarshalIndent(statement, "", "  ")
}
