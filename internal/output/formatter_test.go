package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhspension/benefits-calculator/internal/calculation"
	"github.com/nhspension/benefits-calculator/internal/domain"
)

func testStatement(t *testing.T) *domain.BenefitStatement {
	t.Helper()

	input := domain.ScenarioInput{
		Scheme:                domain.Scheme1995,
		CurrentAge:            45,
		RetirementAge:         60,
		CurrentSalary:         decimal.NewFromInt(50000),
		ServiceYears:          decimal.NewFromInt(25),
		SalaryGrowthRate:      decimal.NewFromFloat(0.02),
		InflationRate:         decimal.NewFromFloat(0.025),
		CommutationProportion: decimal.NewFromFloat(0.10),
	}.WithDefaults()

	engine := calculation.NewCalculationEngine()
	result, err := engine.Calculate(input)
	require.NoError(t, err)
	comparison, err := engine.CompareSchemes(input)
	require.NoError(t, err)

	return &domain.BenefitStatement{Input: input, Result: *result, Comparison: comparison}
}

func TestGetFormatterByName(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"console", "console"},
		{"text", "console"},
		{"TXT", "console"},
		{"json", "json"},
		{"json-pretty", "json"},
		{"csv", "csv"},
		{"pdf", "pdf"},
		{"statement", "pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := GetFormatterByName(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.expected, f.Name())
		})
	}

	assert.Nil(t, GetFormatterByName("xml"))
}

func TestAvailableFormatterNames(t *testing.T) {
	assert.Equal(t, []string{"console", "csv", "json", "pdf"}, AvailableFormatterNames())
}

func TestConsoleFormatter(t *testing.T) {
	statement := testStatement(t)

	data, err := ConsoleFormatter{}.Format(statement)
	require.NoError(t, err)
	text := string(data)

	assert.Contains(t, text, "NHS PENSION BENEFIT STATEMENT")
	assert.Contains(t, text, "Scheme: 1995 Section")
	assert.Contains(t, text, "ANNUAL PENSION")
	assert.Contains(t, text, "TOTAL LUMP SUM")
	assert.Contains(t, text, "£")
	assert.Contains(t, text, "SCHEME COMPARISON")
	assert.Contains(t, text, "Pension exchanged")
	assert.Contains(t, text, "In today's money")
}

func TestJSONFormatter(t *testing.T) {
	statement := testStatement(t)

	data, err := JSONFormatter{}.Format(statement)
	require.NoError(t, err)

	var decoded domain.BenefitStatement
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, domain.Scheme1995, decoded.Result.Scheme)
	assert.True(t, decoded.Result.AnnualPension.Equal(statement.Result.AnnualPension))
	assert.Len(t, decoded.Comparison, len(statement.Comparison))
}

func TestCSVFormatter(t *testing.T) {
	statement := testStatement(t)

	data, err := CSVFormatter{}.Format(statement)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(data))).ReadAll()
	require.NoError(t, err)

	// Header, statement row, and one comparison row per other scheme.
	require.Len(t, records, 1+len(statement.Comparison))
	assert.Equal(t, "scheme", records[0][0])
	assert.Equal(t, "1995", records[1][0])
	assert.Equal(t, statement.Result.AnnualPension.StringFixed(2), records[1][6])
}

func TestPDFFormatter(t *testing.T) {
	statement := testStatement(t)

	data, err := PDFFormatter{}.Format(statement)
	require.NoError(t, err)
	require.NotEmpty(t, data)
	assert.True(t, strings.HasPrefix(string(data), "%PDF-"))
}

func TestGenerateReportUnsupported(t *testing.T) {
	statement := testStatement(t)
	_, err := GenerateReport(statement, "docx", "scenario")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

// Reports for different scenarios written within the same second must
// not collide: the filename carries the scenario name, not just the
// second-resolution timestamp.
func TestGenerateReportDistinctFilenamesPerScenario(t *testing.T) {
	statement := testStatement(t)

	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })

	first, err := GenerateReport(statement, "json", "1995 Section at NPA")
	require.NoError(t, err)
	second, err := GenerateReport(statement, "json", "2015 CARE with commutation")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
	assert.FileExists(t, filepath.Join(dir, first))
	assert.FileExists(t, filepath.Join(dir, second))
}

func TestReportStem(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"1995 Section at NPA", "pension_statement_1995_section_at_npa"},
		{"  spaced  out  ", "pension_statement_spaced__out"},
		{"weird/!:chars", "pension_statement_weirdchars"},
		{"", "pension_statement"},
		{"///", "pension_statement"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, reportStem(tt.name), "input %q", tt.name)
	}
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "£1234.50", FormatCurrency(decimal.NewFromFloat(1234.5)))
	assert.Equal(t, "2.50%", FormatPercentage(decimal.NewFromFloat(0.025)))
	assert.Equal(t, "0.8847", FormatFactor(decimal.NewFromFloat(0.88474)))
	assert.Equal(t, "£100.00", FormatMonthly(decimal.NewFromInt(1200)))
}
