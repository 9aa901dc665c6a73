package output

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/nhspension/benefits-calculator/internal/domain"
)

// ErrUnsupportedFormat is returned for format names with no registered
// formatter.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// Formatter defines a pluggable output formatter that returns a byte slice.
// Implementations should be pure (no side effects besides deterministic formatting).
type Formatter interface {
	Format(statement *domain.BenefitStatement) ([]byte, error)
	// Name returns a short identifier for logging / debugging.
	Name() string
}

// WriteFormatted runs a formatter and writes output to a timestamped
// file. The stem keeps reports from different scenarios in the same run
// from colliding on the second-resolution timestamp.
func WriteFormatted(f Formatter, statement *domain.BenefitStatement, stem, ext string) (string, error) {
	data, err := f.Format(statement)
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("%s_%s.%s", stem, time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", err
	}
	return filename, nil
}

// reportStem converts a scenario name into a filesystem-safe filename
// stem, always prefixed so reports are recognizable in a directory
// listing.
func reportStem(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_' || r == '.':
			b.WriteByte('_')
		}
	}
	s := strings.Trim(b.String(), "_")
	if s == "" {
		return "pension_statement"
	}
	return "pension_statement_" + s
}

// builtInFormatters stores available formatters (extended incrementally).
var builtInFormatters = []Formatter{
	ConsoleFormatter{},
	JSONFormatter{},
	CSVFormatter{},
	PDFFormatter{},
}

// GetFormatterByName fetches a registered formatter.
func GetFormatterByName(name string) Formatter {
	n := NormalizeFormatName(name)
	for _, f := range builtInFormatters {
		if f.Name() == n {
			return f
		}
	}
	return nil
}

// GenerateReport runs the named formatter and writes its output file.
// The name (typically the scenario name) becomes part of the filename.
func GenerateReport(statement *domain.BenefitStatement, format, name string) (string, error) {
	f := GetFormatterByName(format)
	if f == nil {
		return "", fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
			strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	ext := f.Name()
	if ext == "console" {
		ext = "txt"
	}
	return WriteFormatted(f, statement, reportStem(name), ext)
}

// aliasMap provides user-friendly synonyms for format names.
var aliasMap = map[string]string{
	"text":        "console",
	"txt":         "console",
	"json-pretty": "json",
	"statement":   "pdf",
}

// NormalizeFormatName lowers and resolves aliases.
func NormalizeFormatName(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	if mapped, ok := aliasMap[n]; ok {
		return mapped
	}
	return n
}

// AvailableFormatterNames returns the canonical formatter names.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(builtInFormatters))
	for _, f := range builtInFormatters {
		names = append(names, f.Name())
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases returns the supported alias keys.
func AvailableFormatAliases() []string {
	keys := make([]string, 0, len(aliasMap))
	for k := range aliasMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
