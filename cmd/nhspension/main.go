// nhspension is the command-line front end for the NHS pension benefits
// calculator.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/nhspension/benefits-calculator/internal/api"
	"github.com/nhspension/benefits-calculator/internal/calculation"
	"github.com/nhspension/benefits-calculator/internal/config"
	"github.com/nhspension/benefits-calculator/internal/domain"
	"github.com/nhspension/benefits-calculator/internal/output"
)

var (
	configFile string
	format     string
	port       int
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "nhspension",
	Short: "NHS pension benefits calculator",
	Long: `Calculates NHS pension benefits for the 1995 Section, 2008 Section
and 2015 CARE scheme from a YAML scenario configuration: annual pension,
lump sums, early/late retirement adjustments, commutation and
real-terms equivalents.`,
}

var calculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Calculate benefits for the scenarios in a configuration file",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, engine, err := loadConfiguration()
		if err != nil {
			return err
		}

		for _, scenario := range cfg.Scenarios {
			input := scenario.Input.WithDefaults()
			result, err := engine.Calculate(input)
			if err != nil {
				return fmt.Errorf("scenario %q: %w", scenario.Name, err)
			}

			statement := &domain.BenefitStatement{Input: input, Result: *result}
			filename, err := output.GenerateReport(statement, format, scenario.Name)
			if err != nil {
				return err
			}
			fmt.Printf("Scenario %q: wrote %s\n", scenario.Name, filename)
		}
		return nil
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare each scenario across all scheme sections",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, engine, err := loadConfiguration()
		if err != nil {
			return err
		}

		for _, scenario := range cfg.Scenarios {
			input := scenario.Input.WithDefaults()
			result, err := engine.Calculate(input)
			if err != nil {
				return fmt.Errorf("scenario %q: %w", scenario.Name, err)
			}
			comparison, err := engine.CompareSchemes(input)
			if err != nil {
				return fmt.Errorf("scenario %q: %w", scenario.Name, err)
			}

			statement := &domain.BenefitStatement{
				Input:      input,
				Result:     *result,
				Comparison: comparison,
			}
			filename, err := output.GenerateReport(statement, format, scenario.Name)
			if err != nil {
				return err
			}
			fmt.Printf("Scenario %q: wrote %s\n", scenario.Name, filename)
		}
		return nil
	},
}

var exampleCmd = &cobra.Command{
	Use:   "example [file]",
	Short: "Write an example configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "nhspension_example.yaml"
		if len(args) == 1 {
			path = args[0]
		}

		parser := config.NewInputParser()
		if err := config.SaveConfiguration(parser.CreateExampleConfiguration(), path); err != nil {
			return err
		}
		fmt.Printf("Wrote example configuration to %s\n", path)
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the calculator API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		engine := newEngine(domain.DefaultPolicyConstants())
		if configFile != "" {
			_, configured, err := loadConfiguration()
			if err != nil {
				return err
			}
			engine = configured
		}

		router := api.NewRouter(api.NewHandler(engine))
		addr := fmt.Sprintf(":%d", port)
		slog.Info("serving calculator API", "addr", addr)
		return http.ListenAndServe(addr, router)
	},
}

// loadConfiguration reads and validates the configuration file, then
// builds an engine with its policy constants.
func loadConfiguration() (*config.Configuration, *calculation.CalculationEngine, error) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(configFile)
	if err != nil {
		return nil, nil, err
	}
	if err := parser.ValidateConfiguration(cfg); err != nil {
		return nil, nil, err
	}
	return cfg, newEngine(cfg.PolicyConstants()), nil
}

func newEngine(policy domain.PolicyConstants) *calculation.CalculationEngine {
	engine := calculation.NewCalculationEngineWithPolicy(policy)
	if verbose {
		engine.SetLogger(&calculation.SlogLogger{L: slog.Default()})
	}
	return engine
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	calculateCmd.Flags().StringVarP(&configFile, "config", "c", "", "path to YAML configuration file (required)")
	calculateCmd.Flags().StringVarP(&format, "format", "f", "console", "output format (console, json, csv, pdf)")
	calculateCmd.MarkFlagRequired("config")

	compareCmd.Flags().StringVarP(&configFile, "config", "c", "", "path to YAML configuration file (required)")
	compareCmd.Flags().StringVarP(&format, "format", "f", "console", "output format (console, json, csv, pdf)")
	compareCmd.MarkFlagRequired("config")

	serveCmd.Flags().StringVarP(&configFile, "config", "c", "", "optional YAML configuration for policy constants")
	serveCmd.Flags().IntVarP(&port, "port", "p", 8080, "listen port")

	rootCmd.AddCommand(calculateCmd, compareCmd, exampleCmd, serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
