package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sitescope/estimator-cli/internal/model"
	"github.com/sitescope/estimator-cli/internal/valuation"
)

var valueCmd = &cobra.Command{
	Use:   "value <analysis.json>",
	Short: "Estimate property, land and project value bands",
	Long: `Compute the market valuation for a site analysis record.

Reads the analyzer output as JSON (use "-" for stdin), resolves the building
typology to a rate corridor, blends the weighted market factors, and writes
the property/land/project value bands with a confidence score.

Examples:
  # Human-readable summary
  value site.json

  # Raw JSON, persisted to the assessment store
  value site.json --format json --save

  # With custom tuning coefficients
  ESTIMATOR_TUNING_FILE=aggressive.yaml value site.json`,
	Args: cobra.ExactArgs(1),
	RunE: runValue,
}

func init() {
	f := valueCmd.Flags()
	f.String("output", "", "output file path (default: stdout)")
	f.String("format", "table", "output format: table or json")
	f.Bool("save", false, "save the result to the assessment store")

	rootCmd.AddCommand(valueCmd)
}

func runValue(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	save, _ := cmd.Flags().GetBool("save")

	if format != "table" && format != "json" {
		return eris.Errorf("value: --format must be table or json (got %q)", format)
	}

	analysis, err := loadAnalysis(args[0])
	if err != nil {
		return err
	}

	tuning, err := cfg.EffectiveTuning()
	if err != nil {
		return err
	}
	engine := valuation.New(tuning)
	result := engine.Compute(analysis.ValuationInput())

	zap.L().Info("valuation computed",
		zap.String("location", analysis.Location),
		zap.String("typology", result.Typology.Key),
		zap.Float64("confidence", result.Confidence),
		zap.Int("warnings", len(result.Warnings)),
	)

	w, closeFn, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer closeFn()

	switch format {
	case "json":
		if err := writeJSONOutput(w, result); err != nil {
			return err
		}
	case "table":
		writeValuationSummary(w, result)
	}

	if save {
		id, err := saveAssessment(ctx, model.KindValuation, analysis, result)
		if err != nil {
			return eris.Wrap(err, "value: save")
		}
		fmt.Fprintf(os.Stderr, "Saved assessment %s\n", id)
	}

	return nil
}

func writeValuationSummary(w *os.File, r valuation.Result) {
	typology := r.Typology.Key
	if typology == "" {
		typology = "(unresolved)"
	}
	fmt.Fprintf(w, "Typology: %s   Class: %s   Basis: %s   Corridor: $%.0f-%.0f /sqm (%s)\n\n",
		typology, r.Typology.MarketClass, r.Typology.Basis, r.Typology.BaseRate, r.Typology.MaxRate, r.Typology.Source)

	fmt.Fprintf(w, "%-10s %18s %18s %18s\n", "", "Low", "Estimate", "High")
	fmt.Fprintln(w, strings.Repeat("-", 68))
	writeBand(w, "Property", r.Property)
	writeBand(w, "Land", r.Land)
	writeBand(w, "Project", r.Project)

	fmt.Fprintf(w, "\nConfidence: %.0f%%   Spread: ±%.0f%%\n", r.Confidence, r.Spread*100)

	if len(r.Warnings) > 0 {
		fmt.Fprintln(w, "\nWarnings")
		for _, warning := range r.Warnings {
			fmt.Fprintf(w, "  - %s\n", warning)
		}
	}
}

func writeBand(w *os.File, label string, b valuation.Band) {
	money.Fprintf(w, "%-10s %18.0f %18.0f %18.0f\n", label, b.Low, b.Base, b.High)
}
