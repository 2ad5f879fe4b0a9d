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
	"github.com/sitescope/estimator-cli/internal/plan"
)

var planCmd = &cobra.Command{
	Use:   "plan <analysis.json>",
	Short: "Estimate remaining labor, machinery, materials and paint",
	Long: `Compute the resource plan for a site analysis record.

Reads the analyzer output as JSON (use "-" for stdin), estimates the
remaining-work requirement tables and the qualitative guidance lists, and
writes the result as a table or JSON.

Examples:
  # Human-readable tables
  plan site.json

  # Raw JSON, persisted to the assessment store
  plan site.json --format json --save

  # From a pipeline
  analyzer --site 42 | plan - --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	f := planCmd.Flags()
	f.String("output", "", "output file path (default: stdout)")
	f.String("format", "table", "output format: table or json")
	f.Bool("save", false, "save the result to the assessment store")

	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	format, _ := cmd.Flags().GetString("format")
	outputPath, _ := cmd.Flags().GetString("output")
	save, _ := cmd.Flags().GetBool("save")

	if format != "table" && format != "json" {
		return eris.Errorf("plan: --format must be table or json (got %q)", format)
	}

	analysis, err := loadAnalysis(args[0])
	if err != nil {
		return err
	}

	output := plan.Build(analysis.PlanInput())

	zap.L().Info("plan computed",
		zap.String("location", analysis.Location),
		zap.String("stage", analysis.StageOfConstruction),
		zap.Float64("progress", output.ProgressValue),
	)

	w, closeFn, err := openOutput(outputPath)
	if err != nil {
		return err
	}
	defer closeFn()

	switch format {
	case "json":
		if err := writeJSONOutput(w, output); err != nil {
			return err
		}
	case "table":
		writePlanTables(w, output)
	}

	if save {
		id, err := saveAssessment(ctx, model.KindPlan, analysis, output)
		if err != nil {
			return eris.Wrap(err, "plan: save")
		}
		fmt.Fprintf(os.Stderr, "Saved assessment %s\n", id)
	}

	return nil
}

func writePlanTables(w *os.File, out plan.Output) {
	fmt.Fprintf(w, "Remaining progress basis: %.0f%%   Labor availability: %s   Location cost index: %.2f\n\n",
		out.ProgressValue, out.LaborAvailability, out.LocationCostIndex)

	fmt.Fprintln(w, "Labor")
	fmt.Fprintf(w, "  %-22s %9s %13s %11s %6s %14s\n", "Role", "Required", "Availability", "Rate/day", "Days", "Total")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 80))
	for _, l := range out.Labor {
		money.Fprintf(w, "  %-22s %9d %13s %11.0f %6d %14.2f\n",
			l.Role, l.Required, l.Availability, l.DailyRateUSD, l.EstimatedDays, l.TotalCostUSD)
	}

	fmt.Fprintln(w, "\nMachinery")
	fmt.Fprintf(w, "  %-22s %6s %13s %10s %7s %14s\n", "Machine", "Units", "Availability", "Rate/hr", "Hours", "Total")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 80))
	for _, m := range out.Machinery {
		money.Fprintf(w, "  %-22s %6d %13s %10.0f %7d %14.2f\n",
			m.Machine, m.Units, m.Availability, m.HourlyRateUSD, m.EstimatedHours, m.TotalCostUSD)
	}

	fmt.Fprintln(w, "\nMaterials")
	fmt.Fprintf(w, "  %-22s %9s %-8s %13s %10s %14s\n", "Item", "Quantity", "Unit", "Availability", "Unit cost", "Total")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 84))
	for _, m := range out.Materials {
		money.Fprintf(w, "  %-22s %9d %-8s %13s %10.2f %14.2f\n",
			m.Item, m.Quantity, m.Unit, m.Availability, m.UnitCostUSD, m.TotalCostUSD)
	}

	fmt.Fprintln(w, "\nPaint")
	fmt.Fprintf(w, "  %-16s %-22s %-9s %8s %12s\n", "Zone", "Shade", "Code", "Liters", "Status")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 72))
	for _, p := range out.Paints {
		fmt.Fprintf(w, "  %-16s %-22s %-9s %8d %12s\n", p.Zone, p.Shade, p.ColorCode, p.Liters, p.Status)
	}

	writeInsightList(w, "Components", out.Components)
	writeInsightList(w, "Techniques", out.Techniques)
	writeInsightList(w, "Special requirements", out.SpecialRequirements)
	writeInsightList(w, "Vernacular materials", out.VernacularMaterials)
	writeInsightList(w, "Construction insights", out.ConstructionInsights)
	writeInsightList(w, "Procurement insights", out.ProcurementInsights)
	writeInsightList(w, "Completion insights", out.CompletionInsights)
}

func writeInsightList(w *os.File, title string, entries []string) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", title)
	for _, e := range entries {
		fmt.Fprintf(w, "  - %s\n", e)
	}
}
