package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sitescope/estimator-cli/internal/model"
	"github.com/sitescope/estimator-cli/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List stored assessments",
	RunE:  runHistory,
}

func init() {
	f := historyCmd.Flags()
	f.String("kind", "", "filter by kind: plan or valuation")
	f.String("location", "", "filter by location substring")
	f.Int("limit", 20, "maximum number of results")
	f.String("format", "table", "output format: table or json")
	f.String("id", "", "show one assessment in full by ID")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kind, _ := cmd.Flags().GetString("kind")
	location, _ := cmd.Flags().GetString("location")
	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("format")
	id, _ := cmd.Flags().GetString("id")

	if kind != "" && kind != "plan" && kind != "valuation" {
		return eris.Errorf("history: --kind must be plan or valuation (got %q)", kind)
	}
	if format != "table" && format != "json" {
		return eris.Errorf("history: --format must be table or json (got %q)", format)
	}

	st, err := initStore(ctx)
	if err != nil {
		return err
	}
	defer st.Close() //nolint:errcheck

	if id != "" {
		a, err := st.GetAssessment(ctx, id)
		if err != nil {
			return err
		}
		return writeJSONOutput(os.Stdout, a)
	}

	assessments, err := st.ListAssessments(ctx, store.Filter{
		Kind:     model.AssessmentKind(kind),
		Location: location,
		Limit:    limit,
	})
	if err != nil {
		return err
	}

	if format == "json" {
		return writeJSONOutput(os.Stdout, assessments)
	}

	if len(assessments) == 0 {
		fmt.Println("No assessments found.")
		return nil
	}

	fmt.Printf("%-36s %-10s %-30s %-20s\n", "ID", "Kind", "Location", "Created")
	fmt.Println(strings.Repeat("-", 100))
	for _, a := range assessments {
		fmt.Printf("%-36s %-10s %-30s %-20s\n",
			a.ID, a.Kind, truncate(a.Location, 30), a.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

// truncate shortens s to at most max runes, appending "..." when cut.
// Slicing runes rather than bytes keeps multibyte locations intact.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
