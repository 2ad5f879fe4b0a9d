package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sitescope/estimator-cli/internal/model"
	"github.com/sitescope/estimator-cli/internal/plan"
	"github.com/sitescope/estimator-cli/internal/valuation"
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Assess every analysis file in a directory",
	Long: `Run the estimation engines over a directory of site analysis JSON files.

Each *.json file is processed independently; a failure in one file is logged
and skipped without aborting the batch. Results are persisted to the
assessment store in one batch write when --save is set.

Examples:
  # Plan and value every site, 8 at a time
  batch ./sites --concurrency 8 --save

  # Valuations only
  batch ./sites --kind valuation`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.String("kind", "both", "assessments to run: plan, valuation or both")
	f.Int("concurrency", 4, "number of files processed in parallel")
	f.Bool("save", false, "save results to the assessment store")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kind, _ := cmd.Flags().GetString("kind")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	save, _ := cmd.Flags().GetBool("save")

	if kind != "plan" && kind != "valuation" && kind != "both" {
		return eris.Errorf("batch: --kind must be plan, valuation or both (got %q)", kind)
	}
	if concurrency < 1 {
		return eris.Errorf("batch: --concurrency must be >= 1 (got %d)", concurrency)
	}

	files, err := listAnalysisFiles(args[0])
	if err != nil {
		return err
	}
	if len(files) == 0 {
		zap.L().Info("no analysis files found", zap.String("dir", args[0]))
		return nil
	}

	tuning, err := cfg.EffectiveTuning()
	if err != nil {
		return err
	}
	engine := valuation.New(tuning)

	zap.L().Info("processing batch",
		zap.Int("files", len(files)),
		zap.String("kind", kind),
		zap.Int("concurrency", concurrency),
	)

	var mu sync.Mutex
	var assessments []*model.Assessment
	var succeeded, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, file := range files {
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			log := zap.L().With(zap.String("file", file))

			analysis, err := loadAnalysis(file)
			if err != nil {
				failed.Add(1)
				log.Error("analysis load failed", zap.Error(err))
				return nil // don't abort batch on individual failure
			}

			var records []*model.Assessment
			if kind == "plan" || kind == "both" {
				a, err := buildAssessment(model.KindPlan, analysis, plan.Build(analysis.PlanInput()))
				if err != nil {
					failed.Add(1)
					log.Error("plan failed", zap.Error(err))
					return nil
				}
				records = append(records, a)
			}
			if kind == "valuation" || kind == "both" {
				a, err := buildAssessment(model.KindValuation, analysis, engine.Compute(analysis.ValuationInput()))
				if err != nil {
					failed.Add(1)
					log.Error("valuation failed", zap.Error(err))
					return nil
				}
				records = append(records, a)
			}

			mu.Lock()
			assessments = append(assessments, records...)
			mu.Unlock()

			succeeded.Add(1)
			log.Info("assessment complete", zap.String("location", analysis.Location))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return eris.Wrap(err, "batch processing")
	}

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
		zap.Int("assessments", len(assessments)),
	)

	if save && len(assessments) > 0 {
		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.SaveAssessments(ctx, assessments); err != nil {
			return eris.Wrap(err, "batch: save")
		}
		fmt.Printf("Saved %d assessments\n", len(assessments))
	}

	return nil
}

// listAnalysisFiles returns the sorted *.json files directly under dir.
func listAnalysisFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, eris.Wrapf(err, "batch: read dir %s", dir)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
