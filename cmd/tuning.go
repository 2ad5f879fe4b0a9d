package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var tuningCmd = &cobra.Command{
	Use:   "tuning",
	Short: "Print the effective valuation tuning as YAML",
	Long: `Print the valuation coefficient set after applying any configured
override file. The output is itself a valid override file, so it can be
dumped, edited and pointed back at via tuning.file or ESTIMATOR_TUNING_FILE.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		tuning, err := cfg.EffectiveTuning()
		if err != nil {
			return err
		}

		outputPath, _ := cmd.Flags().GetString("output")
		w, closeFn, err := openOutput(outputPath)
		if err != nil {
			return err
		}
		defer closeFn()

		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tuning); err != nil {
			return eris.Wrap(err, "tuning: encode")
		}
		return eris.Wrap(enc.Close(), "tuning: flush")
	},
}

func init() {
	tuningCmd.Flags().String("output", "", "output file path (default: stdout)")
	rootCmd.AddCommand(tuningCmd)
}
