package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/asl-graph/databuilder/internal/config"
	"github.com/asl-graph/databuilder/internal/dataset"
)

var signsDataset string

var signsCmd = &cobra.Command{
	Use:   "signs",
	Short: "List the signs the dataset knows",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		if signsDataset != "" {
			cfg.BaseDir = signsDataset
		}
		if cfg.BaseDir == "" {
			return fmt.Errorf("base directory is required (set --dataset or %s)", config.EnvBaseDir)
		}

		ds, err := dataset.Open(cfg.BaseDir)
		if err != nil {
			return err
		}
		defer ds.Close()

		signs, err := ds.Signs()
		if err != nil {
			return err
		}
		for _, sign := range signs {
			recs, err := ds.Recordings(sign, 0)
			if err != nil {
				return err
			}
			fmt.Printf("%s\t%d\n", sign, len(recs))
		}
		return nil
	},
}

func init() {
	signsCmd.Flags().StringVarP(&signsDataset, "dataset", "d", "", "Dataset directory or .db file")
	rootCmd.AddCommand(signsCmd)
}
