package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/asl-graph/databuilder/internal/builder"
	"github.com/asl-graph/databuilder/internal/config"
	"github.com/asl-graph/databuilder/internal/dataset"
	"github.com/asl-graph/databuilder/internal/pipeline"
	"github.com/asl-graph/databuilder/internal/sink"
)

// buildOptions holds the flag overrides for the build command. A zero
// value means "not set, use the config file".
type buildOptions struct {
	BaseDir            string
	OutputDir          string
	Signs              []string
	MaxFilesPerSign    int
	TargetFrames       int
	SmoothingWindow    int
	SmoothingPolyOrder int
	NoProgress         bool
}

var buildOpts buildOptions

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Process recordings into per-sign example documents",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBuild(buildOpts)
	},
}

func init() {
	buildCmd.Flags().StringVarP(&buildOpts.BaseDir, "dataset", "d", "", "Dataset directory or .db file")
	buildCmd.Flags().StringVarP(&buildOpts.OutputDir, "output", "o", "", "Output directory (default: dataset directory)")
	buildCmd.Flags().StringSliceVarP(&buildOpts.Signs, "signs", "s", nil, "Signs to process (default: all)")
	buildCmd.Flags().IntVarP(&buildOpts.MaxFilesPerSign, "max-files", "m", 0, "Maximum recordings per sign")
	buildCmd.Flags().IntVarP(&buildOpts.TargetFrames, "target-frames", "t", 0, "Frames per output example")
	buildCmd.Flags().IntVarP(&buildOpts.SmoothingWindow, "window", "w", 0, "Savitzky-Golay window length (odd)")
	buildCmd.Flags().IntVarP(&buildOpts.SmoothingPolyOrder, "polyorder", "p", 0, "Savitzky-Golay polynomial order")
	buildCmd.Flags().BoolVar(&buildOpts.NoProgress, "no-progress", false, "Disable the progress bar")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(opts buildOptions) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	applyOverrides(&cfg, opts)
	if err := cfg.Validate(); err != nil {
		return err
	}

	ds, err := dataset.Open(cfg.BaseDir)
	if err != nil {
		return err
	}
	defer ds.Close()

	b := builder.New(ds, sink.NewJSON(cfg.OutputDir),
		pipeline.Params{
			TargetFrames:       cfg.TargetFrames,
			SmoothingWindow:    cfg.SmoothingWindow,
			SmoothingPolyOrder: cfg.SmoothingPolyOrder,
		},
		builder.Options{
			Signs:           cfg.Signs,
			MaxFilesPerSign: cfg.MaxFilesPerSign,
			Progress:        !opts.NoProgress,
		})

	summary, err := b.Run()
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "run %s: %d processed, %d skipped\n",
		summary.RunID, summary.Processed, summary.Skipped)
	for _, s := range summary.Signs {
		fmt.Fprintf(os.Stderr, "  %s: %d processed, %d skipped -> %s\n",
			s.Sign, s.Processed, s.Skipped, s.OutputPath)
	}
	return nil
}

func applyOverrides(cfg *config.Config, opts buildOptions) {
	if opts.BaseDir != "" {
		cfg.BaseDir = opts.BaseDir
		if opts.OutputDir == "" && cfg.OutputDir == "" {
			cfg.OutputDir = opts.BaseDir
		}
	}
	if opts.OutputDir != "" {
		cfg.OutputDir = opts.OutputDir
	}
	if len(opts.Signs) > 0 {
		cfg.Signs = opts.Signs
	}
	if opts.MaxFilesPerSign > 0 {
		cfg.MaxFilesPerSign = opts.MaxFilesPerSign
	}
	if opts.TargetFrames > 0 {
		cfg.TargetFrames = opts.TargetFrames
	}
	if opts.SmoothingWindow > 0 {
		cfg.SmoothingWindow = opts.SmoothingWindow
	}
	if opts.SmoothingPolyOrder > 0 {
		cfg.SmoothingPolyOrder = opts.SmoothingPolyOrder
	}
}
