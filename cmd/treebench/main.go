// Copyright ©2024 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command treebench times insertion, search and deletion on the AVL,
// red-black, treap and left-leaning red-black trees over generated or
// imported integer datasets, and reports the results as a table and charts.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/biogo/bst/bench"
)

const (
	chartWidth  = 72
	chartHeight = 20
)

var (
	logLevel string
	logFile  string
)

func main() {
	if err := execute(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// execute runs the command tree with args and closes the log file whether
// or not the command succeeded.
func execute(args []string, stdout, stderr io.Writer) error {
	defer closeLogRotator()
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	return cmd.Execute()
}

// NewRootCommand returns the treebench command tree. Without a subcommand
// it behaves as run.
func NewRootCommand() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:          "treebench",
		Short:        "Benchmark balanced binary search trees",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := setLogLevels(logLevel); err != nil {
				return err
			}
			if logFile != "" {
				return initLogRotator(logFile)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd, &opts)
		},
	}
	addRunFlags(cmd, &opts)

	cmd.PersistentFlags().StringVar(&logLevel, "loglevel", "info",
		"Logging level for subsystems "+strings.Join(supportedSubsystems(), ", ")+
			" {trace, debug, info, warn, error, critical, off}")
	cmd.PersistentFlags().StringVar(&logFile, "logfile", "", "Also write logs to this rotated file")

	cmd.AddCommand(NewRunCommand())
	cmd.AddCommand(NewExportCommand())

	return cmd
}

type runOptions struct {
	config     string
	sizes      []int
	seed       uint64
	maxKey     int64
	engines    []string
	dataset    string
	chartDir   string
	verify     bool
	noProgress bool
}

func addRunFlags(cmd *cobra.Command, opts *runOptions) {
	def := bench.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&opts.config, "config", "treebench.yaml", "YAML configuration file")
	f.IntSliceVar(&opts.sizes, "sizes", def.Sizes, "Comma separated dataset sizes")
	f.Uint64Var(&opts.seed, "seed", def.Seed, "Seed for datasets, sampling and treap priorities")
	f.Int64Var(&opts.maxKey, "max-key", def.MaxKey, "Upper bound of generated keys")
	f.StringSliceVar(&opts.engines, "engines", nil, "Comma separated engines to run (default all)")
	f.StringVar(&opts.dataset, "dataset", "", "Read keys from this file instead of generating them")
	f.StringVar(&opts.chartDir, "chart-dir", "", "Write charts into this directory")
	f.BoolVar(&opts.verify, "verify", false, "Check tree order and size after each phase")
	f.BoolVar(&opts.noProgress, "no-progress", false, "Do not show a progress bar")
}

// NewRunCommand returns the run subcommand.
func NewRunCommand() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark and print a summary table and charts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd, &opts)
		},
	}
	addRunFlags(cmd, &opts)

	return cmd
}

// NewExportCommand returns the export subcommand.
func NewExportCommand() *cobra.Command {
	var (
		n      int
		seed   uint64
		maxKey int64
		out    string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Generate a dataset and write it to a file, one key per line",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if n < 1 {
				return fmt.Errorf("invalid dataset size %d", n)
			}
			keys := bench.Generate(n, seed, maxKey)
			if err := bench.WriteFile(out, keys); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d keys to %s\n", len(keys), out)
			return nil
		},
	}

	cmd.Flags().IntVar(&n, "n", 1000000, "Number of keys")
	cmd.Flags().Uint64Var(&seed, "seed", 123, "Generator seed")
	cmd.Flags().Int64Var(&maxKey, "max-key", bench.DefaultMaxKey, "Upper bound of generated keys")
	cmd.Flags().StringVarP(&out, "out", "o", "my_dataset.txt", "Output file")

	return cmd
}

// loadConfig reads the configuration file and applies the flags the user set.
func loadConfig(cmd *cobra.Command, opts *runOptions) (bench.Config, error) {
	cfg, err := bench.LoadConfig(opts.config)
	if err != nil {
		return cfg, err
	}
	f := cmd.Flags()
	if f.Changed("sizes") {
		cfg.Sizes = opts.sizes
	}
	if f.Changed("seed") {
		cfg.Seed = opts.seed
	}
	if f.Changed("max-key") {
		cfg.MaxKey = opts.maxKey
	}
	if f.Changed("engines") {
		cfg.Engines = opts.engines
	}
	if f.Changed("verify") {
		cfg.Verify = opts.verify
	}
	return cfg, cfg.Validate()
}

// fitSizes drops the sizes larger than a dataset of n keys. If none remain
// the whole dataset is used.
func fitSizes(sizes []int, n int) []int {
	var fit []int
	for _, s := range sizes {
		if s <= n {
			fit = append(fit, s)
		}
	}
	if len(fit) == 0 {
		fit = []int{n}
	}
	return fit
}

func runBench(cmd *cobra.Command, opts *runOptions) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	var data []int64
	if opts.dataset != "" {
		data, err = bench.ReadFile(opts.dataset)
		if err != nil {
			return err
		}
		if len(data) == 0 {
			return fmt.Errorf("dataset %s is empty", opts.dataset)
		}
		if !cmd.Flags().Changed("sizes") {
			cfg.Sizes = fitSizes(cfg.Sizes, len(data))
		}
		tbchLog.Debugf("Benchmarking sizes %v of %s", cfg.Sizes, opts.dataset)
	}

	engines, err := bench.Select(cfg.Engines)
	if err != nil {
		return err
	}
	bar := newProgressBar(cmd.ErrOrStderr(), len(cfg.Sizes)*len(engines)*len(bench.Ops), !opts.noProgress)
	results, err := bench.Run(cfg, data, func(s bench.Step) {
		bar.Describe(fmt.Sprintf("%-5s %-6s n=%d", s.Engine, s.Op, s.Size))
		bar.Add(1)
	})
	if err != nil {
		bar.Exit()
		return err
	}
	bar.Finish()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, bench.Table(results))
	for _, op := range bench.Ops {
		chart := bench.Chart(results, op, chartWidth, chartHeight)
		fmt.Fprintln(out, chart)
		if opts.chartDir != "" {
			if err := writeChart(opts.chartDir, op, chart); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeChart(dir string, op bench.Op, chart string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	path := filepath.Join(dir, bench.ChartName(op))
	if err := os.WriteFile(path, []byte(chart), 0o644); err != nil {
		return fmt.Errorf("writing chart: %w", err)
	}
	tbchLog.Infof("Wrote %s chart to %s", op, path)
	return nil
}

func newProgressBar(w io.Writer, total int, visible bool) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetVisibility(visible),
		progressbar.OptionSetDescription("benchmarking"),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}
