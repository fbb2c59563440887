// Command colbench exercises the array backends and reports wall-clock
// timings for fills, sorts and parallel reductions. It is a smoke and sizing
// tool, not a statistically rigorous benchmark harness.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tabular-io/columnstore/pkg/array"
	"github.com/tabular-io/columnstore/pkg/array/factory"
	"github.com/tabular-io/columnstore/pkg/config"
	"github.com/tabular-io/columnstore/pkg/logger"
	"github.com/tabular-io/columnstore/pkg/reduce"
)

var version = "0.1.0"

func main() {
	root := &cobra.Command{
		Use:   "colbench",
		Short: "Benchmark the columnstore array backends",
		Long: `colbench builds arrays in each storage mode, runs a fixed workload
(fill, sort, bounds, count) against them and prints per-operation timings.`,
	}

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("colbench v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List supported array types and storage modes",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Types:")
			for _, t := range []factory.Type{
				factory.Bool, factory.Int, factory.Int64, factory.Float64,
				factory.String, factory.Object, factory.Currency, factory.Year,
				factory.Zone, factory.LocalDate, factory.LocalTime,
				factory.LocalDateTime, factory.Instant, factory.Zoned,
				factory.Enum,
			} {
				fmt.Printf("  - %s\n", t)
			}
			fmt.Println("\nModes:")
			for _, m := range []factory.Mode{factory.Dense, factory.Mapped, factory.Sparse} {
				fmt.Printf("  - %s\n", m)
			}
		},
	})

	var (
		length    int
		modes     []string
		threshold int
		seed      int64
		baseDir   string
		logLevel  string
	)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark workload",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := logger.Init(logger.Config{Level: logLevel, Encoding: "console"}); err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			cfg := config.Default()
			if baseDir != "" {
				cfg.BaseDir = baseDir
			}
			if threshold > 0 {
				cfg.SplitThreshold = threshold
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runWorkload(length, modes, seed, cfg)
		},
	}
	runCmd.Flags().IntVarP(&length, "length", "n", 1_000_000, "Array length per workload")
	runCmd.Flags().StringSliceVar(&modes, "modes", []string{"dense", "mapped", "sparse"}, "Storage modes to benchmark")
	runCmd.Flags().IntVar(&threshold, "split-threshold", 0, "Fork-join split threshold (0 uses the configured default)")
	runCmd.Flags().Int64Var(&seed, "seed", 1, "Seed for the generated data")
	runCmd.Flags().StringVar(&baseDir, "base-dir", "", "Directory for mapped array backing files (default from config)")
	runCmd.Flags().StringVar(&logLevel, "log-level", "error", "Log level (debug, info, warn, error)")
	root.AddCommand(runCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type timing struct {
	mode, op string
	elapsed  time.Duration
}

func runWorkload(length int, modes []string, seed int64, cfg *config.StorageConfig) error {
	log := logger.Get().With(zap.String("component", "colbench"))
	log.Info("starting workload",
		zap.Int("length", length),
		zap.Strings("modes", modes),
		zap.Int("split_threshold", cfg.SplitThreshold))

	var timings []timing
	for _, mode := range modes {
		rows, err := benchmarkMode(factory.Mode(mode), length, seed, cfg)
		if err != nil {
			return err
		}
		timings = append(timings, rows...)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tOPERATION\tELAPSED\tPER ELEMENT")
	for _, t := range timings {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1fns\n",
			t.mode, t.op, t.elapsed.Round(time.Microsecond),
			float64(t.elapsed.Nanoseconds())/float64(length))
	}
	return w.Flush()
}

func benchmarkMode(mode factory.Mode, length int, seed int64, cfg *config.StorageConfig) ([]timing, error) {
	a, err := factory.New(factory.Int, length, int32(0),
		factory.WithMode(mode), factory.WithConfig(cfg))
	if err != nil {
		return nil, err
	}
	defer func() { _ = a.Close() }()

	rng := rand.New(rand.NewSource(seed))
	var timings []timing
	record := func(op string, run func()) {
		start := time.Now()
		run()
		timings = append(timings, timing{mode: string(mode), op: op, elapsed: time.Since(start)})
	}

	record("fill", func() {
		for i := 0; i < length; i++ {
			a.SetValue(i, int32(rng.Intn(length)))
		}
	})
	record("sort", func() {
		a.Sort(0, length, 1)
	})
	record("bounds", func() {
		if _, ok := reduce.BoundsOf(a, 0, length-1, reduce.WithConfig(cfg)); !ok {
			panic("bounds produced no result for a non-empty range")
		}
	})
	record("count", func() {
		mid := int32(length / 2)
		reduce.Count(a, 0, length-1,
			func(a array.Array, i int) bool { return a.Int(i) < mid },
			reduce.WithConfig(cfg))
	})

	return timings, nil
}
