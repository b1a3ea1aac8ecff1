// The main package is a thin command-line exerciser of this module's
// public computation API. It parses a handful of flags, dispatches to one
// algorithm or runs all three for comparison under a timeout, and prints
// the result. Fuller CLI features (calibration sweeps, cancelling a
// running computation) are out of scope for this module; what is here
// exists to demonstrate the library, not to productize it.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/agbru/fibcore/internal/calibration"
	"github.com/agbru/fibcore/internal/cli"
	"github.com/agbru/fibcore/internal/dispatch"
	"github.com/agbru/fibcore/internal/fibonacci"
	"github.com/agbru/fibcore/internal/warmup"
)

const (
	ExitSuccess       = 0
	ExitErrorGeneric  = 1
	ExitErrorTimeout  = 2
	ExitErrorMismatch = 3
	ExitErrorConfig   = 4
)

// AppConfig aggregates the flags this exerciser understands.
type AppConfig struct {
	N       uint64
	Verbose bool
	Details bool
	Timeout time.Duration
	Algo    string
	Warmup  bool
}

func (c AppConfig) Validate() error {
	if c.Timeout <= 0 {
		return errors.New("timeout value must be strictly positive")
	}
	if c.Algo != "all" {
		if _, ok := fibonacci.ParseAlgorithm(c.Algo); !ok {
			return fmt.Errorf("unrecognized algorithm: %q. Valid algorithms: 'all', 'fd', 'par', 'fft', 'adaptive'", c.Algo)
		}
	}
	return nil
}

func main() {
	config, err := parseConfig(os.Args[0], os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(ExitSuccess)
		}
		os.Exit(ExitErrorConfig)
	}
	os.Exit(run(config, os.Stdout))
}

func parseConfig(programName string, args []string, errorWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)

	config := AppConfig{}
	fs.Uint64Var(&config.N, "n", 1000000, "Index 'n' of the Fibonacci number to calculate.")
	fs.BoolVar(&config.Verbose, "v", false, "Display the full value of the result.")
	fs.BoolVar(&config.Verbose, "verbose", false, "Same as -v.")
	fs.BoolVar(&config.Details, "d", false, "Display performance details and result metadata.")
	fs.BoolVar(&config.Details, "details", false, "Same as -d.")
	fs.DurationVar(&config.Timeout, "timeout", 5*time.Minute, "Maximum time to wait for the calculation.")
	fs.StringVar(&config.Algo, "algo", "adaptive", "Algorithm to use: 'all', 'adaptive' (default), 'fd', 'par', or 'fft'.")
	fs.BoolVar(&config.Warmup, "warmup", false, "Run the warm-up routine before calculating.")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	config.Algo = strings.ToLower(config.Algo)
	if err := config.Validate(); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.New("invalid configuration")
	}
	return config, nil
}

func run(config AppConfig, out io.Writer) int {
	if config.Warmup {
		fmt.Fprintln(out, "Running warm-up...")
		warmup.Prewarm()
	}

	fmt.Fprintf(out, "Calculating F(%d) (algo=%s) on %d logical CPUs, %s.\n", config.N, config.Algo, runtime.NumCPU(), runtime.Version())

	if config.Algo == "all" {
		return runComparison(config, out)
	}
	return runSingle(config, out)
}

type namedResult struct {
	name     string
	value    fibonacci.Int
	duration time.Duration
}

func runSingle(config AppConfig, out io.Writer) int {
	progressChan := make(chan fibonacci.ProgressUpdate, 10)
	var wg sync.WaitGroup
	wg.Add(1)
	go cli.DisplayAggregateProgress(&wg, progressChan, 1, out)

	resultCh := make(chan namedResult, 1)
	go func() {
		start := time.Now()
		value := computeSingle(config.N, config.Algo, fibonacci.ChannelProgress(progressChan, 0))
		resultCh <- namedResult{duration: time.Since(start), value: value}
	}()

	var res namedResult
	select {
	case res = <-resultCh:
	case <-time.After(config.Timeout):
		close(progressChan)
		wg.Wait()
		fmt.Fprintf(out, "Status: Failure (Timeout). The execution time limit of %s was exceeded.\n", config.Timeout)
		return ExitErrorTimeout
	}
	close(progressChan)
	wg.Wait()

	fmt.Fprintln(out, "\nGlobal Status: Success.")
	cli.DisplayResult(res.value.Big(), config.N, res.duration, config.Verbose, config.Details, out)
	return ExitSuccess
}

func computeSingle(n uint64, algo string, progress fibonacci.ProgressFunc) fibonacci.Int {
	a, _ := fibonacci.ParseAlgorithm(algo)
	switch a {
	case fibonacci.FastDoubling:
		return fibonacci.FibonacciFastDoublingWithProgress(n, progress)
	case fibonacci.Parallel:
		return fibonacci.FibonacciParallelWithProgress(n, calibration.Threshold(), progress)
	case fibonacci.FFT:
		return fibonacci.FibonacciFFTWithProgress(n, progress)
	default:
		value, err := dispatch.TryAdaptive(n)
		if err != nil {
			progress(1.0)
			return fibonacci.Int{}
		}
		progress(1.0)
		return value
	}
}

func runComparison(config AppConfig, out io.Writer) int {
	type slot struct {
		name string
		run  func() fibonacci.Int
	}
	slots := []slot{
		{"Fast Doubling", func() fibonacci.Int { return fibonacci.FibonacciFastDoubling(config.N) }},
		{"Parallel Doubling", func() fibonacci.Int { return fibonacci.FibonacciParallel(config.N, calibration.Threshold()) }},
		{"FFT Doubling", func() fibonacci.Int { return fibonacci.FibonacciFFT(config.N) }},
	}

	results := make([]namedResult, len(slots))
	var wg sync.WaitGroup
	for i, s := range slots {
		i, s := i, s
		wg.Add(1)
		go func() {
			defer wg.Done()
			start := time.Now()
			value := s.run()
			results[i] = namedResult{name: s.name, value: value, duration: time.Since(start)}
		}()
	}

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(config.Timeout):
		fmt.Fprintf(out, "Status: Failure (Timeout). The execution time limit of %s was exceeded.\n", config.Timeout)
		return ExitErrorTimeout
	}

	sort.Slice(results, func(i, j int) bool { return results[i].duration < results[j].duration })

	fmt.Fprintln(out, "\n--- Comparison Summary ---")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "Algorithm\tDuration")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%s\n", r.name, r.duration)
	}
	tw.Flush()

	for _, r := range results[1:] {
		if r.value.Cmp(results[0].value) != 0 {
			fmt.Fprintln(out, "\nGlobal Status: CRITICAL FAILURE! An inconsistency was detected between the results of the algorithms.")
			return ExitErrorMismatch
		}
	}

	fmt.Fprintln(out, "\nGlobal Status: Success. All results are consistent.")
	cli.DisplayResult(results[0].value.Big(), config.N, results[0].duration, config.Verbose, config.Details, out)
	return ExitSuccess
}
