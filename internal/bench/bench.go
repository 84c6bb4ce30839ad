// Package bench measures how IDOS computation scales with device size.
package bench

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"runtime"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/spectra/internal/kpm"
	"github.com/san-kum/spectra/internal/lattice"
	"github.com/san-kum/spectra/internal/spectral"
	"github.com/san-kum/spectra/internal/templates"
)

// Config controls a scaling run. Sizes[0] is a warm-up and is excluded
// from the scaling fit. The default times the KPM path.
type Config struct {
	Template    string
	Sizes       []int
	Energies    []float64
	UseApprox   bool
	Workers     int
	Hamiltonian lattice.Params
	KPM         kpm.Config
}

func DefaultConfig() Config {
	return Config{
		Template:    "hbar_4t",
		Sizes:       []int{10, 10, 20, 50},
		Energies:    floats.Span(make([]float64, 40), 0.1, 0.49),
		UseApprox:   true,
		Workers:     1,
		Hamiltonian: lattice.DefaultParams(),
		KPM:         kpm.DefaultConfig(),
	}
}

// Result is one size measurement.
type Result struct {
	Size      int
	Sites     int
	Elapsed   time.Duration
	Allocated uint64 // bytes allocated during the run
	Warmup    bool
}

// Run builds the template at each size with templates.Scaled geometry and
// times one IDOS computation.
func Run(ctx context.Context, cfg Config, registry *templates.Registry, logger *slog.Logger) ([]Result, error) {
	if len(cfg.Sizes) == 0 {
		return nil, fmt.Errorf("no sizes to benchmark")
	}
	if logger == nil {
		logger = slog.Default()
	}

	results := make([]Result, 0, len(cfg.Sizes))
	for i, n := range cfg.Sizes {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		r, err := runSize(ctx, cfg, registry, n)
		if err != nil {
			return results, fmt.Errorf("size %d: %w", n, err)
		}
		r.Warmup = i == 0
		results = append(results, r)

		logger.Info("bench",
			"size", n, "sites", r.Sites, "elapsed", r.Elapsed.Round(time.Millisecond),
			"alloc_mb", float64(r.Allocated)/(1<<20), "warmup", r.Warmup)
	}
	return results, nil
}

func runSize(ctx context.Context, cfg Config, registry *templates.Registry, n int) (Result, error) {
	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	start := time.Now()

	sys, err := registry.Build(cfg.Template, templates.Scaled(n), cfg.Hamiltonian, cfg.KPM)
	if err != nil {
		return Result{}, err
	}
	if _, err := spectral.IDOS(ctx, sys, cfg.Energies, cfg.UseApprox, spectral.WithWorkers(cfg.Workers)); err != nil {
		return Result{}, err
	}

	elapsed := time.Since(start)
	runtime.ReadMemStats(&after)

	return Result{
		Size:      n,
		Sites:     sys.NumSites(),
		Elapsed:   elapsed,
		Allocated: after.TotalAlloc - before.TotalAlloc,
	}, nil
}

// ScalingExponent fits elapsed ~ sites^k on a log-log scale over the
// non-warm-up results and returns k. It needs two distinct site counts.
func ScalingExponent(results []Result) (float64, error) {
	var xs, ys []float64
	for _, r := range results {
		if r.Warmup || r.Sites <= 0 || r.Elapsed <= 0 {
			continue
		}
		xs = append(xs, math.Log(float64(r.Sites)))
		ys = append(ys, math.Log(r.Elapsed.Seconds()))
	}
	if len(xs) < 2 || floats.Max(xs) == floats.Min(xs) {
		return 0, fmt.Errorf("need at least two distinct sizes, have %d", len(xs))
	}
	_, slope := stat.LinearRegression(xs, ys, nil, false)
	return slope, nil
}
