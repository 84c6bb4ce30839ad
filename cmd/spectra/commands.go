package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/spectra/internal/bench"
	"github.com/san-kum/spectra/internal/config"
	"github.com/san-kum/spectra/internal/experiment"
	"github.com/san-kum/spectra/internal/progress"
	"github.com/san-kum/spectra/internal/report"
	"github.com/san-kum/spectra/internal/spectral"
	"github.com/san-kum/spectra/internal/storage"
	"github.com/san-kum/spectra/internal/sweep"
)

func setupExperiment(cmd *cobra.Command) (*config.Config, *experiment.Experiment, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	exp := experiment.New(cfg, registry, logger)
	if err := exp.Setup(); err != nil {
		return nil, nil, err
	}
	return cfg, exp, nil
}

// withProgress runs fn directly, or under a progress bar when --progress
// was given.
func withProgress(ctx context.Context, total int, fn func(context.Context, ...spectral.Option) error) error {
	if !showBar {
		return fn(ctx)
	}
	return progress.Run(ctx, total, os.Stderr, func(ctx context.Context, obs spectral.Observer) error {
		return fn(ctx, spectral.WithObserver(obs))
	})
}

func runDOS(cmd *cobra.Command, args []string) error {
	cfg, exp, err := setupExperiment(cmd)
	if err != nil {
		return err
	}

	var dos []float64
	err = withProgress(cmd.Context(), cfg.Energies.Num, func(ctx context.Context, opts ...spectral.Option) error {
		var err error
		dos, err = exp.DOS(ctx, opts...)
		return err
	})
	if err != nil {
		return err
	}
	return report.WriteDOS(os.Stdout, cfg.EnergyRange(), dos, maxRows)
}

func runKPM(cmd *cobra.Command, args []string) error {
	_, exp, err := setupExperiment(cmd)
	if err != nil {
		return err
	}
	res, err := exp.KPM()
	if err != nil {
		return err
	}
	return report.WriteKPM(os.Stdout, res, maxRows)
}

func runIDOS(cmd *cobra.Command, args []string) error {
	cfg, exp, err := setupExperiment(cmd)
	if err != nil {
		return err
	}

	var result *experiment.Result
	total := cfg.Energies.Num
	if cfg.UseApprox() {
		showBar = false
	}
	err = withProgress(cmd.Context(), total, func(ctx context.Context, opts ...spectral.Option) error {
		var err error
		result, err = exp.Run(ctx, opts...)
		return err
	})
	if err != nil {
		return err
	}

	if err := report.WriteIDOS(os.Stdout, result.IDOS, maxRows); err != nil {
		return err
	}
	fmt.Printf("\ncompleted in %v (%d sites)\n", result.Elapsed.Round(time.Millisecond), result.Sites)

	if e, err := spectral.DensityToEnergy(result.IDOS.IDOS, result.IDOS.Energies, cfg.TargetDensity); err == nil {
		fmt.Println(report.Metric(fmt.Sprintf("energy at density %g", cfg.TargetDensity), fmt.Sprintf("%.6g", e)))
	} else {
		fmt.Println(report.Subtle.Render(fmt.Sprintf("density %g: %v", cfg.TargetDensity, err)))
	}

	if !save {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(exp.Metadata(result), storage.TableFrom(result.IDOS))
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func loadResult(runID string) (*spectral.IDOSResult, error) {
	st := storage.New(dataDir)
	table, err := st.LoadTable(runID)
	if err != nil {
		return nil, err
	}
	return &spectral.IDOSResult{Energies: table.Energies, IDOS: table.IDOS, DOS: table.DOS}, nil
}

func invertRun(cmd *cobra.Command, args []string) error {
	res, err := loadResult(args[0])
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("energy") {
		n, err := spectral.EnergyToDensity(res.IDOS, res.Energies, atEnergy)
		if err != nil {
			return err
		}
		fmt.Printf("density at E=%g: %.8g\n", atEnergy, n)
		return nil
	}

	e, err := spectral.DensityToEnergy(res.IDOS, res.Energies, atDensity)
	if err != nil {
		return err
	}
	fmt.Printf("energy at n=%g: %.8g\n", atDensity, e)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if trials > 0 {
		avg, err := sweep.RunDisorderAverage(ctx, cfg, trials, registry, logger)
		if err != nil {
			return err
		}
		return report.WriteDisorder(os.Stdout, avg)
	}

	sw := &sweep.ParameterSweep{
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
	}
	points, err := sweep.RunSweep(ctx, cfg, sw, registry, logger)
	if err != nil {
		return err
	}
	return report.WriteSweep(os.Stdout, sweepParam, points)
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg := bench.DefaultConfig()
	cfg.Template = template
	cfg.Sizes = benchSizes
	cfg.UseApprox = benchApprox
	cfg.Workers = workers

	results, err := bench.Run(cmd.Context(), cfg, registry, logger)
	if err != nil {
		return err
	}
	return report.WriteBench(os.Stdout, results)
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	return report.WriteRuns(os.Stdout, runs)
}

func exportRun(cmd *cobra.Command, args []string) error {
	return storage.New(dataDir).Export(args[0], storage.Format(format), os.Stdout)
}
