package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/spectra/internal/config"
	"github.com/san-kum/spectra/internal/logging"
	"github.com/san-kum/spectra/internal/templates"
)

var (
	dataDir    string
	logLevel   string
	configFile string
	preset     string

	template  string
	size      int
	hopping   float64
	onsite    float64
	mu        float64
	disorder  float64
	seed      int64
	emin      float64
	emax      float64
	numE      int
	mode      string
	workers   int
	vectors   int
	moments   int
	density   float64
	maxRows   int
	approx    bool
	save      bool
	showBar   bool
	atEnergy  float64
	atDensity float64
	format    string

	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	trials     int

	benchSizes  []int
	benchApprox bool

	logger   *slog.Logger
	registry = templates.NewRegistry()
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := &cobra.Command{
		Use:           "spectra",
		Short:         "density of states and carrier density for tight-binding devices",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			logger = logging.Setup(level, os.Stderr)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".spectra", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")

	dosCmd := &cobra.Command{
		Use:   "dos",
		Short: "direct DOS from scattering states",
		RunE:  runDOS,
	}
	addDeviceFlags(dosCmd)
	dosCmd.Flags().BoolVar(&showBar, "progress", false, "show a progress bar")

	kpmCmd := &cobra.Command{
		Use:   "kpm",
		Short: "DOS from the kernel polynomial method",
		RunE:  runKPM,
	}
	addDeviceFlags(kpmCmd)

	idosCmd := &cobra.Command{
		Use:   "idos",
		Short: "integrated density of states",
		RunE:  runIDOS,
	}
	addDeviceFlags(idosCmd)
	idosCmd.Flags().BoolVar(&approx, "approx", false, "use the kernel polynomial method")
	idosCmd.Flags().BoolVar(&save, "save", false, "store the result under the data directory")
	idosCmd.Flags().BoolVar(&showBar, "progress", false, "show a progress bar (direct mode)")

	invertCmd := &cobra.Command{
		Use:   "invert [run_id]",
		Short: "convert between energy and density using a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  invertRun,
	}
	invertCmd.Flags().Float64Var(&atEnergy, "energy", 0, "energy to convert to density")
	invertCmd.Flags().Float64Var(&atDensity, "density", 0, "density to convert to energy")
	invertCmd.MarkFlagsMutuallyExclusive("energy", "density")
	invertCmd.MarkFlagsOneRequired("energy", "density")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "energy at the target density across a parameter or disorder seeds",
		RunE:  runSweep,
	}
	addDeviceFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "mu", "hamiltonian parameter to vary")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first parameter value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.5, "last parameter value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 6, "number of parameter values")
	sweepCmd.Flags().IntVar(&trials, "trials", 0, "average over this many disorder seeds instead")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "time IDOS against device size",
		RunE:  runBench,
	}
	benchCmd.Flags().StringVar(&template, "template", "hbar_4t", "device template")
	benchCmd.Flags().IntSliceVar(&benchSizes, "sizes", []int{10, 10, 20, 50}, "leg lengths (first is warm-up)")
	benchCmd.Flags().BoolVar(&benchApprox, "approx", true, "use the kernel polynomial method")
	benchCmd.Flags().IntVar(&workers, "workers", 1, "parallel energy solves")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&format, "format", "json", "json, csv or cbor")

	shellCmd := &cobra.Command{
		Use:   "shell [run_id]",
		Short: "interactive energy/density lookups on a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  runShell,
	}

	templatesCmd := &cobra.Command{
		Use:   "templates",
		Short: "list device templates",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range registry.List() {
				t, _ := registry.Get(name)
				fmt.Printf("  %-10s %s (leads: %s)\n", name, t.Description, strings.Join(t.Leads, ", "))
			}
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [template]",
		Short: "list available presets for a template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for template: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(dosCmd, kpmCmd, idosCmd, invertCmd, sweepCmd, benchCmd, listCmd, exportCmd, shellCmd, templatesCmd, presetsCmd, initCmd)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addDeviceFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&template, "template", def.Template, "device template")
	f.IntVar(&size, "size", config.DefaultSize, "leg length; other dimensions scale with it")
	f.Float64Var(&hopping, "t", def.Hamiltonian.T, "hopping")
	f.Float64Var(&onsite, "onsite", 0, "onsite energy")
	f.Float64Var(&mu, "mu", 0, "chemical potential")
	f.Float64Var(&disorder, "disorder", 0, "uniform disorder strength")
	f.Int64Var(&seed, "seed", 0, "disorder seed")
	f.Float64Var(&emin, "emin", def.Energies.Min, "lowest energy")
	f.Float64Var(&emax, "emax", def.Energies.Max, "highest energy")
	f.IntVar(&numE, "num", def.Energies.Num, "number of energies")
	f.StringVar(&mode, "mode", def.Mode, "direct or kpm")
	f.IntVar(&workers, "workers", def.Workers, "parallel energy solves")
	f.IntVar(&vectors, "vectors", def.KPM.Vectors, "random vectors for kpm")
	f.IntVar(&moments, "moments", def.KPM.Moments, "initial kpm moments")
	f.Float64Var(&density, "density", def.TargetDensity, "target carrier density")
	f.IntVar(&maxRows, "rows", 20, "table rows to print (0 prints all)")
}

// resolveConfig layers defaults, then the preset, then the config file,
// then any flag set on the command line.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	flags := cmd.Flags()

	if preset != "" {
		name := cfg.Template
		if flags.Lookup("template") != nil && flags.Changed("template") {
			name = template
		}
		p := config.GetPreset(name, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(name))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadOnto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	changed := func(name string) bool {
		return flags.Lookup(name) != nil && flags.Changed(name)
	}
	if changed("template") {
		cfg.Template = template
	}
	if changed("size") {
		cfg.Geometry = templates.Scaled(size)
	}
	if changed("t") {
		cfg.Hamiltonian.T = hopping
	}
	if changed("onsite") {
		cfg.Hamiltonian.Onsite = onsite
	}
	if changed("mu") {
		cfg.Hamiltonian.Mu = mu
	}
	if changed("disorder") {
		cfg.Hamiltonian.Disorder = disorder
	}
	if changed("seed") {
		cfg.Hamiltonian.Seed = seed
	}
	if changed("emin") {
		cfg.Energies.Min = emin
	}
	if changed("emax") {
		cfg.Energies.Max = emax
	}
	if changed("num") {
		cfg.Energies.Num = numE
	}
	if changed("mode") {
		cfg.Mode = mode
	}
	if changed("approx") && approx {
		cfg.Mode = config.ModeKPM
	}
	if changed("workers") {
		cfg.Workers = workers
	}
	if changed("vectors") {
		cfg.KPM.Vectors = vectors
	}
	if changed("moments") {
		cfg.KPM.Moments = moments
	}
	if changed("density") {
		cfg.TargetDensity = density
	}

	return cfg, cfg.Validate()
}
