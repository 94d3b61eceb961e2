package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/san-kum/episim/internal/analysis"
	"github.com/san-kum/episim/internal/config"
	"github.com/san-kum/episim/internal/control"
	"github.com/san-kum/episim/internal/epidemic"
	"github.com/san-kum/episim/internal/export"
	"github.com/san-kum/episim/internal/integrators"
	"github.com/san-kum/episim/internal/metrics"
	"github.com/san-kum/episim/internal/models"
	"github.com/san-kum/episim/internal/optim"
	"github.com/san-kum/episim/internal/sim"
	"github.com/san-kum/episim/internal/storage"
	"github.com/san-kum/episim/internal/viz"
)

var (
	dataDir string
	verbose bool

	dt        float64
	duration  float64
	tolerance float64

	s0    float64
	i0    float64
	r0    float64
	e0    float64
	beta  float64
	gamma float64
	sigma float64
	mu    float64

	integrator string
	controller string
	trigger    float64
	release    float64
	reduction  float64

	configFile string
	preset     string

	frameRate int

	betaMin, betaMax     float64
	betaSteps            int
	gammaMin, gammaMax   float64
	gammaSteps           int
	sweepWorkers         int
	outPath              string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "episim",
		Short: "epidemic simulation lab",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
				Level:      level,
				TimeFormat: time.Kitchen,
			})))
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".episim", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "run simulation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot compartment curves of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "S-I phase portrait of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run trajectory to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportCSV(os.Stdout, args[0])
		},
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run trajectory to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export run trajectory as an SVG chart",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&outPath, "out", "trajectory.svg", "output file")

	compareCmd := &cobra.Command{
		Use:   "compare [model] [integrator1] [integrator2] ...",
		Short: "compare integrators on the same model",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	compareCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	compareCmd.Flags().Float64Var(&duration, "tmax", config.DefaultDuration, "time horizon")
	compareCmd.Flags().Float64Var(&beta, "beta", config.DefaultBeta, "transmission rate")
	compareCmd.Flags().Float64Var(&gamma, "gamma", config.DefaultGamma, "recovery rate")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "parallel sweep over a beta/gamma grid",
		RunE:  sweepGrid,
	}
	sweepCmd.Flags().Float64Var(&duration, "tmax", config.DefaultDuration, "time horizon")
	sweepCmd.Flags().Float64Var(&s0, "s0", config.DefaultS, "initial susceptible fraction")
	sweepCmd.Flags().Float64Var(&i0, "i0", config.DefaultI, "initial infected fraction")
	sweepCmd.Flags().Float64Var(&betaMin, "beta-min", 0.1, "sweep lower beta")
	sweepCmd.Flags().Float64Var(&betaMax, "beta-max", 1.5, "sweep upper beta")
	sweepCmd.Flags().IntVar(&betaSteps, "beta-steps", 8, "sweep beta count")
	sweepCmd.Flags().Float64Var(&gammaMin, "gamma-min", 0.1, "sweep lower gamma")
	sweepCmd.Flags().Float64Var(&gammaMax, "gamma-max", 1.0, "sweep upper gamma")
	sweepCmd.Flags().IntVar(&gammaSteps, "gamma-steps", 4, "sweep gamma count")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 0, "parallel workers (0 = NumCPU)")

	thresholdCmd := &cobra.Command{
		Use:   "threshold",
		Short: "final epidemic size vs R0",
		RunE:  thresholdCurve,
	}
	thresholdCmd.Flags().Float64Var(&duration, "tmax", 400, "time horizon per point")
	thresholdCmd.Flags().Float64Var(&s0, "s0", config.DefaultS, "initial susceptible fraction")
	thresholdCmd.Flags().Float64Var(&i0, "i0", config.DefaultI, "initial infected fraction")
	thresholdCmd.Flags().Float64Var(&gamma, "gamma", 1.0, "recovery rate")
	thresholdCmd.Flags().Float64Var(&betaMin, "beta-min", 0.2, "sweep lower beta")
	thresholdCmd.Flags().Float64Var(&betaMax, "beta-max", 3.0, "sweep upper beta")
	thresholdCmd.Flags().IntVar(&betaSteps, "beta-steps", 30, "sweep beta count")

	fitCmd := &cobra.Command{
		Use:   "fit [run_id]",
		Short: "calibrate beta/gamma against a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  fitRun,
	}
	fitCmd.Flags().Float64Var(&betaMin, "beta-min", 0.2, "grid lower beta")
	fitCmd.Flags().Float64Var(&betaMax, "beta-max", 2.0, "grid upper beta")
	fitCmd.Flags().IntVar(&betaSteps, "beta-steps", 19, "grid beta count")
	fitCmd.Flags().Float64Var(&gammaMin, "gamma-min", 0.1, "grid lower gamma")
	fitCmd.Flags().Float64Var(&gammaMax, "gamma-max", 1.5, "grid upper gamma")
	fitCmd.Flags().IntVar(&gammaSteps, "gamma-steps", 15, "grid gamma count")

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			sort.Strings(presets)
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "run simulation with live visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, phaseCmd, exportCmd, exportCSVCmd,
		exportJSONCmd, exportSVGCmd, compareCmd, sweepCmd, thresholdCmd, fitCmd,
		presetsCmd, liveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "initial timestep")
	cmd.Flags().Float64Var(&duration, "tmax", config.DefaultDuration, "time horizon")
	cmd.Flags().Float64Var(&tolerance, "tol", config.DefaultTolerance, "adaptive tolerance")
	cmd.Flags().Float64Var(&s0, "s0", config.DefaultS, "initial susceptible fraction")
	cmd.Flags().Float64Var(&i0, "i0", config.DefaultI, "initial infected fraction")
	cmd.Flags().Float64Var(&r0, "r0", 0.0, "initial recovered fraction")
	cmd.Flags().Float64Var(&e0, "e0", 0.0, "initial exposed fraction (seir)")
	cmd.Flags().Float64Var(&beta, "beta", config.DefaultBeta, "transmission rate")
	cmd.Flags().Float64Var(&gamma, "gamma", config.DefaultGamma, "recovery rate")
	cmd.Flags().Float64Var(&sigma, "sigma", config.DefaultSigma, "incubation rate (seir)")
	cmd.Flags().Float64Var(&mu, "mu", 0.01, "mortality rate (sird)")
	cmd.Flags().StringVar(&integrator, "integrator", "rk45", "integrator (euler, rk4, rk45)")
	cmd.Flags().StringVar(&controller, "controller", "none", "intervention (none, lockdown)")
	cmd.Flags().Float64Var(&trigger, "trigger", 0.05, "lockdown trigger level")
	cmd.Flags().Float64Var(&release, "release", 0.01, "lockdown release level")
	cmd.Flags().Float64Var(&reduction, "reduction", 0.6, "lockdown contact reduction")
}

// buildConfig resolves the preset < config file < flags precedence for
// the run and live commands, returning a fully populated config.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if len(args) > 0 {
		cfg.Model = args[0]
	}

	if preset != "" {
		p := config.GetPreset(cfg.Model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q for model %s (available: %v)",
				preset, cfg.Model, config.ListPresets(cfg.Model))
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if len(args) > 0 {
			cfg.Model = args[0]
		}
	}

	flags := cmd.Flags()
	if flags.Changed("dt") || cfg.Dt <= 0 {
		cfg.Dt = dt
	}
	if flags.Changed("tmax") || cfg.Duration <= 0 {
		cfg.Duration = duration
	}
	if flags.Changed("tol") || cfg.Tolerance <= 0 {
		cfg.Tolerance = tolerance
	}
	if flags.Changed("integrator") || cfg.Integrator == "" {
		cfg.Integrator = integrator
	}
	if flags.Changed("controller") || cfg.Controller == "" {
		cfg.Controller = controller
	}
	if flags.Changed("s0") {
		cfg.Init.S = s0
	}
	if flags.Changed("i0") {
		cfg.Init.I = i0
	}
	if flags.Changed("r0") {
		cfg.Init.R = r0
	}
	if flags.Changed("e0") {
		cfg.Init.E = e0
	}
	if flags.Changed("beta") || cfg.Disease.Beta == 0 {
		cfg.Disease.Beta = beta
	}
	if flags.Changed("gamma") || cfg.Disease.Gamma == 0 {
		cfg.Disease.Gamma = gamma
	}
	if flags.Changed("sigma") || cfg.Disease.Sigma == 0 {
		cfg.Disease.Sigma = sigma
	}
	if flags.Changed("mu") || cfg.Disease.Mu == 0 {
		cfg.Disease.Mu = mu
	}
	if flags.Changed("trigger") || cfg.Intervention.Trigger == 0 {
		cfg.Intervention.Trigger = trigger
	}
	if flags.Changed("release") || cfg.Intervention.Release == 0 {
		cfg.Intervention.Release = release
	}
	if flags.Changed("reduction") || cfg.Intervention.Reduction == 0 {
		cfg.Intervention.Reduction = reduction
	}

	return cfg, nil
}

// epiModel is what every compartment model provides beyond
// sim.Dynamics.
type epiModel interface {
	sim.Dynamics
	sim.Conserved
	sim.Configurable
	Labels() []string
	InfectedIndex() int
	R0() float64
}

func buildModel(cfg *config.Config) (epiModel, error) {
	switch cfg.Model {
	case "sir", "":
		m := models.NewSIR()
		m.Beta = cfg.Disease.Beta
		m.Gamma = cfg.Disease.Gamma
		return m, nil
	case "sis":
		m := models.NewSIS()
		m.Beta = cfg.Disease.Beta
		m.Gamma = cfg.Disease.Gamma
		return m, nil
	case "seir":
		m := models.NewSEIR()
		m.Beta = cfg.Disease.Beta
		m.Sigma = cfg.Disease.Sigma
		m.Gamma = cfg.Disease.Gamma
		return m, nil
	case "sird":
		m := models.NewSIRD()
		m.Beta = cfg.Disease.Beta
		m.Gamma = cfg.Disease.Gamma
		m.Mu = cfg.Disease.Mu
		return m, nil
	default:
		return nil, fmt.Errorf("unknown model: %s", cfg.Model)
	}
}

func buildIntegrator(name string) (sim.Integrator, error) {
	switch name {
	case "euler":
		return integrators.NewEuler(), nil
	case "rk4":
		return integrators.NewRK4(), nil
	case "rk45", "":
		return integrators.NewRK45(), nil
	default:
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
}

func buildController(cfg *config.Config, infectedIdx int) (sim.Controller, error) {
	switch cfg.Controller {
	case "none", "":
		return control.NewNone(1), nil
	case "lockdown":
		return control.NewLockdown(cfg.Intervention.Trigger, cfg.Intervention.Release,
			cfg.Intervention.Reduction, infectedIdx), nil
	default:
		return nil, fmt.Errorf("unknown controller: %s", cfg.Controller)
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	model, err := buildModel(cfg)
	if err != nil {
		return err
	}
	integ, err := buildIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}
	ctrl, err := buildController(cfg, model.InfectedIndex())
	if err != nil {
		return err
	}

	s := sim.New(model, integ, ctrl)
	s.AddMetric(metrics.NewConservation(model))
	peak := metrics.NewPeak(model.InfectedIndex())
	s.AddMetric(peak)
	s.AddMetric(metrics.NewAttackRate())

	simCfg := sim.Config{
		Dt:            cfg.Dt,
		Duration:      cfg.Duration,
		Tolerance:     cfg.Tolerance,
		MaxDt:         0.5,
		MinDt:         1e-12,
		ValidateState: true,
	}

	x0 := sim.State(cfg.InitState())

	slog.Info("running simulation",
		"model", cfg.Model, "integrator", cfg.Integrator, "controller", cfg.Controller,
		"tmax", cfg.Duration, "r0", model.R0())

	start := time.Now()

	var result *sim.Result
	if _, adaptive := integ.(sim.AdaptiveIntegrator); adaptive {
		times, err := epidemic.SampleSchedule(cfg.Duration)
		if err != nil {
			return err
		}
		result, err = s.Sample(context.Background(), x0, times, simCfg)
		if err != nil {
			return err
		}
	} else {
		result, err = s.Run(context.Background(), x0, simCfg)
		if err != nil {
			return err
		}
		if len(result.Errors) > 0 {
			return fmt.Errorf("simulation aborted: %w", result.Errors[0])
		}
	}

	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	params := model.Params()
	params["r0"] = model.R0()

	runID, err := st.Save(storage.RunMetadata{
		Model:      cfg.Model,
		Duration:   cfg.Duration,
		Integrator: cfg.Integrator,
		Controller: cfg.Controller,
		Params:     params,
		Labels:     model.Labels(),
	}, result)
	if err != nil {
		return err
	}

	slog.Debug("run stored", "id", runID, "steps", result.StepsTaken, "elapsed", elapsed)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("samples: %d\n", len(result.States))
	fmt.Printf("internal steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}
	fmt.Printf("  peak_time: %.4f\n", peak.Time())

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tTMAX\tINTEG\tCTRL\tR0")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.1f\t%s\t%s\t%.2f\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Integrator,
			run.Controller,
			run.Params["r0"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	states, times, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("samples: %d\n\n", len(states))

	series := make([][]float64, len(meta.Labels))
	for v := range series {
		series[v] = make([]float64, len(states))
		for i := range states {
			series[v][i] = states[i][v]
		}
	}

	return viz.TimeSeries(os.Stdout, times, series, meta.Labels)
}

func phasePlot(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	states, _, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(states) < 2 {
		return fmt.Errorf("not enough data for a phase portrait")
	}

	sIdx, iIdx := compartmentIndices(meta.Labels)
	if sIdx < 0 || iIdx < 0 {
		return fmt.Errorf("run has no S/I compartments (labels: %v)", meta.Labels)
	}

	xs := make([]float64, len(states))
	ys := make([]float64, len(states))
	for i := range states {
		xs[i] = states[i][sIdx]
		ys[i] = states[i][iIdx]
	}

	fmt.Printf("phase portrait: %s (%s)\n\n", meta.ID, meta.Model)
	return viz.Phase(os.Stdout, xs, ys, "S", "I")
}

func compartmentIndices(labels []string) (sIdx, iIdx int) {
	sIdx, iIdx = -1, -1
	for i, l := range labels {
		switch l {
		case "S":
			sIdx = i
		case "I":
			iIdx = i
		}
	}
	return sIdx, iIdx
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, err := storage.New(dataDir).Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, times, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(states) < 2 {
		return fmt.Errorf("not enough data to export")
	}

	series := make([][]float64, len(meta.Labels))
	for v := range series {
		series[v] = make([]float64, len(states))
		for i := range states {
			series[v][i] = states[i][v]
		}
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := export.TrajectorySVG(f, times, series, meta.Labels); err != nil {
		return err
	}

	slog.Info("svg written", "path", outPath)
	return nil
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	cfg.Model = args[0]
	cfg.Duration = duration
	cfg.Dt = dt
	cfg.Disease.Beta = beta
	cfg.Disease.Gamma = gamma

	names := args[1:]

	fmt.Printf("comparing integrators for %s (dt=%.4g, tmax=%.1f, beta=%.2f, gamma=%.2f)\n\n",
		cfg.Model, dt, duration, beta, gamma)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tFINAL_S\tFINAL_I\tMASS_DRIFT\tTIME")

	for _, name := range names {
		model, err := buildModel(cfg)
		if err != nil {
			return err
		}
		integ, err := buildIntegrator(name)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}

		s := sim.New(model, integ, nil)
		simCfg := sim.Config{
			Dt: cfg.Dt, Duration: cfg.Duration, Tolerance: cfg.Tolerance,
			MaxDt: 0.5, MinDt: 1e-12, ValidateState: true,
		}
		x0 := sim.State(cfg.InitState())

		start := time.Now()
		var result *sim.Result
		if _, adaptive := integ.(sim.AdaptiveIntegrator); adaptive {
			times, err := epidemic.SampleSchedule(cfg.Duration)
			if err != nil {
				return err
			}
			result, err = s.Sample(context.Background(), x0, times, simCfg)
			if err != nil {
				fmt.Fprintf(w, "%s\terror: %v\n", name, err)
				continue
			}
		} else {
			result, err = s.Run(context.Background(), x0, simCfg)
			if err != nil {
				fmt.Fprintf(w, "%s\terror: %v\n", name, err)
				continue
			}
		}
		elapsed := time.Since(start)

		final := result.Final()
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%.2e\t%v\n",
			name, final[0], final[model.InfectedIndex()], result.MassDrift, elapsed)
	}

	return w.Flush()
}

func sweepGrid(cmd *cobra.Command, args []string) error {
	betas := gridValues(betaMin, betaMax, betaSteps)
	gammas := gridValues(gammaMin, gammaMax, gammaSteps)

	times, err := epidemic.SampleSchedule(duration)
	if err != nil {
		return err
	}

	sweep := sim.NewSweep(func(b, g float64) (*sim.Simulator, sim.State, sim.Config) {
		model := models.NewSIR()
		model.Beta = b
		model.Gamma = g

		s := sim.New(model, integrators.NewRK45(), nil)
		s.AddMetric(metrics.NewPeak(model.InfectedIndex()))
		s.AddMetric(metrics.NewAttackRate())

		cfg := sim.DefaultConfig()
		cfg.Duration = duration
		return s, sim.State{s0, i0, 0}, cfg
	}, sweepWorkers)

	slog.Info("sweeping grid", "betas", len(betas), "gammas", len(gammas), "tmax", duration)

	start := time.Now()
	points := sweep.Run(context.Background(), betas, gammas, times)
	slog.Debug("sweep finished", "elapsed", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BETA\tGAMMA\tR0\tPEAK_I\tATTACK_RATE")

	for _, p := range points {
		if p.Err != nil {
			fmt.Fprintf(w, "%.3f\t%.3f\terror: %v\n", p.Beta, p.Gamma, p.Err)
			continue
		}
		fmt.Fprintf(w, "%.3f\t%.3f\t%.2f\t%.4f\t%.4f\n",
			p.Beta, p.Gamma, p.Beta/p.Gamma,
			p.Result.Metrics["peak_infected"], p.Result.Metrics["attack_rate"])
	}

	return w.Flush()
}

func thresholdCurve(cmd *cobra.Command, args []string) error {
	init := epidemic.Compartments{S: s0, I: i0}

	points, err := analysis.FinalSizeCurve(context.Background(), init,
		duration, gamma, betaMin, betaMax, betaSteps)
	if err != nil {
		return err
	}

	sizes := make([]float64, len(points))
	for i, p := range points {
		sizes[i] = p.FinalSize
	}

	graph := asciigraph.Plot(sizes,
		asciigraph.Height(14),
		asciigraph.Width(70),
		asciigraph.Caption(fmt.Sprintf("final size vs beta (%.2f .. %.2f), gamma=%.2f", betaMin, betaMax, gamma)),
	)
	fmt.Println(graph)
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BETA\tR0\tFINAL_SIZE\tANALYTIC")
	for _, p := range points {
		fmt.Fprintf(w, "%.3f\t%.2f\t%.4f\t%.4f\n",
			p.Beta, p.R0, p.FinalSize, analysis.FinalSize(p.R0, s0, i0))
	}
	return w.Flush()
}

func fitRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	if meta.Model != "sir" {
		return fmt.Errorf("fit supports sir runs, got %s", meta.Model)
	}

	states, _, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no trajectory data")
	}

	observed := make([]float64, len(states))
	for i := range states {
		observed[i] = states[i][1]
	}

	init := epidemic.Compartments{S: states[0][0], I: states[0][1], R: states[0][2]}

	search := optim.NewGridSearch(
		gridValues(betaMin, betaMax, betaSteps),
		gridValues(gammaMin, gammaMax, gammaSteps),
	)

	slog.Info("calibrating", "run", meta.ID, "grid", betaSteps*gammaSteps)

	fit, err := search.Search(context.Background(), init, meta.Duration, observed)
	if err != nil {
		return err
	}

	fmt.Printf("best fit: beta=%.4f gamma=%.4f (r0=%.2f)\n", fit.Beta, fit.Gamma, fit.Beta/fit.Gamma)
	fmt.Printf("rmse (infected series): %.6g\n", fit.RMSE)
	fmt.Printf("reference params: beta=%.4f gamma=%.4f\n", meta.Params["beta"], meta.Params["gamma"])
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	model, err := buildModel(cfg)
	if err != nil {
		return err
	}
	integ, err := buildIntegrator(cfg.Integrator)
	if err != nil {
		return err
	}
	ctrl, err := buildController(cfg, model.InfectedIndex())
	if err != nil {
		return err
	}

	liveDt := cfg.Dt
	if liveDt < 0.01 {
		liveDt = 0.01
	}

	m := viz.NewLive(model, integ, ctrl, sim.State(cfg.InitState()), liveDt, cfg.Model, model.Labels(), frameRate)

	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

func gridValues(min, max float64, steps int) []float64 {
	if steps < 2 {
		return []float64{min}
	}
	vals := make([]float64, steps)
	step := (max - min) / float64(steps-1)
	for i := range vals {
		vals[i] = min + float64(i)*step
	}
	return vals
}
