package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/repulse/internal/analysis"
	"github.com/san-kum/repulse/internal/automation"
	"github.com/san-kum/repulse/internal/config"
	"github.com/san-kum/repulse/internal/experiment"
	"github.com/san-kum/repulse/internal/export"
	"github.com/san-kum/repulse/internal/metrics"
	"github.com/san-kum/repulse/internal/optim"
	"github.com/san-kum/repulse/internal/repulse"
	"github.com/san-kum/repulse/internal/storage"
	"github.com/san-kum/repulse/internal/trace"
	"github.com/san-kum/repulse/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	logFile    string
	sceneFile  string
	frameRate  int
	svgOut     string
	noSave     bool
	elementID  int
	metricName string
	gridSpecs  []string
	headingArg string
	letterArg  string
)

// main registers the commands and runs the live view when no subcommand is
// given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "repulse",
		Short:         "cursor repulsion for page headings and letters",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".repulse", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset profiles")
	rootCmd.PersistentFlags().StringVar(&headingArg, "heading", "", "heading profile override: radius,strength,spring")
	rootCmd.PersistentFlags().StringVar(&letterArg, "letter", "", "letter profile override: radius,strength,spring")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&sceneFile, "scene", "", "scene file (yaml)")
	rootCmd.Flags().IntVar(&frameRate, "fps", 0, "frame rate")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "write logs here while the live view runs")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "drive the page with the mouse in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&sceneFile, "scene", "", "scene file (yaml), reloaded on save")
	liveCmd.Flags().IntVar(&frameRate, "fps", 0, "frame rate")
	liveCmd.Flags().StringVar(&logFile, "log-file", "", "write logs here while the live view runs")

	replayCmd := &cobra.Command{
		Use:   "replay [trace]",
		Short: "replay a trace file or generated trace headlessly",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runReplay,
	}
	replayCmd.Flags().StringVar(&sceneFile, "scene", "", "scene file (yaml)")
	replayCmd.Flags().StringVar(&svgOut, "svg", "", "write a snapshot of the last frame")
	replayCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	compareCmd := &cobra.Command{
		Use:   "compare [trace] [preset1] [preset2] ...",
		Short: "compare presets on the same trace",
		Args:  cobra.MinimumNArgs(2),
		RunE:  comparePresets,
	}
	compareCmd.Flags().StringVar(&sceneFile, "scene", "", "scene file (yaml)")

	genTraceCmd := &cobra.Command{
		Use:   "gen-trace [name] [out.csv]",
		Short: "write a generated trace to CSV",
		Args:  cobra.ExactArgs(2),
		RunE:  genTrace,
	}

	tracesCmd := &cobra.Command{
		Use:   "traces",
		Short: "list generated traces",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range experiment.NewRegistry().ListTraces() {
				fmt.Printf("  %s\n", name)
			}
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&svgOut, "svg", "", "also write the energy curve as SVG")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "oscillation analysis of one element",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&elementID, "element", -1, "element id (default: most displaced)")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of replays",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [trace] [param] [min] [max] [steps]",
		Short: "replay a trace across values of one profile parameter",
		Args:  cobra.ExactArgs(5),
		RunE:  runSweep,
	}

	tuneCmd := &cobra.Command{
		Use:   "tune [trace]",
		Short: "grid search profile parameters minimizing a metric",
		Args:  cobra.ExactArgs(1),
		RunE:  runTune,
	}
	tuneCmd.Flags().StringVar(&metricName, "metric", "settle_ticks", "metric to minimize")
	tuneCmd.Flags().StringArrayVar(&gridSpecs, "grid", nil, "param=v1,v2,... (repeatable)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Printf("  %-8s heading r=%g s=%g k=%g  letter r=%g s=%g k=%g\n", name,
					p.Heading.Radius, p.Heading.Strength, p.Heading.Spring,
					p.Letter.Radius, p.Letter.Strength, p.Letter.Spring)
			}
		},
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the effective config to a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
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

	rootCmd.AddCommand(liveCmd, replayCmd, compareCmd, genTraceCmd, tracesCmd,
		listCmd, plotCmd, exportCmd, analyzeCmd,
		scenarioCmd, sweepCmd, tuneCmd, presetsCmd, initConfigCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}

// loadConfig layers the config file and preset over the defaults.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (have %s)", preset, strings.Join(config.ListPresets(), ", "))
		}
		cfg.Profiles = p.Profiles
	}
	if err := cfg.OverrideProfiles(map[string]string{"heading": headingArg, "letter": letterArg}); err != nil {
		return nil, err
	}
	if sceneFile != "" {
		cfg.Scene = sceneFile
	}
	if frameRate > 0 {
		cfg.FPS = frameRate
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, cfg.Validate()
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

// setup loads the config and installs the default logger on stderr.
func setup() (*config.Config, *slog.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(os.Stderr, cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(logger)
	return cfg, logger, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// The terminal belongs to the view; logs go to a file or nowhere.
	var w io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	logger, err := newLogger(w, cfg.LogLevel)
	if err != nil {
		return err
	}
	slog.SetDefault(logger)

	return viz.Run(cmd.Context(), viz.Options{
		Scene:    cfg.Scene,
		Profiles: cfg.RepulsionProfiles(),
		FPS:      cfg.FPS,
		CellW:    cfg.Cell.Width,
		CellH:    cfg.Cell.Height,
		Logger:   logger,
	})
}

func newExperiment(cfg *config.Config, logger *slog.Logger, traceName string) (*experiment.Experiment, error) {
	exp := experiment.New(experiment.Config{
		Scene:    cfg.Scene,
		Trace:    traceName,
		Viewport: repulse.Vec2{X: cfg.Viewport.Width, Y: cfg.Viewport.Height},
		Profiles: cfg.RepulsionProfiles(),
		Logger:   logger,
	})
	if err := exp.Setup(experiment.NewRegistry(), metrics.Defaults()); err != nil {
		return nil, err
	}
	return exp, nil
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	traceName := cfg.Trace
	if len(args) > 0 {
		traceName = args[0]
	}
	if traceName == "" {
		traceName = "demo"
	}

	exp, err := newExperiment(cfg, logger, traceName)
	if err != nil {
		return err
	}

	result, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}

	elements := exp.Runner().Animator().Registry().Len()
	fmt.Printf("scene: %s\n", exp.Page().Name())
	fmt.Printf("trace: %s (%d events, %d frames)\n", traceName, result.Events, len(result.Frames))
	fmt.Printf("elements: %d\n\n", elements)
	if err := printMetrics(result.Metrics); err != nil {
		return err
	}

	if svgOut != "" && len(result.Frames) > 0 {
		if err := writeSnapshot(svgOut, exp, result.Frames[len(result.Frames)-1]); err != nil {
			return err
		}
		fmt.Printf("\nsnapshot: %s\n", svgOut)
	}

	if noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(exp.Page().Name(), traceName, cfg.RepulsionProfiles(), elements, result)
	if err != nil {
		return err
	}
	logger.Info("run saved", "id", runID, "dir", dataDir)
	fmt.Printf("\nrun: %s\n", runID)
	return nil
}

func printMetrics(m map[string]float64) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, metric := range metrics.Defaults() {
		v, ok := m[metric.Name()]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "%s\t%.4f\n", metric.Name(), v)
	}
	return w.Flush()
}

func writeSnapshot(path string, exp *experiment.Experiment, f trace.Frame) error {
	dots := make([]export.Dot, len(f.Samples))
	for i, s := range f.Samples {
		dots[i] = export.Dot{Center: s.Center, Offset: s.State.Offset(), Class: s.Class}
	}
	svg := export.SnapshotToSVG(exp.Page().Viewport(), exp.Page().Scroll().Y, dots)
	return os.WriteFile(path, []byte(svg), 0644)
}

func comparePresets(cmd *cobra.Command, args []string) error {
	traceName, names := args[0], args[1:]

	exps := make([]*experiment.Experiment, 0, len(names))
	for _, name := range names {
		preset = name
		cfg, logger, err := setup()
		if err != nil {
			return err
		}
		exp, err := newExperiment(cfg, logger, traceName)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		exps = append(exps, exp)
	}

	results, err := experiment.NewEnsemble(exps...).Run(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := []string{"PRESET"}
	for _, m := range metrics.Defaults() {
		header = append(header, strings.ToUpper(m.Name()))
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for i, result := range results {
		row := []string{names[i]}
		for _, m := range metrics.Defaults() {
			row = append(row, fmt.Sprintf("%.4f", result.Metrics[m.Name()]))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

func genTrace(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup()
	if err != nil {
		return err
	}
	events, err := experiment.NewRegistry().GetTrace(args[0], repulse.Vec2{X: cfg.Viewport.Width, Y: cfg.Viewport.Height})
	if err != nil {
		return err
	}
	if err := trace.Save(args[1], events); err != nil {
		return err
	}
	fmt.Printf("wrote %d events to %s\n", len(events), args[1])
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENE\tTRACE\tTIME\tFRAMES\tELEMENTS\tSETTLE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%.0f\n",
			run.ID,
			run.Scene,
			run.Trace,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Elements,
			run.Metrics["settle_ticks"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	offsets, err := st.LoadOffsets(runID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s  trace: %s\n", meta.Scene, meta.Trace)
	fmt.Printf("frames: %d\n\n", len(frames))

	fmt.Println(asciigraph.Plot(storage.Energies(frames),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("kinetic energy"),
	))
	fmt.Println()

	if len(offsets) > 0 {
		fmt.Println(asciigraph.Plot(maxOffsets(offsets, len(frames)),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("max displacement (px)"),
		))
	}
	return nil
}

// maxOffsets returns the largest displacement per frame sequence.
func maxOffsets(offsets []storage.OffsetRecord, frames int) []float64 {
	out := make([]float64, frames)
	first := offsets[0].Seq
	for _, o := range offsets {
		i := o.Seq - first
		if i < 0 || i >= frames {
			continue
		}
		out[i] = max(out[i], o.State.Offset().Len())
	}
	return out
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	if svgOut != "" {
		frames, err := st.LoadFrames(runID)
		if err != nil {
			return err
		}
		svg := export.SeriesToSVG(storage.Energies(frames), 800, 300, "#ff9800")
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", svgOut)
	}

	return st.ExportJSON(os.Stdout, runID)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	offsets, err := st.LoadOffsets(runID)
	if err != nil {
		return err
	}
	if len(offsets) == 0 {
		return fmt.Errorf("no offsets recorded")
	}

	id := elementID
	if id < 0 {
		peak := 0.0
		for _, o := range offsets {
			if d := o.State.Offset().Len(); d > peak {
				peak, id = d, o.ID
			}
		}
	}

	var class string
	states := make([]repulse.State, 0)
	for _, o := range offsets {
		if o.ID == id {
			states = append(states, o.State)
			class = o.Class
		}
	}
	if len(states) == 0 {
		return fmt.Errorf("element %d not in run %s", id, runID)
	}

	// Analyze the axis that moved most.
	var spanX, spanY float64
	for _, s := range states {
		spanX = max(spanX, math.Abs(s.OffsetX))
		spanY = max(spanY, math.Abs(s.OffsetY))
	}
	vertical := spanY > spanX
	series := make([]float64, len(states))
	for i, s := range states {
		series[i] = s.OffsetX
		if vertical {
			series[i] = s.OffsetY
		}
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("element: %d (%s), %d samples\n\n", id, class, len(states))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tFREQ (cycles/tick)\tPERIOD (ticks)")
	got := analysis.DominantFrequency(series)
	fmt.Fprintf(w, "measured\t%.4f\t%s\n", got, period(got))
	if pm, ok := meta.Profiles[class]; ok {
		p := repulse.Profile{Radius: pm.Radius, Strength: pm.Strength, Spring: pm.Spring}
		if mode, ok := analysis.NaturalFrequency(p); ok {
			fmt.Fprintf(w, "model\t%.4f\t%s\n", mode.Frequency, period(mode.Frequency))
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Print(analysis.PhaseToASCII(analysis.Phase(states, vertical), 60, 16))
	return nil
}

func period(freq float64) string {
	if freq == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f", 1/freq)
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	runner := &automation.Runner{Base: cfg, Registry: experiment.NewRegistry(), Logger: logger}
	results, err := runner.RunScenario(cmd.Context(), sc)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n\n", sc.Name)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tTRACE\tPRESET\tENERGY\tMAX_DISP\tSETTLE\tRUN")
	for i, r := range results {
		runID := "-"
		if r.Step.SaveAs != "" {
			if runID, err = st.Save(r.Step.SaveAs, r.Step.Trace, r.Profiles, r.Elements, r.Result); err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%.4f\t%.2f\t%.0f\t%s\n", i+1, r.Step.Trace, r.Step.Preset,
			r.Result.Metrics["energy"], r.Result.Metrics["max_displacement"], r.Result.Metrics["settle_ticks"], runID)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	lo, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fmt.Errorf("min: %w", err)
	}
	hi, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return fmt.Errorf("max: %w", err)
	}
	steps, err := strconv.Atoi(args[4])
	if err != nil {
		return fmt.Errorf("steps: %w", err)
	}

	runner := &automation.Runner{Base: cfg, Registry: experiment.NewRegistry(), Logger: logger}
	results, err := runner.RunSweep(cmd.Context(), &automation.ParameterSweep{
		Trace:     args[0],
		ParamName: args[1],
		ParamMin:  lo,
		ParamMax:  hi,
		NumSteps:  steps,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := []string{strings.ToUpper(args[1])}
	for _, m := range metrics.Defaults() {
		header = append(header, strings.ToUpper(m.Name()))
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, r := range results {
		row := []string{fmt.Sprintf("%.4f", r.ParamValue)}
		for _, m := range metrics.Defaults() {
			row = append(row, fmt.Sprintf("%.4f", r.Metrics[m.Name()]))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}

// parseGrid reads "param=v1,v2,..." specs.
func parseGrid(specs []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(specs))
	ranges := make([][]float64, 0, len(specs))
	for _, spec := range specs {
		name, list, ok := strings.Cut(spec, "=")
		if !ok {
			return nil, nil, fmt.Errorf("grid %q: want param=v1,v2", spec)
		}
		var vals []float64
		for _, f := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("grid %q: %w", spec, err)
			}
			vals = append(vals, v)
		}
		names = append(names, name)
		ranges = append(ranges, vals)
	}
	return names, ranges, nil
}

func runTune(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	if len(gridSpecs) == 0 {
		return fmt.Errorf("no --grid given")
	}
	names, ranges, err := parseGrid(gridSpecs)
	if err != nil {
		return err
	}

	grid := optim.NewGridSearch(names, ranges)
	logger.Info("tuning", "combinations", grid.Size(), "metric", metricName)

	registry := experiment.NewRegistry()
	build := func(params map[string]float64) (*experiment.Experiment, error) {
		profiles, err := experiment.ApplyParams(cfg.RepulsionProfiles(), params)
		if err != nil {
			return nil, err
		}
		exp := experiment.New(experiment.Config{
			Scene:    cfg.Scene,
			Trace:    args[0],
			Viewport: repulse.Vec2{X: cfg.Viewport.Width, Y: cfg.Viewport.Height},
			Profiles: profiles,
			Logger:   logger,
		})
		if err := exp.Setup(registry, metrics.Defaults()); err != nil {
			return nil, err
		}
		return exp, nil
	}

	best, val, err := grid.Search(cmd.Context(), build, metricName)
	if err != nil {
		return err
	}

	fmt.Printf("best %s: %.4f\n", metricName, val)
	for _, name := range names {
		fmt.Printf("  %s = %g\n", name, best[name])
	}
	return nil
}
