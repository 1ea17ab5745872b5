package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/fractonaut/internal/config"
	"github.com/san-kum/fractonaut/internal/engine"
	"github.com/san-kum/fractonaut/internal/metrics"
	"github.com/san-kum/fractonaut/internal/scenario"
	"github.com/san-kum/fractonaut/internal/storage"
	"github.com/san-kum/fractonaut/internal/store"
	"github.com/san-kum/fractonaut/internal/viewport"
	"github.com/san-kum/fractonaut/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	logFile    string
	fromFile   string
	theme      string
	gifPath    string
	noSave     bool
	outPath    string
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	subtle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
)

// main registers commands and flags and launches the terminal explorer when
// no subcommand is given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "fractonaut",
		Short:         "deep-zoom fractal explorer",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runExplorer,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".fractonaut", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "tuning preset (see 'presets')")
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file")
	pf.StringVar(&fromFile, "from", "", "start from exported coordinates in this file")

	rootCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "HUD theme")
	rootCmd.Flags().StringVar(&gifPath, "gif", "fractonaut.gif", "where G saves recordings")

	runCmd := &cobra.Command{
		Use:   "run [scenario.yaml]",
		Short: "replay a scripted scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	runCmd.Flags().StringVar(&sweepParam, "sweep", "", "sweep a tuning parameter instead of a single run")
	runCmd.Flags().Float64Var(&sweepMin, "min", 0.8, "sweep start value")
	runCmd.Flags().Float64Var(&sweepMax, "max", 0.98, "sweep end value")
	runCmd.Flags().IntVar(&sweepSteps, "steps", 5, "sweep points")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list tuning presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(titleStyle.Render("presets"))
			for _, name := range config.ListPresets() {
				line := "  " + name
				if name == config.DefaultPreset {
					line += subtle.Render("  (default)")
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "configuration helpers",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	})

	coordsCmd := &cobra.Command{
		Use:   "coords",
		Short: "print the starting view in export format",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			eng, err := newEngine(cfg)
			if err != nil {
				return err
			}
			fmt.Println(eng.ExportCoordinates())
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, presetsCmd, configCmd, coordsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig layers preset, file, environment and explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Resolve(preset, configFile)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
	if fromFile != "" {
		data, err := os.ReadFile(fromFile)
		if err != nil {
			return nil, err
		}
		x, y, size, err := viewport.ParseCoordinates(string(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", fromFile, err)
		}
		cfg.View.CenterX, cfg.View.CenterY, cfg.View.Size = x, y, size
	}
	return cfg, nil
}

func newEngine(cfg *config.Config) (*engine.Engine, error) {
	ec, err := cfg.ToEngine()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return engine.New(ec)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runExplorer(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// The terminal belongs to the explorer, so logs only go to a file.
	closeLog, err := setupLogging(cfg.Log, false)
	if err != nil {
		return err
	}
	defer closeLog()

	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}

	clip, err := viz.SystemClipboard()
	if err != nil {
		engine.Logger().Warn("clipboard unavailable", "err", err)
		clip = nil
	}

	ctx, cancel := signalContext()
	defer cancel()
	return viz.Run(ctx, eng, viz.Options{Clipboard: clip, Theme: theme, GIFPath: gifPath})
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := scenario.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("load scenario: %w", err)
	}
	if !cmd.Flags().Changed("preset") && sc.Preset != "" {
		preset = sc.Preset
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(cfg.Log, true)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := signalContext()
	defer cancel()

	if sweepParam != "" {
		return runSweep(ctx, sc, cfg)
	}

	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}
	set := metrics.Standard()
	eng.AddObserver(set)

	trace, err := scenario.RunScenario(ctx, sc, eng)
	if err != nil {
		return err
	}
	trace.Metrics = set.Values()

	fmt.Printf("%s  %s\n\n", titleStyle.Render(sc.Name), subtle.Render(fmt.Sprintf("%d ticks", len(trace.Samples))))
	fmt.Println(trace.Coordinates)
	fmt.Println()
	printMetrics(trace.Metrics)

	if noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	name := preset
	if name == "" {
		name = config.DefaultPreset
	}
	runID, err := st.Save(name, trace)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	fmt.Printf("\nsaved: %s\n", runID)
	return nil
}

func runSweep(ctx context.Context, sc *scenario.Scenario, cfg *config.Config) error {
	ec, err := cfg.ToEngine()
	if err != nil {
		return err
	}
	results, err := scenario.RunSweep(ctx, sc, ec, scenario.Sweep{
		Param:    sweepParam,
		Min:      sweepMin,
		Max:      sweepMax,
		NumSteps: sweepSteps,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tTICKS\tSETTLE\n", sweepParam)
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%d\t%.3fs\n", r.ParamValue, r.Ticks, r.SettleTime)
	}
	return w.Flush()
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.4g\n", name, m[name])
	}
	w.Flush()
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
	fmt.Fprintln(w, "ID\tSCENARIO\tPRESET\tTIME\tTICKS\tDURATION\tSETTLE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.2fs\t%.2fs\n",
			run.ID,
			run.Scenario,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.Duration,
			run.Metrics["settle_time"],
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
	samples, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(samples))

	series := []struct {
		caption string
		value   func(scenario.Sample) float64
	}{
		{"zoom depth (decades)", func(s scenario.Sample) float64 { return math.Log10(viewport.DefaultSize / s.Size) }},
		{"center x", func(s scenario.Sample) float64 { return s.CenterX }},
		{"center y", func(s scenario.Sample) float64 { return s.CenterY }},
		{"speed (view heights per tick)", func(s scenario.Sample) float64 {
			return math.Hypot(s.VelocityX, s.VelocityY) / s.TargetSize
		}},
	}

	for _, sr := range series {
		data := make([]float64, len(samples))
		for i, s := range samples {
			data[i] = sr.value(s)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(sr.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	if outPath == "" {
		return store.ExportJSONStdout(meta, samples)
	}
	if err := store.ExportJSON(outPath, meta, samples); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "exported %s to %s\n", meta.ID, outPath)
	return nil
}
