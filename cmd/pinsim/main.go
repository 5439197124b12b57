package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/rs/zerolog"
	"github.com/san-kum/pinsim/internal/clock"
	"github.com/san-kum/pinsim/internal/config"
	"github.com/san-kum/pinsim/internal/export"
	"github.com/san-kum/pinsim/internal/logger"
	"github.com/san-kum/pinsim/internal/metrics"
	"github.com/san-kum/pinsim/internal/pin"
	"github.com/san-kum/pinsim/internal/script"
	"github.com/san-kum/pinsim/internal/store"
	"github.com/san-kum/pinsim/internal/trace"
	"github.com/san-kum/pinsim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	errScriptSource = errors.New("pass either --file or inline commands, not both")
	errNoScript     = errors.New("no commands: pass a script or --file")
)

var (
	dataDir    string
	configFile string
	preset     string
	interval   time.Duration
	initial    string
	theme      string
	logLevel   string
	// run
	ticks   int
	virtual bool
	// script
	saveRun      bool
	scenarioFile string
	// export-svg
	svgWidth  int
	svgHeight int
)

// main launches the interactive TUI when no subcommand is given and exits
// with status 1 if the command fails.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

// newRootCmd registers commands and binds their flags to the package flag
// variables, resetting them to their defaults.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pinsim",
		Short:         "microcontroller pin simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runInteractive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.DurationVar(&interval, "interval", config.DefaultInterval, "time between ticks")
	pf.StringVar(&initial, "initial", config.DefaultInitial, "initial pin level (high|low)")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	pf.StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (trace|debug|info|warn|error)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the simulator in the terminal UI",
		Args:  cobra.NoArgs,
		RunE:  runInteractive,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "play the pin headless for a number of ticks and record it",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&ticks, "ticks", 10, "ticks to record")
	runCmd.Flags().BoolVar(&virtual, "virtual", false, "use a virtual clock instead of waiting")

	scriptCmd := &cobra.Command{
		Use:   "script [commands...]",
		Short: "execute a command script on a virtual clock",
		Example: `  pinsim script "play wait 2 pause step reset"
  pinsim script --file blink.yaml --save`,
		RunE: runScript,
	}
	scriptCmd.Flags().BoolVar(&saveRun, "save", false, "store the recorded trace")
	scriptCmd.Flags().StringVarP(&scenarioFile, "file", "f", "", "scenario file (yaml)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded waveform",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and samples to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export a run's waveform as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 640, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 120, "image height")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tINTERVAL\tINITIAL\tTHEME")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%v\t%s\t%s\n", name, p.Interval, p.Initial, p.Theme)
			}
			w.Flush()
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "pinsim.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s already exists", path)
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
			return nil
		},
	}

	rootCmd.AddCommand(liveCmd, runCmd, scriptCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, presetsCmd, initCmd)
	return rootCmd
}

// loadConfig layers defaults, preset, config file, environment and explicitly
// set flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		if err := cfg.ApplyPreset(preset); err != nil {
			return nil, err
		}
	}
	if configFile != "" {
		if err := cfg.ReadFile(configFile); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("interval") {
		cfg.Interval = interval
	}
	if flags.Changed("initial") {
		cfg.Initial = initial
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("data") {
		cfg.DataDir = dataDir
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger logs to stderr for headless commands. The TUI owns the screen, so
// it logs to a file under the data directory instead.
func newLogger(cfg *config.Config, tui bool) (zerolog.Logger, func() error, error) {
	lc := logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty, File: cfg.Log.File}
	if tui && lc.File == "" {
		lc.File = filepath.Join(cfg.DataDir, "pinsim.log")
	}
	log, closeLog, err := logger.New(lc)
	if err != nil {
		return log, closeLog, err
	}
	logger.SetGlobalLogger(log)
	return log, closeLog, nil
}

func logChange(log zerolog.Logger) pin.ChangeFunc {
	return func(l pin.Level) {
		log.Info().Str("pin", l.String()).Str("level", l.Name()).Msg("pin changed")
	}
}

func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()

	opts, err := cfg.SimulatorOptions()
	if err != nil {
		return err
	}
	level, _ := cfg.InitialLevel()

	n := viz.NewNotifier(level)
	defer n.Close()
	sim := pin.New(pin.Multi(n.OnChange, logChange(log)), append(opts, pin.WithLogger(log))...)
	defer sim.Close()

	log.Info().Dur("interval", sim.Interval()).Str("initial", level.Name()).Msg("starting terminal ui")
	return viz.Run(sim, n, viz.Options{
		Theme:      cfg.Theme,
		ScrollStep: cfg.ScrollStep,
	})
}

func runHeadless(cmd *cobra.Command, args []string) error {
	if ticks <= 0 {
		return fmt.Errorf("ticks must be positive, got %d", ticks)
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	opts, err := cfg.SimulatorOptions()
	if err != nil {
		return err
	}

	var clk clock.Clock = clock.System
	var manual *clock.Manual
	if virtual {
		manual = clock.NewManual(time.Now())
		clk = manual
	}

	rec := trace.NewRecorder(clk)
	done := make(chan struct{})
	var once sync.Once
	stopAfter := func(pin.Level) {
		if rec.Len() >= ticks {
			once.Do(func() { close(done) })
		}
	}

	sim := pin.New(
		pin.Multi(rec.Observe, logChange(log), stopAfter),
		append(opts, pin.WithClock(clk), pin.WithLogger(log))...,
	)
	defer sim.Close()

	start := time.Now()
	sim.Play()
	if manual != nil {
		manual.Advance(time.Duration(ticks) * sim.Interval())
	} else {
		select {
		case <-done:
		case <-cmd.Context().Done():
			log.Warn().Int("recorded", rec.Len()).Msg("interrupted")
		}
	}
	sim.Pause()

	samples := rec.Samples()
	fmt.Printf("completed in %v\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("ticks: %d\n", sim.Ticks())
	printWaveform(samples, sim.Interval())

	return saveSamples(cfg, store.RunMetadata{
		Source:     "run",
		Preset:     preset,
		IntervalMs: sim.Interval().Milliseconds(),
		Initial:    cfg.Initial,
		Ticks:      sim.Ticks(),
	}, samples)
}

func runScript(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	src, cmds, err := scriptCommands(cmd, cfg, args)
	if err != nil {
		return err
	}
	log, closeLog, err := newLogger(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	opts, err := cfg.SimulatorOptions()
	if err != nil {
		return err
	}

	clk := clock.NewManual(time.Now())
	rec := trace.NewRecorder(clk)
	sim := pin.New(rec.Observe, append(opts, pin.WithClock(clk), pin.WithLogger(log))...)
	defer sim.Close()

	runner := script.NewRunner(sim, clk)
	runner.OnCommand(func(c script.Command) {
		log.Debug().Stringer("cmd", c).Msg("script command")
	})
	if err := runner.Run(cmd.Context(), cmds); err != nil {
		return err
	}

	samples := rec.Samples()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEQ\tT\tPIN\tLEVEL")
	for _, s := range samples {
		fmt.Fprintf(w, "%d\t%v\t%s\t%s\n", s.Seq, s.At, s.Level, s.Level.Name())
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nfinal: %s (%s), %s\n", sim.Level(), sim.Level().Name(), sim.State())
	fmt.Println(trace.Waveform(samples, 70))

	if !saveRun {
		return nil
	}
	return saveSamples(cfg, store.RunMetadata{
		Source:     "script",
		Preset:     preset,
		IntervalMs: sim.Interval().Milliseconds(),
		Initial:    cfg.Initial,
		Ticks:      sim.Ticks(),
		Script:     src,
	}, samples)
}

// scriptCommands resolves the script from either --file or the inline
// arguments. A scenario's interval and initial level override cfg unless the
// matching flag was set explicitly.
func scriptCommands(cmd *cobra.Command, cfg *config.Config, args []string) (string, []script.Command, error) {
	switch {
	case scenarioFile != "" && len(args) > 0:
		return "", nil, errScriptSource
	case scenarioFile != "":
		sc, err := script.LoadScenario(scenarioFile)
		if err != nil {
			return "", nil, err
		}
		cmds, err := sc.Commands()
		if err != nil {
			return "", nil, err
		}
		if sc.Interval > 0 && !cmd.Flags().Changed("interval") {
			cfg.Interval = sc.Interval
		}
		if sc.Initial != "" && !cmd.Flags().Changed("initial") {
			cfg.Initial = sc.Initial
		}
		if err := cfg.Validate(); err != nil {
			return "", nil, fmt.Errorf("scenario %s: %w", scenarioFile, err)
		}
		if sc.Name != "" {
			fmt.Printf("scenario: %s\n", sc.Name)
		}
		return sc.Source(), cmds, nil
	case len(args) > 0:
		src := strings.Join(args, " ")
		cmds, err := script.Parse(src)
		if err != nil {
			return "", nil, err
		}
		return src, cmds, nil
	default:
		return "", nil, errNoScript
	}
}

func saveSamples(cfg *config.Config, meta store.RunMetadata, samples []trace.Sample) error {
	st := store.New(cfg.DataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(meta, samples)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

// squareWave repeats each sample so asciigraph draws flat levels between
// edges instead of diagonal ramps.
func squareWave(samples []trace.Sample, width int) []float64 {
	values := trace.Values(samples)
	if len(values) == 0 {
		return nil
	}
	per := max(width/len(values), 1)
	out := make([]float64, 0, len(values)*per)
	for _, v := range values {
		for i := 0; i < per; i++ {
			out = append(out, v)
		}
	}
	return out
}

func printWaveform(samples []trace.Sample, interval time.Duration) {
	if len(samples) == 0 {
		fmt.Println("no emissions")
		return
	}
	rising, falling := trace.Edges(samples)
	fmt.Printf("emissions: %d (rising %d, falling %d)\n\n", len(samples), rising, falling)

	graph := asciigraph.Plot(squareWave(samples, 80),
		asciigraph.Height(4),
		asciigraph.Width(80),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(1),
		asciigraph.Caption("pin level"),
	)
	fmt.Println(graph)
	fmt.Println()
	fmt.Println(trace.Waveform(samples, 80))
	fmt.Println()
	for _, r := range metrics.Evaluate(samples, metrics.Standard(interval)...) {
		fmt.Printf("%-16s %.3f\n", r.Name+":", r.Value)
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	runs, err := store.New(cfg.DataDir).List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSOURCE\tTIME\tINTERVAL\tINITIAL\tTICKS\tEMISSIONS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%s\t%d\t%d\n",
			run.ID,
			run.Source,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Interval(),
			run.Initial,
			run.Ticks,
			run.Emissions,
		)
	}
	return w.Flush()
}

func loadRun(cmd *cobra.Command, runID string) (*store.RunMetadata, []trace.Sample, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	st := store.New(cfg.DataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, samples, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("source: %s\n", meta.Source)
	if meta.Script != "" {
		fmt.Printf("script: %s\n", meta.Script)
	}
	fmt.Printf("interval: %v\n", meta.Interval())
	printWaveform(samples, meta.Interval())
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, samples, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to export")
	}
	return store.WriteCSV(os.Stdout, samples)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to export")
	}
	opts := export.DefaultSVGOptions()
	opts.Width, opts.Height = svgWidth, svgHeight
	_, err = fmt.Fprintln(os.Stdout, export.WaveformSVG(samples, meta.Interval(), opts))
	return err
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}
	return store.ExportJSON(os.Stdout, *meta, samples)
}
