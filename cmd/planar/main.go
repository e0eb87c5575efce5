package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/planarphys/planar/internal/analysis"
	"github.com/planarphys/planar/internal/export"
	"github.com/planarphys/planar/internal/gui"
	"github.com/planarphys/planar/internal/metrics"
	"github.com/planarphys/planar/internal/phys"
	"github.com/planarphys/planar/internal/scene"
	"github.com/planarphys/planar/internal/sim"
	"github.com/planarphys/planar/internal/tui"
)

var (
	dt          float64
	duration    float64
	sampleEvery int
	sceneFile   string
	frameRate   int
	trackBody   string
	csvOut      string
	svgOut      string
	jsonOut     string
	verbose     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "planar",
		Short: "2D rigid-body compound simulation lab",
	}
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "structured diagnostics")

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "simulate a scene and report metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScene,
	}
	runCmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", 10.0, "duration")
	runCmd.Flags().IntVar(&sampleEvery, "sample", 1, "record every n-th step")
	runCmd.Flags().StringVar(&sceneFile, "scene-file", "", "scene file path (yaml)")
	runCmd.Flags().StringVar(&csvOut, "csv", "", "write trajectories to CSV file")
	runCmd.Flags().StringVar(&svgOut, "svg", "", "write trajectories to SVG file")
	runCmd.Flags().StringVar(&jsonOut, "json", "", "write full result to JSON file")

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "watch a scene step in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", 0.005, "timestep")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().StringVar(&sceneFile, "scene-file", "", "scene file path (yaml)")

	guiCmd := &cobra.Command{
		Use:   "gui [scene]",
		Short: "watch a scene step in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, world, err := resolveScene(args)
			if err != nil {
				return err
			}
			gui.Run(name, world, dt)
			return nil
		},
	}
	guiCmd.Flags().Float64Var(&dt, "dt", 0.005, "timestep")
	guiCmd.Flags().StringVar(&sceneFile, "scene-file", "", "scene file path (yaml)")

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list built-in scenes",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := scene.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				sc := scene.Presets[name]
				fmt.Printf("%-10s %d bodies, %d constraints, %d compounds\n",
					name, len(sc.Bodies), len(sc.Constraints), len(sc.Compounds))
			}
			return nil
		},
	}

	spectrumCmd := &cobra.Command{
		Use:   "spectrum [scene]",
		Short: "frequency analysis of a body trajectory",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSpectrum,
	}
	spectrumCmd.Flags().Float64Var(&dt, "dt", 0.01, "timestep")
	spectrumCmd.Flags().Float64Var(&duration, "time", 10.0, "duration")
	spectrumCmd.Flags().StringVar(&sceneFile, "scene-file", "", "scene file path (yaml)")
	spectrumCmd.Flags().StringVar(&trackBody, "body", "", "body name to analyze (default: first)")

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, scenesCmd, spectrumCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// resolveScene loads --scene-file when given, otherwise treats the
// positional argument as a preset name (default "chain").
func resolveScene(args []string) (string, *scene.World, error) {
	var sc *scene.Scene
	switch {
	case sceneFile != "":
		loaded, err := scene.Load(sceneFile)
		if err != nil {
			return "", nil, fmt.Errorf("failed to load scene: %w", err)
		}
		sc = loaded
	case len(args) > 0:
		sc = scene.Presets[args[0]]
		if sc == nil {
			return "", nil, fmt.Errorf("unknown scene: %s (available: %v)", args[0], scene.ListPresets())
		}
	default:
		sc = scene.Presets["chain"]
	}

	world, err := sc.Build()
	if err != nil {
		return "", nil, err
	}
	name := sc.Name
	if name == "" {
		name = "custom"
	}
	return name, world, nil
}

// energyTrace samples the energy metric each step for plotting.
type energyTrace struct {
	metric *metrics.KineticEnergy
	series []float64
}

func (e *energyTrace) OnStep(s *phys.Space, t float64) {
	e.series = append(e.series, e.metric.Latest())
}

func runScene(cmd *cobra.Command, args []string) error {
	logger := newLogger()
	defer logger.Sync()

	name, world, err := resolveScene(args)
	if err != nil {
		return err
	}
	logger.Info("scene built",
		zap.String("scene", name),
		zap.Int("bodies", len(world.Bodies)),
		zap.Int("constraints", len(world.Constraints)),
		zap.Int("compounds", len(world.Compounds)),
	)

	runner := sim.New(world.Space)
	energy := metrics.NewKineticEnergy()
	trace := &energyTrace{metric: energy}
	runner.AddMetric(energy)
	runner.AddMetric(metrics.NewMomentum())
	compoundNames := make([]string, 0, len(world.Compounds))
	for cname := range world.Compounds {
		compoundNames = append(compoundNames, cname)
	}
	sort.Strings(compoundNames)
	for _, cname := range compoundNames {
		runner.AddMetric(metrics.NewNamedCOMDrift("com_drift_"+cname, world.Compounds[cname]))
	}
	runner.AddObserver(trace)

	names := make([]string, 0, len(world.Bodies))
	for bodyName := range world.Bodies {
		names = append(names, bodyName)
	}
	sort.Strings(names)
	for _, bodyName := range names {
		runner.Track(bodyName, world.Bodies[bodyName])
	}

	fmt.Printf("running %s...\n", name)
	start := time.Now()
	result, err := runner.Run(context.Background(), sim.Config{
		Dt:          dt,
		Duration:    duration,
		SampleEvery: sampleEvery,
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	logger.Info("run completed",
		zap.Duration("elapsed", elapsed),
		zap.Int("steps", result.Steps),
		zap.Int("events", result.Events),
	)

	fmt.Printf("completed in %v (%d steps)\n\n", elapsed, result.Steps)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "metric\tvalue")
	metricNames := make([]string, 0, len(result.Metrics))
	for metricName := range result.Metrics {
		metricNames = append(metricNames, metricName)
	}
	sort.Strings(metricNames)
	for _, metricName := range metricNames {
		fmt.Fprintf(w, "%s\t%.6f\n", metricName, result.Metrics[metricName])
	}
	w.Flush()

	if len(trace.series) > 1 {
		fmt.Println("\nkinetic energy:")
		fmt.Println(asciigraph.Plot(trace.series, asciigraph.Height(10), asciigraph.Width(70)))
	}

	if csvOut != "" {
		if err := export.SaveCSV(csvOut, result); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", csvOut)
	}
	if svgOut != "" {
		if err := export.SaveSVG(svgOut, result, 800, 600); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
	}
	if jsonOut != "" {
		if err := export.SaveJSON(jsonOut, name, dt, result); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", jsonOut)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	name, world, err := resolveScene(args)
	if err != nil {
		return err
	}
	return tui.Run(name, world, dt, frameRate)
}

func runSpectrum(cmd *cobra.Command, args []string) error {
	name, world, err := resolveScene(args)
	if err != nil {
		return err
	}

	bodyName := trackBody
	if bodyName == "" {
		names := make([]string, 0, len(world.Bodies))
		for n := range world.Bodies {
			names = append(names, n)
		}
		sort.Strings(names)
		if len(names) == 0 {
			return fmt.Errorf("scene %s has no bodies", name)
		}
		bodyName = names[0]
	}
	body, ok := world.Bodies[bodyName]
	if !ok {
		return fmt.Errorf("unknown body: %s", bodyName)
	}

	runner := sim.New(world.Space)
	runner.Track(bodyName, body)
	result, err := runner.Run(context.Background(), sim.Config{Dt: dt, Duration: duration})
	if err != nil {
		return err
	}

	samples := make([]float64, len(result.Tracks[bodyName]))
	for i, p := range result.Tracks[bodyName] {
		samples[i] = p.Y
	}

	freq, err := analysis.DominantFrequency(samples, dt)
	if err != nil {
		return err
	}
	fmt.Printf("%s/%s: dominant frequency %.3f Hz\n\n", name, bodyName, freq)

	ps := analysis.PowerSpectrum(samples)
	if len(ps) > 64 {
		ps = ps[:64]
	}
	fmt.Println(asciigraph.Plot(ps, asciigraph.Height(12), asciigraph.Width(70)))
	return nil
}
