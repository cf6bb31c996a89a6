package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/phycosim/internal/climate"
	"github.com/san-kum/phycosim/internal/config"
	"github.com/san-kum/phycosim/internal/experiment"
	"github.com/san-kum/phycosim/internal/optim"
	"github.com/san-kum/phycosim/internal/storage"
	"github.com/san-kum/phycosim/internal/viz"
)

var (
	dataDir     string
	configFile  string
	preset      string
	speciesName string
	climateName string
	climateFile string
	integrator  string

	depth     float64
	area      float64
	co2       float64
	inoculum  float64
	threshold float64

	startMonth int
	days       int
	dt         float64
	tolerance  float64

	noSave    bool
	showPlots bool
	jsonOut   bool

	sweepParams []string
	objective   string
	series      string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "phycosim",
		Short: "open raceway pond growth and carbon capture simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".phycosim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the daily budget model with harvest cycling",
		RunE:  runDaily,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "skip persisting the run")
	runCmd.Flags().BoolVar(&showPlots, "plot", false, "print ascii plots after the summary")
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "write the full result as JSON to stdout")

	odeCmd := &cobra.Command{
		Use:   "ode",
		Short: "integrate the continuous self-shading ODE",
		RunE:  runODE,
	}
	addScenarioFlags(odeCmd)
	odeCmd.Flags().StringVar(&integrator, "integrator", "rk4", "euler, rk4, rk45, or implicit")
	odeCmd.Flags().Float64Var(&dt, "dt", 0.25, "timestep [days]")
	odeCmd.Flags().Float64Var(&tolerance, "tol", 1e-6, "adaptive error tolerance")
	odeCmd.Flags().BoolVar(&noSave, "no-save", false, "skip persisting the run")
	odeCmd.Flags().BoolVar(&showPlots, "plot", false, "print ascii plots after the summary")
	odeCmd.Flags().BoolVar(&jsonOut, "json", false, "write the full result as JSON to stdout")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch a daily run unfold in the terminal",
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid-search scenario parameters",
		Long: `Sweep one or more parameters over explicit value grids and report the
assignment that maximizes the chosen objective, e.g.

  phycosim sweep --param depth=0.1,0.2,0.3,0.4 --param co2=2,5,10 --objective co2`,
		RunE: runSweep,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().StringArrayVar(&sweepParams, "param", nil, "name=v1,v2,... (repeatable)")
	sweepCmd.Flags().StringVar(&objective, "objective", "co2", "co2, harvest, or productivity")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&series, "series", "", "biomass, growth, productivity, or co2 (default: all)")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a saved run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	speciesCmd := &cobra.Command{
		Use:   "species",
		Short: "list species parameter presets",
		RunE:  listSpecies,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenario presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				p := config.GetPreset(name)
				fmt.Printf("%-12s %s in %s, %d days from month %d\n",
					name, p.Species, p.Climate, p.Simulation.DurationDays, p.Simulation.StartMonth)
			}
			return nil
		},
	}

	climateCmd := &cobra.Command{
		Use:   "climate [profile]",
		Short: "show a built-in climate profile",
		Args:  cobra.ExactArgs(1),
		RunE:  showClimate,
	}

	rootCmd.AddCommand(runCmd, odeCmd, liveCmd, sweepCmd, listCmd, plotCmd, exportCmd, speciesCmd, presetsCmd, climateCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "scenario preset name")
	cmd.Flags().StringVar(&speciesName, "species", "chlorella_vulgaris", "species preset")
	cmd.Flags().StringVar(&climateName, "climate", "surat", "built-in climate profile")
	cmd.Flags().StringVar(&climateFile, "climate-file", "", "climate profile file (yaml)")
	cmd.Flags().Float64Var(&depth, "depth", config.DefaultDepth, "pond depth [m]")
	cmd.Flags().Float64Var(&area, "area", config.DefaultSurfaceArea, "pond surface area [m2]")
	cmd.Flags().Float64Var(&co2, "co2", config.DefaultCO2, "dissolved CO2 [mg/L]")
	cmd.Flags().Float64Var(&inoculum, "x0", config.DefaultInitialBiomass, "initial biomass [g/L]")
	cmd.Flags().Float64Var(&threshold, "harvest", config.DefaultHarvestThreshold, "harvest threshold [g/L], 0 disables")
	cmd.Flags().IntVar(&startMonth, "start-month", config.DefaultStartMonth, "start month (1-12)")
	cmd.Flags().IntVar(&days, "days", config.DefaultDurationDays, "duration [days]")
}

// buildConfig layers preset, config file, and flags, with explicit flags
// winning.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		copied := *p
		cfg = &copied
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("species") {
		cfg.Species = speciesName
	}
	if flags.Changed("climate") {
		cfg.Climate = climateName
	}
	if flags.Changed("climate-file") {
		cfg.ClimateFile = climateFile
	}
	if flags.Changed("depth") {
		cfg.Pond.Depth = depth
	}
	if flags.Changed("area") {
		cfg.Pond.SurfaceArea = area
	}
	if flags.Changed("co2") {
		cfg.Culture.CO2 = co2
	}
	if flags.Changed("x0") {
		cfg.Culture.InitialBiomass = inoculum
	}
	if flags.Changed("harvest") {
		cfg.Culture.HarvestThreshold = threshold
	}
	if flags.Changed("start-month") {
		cfg.Simulation.StartMonth = startMonth
	}
	if flags.Changed("days") {
		cfg.Simulation.DurationDays = days
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("dt") {
		cfg.Simulation.Dt = dt
	}
	if flags.Changed("tol") {
		cfg.Simulation.Tolerance = tolerance
	}

	return cfg, cfg.Validate()
}

func runDaily(cmd *cobra.Command, args []string) error {
	return runMode(cmd, experiment.ModeDaily)
}

func runODE(cmd *cobra.Command, args []string) error {
	return runMode(cmd, experiment.ModeODE)
}

func runMode(cmd *cobra.Command, mode experiment.Mode) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg, mode)
	if err != nil {
		return err
	}

	result, err := exp.Run(context.Background())
	if err != nil {
		return err
	}

	if jsonOut {
		return storage.ExportJSONStdout(cfg.Species, cfg.Climate, string(mode), cfg.Simulation.StartMonth, result)
	}

	fmt.Println(viz.Summary(cfg.Species, exp.Scenario.Climate.Name, result))
	if showPlots {
		fmt.Println(viz.PlotAll(result))
	}

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(cfg.Species, exp.Scenario.Climate.Name, string(mode), cfg.Simulation.StartMonth, result)
		if err != nil {
			return err
		}
		fmt.Printf("saved: %s\n", runID)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := experiment.Build(cfg)
	if err != nil {
		return err
	}
	return viz.RunLive(cfg.Species, sc)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	base, err := experiment.Build(cfg)
	if err != nil {
		return err
	}

	if len(sweepParams) == 0 {
		return fmt.Errorf("at least one --param name=v1,v2,... is required")
	}

	names := make([]string, 0, len(sweepParams))
	ranges := make([][]float64, 0, len(sweepParams))
	for _, spec := range sweepParams {
		name, csv, ok := strings.Cut(spec, "=")
		if !ok {
			return fmt.Errorf("bad --param %q, want name=v1,v2,...", spec)
		}
		var vals []float64
		for _, field := range strings.Split(csv, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return fmt.Errorf("bad value in --param %q: %w", spec, err)
			}
			vals = append(vals, v)
		}
		names = append(names, name)
		ranges = append(ranges, vals)
	}

	obj, ok := optim.Objectives[objective]
	if !ok {
		return fmt.Errorf("unknown objective: %s (want co2, harvest, or productivity)", objective)
	}

	best, bestVal, err := optim.NewGridSearch(names, ranges).Search(context.Background(), base, obj)
	if err != nil {
		return err
	}

	fmt.Printf("best %s: %.3f\n", objective, bestVal)
	keys := make([]string, 0, len(best))
	for k := range best {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("  %s = %g\n", k, best[k])
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no saved runs")
		return nil
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSPECIES\tCLIMATE\tMODE\tDAYS\tHARVESTS\tCO2 [kg]")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%.1f\n",
			r.ID, r.Species, r.Climate, r.Mode, r.DurationDays, r.HarvestCount, r.CO2TotalKg)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	result, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s (%s in %s)\n\n", meta.ID, meta.Species, meta.Climate)

	if series != "" {
		plot, err := viz.PlotSeries(result, series)
		if err != nil {
			return err
		}
		fmt.Println(plot)
		return nil
	}
	fmt.Println(viz.PlotAll(result))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	result, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSONStdout(meta.Species, meta.Climate, meta.Mode, meta.StartMonth, result)
}

func listSpecies(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tNAME\tMU_MAX\tI_OPT\tT_OPT\tC CONTENT\tSOURCE")
	for _, key := range config.ListSpecies() {
		s, _ := config.GetSpecies(key)
		fmt.Fprintf(w, "%s\t%s\t%.2f\t%.0f\t%.0f\t%.2f\t%s\n",
			key, s.Name, s.Growth.MuMax, s.Growth.IOpt, s.Temp.TOpt, s.CarbonContent, s.Citation)
	}
	return w.Flush()
}

func showClimate(cmd *cobra.Command, args []string) error {
	c, ok := climate.Get(args[0])
	if !ok {
		var names []string
		for name := range climate.Profiles {
			names = append(names, name)
		}
		sort.Strings(names)
		return fmt.Errorf("unknown climate profile: %s (available: %v)", args[0], names)
	}

	fmt.Printf("%s  (cardinal temperatures %.0f/%.0f/%.0f C)\n\n",
		c.Name, c.Cardinal.TMin, c.Cardinal.TOpt, c.Cardinal.TMax)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MONTH\tDAY C\tNIGHT C\tPAR\tDAYLIGHT h\tSEASON")
	for i, m := range c.Months {
		fmt.Fprintf(w, "%s\t%.1f\t%.1f\t%.0f\t%.1f\t%s\n",
			climate.MonthNames[i], m.TempDay, m.TempNight, m.PAR, m.Photoperiod, m.Season)
	}
	return w.Flush()
}
