package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/glucosim/internal/catalog"
	"github.com/san-kum/glucosim/internal/config"
	"github.com/san-kum/glucosim/internal/curve"
	"github.com/san-kum/glucosim/internal/engine"
	"github.com/san-kum/glucosim/internal/export"
	"github.com/san-kum/glucosim/internal/viz"
)

var (
	page        string
	configFile  string
	catalogFile string
	watch       bool
	logFile     string
	debug       bool
	theme       string

	itemFlags []string
	baseline  float64
	csvOut    bool
	jsonOut   bool
	outFile   string
	search    string
	module    string
	itemID    string
	writePath string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "glucosim",
		Short:        "glucose and ketone response curve simulator",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&page, "page", "blood-sugar", "page preset ("+strings.Join(config.ListPresets(), ", ")+")")
	pf.StringVar(&configFile, "config", "", "config file path (yaml), overrides --page")
	pf.StringVar(&catalogFile, "catalog", "", "catalog file path (yaml)")
	pf.BoolVar(&watch, "watch", false, "reload config and catalog files when they change")
	pf.StringVar(&logFile, "log-file", "", "write tui logs to this file")
	pf.BoolVar(&debug, "debug", false, "debug logging")
	pf.StringVar(&theme, "theme", "meadow", "tui theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "interactive timeline tracker",
		RunE:  runTUI,
	}

	curveCmd := &cobra.Command{
		Use:   "curve",
		Short: "print the response curve for a set of timed items",
		RunE:  runCurve,
	}
	addSessionFlags(curveCmd)
	curveCmd.Flags().BoolVar(&csvOut, "csv", false, "write samples as csv")
	curveCmd.Flags().BoolVar(&jsonOut, "json", false, "write the full report as json")
	curveCmd.MarkFlagsMutuallyExclusive("csv", "json")

	svgCmd := &cobra.Command{
		Use:   "svg",
		Short: "render the response curve as svg",
		RunE:  runSVG,
	}
	addSessionFlags(svgCmd)
	svgCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "list catalog items",
		RunE:  listCatalog,
	}
	catalogCmd.Flags().StringVar(&search, "search", "", "filter by name or category")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list page presets",
		RunE:  listPresets,
	}

	learnCmd := &cobra.Command{
		Use:       "learn [page]",
		Short:     "compare the items of a learning module",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: catalog.ModulePages(),
		RunE:      runLearn,
	}
	learnCmd.Flags().StringVar(&module, "module", "", "module id or name (default first)")
	learnCmd.Flags().StringVar(&itemID, "item", "", "highlighted item id (default first)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective config as yaml",
		RunE:  showConfig,
	}
	configCmd.Flags().StringVar(&writePath, "write", "", "save the effective config to this path")

	rootCmd.AddCommand(tuiCmd, curveCmd, svgCmd, catalogCmd, presetsCmd, learnCmd, configCmd)
	return rootCmd
}

func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayVar(&itemFlags, "item", nil, "item id, optionally placed with id@position (repeatable)")
	cmd.Flags().Float64Var(&baseline, "baseline", config.DefaultBaseline, "baseline value")
}

func cliLogger() *slog.Logger {
	return config.NewLogger(os.Stderr, debug)
}

func runTUI(cmd *cobra.Command, args []string) error {
	var w io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		w = f
	}
	log := config.NewLogger(w, debug)

	cfg, cat, err := loadInputs(log)
	if err != nil {
		return err
	}
	opts := viz.Options{
		Config:  *cfg,
		Catalog: cat,
		Modules: pageModules(cfg.Name, cat),
		Theme:   theme,
		Logger:  log,
	}
	if watch {
		opts.Watch = watchedFiles()
		opts.Reload = func() (*config.Config, *catalog.Catalog, error) {
			return loadInputs(log)
		}
		if len(opts.Watch) == 0 {
			log.Warn("--watch needs --config or --catalog; nothing to watch")
		}
	}
	log.Info("starting tui", "page", cfg.Name, "items", len(cat.Items), "watch", opts.Watch)
	return viz.Run(opts)
}

func loadConfig() (*config.Config, error) {
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %w", configFile, err)
		}
		return cfg, nil
	}
	cfg := config.GetPreset(page)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %s (available: %s)", config.ErrUnknownPreset, page, strings.Join(config.ListPresets(), ", "))
	}
	return cfg, nil
}

func loadCatalog(log *slog.Logger) (*catalog.Catalog, error) {
	if catalogFile == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.Load(catalogFile)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", catalogFile, err)
	}
	for _, w := range cat.Warnings() {
		log.Warn("catalog entry degraded", "path", catalogFile, "detail", w)
	}
	return cat, nil
}

func loadInputs(log *slog.Logger) (*config.Config, *catalog.Catalog, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	cat, err := loadCatalog(log)
	if err != nil {
		return nil, nil, err
	}
	return cfg, cat, nil
}

// pageModules prefers modules from a catalog file over the built-in ones.
func pageModules(name string, cat *catalog.Catalog) []catalog.Module {
	if len(cat.Modules) > 0 {
		return cat.Modules
	}
	mods, err := catalog.Modules(name)
	if err != nil {
		return nil
	}
	return mods
}

func watchedFiles() []string {
	var files []string
	for _, f := range []string{configFile, catalogFile} {
		if f != "" {
			files = append(files, f)
		}
	}
	return files
}

// buildSession selects and places every --item on a fresh session.
func buildSession(cmd *cobra.Command, log *slog.Logger) (*engine.Session, error) {
	cfg, cat, err := loadInputs(log)
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("baseline") {
		c := cfg.WithBaseline(baseline)
		cfg = &c
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := engine.New(*cfg, engine.WithLogger(log))
	for _, raw := range itemFlags {
		id, pos, placed, err := parseItemFlag(raw)
		if err != nil {
			return nil, err
		}
		it, ok := cat.Lookup(id)
		if !ok {
			return nil, fmt.Errorf("unknown item %q (see 'glucosim catalog')", id)
		}
		if s.IsSelected(id) {
			return nil, fmt.Errorf("item %q given twice", id)
		}
		if s.Full() {
			return nil, fmt.Errorf("at most %d items fit on the timeline", cfg.MaxSelected)
		}
		s.Select(it)
		if placed {
			s.Retime(id, pos)
		}
		log.Debug("placed item", "item", id, "position", pos, "explicit", placed)
	}
	return s, nil
}

func runCurve(cmd *cobra.Command, args []string) error {
	s, err := buildSession(cmd, cliLogger())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	switch {
	case csvOut:
		return export.CSV(out, s)
	case jsonOut:
		return export.JSON(out, s)
	}
	return printCurve(out, s)
}

func printCurve(out io.Writer, s *engine.Session) error {
	cfg := s.Config()
	samples := s.Curve()
	caption := fmt.Sprintf("%s (%s), %s to %s", cfg.Title, cfg.Unit,
		curve.Label(cfg.Window.StartHour, 0), curve.Label(cfg.Window.StartHour, curve.Span(cfg.Window)))

	graph := asciigraph.Plot(curve.Values(samples),
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.LowerBound(cfg.Chart.YMin),
		asciigraph.UpperBound(cfg.Chart.YMax),
		asciigraph.Caption(caption),
	)
	fmt.Fprintln(out, graph)
	fmt.Fprintln(out)

	report := export.NewReport(s)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FROM\tTO\tZONE\tCOLOR")
	for _, run := range report.Runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			samples[run.From].Label,
			samples[run.To].Label,
			zoneName(cfg.Palette.Zone(samples[run.From].Value)),
			run.Color,
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(report.Markers) == 0 {
		return nil
	}

	fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tITEM\tTIME\tVALUE\tZONE")
	for i, mk := range report.Markers {
		fmt.Fprintf(w, "%d\t%s\t%s\t%.1f %s\t%s\n", i+1, mk.Name, mk.Time, mk.Value, cfg.Unit, zoneName(mk.Zone))
	}
	return w.Flush()
}

func zoneName(label string) string {
	if label == "" {
		return "normal"
	}
	return label
}

func runSVG(cmd *cobra.Command, args []string) error {
	log := cliLogger()
	s, err := buildSession(cmd, log)
	if err != nil {
		return err
	}
	doc := export.SVG(s)
	if outFile == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), doc)
		return err
	}
	if err := os.WriteFile(outFile, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	log.Info("wrote svg", "path", outFile, "items", s.Len())
	return nil
}

func listCatalog(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog(cliLogger())
	if err != nil {
		return err
	}
	items := cat.Search(search)
	out := cmd.OutOrStdout()
	if len(items) == 0 {
		fmt.Fprintln(out, "no items found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tSERVING\tEFFECT\tPEAK\tDURATION")
	for _, it := range items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			it.ID,
			it.Label(),
			it.Category,
			it.Serving,
			effect(it),
			hours(it.PeakTime),
			hours(it.Duration),
		)
	}
	return w.Flush()
}

func effect(it catalog.Item) string {
	switch {
	case it.Magnitude != nil:
		return fmt.Sprintf("%+g", *it.Magnitude)
	case it.PeakValue != nil:
		return fmt.Sprintf("peak %g", *it.PeakValue)
	}
	return "-"
}

func hours(h float64) string {
	if h == 0 {
		return "default"
	}
	return fmt.Sprintf("%gh", h)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PAGE\tTITLE\tUNIT\tBASELINE\tMODULES")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		mods, _ := catalog.Modules(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%g\t%d\n", name, cfg.Title, cfg.Unit, cfg.Baseline, len(mods))
	}
	return w.Flush()
}

func runLearn(cmd *cobra.Command, args []string) error {
	name := page
	if len(args) > 0 {
		name = args[0]
	}
	cfg := config.GetPreset(name)
	if cfg == nil {
		return fmt.Errorf("%w: %s", config.ErrUnknownPreset, name)
	}
	cat, err := loadCatalog(cliLogger())
	if err != nil {
		return err
	}
	mods := pageModules(name, cat)
	if len(mods) == 0 {
		return fmt.Errorf("%s: %w", name, catalog.ErrUnknownModule)
	}
	lib, err := catalog.New(nil, mods)
	if err != nil {
		return err
	}

	mod := mods[0]
	if module != "" {
		if mod, err = lib.Module(module); err != nil {
			return err
		}
	}
	focus := 0
	if itemID != "" {
		focus = -1
		for i, it := range mod.Items {
			if it.ID == itemID {
				focus = i
			}
		}
		if focus < 0 {
			return fmt.Errorf("item %q is not in module %s", itemID, mod.ID)
		}
	}

	current := viz.LearningCurve(mod.Items[focus], *cfg)
	series := [][]float64{curve.Values(current)}
	colors := []asciigraph.AnsiColor{asciigraph.Green}
	for i, it := range mod.Items {
		if i != focus {
			series = append(series, curve.Values(viz.LearningCurve(it, *cfg)))
			colors = append(colors, asciigraph.DarkGray)
		}
	}

	out := cmd.OutOrStdout()
	it := mod.Items[focus]
	graph := asciigraph.PlotMany(series,
		asciigraph.Height(14),
		asciigraph.Width(80),
		asciigraph.LowerBound(cfg.Chart.YMin),
		asciigraph.UpperBound(cfg.Chart.YMax),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption(fmt.Sprintf("%s %s: %s vs %d others (%s)", mod.Icon, mod.Name, it.Label(), len(mod.Items)-1, cfg.Unit)),
	)
	fmt.Fprintln(out, graph)
	fmt.Fprintln(out)

	peak := current[curve.Peak(current)]
	fmt.Fprintf(out, "%s peaks at %.2f %s around %s\n", it.Label(), peak.Value, cfg.Unit, peak.Label)
	if it.Description != "" {
		fmt.Fprintln(out, it.Description)
	}
	if mod.Instructions != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, mod.Instructions)
	}
	if cfg.Disclaimer != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, cfg.Disclaimer)
	}
	return nil
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if writePath != "" {
		if err := config.Save(writePath, cfg); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
		cliLogger().Info("saved config", "path", writePath)
		return nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}
