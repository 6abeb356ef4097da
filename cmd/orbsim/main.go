package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/orbsim/internal/analysis"
	"github.com/san-kum/orbsim/internal/automation"
	"github.com/san-kum/orbsim/internal/config"
	"github.com/san-kum/orbsim/internal/domain"
	"github.com/san-kum/orbsim/internal/domain/atom"
	"github.com/san-kum/orbsim/internal/domain/social"
	"github.com/san-kum/orbsim/internal/export"
	"github.com/san-kum/orbsim/internal/loader"
	"github.com/san-kum/orbsim/internal/logger"
	"github.com/san-kum/orbsim/internal/metrics"
	"github.com/san-kum/orbsim/internal/orbit"
	"github.com/san-kum/orbsim/internal/sim"
	"github.com/san-kum/orbsim/internal/storage"
	"github.com/san-kum/orbsim/internal/viz"
)

var (
	dataDir    string
	configFile string
	debug      bool
	dt         float64
	steps      int
	frameRate  int
	theme      string
	aligned    bool
	textDiff   bool
	format     string
	svgSize    int
	workers    int

	cfg           *config.Config
	closeLogger   func() error
	stderr        = os.Stderr
	maxSuggestion = 3
)

// main registers the orbsim commands and runs the preset browser when no
// subcommand is given.
func main() {
	rootCmd := &cobra.Command{
		Use:               "orbsim",
		Short:             "orbital systems lab: atoms, stellar systems and social circles",
		SilenceUsage:      true,
		PersistentPreRunE: setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if closeLogger != nil {
				return closeLogger()
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunBrowser(vizOptions())
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "debug logging")

	loadCmd := &cobra.Command{
		Use:   "load [domain] [file]",
		Short: "load a system description and save a snapshot",
		Args:  cobra.ExactArgs(2),
		RunE:  loadSystem,
	}
	loadCmd.Flags().IntVar(&workers, "workers", 0, "parser workers (default from config)")

	presetCmd := &cobra.Command{
		Use:   "preset [domain] [name]",
		Short: "load a built-in preset and save a snapshot",
		Args:  cobra.ExactArgs(2),
		RunE:  loadPreset,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [domain]",
		Short: "list built-in presets",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list snapshots",
		RunE:  listSnapshots,
	}

	showCmd := &cobra.Command{
		Use:   "show [id]",
		Short: "show the entities of a snapshot by track",
		Args:  cobra.ExactArgs(1),
		RunE:  showSnapshot,
	}

	entropyCmd := &cobra.Command{
		Use:   "entropy [id]",
		Short: "print the track distribution entropy",
		Args:  cobra.ExactArgs(1),
		RunE:  showEntropy,
	}

	distanceCmd := &cobra.Command{
		Use:   "distance [id] [a] [b]",
		Short: "logical and physical distance between two entities",
		Args:  cobra.ExactArgs(3),
		RunE:  showDistance,
	}

	diffCmd := &cobra.Command{
		Use:   "diff [idA] [idB]",
		Short: "compare two snapshots",
		Args:  cobra.ExactArgs(2),
		RunE:  diffSnapshots,
	}
	diffCmd.Flags().BoolVar(&aligned, "aligned", false, "compare tracks by radii instead of position")
	diffCmd.Flags().BoolVar(&textDiff, "text", false, "also print a line diff of the serialized snapshots")

	transitCmd := &cobra.Command{
		Use:   "transit [id] [from] [to] [n]",
		Short: "move n electrons between shells of an atom snapshot",
		Args:  cobra.ExactArgs(4),
		RunE:  transitElectrons,
	}

	stepCmd := &cobra.Command{
		Use:   "step [id...]",
		Short: "advance stellar snapshots in time",
		Args:  cobra.MinimumNArgs(1),
		RunE:  stepSnapshots,
	}
	stepCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	stepCmd.Flags().IntVar(&steps, "steps", 0, "number of steps (default from config)")

	liveCmd := &cobra.Command{
		Use:   "live [domain] [file|preset]",
		Short: "watch a system in the terminal",
		Args:  cobra.ExactArgs(2),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	liveCmd.Flags().StringVar(&theme, "theme", "", "color theme: "+strings.Join(viz.ThemeNames(), ", "))

	queryCmd := &cobra.Command{
		Use:   "query [id] [name]",
		Short: "look up an entity by name",
		Args:  cobra.ExactArgs(2),
		RunE:  queryEntity,
	}

	exportCmd := &cobra.Command{
		Use:   "export [id]",
		Short: "export a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSnapshot,
	}
	exportCmd.Flags().StringVar(&format, "format", "yaml", "yaml, json or svg")
	exportCmd.Flags().IntVar(&svgSize, "size", 600, "svg size in pixels")

	runCmd := &cobra.Command{
		Use:   "run [scenario.yaml]",
		Short: "replay a scripted scenario and save the result",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	rmCmd := &cobra.Command{
		Use:   "rm [id]",
		Short: "delete a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE:  removeSnapshot,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the default configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(loadCmd, presetCmd, presetsCmd, listCmd, showCmd, entropyCmd, distanceCmd,
		diffCmd, transitCmd, stepCmd, liveCmd, queryCmd, exportCmd, runCmd, rmCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the configuration, lets explicit flags win over it and
// starts the file logger.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if !flags.Changed("data") {
		dataDir = cfg.DataDir
	}
	if !flags.Changed("debug") {
		debug = cfg.Debug
	}
	if flags.Lookup("dt") != nil && !flags.Changed("dt") {
		dt = cfg.Sim.Dt
	}
	if flags.Lookup("fps") != nil && !flags.Changed("fps") {
		frameRate = cfg.Viz.FPS
	}
	if theme == "" {
		theme = cfg.Viz.Theme
	}
	viz.SetTheme(theme)

	closeLogger, err = logger.Setup(logger.Config{Dir: dataDir, Debug: debug})
	if err != nil {
		fmt.Fprintf(stderr, "warning: logging disabled: %v\n", err)
	}
	logger.L().Info("cli.command", "name", cmd.Name(), "args", args)
	return nil
}

func registryOptions() []orbit.Option {
	return []orbit.Option{orbit.WithLogger(logger.L())}
}

func loaderOptions() loader.Options {
	opts := loader.Options{
		Workers:   cfg.Loader.Workers,
		ChunkSize: cfg.Loader.ChunkSize,
		Logger:    logger.L(),
		Registry:  registryOptions(),
	}
	if workers > 0 {
		opts.Workers = workers
	}
	return opts
}

func vizOptions() viz.Options {
	return viz.Options{Dt: dt, FPS: frameRate}
}

func openStore() (*storage.Store, error) {
	st := storage.New(dataDir)
	return st, st.Init()
}

// loadSnapshot resolves an id prefix and rebuilds its system.
func loadSnapshot(st *storage.Store, ref string) (string, domain.System, error) {
	id, err := st.Resolve(ref)
	if err != nil {
		return "", nil, err
	}
	sys, err := st.LoadSystem(id, registryOptions()...)
	if err != nil {
		return "", nil, fmt.Errorf("snapshot %s: %w", id, err)
	}
	return id, sys, nil
}

// reportProblems prints load problems and returns how many there were.
// Any error that is not a load report is returned as is.
func reportProblems(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var lerr *orbit.LoadError
	if !errors.As(err, &lerr) {
		return 0, err
	}
	fmt.Fprintf(stderr, "%d problem(s):\n", lerr.Len())
	for _, p := range lerr.Errors() {
		fmt.Fprintf(stderr, "  %v\n", p)
	}
	return lerr.Len(), nil
}

func saveLoaded(sys domain.System, source string, problems int) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	id, err := st.Save(sys, storage.SaveOptions{Source: source, Problems: problems})
	if err != nil {
		return err
	}
	printSummary(sys)
	fmt.Printf("snapshot: %s\n", id)
	return nil
}

func loadSystem(cmd *cobra.Command, args []string) error {
	kind, err := domain.ParseKind(args[0])
	if err != nil {
		return err
	}
	start := time.Now()
	sys, err := loader.LoadFile(cmd.Context(), kind, args[1], loaderOptions())
	problems, err := reportProblems(err)
	if err != nil {
		return err
	}
	fmt.Printf("loaded %s in %v\n", args[1], time.Since(start).Round(time.Microsecond))
	return saveLoaded(sys, args[1], problems)
}

func presetSource(kind domain.Kind, name string) (*config.Preset, error) {
	p := config.GetPreset(kind, name)
	if p == nil {
		return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets(kind))
	}
	return p, nil
}

func loadPreset(cmd *cobra.Command, args []string) error {
	kind, err := domain.ParseKind(args[0])
	if err != nil {
		return err
	}
	p, err := presetSource(kind, args[1])
	if err != nil {
		return err
	}
	sys, err := loader.Load(cmd.Context(), kind, strings.NewReader(p.Source), loaderOptions())
	problems, err := reportProblems(err)
	if err != nil {
		return err
	}
	return saveLoaded(sys, "preset:"+string(kind)+"/"+args[1], problems)
}

func listPresets(cmd *cobra.Command, args []string) error {
	kinds := domain.Kinds()
	if len(args) == 1 {
		kind, err := domain.ParseKind(args[0])
		if err != nil {
			return err
		}
		kinds = []domain.Kind{kind}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DOMAIN\tPRESET\tDESCRIPTION")
	for _, kind := range kinds {
		for _, name := range config.ListPresets(kind) {
			fmt.Fprintf(w, "%s\t%s\t%s\n", kind, name, config.GetPreset(kind, name).Description)
		}
	}
	return w.Flush()
}

func printSummary(sys domain.System) {
	reg := sys.Registry()
	center, _ := reg.Center()
	fmt.Printf("domain: %s\n", sys.Kind())
	if center != nil {
		fmt.Printf("center: %s\n", center.Name())
	}
	fmt.Printf("entities: %d\n", reg.Len())
	fmt.Printf("tracks: %d\n", len(reg.Tracks()))
	fmt.Printf("entropy: %.6f\n", analysis.Entropy(reg))
}

func listSnapshots(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	snaps, err := st.List()
	if err != nil {
		return err
	}

	if len(snaps) == 0 {
		fmt.Println("no snapshots found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDOMAIN\tTIME\tENTITIES\tTRACKS\tENTROPY\tSOURCE")
	for _, s := range snaps {
		source := s.Source
		if s.Parent != "" {
			source = "from " + s.Parent[:8]
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.4f\t%s\n",
			s.ID[:8],
			s.Domain,
			s.Timestamp.Format("2006-01-02 15:04:05"),
			s.Entities,
			s.Tracks,
			s.Entropy,
			source,
		)
	}
	return w.Flush()
}

func showSnapshot(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	id, sys, err := loadSnapshot(st, args[0])
	if err != nil {
		return err
	}
	meta, err := st.Load(id)
	if err != nil {
		return err
	}

	fmt.Printf("snapshot: %s\n", meta.ID)
	fmt.Printf("saved: %s\n", meta.Timestamp.Format(time.RFC3339))
	if meta.Source != "" {
		fmt.Printf("source: %s\n", meta.Source)
	}
	printSummary(sys)
	fmt.Println()

	reg := sys.Registry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRACK\tNAME\tKIND\tANGLE")
	for _, t := range reg.Tracks() {
		for _, eid := range reg.ObjectsOnTrack(t) {
			e, _ := reg.Entity(eid)
			fmt.Fprintf(w, "%s\t%s\t%s\t%.2f\n", t, e.Name(), e.Tag(), e.Angle())
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if c, ok := sys.(*social.Circle); ok {
		edges := reg.Graph().Edges()
		keys := make([]orbit.Edge, 0, len(edges))
		for e := range edges {
			keys = append(keys, e)
		}
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].From != keys[j].From {
				return keys[i].From < keys[j].From
			}
			return keys[i].To < keys[j].To
		})
		fmt.Println("\nrelations:")
		for _, edge := range keys {
			from, _ := reg.Entity(edge.From)
			to, _ := reg.Entity(edge.To)
			fmt.Printf("  %s -> %s: %.3f\n", from.Name(), to.Name(), edges[edge])
		}
		if lonely := c.Ring(-1); len(lonely) > 0 {
			fmt.Println("unassigned:")
			for _, id := range lonely {
				e, _ := reg.Entity(id)
				fmt.Printf("  %s\n", e.Name())
			}
		}
	}
	return nil
}

func showEntropy(cmd *cobra.Command, args []string) error {
	_, sys, err := loadSnapshot(storage.New(dataDir), args[0])
	if err != nil {
		return err
	}
	reg := sys.Registry()
	dist := analysis.Distribution(reg)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRACK\tCOUNT\tSHARE")
	counts := reg.TrackCounts()
	for _, t := range reg.Tracks() {
		fmt.Fprintf(w, "%s\t%d\t%.4f\n", t, counts[t], dist[t])
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nentropy: %.6f\n", analysis.EntropyOf(dist))
	return nil
}

// lookup resolves name in reg, suggesting close names when it is unknown.
func lookup(reg *orbit.Registry, name string) (orbit.ID, error) {
	id, ok := reg.Query(name)
	if ok {
		return id, nil
	}
	if s := reg.Suggest(name, maxSuggestion); len(s) > 0 {
		return orbit.NoID, fmt.Errorf("no entity named %q (did you mean %s?)", name, strings.Join(s, ", "))
	}
	return orbit.NoID, fmt.Errorf("no entity named %q", name)
}

func showDistance(cmd *cobra.Command, args []string) error {
	_, sys, err := loadSnapshot(storage.New(dataDir), args[0])
	if err != nil {
		return err
	}
	reg := sys.Registry()
	a, err := lookup(reg, args[1])
	if err != nil {
		return err
	}
	b, err := lookup(reg, args[2])
	if err != nil {
		return err
	}
	ea, _ := reg.Entity(a)
	eb, _ := reg.Entity(b)

	logical := analysis.LogicalDistance(reg.Graph(), a, b)
	if logical < 0 {
		fmt.Println("logical distance: unreachable")
	} else {
		fmt.Printf("logical distance: %d\n", logical)
	}
	fmt.Printf("physical distance: %.6g\n", analysis.PhysicalDistance(ea, eb))
	return nil
}

func diffSnapshots(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	idA, a, err := loadSnapshot(st, args[0])
	if err != nil {
		return err
	}
	idB, b, err := loadSnapshot(st, args[1])
	if err != nil {
		return err
	}

	var d analysis.Difference
	if aligned {
		d = analysis.AlignedDiff(a.Registry(), b.Registry())
	} else {
		d = analysis.Diff(a.Registry(), b.Registry())
	}
	if d.Empty() {
		fmt.Println("no differences")
	} else {
		fmt.Print(d.String())
	}

	if !textDiff {
		return nil
	}
	docA, err := st.LoadDocument(idA)
	if err != nil {
		return err
	}
	docB, err := st.LoadDocument(idB)
	if err != nil {
		return err
	}
	out, err := storage.TextDiff(docA, docB)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Print(out)
	return nil
}

func parseShell(s string) (orbit.Track, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return orbit.Track{}, fmt.Errorf("invalid shell %q", s)
	}
	return atom.Shell(n)
}

func transitElectrons(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	id, sys, err := loadSnapshot(st, args[0])
	if err != nil {
		return err
	}
	a, ok := sys.(*atom.Structure)
	if !ok {
		return fmt.Errorf("snapshot %s is a %s system, transit needs an atom", id[:8], sys.Kind())
	}
	from, err := parseShell(args[1])
	if err != nil {
		return err
	}
	to, err := parseShell(args[2])
	if err != nil {
		return err
	}
	n, err := strconv.Atoi(args[3])
	if err != nil {
		return fmt.Errorf("invalid electron count %q", args[3])
	}

	before := a.Electrons()
	if err := a.WithLogger(logger.L()).Transit(from, to, n); err != nil {
		return err
	}
	newID, err := st.Save(a, storage.SaveOptions{Parent: id})
	if err != nil {
		return err
	}
	fmt.Printf("%s: %v -> %v\n", a.Element(), before, a.Electrons())
	fmt.Printf("snapshot: %s\n", newID)
	return nil
}

func stepSnapshots(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	ids := make([]string, len(args))
	systems := make([]sim.System, len(args))
	for i, ref := range args {
		id, sys, err := loadSnapshot(st, ref)
		if err != nil {
			return err
		}
		s, ok := sys.(sim.System)
		if !ok {
			return fmt.Errorf("snapshot %s is a %s system and cannot be stepped", id[:8], sys.Kind())
		}
		ids[i], systems[i] = id, s
	}

	n := steps
	if n <= 0 {
		n = int(cfg.Sim.Duration/dt + 0.5)
	}
	simCfg := sim.Config{Dt: dt, Duration: float64(n) * dt}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	results, err := sim.NewEnsemble(systems, metrics.Default, cfg.Loader.Workers).Run(ctx, simCfg)
	if err != nil {
		return err
	}
	logger.L().Info("cli.step", "systems", len(systems), "steps", n, "elapsed", time.Since(start))

	for i, result := range results {
		newID, err := st.Save(systems[i], storage.SaveOptions{Parent: ids[i], Metrics: result.Metrics})
		if err != nil {
			return err
		}
		if err := st.SaveRun(newID, result); err != nil {
			return err
		}

		fmt.Printf("%s -> %s (%d steps)\n", ids[i][:8], newID[:8], result.StepsTaken)
		for _, e := range result.Errors {
			fmt.Fprintf(stderr, "  %v\n", e)
		}
		if len(result.Entropy) > 1 {
			graph := asciigraph.Plot(result.Entropy,
				asciigraph.Height(8),
				asciigraph.Width(60),
				asciigraph.Caption("entropy"),
			)
			fmt.Println(graph)
		}
		for _, m := range metrics.Default() {
			fmt.Printf("  %s: %.6g\n", m.Name(), result.Metrics[m.Name()])
		}
		fmt.Println()
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	kind, err := domain.ParseKind(args[0])
	if err != nil {
		return err
	}

	var sys domain.System
	if _, statErr := os.Stat(args[1]); statErr == nil {
		sys, err = loader.LoadFile(cmd.Context(), kind, args[1], loaderOptions())
	} else {
		p, perr := presetSource(kind, args[1])
		if perr != nil {
			return fmt.Errorf("%s is neither a file nor a preset: %w", args[1], perr)
		}
		sys, err = loader.Load(cmd.Context(), kind, strings.NewReader(p.Source), loaderOptions())
	}
	if _, err := reportProblems(err); err != nil {
		return err
	}

	opts := vizOptions()
	opts.Title = args[1]
	return viz.Run(viz.NewModel(sys, opts))
}

func queryEntity(cmd *cobra.Command, args []string) error {
	_, sys, err := loadSnapshot(storage.New(dataDir), args[0])
	if err != nil {
		return err
	}
	reg := sys.Registry()
	id, err := lookup(reg, args[1])
	if err != nil {
		return err
	}
	e, _ := reg.Entity(id)

	fmt.Printf("name: %s\n", e.Name())
	fmt.Printf("kind: %s\n", e.Tag())
	if id == reg.CenterID() {
		fmt.Println("role: center")
	} else {
		fmt.Printf("track: %s\n", e.Track())
		fmt.Printf("angle: %.2f\n", e.Angle())
	}
	if data, err := orbit.MarshalPayload(e.Payload()); err == nil {
		fmt.Printf("payload: %s\n", data)
	}
	if c, ok := sys.(*social.Circle); ok && id != reg.CenterID() {
		fmt.Printf("expansion: %d\n", c.Expansion(id))
	}
	return nil
}

func exportSnapshot(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	id, err := st.Resolve(args[0])
	if err != nil {
		return err
	}
	doc, err := st.LoadDocument(id)
	if err != nil {
		return err
	}
	switch format {
	case "yaml":
		return storage.ExportYAML(os.Stdout, doc)
	case "json":
		return storage.ExportJSON(os.Stdout, doc)
	case "svg":
		sys, err := doc.Decode(registryOptions()...)
		if err != nil {
			return err
		}
		_, err = fmt.Print(export.SystemToSVG(sys, svgSize, viz.CurrentTheme))
		return err
	}
	return fmt.Errorf("unknown format: %s", format)
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	report, err := automation.RunScenario(cmd.Context(), sc, loaderOptions())
	if report != nil {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "STEP\tOP\tENTROPY\tNOTE")
		for _, e := range report.Entries {
			fmt.Fprintf(w, "%d\t%s\t%.4f\t%s\n", e.Index, e.Op, e.Entropy, e.Note)
		}
		if ferr := w.Flush(); ferr != nil {
			return ferr
		}
	}
	if err != nil {
		return err
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	id, err := st.Save(report.System, storage.SaveOptions{Source: "scenario:" + sc.Name})
	if err != nil {
		return err
	}
	fmt.Printf("snapshot: %s\n", id)
	return nil
}

func removeSnapshot(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	id, err := st.Resolve(args[0])
	if err != nil {
		return err
	}
	if err := st.Delete(id); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", id)
	return nil
}
