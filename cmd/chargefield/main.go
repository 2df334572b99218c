package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/san-kum/chargefield/internal/charge"
	"github.com/san-kum/chargefield/internal/config"
	"github.com/san-kum/chargefield/internal/engine"
	"github.com/san-kum/chargefield/internal/geom"
	"github.com/san-kum/chargefield/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	verbose    bool
	themeName  string
	charges    []string

	// trace
	kindName string
	seeds    []string
	random   int
	rngSeed  int64
	asJSON   bool
	asCSV    bool
	outPath  string

	// profile
	profileSeed string
	plotHeight  int
	plotWidth   int

	// grid
	cellWidth int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "chargefield",
		Short:         "point-charge electrostatics: fields, potentials, field lines and equipotentials",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "scene config file (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "start from a preset scene")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")
	rootCmd.PersistentFlags().StringVar(&themeName, "theme", viz.ThemeField.Name, "output theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	rootCmd.PersistentFlags().StringArrayVar(&charges, "charge", nil, "extra charge x,y,sign (repeatable)")

	sampleCmd := &cobra.Command{
		Use:   "sample [x] [y]",
		Short: "evaluate field and potential at a point",
		Args:  cobra.ExactArgs(2),
		RunE:  runSample,
	}

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "trace field lines and equipotentials",
		RunE:  runTrace,
	}
	traceCmd.Flags().StringVar(&kindName, "kind", "both", "curve kind: field, equipotential or both")
	traceCmd.Flags().StringArrayVar(&seeds, "seed", nil, "seed point x,y (repeatable)")
	traceCmd.Flags().IntVar(&random, "random", 0, "add n random seeds in the play area")
	traceCmd.Flags().Int64Var(&rngSeed, "rng-seed", 1, "random seed for --random")
	traceCmd.Flags().BoolVar(&asJSON, "json", false, "write curves as json")
	traceCmd.Flags().BoolVar(&asCSV, "csv", false, "write curve points as csv")
	traceCmd.Flags().StringVarP(&outPath, "out", "o", "", "write json/csv to a file instead of stdout")

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "plot potential drift along an equipotential and field strength along a field line",
		RunE:  runProfile,
	}
	profileCmd.Flags().StringVar(&profileSeed, "seed", "", "seed point x,y (default: probe position)")
	profileCmd.Flags().IntVar(&plotHeight, "height", 10, "plot height")
	profileCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")

	gridCmd := &cobra.Command{
		Use:   "grid",
		Short: "show the sensor grids",
		RunE:  runGrid,
	}
	gridCmd.Flags().IntVar(&cellWidth, "cell", 4, "heat map cell width")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset scenes",
		RunE:  listPresets,
	}

	saveCmd := &cobra.Command{
		Use:   "save [path]",
		Short: "write the effective scene config as yaml",
		Args:  cobra.ExactArgs(1),
		RunE:  saveConfig,
	}

	rootCmd.AddCommand(sampleCmd, traceCmd, profileCmd, gridCmd, presetsCmd, saveCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

func setupLogger() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

func styles() viz.Styles {
	return viz.NewStyles(viz.GetTheme(themeName))
}

// loadConfig applies the preset, then the config file, then --charge flags.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if preset != "" && len(loaded.Charges) == 0 {
			loaded.Charges = cfg.Charges
		}
		cfg = loaded
	}

	for _, s := range charges {
		cc, err := parseCharge(s)
		if err != nil {
			return nil, err
		}
		cfg.Charges = append(cfg.Charges, cc)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("config loaded", "preset", preset, "file", configFile, "charges", len(cfg.Charges))
	return cfg, nil
}

func newEngine() (*engine.Engine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return engine.New(*cfg, engine.WithLogger(slog.Default()))
}

func parsePoint(s string) (geom.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return geom.Point{}, fmt.Errorf("invalid point %q: want x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return geom.Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return geom.Pt(x, y), nil
}

func parseCharge(s string) (config.ChargeConfig, error) {
	i := strings.LastIndex(s, ",")
	if i < 0 {
		return config.ChargeConfig{}, fmt.Errorf("invalid charge %q: want x,y,sign", s)
	}
	p, err := parsePoint(s[:i])
	if err != nil {
		return config.ChargeConfig{}, fmt.Errorf("invalid charge %q: %w", s, err)
	}
	sign, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(s[i+1:]), "+"))
	if err != nil {
		return config.ChargeConfig{}, fmt.Errorf("invalid charge %q: %w", s, err)
	}
	if _, err := charge.ParseSign(sign); err != nil {
		return config.ChargeConfig{}, fmt.Errorf("invalid charge %q: %w", s, err)
	}
	return config.ChargeConfig{X: p.X, Y: p.Y, Sign: sign}, nil
}

func saveConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
	return nil
}
