// Package main provides the CLI entrypoint for kanamatch.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/verte-zerg/kanamatch/internal/config"
	"github.com/verte-zerg/kanamatch/internal/kana"
	"github.com/verte-zerg/kanamatch/internal/logging"
	"github.com/verte-zerg/kanamatch/internal/model"
	"github.com/verte-zerg/kanamatch/internal/stats"
	"github.com/verte-zerg/kanamatch/internal/statsui"
	"github.com/verte-zerg/kanamatch/internal/store"
	"github.com/verte-zerg/kanamatch/internal/tui"
)

const (
	defaultPartialRate = 0.25
	defaultWeakTop     = 8
	defaultWeakFactor  = 2.0
	defaultWeakWindow  = 20
	defaultAutoDelay   = 400 * time.Millisecond
	defaultShakeDelay  = 350 * time.Millisecond
	defaultCurveWindow = 5
)

const envPrefix = "KANAMATCH"

var (
	gameSeed        int64
	gamePartialRate float64
	gameFocusWeak   bool
	gameWeakTop     int
	gameWeakFactor  float64
	gameWeakWindow  int
	gameAutoDelay   time.Duration
	gameShakeDelay  time.Duration

	statsPlain       bool
	statsYAML        bool
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsKana        string
)

// settings resolves the persistent flags that may also come from the environment.
var settings = viper.New()

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "kanamatch",
		Short:         "Kana match-3 trainer",
		Long:          "Match hiragana, katakana and romaji tiles of the same kana until all 46 are cleared.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runGameCmd,
	}

	rootCmd.PersistentFlags().String("config", "", "config file (default $XDG_CONFIG_HOME/kanamatch/config.toml)")
	rootCmd.PersistentFlags().String("log-level", logging.DefaultLevel, "log level (trace, debug, info, warn, error, disabled)")
	_ = settings.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = settings.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level"))
	settings.SetEnvPrefix(envPrefix)
	settings.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	settings.AutomaticEnv()

	rootCmd.Flags().Int64Var(&gameSeed, "seed", 0, "random seed (0 picks one per run)")
	rootCmd.Flags().Float64Var(&gamePartialRate, "partial-rate", defaultPartialRate, "chance a new kana arrives with types missing (0-1)")
	rootCmd.Flags().BoolVar(&gameFocusWeak, "focus-weak", false, "draw weak kana more often")
	rootCmd.Flags().IntVar(&gameWeakTop, "weak-top", defaultWeakTop, "number of weak kana to focus on")
	rootCmd.Flags().Float64Var(&gameWeakFactor, "weak-factor", defaultWeakFactor, "extra draw weight for weak kana")
	rootCmd.Flags().IntVar(&gameWeakWindow, "weak-window", defaultWeakWindow, "number of recent games to compute weak kana")
	rootCmd.Flags().DurationVar(&gameAutoDelay, "auto-delay", defaultAutoDelay, "delay between auto-match steps")
	rootCmd.Flags().DurationVar(&gameShakeDelay, "shake-delay", defaultShakeDelay, "length of shake and removal animations")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newKanaCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func configPath() string {
	if path := strings.TrimSpace(settings.GetString("config")); path != "" {
		return path
	}
	return config.DefaultConfigPath()
}

func loadFileConfig() (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(configPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	return fileCfg, nil
}

// setupLogging applies the config file level beneath the flag and environment.
func setupLogging(fileLevel *string) (io.Closer, error) {
	if fileLevel != nil {
		settings.SetDefault("log-level", *fileLevel)
	}
	return logging.Setup(settings.GetString("log-level"), config.DefaultLogPath())
}

func closeLog(closer io.Closer) {
	if cerr := closer.Close(); cerr != nil {
		logErrf("failed to close log: %v\n", cerr)
	}
}

func openStore() (*store.Store, error) {
	path := config.DefaultDBPath()
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open db: %w", err)
	}
	log.Debug().Str("path", path).Msg("opened history")
	return st, nil
}

func closeStore(st *store.Store) {
	if cerr := st.Close(); cerr != nil {
		log.Error().Err(cerr).Msg("failed to close db")
		logErrf("failed to close db: %v\n", cerr)
	}
}

func runGameCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	cfg, err := resolveGameConfig(cmd, fileCfg.Game)
	if err != nil {
		return err
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	logFile, err := setupLogging(fileCfg.Game.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog(logFile)

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	log.Info().
		Int64("seed", cfg.Seed).
		Float64("partial_rate", cfg.PartialRate).
		Bool("focus_weak", cfg.FocusWeak).
		Msg("starting game")

	program := tea.NewProgram(tui.NewModel(cfg, st), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func resolveGameConfig(cmd *cobra.Command, file config.GameConfig) (model.Config, error) {
	applyInt64Config(cmd, "seed", &gameSeed, file.Seed)
	applyFloatConfig(cmd, "partial-rate", &gamePartialRate, file.PartialRate)
	applyBoolConfig(cmd, "focus-weak", &gameFocusWeak, file.FocusWeak)
	applyIntConfig(cmd, "weak-top", &gameWeakTop, file.WeakTop)
	applyFloatConfig(cmd, "weak-factor", &gameWeakFactor, file.WeakFactor)
	applyIntConfig(cmd, "weak-window", &gameWeakWindow, file.WeakWindow)
	if err := applyDurationConfig(cmd, "auto-delay", &gameAutoDelay, file.AutoDelay); err != nil {
		return model.Config{}, err
	}
	if err := applyDurationConfig(cmd, "shake-delay", &gameShakeDelay, file.ShakeDelay); err != nil {
		return model.Config{}, err
	}
	return model.Config{
		Seed:        gameSeed,
		PartialRate: gamePartialRate,
		FocusWeak:   gameFocusWeak,
		WeakTop:     gameWeakTop,
		WeakFactor:  gameWeakFactor,
		WeakWindow:  gameWeakWindow,
		AutoDelay:   gameAutoDelay,
		ShakeDelay:  gameShakeDelay,
	}, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := configPath()
	if err := writeConfigTemplate(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeConfigTemplate creates the config file unless it already exists.
func writeConfigTemplate(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(config.Template), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func newKanaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kana",
		Short: "List the kana in play",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeKanaList(cmd.OutOrStdout())
		},
	}
}

func writeKanaList(w io.Writer) error {
	const cellWidth = 6
	for _, e := range kana.All() {
		line := runewidth.FillLeft(fmt.Sprintf("%d", e.Index), 3) + "  " +
			runewidth.FillRight(e.Hiragana, cellWidth) +
			runewidth.FillRight(e.Katakana, cellWidth) +
			e.Romaji
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a text report instead of the browser")
	cmd.Flags().BoolVar(&statsYAML, "yaml", false, "print the report as YAML")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N games")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().StringVar(&statsKana, "kana", "", "kana for per-kana curves (e.g. \"ka shi ツ\")")
	cmd.MarkFlagsMutuallyExclusive("plain", "yaml")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig()
	if err != nil {
		return err
	}
	cfg, err := resolveStatsConfig(cmd, fileCfg.Stats)
	if err != nil {
		return err
	}

	logFile, err := setupLogging(fileCfg.Game.LogLevel)
	if err != nil {
		return err
	}
	defer closeLog(logFile)

	st, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore(st)

	out := cmd.OutOrStdout()
	switch {
	case statsYAML || statsPlain:
		report, err := stats.BuildReport(context.Background(), st, cfg)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		if statsYAML {
			return stats.WriteYAML(out, report)
		}
		return stats.WriteText(out, report, cfg.CurveWindow, 0)
	default:
		program := tea.NewProgram(statsui.NewModel(st, cfg), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run stats TUI: %w", err)
		}
		return nil
	}
}

func resolveStatsConfig(cmd *cobra.Command, file config.StatsConfig) (model.StatsConfig, error) {
	applyIntConfig(cmd, "last", &statsLast, file.Last)
	applyIntConfig(cmd, "curve-window", &statsCurveWindow, file.CurveWindow)
	if statsLast < 0 {
		return model.StatsConfig{}, fmt.Errorf("--last must be >= 0")
	}
	if statsCurveWindow <= 0 {
		return model.StatsConfig{}, fmt.Errorf("--curve-window must be > 0")
	}

	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	chosen, err := kana.ParseList(statsKana)
	if err != nil {
		return model.StatsConfig{}, fmt.Errorf("invalid --kana value: %w", err)
	}
	return model.StatsConfig{
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
		Kana:        chosen,
	}, nil
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, value *string) error {
	if value == nil {
		return nil
	}
	if cmd.Flags().Changed(name) {
		return nil
	}
	parsed, err := time.ParseDuration(*value)
	if err != nil {
		return fmt.Errorf("invalid %s in config: %w", name, err)
	}
	*target = parsed
	return nil
}

func validateConfig(cfg model.Config) error {
	if cfg.PartialRate < 0 || cfg.PartialRate > 1 {
		return fmt.Errorf("--partial-rate must be between 0 and 1")
	}
	if cfg.WeakTop < 0 {
		return fmt.Errorf("--weak-top must be >= 0")
	}
	if cfg.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	if cfg.WeakWindow < 0 {
		return fmt.Errorf("--weak-window must be >= 0")
	}
	if cfg.AutoDelay <= 0 {
		return fmt.Errorf("--auto-delay must be > 0")
	}
	if cfg.ShakeDelay <= 0 {
		return fmt.Errorf("--shake-delay must be > 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
