// Package main provides the CLI entrypoint for monkeytui.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/monkeytui/internal/config"
	"github.com/verte-zerg/monkeytui/internal/logging"
	"github.com/verte-zerg/monkeytui/internal/model"
	"github.com/verte-zerg/monkeytui/internal/stats"
	"github.com/verte-zerg/monkeytui/internal/store"
	"github.com/verte-zerg/monkeytui/internal/tui"
	"github.com/verte-zerg/monkeytui/internal/variant"
)

const (
	defaultCaps        = 0.0
	defaultPunct       = 0.0
	defaultWeakTop     = 8
	defaultWeakFactor  = 2.0
	defaultWeakWindow  = 20
	defaultStatsWindow = 10
	defaultStatsTop    = 10
)

const defaultPunctSet = ".,!?;:"

var (
	testVariant    string
	testTexts      string
	testWords      int
	testWordlist   string
	testCaps       float64
	testPunct      float64
	testPunctSet   string
	testFocusWeak  bool
	testWeakTop    int
	testWeakFactor float64
	testWeakWindow int
	testNoHistory  bool
	testDebug      bool

	statsVariant string
	statsSince   string
	statsLast    int
	statsWindow  int
	statsTop     int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "monkeytui",
		Short:         "Terminal typing test",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTestCmd,
	}

	rootCmd.Flags().StringVar(&testVariant, "variant", variant.Default, "interface variant ("+strings.Join(variant.Names(), ", ")+")")
	rootCmd.Flags().StringVar(&testTexts, "texts", "", "file with one passage per line (default: built-in passages)")
	rootCmd.Flags().IntVar(&testWords, "words", 0, "generate passages of N random words (0 uses passages)")
	rootCmd.Flags().StringVar(&testWordlist, "wordlist", "", "word list for --words (default: "+config.DefaultWordlistPath()+")")
	rootCmd.Flags().Float64Var(&testCaps, "caps", defaultCaps, "probability of capitalized first letter in words mode (0-1)")
	rootCmd.Flags().Float64Var(&testPunct, "punct", defaultPunct, "punctuation probability per word in words mode (0-1)")
	rootCmd.Flags().StringVar(&testPunctSet, "punct-set", defaultPunctSet, "punctuation set for words mode")
	rootCmd.Flags().BoolVar(&testFocusWeak, "focus-weak", false, "bias words mode toward weak characters")
	rootCmd.Flags().IntVar(&testWeakTop, "weak-top", defaultWeakTop, "number of weak characters to focus on")
	rootCmd.Flags().Float64Var(&testWeakFactor, "weak-factor", defaultWeakFactor, "weight factor for weak characters")
	rootCmd.Flags().IntVar(&testWeakWindow, "weak-window", defaultWeakWindow, "number of recent attempts to compute weak chars")
	rootCmd.Flags().BoolVar(&testNoHistory, "no-history", false, "do not read or save results")
	rootCmd.Flags().BoolVar(&testDebug, "debug", false, "log attempt events to "+config.DefaultLogPath())

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newTextsCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func runTestCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "variant", &testVariant, fileCfg.Test.Variant)
	applyStringConfig(cmd, "texts", &testTexts, fileCfg.Test.Texts)
	applyIntConfig(cmd, "words", &testWords, fileCfg.Test.Words)
	applyStringConfig(cmd, "wordlist", &testWordlist, fileCfg.Test.Wordlist)
	applyFloatConfig(cmd, "caps", &testCaps, fileCfg.Test.CapsPct)
	applyFloatConfig(cmd, "punct", &testPunct, fileCfg.Test.PunctPct)
	applyStringConfig(cmd, "punct-set", &testPunctSet, fileCfg.Test.PunctSet)
	applyBoolConfig(cmd, "focus-weak", &testFocusWeak, fileCfg.Test.FocusWeak)
	applyIntConfig(cmd, "weak-top", &testWeakTop, fileCfg.Test.WeakTop)
	applyFloatConfig(cmd, "weak-factor", &testWeakFactor, fileCfg.Test.WeakFactor)
	applyIntConfig(cmd, "weak-window", &testWeakWindow, fileCfg.Test.WeakWindow)

	cfg := model.Config{
		Variant:    testVariant,
		TextsPath:  testTexts,
		Words:      testWords,
		Wordlist:   testWordlist,
		CapsPct:    testCaps,
		PunctPct:   testPunct,
		PunctSet:   testPunctSet,
		FocusWeak:  testFocusWeak,
		WeakTop:    testWeakTop,
		WeakFactor: testWeakFactor,
		WeakWindow: testWeakWindow,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	v, err := variant.Lookup(cfg.Variant)
	if err != nil {
		return err
	}

	var st *store.Store
	if !testNoHistory {
		st, err = store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
	}

	var weakSource weakCharSource
	if st != nil {
		weakSource = st
	}
	catalog, err := buildCatalog(context.Background(), cfg, v.Name, weakSource)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if testDebug {
		level = slog.LevelDebug
	}
	logger, logCloser := logging.New(config.DefaultLogPath(), level)
	defer func() {
		if cerr := logCloser.Close(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()

	var results tui.ResultStore
	if st != nil {
		results = st
	}
	m := tui.NewModel(v, catalog, results, tui.WithLogger(logger))
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
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
	path := config.DefaultConfigPath()
	if err := writeConfigTemplate(path); err != nil {
		return err
	}

	args, err := editorCommand(os.Getenv("EDITOR"), path)
	if err != nil {
		return err
	}
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// editorCommand splits the editor setting with shell quoting rules and
// appends path.
func editorCommand(editor, path string) ([]string, error) {
	editor = strings.TrimSpace(editor)
	if editor == "" {
		editor = "vi"
	}
	parts, err := shellquote.Split(editor)
	if err != nil {
		return nil, fmt.Errorf("invalid $EDITOR: %w", err)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("editor command is empty")
	}
	return append(parts, path), nil
}

// writeConfigTemplate creates the config file unless one already exists.
func writeConfigTemplate(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to stat config: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func newTextsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "texts",
		Short: "List available passages",
		Args:  cobra.NoArgs,
		RunE:  runTextsCmd,
	}
	cmd.Flags().StringVar(&testTexts, "texts", "", "file with one passage per line")
	return cmd
}

func runTextsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "texts", &testTexts, fileCfg.Test.Texts)
	catalog, err := loadPassages(testTexts)
	if err != nil {
		return err
	}
	for i, title := range catalog.Titles() {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s\n", i+1, title); err != nil {
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
	cmd.Flags().StringVar(&statsVariant, "variant", "", "variant filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N attempts")
	cmd.Flags().IntVar(&statsWindow, "window", defaultStatsWindow, "moving average window")
	cmd.Flags().IntVar(&statsTop, "top", defaultStatsTop, "number of characters in the table")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "window", &statsWindow, fileCfg.Stats.Window)
	applyIntConfig(cmd, "top", &statsTop, fileCfg.Stats.Top)

	cfg, err := statsConfig(statsVariant, statsSince, statsLast, statsWindow, statsTop)
	if err != nil {
		return err
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	report, err := stats.BuildReport(context.Background(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	out := cmd.OutOrStdout()
	return report.Render(out, cfg, stats.TerminalWidth(), stats.ShouldUseColor(out))
}

func statsConfig(variantName, since string, last, window, top int) (model.StatsConfig, error) {
	cfg := model.StatsConfig{Last: last, Window: window, Top: top}
	if variantName != "" {
		v, err := variant.Lookup(variantName)
		if err != nil {
			return model.StatsConfig{}, err
		}
		cfg.Variant = v.Name
	}
	if since != "" {
		parsed, err := time.ParseInLocation("2006-01-02", since, time.Local)
		if err != nil {
			return model.StatsConfig{}, fmt.Errorf("invalid --since value: %w", err)
		}
		cfg.Since = &parsed
	}
	if last < 0 {
		return model.StatsConfig{}, fmt.Errorf("--last must be >= 0")
	}
	if window <= 0 {
		return model.StatsConfig{}, fmt.Errorf("--window must be > 0")
	}
	if top <= 0 {
		return model.StatsConfig{}, fmt.Errorf("--top must be > 0")
	}
	return cfg, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
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

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# monkeytui configuration
# Uncomment a value to enable it. CLI flags override config values.

[test]
# variant = %q        # One of: %s
# texts = ""              # File with one passage per line
# words = 0               # Random words per passage (0 uses passages)
# wordlist = %q
# caps = %.2f             # Probability of capitalized first letter (0-1)
# punct = %.2f            # Punctuation probability per word (0-1)
# punct-set = %q          # Punctuation set
# focus-weak = false      # Bias words mode toward weak characters
# weak-top = %d           # Number of weak characters to focus on
# weak-factor = %.1f      # Weight factor for weak characters
# weak-window = %d        # Number of recent attempts to compute weak chars

[stats]
# window = %d             # Moving average window
# top = %d                # Characters listed in the table
`,
		variant.Default,
		strings.Join(variant.Names(), ", "),
		config.DefaultWordlistPath(),
		defaultCaps,
		defaultPunct,
		defaultPunctSet,
		defaultWeakTop,
		defaultWeakFactor,
		defaultWeakWindow,
		defaultStatsWindow,
		defaultStatsTop,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Words < 0 {
		return fmt.Errorf("--words must be >= 0")
	}
	if cfg.Words > 0 && cfg.TextsPath != "" {
		return fmt.Errorf("--words and --texts are mutually exclusive")
	}
	if cfg.CapsPct < 0 || cfg.CapsPct > 1 {
		return fmt.Errorf("--caps must be between 0 and 1")
	}
	if cfg.PunctPct < 0 || cfg.PunctPct > 1 {
		return fmt.Errorf("--punct must be between 0 and 1")
	}
	if cfg.PunctPct > 0 && cfg.PunctSet == "" {
		return fmt.Errorf("--punct-set must not be empty")
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
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
