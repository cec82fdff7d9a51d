package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/olehluchkiv/phpfix/internal/config"
	"github.com/olehluchkiv/phpfix/internal/finder"
	"github.com/olehluchkiv/phpfix/internal/fixer"
	"github.com/olehluchkiv/phpfix/internal/logging"
	"github.com/olehluchkiv/phpfix/internal/rules"
)

// Version info, set from main via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

var (
	flagConfig     string
	flagLogFile    string
	flagLogLevel   string
	flagDiff       bool
	flagJSON       bool
	flagAllowRisky bool
	flagDryRun     bool
)

var rootCmd = &cobra.Command{
	Use:           "phpfix",
	Short:         "PHP code-style fixer",
	Long:          "phpfix rewrites PHP source files to add provably safe void return type declarations and to drop documentation made redundant by them.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var fixCmd = &cobra.Command{
	Use:   "fix <path>",
	Short: "Apply rules and rewrite files in place",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := run(args[0], !flagDryRun)
		if err != nil {
			return err
		}
		return report(cmd, summary)
	},
}

var checkCmd = &cobra.Command{
	Use:   "check <path>",
	Short: "Report files that would change, without writing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		summary, err := run(args[0], false)
		if err != nil {
			return err
		}
		if err := report(cmd, summary); err != nil {
			return err
		}
		if summary.Changed > 0 {
			return fmt.Errorf("%d of %d files need fixes", summary.Changed, summary.Scanned)
		}
		return nil
	},
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the available rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := rules.NewRegistry()
		if err != nil {
			return err
		}
		for _, rule := range reg.All() {
			marker := " "
			if rule.Risky() {
				marker = "!"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n    %s\n", marker, rule.Name(), rule.Description())
			if ex := rule.Example(); ex != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "    e.g. %s\n", ex)
			}
			if before := rule.RunBefore(); len(before) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "    runs before: %v\n", before)
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), "\nRules marked ! are risky and need allow_risky (or --allow-risky).")
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "phpfix %s (commit %s, built %s)\n", Version, GitCommit, BuildTime)
	},
}

// run processes every PHP file under path. A malformed file (for example
// an unmatched brace) aborts the run: that condition comes from the
// upstream tokenizer contract being violated, not from a rule.
func run(path string, write bool) (*fixer.Summary, error) {
	level, err := logging.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, err
	}
	logger, cleanup, err := logging.Setup(flagLogFile, level)
	if err != nil {
		return nil, fmt.Errorf("setting up logging: %w", err)
	}
	defer cleanup()

	cfg, err := loadConfig(path)
	if err != nil {
		return nil, err
	}
	if flagAllowRisky {
		cfg.AllowRisky = true
	}

	files, err := finder.Find(path, cfg.Exclude, logger)
	if err != nil {
		return nil, err
	}

	reg, err := rules.NewRegistry()
	if err != nil {
		return nil, err
	}
	eng, err := fixer.New(cfg, reg, logger)
	if err != nil {
		return nil, err
	}

	results := make([]*fixer.FileResult, 0, len(files))
	for _, file := range files {
		res, err := eng.ProcessFile(file, write)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return fixer.Summarize(results), nil
}

// loadConfig reads the configuration: an explicit --config path wins,
// otherwise .phpfix.yaml is looked up next to the target.
func loadConfig(target string) (*config.Config, error) {
	if flagConfig != "" {
		return config.LoadFile(flagConfig)
	}
	dir := target
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		dir = filepath.Dir(target)
	}
	return config.Load(dir)
}

func report(cmd *cobra.Command, summary *fixer.Summary) error {
	if flagJSON {
		return summary.WriteJSON(cmd.OutOrStdout())
	}
	summary.WriteText(cmd.OutOrStdout(), flagDiff)
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to a .phpfix.yaml (default: next to the target)")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "also append JSON logs to this file")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&flagDiff, "diff", false, "print a unified diff per changed file")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "print the report as JSON")
	rootCmd.PersistentFlags().BoolVar(&flagAllowRisky, "allow-risky", false, "run risky rules regardless of configuration")
	fixCmd.Flags().BoolVar(&flagDryRun, "dry-run", false, "do everything except write files")

	rootCmd.AddCommand(fixCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}
