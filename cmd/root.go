package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/nconklindev/castmerge/internal/config"
	"github.com/nconklindev/castmerge/internal/processor"
	"github.com/nconklindev/castmerge/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile    string
	jsonOutput bool

	v    = viper.New()
	proc *processor.Processor
)

var RootCmd = &cobra.Command{
	Use:   "castmerge",
	Short: "Merge size chart and product details workbooks into CAST import files",
	Long: `castmerge turns a size chart workbook (one row per SKU) and a product
details workbook (one row per style) into a single Types/Values workbook.

Run without a subcommand for the interactive import.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(v, cfgFile)
		if err != nil {
			return err
		}

		logger, err := config.NewLogger(os.Stderr, cfg.Log)
		if err != nil {
			return err
		}
		slog.SetDefault(logger)

		proc = processor.New(cfg, logger)
		if used := v.ConfigFileUsed(); used != "" {
			logger.Debug("using config file", "path", used)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// keep log lines off the alternate screen
		cfg := proc.Config()
		if cfg.Log.Level != "debug" {
			logger, _ := config.NewLogger(os.Stderr, config.LogConfig{Level: "error", Format: cfg.Log.Format})
			proc = processor.New(cfg, logger)
		}

		p := tea.NewProgram(ui.InitialModel(proc), tea.WithAltScreen(), tea.WithMouseCellMotion())
		_, err := p.Run()
		return err
	},
}

// SetVersion records build information shown by --version.
func SetVersion(version, commit, date string) {
	RootCmd.Version = version
	RootCmd.SetVersionTemplate(fmt.Sprintf("castmerge %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./castmerge.yaml)")
	RootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	RootCmd.PersistentFlags().String("log-format", "text", "log format: text or json")
	RootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print the result as JSON")
	RootCmd.PersistentFlags().String("key-column", "", "style ID column of extract-missing and merge-sample (overrides columns.style_id)")

	v.BindPFlag("log.level", RootCmd.PersistentFlags().Lookup("log-level"))
	v.BindPFlag("log.format", RootCmd.PersistentFlags().Lookup("log-format"))
	v.BindPFlag("columns.style_id", RootCmd.PersistentFlags().Lookup("key-column"))

	RootCmd.AddCommand(importCmd, exportCmd, extractCmd, sampleCmd)
}

// report prints an outcome as JSON or as summary lines and turns a failed
// outcome into the command's error.
func report(outcome processor.Outcome, result any, lines ...string) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		if !outcome.Success {
			os.Exit(1)
		}
		return nil
	}

	if !outcome.Success {
		return fmt.Errorf("%s", outcome.Message)
	}

	for _, l := range lines {
		fmt.Println(l)
	}
	return nil
}
