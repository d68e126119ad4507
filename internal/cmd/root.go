// Package cmd provides the entrypoint and CLI command configuration for the
// incidentscope application.
package cmd

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"runtime/pprof"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/fang"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/kpumuk/incidentscope/internal/config"
	"github.com/kpumuk/incidentscope/internal/observability"
	"github.com/kpumuk/incidentscope/internal/scenes"
	"github.com/kpumuk/incidentscope/internal/ui"
)

func buildVersion(version, commit, date, builtBy string) string {
	result := version
	if commit != "" {
		result = fmt.Sprintf("%s\ncommit: %s", result, commit)
	}
	if date != "" {
		result = fmt.Sprintf("%s\nbuilt at: %s", result, date)
	}
	if builtBy != "" {
		result = fmt.Sprintf("%s\nbuilt by: %s", result, builtBy)
	}
	result = fmt.Sprintf("%s\ngoos: %s\ngoarch: %s", result, runtime.GOOS, runtime.GOARCH)
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Sum != "" {
		result = fmt.Sprintf("%s\nmodule version: %s, checksum: %s", result, info.Main.Version, info.Main.Sum)
	}

	return result
}

// Execute initializes and runs the incidentscope terminal application.
func Execute(version, commit, date, builtBy string) error {
	rootCmd := newRootCmd()
	rootCmd.Version = buildVersion(version, commit, date, builtBy)
	rootCmd.SetVersionTemplate(`incidentscope {{printf "version %s\n" .Version}}`)

	return fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(rootCmd.Version),
		fang.WithoutCompletions(),
		fang.WithoutManpage(),
	)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "incidentscope",
		Short: "Explore daily gun violence incidents in the terminal.",
		Long: "Explore daily gun violence incidents in the terminal.\n\n" +
			"Steps through a narrative of preset date windows and an interactive\n" +
			"scene with a range slider over the whole dataset.",
		Args: cobra.NoArgs,
	}

	config.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.Flags().String(
		"cpuprofile",
		"",
		"write cpu profile to file",
	)

	rootCmd.Flags().BoolP(
		"help",
		"h",
		false,
		"help for incidentscope",
	)

	rootCmd.RunE = func(cmd *cobra.Command, _ []string) error {
		cpuprofile, err := cmd.Flags().GetString("cpuprofile")
		if err != nil {
			return fmt.Errorf("parse cpuprofile flag: %w", err)
		}

		cfg, err := loadConfig(cmd.Flags())
		if err != nil {
			return err
		}

		logger, closeLog, err := observability.NewLogger(cfg)
		if err != nil {
			return err
		}
		defer closeLog()

		sceneList, err := loadScenes(cfg)
		if err != nil {
			return err
		}
		controller, err := scenes.NewController(sceneList)
		if err != nil {
			return fmt.Errorf("build scenes: %w", err)
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

		telemetry := observability.NewMetrics(clockwork.NewRealClock())
		if cfg.MetricsAddr != "" {
			go func() {
				if err := observability.Serve(ctx, cfg.MetricsAddr, telemetry, logger); err != nil {
					logger.Error("metrics server failed", "error", err)
				}
			}()
		}

		var profileFile *os.File
		if cpuprofile != "" {
			file, err := os.Create(cpuprofile)
			if err != nil {
				return fmt.Errorf("create cpuprofile file: %w", err)
			}
			profileFile = file
			if err := pprof.StartCPUProfile(profileFile); err != nil {
				_ = profileFile.Close()
				return fmt.Errorf("start cpu profile: %w", err)
			}
			defer func() {
				pprof.StopCPUProfile()
				_ = profileFile.Close()
			}()
		}

		logger.Info("starting", "source", cfg.DataSource, "scenes", controller.Len())
		app := ui.New(controller,
			ui.WithConfig(cfg),
			ui.WithLogger(logger),
			ui.WithTelemetry(telemetry),
		)
		p := tea.NewProgram(app)
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("run incidentscope: %w", err)
		}

		return nil
	}

	rootCmd.AddCommand(newExportCmd())

	return rootCmd
}

// loadConfig reads the environment and applies flags set on fs.
func loadConfig(fs *pflag.FlagSet) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.ApplyFlags(fs); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func loadScenes(cfg *config.Config) ([]scenes.Scene, error) {
	if cfg.ScenesFile == "" {
		return scenes.Default(), nil
	}
	return scenes.LoadFile(cfg.ScenesFile)
}
