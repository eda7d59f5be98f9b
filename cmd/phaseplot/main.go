package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/san-kum/phaseplot/internal/config"
	"github.com/san-kum/phaseplot/internal/observability"
	"github.com/san-kum/phaseplot/internal/portrait"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	configFile string
	logLevel   string
	workers    int

	settings *config.Settings
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "phaseplot",
		Short:         "phase portraits of planar dynamical systems",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadSettings(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			observability.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "settings file (default ./phaseplot.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().IntVar(&workers, "workers", 0, "parallel trajectory workers (0 = settings)")

	rootCmd.AddCommand(
		newRenderCmd(),
		newTraceCmd(),
		newAnalyzeCmd(),
		newExportCmd(),
		newRunsCmd(),
		newPresetsCmd(),
		newSystemsCmd(),
		newSceneCmd(),
	)
	return rootCmd
}

func loadSettings(cmd *cobra.Command) error {
	s, err := config.LoadSettings(viper.New(), configFile)
	if err != nil {
		return err
	}
	if logLevel != "" {
		s.Logger.Level = logLevel
	}
	if cmd.Flags().Changed("workers") {
		s.Workers = workers
	}
	if errs := s.Validate(); len(errs) > 0 {
		return errs
	}
	observability.InitializeLogger(s.Logger)
	settings = s
	return nil
}

// loadScene resolves a preset name or a YAML scene path.
func loadScene(arg string) (*config.Scene, error) {
	ext := strings.ToLower(filepath.Ext(arg))
	if ext == ".yaml" || ext == ".yml" {
		return config.LoadScene(arg)
	}
	if _, err := os.Stat(arg); err == nil {
		return config.LoadScene(arg)
	}
	s := config.GetPreset(arg)
	if s == nil {
		return nil, fmt.Errorf("unknown preset or scene file: %s (presets: %s)", arg, strings.Join(config.ListPresets(), ", "))
	}
	return s, nil
}

// buildModel turns a scene into a portrait model wired to the global logger.
func buildModel(scene *config.Scene) (*portrait.Model, error) {
	logger := observability.GetLogger()
	m, err := scene.Build(settings.Integration,
		portrait.WithLogger(logger),
		portrait.WithWorkers(settings.Workers),
	)
	if err != nil {
		return nil, err
	}
	logger.Debug("Scene loaded.",
		zap.String("scene", scene.Name),
		zap.String("system", scene.System.Name),
		zap.Int("initial_conditions", len(scene.InitialConditions)))
	return m, nil
}
