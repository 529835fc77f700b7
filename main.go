package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"door-import/app"
	"door-import/config"
	"door-import/log"
	"door-import/panel"
	"door-import/watch"
)

var (
	version = "0.4.0"

	rootCmd = &cobra.Command{
		Use:   "door-import [files or directories...]",
		Short: "door-import - Collect CNC panel files into an order and preview their drilling.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			log.Initialize(log.Options{Level: zapcore.InfoLevel})
			defer log.Close()

			cfg, err := config.LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}

			panels, err := loadPanels(ctx, args)
			if err != nil {
				return err
			}

			opts := app.Options{Panels: panels}
			if cfg.WatchDir != "" {
				w, err := watch.New(cfg.WatchDir)
				if err != nil {
					return err
				}
				if err := w.Start(ctx); err != nil {
					return err
				}
				defer w.Stop()
				opts.Watcher = w
				log.InfoLog.Printf("watching %s for panel files", w.Dir())
			}

			if err := app.Run(ctx, cfg, opts); err != nil {
				return fmt.Errorf("%w (see %s)", err, log.FileName())
			}
			return nil
		},
	}

	resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Reset the stored application state",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize(log.Options{Stderr: true, Level: zapcore.InfoLevel})
			defer log.Close()

			if err := config.ResetState(); err != nil {
				return fmt.Errorf("failed to reset state: %w", err)
			}
			fmt.Println("State has been reset successfully")
			return nil
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize(log.Options{Stderr: true, Level: zapcore.InfoLevel})
			defer log.Close()

			cfg, err := config.LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			ordersDir, err := config.OrdersDir()
			if err != nil {
				return err
			}
			configYAML, err := yaml.Marshal(cfg)
			if err != nil {
				return fmt.Errorf("failed to marshal config: %w", err)
			}

			fmt.Printf("Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configYAML)
			fmt.Printf("State: %s\n", filepath.Join(configDir, config.StateFileName))
			fmt.Printf("Receipts: %s\n", ordersDir)
			fmt.Printf("Log: %s\n", log.FileName())
			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of door-import",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("door-import version %s\n", version)
		},
	}
)

// loadPanels parses every supported file named by args. Directories are
// scanned one level deep.
func loadPanels(ctx context.Context, args []string) ([]*panel.Panel, error) {
	if len(args) == 0 {
		return nil, nil
	}
	paths, err := panel.CollectPaths(args)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no panel files (%v) found in %v", panel.Extensions, args)
	}
	return panel.ParseFiles(ctx, paths)
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("watch", "", "Directory to watch for new panel files")
	flags.String("output-dir", "", "Directory SVG and STL exports are written to")
	flags.Float64("card-height", config.DefaultCardHeight, "Size of the longer panel side in card SVGs")
	flags.Float64("default-depth", config.DefaultHoleDepth, "Depth of holes without one in the 3D preview")
	flags.Int("undo-timeout-ms", config.DefaultUndoTimeoutMs, "How long a removed panel can be restored")
	flags.String("start-dir", "", "Directory the file browser opens in")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(preview3dCmd)
	rootCmd.AddCommand(summaryCmd)
	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(resetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
