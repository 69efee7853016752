// Command gauge renders gauge cards from entity state snapshots.
//
// Main CLI entrypoint using the cobra command framework.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/luki/gauge/internal/action"
	"github.com/luki/gauge/internal/card"
	"github.com/luki/gauge/internal/config"
	"github.com/luki/gauge/internal/log"
	"github.com/luki/gauge/internal/preview"
	"github.com/luki/gauge/internal/scene"
	"github.com/luki/gauge/internal/state"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global settings
var settings *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "gauge",
	Short:         "Render semicircular gauge cards from entity states",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		configFile, _ := cmd.Flags().GetString("config")
		cfg, err := config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
			cfg.Log.Level = lvl
		}
		settings = cfg

		return log.Init(log.Options{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
			Output: cfg.Log.Output,
		})
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		log.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "settings file path (YAML)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("card", "", "card configuration file (YAML)")
	rootCmd.PersistentFlags().String("states", "", "entity state snapshot file (JSON)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(dispatchCmd)
}

// flagOr returns the named string flag when set, fallback otherwise.
func flagOr(cmd *cobra.Command, name, fallback string) string {
	if v, _ := cmd.Flags().GetString(name); v != "" {
		return v
	}
	return fallback
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gauge %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Render Command ---

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a card as SVG",
	Long:  "Compose the gauge scene for a card against a state snapshot and write it as SVG.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cardPath := flagOr(cmd, "card", settings.Card)
		statesPath := flagOr(cmd, "states", settings.States)
		output := flagOr(cmd, "output", settings.Output)

		if output == "" || output == "-" {
			return renderCard(cmd.OutOrStdout(), cardPath, statesPath)
		}

		if err := renderFile(output, cardPath, statesPath); err != nil {
			return err
		}
		log.Infow("svg written", "path", output)
		return nil
	},
}

// renderFile renders into memory first so a failed render never leaves a
// truncated file behind.
func renderFile(path, cardPath, statesPath string) error {
	var buf bytes.Buffer
	if err := renderCard(&buf, cardPath, statesPath); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func init() {
	renderCmd.Flags().StringP("output", "o", "", "output file (default stdout)")
}

// --- Preview Command ---

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Live terminal preview of a card",
	Long:  "Poll the state snapshot file and redraw the gauge; keys trigger tap, double tap and hold.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cardPath := flagOr(cmd, "card", settings.Card)
		statesPath := flagOr(cmd, "states", settings.States)
		if statesPath == "" {
			return fmt.Errorf("preview needs a state snapshot file (--states)")
		}

		cfg, err := card.LoadFile(cardPath)
		if err != nil {
			return err
		}

		interval := settings.Preview.Interval
		if cmd.Flags().Changed("interval") {
			interval, _ = cmd.Flags().GetDuration("interval")
		}

		// The alternate screen owns the terminal; log to a file or nowhere.
		if err := log.Init(log.Options{
			Level:  settings.Log.Level,
			Format: settings.Log.Format,
			Output: settings.Preview.LogFile,
		}); err != nil {
			return err
		}
		log.Infow("preview started", "card", cardPath, "states", statesPath, "interval", interval)

		return preview.Run(preview.Options{
			Card:        cfg,
			StatesPath:  statesPath,
			Interval:    interval,
			HistorySize: settings.Preview.HistorySize,
		})
	},
}

func init() {
	previewCmd.Flags().Duration("interval", 0, "poll interval (default from settings, 1s)")
}

// --- Dispatch Command ---

var dispatchCmd = &cobra.Command{
	Use:   "dispatch <tap|double_tap|hold>",
	Short: "Emit the action event bound to an interaction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := action.ParseKind(args[0])
		if err != nil {
			return err
		}
		cfg, err := card.LoadFile(flagOr(cmd, "card", settings.Card))
		if err != nil {
			return err
		}

		handled, err := dispatch(cmd.OutOrStdout(), cfg, kind)
		if err != nil {
			return err
		}
		if !handled {
			log.Infow("no action bound", "kind", string(kind), "entity", cfg.Entity)
		}
		return nil
	},
}

// renderCard composes the card at cardPath against the snapshot at
// statesPath and writes the SVG to w. An empty statesPath renders against
// an empty snapshot.
func renderCard(w io.Writer, cardPath, statesPath string) error {
	cfg, err := card.LoadFile(cardPath)
	if err != nil {
		return err
	}

	snap := state.Snapshot{}
	if statesPath != "" {
		snap, err = state.LoadFile(statesPath)
		if err != nil {
			return err
		}
	}

	sc := scene.Compose(cfg, snap)
	log.Debugw("scene composed",
		"entity", cfg.Entity,
		"elements", len(sc.Elements),
		"numeric", sc.Numeric,
		"angle", sc.Angle,
	)
	if err := sc.WriteSVG(w); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

// dispatch writes the event for kind to w as JSON and reports whether an
// action was bound.
func dispatch(w io.Writer, cfg card.Config, kind action.Kind) (bool, error) {
	var encErr error
	handled := action.Handle(cfg, kind, action.EmitterFunc(func(ev action.Event) {
		log.Infow("action emitted", "id", ev.ID, "kind", string(ev.Kind), "action", ev.Action.Action)
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		encErr = enc.Encode(ev)
	}))
	if encErr != nil {
		return handled, fmt.Errorf("encode event: %w", encErr)
	}
	return handled, nil
}
