// Package main is the entry point for the transporter CLI
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/cobblemon-transporter/internal/config"
	"github.com/KirkDiggler/cobblemon-transporter/internal/errors"
)

var (
	configPath string
	logLevel   string
	asciiOnly  bool

	// cfg is loaded before any subcommand runs
	cfg *config.Config
	out *printer
)

var rootCmd = &cobra.Command{
	Use:   "transporter",
	Short: "Move creatures between Cobblemon save files and JSON records",
	Long: `Transporter reads Cobblemon party and PC save data, writes each creature
as a JSON record, and writes records back into save files.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(errors.GetCode(err).ExitCode())
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&asciiOnly, "ascii", false, "Fold console output to plain ASCII")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(repairCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(sortCmd)
}

func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.LogLevel = logLevel
	}
	if cmd.Flags().Changed("ascii") {
		loaded.ASCII = asciiOnly
	}

	level, err := loaded.Level()
	if err != nil {
		return errors.InvalidArgumentf("unknown log level %q", loaded.LogLevel)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg = loaded
	out = newPrinter(os.Stdout, cfg.ASCII)
	return nil
}

// signalContext is cancelled on interrupt or SIGTERM
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigChan:
			slog.Info("Received interrupt, stopping...")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}
