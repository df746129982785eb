// Package main is the entry point for the waifu game server and its operator
// commands
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gamewaifu/waifu-api/internal/errors"
)

var (
	configPath string
	logFormat  string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "waifu-api",
	Short: "Waifu game server",
	Long: `waifu-api runs the companion game core: affection clicks, progression,
resentment, battles and the periodic regeneration jobs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(os.Stderr)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.yaml")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn or error")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(operatorCommands()...)
}

func setupLogging(w io.Writer) error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		return errors.InvalidArgumentf("invalid log level %q", logLevel)
	}

	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(logFormat) {
	case "json":
		slog.SetDefault(slog.New(slog.NewJSONHandler(w, opts)))
	case "text":
		slog.SetDefault(slog.New(slog.NewTextHandler(w, opts)))
	default:
		return errors.InvalidArgumentf("invalid log format %q", logFormat)
	}
	return nil
}

// printError writes err as "code: message". Errors from flag parsing carry no
// code and are printed whole.
func printError(w io.Writer, err error) {
	var appErr *errors.Error
	if errors.As(err, &appErr) {
		fmt.Fprintf(w, "%s: %s\n", appErr.Code, appErr.Message)
		return
	}
	fmt.Fprintf(w, "%s: %v\n", errors.GetCode(err), err)
}
