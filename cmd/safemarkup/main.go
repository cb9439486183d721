package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/safemarkup/internal/config"
	"github.com/ajitpratap0/safemarkup/pkg/markup"
)

var cfg *config.Config

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	rootCmd := newRootCmd()
	rootCmd.SetContext(ctx)

	err := rootCmd.Execute()
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "safemarkup",
		Short: "safemarkup: escape and unescape text for HTML and XML",
		Long: `safemarkup replaces the five structurally significant characters (& < > " ')
with character references, decodes references back to text, and composes
trusted markup with untrusted values without double escaping.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return nil
		},
	}

	rootCmd.AddCommand(
		escapeCmd(),
		unescapeCmd(),
		joinCmd(),
		entitiesCmd(),
		serveCmd(),
		mcpCmd(),
	)
	return rootCmd
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil {
		switch cfg.Logging.Level {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg != nil && cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

// newEscaper builds the configured escaper. A non-empty apostrophe overrides
// escape.apostrophe.
func newEscaper(apostrophe string) (*markup.Escaper, error) {
	if apostrophe == "" {
		return cfg.Escaper()
	}
	apos, err := markup.ParseApostrophe(apostrophe)
	if err != nil {
		return nil, err
	}
	return markup.NewEscaper(markup.WithApostrophe(apos)), nil
}

// readInput returns the joined args, or all of stdin when there are none.
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(b), nil
}
