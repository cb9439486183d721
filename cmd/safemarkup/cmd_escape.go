package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/safemarkup/internal/metrics"
	"github.com/ajitpratap0/safemarkup/pkg/markup"
)

func escapeCmd() *cobra.Command {
	var (
		silent     bool
		apostrophe string
	)

	cmd := &cobra.Command{
		Use:   "escape [text]",
		Short: "Escape text for HTML or XML (reads stdin when no text is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			esc, err := newEscaper(apostrophe)
			if err != nil {
				return fmt.Errorf("escape: invalid --apostrophe: %w", err)
			}
			input, err := readInput(cmd, args)
			if err != nil {
				return fmt.Errorf("escape: %w", err)
			}

			metrics.Inc(metrics.EscapeTotal)

			if silent || !cfg.Escape.Strict {
				fmt.Fprint(cmd.OutOrStdout(), esc.Silent(&input))
				return nil
			}

			out, err := esc.String(input)
			if err != nil {
				metrics.Inc(metrics.EscapeRejected)
				var cc *markup.ControlCharacterError
				if errors.As(err, &cc) {
					logger.Debug("escape rejected", "codepoint", cc.Codepoint, "offset", cc.Offset)
				}
				return fmt.Errorf("escape: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().BoolVar(&silent, "silent", false, "pass control characters through instead of failing")
	cmd.Flags().StringVar(&apostrophe, "apostrophe", "", "reference for ': hex, named or decimal (default from config)")
	return cmd
}
