package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/safemarkup/internal/metrics"
	"github.com/ajitpratap0/safemarkup/pkg/markup"
)

func joinCmd() *cobra.Command {
	var (
		sep        string
		apostrophe string
	)

	cmd := &cobra.Command{
		Use:   "join items...",
		Short: "Escape items and join them with a trusted markup separator",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			esc, err := newEscaper(apostrophe)
			if err != nil {
				return fmt.Errorf("join: invalid --apostrophe: %w", err)
			}
			metrics.Inc(metrics.ComposeTotal)
			fmt.Fprint(cmd.OutOrStdout(), markup.JoinWith(esc, markup.Trust(sep), args))
			return nil
		},
	}

	cmd.Flags().StringVar(&sep, "sep", "", "separator markup, inserted without escaping")
	cmd.Flags().StringVar(&apostrophe, "apostrophe", "", "reference for ': hex, named or decimal (default from config)")
	return cmd
}
