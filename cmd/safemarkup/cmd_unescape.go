package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/safemarkup/internal/metrics"
	"github.com/ajitpratap0/safemarkup/pkg/markup"
)

func unescapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unescape [markup]",
		Short: "Decode character references (reads stdin when no markup is given)",
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := readInput(cmd, args)
			if err != nil {
				return fmt.Errorf("unescape: %w", err)
			}
			metrics.Inc(metrics.UnescapeTotal)
			fmt.Fprint(cmd.OutOrStdout(), markup.UnescapeString(input))
			return nil
		},
	}
}
