package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/safemarkup/pkg/entity"
)

func entitiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entities",
		Short: "Inspect the named character reference table",
	}

	cmd.AddCommand(
		entitiesListCmd(),
		entitiesLookupCmd(),
		entitiesNameCmd(),
	)

	return cmd
}

func entitiesListCmd() *cobra.Command {
	var outputJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every named reference",
		RunE: func(cmd *cobra.Command, args []string) error {
			refs := entity.All()
			w := cmd.OutOrStdout()

			if outputJSON {
				out, err := json.MarshalIndent(refs, "", "  ")
				if err != nil {
					return fmt.Errorf("entities list: marshaling JSON: %w", err)
				}
				fmt.Fprintln(w, string(out))
				return nil
			}

			for i := range refs {
				r := &refs[i]
				fmt.Fprintf(w, "%-10s  U+%04X  %q\n", r.Name, r.Codepoint, r.Codepoint)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&outputJSON, "json", false, "output as JSON")
	return cmd
}

func entitiesLookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup <name>",
		Short: "Show the character for a reference name (case-sensitive)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSuffix(strings.TrimPrefix(args[0], "&"), ";")
			r, ok := entity.Lookup(name)
			if !ok {
				return fmt.Errorf("entities lookup: unknown entity %q", name)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "&%s;  U+%04X  %c\n", name, r, r)
			return nil
		},
	}
}

func entitiesNameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "name <codepoint>",
		Short: "Show the canonical reference name for a character or codepoint (e.g. ©, U+00A9, 0xA9 or 169)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := parseCodepoint(args[0])
			if err != nil {
				return fmt.Errorf("entities name: %w", err)
			}
			name, ok := entity.Name(r)
			if !ok {
				return fmt.Errorf("entities name: no named reference for U+%04X", r)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "&%s;\n", name)
			return nil
		},
	}
}

// parseCodepoint accepts a single character, U+XXXX, 0xXXXX or a decimal
// number. A one-character argument is always the character itself, so "7"
// is U+0037.
func parseCodepoint(s string) (rune, error) {
	if r, size := utf8.DecodeRuneInString(s); size == len(s) && r != utf8.RuneError {
		return r, nil
	}
	if hex, ok := strings.CutPrefix(strings.ToUpper(s), "U+"); ok {
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return 0, fmt.Errorf("invalid codepoint %q: %w", s, err)
		}
		return rune(v), nil
	}
	if v, err := strconv.ParseUint(s, 0, 32); err == nil {
		return rune(v), nil
	}
	return 0, fmt.Errorf("invalid codepoint %q", s)
}
