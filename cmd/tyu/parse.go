package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mgomes/tyu/tyu"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newParseCommand(a *app) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a file and print its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("format") {
				format = a.cfg.Parse.Format
			}
			if err := validateFormat(format); err != nil {
				return err
			}
			scope, err := a.parseFile(args[0])
			if err != nil {
				return err
			}
			return writeTree(cmd.OutOrStdout(), scope, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "output format: yaml, json or tree")
	return cmd
}

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>",
		Short: "Parse a file and report only whether it is well formed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scope, err := a.parseFile(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %d units\n", countUnits(scope))
			return err
		},
	}
}

func (a *app) parseFile(path string) (*tyu.Scope, error) {
	input, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	a.logger.Debug("parsing file", "path", path, "bytes", len(input))

	scope, err := a.parser.Parse(string(input))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return scope, nil
}

func writeTree(w io.Writer, scope *tyu.Scope, format string) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tyu.Export(scope)); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(tyu.Export(scope)); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	case "tree":
		_, err := fmt.Fprintln(w, scope.String())
		return err
	default:
		return validateFormat(format)
	}
}

// countUnits counts every unit in the tree, including those inside nested
// scopes.
func countUnits(scope *tyu.Scope) int {
	n := 0
	for _, unit := range scope.Units {
		n++
		n += countSlotUnits(unit.Slot2) + countSlotUnits(unit.Slot3)
	}
	return n
}

func countSlotUnits(slot tyu.Slot) int {
	switch s := slot.(type) {
	case *tyu.Scope:
		return countUnits(s)
	case *tyu.NestedScope:
		return countUnits(s.Scope)
	default:
		return 0
	}
}
