package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mgomes/tyu/tyu"
	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Parse failures exit with exitParseError, anything else with exitFailure.
const (
	exitFailure    = 1
	exitParseError = 2
)

func main() {
	if err := runCLI(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

func exitCode(err error) int {
	var perr *tyu.ParseError
	if errors.As(err, &perr) {
		return exitParseError
	}
	return exitFailure
}

// app carries the state shared by every subcommand once the persistent
// flags have been read.
type app struct {
	configPath string
	debug      bool

	cfg    *fileConfig
	logger *log.Logger
	parser *tyu.Parser
}

func (a *app) setup() error {
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = newLogger(cfg.Log.Level, a.debug)
	a.parser = tyu.NewParser(tyu.Config{Logger: a.logger})
	return nil
}

// replParser returns a parser without tracing. The REPL owns the terminal
// while it runs, so log lines on stderr would corrupt its screen.
func (a *app) replParser() *tyu.Parser {
	if a.debug {
		a.logger.Debug("parse tracing is disabled inside the repl")
	}
	return tyu.NewParser(tyu.Config{})
}

func runCLI(args []string) error {
	root := newRootCommand()
	if len(args) > 1 {
		root.SetArgs(args[1:])
	} else {
		root.SetArgs([]string{})
	}
	return root.Execute()
}

func newRootCommand() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "tyu",
		Short: "Parse 3yu programs",
		Long: `tyu reads 3yu source, a language where every statement starts with a
one-character marker, and reports its syntax tree or the first error.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: $TYU_CONFIG or ./tyu.toml)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "trace the parse on stderr")

	root.AddCommand(
		newParseCommand(a),
		newCheckCommand(a),
		newREPLCommand(a),
		newLSPCommand(a),
		newVersionCommand(),
	)
	return root
}

func newREPLCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Parse lines interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(a.replParser(), a.cfg.REPL)
		},
	}
}

func newLSPCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Serve parse diagnostics over the language server protocol on stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLSP(a.parser, a.logger)
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the tyu version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "tyu %s\n", version)
			return err
		},
	}
}
