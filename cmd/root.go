package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vybdev/testobjects/config"
	"github.com/vybdev/testobjects/logging"
	"github.com/vybdev/testobjects/workspace/project"
)

// session holds state shared by every subcommand of a single invocation.
type session struct {
	dir      string
	logLevel string

	// populated by the root command before any subcommand runs
	root string
	cfg  *config.Config
}

func newRootCmd() *cobra.Command {
	s := &session{}

	rootCmd := &cobra.Command{
		Use:           "testobjects",
		Short:         "testobjects manages typed test fixtures and the JSON schemas describing them",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.load()
		},
		Run: func(cmd *cobra.Command, args []string) {
			// If no subcommand is provided, print usage.
			fmt.Fprintln(cmd.OutOrStdout(), cmd.UsageString())
		},
	}

	rootCmd.PersistentFlags().StringVar(&s.logLevel, "log-level", "", "log level (e.g. debug, info, warn, error, fatal, panic)")
	rootCmd.PersistentFlags().StringVarP(&s.dir, "dir", "C", ".", "directory to run in; settings are read from its enclosing Go module")

	rootCmd.AddCommand(newInitCmd(s))
	rootCmd.AddCommand(newConvertCmd(s))
	rootCmd.AddCommand(newHintCmd(s))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// load locates the module root, reads its configuration and sets up logging.
// Outside of a Go module the working directory itself is used.
func (s *session) load() error {
	root, err := project.FindRoot(s.dir)
	if err != nil {
		root = s.dir
	}
	s.root = root

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}
	s.cfg = cfg

	level := s.logLevel
	if level == "" {
		level = cfg.Logging.Level
	}
	if err := logging.Init(level); err != nil {
		return err
	}
	logging.Log.Debugf("Using module root %s", root)
	return nil
}

// Execute executes the root command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
