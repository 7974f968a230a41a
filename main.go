package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ByteMirror/cmdsys/app"
	"github.com/ByteMirror/cmdsys/config"
	"github.com/ByteMirror/cmdsys/log"
)

var (
	version      = "0.1.0"
	colorFlag    string
	logLevelFlag string
	rootCmd      = &cobra.Command{
		Use:           "cmdsys [command]",
		Short:         "cmdsys - run registered commands",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, done, err := setup()
			if err != nil {
				return err
			}
			defer done()

			if len(args) == 0 {
				return a.Describe(os.Stdout)
			}
			return reported(a.Execute(args[0]))
		},
	}

	listCmd = &cobra.Command{
		Use:   "list",
		Short: "List registered commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, done, err := setup()
			if err != nil {
				return err
			}
			defer done()
			return a.Describe(os.Stdout)
		},
	}

	runCmd = &cobra.Command{
		Use:   "run <command>...",
		Short: "Run several commands concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, done, err := setup()
			if err != nil {
				return err
			}
			defer done()
			return reported(a.ExecuteAll(args))
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of cmdsys",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("cmdsys version %s\n", version)
		},
	}
)

// reportedError marks command failures the logger already wrote to the console.
type reportedError struct{ error }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return reportedError{err}
}

// setup loads the configuration, applies flag overrides and builds the App.
func setup() (*app.App, func(), error) {
	cfg := config.LoadConfig()
	if colorFlag != "" {
		mode, err := config.ParseColor(colorFlag)
		if err != nil {
			return nil, nil, err
		}
		cfg.Color = mode
	}
	if logLevelFlag != "" {
		if _, err := log.ParseLevel(logLevelFlag); err != nil {
			return nil, nil, err
		}
		cfg.LogLevel = logLevelFlag
	}

	done := func() {}
	if cfg.Diagnostics {
		log.Initialize()
		done = log.Close
	}

	a := app.New(cfg, os.Stdout)
	if err := a.RegisterBuiltins(); err != nil {
		done()
		return nil, nil, err
	}
	return a, done, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "",
		"Console colors: auto, always or never (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Minimum console level: normal, info, warn or exception (overrides config)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		var re reportedError
		if !errors.As(err, &re) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
