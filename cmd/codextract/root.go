package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codextract/internal/config"
	"codextract/internal/fsys"
	"codextract/internal/log"
	"codextract/internal/prompt"
	"codextract/internal/session"
)

// app holds the collaborators a run needs so tests can swap them.
type app struct {
	cfgFile string
	verbose bool
	output  string

	prompter func() session.Prompter
	fs       fsys.FileSystem
	workDir  func() (string, error)
}

func newApp() *app {
	return &app{
		prompter: func() session.Prompter { return prompt.NewTerminal() },
		fs:       fsys.OS{},
		workDir:  os.Getwd,
	}
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(newApp())
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "codextract",
		Short: "Bundle a project's source files into one text file",
		Long: `codextract walks the current directory, skips dependencies, build output,
images and other noise, and writes every remaining file into a single
artifact with an index at the top.

Run it without arguments to choose between the whole project and one folder.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(cmd)
			if err != nil {
				return err
			}

			base, err := a.workDir()
			if err != nil {
				return fmt.Errorf("error getting current directory: %w", err)
			}

			controller, err := session.New(cfg, a.fs, a.prompter(), base)
			if err != nil {
				return err
			}

			path, err := controller.Run()
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.config/codextract/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.Flags().StringVarP(&a.output, "output", "o", "", "artifact file name, created in the current directory")

	rootCmd.AddCommand(newConfigCmd(a))

	return rootCmd
}

// loadConfig resolves the effective configuration and configures logging from it.
// An explicit --config must load; a broken default file only warns.
func (a *app) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if a.cfgFile != "" {
		cfg, err = config.LoadConfigFile(a.cfgFile)
		if err != nil {
			return nil, err
		}
	} else {
		cfg, err = config.LoadConfig()
		if err != nil {
			log.LogWithError(err).Warn("using default settings")
			cfg = config.New()
		}
	}

	if a.output != "" {
		if err := cfg.SetOutputName(a.output); err != nil {
			return nil, err
		}
	}

	opts := []log.Option{log.WithOutput(cmd.ErrOrStderr()), log.WithLevel(cfg.Log.Level)}
	if cfg.Log.JSON {
		opts = append(opts, log.WithJSON())
	}
	if cfg.Log.File != "" {
		opts = append(opts, log.WithFile(cfg.Log.File))
	}
	log.Configure(opts...)
	log.SetDebug(a.verbose)

	return cfg, nil
}
