package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/storyreg/internal/version"
	"github.com/arthur-debert/storyreg/pkg/config"
	"github.com/arthur-debert/storyreg/pkg/logging"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	var (
		verbosity  int
		configFile string
		format     string
	)

	// state is shared with subcommands; it is filled in PersistentPreRunE
	state := &rootState{}

	rootCmd := &cobra.Command{
		Use:     "storyreg",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]interface{}{}
			if cmd.Flags().Changed("verbose") {
				overrides["log.verbosity"] = min(verbosity, 3)
			}
			if cmd.Flags().Changed("format") {
				overrides["output.format"] = format
			}

			cfg, err := config.Load(configFile, overrides)
			if err != nil {
				return err
			}
			state.cfg = cfg

			// Setup logging based on verbosity
			logging.Setup(logging.Options{
				Verbosity: cfg.Log.Verbosity,
				File:      cfg.Log.File,
				Console:   cmd.ErrOrStderr(),
			})
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			logging.LogCommand(cmd.CommandPath(), args)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// If we get here, no subcommand was provided
			_ = cmd.Help()
			return fmt.Errorf(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&format, "format", "auto", MsgFlagFormat)

	rootCmd.SetUsageTemplate(usageTemplate)

	rootCmd.AddCommand(newListCmd(state))
	rootCmd.AddCommand(newRenderCmd(state))
	rootCmd.AddCommand(newReloadCmd(state))
	rootCmd.AddCommand(newSubscriptionsCmd(state))
	rootCmd.AddCommand(newMetricsCmd(state))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	if err := installHelpTopics(rootCmd); err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// rootState carries the loaded configuration to subcommands.
type rootState struct {
	cfg *config.Config
}

// session assembles the engine and registers the demo storybook.
func (r *rootState) session() (*session, error) {
	cfg := r.cfg
	if cfg == nil {
		cfg = config.Default()
	}
	return newSession(cfg)
}
