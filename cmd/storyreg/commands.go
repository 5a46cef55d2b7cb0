package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/storyreg/internal/version"
	"github.com/arthur-debert/storyreg/pkg/errors"
	"github.com/arthur-debert/storyreg/pkg/metrics"
)

func newListCmd(state *rootState) *cobra.Command {
	var render bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: MsgListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := state.session()
			if err != nil {
				return err
			}
			listing := s.listing(render)
			log.Info().Int("kinds", len(listing.Kinds)).Int("stories", listing.StoryCount()).Msg("Listing storybook")
			return s.write(cmd.OutOrStdout(), listing)
		},
	}
	cmd.Flags().BoolVar(&render, "render", false, MsgFlagRender)
	return cmd
}

func newRenderCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "render KIND STORY",
		Short: MsgRenderShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := state.session()
			if err != nil {
				return err
			}
			kind, story := args[0], args[1]
			fn := s.store.GetStoryWithContext(kind, story)
			if fn == nil {
				return errors.Newf(errors.ErrNotFound, MsgErrStoryNotFound, kind, story).
					WithDetail("kind", kind).
					WithDetail("story", story)
			}
			fprintf(cmd.OutOrStdout(), "%v\n", fn())
			return nil
		},
	}
}

func newReloadCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "reload KIND",
		Short: MsgReloadShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := state.session()
			if err != nil {
				return err
			}
			disposed, err := s.book.Reload(args[0])
			if err != nil {
				return err
			}
			fprintf(cmd.ErrOrStderr(), MsgReloaded, args[0], disposed, s.store.Revision())
			return s.write(cmd.OutOrStdout(), s.listing(false))
		},
	}
}

func newSubscriptionsCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "subscriptions",
		Short: MsgSubscriptionsShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := state.session()
			if err != nil {
				return err
			}
			s.renderAll(func(kind, story string, active []string) {
				names := MsgNoSubscriptions
				if len(active) > 0 {
					names = strings.Join(active, ", ")
				}
				fprintf(cmd.OutOrStdout(), MsgSubscriptionsLine, kind, story, names)
			})
			return nil
		},
	}
}

func newMetricsCmd(state *rootState) *cobra.Command {
	return &cobra.Command{
		Use:   "metrics",
		Short: MsgMetricsShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := state.session()
			if err != nil {
				return err
			}
			s.renderAll(nil)

			samples, err := metrics.Snapshot(s.registry)
			if err != nil {
				return errors.Wrap(err, errors.ErrInternal, "failed to gather metrics")
			}
			for _, sample := range samples {
				fprintf(cmd.OutOrStdout(), MsgMetricLine, sample.Name, formatLabels(sample.Labels), sample.Value)
			}
			return nil
		},
	}
}

func formatLabels(labels map[string]string) string {
	if len(labels) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(labels))
	for k, v := range labels {
		pairs = append(pairs, fmt.Sprintf("%s=%q", k, v))
	}
	sort.Strings(pairs)
	return "{" + strings.Join(pairs, ",") + "}"
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fprintf(cmd.OutOrStdout(), "%s", version.String())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
		},
	}
}
