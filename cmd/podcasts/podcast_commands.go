package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/northkevin/podcasts-cli/internal/catalog"
	"github.com/northkevin/podcasts-cli/internal/notes"
	"github.com/northkevin/podcasts-cli/internal/workflow"
)

func newAddPodcastCommand(ctx *commandContext) *cobra.Command {
	var platform, url string
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "add-podcast",
		Short: "Fetch episode metadata and add it to the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := catalog.ParsePlatform(platform)
			if err != nil {
				return err
			}
			svc, err := ctx.service(cmd)
			if err != nil {
				return err
			}
			_, err = svc.AddPodcast(cmd.Context(), workflow.AddRequest{
				Platform:  p,
				URL:       url,
				AssumeYes: assumeYes,
			})
			return err
		},
	}

	cmd.Flags().StringVar(&platform, "platform", "", "Podcast platform (youtube or vimeo)")
	cmd.Flags().StringVar(&url, "url", "", "Episode URL")
	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Overwrite an existing entry without asking")
	_ = cmd.MarkFlagRequired("platform")
	_ = cmd.MarkFlagRequired("url")
	return cmd
}

func newProcessPodcastCommand(ctx *commandContext) *cobra.Command {
	var episodeID, promptType string

	cmd := &cobra.Command{
		Use:   "process-podcast",
		Short: "Download the transcript and generate the episode note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := notes.ParsePromptType(promptType)
			if err != nil {
				return err
			}
			svc, err := ctx.service(cmd)
			if err != nil {
				return err
			}
			_, err = svc.ProcessPodcast(cmd.Context(), strings.TrimSpace(episodeID), kind)
			return err
		},
	}

	cmd.Flags().StringVar(&episodeID, "episode_id", "", "Episode ID to process")
	cmd.Flags().StringVar(&promptType, "prompt-type", string(notes.PromptAtomic), "Analysis prompt style (atomic or standard)")
	_ = cmd.MarkFlagRequired("episode_id")
	return cmd
}

func newCleanupPodcastCommand(ctx *commandContext) *cobra.Command {
	var episodeID string

	cmd := &cobra.Command{
		Use:   "cleanup-podcast",
		Short: "Delete an episode's files and remove it from the catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.service(cmd)
			if err != nil {
				return err
			}
			_, _, err = svc.CleanupPodcast(strings.TrimSpace(episodeID))
			return err
		},
	}

	cmd.Flags().StringVar(&episodeID, "episode_id", "", "Episode ID to remove")
	_ = cmd.MarkFlagRequired("episode_id")
	return cmd
}

func newTestPromptCommand(ctx *commandContext) *cobra.Command {
	var promptType string

	cmd := &cobra.Command{
		Use:   "test-prompt",
		Short: "Print the analysis prompt for sample metadata and copy it to the clipboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := notes.ParsePromptType(promptType)
			if err != nil {
				return err
			}
			svc := workflow.New(nil, nil, cmd.OutOrStdout(), ctx.loggerOrNop(), ctx.clipboardOption()...)
			_, err = svc.TestPrompt(kind)
			return err
		},
	}

	cmd.Flags().StringVar(&promptType, "prompt-type", string(notes.PromptAtomic), "Analysis prompt style (atomic or standard)")
	return cmd
}
