package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/northkevin/podcasts-cli/internal/config"
	"github.com/northkevin/podcasts-cli/internal/language"
	"github.com/northkevin/podcasts-cli/internal/logging"
	"github.com/northkevin/podcasts-cli/internal/textutil"
)

type configFlags struct {
	show           bool
	reset          bool
	obsidian       bool
	vaultPath      string
	episodesDir    string
	transcriptsDir string
}

func newConfigCommand(ctx *commandContext) *cobra.Command {
	var flags configFlags

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "View or change where episode and transcript notes are written",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch {
			case flags.reset:
				if err := config.ResetSettings(ctx.config.Paths.SettingsFile); err != nil {
					return err
				}
				ctx.loggerOrNop().Info("settings reset", logging.String("path", ctx.config.Paths.SettingsFile))
				fmt.Fprintln(cmd.OutOrStdout(), "Configuration reset to defaults")
				return nil
			case flags.obsidian:
				if err := configureObsidian(cmd, ctx, flags); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Configuration saved")
				return showSettings(cmd, ctx)
			default:
				return showSettings(cmd, ctx)
			}
		},
	}

	configCmd.Flags().BoolVar(&flags.show, "show", false, "Show the current configuration")
	configCmd.Flags().BoolVar(&flags.reset, "reset", false, "Reset output settings to defaults")
	configCmd.Flags().BoolVar(&flags.obsidian, "obsidian", false, "Write notes into an Obsidian vault")
	configCmd.Flags().StringVar(&flags.vaultPath, "vault-path", "", "Path to the Obsidian vault")
	configCmd.Flags().StringVar(&flags.episodesDir, "episodes-dir", "", "Episodes directory inside the vault")
	configCmd.Flags().StringVar(&flags.transcriptsDir, "transcripts-dir", "", "Transcripts directory inside the vault")
	configCmd.MarkFlagsMutuallyExclusive("show", "reset", "obsidian")

	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())

	return configCmd
}

func configureObsidian(cmd *cobra.Command, ctx *commandContext, flags configFlags) error {
	vault := strings.TrimSpace(flags.vaultPath)
	if vault == "" {
		answer, err := ctx.ask(cmd, "Enter path to your Obsidian vault: ")
		if err != nil {
			return err
		}
		vault = answer
	}
	if vault == "" {
		return errors.New("obsidian vault path is required")
	}
	expanded, err := config.ExpandPath(vault)
	if err != nil {
		return fmt.Errorf("resolve vault path: %w", err)
	}
	if info, err := os.Stat(expanded); err != nil || !info.IsDir() {
		return fmt.Errorf("obsidian vault %s is not a directory", expanded)
	}

	episodes, err := promptDefault(cmd, ctx, flags.episodesDir, "Enter episodes directory name", config.DefaultEpisodesDirName)
	if err != nil {
		return err
	}
	transcripts, err := promptDefault(cmd, ctx, flags.transcriptsDir, "Enter transcripts directory name", config.DefaultTranscriptsDirName)
	if err != nil {
		return err
	}

	settings := config.Settings{
		UseObsidian:       true,
		ObsidianVaultPath: expanded,
		EpisodesDir:       episodes,
		TranscriptsDir:    transcripts,
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	if err := config.SaveSettings(ctx.config.Paths.SettingsFile, settings); err != nil {
		return err
	}
	if _, err := ctx.layout(); err != nil {
		return err
	}
	ctx.loggerOrNop().Info("settings saved",
		logging.String("path", ctx.config.Paths.SettingsFile),
		logging.String("vault", expanded))
	return nil
}

// promptDefault returns value, or asks for one offering fallback. The answer
// is sanitized into a single directory name.
func promptDefault(cmd *cobra.Command, ctx *commandContext, value, label, fallback string) (string, error) {
	answer := strings.TrimSpace(value)
	if answer == "" {
		var err error
		if answer, err = ctx.ask(cmd, fmt.Sprintf("%s [%s]: ", label, fallback)); err != nil {
			return "", err
		}
	}
	if name := textutil.SanitizeDirName(answer); name != "" {
		return name, nil
	}
	return fallback, nil
}

func showSettings(cmd *cobra.Command, ctx *commandContext) error {
	settings := ctx.settings()
	layout, err := ctx.layout()
	if err != nil {
		return err
	}

	rows := [][]string{{"Using Obsidian", yesNo(settings.UseObsidian)}}
	if settings.UseObsidian {
		rows = append(rows,
			[]string{"Vault path", settings.ObsidianVaultPath},
			[]string{"Episodes dir", settings.EpisodesDir},
			[]string{"Transcripts dir", settings.TranscriptsDir},
		)
	}
	rows = append(rows,
		[]string{"Episodes path", layout.EpisodesDir},
		[]string{"Transcripts path", layout.TranscriptsDir},
		[]string{"Catalog", ctx.config.Paths.CatalogFile},
		[]string{"ID cache", ctx.config.Paths.IDCacheFile},
		[]string{"Settings file", ctx.config.Paths.SettingsFile},
		[]string{"Config file", ctx.configPath},
		[]string{"ID cleanup policy", ctx.config.Catalog.IDCleanupPolicy},
		[]string{"Caption language", fmt.Sprintf("%s (%s)", language.DisplayName(ctx.config.YouTube.CaptionLanguage), ctx.config.YouTube.CaptionLanguage)},
	)
	fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Setting", "Value"}, rows, nil))
	return nil
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Create a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return fmt.Errorf("determine default config path: %w", err)
				}
				target = defaultPath
			} else {
				expanded, err := config.ExpandPath(target)
				if err != nil {
					return fmt.Errorf("resolve config path: %w", err)
				}
				target = expanded
			}

			dir := filepath.Dir(target)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create config directory %q: %w", dir, err)
			}

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Set youtube.api_key (or export YOUTUBE_API_KEY) before adding YouTube episodes.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config path: %s\n", ctx.configPath)
			if _, err := os.Stat(ctx.configPath); err != nil {
				fmt.Fprintln(out, "Config file did not exist; defaults were used")
			}
			if _, err := ctx.layout(); err != nil {
				return err
			}
			if ctx.config.YouTube.APIKey == "" {
				fmt.Fprintln(out, "YouTube API key not set; YouTube episodes cannot be fetched")
			}
			fmt.Fprintln(out, "Configuration valid")
			return nil
		},
	}
}
