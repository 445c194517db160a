package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/northkevin/podcasts-cli/internal/catalog"
	"github.com/northkevin/podcasts-cli/internal/config"
	"github.com/northkevin/podcasts-cli/internal/episodeid"
	"github.com/northkevin/podcasts-cli/internal/fetch"
	"github.com/northkevin/podcasts-cli/internal/fetch/vimeo"
	"github.com/northkevin/podcasts-cli/internal/fetch/youtube"
	"github.com/northkevin/podcasts-cli/internal/logging"
	"github.com/northkevin/podcasts-cli/internal/workflow"
)

type commandContext struct {
	configFlag string
	debug      bool

	// stdin answers interactive prompts; tests replace it.
	stdin     io.Reader
	stdinBuf  *bufio.Reader
	sources   workflow.SourceResolver
	clipboard func(string) error

	config     *config.Config
	configPath string
	run        *logging.Run
	logger     *slog.Logger
}

func newCommandContext() *commandContext {
	return &commandContext{stdin: os.Stdin}
}

// start loads .env and the configuration, then opens the run logger.
func (c *commandContext) start(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	cfg, path, _, err := config.Load(strings.TrimSpace(c.configFlag))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}
	c.config = cfg
	c.configPath = path

	runCtx, runID := logging.WithRunID(cmd.Context())
	run, err := logging.NewFromConfig(cfg, logging.RunOptions{Debug: c.debug, RunID: runID})
	if err != nil {
		return err
	}
	c.run = run
	c.logger = run.Logger.With(logging.String(logging.FieldRunID, runID))
	cmd.SetContext(runCtx)

	c.logger.Debug("configuration loaded",
		logging.String("config_path", path),
		logging.String("data_dir", cfg.Paths.DataDir),
		logging.String("run_log", run.LogPath))
	return nil
}

func (c *commandContext) close() {
	if c.run != nil {
		_ = c.run.Close()
		c.run = nil
	}
}

func (c *commandContext) loggerOrNop() *slog.Logger {
	if c.logger == nil {
		return logging.NewNop()
	}
	return c.logger
}

// settings loads the output settings; a broken settings file is logged and
// the defaults are used.
func (c *commandContext) settings() config.Settings {
	settings, err := config.LoadSettings(c.config.Paths.SettingsFile)
	if err != nil {
		logging.WarnWithContext(c.loggerOrNop(), "failed to load settings", "settings_load_failed",
			logging.String("path", c.config.Paths.SettingsFile),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "run podcasts config --reset"),
			logging.String(logging.FieldImpact, "default output directories are used"))
	}
	return settings
}

func (c *commandContext) layout() (config.Layout, error) {
	layout, err := c.config.Layout(c.settings())
	if err != nil {
		return config.Layout{}, fmt.Errorf("resolve output directories: %w", err)
	}
	if err := layout.Ensure(); err != nil {
		return config.Layout{}, err
	}
	return layout, nil
}

func (c *commandContext) catalogOptions() (catalog.Options, error) {
	layout, err := c.layout()
	if err != nil {
		return catalog.Options{}, err
	}
	return catalog.Options{
		Path:           c.config.Paths.CatalogFile,
		EpisodesDir:    layout.EpisodesDir,
		TranscriptsDir: layout.TranscriptsDir,
		CleanupPolicy:  c.config.Catalog.IDCleanupPolicy,
	}, nil
}

func (c *commandContext) openCatalog() (*catalog.Catalog, error) {
	opts, err := c.catalogOptions()
	if err != nil {
		return nil, err
	}
	logger := c.loggerOrNop()
	ids := episodeid.NewGenerator(c.config.Paths.IDCacheFile, logger)
	return catalog.Open(opts, ids, logger), nil
}

func (c *commandContext) service(cmd *cobra.Command) (*workflow.Service, error) {
	cat, err := c.openCatalog()
	if err != nil {
		return nil, err
	}
	opts := append(c.clipboardOption(), workflow.WithConfirm(c.confirmer(cmd)))
	return workflow.New(cat, c.sourceResolver(), cmd.OutOrStdout(), c.loggerOrNop(), opts...), nil
}

func (c *commandContext) clipboardOption() []workflow.Option {
	if c.clipboard == nil {
		return nil
	}
	return []workflow.Option{workflow.WithClipboard(c.clipboard)}
}

func (c *commandContext) sourceResolver() workflow.SourceResolver {
	if c.sources != nil {
		return c.sources
	}
	c.sources = &lazySources{cfg: c.config, logger: c.loggerOrNop()}
	return c.sources
}

// confirmer prompts on the command's stdout and reads one line of input.
func (c *commandContext) confirmer(cmd *cobra.Command) workflow.ConfirmFunc {
	return func(prompt string) (bool, error) {
		answer, err := c.ask(cmd, prompt)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	}
}

// ask prints prompt and returns the trimmed reply. EOF counts as an empty reply.
func (c *commandContext) ask(cmd *cobra.Command, prompt string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	if c.stdinBuf == nil {
		c.stdinBuf = bufio.NewReader(c.stdin)
	}
	line, err := c.stdinBuf.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// lazySources builds platform clients on first use so a missing YouTube API
// key only matters for YouTube episodes.
type lazySources struct {
	cfg    *config.Config
	logger *slog.Logger

	once    sync.Once
	youtube *youtube.Client
	ytErr   error
	vimeo   *vimeo.Client
}

func (s *lazySources) Source(ctx context.Context, platform catalog.Platform) (workflow.Source, error) {
	switch platform {
	case catalog.PlatformYouTube:
		s.once.Do(func() {
			s.youtube, s.ytErr = youtube.New(ctx, youtube.Options{
				APIKey:          s.cfg.YouTube.APIKey,
				BaseURL:         s.cfg.YouTube.BaseURL,
				TimedTextURL:    s.cfg.YouTube.TimedTextURL,
				CaptionLanguage: s.cfg.YouTube.CaptionLanguage,
				Timeout:         s.cfg.HTTPTimeout(),
				HTTPClient:      fetch.NewHTTPClient(s.cfg.HTTPTimeout()),
			}, s.logger)
		})
		if s.ytErr != nil {
			return nil, fmt.Errorf("youtube client: %w", s.ytErr)
		}
		return s.youtube, nil
	case catalog.PlatformVimeo:
		if s.vimeo == nil {
			s.vimeo = vimeo.New(vimeo.Options{
				BaseURL:    s.cfg.Vimeo.BaseURL,
				UserAgent:  s.cfg.Vimeo.UserAgent,
				Language:   s.cfg.YouTube.CaptionLanguage,
				HTTPClient: fetch.NewHTTPClient(s.cfg.HTTPTimeout()),
			}, s.logger)
		}
		return s.vimeo, nil
	default:
		return nil, fmt.Errorf("%w: %q", catalog.ErrUnknownPlatform, string(platform))
	}
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
