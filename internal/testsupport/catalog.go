package testsupport

import (
	"log/slog"
	"testing"

	"github.com/northkevin/podcasts-cli/internal/catalog"
	"github.com/northkevin/podcasts-cli/internal/config"
	"github.com/northkevin/podcasts-cli/internal/episodeid"
)

// CatalogOptions resolves catalog options for cfg using the default
// (non-Obsidian) output layout and creates the artifact directories.
func CatalogOptions(t testing.TB, cfg *config.Config) catalog.Options {
	t.Helper()

	layout, err := cfg.Layout(config.Settings{})
	if err != nil {
		t.Fatalf("resolve layout: %v", err)
	}
	if err := layout.Ensure(); err != nil {
		t.Fatalf("ensure layout: %v", err)
	}
	return catalog.Options{
		Path:           cfg.Paths.CatalogFile,
		EpisodesDir:    layout.EpisodesDir,
		TranscriptsDir: layout.TranscriptsDir,
		CleanupPolicy:  cfg.Catalog.IDCleanupPolicy,
	}
}

// OpenCatalog opens the catalog described by cfg with its identifier generator.
func OpenCatalog(t testing.TB, cfg *config.Config, logger *slog.Logger) (*catalog.Catalog, *episodeid.Generator) {
	t.Helper()

	ids := episodeid.NewGenerator(cfg.Paths.IDCacheFile, logger)
	return catalog.Open(CatalogOptions(t, cfg), ids, logger), ids
}
