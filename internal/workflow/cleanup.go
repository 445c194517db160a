package workflow

import (
	"github.com/northkevin/podcasts-cli/internal/catalog"
	"github.com/northkevin/podcasts-cli/internal/logging"
)

// CleanupPodcast deletes an episode's artifacts and catalog entry and applies
// the identifier cleanup policy. An unknown id prints a notice and reports
// false without error.
func (s *Service) CleanupPodcast(id string) (catalog.RemoveResult, bool, error) {
	result, found, err := s.catalog.Remove(id)
	if !found {
		s.printf("No episode found with ID: %s\n", id)
		return result, false, nil
	}
	for _, path := range result.RemovedFiles {
		s.printf("Removed: %s\n", path)
	}
	if err != nil {
		return result, true, err
	}

	s.logger.Info("episode cleaned up",
		logging.String(logging.FieldEpisodeID, id),
		logging.Bool("id_released", result.IDReleased))
	s.printf("\nCleanup completed successfully!\n")
	s.printf("Removed episode: %s\n", result.Entry.Title)
	s.printf("Episode ID: %s\n", id)
	s.printf("Removed from database: %s\n", s.catalog.Path())
	return result, true, nil
}
