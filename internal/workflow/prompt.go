package workflow

import (
	"github.com/northkevin/podcasts-cli/internal/logging"
	"github.com/northkevin/podcasts-cli/internal/notes"
)

// TestPrompt renders the atomic prompt for built-in sample metadata, prints
// it, and copies it to the clipboard. A clipboard failure is logged and does
// not fail the command.
func (s *Service) TestPrompt(kind notes.PromptType) (string, error) {
	prompt, err := notes.Prompt(kind, notes.SampleInput())
	if err != nil {
		return "", err
	}
	s.printf("\n=== TEST PROMPT ===\n\n%s\n\n=== END TEST PROMPT ===\n", prompt)

	if s.clipboard == nil {
		return prompt, nil
	}
	if err := s.clipboard(prompt); err != nil {
		logging.WarnWithContext(s.logger, "failed to copy prompt to clipboard", "clipboard_unavailable",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "install xclip, xsel or wl-clipboard"),
			logging.String(logging.FieldImpact, "prompt printed only"))
		return prompt, nil
	}
	s.printf("\nPrompt copied to clipboard!\n")
	return prompt, nil
}
