package notes

import (
	"github.com/northkevin/podcasts-cli/internal/catalog"
	"github.com/northkevin/podcasts-cli/internal/transcript"
)

// SampleInput returns fixed prompt input for previewing the prompt without
// fetching anything.
func SampleInput() PromptInput {
	return PromptInput{
		Title:          "Exiled Brain Surgeon: DARPA Mind Control, Quantum Biology & Sunlight Medicine | Dr. Jack Kruse",
		PodcastName:    "Danny Jones",
		EpisodeID:      "test_123",
		ShareURL:       "https://youtube.com/watch?v=test123",
		TranscriptFile: "transcripts/test_123_transcript.md",
		Platform:       string(catalog.PlatformYouTube),
		Interviewee: catalog.Interviewee{
			Name:         "Dr. Jack Kruse",
			Profession:   "Neurosurgeon / Researcher",
			Organization: "N/A",
		},
		DurationSeconds: 15360,
		Stats:           &transcript.Stats{Words: 89536, Chars: 440646},
		CardsPerHour:    DefaultCardsPerHour,
	}
}
