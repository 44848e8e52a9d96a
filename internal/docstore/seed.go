package docstore

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// LoadSeedFile reads a JSON array of documents from path.
func LoadSeedFile(path string) ([]Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file %s: %w", path, err)
	}
	var docs []Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parsing seed file %s: %w", path, err)
	}
	return docs, nil
}

// SampleCorpus returns the built-in help articles for the team-management
// app, used when no seed file is configured.
func SampleCorpus() []Document {
	base := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	return []Document{
		{
			ID:                "getting-started",
			Title:             "Getting Started with the Tactics Board",
			Content:           "The tactics board is where you design formations and assign players to positions. Drag a player card onto any slot to place them. Use the formation picker to switch between presets like 4-4-2 or 3-5-2. Changes are saved automatically to your active squad. You can undo any placement with the history controls in the toolbar.",
			Category:          CategoryGuide,
			Tags:              []string{"tactics", "formations", "basics"},
			Version:           "1.0",
			Status:            StatusPublished,
			Difficulty:        DifficultyBeginner,
			Popularity:        92,
			Rating:            4.7,
			EstimatedReadTime: 4,
			SearchTerms:       []string{"onboarding", "setup", "first steps"},
			RelatedDocs:       []string{"formation-presets", "player-cards"},
			LastUpdated:       base,
		},
		{
			ID:                "formation-presets",
			Title:             "Formation Presets and Custom Layouts",
			Content:           "Formation presets cover the common shapes: 4-4-2, 4-3-3, 3-5-2, 5-3-2 and more. Select a preset to reflow every position slot instantly. To build a custom layout, unlock the slots and drag them anywhere on the pitch. Custom formations can be named and saved to your library for reuse across squads.",
			Category:          CategoryTutorial,
			Tags:              []string{"formations", "tactics", "customization"},
			Version:           "1.2",
			Status:            StatusPublished,
			Difficulty:        DifficultyIntermediate,
			Popularity:        78,
			Rating:            4.5,
			EstimatedReadTime: 6,
			SearchTerms:       []string{"presets", "layouts", "pitch"},
			RelatedDocs:       []string{"getting-started"},
			LastUpdated:       base.Add(24 * time.Hour),
		},
		{
			ID:                "player-cards",
			Title:             "Reading Player Cards and Attributes",
			Content:           "Every player card shows overall rating, position, morale, and stamina. Tap a card to expand the full attribute sheet with pace, shooting, passing, and defending breakdowns. Card borders indicate contract status. Morale changes after matches and challenges, so check cards before selecting your starting eleven.",
			Category:          CategoryComponent,
			Tags:              []string{"players", "cards", "attributes"},
			Version:           "2.0",
			Status:            StatusPublished,
			Difficulty:        DifficultyBeginner,
			Popularity:        85,
			Rating:            4.6,
			EstimatedReadTime: 5,
			SearchTerms:       []string{"ratings", "morale", "stamina"},
			RelatedDocs:       []string{"getting-started", "challenges-overview"},
			LastUpdated:       base.Add(48 * time.Hour),
		},
		{
			ID:                "challenges-overview",
			Title:             "Challenges and Leaderboards",
			Content:           "Challenges are weekly objectives that reward your franchise with points and badges. Complete training drills, win streaks, or tactical puzzles to climb the leaderboard. Leaderboards reset each season. Family accounts can follow a player's challenge progress from the dashboard.",
			Category:          CategoryGuide,
			Tags:              []string{"challenges", "leaderboards", "gamification"},
			Version:           "1.1",
			Status:            StatusPublished,
			Difficulty:        DifficultyBeginner,
			Popularity:        64,
			Rating:            4.2,
			EstimatedReadTime: 3,
			SearchTerms:       []string{"badges", "points", "season"},
			RelatedDocs:       []string{"player-cards"},
			LastUpdated:       base.Add(72 * time.Hour),
		},
		{
			ID:                "api-squad-endpoints",
			Title:             "Squad API Endpoints",
			Content:           "The squad API exposes read endpoints for rosters, formations, and franchise data. Authenticate with a coach token and request JSON payloads from the documented routes. Pagination follows the standard limit and offset parameters. Rate limits apply per franchise.",
			Category:          CategoryAPI,
			Tags:              []string{"api", "integration"},
			Version:           "3.0",
			Status:            StatusPublished,
			Difficulty:        DifficultyAdvanced,
			Popularity:        41,
			Rating:            4.0,
			EstimatedReadTime: 8,
			SearchTerms:       []string{"rest", "endpoints", "tokens"},
			RelatedDocs:       []string{},
			LastUpdated:       base.Add(96 * time.Hour),
		},
		{
			ID:                "settings-roles",
			Title:             "Account Roles and Settings",
			Content:           "Coach, player, and family roles see different screens. Coaches manage squads and tactics. Players see their own cards, challenges, and schedule. Family members get read-only progress views. Role assignment happens in franchise settings and takes effect at next sign-in.",
			Category:          CategoryFAQ,
			Tags:              []string{"settings", "roles", "accounts"},
			Version:           "1.0",
			Status:            StatusPublished,
			Difficulty:        DifficultyBeginner,
			Popularity:        55,
			Rating:            4.3,
			EstimatedReadTime: 3,
			SearchTerms:       []string{"permissions", "coach", "family"},
			RelatedDocs:       []string{"challenges-overview"},
			LastUpdated:       base.Add(120 * time.Hour),
		},
		{
			ID:                "changelog-2026-03",
			Title:             "March 2026 Release Notes",
			Content:           "This release adds the collaboration board preview, faster formation switching, and fixes a bug where player morale displayed stale values after challenges. The documentation search now highlights matched terms in excerpts.",
			Category:          CategoryChangelog,
			Tags:              []string{"release", "changelog"},
			Version:           "1.0",
			Status:            StatusDraft,
			Difficulty:        DifficultyBeginner,
			Popularity:        12,
			Rating:            3.8,
			EstimatedReadTime: 2,
			SearchTerms:       []string{"release notes", "updates"},
			RelatedDocs:       []string{},
			LastUpdated:       base.Add(144 * time.Hour),
		},
	}
}
