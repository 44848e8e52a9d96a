package helpcenter

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/Damatnic/astral-turf-helpcenter/internal/docstore"
)

// corpusExport is the JSON export shape: every document with its version
// history attached.
type corpusExport struct {
	ExportedAt time.Time        `json:"exportedAt"`
	Documents  []exportDocument `json:"documents"`
}

type exportDocument struct {
	docstore.Document
	Versions []docstore.Version `json:"versions,omitempty"`
}

// ExportJSON serialises the full corpus, including version history, as
// indented JSON.
func (s *Service) ExportJSON() ([]byte, error) {
	docs := s.store.All()
	export := corpusExport{
		ExportedAt: time.Now().UTC(),
		Documents:  make([]exportDocument, 0, len(docs)),
	}
	for _, d := range docs {
		export.Documents = append(export.Documents, exportDocument{
			Document: d,
			Versions: s.store.VersionHistory(d.ID),
		})
	}
	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling corpus export: %w", err)
	}
	return data, nil
}

// ExportMarkdown renders the full corpus as one Markdown document, one
// section per article.
func (s *Service) ExportMarkdown() []byte {
	var b strings.Builder
	b.WriteString("# Help Center Export\n\n")
	fmt.Fprintf(&b, "Exported %s. %d documents.\n", time.Now().UTC().Format(time.RFC3339), s.store.Len())

	for _, d := range s.store.All() {
		fmt.Fprintf(&b, "\n## %s\n\n", d.Title)
		fmt.Fprintf(&b, "- ID: `%s`\n", d.ID)
		fmt.Fprintf(&b, "- Category: %s\n", d.Category)
		fmt.Fprintf(&b, "- Status: %s\n", d.Status)
		fmt.Fprintf(&b, "- Difficulty: %s\n", d.Difficulty)
		fmt.Fprintf(&b, "- Version: %s\n", d.Version)
		if len(d.Tags) > 0 {
			fmt.Fprintf(&b, "- Tags: %s\n", strings.Join(d.Tags, ", "))
		}
		fmt.Fprintf(&b, "- Last updated: %s\n", d.LastUpdated.Format(time.RFC3339))
		fmt.Fprintf(&b, "\n%s\n", d.Content)
	}
	return []byte(b.String())
}
