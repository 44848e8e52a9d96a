// Package docstore holds the authoritative help-center document records and
// their version history in memory.
package docstore

import "time"

// Category classifies a help document.
type Category string

const (
	CategoryGuide     Category = "guide"
	CategoryAPI       Category = "api"
	CategoryComponent Category = "component"
	CategoryTutorial  Category = "tutorial"
	CategoryFAQ       Category = "faq"
	CategoryChangelog Category = "changelog"
)

// Status is a document's publication state. Only published documents are
// searchable and listable.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

// Difficulty is the reader level a document targets.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Metadata holds a document's mutable interaction counters.
type Metadata struct {
	Views      int       `json:"views"`
	Helpful    int       `json:"helpful"`
	Comments   int       `json:"comments"`
	LastViewed time.Time `json:"lastViewed"`
	Bookmarked bool      `json:"bookmarked"`
}

// Document is one help article. ID is immutable once created; Version
// advances only when Content changes.
type Document struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Content           string     `json:"content"`
	Category          Category   `json:"category"`
	Tags              []string   `json:"tags"`
	Version           string     `json:"version"`
	Status            Status     `json:"status"`
	Difficulty        Difficulty `json:"difficulty"`
	Popularity        float64    `json:"popularity"`
	Rating            float64    `json:"rating"`
	EstimatedReadTime int        `json:"estimatedReadTime"`
	SearchTerms       []string   `json:"searchTerms"`
	RelatedDocs       []string   `json:"relatedDocs"`
	LastUpdated       time.Time  `json:"lastUpdated"`
	Metadata          Metadata   `json:"metadata"`
}

// Version is an immutable snapshot of a document's content at one point in
// its history. Owned exclusively by its parent document.
type Version struct {
	Label     string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Author    string    `json:"author"`
	Changes   []string  `json:"changes"`
	Content   string    `json:"content"`
}

// DocumentUpdate is a partial-field merge applied by Store.Update. Nil
// pointers leave the corresponding field untouched. When Content is set and
// differs from the current content, a Version is appended using
// VersionLabel (or the current version with ".1" appended when empty),
// VersionAuthor, and VersionChanges.
type DocumentUpdate struct {
	Title             *string
	Content           *string
	Category          *Category
	Tags              *[]string
	Status            *Status
	Difficulty        *Difficulty
	Popularity        *float64
	Rating            *float64
	EstimatedReadTime *int
	SearchTerms       *[]string
	RelatedDocs       *[]string

	VersionLabel   string
	VersionAuthor  string
	VersionChanges []string
}

// Clone returns a deep copy safe to hand to callers.
func (d Document) Clone() Document {
	out := d
	out.Tags = append([]string(nil), d.Tags...)
	out.SearchTerms = append([]string(nil), d.SearchTerms...)
	out.RelatedDocs = append([]string(nil), d.RelatedDocs...)
	return out
}

func (v Version) clone() Version {
	out := v
	out.Changes = append([]string(nil), v.Changes...)
	return out
}

// ValidCategory reports whether c is a known category value.
func ValidCategory(c Category) bool {
	switch c {
	case CategoryGuide, CategoryAPI, CategoryComponent, CategoryTutorial, CategoryFAQ, CategoryChangelog:
		return true
	}
	return false
}

// ValidStatus reports whether s is a known status value.
func ValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}

// ValidDifficulty reports whether d is a known difficulty value.
func ValidDifficulty(d Difficulty) bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}
