// Package analytics records immutable interaction events in an append-only
// in-memory log and aggregates them into summary stats. Optional sinks
// (Kafka publishing, Postgres snapshots) mirror the log out of process; the
// in-memory log stays authoritative.
package analytics

import "time"

// Kind classifies an analytics event.
type Kind string

const (
	KindView     Kind = "view"
	KindSearch   Kind = "search"
	KindHelpful  Kind = "helpful"
	KindBookmark Kind = "bookmark"
	KindShare    Kind = "share"
	KindComment  Kind = "comment"
)

// Event is one immutable log entry. DocumentID may be empty for corpus-wide
// events such as searches.
type Event struct {
	DocumentID string         `json:"documentId,omitempty"`
	Kind       Kind           `json:"event"`
	Timestamp  time.Time      `json:"timestamp"`
	UserID     string         `json:"userId,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// Filter selects events from the log. Zero values leave the corresponding
// dimension unrestricted; From and To are inclusive bounds.
type Filter struct {
	DocumentID string
	Kind       Kind
	From       time.Time
	To         time.Time
}

func (f Filter) matches(e Event) bool {
	if f.DocumentID != "" && e.DocumentID != f.DocumentID {
		return false
	}
	if f.Kind != "" && e.Kind != f.Kind {
		return false
	}
	if !f.From.IsZero() && e.Timestamp.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && e.Timestamp.After(f.To) {
		return false
	}
	return true
}
