package analytics

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Damatnic/astral-turf-helpcenter/pkg/logger"
)

// Publisher forwards events to an external sink. Implementations must not
// block the caller.
type Publisher interface {
	Publish(event Event)
}

// Recorder is the append-only in-memory event log. Events are never updated
// or removed.
type Recorder struct {
	mu        sync.RWMutex
	events    []Event
	publisher Publisher
	logger    *slog.Logger
}

// NewRecorder creates a Recorder. publisher may be nil when no external
// sink is configured.
func NewRecorder(publisher Publisher) *Recorder {
	return &Recorder{
		events:    make([]Event, 0, 1024),
		publisher: publisher,
		logger:    logger.WithComponent("analytics-recorder"),
	}
}

// Track appends an event unconditionally, stamping the current time when
// the event carries none, and forwards it to the publisher if one is set.
func (r *Recorder) Track(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()

	if r.publisher != nil {
		r.publisher.Publish(event)
	}
}

// Query scans the full log and returns the events matching the filter, in
// append order. Linear scan; acceptable at the event-log scale this service
// targets.
func (r *Recorder) Query(filter Filter) []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Event, 0)
	for _, e := range r.events {
		if filter.matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.events)
}

// QueryCount pairs a search query with how often it was issued.
type QueryCount struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// DocumentCount pairs a document id with how many events targeted it.
type DocumentCount struct {
	DocumentID string `json:"documentId"`
	Count      int64  `json:"count"`
}

// Stats is an aggregated summary of the event log.
type Stats struct {
	TotalEvents   int64           `json:"total_events"`
	EventsByKind  map[Kind]int64  `json:"events_by_kind"`
	TopQueries    []QueryCount    `json:"top_queries"`
	TopDocuments  []DocumentCount `json:"top_documents"`
	FirstEventAt  time.Time       `json:"first_event_at"`
	LatestEventAt time.Time       `json:"latest_event_at"`
}

// Stats aggregates the current log into summary counters, the ten most
// frequent search queries, and the ten most-touched documents.
func (r *Recorder) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := Stats{
		EventsByKind: make(map[Kind]int64),
	}
	queryCounts := make(map[string]int64)
	docCounts := make(map[string]int64)

	for _, e := range r.events {
		stats.TotalEvents++
		stats.EventsByKind[e.Kind]++
		if stats.FirstEventAt.IsZero() || e.Timestamp.Before(stats.FirstEventAt) {
			stats.FirstEventAt = e.Timestamp
		}
		if e.Timestamp.After(stats.LatestEventAt) {
			stats.LatestEventAt = e.Timestamp
		}
		if e.Kind == KindSearch {
			if q, ok := e.Metadata["query"].(string); ok {
				queryCounts[q]++
			}
		}
		if e.DocumentID != "" {
			docCounts[e.DocumentID]++
		}
	}

	stats.TopQueries = topQueries(queryCounts, 10)
	stats.TopDocuments = topDocuments(docCounts, 10)
	return stats
}

func topQueries(counts map[string]int64, n int) []QueryCount {
	out := make([]QueryCount, 0, len(counts))
	for q, c := range counts {
		out = append(out, QueryCount{Query: q, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Query < out[j].Query
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func topDocuments(counts map[string]int64, n int) []DocumentCount {
	out := make([]DocumentCount, 0, len(counts))
	for id, c := range counts {
		out = append(out, DocumentCount{DocumentID: id, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].DocumentID < out[j].DocumentID
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}
