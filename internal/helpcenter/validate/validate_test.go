package validate

import (
	"strings"
	"testing"

	"github.com/Damatnic/astral-turf-helpcenter/internal/docstore"
	"github.com/Damatnic/astral-turf-helpcenter/internal/search"
)

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }

func catPtr(c docstore.Category) *docstore.Category { return &c }

func TestDocumentUpdateValid(t *testing.T) {
	if err := DocumentUpdate(docstore.DocumentUpdate{
		Title:      strPtr("Formation Basics"),
		Category:   catPtr(docstore.CategoryGuide),
		Popularity: floatPtr(50),
		Rating:     floatPtr(4.5),
	}); err != nil {
		t.Errorf("valid update rejected: %v", err)
	}
}

func TestDocumentUpdateEmptyIsValid(t *testing.T) {
	if err := DocumentUpdate(docstore.DocumentUpdate{}); err != nil {
		t.Errorf("empty update rejected: %v", err)
	}
}

func TestDocumentUpdateRejections(t *testing.T) {
	cases := []struct {
		name  string
		upd   docstore.DocumentUpdate
		field string
	}{
		{"blank title", docstore.DocumentUpdate{Title: strPtr("   ")}, "title"},
		{"long title", docstore.DocumentUpdate{Title: strPtr(strings.Repeat("x", 2000))}, "title"},
		{"unknown category", docstore.DocumentUpdate{Category: catPtr("blog")}, "category"},
		{"popularity above range", docstore.DocumentUpdate{Popularity: floatPtr(150)}, "popularity"},
		{"negative popularity", docstore.DocumentUpdate{Popularity: floatPtr(-1)}, "popularity"},
		{"rating above range", docstore.DocumentUpdate{Rating: floatPtr(5.5)}, "rating"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := DocumentUpdate(tc.upd)
			if err == nil {
				t.Fatal("invalid update accepted")
			}
			verr, ok := err.(*ValidationError)
			if !ok {
				t.Fatalf("error type = %T", err)
			}
			if _, ok := verr.Fields[tc.field]; !ok {
				t.Errorf("expected failure on %q, got %v", tc.field, verr.Fields)
			}
		})
	}
}

func TestSearchRequestValid(t *testing.T) {
	if err := SearchRequest(search.Request{
		Query:        "formation",
		Categories:   []docstore.Category{docstore.CategoryGuide},
		Difficulties: []docstore.Difficulty{docstore.DifficultyBeginner},
		Limit:        20,
		SortBy:       search.SortDate,
		SortOrder:    search.OrderAsc,
	}); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}
	// Empty sort values mean defaults and are allowed.
	if err := SearchRequest(search.Request{Query: "x"}); err != nil {
		t.Errorf("default request rejected: %v", err)
	}
}

func TestSearchRequestRejections(t *testing.T) {
	cases := []struct {
		name  string
		req   search.Request
		field string
	}{
		{"negative limit", search.Request{Limit: -1}, "limit"},
		{"negative offset", search.Request{Offset: -1}, "offset"},
		{"bad sort key", search.Request{SortBy: "title"}, "sortBy"},
		{"bad sort order", search.Request{SortOrder: "up"}, "sortOrder"},
		{"bad category", search.Request{Categories: []docstore.Category{"blog"}}, "categories"},
		{"bad difficulty", search.Request{Difficulties: []docstore.Difficulty{"expert"}}, "difficulties"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := SearchRequest(tc.req)
			if err == nil {
				t.Fatal("invalid request accepted")
			}
			verr := err.(*ValidationError)
			if _, ok := verr.Fields[tc.field]; !ok {
				t.Errorf("expected failure on %q, got %v", tc.field, verr.Fields)
			}
		})
	}
}
