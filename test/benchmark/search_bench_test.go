// Package benchmark contains Go benchmarks for the tokenizer, inverted
// index, and search pipeline, measuring throughput and allocation
// behaviour at realistic corpus sizes.
package benchmark

import (
	"context"
	"fmt"
	"testing"

	"github.com/Damatnic/astral-turf-helpcenter/internal/docstore"
	"github.com/Damatnic/astral-turf-helpcenter/internal/index"
	"github.com/Damatnic/astral-turf-helpcenter/internal/search"
)

var benchTerms = []string{"formation", "squad", "player", "tactics", "challenge", "roster", "preset", "rating"}

func benchCorpus(n int) []docstore.Document {
	docs := make([]docstore.Document, n)
	for i := range docs {
		a := benchTerms[i%len(benchTerms)]
		b := benchTerms[(i+3)%len(benchTerms)]
		docs[i] = docstore.Document{
			ID:         fmt.Sprintf("doc-%d", i),
			Title:      fmt.Sprintf("Guide to %s and %s", a, b),
			Content:    fmt.Sprintf("This guide covers %s management, %s setup, and weekly routines for your team.", a, b),
			Category:   docstore.CategoryGuide,
			Tags:       []string{a, b},
			Status:     docstore.StatusPublished,
			Popularity: float64(i % 100),
			Rating:     float64(i%5) + 0.5,
		}
	}
	return docs
}

func buildIndex(docs []docstore.Document) *index.Inverted {
	ix := index.New()
	entries := make([]index.Entry, 0, len(docs))
	for _, d := range docs {
		entries = append(entries, index.Entry{
			ID:   d.ID,
			Text: index.EntryText(d.Title, d.Content, d.SearchTerms, d.Tags),
		})
	}
	ix.Rebuild(entries)
	return ix
}

// BenchmarkTokenize measures tokenization throughput on a typical document.
func BenchmarkTokenize(b *testing.B) {
	text := "Formation presets let you arrange your squad quickly with saved tactical shapes and player assignments."
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tokens := index.Tokenize(text)
		_ = tokens
	}
}

// BenchmarkIndexRebuild measures full rebuild cost at various corpus sizes.
func BenchmarkIndexRebuild(b *testing.B) {
	sizes := []int{50, 200, 1000}
	for _, size := range sizes {
		b.Run(fmt.Sprintf("docs_%d", size), func(b *testing.B) {
			docs := benchCorpus(size)
			entries := make([]index.Entry, 0, len(docs))
			for _, d := range docs {
				entries = append(entries, index.Entry{
					ID:   d.ID,
					Text: index.EntryText(d.Title, d.Content, d.SearchTerms, d.Tags),
				})
			}
			ix := index.New()
			b.ReportAllocs()
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				ix.Rebuild(entries)
			}
		})
	}
}

// BenchmarkSearchExecute measures end-to-end query latency over a populated
// engine.
func BenchmarkSearchExecute(b *testing.B) {
	docs := benchCorpus(1000)
	store := docstore.NewStore(docs)
	engine := search.New(store, buildIndex(docs))
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		result := engine.Execute(ctx, search.Request{
			Query: benchTerms[i%len(benchTerms)],
			Limit: 20,
		})
		_ = result
	}
}

// BenchmarkSearchExecuteParallel measures concurrent read throughput.
func BenchmarkSearchExecuteParallel(b *testing.B) {
	docs := benchCorpus(1000)
	store := docstore.NewStore(docs)
	engine := search.New(store, buildIndex(docs))
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			result := engine.Execute(ctx, search.Request{
				Query: benchTerms[i%len(benchTerms)],
				Limit: 20,
			})
			_ = result
			i++
		}
	})
}

// BenchmarkSearchEmptyQuery measures the browse path, which scores the whole
// published corpus by popularity.
func BenchmarkSearchEmptyQuery(b *testing.B) {
	docs := benchCorpus(1000)
	store := docstore.NewStore(docs)
	engine := search.New(store, buildIndex(docs))
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		result := engine.Execute(ctx, search.Request{Limit: 20})
		_ = result
	}
}
