// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package recommend ranks posts against a user's recent search queries
// using a bag-of-words TF-IDF pass over the post corpus.
package recommend

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/kljensen/snowball"

	"github.com/ruangtekno/backend/internal/models"
)

// profileQueryLimit caps how many recent distinct queries feed the profile.
const profileQueryLimit = 6

// Store is the persistence surface the recommender reads from. Satisfied by
// *repository.Repository.
type Store interface {
	ListRecentSearchQueries(ctx context.Context, userID int64, limit int) ([]string, error)
	ListPosts(ctx context.Context) ([]models.Post, error)
}

// Service computes article recommendations.
type Service struct {
	store Store
}

// NewService creates a new recommender.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// RecommendPosts scores every post against the user's recent searches and
// returns the matching posts, best first. Posts with zero relevance are
// dropped; a user without search history gets an empty result.
func (s *Service) RecommendPosts(ctx context.Context, userID int64) ([]models.Post, error) {
	queries, err := s.store.ListRecentSearchQueries(ctx, userID, profileQueryLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load search log: %w", err)
	}
	if len(queries) == 0 {
		return []models.Post{}, nil
	}

	posts, err := s.store.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load posts: %w", err)
	}

	profile := make(map[string]struct{})
	for _, q := range queries {
		for _, term := range Tokenize(q) {
			profile[term] = struct{}{}
		}
	}
	if len(profile) == 0 {
		return []models.Post{}, nil
	}

	ranked := rank(profile, posts)
	return ranked, nil
}

type scoredPost struct {
	post  models.Post
	score float64
}

// rank runs the TF-IDF scoring pass: document frequency over the corpus,
// term frequency per document, cosine-normalized sum over profile terms.
func rank(profile map[string]struct{}, posts []models.Post) []models.Post {
	docs := make([]map[string]int, len(posts))
	df := make(map[string]int)
	for i, p := range posts {
		tf := make(map[string]int)
		for _, term := range Tokenize(p.Title + " " + p.Content) {
			tf[term]++
		}
		docs[i] = tf
		for term := range tf {
			df[term]++
		}
	}

	n := float64(len(posts))
	idf := func(term string) float64 {
		return math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	var scored []scoredPost
	for i, tf := range docs {
		var score, norm float64
		for term, count := range tf {
			w := float64(count) * idf(term)
			norm += w * w
			if _, ok := profile[term]; ok {
				score += w
			}
		}
		if score == 0 {
			continue
		}
		scored = append(scored, scoredPost{post: posts[i], score: score / math.Sqrt(norm)})
	}

	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })

	ranked := make([]models.Post, len(scored))
	for i, sp := range scored {
		ranked[i] = sp.post
	}
	return ranked
}

// Tokenize lowercases the text, splits on non-alphanumeric runes, drops
// stop words and single letters and stems the remaining terms.
func Tokenize(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	terms := make([]string, 0, len(words))
	for _, w := range words {
		if len(w) < 2 {
			continue
		}
		if _, ok := stopWords[w]; ok {
			continue
		}
		stemmed, err := snowball.Stem(w, "english", false)
		if err != nil || stemmed == "" {
			continue
		}
		terms = append(terms, stemmed)
	}
	return terms
}

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"but": {}, "by": {}, "for": {}, "from": {}, "has": {}, "have": {},
	"how": {}, "in": {}, "is": {}, "it": {}, "its": {}, "of": {}, "on": {},
	"or": {}, "that": {}, "the": {}, "this": {}, "to": {}, "was": {},
	"what": {}, "when": {}, "where": {}, "which": {}, "who": {}, "why": {},
	"will": {}, "with": {}, "you": {}, "your": {},
}
