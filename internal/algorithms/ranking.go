package algorithms

import (
	"sort"
	"strings"

	"ideahub_backend/internal/models"
)

// Ranking weights. Priority dominates rating, rating dominates upvotes
// only up to 10 votes per rating point.
const (
	priorityBoost = 100.0
	ratingWeight  = 10.0
)

// Score calculates the composite ranking value of an idea.
// Pure function: recomputed on every read, never persisted.
func Score(idea *models.Idea) float64 {
	score := ratingWeight*idea.AvgRating + float64(idea.Upvotes)
	if idea.Priority {
		score += priorityBoost
	}
	return score
}

// RankIdeas orders ideas by descending score. The sort is stable, so ideas
// with equal scores keep their incoming relative order; no further tie-break
// is defined.
func RankIdeas(ideas []models.Idea) []models.Idea {
	ranked := make([]models.Idea, len(ideas))
	copy(ranked, ideas)
	sort.SliceStable(ranked, func(i, j int) bool {
		return Score(&ranked[i]) > Score(&ranked[j])
	})
	return ranked
}

// ParseTags splits a comma-delimited tag string into trimmed, lowercased tags.
// Empty segments are dropped; order is irrelevant for matching.
func ParseTags(tagsCSV string) []string {
	if tagsCSV == "" {
		return nil
	}
	parts := strings.Split(tagsCSV, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		tag := strings.ToLower(strings.TrimSpace(p))
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// MatchesFilter reports whether an idea passes the search predicate:
// case-insensitive keyword substring over title+description, minimum average
// rating, and at least one overlapping tag when a tag filter is given.
// An empty tag filter imposes no constraint.
func MatchesFilter(idea *models.Idea, keyword, tagsCSV string, minRating float64) bool {
	if keyword != "" {
		haystack := strings.ToLower(idea.Title + " " + idea.Description)
		if !strings.Contains(haystack, strings.ToLower(keyword)) {
			return false
		}
	}

	if idea.AvgRating < minRating {
		return false
	}

	wanted := ParseTags(tagsCSV)
	if len(wanted) > 0 {
		own := ParseTags(idea.Tags)
		if !tagsOverlap(own, wanted) {
			return false
		}
	}

	return true
}

// FilterIdeas applies MatchesFilter over a slice, preserving relative order.
// It is a plain filter, not a re-sort.
func FilterIdeas(ideas []models.Idea, keyword, tagsCSV string, minRating float64) []models.Idea {
	filtered := make([]models.Idea, 0, len(ideas))
	for i := range ideas {
		if MatchesFilter(&ideas[i], keyword, tagsCSV, minRating) {
			filtered = append(filtered, ideas[i])
		}
	}
	return filtered
}

func tagsOverlap(own, wanted []string) bool {
	set := make(map[string]bool, len(own))
	for _, t := range own {
		set[t] = true
	}
	for _, t := range wanted {
		if set[t] {
			return true
		}
	}
	return false
}
