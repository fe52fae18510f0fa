package service

import (
	"sort"

	"clipstream-be/internal/dto"
	"clipstream-be/pkg/keyset"
)

// sortItemsByTuple orders a merged cross-source page by the requested sort
// tuple, identifier tie-break last, so sorted feeds stay deterministic after
// sources are combined.
func sortItemsByTuple(items []dto.ContentItem, srt keyset.Sort) {
	sort.SliceStable(items, func(i, j int) bool {
		for _, f := range srt {
			if c := compareField(items[i], items[j], f.Name); c != 0 {
				if f.Direction == keyset.Asc {
					return c < 0
				}
				return c > 0
			}
		}
		if srt.IdAscending() {
			return items[i].Id < items[j].Id
		}
		return items[i].Id > items[j].Id
	})
}

// sortItemsByRelevance is the search ordering: score, then the kind-specific
// popularity field, then recency, then id — all descending. The id exists
// purely so cursor continuation never skips or repeats ties.
func sortItemsByRelevance(items []dto.ContentItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.Popularity() != b.Popularity() {
			return a.Popularity() > b.Popularity()
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.Id > b.Id
	})
}

func compareField(a, b dto.ContentItem, name string) int {
	switch name {
	case "createdAt":
		switch {
		case a.CreatedAt.Before(b.CreatedAt):
			return -1
		case a.CreatedAt.After(b.CreatedAt):
			return 1
		}
		return 0
	case "views":
		return compareInt64(a.Views, b.Views)
	case "likes":
		return compareInt64(a.Likes, b.Likes)
	case "duration":
		return compareFloat64(a.Duration, b.Duration)
	case "score":
		return compareFloat64(a.Score, b.Score)
	}
	return 0
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareFloat64(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
