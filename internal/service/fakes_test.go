package service

import (
	"context"
	"fmt"
	"time"

	"clipstream-be/internal/dto"
	"clipstream-be/internal/repository/contract"
	"clipstream-be/pkg/cursorcodec"
)

// fakeFetcher serves pages out of a fixed in-memory slice, honoring both
// fetch modes the way the store-backed fetchers do: sample pages skip
// excluded ids and report the remaining estimate, continuation pages walk
// the slice in order using the consumed offset.
type fakeFetcher struct {
	kind  string
	items []dto.ContentItem

	// requests records every request for assertions.
	requests []contract.FetchRequest
}

func (f *fakeFetcher) Kind() string { return f.kind }

func (f *fakeFetcher) Fetch(_ context.Context, req contract.FetchRequest) (*contract.FetchResult, error) {
	f.requests = append(f.requests, req)

	switch req.Mode {
	case contract.ModeSample:
		excluded := make(map[string]struct{}, len(req.ExcludedIds))
		for _, id := range req.ExcludedIds {
			excluded[id] = struct{}{}
		}

		page := make([]dto.ContentItem, 0, req.Quota)
		remaining := 0
		for _, item := range f.items {
			if _, seen := excluded[item.Id]; seen {
				continue
			}
			if len(page) < req.Quota {
				page = append(page, item)
				continue
			}
			remaining++
		}

		result := &contract.FetchResult{Items: page, HasMore: remaining > 0}
		if result.HasMore {
			result.NextToken = &cursorcodec.Token{Sampled: true, Remaining: remaining}
		}
		return result, nil

	case contract.ModeContinuation:
		start := 0
		if req.Token != nil {
			start = req.Token.Consumed
		}
		if start > len(f.items) {
			start = len(f.items)
		}

		end := start + req.Quota
		if end > len(f.items) {
			end = len(f.items)
		}

		page := f.items[start:end]
		hasMore := end < len(f.items)
		result := &contract.FetchResult{Items: page, HasMore: hasMore}
		if hasMore {
			result.NextToken = &cursorcodec.Token{Consumed: end, LastID: page[len(page)-1].Id}
		}
		return result, nil
	}

	return nil, fmt.Errorf("unknown fetch mode %q", req.Mode)
}

func (f *fakeFetcher) lastRequest() contract.FetchRequest {
	return f.requests[len(f.requests)-1]
}

func makeItems(kind string, count int) []dto.ContentItem {
	items := make([]dto.ContentItem, count)
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := range items {
		items[i] = dto.ContentItem{
			Id:        fmt.Sprintf("%s-%03d", kind, i),
			Type:      kind,
			Title:     fmt.Sprintf("%s %d", kind, i),
			Views:     int64(1000 - i),
			CreatedAt: base.Add(-time.Duration(i) * time.Hour),
		}
	}
	return items
}

func collectIds(items []dto.ContentItem) []string {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.Id
	}
	return ids
}
