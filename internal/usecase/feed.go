package usecase

import (
	"math"
	"sort"

	"freestuff/internal/domain/entity"
	"freestuff/pkg/geo"
)

// AssembleFeed orders available items for an observer. It filters by category
// when one is given, then sorts ascending by great-circle distance when the
// observer's location is known. Items without coordinates sort last, keeping
// their incoming order (createdAt descending) among themselves. Pure function
// over already-fetched items.
func AssembleFeed(items []*entity.Item, observer *geo.Point, category *entity.ItemCategory) []*entity.Item {
	feed := make([]*entity.Item, 0, len(items))
	for _, item := range items {
		if category != nil && item.Category != *category {
			continue
		}
		feed = append(feed, item)
	}

	if observer == nil {
		return feed
	}

	distances := make(map[string]float64, len(feed))
	for _, item := range feed {
		distances[item.ID] = itemDistanceKm(item, *observer)
	}

	sort.SliceStable(feed, func(i, j int) bool {
		return distances[feed[i].ID] < distances[feed[j].ID]
	})

	return feed
}

func itemDistanceKm(item *entity.Item, observer geo.Point) float64 {
	if item.Latitude == nil || item.Longitude == nil {
		return math.Inf(1)
	}
	return geo.DistanceKm(observer, geo.Point{
		Latitude:  *item.Latitude,
		Longitude: *item.Longitude,
	})
}
