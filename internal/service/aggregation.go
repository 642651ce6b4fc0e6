package service

import (
	"time"

	"shareit/internal/models"
)

// LastAndNext picks, from bookings ordered by start ascending, the latest-starting
// booking that ended before now and the earliest-starting booking that ends after now.
// A booking in progress therefore counts as next; one ending exactly at now is neither.
func LastAndNext(bookings []*models.Booking, now time.Time) (last, next *models.Booking) {
	for _, b := range bookings {
		if b.End.Before(now) {
			if last == nil || !b.Start.Before(last.Start) {
				last = b
			}
			continue
		}
		if b.End.After(now) && (next == nil || b.Start.Before(next.Start)) {
			next = b
		}
	}
	return last, next
}

// groupItemsByRequest buckets request-linked items by their origin request.
func groupItemsByRequest(items []*models.Item) map[int64][]models.Item {
	groups := make(map[int64][]models.Item)
	for _, item := range items {
		if item.RequestID == nil {
			continue
		}
		groups[*item.RequestID] = append(groups[*item.RequestID], *item)
	}
	return groups
}

// attachItems joins requests with their grouped items; requests without items get an empty list.
func attachItems(requests []*models.ItemRequest, groups map[int64][]models.Item) []*models.RequestView {
	views := make([]*models.RequestView, 0, len(requests))
	for _, r := range requests {
		items := groups[r.ID]
		if items == nil {
			items = []models.Item{}
		}
		views = append(views, &models.RequestView{ItemRequest: *r, Items: items})
	}
	return views
}
