package store

import (
	"encoding/base64"
	"encoding/json"
	"math"
	"sort"
	"time"

	"github.com/safar/artisan-market/internal/models"
)

type CursorPage[T any] struct {
	Items      []T    `json:"items"`
	NextCursor string `json:"next_cursor,omitempty"`
	HasMore    bool   `json:"has_more"`
}

type OffsetPage[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

type OrderCursor struct {
	CreatedAt time.Time `json:"created_at"`
	ID        int64     `json:"id"`
}

func EncodeCursor(cursor OrderCursor) string {
	data, err := json.Marshal(cursor)
	if err != nil {
		return ""
	}
	return base64.URLEncoding.EncodeToString(data)
}

func DecodeCursor(encoded string) (OrderCursor, error) {
	var cursor OrderCursor
	if encoded == "" {
		return OrderCursor{
			CreatedAt: time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC),
			ID:        math.MaxInt64,
		}, nil
	}

	data, err := base64.URLEncoding.DecodeString(encoded)
	if err != nil {
		return cursor, err
	}

	err = json.Unmarshal(data, &cursor)
	return cursor, err
}

// Paginate slices items into a 1-based offset page.
func Paginate[T any](items []T, page, pageSize int) OffsetPage[T] {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	total := len(items)
	totalPages := total / pageSize
	if total%pageSize > 0 {
		totalPages++
	}

	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}

	return OffsetPage[T]{
		Items:      append([]T{}, items[start:end]...),
		Total:      int64(total),
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// PageOrders returns the orders strictly after cursor in (created_at DESC, id DESC) order.
// orders must already be sorted that way.
func PageOrders(orders []models.Order, cursor string, limit int) (*CursorPage[models.Order], error) {
	cursorData, err := DecodeCursor(cursor)
	if err != nil {
		return nil, err
	}

	page := make([]models.Order, 0, limit)
	for _, order := range orders {
		if !before(order, cursorData) {
			continue
		}
		page = append(page, order)
		if len(page) > limit {
			break
		}
	}

	hasMore := len(page) > limit
	if hasMore {
		page = page[:limit]
	}

	var nextCursor string
	if hasMore && len(page) > 0 {
		last := page[len(page)-1]
		nextCursor = EncodeCursor(OrderCursor{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		})
	}

	return &CursorPage[models.Order]{
		Items:      page,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}

func before(order models.Order, cursor OrderCursor) bool {
	if order.CreatedAt.Equal(cursor.CreatedAt) {
		return order.ID < cursor.ID
	}
	return order.CreatedAt.Before(cursor.CreatedAt)
}

// SortOrdersNewestFirst orders by created_at DESC, id DESC, the listing order cursors assume.
func SortOrdersNewestFirst(orders []models.Order) {
	sort.SliceStable(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].ID > orders[j].ID
		}
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
}
