package calendar

import "birthday_notification_bot/internal/domain"

// DefaultPageSize is the number of registrations shown per listing page.
const DefaultPageSize = 15

// Paginate returns the 1-indexed page of items. An empty collection, a page
// below 1 or a page starting past the end all yield domain.ErrPageOutOfRange.
// The last page is clipped at the end of the collection.
func Paginate[T any](items []T, page, size int) ([]T, error) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 || len(items) == 0 {
		return nil, domain.ErrPageOutOfRange
	}
	start := (page - 1) * size
	if start >= len(items) {
		return nil, domain.ErrPageOutOfRange
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], nil
}

// PageCount returns how many pages total items span.
func PageCount(total, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
