package service

import (
	"github.com/formcraft/formcraft-backend/internal/response"
)

// clampPage normalizes page/perPage query values: page >= 1,
// 1 <= perPage <= 100, defaulting to 10.
func clampPage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	if perPage > 100 {
		perPage = 100
	}
	return page, perPage
}

// paginate slices items for the requested page and builds the pagination
// envelope. The collections are in-memory, so this is a plain slice walk.
func paginate[T any](items []T, page, perPage int) ([]T, *response.Pagination) {
	total := len(items)
	totalPages := (total + perPage - 1) / perPage

	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	out := make([]T, end-start)
	copy(out, items[start:end])

	return out, &response.Pagination{
		Page:       page,
		PerPage:    perPage,
		TotalItems: total,
		TotalPages: totalPages,
	}
}
