package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Pagination holds pagination parameters.
type Pagination struct {
	Page   int
	Limit  int
	Offset int
}

// PageMeta is the pagination block returned alongside list payloads.
type PageMeta struct {
	Total       int64 `json:"total"`
	PerPage     int   `json:"per_page"`
	CurrentPage int   `json:"current_page"`
	LastPage    int   `json:"last_page"`
	From        int   `json:"from"`
	To          int   `json:"to"`
}

// ParsePagination reads page and limit query params with sane defaults.
func ParsePagination(c *fiber.Ctx) Pagination {
	page := parseInt(c.Query("page", "1"), 1)
	limit := parseInt(c.Query("limit", "20"), 20)
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}

	return Pagination{
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
}

// Meta computes the pagination block for a total row count.
func (p Pagination) Meta(total int64) PageMeta {
	meta := PageMeta{
		Total:       total,
		PerPage:     p.Limit,
		CurrentPage: p.Page,
		LastPage:    1,
	}

	if total > 0 {
		meta.LastPage = int((total + int64(p.Limit) - 1) / int64(p.Limit))
		if int64(p.Offset) < total {
			meta.From = p.Offset + 1
			to := p.Offset + p.Limit
			if int64(to) > total {
				to = int(total)
			}
			meta.To = to
		}
	}

	return meta
}

func parseInt(value string, fallback int) int {
	if parsed, err := strconv.Atoi(value); err == nil {
		return parsed
	}
	return fallback
}
