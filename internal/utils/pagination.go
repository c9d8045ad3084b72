package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Pagination modes.
const (
	PaginationOffset = "offset"
	PaginationCursor = "cursor"
)

// Pagination holds pagination parameters for either mode.
type Pagination struct {
	Mode   string
	Page   int
	Limit  int
	Offset int
	Cursor string
}

// OffsetMeta is the pagination block returned in offset mode.
type OffsetMeta struct {
	Page      int   `json:"page"`
	Limit     int   `json:"limit"`
	Count     int64 `json:"count"`
	PageCount int64 `json:"page_count"`
}

// CursorMeta is the pagination block returned in cursor mode. Next is
// null when no further page exists.
type CursorMeta struct {
	Limit int     `json:"limit"`
	Next  *string `json:"next"`
}

// ParsePagination reads mode, page, limit and cursor query params with
// sane defaults.
func ParsePagination(c *fiber.Ctx) Pagination {
	mode := c.Query("mode", PaginationOffset)
	if mode != PaginationCursor {
		mode = PaginationOffset
	}

	page := parseInt(c.Query("page", "1"), 1)
	limit := parseInt(c.Query("limit", "20"), 20)
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}

	return Pagination{
		Mode:   mode,
		Page:   page,
		Limit:  limit,
		Offset: (page - 1) * limit,
		Cursor: c.Query("cursor"),
	}
}

// NewOffsetMeta derives the offset-mode pagination block.
func NewOffsetMeta(pg Pagination, total int64) OffsetMeta {
	pageCount := total / int64(pg.Limit)
	if total%int64(pg.Limit) != 0 {
		pageCount++
	}
	return OffsetMeta{
		Page:      pg.Page,
		Limit:     pg.Limit,
		Count:     total,
		PageCount: pageCount,
	}
}

// NextCursor decides the next cursor after a cursor-mode page. A next
// cursor is the last returned id, emitted only when a full page came
// back and that id is not the table's boundary row; otherwise the
// caller is already on the final page and next stays null.
func NextCursor(returned, limit int, lastID, boundaryID string) *string {
	if returned < limit {
		return nil
	}
	if lastID == "" || lastID == boundaryID {
		return nil
	}
	return &lastID
}

func parseInt(value string, fallback int) int {
	if parsed, err := strconv.Atoi(value); err == nil {
		return parsed
	}
	return fallback
}
