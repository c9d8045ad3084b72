package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func parseFrom(t *testing.T, target string) Pagination {
	t.Helper()

	var pg Pagination
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		pg = ParsePagination(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	return pg
}

func TestParsePaginationDefaults(t *testing.T) {
	pg := parseFrom(t, "/")
	if pg.Mode != PaginationOffset {
		t.Errorf("expected offset mode, got %q", pg.Mode)
	}
	if pg.Page != 1 || pg.Limit != 20 || pg.Offset != 0 {
		t.Errorf("unexpected defaults: %+v", pg)
	}
}

func TestParsePaginationOffset(t *testing.T) {
	pg := parseFrom(t, "/?page=3&limit=10")
	if pg.Offset != 20 {
		t.Errorf("expected offset 20, got %d", pg.Offset)
	}
}

func TestParsePaginationCursor(t *testing.T) {
	pg := parseFrom(t, "/?mode=cursor&limit=5&cursor=abc-123")
	if pg.Mode != PaginationCursor {
		t.Errorf("expected cursor mode, got %q", pg.Mode)
	}
	if pg.Cursor != "abc-123" || pg.Limit != 5 {
		t.Errorf("unexpected parse: %+v", pg)
	}
}

func TestParsePaginationInvalidValues(t *testing.T) {
	pg := parseFrom(t, "/?mode=bogus&page=-2&limit=abc")
	if pg.Mode != PaginationOffset {
		t.Errorf("unknown mode should fall back to offset, got %q", pg.Mode)
	}
	if pg.Page != 1 || pg.Limit != 20 {
		t.Errorf("invalid params should fall back to defaults: %+v", pg)
	}
}

func TestNewOffsetMeta(t *testing.T) {
	cases := []struct {
		total     int64
		limit     int
		pageCount int64
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{100, 7, 15},
	}

	for _, tc := range cases {
		meta := NewOffsetMeta(Pagination{Page: 1, Limit: tc.limit}, tc.total)
		if meta.PageCount != tc.pageCount {
			t.Errorf("total=%d limit=%d: page_count=%d, want %d",
				tc.total, tc.limit, meta.PageCount, tc.pageCount)
		}
		if meta.Count != tc.total {
			t.Errorf("count=%d, want %d", meta.Count, tc.total)
		}
	}
}

func TestNextCursor(t *testing.T) {
	cases := []struct {
		name       string
		returned   int
		limit      int
		lastID     string
		boundaryID string
		want       *string
	}{
		{"short page", 3, 5, "id-3", "id-0", nil},
		{"empty page", 0, 5, "", "id-0", nil},
		{"full page at boundary", 5, 5, "id-0", "id-0", nil},
		{"full page mid-table", 5, 5, "id-5", "id-0", strPtr("id-5")},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NextCursor(tc.returned, tc.limit, tc.lastID, tc.boundaryID)
			switch {
			case tc.want == nil && got != nil:
				t.Errorf("expected nil next, got %q", *got)
			case tc.want != nil && got == nil:
				t.Errorf("expected next %q, got nil", *tc.want)
			case tc.want != nil && *got != *tc.want:
				t.Errorf("expected next %q, got %q", *tc.want, *got)
			}
		})
	}
}

func strPtr(s string) *string { return &s }
