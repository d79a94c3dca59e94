package query_test

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/labs-polaris/Polaris-Back-Web/internal/query"
	"github.com/stretchr/testify/assert"
)

var sortFields = map[string]string{
	"created_at": "created_at",
	"name":       "name",
}

func TestOrderClause(t *testing.T) {
	cases := []struct {
		name string
		sort string
		want string
	}{
		{"empty sort uses default", "", "created_at DESC"},
		{"valid asc", "name:asc", "name ASC"},
		{"valid desc", "created_at:desc", "created_at DESC"},
		{"direction is case-insensitive", "name:DESC", "name DESC"},
		{"unknown direction falls back to asc", "name:sideways", "name ASC"},
		{"unknown field falls back to default", "password_hash:asc", "created_at DESC"},
		{"malformed spec falls back to default", "name", "created_at DESC"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, query.OrderClause(tc.sort, sortFields))
		})
	}
}

func TestParseParams(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name  string
		query string
		want  query.Params
	}{
		{"defaults", "", query.Params{Page: 1, PageSize: 20}},
		{"explicit values", "page=3&page_size=50&sort=name:asc&q=console", query.Params{Page: 3, PageSize: 50, Sort: "name:asc", Q: "console"}},
		{"page below one is clamped", "page=0&page_size=10", query.Params{Page: 1, PageSize: 10}},
		{"page size above cap is clamped", "page_size=500", query.Params{Page: 1, PageSize: 100}},
		{"page size below one falls back to default", "page_size=-5", query.Params{Page: 1, PageSize: 20}},
		{"garbage numbers fall back", "page=abc&page_size=xyz", query.Params{Page: 1, PageSize: 20}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx, _ := gin.CreateTestContext(httptest.NewRecorder())
			ctx.Request = httptest.NewRequest("GET", "/?"+tc.query, nil)

			assert.Equal(t, tc.want, query.ParseParams(ctx))
		})
	}
}
