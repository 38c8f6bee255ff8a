package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func testContext(t *testing.T, url string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, url, nil)
	return c
}

func TestPageParams(t *testing.T) {
	cases := []struct {
		name         string
		url          string
		wantPage     int
		wantPageSize int
	}{
		{"defaults", "/api/students", 1, DefaultPageSize},
		{"explicit", "/api/students?page=3&pageSize=50", 3, 50},
		{"zero page falls back", "/api/students?page=0", 1, DefaultPageSize},
		{"negative page falls back", "/api/students?page=-2", 1, DefaultPageSize},
		{"oversized pageSize is clamped", "/api/students?pageSize=500", 1, MaxPageSize},
		{"garbage values fall back", "/api/students?page=abc&pageSize=xyz", 1, DefaultPageSize},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			page, pageSize := pageParams(testContext(t, tc.url))
			if page != tc.wantPage || pageSize != tc.wantPageSize {
				t.Errorf("pageParams() = (%d, %d), want (%d, %d)", page, pageSize, tc.wantPage, tc.wantPageSize)
			}
		})
	}
}

func TestCreatePaginatedResponse(t *testing.T) {
	c := testContext(t, "/api/students?page=2&pageSize=10")

	resp := CreatePaginatedResponse(c, []string{"a", "b"}, 25)

	if resp.CurrentPage != 2 {
		t.Errorf("CurrentPage = %d, want 2", resp.CurrentPage)
	}
	if resp.PageSize != 10 {
		t.Errorf("PageSize = %d, want 10", resp.PageSize)
	}
	if resp.TotalRows != 25 {
		t.Errorf("TotalRows = %d, want 25", resp.TotalRows)
	}
	// 25 строк по 10 на страницу: три страницы.
	if resp.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", resp.TotalPages)
	}
}

func TestCreatePaginatedResponseEmpty(t *testing.T) {
	c := testContext(t, "/api/students")

	resp := CreatePaginatedResponse(c, []string{}, 0)
	if resp.TotalPages != 0 {
		t.Errorf("TotalPages for empty result = %d, want 0", resp.TotalPages)
	}
}
