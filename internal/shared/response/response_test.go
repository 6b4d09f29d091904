package response_test

import (
	"math"
	"testing"

	"employee-management/internal/shared/response"

	"github.com/stretchr/testify/assert"
)

func TestNewPaginationMeta(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		page  int
		limit int
		want  response.PaginationMeta
	}{
		{"first of two", 15, 1, 10, response.PaginationMeta{CurrentPage: 1, TotalPages: 2, TotalEmployees: 15, HasNext: true}},
		{"last page", 15, 2, 10, response.PaginationMeta{CurrentPage: 2, TotalPages: 2, TotalEmployees: 15, HasPrev: true}},
		{"exact fit", 20, 2, 10, response.PaginationMeta{CurrentPage: 2, TotalPages: 2, TotalEmployees: 20, HasPrev: true}},
		{"empty table", 0, 1, 10, response.PaginationMeta{CurrentPage: 1}},
		{"huge page", 1, math.MaxInt, 10, response.PaginationMeta{CurrentPage: math.MaxInt, TotalPages: 1, TotalEmployees: 1, HasPrev: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, response.NewPaginationMeta(tt.total, tt.page, tt.limit))
		})
	}
}
